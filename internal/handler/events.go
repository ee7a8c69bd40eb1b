package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/caffebar919/server/internal/audit"
	apperrors "github.com/caffebar919/server/internal/errors"
	"github.com/caffebar919/server/internal/middleware"
	"github.com/caffebar919/server/internal/model"
	"github.com/caffebar919/server/internal/service"
)

type EventsHandler struct {
	eventService   *service.EventService
	authService    *service.AuthService
	csrfMiddleware func(http.Handler) http.Handler
	authMiddleware func(http.Handler) http.Handler
}

func NewEventsHandler(
	eventService *service.EventService,
	authService *service.AuthService,
	csrfMiddleware func(http.Handler) http.Handler,
	authMiddleware func(http.Handler) http.Handler,
) *EventsHandler {
	return &EventsHandler{
		eventService:   eventService,
		authService:    authService,
		csrfMiddleware: csrfMiddleware,
		authMiddleware: authMiddleware,
	}
}

func (h *EventsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// CSRF runs on the safe routes too so the admin page picks up its
	// token cookie before it ever mutates anything.
	r.Use(h.csrfMiddleware)

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware)
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

// List returns active events for everyone. An authenticated caller may pass
// include_inactive=true to see deactivated rows as well; without a valid
// session the flag is ignored rather than rejected.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := false
	if r.URL.Query().Get("include_inactive") == "true" {
		token := middleware.TokenFromRequest(r)
		includeInactive = h.authService.ValidateToken(token) != nil
	}

	var (
		events []model.Event
		err    error
	)
	if includeInactive {
		events, err = h.eventService.ListAll(r.Context())
	} else {
		events, err = h.eventService.ListPublic(r.Context())
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to list events")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, apperrors.MissingRequired("Event ID"))
		return
	}

	event, err := h.eventService.GetByID(r.Context(), id)
	if err != nil {
		if apperrors.GetCode(err) != apperrors.ErrCodeNotFound {
			log.Error().Err(err).Str("eventId", id).Msg("failed to fetch event")
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"event": event})
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params model.CreateEventParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	event, err := h.eventService.Create(r.Context(), params)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeDatabase {
			log.Error().Err(err).Msg("failed to create event")
		}
		writeError(w, err)
		return
	}

	session := middleware.GetSession(r.Context())
	audit.LogFromRequest(r, audit.Event{
		Type:     audit.EventRecordCreate,
		UserID:   session.UserID,
		Username: session.Username,
		Details:  map[string]interface{}{"eventId": event.ID},
	})

	writeJSON(w, http.StatusCreated, map[string]any{"event": event})
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, apperrors.MissingRequired("Event ID"))
		return
	}

	var params model.UpdateEventParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	event, err := h.eventService.Update(r.Context(), id, params)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeDatabase {
			log.Error().Err(err).Str("eventId", id).Msg("failed to update event")
		}
		writeError(w, err)
		return
	}

	session := middleware.GetSession(r.Context())
	audit.LogFromRequest(r, audit.Event{
		Type:     audit.EventRecordUpdate,
		UserID:   session.UserID,
		Username: session.Username,
		Details:  map[string]interface{}{"eventId": event.ID},
	})

	writeJSON(w, http.StatusOK, map[string]any{"event": event})
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, apperrors.MissingRequired("Event ID"))
		return
	}

	if err := h.eventService.Delete(r.Context(), id); err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeDatabase {
			log.Error().Err(err).Str("eventId", id).Msg("failed to delete event")
		}
		writeError(w, err)
		return
	}

	session := middleware.GetSession(r.Context())
	audit.LogFromRequest(r, audit.Event{
		Type:     audit.EventRecordDelete,
		UserID:   session.UserID,
		Username: session.Username,
		Details:  map[string]interface{}{"eventId": id},
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}
