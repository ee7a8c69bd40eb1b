package service

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	apperrors "github.com/caffebar919/server/internal/errors"
	"github.com/caffebar919/server/internal/model"
	"github.com/caffebar919/server/internal/repository"
)

type EventService struct {
	eventRepo repository.EventRepository
	validate  *validator.Validate
}

func NewEventService(eventRepo repository.EventRepository) *EventService {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &EventService{
		eventRepo: eventRepo,
		validate:  validate,
	}
}

// ListPublic returns active events only, ordered by their date string.
// The ordering is lexicographic because date is free text.
func (s *EventService) ListPublic(ctx context.Context) ([]model.Event, error) {
	events, err := s.eventRepo.FindActive(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return events, nil
}

// ListAll returns every event, inactive ones included, for the admin view.
func (s *EventService) ListAll(ctx context.Context) ([]model.Event, error) {
	events, err := s.eventRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return events, nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if event == nil {
		return nil, apperrors.NotFound("Event")
	}
	return event, nil
}

func (s *EventService) Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error) {
	if err := s.validate.Struct(params); err != nil {
		var ve validator.ValidationErrors
		if ok := asValidationErrors(err, &ve); ok && len(ve) > 0 {
			return nil, apperrors.MissingRequired(ve[0].Field())
		}
		return nil, apperrors.ValidationError("Invalid event payload")
	}

	event, err := s.eventRepo.Create(ctx, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().Str("eventId", event.ID).Str("title", event.Title).Msg("event created")
	return event, nil
}

func (s *EventService) Update(ctx context.Context, id string, params model.UpdateEventParams) (*model.Event, error) {
	event, err := s.eventRepo.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if event == nil {
		return nil, apperrors.NotFound("Event")
	}

	log.Info().Str("eventId", event.ID).Msg("event updated")
	return event, nil
}

// Delete removes the row permanently. There is no tombstone.
func (s *EventService) Delete(ctx context.Context, id string) error {
	affected, err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if affected == 0 {
		return apperrors.NotFound("Event")
	}

	log.Info().Str("eventId", id).Msg("event deleted")
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = ve
	return true
}
