package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caffebar919/server/internal/model"
)

type EventRepository interface {
	FindActive(ctx context.Context) ([]model.Event, error)
	FindAll(ctx context.Context) ([]model.Event, error)
	FindByID(ctx context.Context, id string) (*model.Event, error)
	Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error)
	Update(ctx context.Context, id string, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type eventRepo struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) FindActive(ctx context.Context) ([]model.Event, error) {
	events := []model.Event{}
	err := r.db.SelectContext(ctx, &events, `
		SELECT * FROM events WHERE is_active = TRUE ORDER BY date ASC
	`)
	return events, err
}

func (r *eventRepo) FindAll(ctx context.Context) ([]model.Event, error) {
	events := []model.Event{}
	err := r.db.SelectContext(ctx, &events, `SELECT * FROM events ORDER BY date ASC`)
	return events, err
}

func (r *eventRepo) FindByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.GetContext(ctx, &event, `SELECT * FROM events WHERE id = $1`, id)
	return HandleNotFound(&event, err)
}

func (r *eventRepo) Create(ctx context.Context, params model.CreateEventParams) (*model.Event, error) {
	isActive := true
	if params.IsActive != nil {
		isActive = *params.IsActive
	}

	var event model.Event
	err := r.db.GetContext(ctx, &event, `
		INSERT INTO events (id, title, date, time, description, type, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *
	`, uuid.NewString(), params.Title, params.Date, params.Time, params.Description,
		params.Type, params.ImageURL, isActive)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) Update(ctx context.Context, id string, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Title != nil {
		add("title", *params.Title)
	}
	if params.Date != nil {
		add("date", *params.Date)
	}
	if params.Time != nil {
		add("time", *params.Time)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.Type != nil {
		add("type", *params.Type)
	}
	if params.ImageURL != nil {
		add("image_url", *params.ImageURL)
	}
	if params.IsActive != nil {
		add("is_active", *params.IsActive)
	}

	query := fmt.Sprintf(`UPDATE events SET %s WHERE id = $1 RETURNING *`, strings.Join(sets, ", "))

	var event model.Event
	err := r.db.GetContext(ctx, &event, query, args...)
	return HandleNotFound(&event, err)
}

func (r *eventRepo) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
