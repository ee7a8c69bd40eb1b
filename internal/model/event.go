package model

import (
	"time"
)

// Event is a schedulable announcement shown publicly while active.
// Date and time are free-text display strings, not parsed calendar values.
type Event struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Date        string    `db:"date" json:"date"`
	Time        string    `db:"time" json:"time"`
	Description string    `db:"description" json:"description"`
	Type        string    `db:"type" json:"type"`
	ImageURL    *string   `db:"image_url" json:"image_url"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreateEventParams struct {
	Title       string  `json:"title" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Time        string  `json:"time" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Type        string  `json:"type" validate:"required"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateEventParams carries a partial update; nil fields are left untouched.
type UpdateEventParams struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}
