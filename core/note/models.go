package note

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("note not found")

type (
	// Note is a dated, class-associated reminder. Reminder, when set, places
	// the note into the weekly digest window instead of Date.
	Note struct {
		ID         string    `json:"id"`
		Date       time.Time `json:"date"`
		SequenceID int       `json:"seq"`
		ClassID    string    `json:"class_id"`
		Body       string    `json:"body"`
		Reminder   time.Time `json:"reminder,omitempty"`
		CreatedAt  time.Time `json:"created_at"`
		UpdatedAt  time.Time `json:"updated_at"`
	}

	NewNote struct {
		Date       time.Time `json:"date" validate:"required"`
		SequenceID int       `json:"seq" validate:"required,min=1"`
		ClassID    string    `json:"class_id" validate:"required"`
		Body       string    `json:"body" validate:"required"`
		Reminder   time.Time `json:"reminder"`
	}

	UpdateNote struct {
		Date       time.Time `json:"date"`
		SequenceID int       `json:"seq"`
		ClassID    string    `json:"class_id"`
		Body       string    `json:"body"`
		Reminder   time.Time `json:"reminder"`
	}

	Repository interface {
		CreateNote(ctx context.Context, nte Note) (Note, error)
		// FindNotesByDate returns the day's notes.
		FindNotesByDate(ctx context.Context, date time.Time) ([]Note, error)
		// FindNotesByReminderBetween returns notes with from <= Reminder <= to,
		// ordered by Reminder ascending.
		FindNotesByReminderBetween(ctx context.Context, from, to time.Time) ([]Note, error)
		GetNote(ctx context.Context, id string) (Note, error)
		UpdateNote(ctx context.Context, nte Note) (Note, error)
		DeleteNote(ctx context.Context, id string) error
	}
)
