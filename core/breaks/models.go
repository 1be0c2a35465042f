// Package breaks holds school break periods: date ranges during which no
// regular timetable is in effect.
package breaks

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("break not found")

type (
	Break struct {
		ID         string    `json:"id"`
		ValidFrom  time.Time `json:"valid_from"`
		ValidUntil time.Time `json:"valid_until"`
		Status     string    `json:"status"`
		Options    string    `json:"options,omitempty"`
		CreatedAt  time.Time `json:"created_at"`
		UpdatedAt  time.Time `json:"updated_at"`
	}

	NewBreak struct {
		ValidFrom  time.Time `json:"valid_from" validate:"required"`
		ValidUntil time.Time `json:"valid_until" validate:"required,gtefield=ValidFrom"`
		Status     string    `json:"status" validate:"required"`
		Options    string    `json:"options"`
	}

	Repository interface {
		CreateBreak(ctx context.Context, brk Break) (Break, error)
		// QueryAllBreaks returns all breaks ordered by ValidUntil ascending.
		QueryAllBreaks(ctx context.Context) ([]Break, error)
		// FindBreaks returns the breaks whose [ValidFrom, ValidUntil] interval
		// contains activeAt.
		FindBreaks(ctx context.Context, activeAt time.Time) ([]Break, error)
		DeleteBreak(ctx context.Context, id string) error
	}
)

// Contains reports whether day falls inside the break period (inclusive).
func (b Break) Contains(day time.Time) bool {
	return !day.Before(b.ValidFrom) && !day.After(b.ValidUntil)
}
