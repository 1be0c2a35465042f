// Package change holds one-off overrides of a single timetable slot's class
// assignment for one specific date.
package change

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("change not found")

type (
	// Change records a substitution (SubstitutionID set) or a cancellation
	// (SubstitutionID empty) of the slot SequenceID on Date.
	Change struct {
		ID             string    `json:"id"`
		Date           time.Time `json:"date"`
		SequenceID     int       `json:"seq"`
		ClassID        string    `json:"class_id"`
		SubstitutionID string    `json:"substitution_id,omitempty"`
		Location       string    `json:"location"`
		CreatedAt      time.Time `json:"created_at"`
		UpdatedAt      time.Time `json:"updated_at"`
	}

	NewChange struct {
		Date           time.Time `json:"date" validate:"required"`
		SequenceID     int       `json:"seq" validate:"required,min=1"`
		ClassID        string    `json:"class_id" validate:"required"`
		SubstitutionID string    `json:"substitution_id"`
		Location       string    `json:"location" validate:"required"`
	}

	UpdateChange struct {
		SequenceID     int    `json:"seq"`
		ClassID        string `json:"class_id"`
		SubstitutionID string `json:"substitution_id"`
		Location       string `json:"location"`
	}

	Repository interface {
		CreateChange(ctx context.Context, chg Change) (Change, error)
		// FindChangesByDate returns the day's changes ordered by SequenceID.
		FindChangesByDate(ctx context.Context, date time.Time) ([]Change, error)
		GetChange(ctx context.Context, id string) (Change, error)
		UpdateChange(ctx context.Context, chg Change) (Change, error)
		DeleteChange(ctx context.Context, id string) error
	}
)

// IsCancellation reports whether the change cancels the slot instead of
// substituting another class into it.
func (c Change) IsCancellation() bool {
	return c.SubstitutionID == ""
}
