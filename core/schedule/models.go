// Package schedule owns the bi-weekly timetable model and the algorithms on
// top of it: resolving which timetable is in effect on a given date,
// projecting future occurrences of a class, and reconciling one-off changes
// against the regular timetable.
package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/dev-mario/raspored/core/breaks"
	"github.com/dev-mario/raspored/core/calendar"
	"github.com/dev-mario/raspored/core/change"
)

var ErrNotFound = errors.New("timetable not found")

// LocationDelimiter separates per-group location segments inside a slot's
// composite location string ("Kabinet 1 / Kabinet 2").
const LocationDelimiter = " / "

type (
	// Slot is one teaching period of a day. ClassIDs lists the classes taught
	// in parallel groups at the same time; when Location is set, its
	// delimiter-separated segments are positionally aligned with ClassIDs.
	Slot struct {
		SequenceID int      `json:"seq"`
		ClassIDs   []string `json:"class_ids"`
		StartTime  string   `json:"time_start"`
		EndTime    string   `json:"time_end"`
		Location   string   `json:"location,omitempty"`
	}

	// Timetable is the authoritative slot list for one (parity, weekday)
	// combination over a validity date range.
	Timetable struct {
		ID         string              `json:"id"`
		WeekParity calendar.WeekParity `json:"week"`
		Weekday    calendar.Weekday    `json:"day"`
		ValidFrom  time.Time           `json:"valid_from"`
		ValidUntil time.Time           `json:"valid_until"`
		Status     string              `json:"status,omitempty"`
		Slots      []Slot              `json:"slots"`
		CreatedAt  time.Time           `json:"created_at"`
		UpdatedAt  time.Time           `json:"updated_at"`
	}

	NewSlot struct {
		SequenceID int      `json:"seq" validate:"required,min=1"`
		ClassIDs   []string `json:"class_ids" validate:"required,min=1"`
		StartTime  string   `json:"time_start" validate:"required"`
		EndTime    string   `json:"time_end" validate:"required"`
		Location   string   `json:"location"`
	}

	NewTimetable struct {
		WeekParity string    `json:"week" validate:"required,weekparity"`
		Weekday    string    `json:"day" validate:"required,weekday"`
		ValidFrom  time.Time `json:"valid_from" validate:"required"`
		ValidUntil time.Time `json:"valid_until" validate:"required,gtefield=ValidFrom"`
		Status     string    `json:"status"`
		Slots      []NewSlot `json:"slots" validate:"required,min=1,dive"`
	}

	Repository interface {
		CreateTimetable(ctx context.Context, tt Timetable) (Timetable, error)
		QueryAllTimetables(ctx context.Context) ([]Timetable, error)
		// GetTimetableByDay returns the timetable for the (parity, weekday)
		// pair regardless of validity dates; when several exist, the one with
		// the earliest ValidUntil.
		GetTimetableByDay(ctx context.Context, week calendar.WeekParity, day calendar.Weekday) (Timetable, error)
		// FindTimetables returns every timetable for the (parity, weekday)
		// pair whose [ValidFrom, ValidUntil] interval contains activeAt.
		FindTimetables(ctx context.Context, week calendar.WeekParity, day calendar.Weekday, activeAt time.Time) ([]Timetable, error)
		DeleteTimetable(ctx context.Context, id string) error
	}
)

// ResolutionKind discriminates the outcome of resolving a date.
type ResolutionKind int

const (
	// ResolvedNone: no timetable and no break covers the date.
	ResolvedNone ResolutionKind = iota
	// ResolvedActive: a regular timetable is in effect.
	ResolvedActive
	// ResolvedOnBreak: the date falls in a break period; a break always
	// overrides an overlapping timetable.
	ResolvedOnBreak
)

type (
	// Resolution is the effective state of the schedule on one date.
	Resolution struct {
		Kind  ResolutionKind
		Slots []Slot       // set when Kind == ResolvedActive
		Break breaks.Break // set when Kind == ResolvedOnBreak
	}

	// Occurrence is one future occurrence of a class.
	Occurrence struct {
		Date       time.Time `json:"date"`
		SequenceID int       `json:"seq"`
	}

	// MergedChange annotates a change with resolved class names and, for
	// cancellations, the description of the regular slot it cancels.
	MergedChange struct {
		change.Change
		ClassName        string `json:"class_name"`
		SubstitutionName string `json:"substitution_name,omitempty"`
		Regular          string `json:"regular,omitempty"`
	}
)

func (r Resolution) Active() bool  { return r.Kind == ResolvedActive }
func (r Resolution) OnBreak() bool { return r.Kind == ResolvedOnBreak }

// SlotFor returns the slot with the given sequence id.
func (r Resolution) SlotFor(seq int) (Slot, bool) {
	for _, slot := range r.Slots {
		if slot.SequenceID == seq {
			return slot, true
		}
	}
	return Slot{}, false
}

// Locations splits the slot's composite location into per-group segments.
func (s Slot) Locations() []string {
	if s.Location == "" {
		return nil
	}
	return strings.Split(s.Location, LocationDelimiter)
}

// Contains reports whether day falls inside the timetable's validity range.
func (t Timetable) Contains(day time.Time) bool {
	return !day.Before(t.ValidFrom) && !day.After(t.ValidUntil)
}
