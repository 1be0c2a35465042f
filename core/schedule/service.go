package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dev-mario/raspored/core"
	"github.com/dev-mario/raspored/core/breaks"
	"github.com/dev-mario/raspored/core/calendar"
	"github.com/dev-mario/raspored/core/change"
	"github.com/dev-mario/raspored/core/class"
)

type Service struct {
	repo      Repository
	breakSvc  *breaks.Service
	changeSvc *change.Service
	classRepo class.Repository
	conf      *core.Config
}

func NewService(repo Repository, breakSvc *breaks.Service, changeSvc *change.Service, classRepo class.Repository, conf *core.Config) *Service {
	return &Service{
		repo:      repo,
		breakSvc:  breakSvc,
		changeSvc: changeSvc,
		classRepo: classRepo,
		conf:      conf,
	}
}

func (svc *Service) Create(ctx context.Context, nt NewTimetable) (Timetable, error) {
	week, err := calendar.ParseWeekParity(nt.WeekParity)
	if err != nil {
		return Timetable{}, core.NewValidationError(err, core.FieldError{Field: "week", Error: err.Error()})
	}
	day, err := calendar.ParseWeekday(nt.Weekday)
	if err != nil {
		return Timetable{}, core.NewValidationError(err, core.FieldError{Field: "day", Error: err.Error()})
	}

	now := time.Now().UTC()
	tt := Timetable{
		WeekParity: week,
		Weekday:    day,
		ValidFrom:  calendar.Midnight(nt.ValidFrom),
		ValidUntil: calendar.Midnight(nt.ValidUntil),
		Status:     nt.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, ns := range nt.Slots {
		tt.Slots = append(tt.Slots, Slot{
			SequenceID: ns.SequenceID,
			ClassIDs:   ns.ClassIDs,
			StartTime:  ns.StartTime,
			EndTime:    ns.EndTime,
			Location:   ns.Location,
		})
	}
	sort.SliceStable(tt.Slots, func(i, j int) bool { return tt.Slots[i].SequenceID < tt.Slots[j].SequenceID })
	return svc.repo.CreateTimetable(ctx, tt)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Timetable, error) {
	return svc.repo.QueryAllTimetables(ctx)
}

func (svc *Service) GetByDay(ctx context.Context, week calendar.WeekParity, day calendar.Weekday) (Timetable, error) {
	return svc.repo.GetTimetableByDay(ctx, week, day)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteTimetable(ctx, id)
}

// Resolve determines the effective timetable for the given date.
//
// A break period always overrides an overlapping timetable: a school holiday
// cancels all classes even when a timetable document technically covers the
// date. Overlapping timetables (and overlapping breaks) are resolved by the
// soonest-expiring document, which models "most specific, soonest superseded"
// override semantics. "Nothing found" is a regular outcome, not an error.
func (svc *Service) Resolve(ctx context.Context, date time.Time) (Resolution, error) {
	day := calendar.Midnight(date)

	brk, err := svc.breakSvc.FindActive(ctx, day)
	if err == nil {
		return Resolution{Kind: ResolvedOnBreak, Break: brk}, nil
	}
	if err != breaks.ErrNotFound {
		return Resolution{}, err
	}

	tts, err := svc.repo.FindTimetables(ctx, calendar.WeekParityOf(day), calendar.WeekdayOf(day), day)
	if err != nil {
		return Resolution{}, err
	}
	if len(tts) == 0 {
		return Resolution{Kind: ResolvedNone}, nil
	}
	sort.SliceStable(tts, func(i, j int) bool { return tts[i].ValidUntil.Before(tts[j].ValidUntil) })
	return Resolution{Kind: ResolvedActive, Slots: tts[0].Slots}, nil
}

// ProjectOccurrences scans the horizon days following `from` (calendar days,
// strictly after `from`) and collects every day on which classID is taught:
// the date plus the sequence id of the first slot listing the class. Days on
// break or without a timetable are skipped. Results are in ascending date
// order. A non-positive horizon falls back to the configured default.
func (svc *Service) ProjectOccurrences(ctx context.Context, classID string, from time.Time, horizonDays int) ([]Occurrence, error) {
	if horizonDays <= 0 {
		horizonDays = svc.conf.ScheduleHorizonDays
	}

	day := calendar.Midnight(from)
	occurrences := make([]Occurrence, 0)
	for i := 0; i < horizonDays; i++ {
		day = day.AddDate(0, 0, 1)

		res, err := svc.Resolve(ctx, day)
		if err != nil {
			return nil, err
		}
		if !res.Active() {
			continue
		}
		for _, slot := range res.Slots {
			if slotHasClass(slot, classID) {
				// a class duplicated across a day's slots only counts once
				occurrences = append(occurrences, Occurrence{Date: day, SequenceID: slot.SequenceID})
				break
			}
		}
	}
	return occurrences, nil
}

func slotHasClass(slot Slot, classID string) bool {
	for _, id := range slot.ClassIDs {
		if id == classID {
			return true
		}
	}
	return false
}

// MergeChanges reconciles the day's recorded changes with the regular
// timetable resolved for that day. Every change gets its class names
// resolved; cancellations additionally get Regular, a human-readable
// description of the slot they cancel ("Matematika (Kabinet 1) / Fizika
// (Kabinet 2)"). Changes recorded for a day that resolves to a break or to
// no timetable, a change referring to a missing slot, and a location segment
// count that does not match the slot's group count are all surfaced as data
// integrity errors.
func (svc *Service) MergeChanges(ctx context.Context, date time.Time) ([]MergedChange, error) {
	day := calendar.Midnight(date)

	changes, err := svc.changeSvc.FindByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return []MergedChange{}, nil
	}

	res, err := svc.Resolve(ctx, day)
	if err != nil {
		return nil, err
	}

	merged := make([]MergedChange, 0, len(changes))
	for _, chg := range changes {
		mc := MergedChange{Change: chg}

		if cls, err := svc.classRepo.GetClass(ctx, chg.ClassID); err == nil {
			mc.ClassName = cls.Name
		} else if err != class.ErrNotFound {
			return nil, err
		}

		if !chg.IsCancellation() {
			sub, err := svc.classRepo.GetClass(ctx, chg.SubstitutionID)
			if err != nil {
				if err == class.ErrNotFound {
					return nil, core.NewDataIntegrityError(fmt.Sprintf("change %s substitutes unknown class %s", chg.ID, chg.SubstitutionID))
				}
				return nil, err
			}
			mc.SubstitutionName = sub.Name
			merged = append(merged, mc)
			continue
		}

		// a cancellation needs the regular slot it cancels
		if !res.Active() {
			return nil, core.NewDataIntegrityError(fmt.Sprintf("change %s recorded for %s but no timetable is in effect", chg.ID, day.Format("2006-01-02")))
		}
		slot, ok := res.SlotFor(chg.SequenceID)
		if !ok {
			return nil, core.NewDataIntegrityError(fmt.Sprintf("change %s refers to missing slot %d on %s", chg.ID, chg.SequenceID, day.Format("2006-01-02")))
		}

		regular, err := svc.describeSlot(ctx, slot, chg.Location)
		if err != nil {
			return nil, err
		}
		mc.Regular = regular
		merged = append(merged, mc)
	}
	return merged, nil
}

// describeSlot zips the slot's classes with the change's per-group location
// segments into "Name (Location)" fragments. The counts must line up; a
// mismatch is a data defect in the store, not something to paper over by
// truncating the shorter side.
func (svc *Service) describeSlot(ctx context.Context, slot Slot, location string) (string, error) {
	locations := strings.Split(location, LocationDelimiter)
	if len(locations) != len(slot.ClassIDs) {
		return "", core.NewDataIntegrityError(fmt.Sprintf(
			"slot %d has %d classes but %d location segments", slot.SequenceID, len(slot.ClassIDs), len(locations)))
	}

	fragments := make([]string, 0, len(slot.ClassIDs))
	for i, classID := range slot.ClassIDs {
		cls, err := svc.classRepo.GetClass(ctx, classID)
		if err != nil {
			if err == class.ErrNotFound {
				return "", core.NewDataIntegrityError(fmt.Sprintf("slot %d refers to unknown class %s", slot.SequenceID, classID))
			}
			return "", err
		}
		fragments = append(fragments, fmt.Sprintf("%s (%s)", cls.Name, locations[i]))
	}
	return strings.Join(fragments, LocationDelimiter), nil
}
