package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dev-mario/raspored/core/calendar"
	"github.com/dev-mario/raspored/core/schedule"
)

type timetableRepository struct {
	db *timetableTable
}

var _ schedule.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *DB) schedule.Repository {
	return &timetableRepository{db: db.timetable}
}

func (repo *timetableRepository) query() []schedule.Timetable {
	tts := make([]schedule.Timetable, 0, len(repo.db.table))
	for _, tt := range repo.db.table {
		tts = append(tts, *tt)
	}
	return tts
}

func (repo *timetableRepository) CreateTimetable(_ context.Context, tt schedule.Timetable) (schedule.Timetable, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	tt.ID = uuid.New().String()
	repo.db.table[tt.ID] = &tt
	return tt, nil
}

func (repo *timetableRepository) QueryAllTimetables(_ context.Context) ([]schedule.Timetable, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tts := repo.query()
	sort.SliceStable(tts, func(i, j int) bool { return tts[i].ValidUntil.Before(tts[j].ValidUntil) })
	return tts, nil
}

func (repo *timetableRepository) GetTimetableByDay(_ context.Context, week calendar.WeekParity, day calendar.Weekday) (schedule.Timetable, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]schedule.Timetable, 0)
	for _, tt := range repo.query() {
		if tt.WeekParity == week && tt.Weekday == day {
			matches = append(matches, tt)
		}
	}
	if len(matches) == 0 {
		return schedule.Timetable{}, schedule.ErrNotFound
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ValidUntil.Before(matches[j].ValidUntil) })
	return matches[0], nil
}

func (repo *timetableRepository) FindTimetables(_ context.Context, week calendar.WeekParity, day calendar.Weekday, activeAt time.Time) ([]schedule.Timetable, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]schedule.Timetable, 0)
	for _, tt := range repo.query() {
		if tt.WeekParity == week && tt.Weekday == day && tt.Contains(activeAt) {
			matches = append(matches, tt)
		}
	}
	return matches, nil
}

func (repo *timetableRepository) DeleteTimetable(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return schedule.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
