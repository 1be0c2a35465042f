package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dev-mario/raspored/core/note"
)

type noteRepository struct {
	db *noteTable
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *DB) note.Repository {
	return &noteRepository{db: db.note}
}

func (repo *noteRepository) CreateNote(_ context.Context, nte note.Note) (note.Note, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	nte.ID = uuid.New().String()
	repo.db.table[nte.ID] = &nte
	return nte, nil
}

func (repo *noteRepository) FindNotesByDate(_ context.Context, date time.Time) ([]note.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]note.Note, 0)
	for _, nte := range repo.db.table {
		if nte.Date.Equal(date) {
			matches = append(matches, *nte)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].SequenceID < matches[j].SequenceID })
	return matches, nil
}

func (repo *noteRepository) FindNotesByReminderBetween(_ context.Context, from, to time.Time) ([]note.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]note.Note, 0)
	for _, nte := range repo.db.table {
		if nte.Reminder.IsZero() {
			continue
		}
		if !nte.Reminder.Before(from) && !nte.Reminder.After(to) {
			matches = append(matches, *nte)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Reminder.Before(matches[j].Reminder) })
	return matches, nil
}

func (repo *noteRepository) GetNote(_ context.Context, id string) (note.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if nte, ok := repo.db.table[id]; ok {
		return *nte, nil
	}
	return note.Note{}, note.ErrNotFound
}

func (repo *noteRepository) UpdateNote(_ context.Context, nte note.Note) (note.Note, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[nte.ID]; !ok {
		return note.Note{}, note.ErrNotFound
	}
	repo.db.table[nte.ID] = &nte
	return nte, nil
}

func (repo *noteRepository) DeleteNote(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return note.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
