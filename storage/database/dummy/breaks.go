package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dev-mario/raspored/core/breaks"
)

type breakRepository struct {
	db *breakTable
}

var _ breaks.Repository = (*breakRepository)(nil) // interface compliance check

func NewBreakRepository(db *DB) breaks.Repository {
	return &breakRepository{db: db.breaks}
}

func (repo *breakRepository) query() []breaks.Break {
	brks := make([]breaks.Break, 0, len(repo.db.table))
	for _, brk := range repo.db.table {
		brks = append(brks, *brk)
	}
	return brks
}

func (repo *breakRepository) CreateBreak(_ context.Context, brk breaks.Break) (breaks.Break, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	brk.ID = uuid.New().String()
	repo.db.table[brk.ID] = &brk
	return brk, nil
}

func (repo *breakRepository) QueryAllBreaks(_ context.Context) ([]breaks.Break, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	brks := repo.query()
	sort.SliceStable(brks, func(i, j int) bool { return brks[i].ValidUntil.Before(brks[j].ValidUntil) })
	return brks, nil
}

func (repo *breakRepository) FindBreaks(_ context.Context, activeAt time.Time) ([]breaks.Break, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]breaks.Break, 0)
	for _, brk := range repo.query() {
		if brk.Contains(activeAt) {
			matches = append(matches, brk)
		}
	}
	return matches, nil
}

func (repo *breakRepository) DeleteBreak(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return breaks.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
