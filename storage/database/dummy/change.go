package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dev-mario/raspored/core/change"
)

type changeRepository struct {
	db *changeTable
}

var _ change.Repository = (*changeRepository)(nil) // interface compliance check

func NewChangeRepository(db *DB) change.Repository {
	return &changeRepository{db: db.change}
}

func (repo *changeRepository) CreateChange(_ context.Context, chg change.Change) (change.Change, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	chg.ID = uuid.New().String()
	repo.db.table[chg.ID] = &chg
	return chg, nil
}

func (repo *changeRepository) FindChangesByDate(_ context.Context, date time.Time) ([]change.Change, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]change.Change, 0)
	for _, chg := range repo.db.table {
		if chg.Date.Equal(date) {
			matches = append(matches, *chg)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].SequenceID < matches[j].SequenceID })
	return matches, nil
}

func (repo *changeRepository) GetChange(_ context.Context, id string) (change.Change, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if chg, ok := repo.db.table[id]; ok {
		return *chg, nil
	}
	return change.Change{}, change.ErrNotFound
}

func (repo *changeRepository) UpdateChange(_ context.Context, chg change.Change) (change.Change, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[chg.ID]; !ok {
		return change.Change{}, change.ErrNotFound
	}
	repo.db.table[chg.ID] = &chg
	return chg, nil
}

func (repo *changeRepository) DeleteChange(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return change.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
