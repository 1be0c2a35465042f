package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dev-mario/raspored/core/exam"
)

type examRepository struct {
	db *examTable
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *DB) exam.Repository {
	return &examRepository{db: db.exam}
}

func (repo *examRepository) CreateExam(_ context.Context, exm exam.Exam) (exam.Exam, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	exm.ID = uuid.New().String()
	repo.db.table[exm.ID] = &exm
	return exm, nil
}

func (repo *examRepository) FindExamsBetween(_ context.Context, from, to time.Time) ([]exam.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]exam.Exam, 0)
	for _, exm := range repo.db.table {
		if !exm.Date.Before(from) && !exm.Date.After(to) {
			matches = append(matches, *exm)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.Before(matches[j].Date)
		}
		return matches[i].SequenceID < matches[j].SequenceID
	})
	return matches, nil
}

func (repo *examRepository) GetExam(_ context.Context, id string) (exam.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if exm, ok := repo.db.table[id]; ok {
		return *exm, nil
	}
	return exam.Exam{}, exam.ErrNotFound
}

func (repo *examRepository) UpdateExam(_ context.Context, exm exam.Exam) (exam.Exam, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[exm.ID]; !ok {
		return exam.Exam{}, exam.ErrNotFound
	}
	repo.db.table[exm.ID] = &exm
	return exm, nil
}

func (repo *examRepository) DeleteExam(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return exam.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
