package exam

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("exam not found")

type (
	Exam struct {
		ID         string    `json:"id"`
		Date       time.Time `json:"date"`
		SequenceID int       `json:"seq"`
		ClassID    string    `json:"class_id"`
		Content    string    `json:"content"`
		CreatedAt  time.Time `json:"created_at"`
		UpdatedAt  time.Time `json:"updated_at"`
	}

	NewExam struct {
		Date       time.Time `json:"date" validate:"required"`
		SequenceID int       `json:"seq" validate:"required,min=1"`
		ClassID    string    `json:"class_id" validate:"required"`
		Content    string    `json:"content" validate:"required"`
	}

	UpdateExam struct {
		Date       time.Time `json:"date"`
		SequenceID int       `json:"seq"`
		ClassID    string    `json:"class_id"`
		Content    string    `json:"content"`
	}

	Repository interface {
		CreateExam(ctx context.Context, exm Exam) (Exam, error)
		// FindExamsBetween returns exams with from <= Date <= to, ordered by
		// Date ascending.
		FindExamsBetween(ctx context.Context, from, to time.Time) ([]Exam, error)
		GetExam(ctx context.Context, id string) (Exam, error)
		UpdateExam(ctx context.Context, exm Exam) (Exam, error)
		DeleteExam(ctx context.Context, id string) error
	}
)
