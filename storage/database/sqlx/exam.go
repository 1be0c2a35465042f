package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dev-mario/raspored/core/exam"
)

type examRow struct {
	ID         string    `db:"id"`
	Date       time.Time `db:"date"`
	SequenceID int       `db:"sequence_id"`
	ClassID    string    `db:"class_id"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type examRepository struct {
	db *sqlx.DB
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *sqlx.DB) exam.Repository {
	return &examRepository{db: db}
}

func (repo *examRepository) CreateExam(ctx context.Context, exm exam.Exam) (exam.Exam, error) {
	exm.ID = uuid.New().String()
	now := time.Now().UTC()
	exm.CreatedAt = now
	exm.UpdatedAt = now

	const q = `INSERT INTO exam (id, date, sequence_id, class_id, content, created_at, updated_at)
	VALUES (:id, :date, :sequence_id, :class_id, :content, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, examRow(exm)); err != nil {
		return exam.Exam{}, errors.Wrap(err, "inserting exam")
	}
	return exm, nil
}

func (repo *examRepository) FindExamsBetween(ctx context.Context, from, to time.Time) ([]exam.Exam, error) {
	var rows []examRow
	const q = `SELECT * FROM exam WHERE date >= $1 AND date <= $2 ORDER BY date, sequence_id`
	if err := repo.db.SelectContext(ctx, &rows, q, from, to); err != nil {
		return nil, errors.Wrap(err, "finding exams")
	}
	exams := make([]exam.Exam, 0, len(rows))
	for _, row := range rows {
		exams = append(exams, exam.Exam(row))
	}
	return exams, nil
}

func (repo *examRepository) GetExam(ctx context.Context, id string) (exam.Exam, error) {
	var row examRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM exam WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return exam.Exam{}, exam.ErrNotFound
		}
		return exam.Exam{}, errors.Wrap(err, "getting exam")
	}
	return exam.Exam(row), nil
}

func (repo *examRepository) UpdateExam(ctx context.Context, exm exam.Exam) (exam.Exam, error) {
	exm.UpdatedAt = time.Now().UTC()

	const q = `UPDATE exam SET date = :date, sequence_id = :sequence_id, class_id = :class_id,
	content = :content, updated_at = :updated_at WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, examRow(exm))
	if err != nil {
		return exam.Exam{}, errors.Wrap(err, "updating exam")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return exam.Exam{}, exam.ErrNotFound
	}
	return exm, nil
}

func (repo *examRepository) DeleteExam(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM exam WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return exam.ErrNotFound
	}
	return nil
}
