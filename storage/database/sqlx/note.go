package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/dev-mario/raspored/core/note"
)

type noteRow struct {
	ID         string    `db:"id"`
	Date       time.Time `db:"date"`
	SequenceID int       `db:"sequence_id"`
	ClassID    string    `db:"class_id"`
	Body       string    `db:"body"`
	Reminder   null.Time `db:"reminder"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func newNoteRow(nte note.Note) noteRow {
	return noteRow{
		ID:         nte.ID,
		Date:       nte.Date,
		SequenceID: nte.SequenceID,
		ClassID:    nte.ClassID,
		Body:       nte.Body,
		Reminder:   null.NewTime(nte.Reminder, !nte.Reminder.IsZero()),
		CreatedAt:  nte.CreatedAt,
		UpdatedAt:  nte.UpdatedAt,
	}
}

func (row noteRow) toNote() note.Note {
	return note.Note{
		ID:         row.ID,
		Date:       row.Date,
		SequenceID: row.SequenceID,
		ClassID:    row.ClassID,
		Body:       row.Body,
		Reminder:   row.Reminder.Time,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

type noteRepository struct {
	db *sqlx.DB
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *sqlx.DB) note.Repository {
	return &noteRepository{db: db}
}

func (repo *noteRepository) fromRows(rows []noteRow) []note.Note {
	notes := make([]note.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.toNote())
	}
	return notes
}

func (repo *noteRepository) CreateNote(ctx context.Context, nte note.Note) (note.Note, error) {
	nte.ID = uuid.New().String()
	now := time.Now().UTC()
	nte.CreatedAt = now
	nte.UpdatedAt = now

	const q = `INSERT INTO note (id, date, sequence_id, class_id, body, reminder, created_at, updated_at)
	VALUES (:id, :date, :sequence_id, :class_id, :body, :reminder, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, newNoteRow(nte)); err != nil {
		return note.Note{}, errors.Wrap(err, "inserting note")
	}
	return nte, nil
}

func (repo *noteRepository) FindNotesByDate(ctx context.Context, date time.Time) ([]note.Note, error) {
	var rows []noteRow
	const q = `SELECT * FROM note WHERE date = $1 ORDER BY sequence_id`
	if err := repo.db.SelectContext(ctx, &rows, q, date); err != nil {
		return nil, errors.Wrap(err, "finding notes")
	}
	return repo.fromRows(rows), nil
}

func (repo *noteRepository) FindNotesByReminderBetween(ctx context.Context, from, to time.Time) ([]note.Note, error) {
	var rows []noteRow
	const q = `SELECT * FROM note WHERE reminder >= $1 AND reminder <= $2 ORDER BY reminder`
	if err := repo.db.SelectContext(ctx, &rows, q, from, to); err != nil {
		return nil, errors.Wrap(err, "finding notes")
	}
	return repo.fromRows(rows), nil
}

func (repo *noteRepository) GetNote(ctx context.Context, id string) (note.Note, error) {
	var row noteRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM note WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return note.Note{}, note.ErrNotFound
		}
		return note.Note{}, errors.Wrap(err, "getting note")
	}
	return row.toNote(), nil
}

func (repo *noteRepository) UpdateNote(ctx context.Context, nte note.Note) (note.Note, error) {
	nte.UpdatedAt = time.Now().UTC()

	const q = `UPDATE note SET date = :date, sequence_id = :sequence_id, class_id = :class_id,
	body = :body, reminder = :reminder, updated_at = :updated_at WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, newNoteRow(nte))
	if err != nil {
		return note.Note{}, errors.Wrap(err, "updating note")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return note.Note{}, note.ErrNotFound
	}
	return nte, nil
}

func (repo *noteRepository) DeleteNote(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM note WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting note")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return note.ErrNotFound
	}
	return nil
}
