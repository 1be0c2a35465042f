// Package sqlxrepos implements the repositories on PostgreSQL via sqlx.
package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/dev-mario/raspored/core/calendar"
	"github.com/dev-mario/raspored/core/schedule"
)

type timetableRow struct {
	ID         string         `db:"id"`
	WeekParity string         `db:"week_parity"`
	Weekday    string         `db:"weekday"`
	ValidFrom  time.Time      `db:"valid_from"`
	ValidUntil time.Time      `db:"valid_until"`
	Status     string         `db:"status"`
	Slots      types.JSONText `db:"slots"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type timetableRepository struct {
	db *sqlx.DB
}

var _ schedule.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *sqlx.DB) schedule.Repository {
	return &timetableRepository{db: db}
}

func (repo *timetableRepository) row(tt schedule.Timetable) (timetableRow, error) {
	slots, err := json.Marshal(tt.Slots)
	if err != nil {
		return timetableRow{}, errors.Wrap(err, "encoding slots")
	}
	return timetableRow{
		ID:         tt.ID,
		WeekParity: string(tt.WeekParity),
		Weekday:    string(tt.Weekday),
		ValidFrom:  tt.ValidFrom,
		ValidUntil: tt.ValidUntil,
		Status:     tt.Status,
		Slots:      slots,
		CreatedAt:  tt.CreatedAt,
		UpdatedAt:  tt.UpdatedAt,
	}, nil
}

func (repo *timetableRepository) fromRow(row timetableRow) (schedule.Timetable, error) {
	var slots []schedule.Slot
	if err := json.Unmarshal(row.Slots, &slots); err != nil {
		return schedule.Timetable{}, errors.Wrap(err, "decoding slots")
	}
	return schedule.Timetable{
		ID:         row.ID,
		WeekParity: calendar.WeekParity(row.WeekParity),
		Weekday:    calendar.Weekday(row.Weekday),
		ValidFrom:  row.ValidFrom,
		ValidUntil: row.ValidUntil,
		Status:     row.Status,
		Slots:      slots,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func (repo *timetableRepository) fromRows(rows []timetableRow) ([]schedule.Timetable, error) {
	tts := make([]schedule.Timetable, 0, len(rows))
	for _, row := range rows {
		tt, err := repo.fromRow(row)
		if err != nil {
			return nil, err
		}
		tts = append(tts, tt)
	}
	return tts, nil
}

func (repo *timetableRepository) CreateTimetable(ctx context.Context, tt schedule.Timetable) (schedule.Timetable, error) {
	tt.ID = uuid.New().String()
	now := time.Now().UTC()
	tt.CreatedAt = now
	tt.UpdatedAt = now

	row, err := repo.row(tt)
	if err != nil {
		return schedule.Timetable{}, err
	}
	const q = `INSERT INTO timetable (id, week_parity, weekday, valid_from, valid_until, status, slots, created_at, updated_at)
	VALUES (:id, :week_parity, :weekday, :valid_from, :valid_until, :status, :slots, :created_at, :updated_at)`
	if _, err = repo.db.NamedExecContext(ctx, q, row); err != nil {
		return schedule.Timetable{}, errors.Wrap(err, "inserting timetable")
	}
	return tt, nil
}

func (repo *timetableRepository) QueryAllTimetables(ctx context.Context) ([]schedule.Timetable, error) {
	var rows []timetableRow
	const q = `SELECT * FROM timetable ORDER BY week_parity, weekday, valid_until`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying timetables")
	}
	return repo.fromRows(rows)
}

func (repo *timetableRepository) GetTimetableByDay(ctx context.Context, week calendar.WeekParity, day calendar.Weekday) (schedule.Timetable, error) {
	var row timetableRow
	const q = `SELECT * FROM timetable WHERE week_parity = $1 AND weekday = $2 ORDER BY valid_until LIMIT 1`
	if err := repo.db.GetContext(ctx, &row, q, string(week), string(day)); err != nil {
		if err == sql.ErrNoRows {
			return schedule.Timetable{}, schedule.ErrNotFound
		}
		return schedule.Timetable{}, errors.Wrap(err, "getting timetable")
	}
	return repo.fromRow(row)
}

func (repo *timetableRepository) FindTimetables(ctx context.Context, week calendar.WeekParity, day calendar.Weekday, activeAt time.Time) ([]schedule.Timetable, error) {
	var rows []timetableRow
	const q = `SELECT * FROM timetable
	WHERE week_parity = $1 AND weekday = $2 AND valid_from <= $3 AND valid_until >= $3
	ORDER BY valid_until`
	if err := repo.db.SelectContext(ctx, &rows, q, string(week), string(day), activeAt); err != nil {
		return nil, errors.Wrap(err, "finding timetables")
	}
	return repo.fromRows(rows)
}

func (repo *timetableRepository) DeleteTimetable(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM timetable WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting timetable")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return schedule.ErrNotFound
	}
	return nil
}
