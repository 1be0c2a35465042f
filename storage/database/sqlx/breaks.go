package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dev-mario/raspored/core/breaks"
)

type breakRow struct {
	ID         string    `db:"id"`
	ValidFrom  time.Time `db:"valid_from"`
	ValidUntil time.Time `db:"valid_until"`
	Status     string    `db:"status"`
	Options    string    `db:"options"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (row breakRow) toBreak() breaks.Break {
	return breaks.Break(row)
}

type breakRepository struct {
	db *sqlx.DB
}

var _ breaks.Repository = (*breakRepository)(nil) // interface compliance check

func NewBreakRepository(db *sqlx.DB) breaks.Repository {
	return &breakRepository{db: db}
}

func (repo *breakRepository) fromRows(rows []breakRow) []breaks.Break {
	brks := make([]breaks.Break, 0, len(rows))
	for _, row := range rows {
		brks = append(brks, row.toBreak())
	}
	return brks
}

func (repo *breakRepository) CreateBreak(ctx context.Context, brk breaks.Break) (breaks.Break, error) {
	brk.ID = uuid.New().String()
	now := time.Now().UTC()
	brk.CreatedAt = now
	brk.UpdatedAt = now

	const q = `INSERT INTO "break" (id, valid_from, valid_until, status, options, created_at, updated_at)
	VALUES (:id, :valid_from, :valid_until, :status, :options, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, breakRow(brk)); err != nil {
		return breaks.Break{}, errors.Wrap(err, "inserting break")
	}
	return brk, nil
}

func (repo *breakRepository) QueryAllBreaks(ctx context.Context) ([]breaks.Break, error) {
	var rows []breakRow
	const q = `SELECT * FROM "break" ORDER BY valid_until`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying breaks")
	}
	return repo.fromRows(rows), nil
}

func (repo *breakRepository) FindBreaks(ctx context.Context, activeAt time.Time) ([]breaks.Break, error) {
	var rows []breakRow
	const q = `SELECT * FROM "break" WHERE valid_from <= $1 AND valid_until >= $1 ORDER BY valid_until`
	if err := repo.db.SelectContext(ctx, &rows, q, activeAt); err != nil {
		return nil, errors.Wrap(err, "finding breaks")
	}
	return repo.fromRows(rows), nil
}

func (repo *breakRepository) DeleteBreak(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM "break" WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting break")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return breaks.ErrNotFound
	}
	return nil
}
