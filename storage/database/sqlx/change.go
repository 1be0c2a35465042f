package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/dev-mario/raspored/core/change"
)

type changeRow struct {
	ID             string      `db:"id"`
	Date           time.Time   `db:"date"`
	SequenceID     int         `db:"sequence_id"`
	ClassID        string      `db:"class_id"`
	SubstitutionID null.String `db:"substitution_id"`
	Location       string      `db:"location"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

func newChangeRow(chg change.Change) changeRow {
	return changeRow{
		ID:             chg.ID,
		Date:           chg.Date,
		SequenceID:     chg.SequenceID,
		ClassID:        chg.ClassID,
		SubstitutionID: null.NewString(chg.SubstitutionID, chg.SubstitutionID != ""),
		Location:       chg.Location,
		CreatedAt:      chg.CreatedAt,
		UpdatedAt:      chg.UpdatedAt,
	}
}

func (row changeRow) toChange() change.Change {
	return change.Change{
		ID:             row.ID,
		Date:           row.Date,
		SequenceID:     row.SequenceID,
		ClassID:        row.ClassID,
		SubstitutionID: row.SubstitutionID.String,
		Location:       row.Location,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

type changeRepository struct {
	db *sqlx.DB
}

var _ change.Repository = (*changeRepository)(nil) // interface compliance check

func NewChangeRepository(db *sqlx.DB) change.Repository {
	return &changeRepository{db: db}
}

func (repo *changeRepository) CreateChange(ctx context.Context, chg change.Change) (change.Change, error) {
	chg.ID = uuid.New().String()
	now := time.Now().UTC()
	chg.CreatedAt = now
	chg.UpdatedAt = now

	const q = `INSERT INTO change (id, date, sequence_id, class_id, substitution_id, location, created_at, updated_at)
	VALUES (:id, :date, :sequence_id, :class_id, :substitution_id, :location, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, newChangeRow(chg)); err != nil {
		return change.Change{}, errors.Wrap(err, "inserting change")
	}
	return chg, nil
}

func (repo *changeRepository) FindChangesByDate(ctx context.Context, date time.Time) ([]change.Change, error) {
	var rows []changeRow
	const q = `SELECT * FROM change WHERE date = $1 ORDER BY sequence_id`
	if err := repo.db.SelectContext(ctx, &rows, q, date); err != nil {
		return nil, errors.Wrap(err, "finding changes")
	}
	chgs := make([]change.Change, 0, len(rows))
	for _, row := range rows {
		chgs = append(chgs, row.toChange())
	}
	return chgs, nil
}

func (repo *changeRepository) GetChange(ctx context.Context, id string) (change.Change, error) {
	var row changeRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM change WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return change.Change{}, change.ErrNotFound
		}
		return change.Change{}, errors.Wrap(err, "getting change")
	}
	return row.toChange(), nil
}

func (repo *changeRepository) UpdateChange(ctx context.Context, chg change.Change) (change.Change, error) {
	chg.UpdatedAt = time.Now().UTC()

	const q = `UPDATE change SET date = :date, sequence_id = :sequence_id, class_id = :class_id,
	substitution_id = :substitution_id, location = :location, updated_at = :updated_at WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, newChangeRow(chg))
	if err != nil {
		return change.Change{}, errors.Wrap(err, "updating change")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return change.Change{}, change.ErrNotFound
	}
	return chg, nil
}

func (repo *changeRepository) DeleteChange(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM change WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting change")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return change.ErrNotFound
	}
	return nil
}
