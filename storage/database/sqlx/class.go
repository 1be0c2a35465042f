package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/dev-mario/raspored/core/class"
)

type classRow struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	Type       string         `db:"type"`
	TeacherIDs pq.StringArray `db:"teacher_ids"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (row classRow) toClass() class.Class {
	return class.Class{
		ID:         row.ID,
		Name:       row.Name,
		Type:       row.Type,
		TeacherIDs: row.TeacherIDs,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

type teacherRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type classRepository struct {
	db *sqlx.DB
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *sqlx.DB) class.Repository {
	return &classRepository{db: db}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls class.Class) (class.Class, error) {
	cls.ID = uuid.New().String()
	now := time.Now().UTC()
	cls.CreatedAt = now
	cls.UpdatedAt = now

	row := classRow{
		ID:         cls.ID,
		Name:       cls.Name,
		Type:       cls.Type,
		TeacherIDs: cls.TeacherIDs,
		CreatedAt:  cls.CreatedAt,
		UpdatedAt:  cls.UpdatedAt,
	}
	const q = `INSERT INTO class (id, name, type, teacher_ids, created_at, updated_at)
	VALUES (:id, :name, :type, :teacher_ids, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return class.Class{}, errors.Wrap(err, "inserting class")
	}
	return cls, nil
}

func (repo *classRepository) QueryAllClasses(ctx context.Context) ([]class.Class, error) {
	var rows []classRow
	const q = `SELECT * FROM class ORDER BY name`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	classes := make([]class.Class, 0, len(rows))
	for _, row := range rows {
		classes = append(classes, row.toClass())
	}
	return classes, nil
}

func (repo *classRepository) GetClass(ctx context.Context, id string) (class.Class, error) {
	var row classRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM class WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return class.Class{}, class.ErrNotFound
		}
		return class.Class{}, errors.Wrap(err, "getting class")
	}
	return row.toClass(), nil
}

func (repo *classRepository) DeleteClass(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM class WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting class")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return class.ErrNotFound
	}
	return nil
}

func (repo *classRepository) CreateTeacher(ctx context.Context, tch class.Teacher) (class.Teacher, error) {
	tch.ID = uuid.New().String()
	now := time.Now().UTC()
	tch.CreatedAt = now
	tch.UpdatedAt = now

	const q = `INSERT INTO teacher (id, name, created_at, updated_at)
	VALUES (:id, :name, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, teacherRow(tch)); err != nil {
		return class.Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	return tch, nil
}

func (repo *classRepository) QueryAllTeachers(ctx context.Context) ([]class.Teacher, error) {
	var rows []teacherRow
	const q = `SELECT * FROM teacher ORDER BY name`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	teachers := make([]class.Teacher, 0, len(rows))
	for _, row := range rows {
		teachers = append(teachers, class.Teacher(row))
	}
	return teachers, nil
}

func (repo *classRepository) GetTeacher(ctx context.Context, id string) (class.Teacher, error) {
	var row teacherRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM teacher WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return class.Teacher{}, class.ErrTeacherNotFound
		}
		return class.Teacher{}, errors.Wrap(err, "getting teacher")
	}
	return class.Teacher(row), nil
}

func (repo *classRepository) UpdateTeacher(ctx context.Context, tch class.Teacher) (class.Teacher, error) {
	tch.UpdatedAt = time.Now().UTC()

	const q = `UPDATE teacher SET name = :name, updated_at = :updated_at WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, teacherRow(tch))
	if err != nil {
		return class.Teacher{}, errors.Wrap(err, "updating teacher")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return class.Teacher{}, class.ErrTeacherNotFound
	}
	return tch, nil
}

func (repo *classRepository) DeleteTeacher(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM teacher WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return class.ErrTeacherNotFound
	}
	return nil
}
