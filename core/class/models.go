package class

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound        = errors.New("class not found")
	ErrTeacherNotFound = errors.New("teacher not found")
)

type (
	// Class is a taught subject; parallel groups of a class may be taught by
	// several teachers at once.
	Class struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		Type       string    `json:"type,omitempty"`
		TeacherIDs []string  `json:"teacher_ids"`
		CreatedAt  time.Time `json:"created_at"`
		UpdatedAt  time.Time `json:"updated_at"`
	}

	Teacher struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	NewClass struct {
		Name       string   `json:"name" validate:"required"`
		Type       string   `json:"type"`
		TeacherIDs []string `json:"teacher_ids" validate:"required,min=1"`
	}

	NewTeacher struct {
		Name string `json:"name" validate:"required"`
	}

	UpdateTeacher struct {
		Name string `json:"name" validate:"required"`
	}

	Repository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		QueryAllClasses(ctx context.Context) ([]Class, error)
		GetClass(ctx context.Context, id string) (Class, error)
		DeleteClass(ctx context.Context, id string) error

		CreateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		GetTeacher(ctx context.Context, id string) (Teacher, error)
		UpdateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		DeleteTeacher(ctx context.Context, id string) error
	}
)
