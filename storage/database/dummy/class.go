package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/dev-mario/raspored/core/class"
)

type classRepository struct {
	classes  *classTable
	teachers *teacherTable
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *DB) class.Repository {
	return &classRepository{classes: db.class, teachers: db.teacher}
}

func (repo *classRepository) CreateClass(_ context.Context, cls class.Class) (class.Class, error) {
	repo.classes.Lock()
	defer repo.classes.Unlock()

	cls.ID = uuid.New().String()
	repo.classes.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) QueryAllClasses(_ context.Context) ([]class.Class, error) {
	repo.classes.RLock()
	defer repo.classes.RUnlock()

	classes := make([]class.Class, 0, len(repo.classes.table))
	for _, cls := range repo.classes.table {
		classes = append(classes, *cls)
	}
	sort.SliceStable(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes, nil
}

func (repo *classRepository) GetClass(_ context.Context, id string) (class.Class, error) {
	repo.classes.RLock()
	defer repo.classes.RUnlock()

	if cls, ok := repo.classes.table[id]; ok {
		return *cls, nil
	}
	return class.Class{}, class.ErrNotFound
}

func (repo *classRepository) DeleteClass(_ context.Context, id string) error {
	repo.classes.Lock()
	defer repo.classes.Unlock()

	if _, ok := repo.classes.table[id]; !ok {
		return class.ErrNotFound
	}
	delete(repo.classes.table, id)
	return nil
}

func (repo *classRepository) CreateTeacher(_ context.Context, tch class.Teacher) (class.Teacher, error) {
	repo.teachers.Lock()
	defer repo.teachers.Unlock()

	tch.ID = uuid.New().String()
	repo.teachers.table[tch.ID] = &tch
	return tch, nil
}

func (repo *classRepository) QueryAllTeachers(_ context.Context) ([]class.Teacher, error) {
	repo.teachers.RLock()
	defer repo.teachers.RUnlock()

	teachers := make([]class.Teacher, 0, len(repo.teachers.table))
	for _, tch := range repo.teachers.table {
		teachers = append(teachers, *tch)
	}
	sort.SliceStable(teachers, func(i, j int) bool { return teachers[i].Name < teachers[j].Name })
	return teachers, nil
}

func (repo *classRepository) GetTeacher(_ context.Context, id string) (class.Teacher, error) {
	repo.teachers.RLock()
	defer repo.teachers.RUnlock()

	if tch, ok := repo.teachers.table[id]; ok {
		return *tch, nil
	}
	return class.Teacher{}, class.ErrTeacherNotFound
}

func (repo *classRepository) UpdateTeacher(_ context.Context, tch class.Teacher) (class.Teacher, error) {
	repo.teachers.Lock()
	defer repo.teachers.Unlock()

	if _, ok := repo.teachers.table[tch.ID]; !ok {
		return class.Teacher{}, class.ErrTeacherNotFound
	}
	repo.teachers.table[tch.ID] = &tch
	return tch, nil
}

func (repo *classRepository) DeleteTeacher(_ context.Context, id string) error {
	repo.teachers.Lock()
	defer repo.teachers.Unlock()

	if _, ok := repo.teachers.table[id]; !ok {
		return class.ErrTeacherNotFound
	}
	delete(repo.teachers.table, id)
	return nil
}
