package class

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewClass) (Class, error) {
	now := time.Now().UTC()
	cls := Class{
		Name:       nc.Name,
		Type:       nc.Type,
		TeacherIDs: nc.TeacherIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryAllClasses(ctx)
}

func (svc *Service) Get(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClass(ctx, id)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteClass(ctx, id)
}

func (svc *Service) CreateTeacher(ctx context.Context, nt NewTeacher) (Teacher, error) {
	now := time.Now().UTC()
	tch := Teacher{
		Name:      nt.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateTeacher(ctx, tch)
}

func (svc *Service) QueryAllTeachers(ctx context.Context) ([]Teacher, error) {
	return svc.repo.QueryAllTeachers(ctx)
}

func (svc *Service) GetTeacher(ctx context.Context, id string) (Teacher, error) {
	return svc.repo.GetTeacher(ctx, id)
}

func (svc *Service) UpdateTeacher(ctx context.Context, id string, ut UpdateTeacher) (Teacher, error) {
	tch, err := svc.repo.GetTeacher(ctx, id)
	if err != nil {
		return Teacher{}, err
	}
	tch.Name = ut.Name
	tch.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTeacher(ctx, tch)
}

func (svc *Service) DeleteTeacher(ctx context.Context, id string) error {
	return svc.repo.DeleteTeacher(ctx, id)
}
