package exam

import (
	"context"
	"time"

	"github.com/dev-mario/raspored/core/calendar"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ne NewExam) (Exam, error) {
	now := time.Now().UTC()
	exm := Exam{
		Date:       calendar.Midnight(ne.Date),
		SequenceID: ne.SequenceID,
		ClassID:    ne.ClassID,
		Content:    ne.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateExam(ctx, exm)
}

func (svc *Service) FindByDate(ctx context.Context, date time.Time) ([]Exam, error) {
	day := calendar.Midnight(date)
	return svc.repo.FindExamsBetween(ctx, day, day)
}

func (svc *Service) FindBetween(ctx context.Context, from, to time.Time) ([]Exam, error) {
	return svc.repo.FindExamsBetween(ctx, calendar.Midnight(from), calendar.Midnight(to))
}

func (svc *Service) Get(ctx context.Context, id string) (Exam, error) {
	return svc.repo.GetExam(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, ue UpdateExam) (Exam, error) {
	exm, err := svc.repo.GetExam(ctx, id)
	if err != nil {
		return Exam{}, err
	}
	if !ue.Date.IsZero() {
		exm.Date = calendar.Midnight(ue.Date)
	}
	if ue.SequenceID != 0 {
		exm.SequenceID = ue.SequenceID
	}
	if ue.ClassID != "" {
		exm.ClassID = ue.ClassID
	}
	if ue.Content != "" {
		exm.Content = ue.Content
	}
	exm.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateExam(ctx, exm)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteExam(ctx, id)
}
