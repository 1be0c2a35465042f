package note

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

func (svc *Service) Create(ctx context.Context, nn NewNote) (Note, error) {
	now := time.Now().UTC()
	nte := Note{
		Date:       calendar.Midnight(nn.Date),
		SequenceID: nn.SequenceID,
		ClassID:    nn.ClassID,
		Body:       nn.Body,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if !nn.Reminder.IsZero() {
		nte.Reminder = calendar.Midnight(nn.Reminder)
	}
	return svc.repo.CreateNote(ctx, nte)
}

func (svc *Service) FindByDate(ctx context.Context, date time.Time) ([]Note, error) {
	return svc.repo.FindNotesByDate(ctx, calendar.Midnight(date))
}

func (svc *Service) FindByReminderBetween(ctx context.Context, from, to time.Time) ([]Note, error) {
	return svc.repo.FindNotesByReminderBetween(ctx, calendar.Midnight(from), calendar.Midnight(to))
}

func (svc *Service) Get(ctx context.Context, id string) (Note, error) {
	return svc.repo.GetNote(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, un UpdateNote) (Note, error) {
	nte, err := svc.repo.GetNote(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if !un.Date.IsZero() {
		nte.Date = calendar.Midnight(un.Date)
	}
	if un.SequenceID != 0 {
		nte.SequenceID = un.SequenceID
	}
	if un.ClassID != "" {
		nte.ClassID = un.ClassID
	}
	if un.Body != "" {
		nte.Body = un.Body
	}
	if !un.Reminder.IsZero() {
		nte.Reminder = calendar.Midnight(un.Reminder)
	}
	nte.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateNote(ctx, nte)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteNote(ctx, id)
}
