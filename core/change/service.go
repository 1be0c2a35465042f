package change

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

func (svc *Service) Create(ctx context.Context, nc NewChange) (Change, error) {
	now := time.Now().UTC()
	chg := Change{
		Date:           calendar.Midnight(nc.Date),
		SequenceID:     nc.SequenceID,
		ClassID:        nc.ClassID,
		SubstitutionID: nc.SubstitutionID,
		Location:       nc.Location,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return svc.repo.CreateChange(ctx, chg)
}

func (svc *Service) FindByDate(ctx context.Context, date time.Time) ([]Change, error) {
	return svc.repo.FindChangesByDate(ctx, calendar.Midnight(date))
}

func (svc *Service) Get(ctx context.Context, id string) (Change, error) {
	return svc.repo.GetChange(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, uc UpdateChange) (Change, error) {
	chg, err := svc.repo.GetChange(ctx, id)
	if err != nil {
		return Change{}, err
	}
	if uc.SequenceID != 0 {
		chg.SequenceID = uc.SequenceID
	}
	if uc.ClassID != "" {
		chg.ClassID = uc.ClassID
	}
	if uc.SubstitutionID != "" {
		chg.SubstitutionID = uc.SubstitutionID
	}
	if uc.Location != "" {
		chg.Location = uc.Location
	}
	chg.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateChange(ctx, chg)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteChange(ctx, id)
}
