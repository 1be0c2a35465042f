package breaks

import (
	"context"
	"sort"
	"time"

	"github.com/dev-mario/raspored/core/calendar"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nb NewBreak) (Break, error) {
	now := time.Now().UTC()
	brk := Break{
		ValidFrom:  calendar.Midnight(nb.ValidFrom),
		ValidUntil: calendar.Midnight(nb.ValidUntil),
		Status:     nb.Status,
		Options:    nb.Options,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateBreak(ctx, brk)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Break, error) {
	return svc.repo.QueryAllBreaks(ctx)
}

// FindActive returns the break in effect on the given day.
// Overlapping breaks are resolved by the soonest-expiring one.
// ErrNotFound when the day is not during a break.
func (svc *Service) FindActive(ctx context.Context, day time.Time) (Break, error) {
	day = calendar.Midnight(day)
	brks, err := svc.repo.FindBreaks(ctx, day)
	if err != nil {
		return Break{}, err
	}
	if len(brks) == 0 {
		return Break{}, ErrNotFound
	}
	sort.SliceStable(brks, func(i, j int) bool { return brks[i].ValidUntil.Before(brks[j].ValidUntil) })
	return brks[0], nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteBreak(ctx, id)
}
