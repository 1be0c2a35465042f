package notification

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

func (svc *Service) Create(ctx context.Context, nn NewNotification) (Notification, error) {
	now := time.Now().UTC()
	ntf := Notification{
		FromDate:  calendar.Midnight(nn.FromDate),
		ToDate:    calendar.Midnight(nn.ToDate),
		Title:     nn.Title,
		Content:   nn.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateNotification(ctx, ntf)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Notification, error) {
	return svc.repo.QueryAllNotifications(ctx)
}

// FindActive returns the first notification in effect on the given day.
// ErrNotFound when there is none.
func (svc *Service) FindActive(ctx context.Context, day time.Time) (Notification, error) {
	ntfs, err := svc.repo.FindNotificationsAt(ctx, calendar.Midnight(day))
	if err != nil {
		return Notification{}, err
	}
	if len(ntfs) == 0 {
		return Notification{}, ErrNotFound
	}
	return ntfs[0], nil
}

func (svc *Service) Get(ctx context.Context, id string) (Notification, error) {
	return svc.repo.GetNotification(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, un UpdateNotification) (Notification, error) {
	ntf, err := svc.repo.GetNotification(ctx, id)
	if err != nil {
		return Notification{}, err
	}
	if !un.FromDate.IsZero() {
		ntf.FromDate = calendar.Midnight(un.FromDate)
	}
	if !un.ToDate.IsZero() {
		ntf.ToDate = calendar.Midnight(un.ToDate)
	}
	if un.Title != "" {
		ntf.Title = un.Title
	}
	if un.Content != "" {
		ntf.Content = un.Content
	}
	ntf.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateNotification(ctx, ntf)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteNotification(ctx, id)
}
