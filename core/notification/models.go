package notification

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("notification not found")

type (
	// Notification is a site-wide notice displayed between FromDate and ToDate.
	Notification struct {
		ID        string    `json:"id"`
		FromDate  time.Time `json:"from_date"`
		ToDate    time.Time `json:"to_date"`
		Title     string    `json:"title"`
		Content   string    `json:"content,omitempty"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	NewNotification struct {
		FromDate time.Time `json:"from_date" validate:"required"`
		ToDate   time.Time `json:"to_date" validate:"required,gtefield=FromDate"`
		Title    string    `json:"title" validate:"required"`
		Content  string    `json:"content"`
	}

	UpdateNotification struct {
		FromDate time.Time `json:"from_date"`
		ToDate   time.Time `json:"to_date"`
		Title    string    `json:"title"`
		Content  string    `json:"content"`
	}

	Repository interface {
		CreateNotification(ctx context.Context, ntf Notification) (Notification, error)
		QueryAllNotifications(ctx context.Context) ([]Notification, error)
		// FindNotificationsAt returns the notifications whose [FromDate, ToDate]
		// interval contains activeAt.
		FindNotificationsAt(ctx context.Context, activeAt time.Time) ([]Notification, error)
		GetNotification(ctx context.Context, id string) (Notification, error)
		UpdateNotification(ctx context.Context, ntf Notification) (Notification, error)
		DeleteNotification(ctx context.Context, id string) error
	}
)
