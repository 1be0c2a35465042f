package subscriber

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound    = errors.New("subscriber not found")
	ErrEmailExists = errors.New("a subscriber with this email already exists")
)

// Subscription tags.
const (
	SubWeekly  = "weekly"
	SubChanges = "changes"
	SubExams   = "exams"
)

var AllSubscriptions = []string{SubWeekly, SubChanges, SubExams}

type (
	// Subscriber is an email recipient of one or more digests. AccessKey is
	// the opaque token used to manage the subscription without an account.
	Subscriber struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		Email         string    `json:"email"`
		Subscriptions []string  `json:"subscriptions"`
		AccessKey     string    `json:"-"`
		CreatedAt     time.Time `json:"created_at"`
		UpdatedAt     time.Time `json:"updated_at"`
	}

	NewSubscriber struct {
		Name          string   `json:"name" validate:"required"`
		Email         string   `json:"email" validate:"required,email"`
		Subscriptions []string `json:"subscriptions" validate:"required,min=1,subscriptions"`
	}

	UpdateSubscriber struct {
		Name          string   `json:"name"`
		Subscriptions []string `json:"subscriptions" validate:"omitempty,min=1,subscriptions"`
	}

	Repository interface {
		CreateSubscriber(ctx context.Context, sub Subscriber) (Subscriber, error)
		GetSubscriberByEmail(ctx context.Context, email string) (Subscriber, error)
		GetSubscriberByKey(ctx context.Context, accessKey string) (Subscriber, error)
		// FindSubscribersBySubscription returns every subscriber holding the
		// given subscription tag.
		FindSubscribersBySubscription(ctx context.Context, subscription string) ([]Subscriber, error)
		UpdateSubscriber(ctx context.Context, sub Subscriber) (Subscriber, error)
		DeleteSubscriber(ctx context.Context, id string) error
	}
)

// SubscribedTo reports whether the subscriber holds the given tag.
func (s Subscriber) SubscribedTo(subscription string) bool {
	for _, sub := range s.Subscriptions {
		if sub == subscription {
			return true
		}
	}
	return false
}
