package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/dev-mario/raspored/core/subscriber"
)

type subscriberRepository struct {
	db *subscriberTable
}

var _ subscriber.Repository = (*subscriberRepository)(nil) // interface compliance check

func NewSubscriberRepository(db *DB) subscriber.Repository {
	return &subscriberRepository{db: db.subscriber}
}

func (repo *subscriberRepository) CreateSubscriber(_ context.Context, sub subscriber.Subscriber) (subscriber.Subscriber, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sub.ID = uuid.New().String()
	repo.db.table[sub.ID] = &sub
	return sub, nil
}

func (repo *subscriberRepository) GetSubscriberByEmail(_ context.Context, email string) (subscriber.Subscriber, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, sub := range repo.db.table {
		if sub.Email == email {
			return *sub, nil
		}
	}
	return subscriber.Subscriber{}, subscriber.ErrNotFound
}

func (repo *subscriberRepository) GetSubscriberByKey(_ context.Context, accessKey string) (subscriber.Subscriber, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, sub := range repo.db.table {
		if sub.AccessKey == accessKey {
			return *sub, nil
		}
	}
	return subscriber.Subscriber{}, subscriber.ErrNotFound
}

func (repo *subscriberRepository) FindSubscribersBySubscription(_ context.Context, subscription string) ([]subscriber.Subscriber, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]subscriber.Subscriber, 0)
	for _, sub := range repo.db.table {
		if sub.SubscribedTo(subscription) {
			matches = append(matches, *sub)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches, nil
}

func (repo *subscriberRepository) UpdateSubscriber(_ context.Context, sub subscriber.Subscriber) (subscriber.Subscriber, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[sub.ID]; !ok {
		return subscriber.Subscriber{}, subscriber.ErrNotFound
	}
	repo.db.table[sub.ID] = &sub
	return sub, nil
}

func (repo *subscriberRepository) DeleteSubscriber(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return subscriber.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
