package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dev-mario/raspored/core/notification"
)

type notificationRepository struct {
	db *notificationTable
}

var _ notification.Repository = (*notificationRepository)(nil) // interface compliance check

func NewNotificationRepository(db *DB) notification.Repository {
	return &notificationRepository{db: db.notification}
}

func (repo *notificationRepository) query() []notification.Notification {
	ntfs := make([]notification.Notification, 0, len(repo.db.table))
	for _, ntf := range repo.db.table {
		ntfs = append(ntfs, *ntf)
	}
	return ntfs
}

func (repo *notificationRepository) CreateNotification(_ context.Context, ntf notification.Notification) (notification.Notification, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	ntf.ID = uuid.New().String()
	repo.db.table[ntf.ID] = &ntf
	return ntf, nil
}

func (repo *notificationRepository) QueryAllNotifications(_ context.Context) ([]notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	ntfs := repo.query()
	sort.SliceStable(ntfs, func(i, j int) bool { return ntfs[i].FromDate.Before(ntfs[j].FromDate) })
	return ntfs, nil
}

func (repo *notificationRepository) FindNotificationsAt(_ context.Context, activeAt time.Time) ([]notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]notification.Notification, 0)
	for _, ntf := range repo.query() {
		if !activeAt.Before(ntf.FromDate) && !activeAt.After(ntf.ToDate) {
			matches = append(matches, ntf)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].FromDate.Before(matches[j].FromDate) })
	return matches, nil
}

func (repo *notificationRepository) GetNotification(_ context.Context, id string) (notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ntf, ok := repo.db.table[id]; ok {
		return *ntf, nil
	}
	return notification.Notification{}, notification.ErrNotFound
}

func (repo *notificationRepository) UpdateNotification(_ context.Context, ntf notification.Notification) (notification.Notification, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[ntf.ID]; !ok {
		return notification.Notification{}, notification.ErrNotFound
	}
	repo.db.table[ntf.ID] = &ntf
	return ntf, nil
}

func (repo *notificationRepository) DeleteNotification(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return notification.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
