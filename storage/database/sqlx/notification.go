package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dev-mario/raspored/core/notification"
)

type notificationRow struct {
	ID        string    `db:"id"`
	FromDate  time.Time `db:"from_date"`
	ToDate    time.Time `db:"to_date"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type notificationRepository struct {
	db *sqlx.DB
}

var _ notification.Repository = (*notificationRepository)(nil) // interface compliance check

func NewNotificationRepository(db *sqlx.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) fromRows(rows []notificationRow) []notification.Notification {
	ntfs := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		ntfs = append(ntfs, notification.Notification(row))
	}
	return ntfs
}

func (repo *notificationRepository) CreateNotification(ctx context.Context, ntf notification.Notification) (notification.Notification, error) {
	ntf.ID = uuid.New().String()
	now := time.Now().UTC()
	ntf.CreatedAt = now
	ntf.UpdatedAt = now

	const q = `INSERT INTO notification (id, from_date, to_date, title, content, created_at, updated_at)
	VALUES (:id, :from_date, :to_date, :title, :content, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, notificationRow(ntf)); err != nil {
		return notification.Notification{}, errors.Wrap(err, "inserting notification")
	}
	return ntf, nil
}

func (repo *notificationRepository) QueryAllNotifications(ctx context.Context) ([]notification.Notification, error) {
	var rows []notificationRow
	const q = `SELECT * FROM notification ORDER BY from_date`
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying notifications")
	}
	return repo.fromRows(rows), nil
}

func (repo *notificationRepository) FindNotificationsAt(ctx context.Context, activeAt time.Time) ([]notification.Notification, error) {
	var rows []notificationRow
	const q = `SELECT * FROM notification WHERE from_date <= $1 AND to_date >= $1 ORDER BY from_date`
	if err := repo.db.SelectContext(ctx, &rows, q, activeAt); err != nil {
		return nil, errors.Wrap(err, "finding notifications")
	}
	return repo.fromRows(rows), nil
}

func (repo *notificationRepository) GetNotification(ctx context.Context, id string) (notification.Notification, error) {
	var row notificationRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM notification WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return notification.Notification{}, notification.ErrNotFound
		}
		return notification.Notification{}, errors.Wrap(err, "getting notification")
	}
	return notification.Notification(row), nil
}

func (repo *notificationRepository) UpdateNotification(ctx context.Context, ntf notification.Notification) (notification.Notification, error) {
	ntf.UpdatedAt = time.Now().UTC()

	const q = `UPDATE notification SET from_date = :from_date, to_date = :to_date, title = :title,
	content = :content, updated_at = :updated_at WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, notificationRow(ntf))
	if err != nil {
		return notification.Notification{}, errors.Wrap(err, "updating notification")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notification.Notification{}, notification.ErrNotFound
	}
	return ntf, nil
}

func (repo *notificationRepository) DeleteNotification(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM notification WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting notification")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notification.ErrNotFound
	}
	return nil
}
