package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/dev-mario/raspored/core/subscriber"
)

type subscriberRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Email         string         `db:"email"`
	Subscriptions pq.StringArray `db:"subscriptions"`
	AccessKey     string         `db:"access_key"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (row subscriberRow) toSubscriber() subscriber.Subscriber {
	return subscriber.Subscriber{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		Subscriptions: row.Subscriptions,
		AccessKey:     row.AccessKey,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

type subscriberRepository struct {
	db *sqlx.DB
}

var _ subscriber.Repository = (*subscriberRepository)(nil) // interface compliance check

func NewSubscriberRepository(db *sqlx.DB) subscriber.Repository {
	return &subscriberRepository{db: db}
}

func (repo *subscriberRepository) row(sub subscriber.Subscriber) subscriberRow {
	return subscriberRow{
		ID:            sub.ID,
		Name:          sub.Name,
		Email:         sub.Email,
		Subscriptions: sub.Subscriptions,
		AccessKey:     sub.AccessKey,
		CreatedAt:     sub.CreatedAt,
		UpdatedAt:     sub.UpdatedAt,
	}
}

func (repo *subscriberRepository) CreateSubscriber(ctx context.Context, sub subscriber.Subscriber) (subscriber.Subscriber, error) {
	sub.ID = uuid.New().String()
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	const q = `INSERT INTO subscriber (id, name, email, subscriptions, access_key, created_at, updated_at)
	VALUES (:id, :name, :email, :subscriptions, :access_key, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, repo.row(sub)); err != nil {
		return subscriber.Subscriber{}, errors.Wrap(err, "inserting subscriber")
	}
	return sub, nil
}

func (repo *subscriberRepository) GetSubscriberByEmail(ctx context.Context, email string) (subscriber.Subscriber, error) {
	var row subscriberRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM subscriber WHERE email = $1`, email); err != nil {
		if err == sql.ErrNoRows {
			return subscriber.Subscriber{}, subscriber.ErrNotFound
		}
		return subscriber.Subscriber{}, errors.Wrap(err, "getting subscriber")
	}
	return row.toSubscriber(), nil
}

func (repo *subscriberRepository) GetSubscriberByKey(ctx context.Context, accessKey string) (subscriber.Subscriber, error) {
	var row subscriberRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM subscriber WHERE access_key = $1`, accessKey); err != nil {
		if err == sql.ErrNoRows {
			return subscriber.Subscriber{}, subscriber.ErrNotFound
		}
		return subscriber.Subscriber{}, errors.Wrap(err, "getting subscriber")
	}
	return row.toSubscriber(), nil
}

func (repo *subscriberRepository) FindSubscribersBySubscription(ctx context.Context, subscription string) ([]subscriber.Subscriber, error) {
	var rows []subscriberRow
	const q = `SELECT * FROM subscriber WHERE $1 = ANY(subscriptions) ORDER BY name`
	if err := repo.db.SelectContext(ctx, &rows, q, subscription); err != nil {
		return nil, errors.Wrap(err, "finding subscribers")
	}
	subs := make([]subscriber.Subscriber, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, row.toSubscriber())
	}
	return subs, nil
}

func (repo *subscriberRepository) UpdateSubscriber(ctx context.Context, sub subscriber.Subscriber) (subscriber.Subscriber, error) {
	sub.UpdatedAt = time.Now().UTC()

	const q = `UPDATE subscriber SET name = :name, email = :email, subscriptions = :subscriptions,
	access_key = :access_key, updated_at = :updated_at WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, repo.row(sub))
	if err != nil {
		return subscriber.Subscriber{}, errors.Wrap(err, "updating subscriber")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return subscriber.Subscriber{}, subscriber.ErrNotFound
	}
	return sub, nil
}

func (repo *subscriberRepository) DeleteSubscriber(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM subscriber WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting subscriber")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return subscriber.ErrNotFound
	}
	return nil
}
