package user

import (
	"context"
	"time"

	"github.com/dev-mario/raspored/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a user; used by the admin CLI only.
func (svc *Service) Create(ctx context.Context, name, username, email, pwd string, isAdmin bool) (User, error) {
	username = core.CleanString(username, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	if _, err := svc.repo.GetUserByUsernameOrEmail(ctx, username); err == nil {
		return User{}, ErrUserExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		Name:      core.CleanString(name),
		Username:  username,
		Email:     email,
		IsActive:  true,
		IsAdmin:   isAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByUsernameOrEmail(ctx context.Context, username string) (User, error) {
	return svc.repo.GetUserByUsernameOrEmail(ctx, core.CleanString(username, true /* lower */))
}

func (svc *Service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) ResetPassword(ctx context.Context, username, pwd string) (User, error) {
	usr, err := svc.GetByUsernameOrEmail(ctx, username)
	if err != nil {
		return User{}, err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}
