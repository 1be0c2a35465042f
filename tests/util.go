// Package testutil holds shared helpers for the test suites.
package testutil

import (
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/dev-mario/raspored/core"
	"github.com/dev-mario/raspored/core/calendar"
	"github.com/dev-mario/raspored/core/schedule"
	"github.com/dev-mario/raspored/core/user"
)

// NewConfig builds a self-contained test configuration and publishes it as
// core.Conf for the template helpers.
func NewConfig() *core.Config {
	conf := &core.Config{
		Env:                 "TEST",
		Debug:               false,
		TestMode:            true,
		Build:               "test",
		WorkDir:             core.Getwd(),
		AppName:             "Raspored",
		SecretKey:           "s3cr3t-t3st-k3y",
		FrontendBaseURL:     "http://localhost:3000",
		DefaultFromEmail:    mail.Address{Name: "Raspored", Address: "raspored@localhost"},
		ScheduleHorizonDays: 30,
		Server: core.ServerConfig{
			Host:               "localhost",
			Addr:               ":8000",
			ShutdownTimeout:    5 * time.Second,
			JWTExpirationDelta: 7 * 24 * time.Hour,
		},
	}
	core.Conf = conf
	return conf
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	isAdmin, isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		IsAdmin:   isAdmin,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// Date is a shorthand for a midnight-UTC date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func CreateTimetable(
	t *testing.T,
	repo schedule.Repository,
	week calendar.WeekParity,
	day calendar.Weekday,
	slots []schedule.Slot,
	validFrom, validUntil time.Time,
) schedule.Timetable {
	t.Helper()

	tt, err := repo.CreateTimetable(context.Background(), schedule.Timetable{
		WeekParity: week,
		Weekday:    day,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
		Slots:      slots,
	})
	if err != nil {
		t.Fatalf("CreateTimetable() failed: %v", err)
	}
	return tt
}
