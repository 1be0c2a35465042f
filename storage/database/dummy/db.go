// Package dummydb is an in-memory implementation of the repositories, used
// by tests and local development.
package dummydb

import (
	"sync"

	"github.com/dev-mario/raspored/core/breaks"
	"github.com/dev-mario/raspored/core/change"
	"github.com/dev-mario/raspored/core/class"
	"github.com/dev-mario/raspored/core/exam"
	"github.com/dev-mario/raspored/core/note"
	"github.com/dev-mario/raspored/core/notification"
	"github.com/dev-mario/raspored/core/schedule"
	"github.com/dev-mario/raspored/core/subscriber"
	"github.com/dev-mario/raspored/core/user"
)

type (
	DB struct {
		timetable    *timetableTable
		breaks       *breakTable
		change       *changeTable
		class        *classTable
		teacher      *teacherTable
		exam         *examTable
		note         *noteTable
		notification *notificationTable
		subscriber   *subscriberTable
		user         *userTable
	}

	timetableTable struct {
		sync.RWMutex
		table map[string]*schedule.Timetable
	}
	breakTable struct {
		sync.RWMutex
		table map[string]*breaks.Break
	}
	changeTable struct {
		sync.RWMutex
		table map[string]*change.Change
	}
	classTable struct {
		sync.RWMutex
		table map[string]*class.Class
	}
	teacherTable struct {
		sync.RWMutex
		table map[string]*class.Teacher
	}
	examTable struct {
		sync.RWMutex
		table map[string]*exam.Exam
	}
	noteTable struct {
		sync.RWMutex
		table map[string]*note.Note
	}
	notificationTable struct {
		sync.RWMutex
		table map[string]*notification.Notification
	}
	subscriberTable struct {
		sync.RWMutex
		table map[string]*subscriber.Subscriber
	}
	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}
)

func Open() (*DB, error) {
	db := &DB{
		timetable:    &timetableTable{table: make(map[string]*schedule.Timetable)},
		breaks:       &breakTable{table: make(map[string]*breaks.Break)},
		change:       &changeTable{table: make(map[string]*change.Change)},
		class:        &classTable{table: make(map[string]*class.Class)},
		teacher:      &teacherTable{table: make(map[string]*class.Teacher)},
		exam:         &examTable{table: make(map[string]*exam.Exam)},
		note:         &noteTable{table: make(map[string]*note.Note)},
		notification: &notificationTable{table: make(map[string]*notification.Notification)},
		subscriber:   &subscriberTable{table: make(map[string]*subscriber.Subscriber)},
		user:         &userTable{table: make(map[string]*user.User)},
	}
	return db, nil
}
