package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/dev-mario/raspored/core"
	"github.com/dev-mario/raspored/core/breaks"
	"github.com/dev-mario/raspored/core/change"
	"github.com/dev-mario/raspored/core/digest"
	"github.com/dev-mario/raspored/core/exam"
	"github.com/dev-mario/raspored/core/note"
	"github.com/dev-mario/raspored/core/schedule"
	"github.com/dev-mario/raspored/core/subscriber"
	"github.com/dev-mario/raspored/core/user"
	emailsvc "github.com/dev-mario/raspored/services/email"
	logsvc "github.com/dev-mario/raspored/services/logger"
	"github.com/dev-mario/raspored/storage/database"
	sqlxrepos "github.com/dev-mario/raspored/storage/database/sqlx"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer db.Close()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(logger, conf)
	}
	core.ParseEmailTemplates(logger, conf)

	classRepo := sqlxrepos.NewClassRepository(db)
	breakSvc := breaks.NewService(sqlxrepos.NewBreakRepository(db))
	changeSvc := change.NewService(sqlxrepos.NewChangeRepository(db))
	schedSvc := schedule.NewService(sqlxrepos.NewTimetableRepository(db), breakSvc, changeSvc, classRepo, conf)
	examSvc := exam.NewService(sqlxrepos.NewExamRepository(db))
	noteSvc := note.NewService(sqlxrepos.NewNoteRepository(db))
	subSvc := subscriber.NewService(sqlxrepos.NewSubscriberRepository(db), mailSvc, conf)

	cli := commandLine{
		db:        db,
		usrSvc:    user.NewService(sqlxrepos.NewUserRepository(db)),
		digestSvc: digest.NewService(schedSvc, examSvc, noteSvc, subSvc, classRepo, mailSvc),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		os.Exit(1)
	}
}

// setUpDB never migrates; migrations are run explicitly via the migrate command.
func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}
	return database.Open(conf)
}
