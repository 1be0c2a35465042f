package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/dev-mario/raspored/apps/api/echo"
	"github.com/dev-mario/raspored/core"
	"github.com/dev-mario/raspored/core/breaks"
	"github.com/dev-mario/raspored/core/change"
	"github.com/dev-mario/raspored/core/class"
	"github.com/dev-mario/raspored/core/exam"
	"github.com/dev-mario/raspored/core/note"
	"github.com/dev-mario/raspored/core/notification"
	"github.com/dev-mario/raspored/core/schedule"
	"github.com/dev-mario/raspored/core/subscriber"
	"github.com/dev-mario/raspored/core/user"
	emailsvc "github.com/dev-mario/raspored/services/email"
	logsvc "github.com/dev-mario/raspored/services/logger"
	"github.com/dev-mario/raspored/storage/database"
	sqlxrepos "github.com/dev-mario/raspored/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(logger, conf)
	}

	classRepo := sqlxrepos.NewClassRepository(db)
	breakSvc := breaks.NewService(sqlxrepos.NewBreakRepository(db))
	changeSvc := change.NewService(sqlxrepos.NewChangeRepository(db))
	schedSvc := schedule.NewService(sqlxrepos.NewTimetableRepository(db), breakSvc, changeSvc, classRepo, conf)
	examSvc := exam.NewService(sqlxrepos.NewExamRepository(db))
	noteSvc := note.NewService(sqlxrepos.NewNoteRepository(db))
	classSvc := class.NewService(classRepo)
	notifSvc := notification.NewService(sqlxrepos.NewNotificationRepository(db))
	subSvc := subscriber.NewService(sqlxrepos.NewSubscriberRepository(db), mailSvc, conf)
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)
	subscriber.InitValidators(validate, translator)

	core.ParseEmailTemplates(logger, conf)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:            conf,
			Logger:          logger,
			Validate:        validate,
			Translator:      translator,
			ScheduleSvc:     schedSvc,
			BreakSvc:        breakSvc,
			ChangeSvc:       changeSvc,
			ExamSvc:         examSvc,
			NoteSvc:         noteSvc,
			ClassSvc:        classSvc,
			NotificationSvc: notifSvc,
			SubscriberSvc:   subSvc,
			UserSvc:         usrSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
