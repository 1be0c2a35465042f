// Package echoapi exposes the public JSON API on top of the core services.
package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

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
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		ScheduleSvc     *schedule.Service
		BreakSvc        *breaks.Service
		ChangeSvc       *change.Service
		ExamSvc         *exam.Service
		NoteSvc         *note.Service
		ClassSvc        *class.Service
		NotificationSvc *notification.Service
		SubscriberSvc   *subscriber.Service
		UserSvc         *user.Service

		DisableReqLogs bool
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	s.setup()
	return s
}

type appValidator struct {
	validate *validator.Validate
}

func (v appValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug
	s.app.Validator = appValidator{validate: s.deps.Validate}

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := configureAuth(conf)
	admin := adminMiddleware()

	registerScheduleAPI(v1, jwt, admin, s.deps.ScheduleSvc, conf)
	registerBreakAPI(v1, jwt, admin, s.deps.BreakSvc)
	registerChangeAPI(v1, jwt, admin, s.deps.ChangeSvc, s.deps.ScheduleSvc)
	registerExamAPI(v1, jwt, admin, s.deps.ExamSvc)
	registerNoteAPI(v1, jwt, admin, s.deps.NoteSvc)
	registerClassAPI(v1, jwt, admin, s.deps.ClassSvc)
	registerNotificationAPI(v1, jwt, admin, s.deps.NotificationSvc)
	registerSubscriberAPI(v1, jwt, admin, s.deps.SubscriberSvc)
	registerUserAPI(v1, s.deps.UserSvc)
}

// Start runs the server; the outcome is reported on Errors().
func (s *Server) Start() {
	s.errors <- s.app.Start(s.deps.Conf.Server.Addr)
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown requests a graceful shutdown; used when an integrity issue
// makes continuing unsafe.
func (s *Server) SignalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Dobro došli na Raspored API!")
}
