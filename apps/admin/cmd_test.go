package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"testing"

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
	dummydb "github.com/dev-mario/raspored/storage/database/dummy"
	testutil "github.com/dev-mario/raspored/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()

	conf := testutil.NewConfig()

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)
	core.ParseEmailTemplates(logger, conf)

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	usrRepo = dummydb.NewUserRepository(db)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	classRepo := dummydb.NewClassRepository(db)
	breakSvc := breaks.NewService(dummydb.NewBreakRepository(db))
	changeSvc := change.NewService(dummydb.NewChangeRepository(db))
	schedSvc := schedule.NewService(dummydb.NewTimetableRepository(db), breakSvc, changeSvc, classRepo, conf)
	examSvc := exam.NewService(dummydb.NewExamRepository(db))
	noteSvc := note.NewService(dummydb.NewNoteRepository(db))
	subSvc := subscriber.NewService(dummydb.NewSubscriberRepository(db), mailSvc, conf)

	return &commandLine{
		db:        &sqlx.DB{},
		usrSvc:    user.NewService(usrRepo),
		digestSvc: digest.NewService(schedSvc, examSvc, noteSvc, subSvc, classRepo, mailSvc),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	migrationRunFunc = func(command string, db *sql.DB, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "timetable", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	testutil.CreateUser(t, usrRepo, "Taken", "taken", "taken@test.hr", "mdr", false, true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "username but no email", args: []string{"adduser", "-username", "mario"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "mario", "-email", "mario@test.hr"}, wantErr: errHelp},
		{name: "existing username", args: []string{"adduser", "-username", "taken", "-email", "new@test.hr"}, extra: extra{pwd: "lol"}, wantErr: user.ErrUserExists},
		{name: "ok", args: []string{"adduser", "-username", "mario", "-email", "mario@test.hr"}, extra: extra{pwd: "lol"}},
		{name: "ok: admin", args: []string{"adduser", "-username", "ravnatelj", "-email", "ravnatelj@test.hr", "-name", "Ravnatelj", "-admin"}, extra: extra{pwd: "lol"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	usr, err := usrRepo.GetUserByUsernameOrEmail(context.Background(), "ravnatelj")
	if err != nil {
		t.Fatalf("GetUserByUsernameOrEmail() failed: %v", err)
	}
	if !usr.IsAdmin {
		t.Error("expected created user to be admin")
	}
	if !usr.IsActive {
		t.Error("expected created user to be active")
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe", "awe@test.hr", "mdr", false, true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", usr.Username}, extra: extra{pwd: "lol"}},
		{name: "reset with email", args: []string{"resetpassword", "-username", usr.Email}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUserByID(context.Background(), usr.ID)
				if err != nil {
					t.Fatalf("GetUserByID() failed: %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_sendDigest(t *testing.T) {
	cli := setup(t)
	emailsvc.ClearSentMessages()

	tests := []cliTest{
		{name: "no type", args: []string{"senddigest"}, wantErr: errHelp},
		{name: "unknown type", args: []string{"senddigest", "-type", "lol"}, wantErrStr: "\"lol\": no such digest type"},
		{name: "weekly", args: []string{"senddigest", "-type", "weekly"}},
		{name: "changes", args: []string{"senddigest", "-type", "changes"}},
		{name: "exams", args: []string{"senddigest", "-type", "exams"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}

	// no subscribers exist, so successful runs must not have sent anything
	if n := len(emailsvc.SentMessages); n != 0 {
		t.Errorf("expected no emails sent, got %d", n)
	}
}
