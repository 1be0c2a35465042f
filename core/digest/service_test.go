package digest_test

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dev-mario/raspored/core"
	"github.com/dev-mario/raspored/core/breaks"
	"github.com/dev-mario/raspored/core/calendar"
	"github.com/dev-mario/raspored/core/change"
	"github.com/dev-mario/raspored/core/class"
	"github.com/dev-mario/raspored/core/digest"
	"github.com/dev-mario/raspored/core/exam"
	"github.com/dev-mario/raspored/core/note"
	"github.com/dev-mario/raspored/core/schedule"
	"github.com/dev-mario/raspored/core/subscriber"
	emailsvc "github.com/dev-mario/raspored/services/email"
	logsvc "github.com/dev-mario/raspored/services/logger"
	dummydb "github.com/dev-mario/raspored/storage/database/dummy"
	testutil "github.com/dev-mario/raspored/tests"
)

var ctx = context.Background()

type fixture struct {
	svc       *digest.Service
	chgRepo   change.Repository
	mathID    string
	physicsID string
}

// setup seeds a school week around Tuesday 2024-02-06 (ISO week 6, even):
// a timetable, an exam and a reminder note in the 02-05..02-09 window, and
// two subscribers (one holding every tag, one changes-only).
func setup(t *testing.T) *fixture {
	t.Helper()

	conf := testutil.NewConfig()

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)
	core.ParseEmailTemplates(logger, conf)

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	emailsvc.ClearSentMessages()

	classRepo := dummydb.NewClassRepository(db)
	ttRepo := dummydb.NewTimetableRepository(db)
	examRepo := dummydb.NewExamRepository(db)
	noteRepo := dummydb.NewNoteRepository(db)
	subRepo := dummydb.NewSubscriberRepository(db)
	chgRepo := dummydb.NewChangeRepository(db)

	breakSvc := breaks.NewService(dummydb.NewBreakRepository(db))
	changeSvc := change.NewService(chgRepo)
	schedSvc := schedule.NewService(ttRepo, breakSvc, changeSvc, classRepo, conf)
	examSvc := exam.NewService(examRepo)
	noteSvc := note.NewService(noteRepo)
	subSvc := subscriber.NewService(subRepo, mailSvc, conf)

	f := &fixture{
		svc:     digest.NewService(schedSvc, examSvc, noteSvc, subSvc, classRepo, mailSvc),
		chgRepo: chgRepo,
	}

	math, err := classRepo.CreateClass(ctx, class.Class{Name: "Matematika"})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	f.mathID = math.ID
	physics, err := classRepo.CreateClass(ctx, class.Class{Name: "Fizika"})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	f.physicsID = physics.ID

	testutil.CreateTimetable(t, ttRepo, calendar.Even, calendar.Utorak,
		[]schedule.Slot{{SequenceID: 2, ClassIDs: []string{f.mathID}, StartTime: "08:50", EndTime: "09:35", Location: "Kabinet 1"}},
		testutil.Date(2023, time.September, 1), testutil.Date(2024, time.June, 21))

	for _, exm := range []exam.Exam{
		{Date: testutil.Date(2024, time.February, 6), SequenceID: 2, ClassID: f.mathID, Content: "1. pismena provjera"},
		{Date: testutil.Date(2024, time.February, 12), SequenceID: 2, ClassID: f.mathID, Content: "izvan tjedna"},
	} {
		if _, err = examRepo.CreateExam(ctx, exm); err != nil {
			t.Fatalf("CreateExam() failed: %v", err)
		}
	}
	for _, nte := range []note.Note{
		{Date: testutil.Date(2024, time.February, 1), SequenceID: 1, ClassID: f.physicsID, Body: "donijeti laboratorijski dnevnik", Reminder: testutil.Date(2024, time.February, 8)},
		{Date: testutil.Date(2024, time.February, 7), SequenceID: 1, ClassID: f.physicsID, Body: "bez podsjetnika"},
	} {
		if _, err = noteRepo.CreateNote(ctx, nte); err != nil {
			t.Fatalf("CreateNote() failed: %v", err)
		}
	}
	for _, sub := range []subscriber.Subscriber{
		{Name: "Ana", Email: "ana@test.hr", Subscriptions: subscriber.AllSubscriptions, AccessKey: "key-ana"},
		{Name: "Ivan", Email: "ivan@test.hr", Subscriptions: []string{subscriber.SubChanges}, AccessKey: "key-ivan"},
	} {
		if _, err = subRepo.CreateSubscriber(ctx, sub); err != nil {
			t.Fatalf("CreateSubscriber() failed: %v", err)
		}
	}
	return f
}

func TestService_BuildWeekly(t *testing.T) {
	f := setup(t)

	// Friday; the window is the following business week 02-05..02-09
	got, err := f.svc.BuildWeekly(ctx, testutil.Date(2024, time.February, 2))
	if err != nil {
		t.Fatalf("BuildWeekly() failed: %v", err)
	}

	if got.FromLabel != "05.02." || got.ToLabel != "09.02." {
		t.Errorf("unexpected window labels: %s - %s", got.FromLabel, got.ToLabel)
	}
	if len(got.Exams) != 1 {
		t.Fatalf("expected 1 exam in the window, got %d", len(got.Exams))
	}
	if exm := got.Exams[0]; exm.ClassName != "Matematika" || exm.DateLabel != "06.02. (utorak)" {
		t.Errorf("unexpected exam entry: %+v", exm)
	}
	if len(got.Notes) != 1 {
		t.Fatalf("expected 1 note in the window, got %d", len(got.Notes))
	}
	if nte := got.Notes[0]; nte.ClassName != "Fizika" || nte.DateLabel != "08.02. (četvrtak)" {
		t.Errorf("unexpected note entry: %+v", nte)
	}
}

func TestService_SendWeekly(t *testing.T) {
	f := setup(t)

	if err := f.svc.SendWeekly(ctx, testutil.Date(2024, time.February, 2)); err != nil {
		t.Fatalf("SendWeekly() failed: %v", err)
	}

	// only Ana holds the weekly tag
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("expected 1 sent message, got %d", len(emailsvc.SentMessages))
	}
	msg := emailsvc.SentMessages[0]
	if msg.To[0].Address != "ana@test.hr" {
		t.Errorf("unexpected recipient: %s", msg.To[0].Address)
	}
	if msg.Subject != "Obaveze u tjednu 05.02. - 09.02." {
		t.Errorf("unexpected subject: %s", msg.Subject)
	}
	if !strings.Contains(msg.TextContent, "Matematika") || !strings.Contains(msg.TextContent, "1. pismena provjera") {
		t.Errorf("expected the exam in the body, got:\n%s", msg.TextContent)
	}
	if !strings.Contains(msg.HTMLContent, "donijeti laboratorijski dnevnik") {
		t.Errorf("expected the note in the html body, got:\n%s", msg.HTMLContent)
	}
}

func TestService_SendDailyChanges(t *testing.T) {
	f := setup(t)

	// Monday; the notice covers Tuesday 02-06
	now := testutil.Date(2024, time.February, 5)

	if err := f.svc.SendDailyChanges(ctx, now); err != nil {
		t.Fatalf("SendDailyChanges() failed: %v", err)
	}
	if len(emailsvc.SentMessages) != 0 {
		t.Fatalf("a day without changes must not be announced, got %d messages", len(emailsvc.SentMessages))
	}

	if _, err := f.chgRepo.CreateChange(ctx, change.Change{
		Date: testutil.Date(2024, time.February, 6), SequenceID: 2, ClassID: f.mathID, SubstitutionID: f.physicsID, Location: "Kabinet 2",
	}); err != nil {
		t.Fatalf("CreateChange() failed: %v", err)
	}

	if err := f.svc.SendDailyChanges(ctx, now); err != nil {
		t.Fatalf("SendDailyChanges() failed: %v", err)
	}
	if len(emailsvc.SentMessages) != 2 {
		t.Fatalf("expected 1 message per changes subscriber, got %d", len(emailsvc.SentMessages))
	}
	msg := emailsvc.SentMessages[0]
	if msg.Subject != "Izmjene u rasporedu za 06.02.2024." {
		t.Errorf("unexpected subject: %s", msg.Subject)
	}
	if !strings.Contains(msg.TextContent, "Fizika umjesto Matematika") {
		t.Errorf("expected the substitution in the body, got:\n%s", msg.TextContent)
	}
}

func TestService_SendDailyExams(t *testing.T) {
	f := setup(t)

	// Monday; the reminder covers Tuesday 02-06 which has an exam
	if err := f.svc.SendDailyExams(ctx, testutil.Date(2024, time.February, 5)); err != nil {
		t.Fatalf("SendDailyExams() failed: %v", err)
	}
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("expected 1 sent message, got %d", len(emailsvc.SentMessages))
	}
	msg := emailsvc.SentMessages[0]
	if msg.To[0].Address != "ana@test.hr" {
		t.Errorf("unexpected recipient: %s", msg.To[0].Address)
	}
	if msg.Subject != "Ispiti 06.02.2024." {
		t.Errorf("unexpected subject: %s", msg.Subject)
	}

	// Tuesday; Wednesday 02-07 has no exams
	emailsvc.ClearSentMessages()
	if err := f.svc.SendDailyExams(ctx, testutil.Date(2024, time.February, 6)); err != nil {
		t.Fatalf("SendDailyExams() failed: %v", err)
	}
	if len(emailsvc.SentMessages) != 0 {
		t.Errorf("a day without exams must not be announced, got %d messages", len(emailsvc.SentMessages))
	}
}
