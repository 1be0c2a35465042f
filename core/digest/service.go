// Package digest builds the periodic email digests: the weekly agenda of
// upcoming obligations, the daily schedule-change notice and the daily exam
// reminder. Builders only assemble data; the cron-invoked senders fan the
// rendered digests out to subscribers best-effort (one failed recipient never
// aborts the batch).
package digest

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/dev-mario/raspored/core"
	"github.com/dev-mario/raspored/core/calendar"
	"github.com/dev-mario/raspored/core/class"
	"github.com/dev-mario/raspored/core/exam"
	"github.com/dev-mario/raspored/core/note"
	"github.com/dev-mario/raspored/core/schedule"
	"github.com/dev-mario/raspored/core/subscriber"
)

// Email templates; see assets/templates/email.
const (
	weeklyTemplate  = "obaveze"
	changesTemplate = "izmjene"
	examsTemplate   = "ispiti"
)

type (
	ExamEntry struct {
		Date      time.Time `json:"date"`
		DateLabel string    `json:"date_label"`
		ClassName string    `json:"class_name"`
		Content   string    `json:"content"`
	}

	NoteEntry struct {
		Reminder  time.Time `json:"reminder"`
		DateLabel string    `json:"date_label"`
		ClassName string    `json:"class_name"`
		Body      string    `json:"body"`
	}

	// WeeklyDigest covers the business week starting on the next business
	// day: notes (by reminder date) and exams falling into the window.
	WeeklyDigest struct {
		From      time.Time   `json:"from"`
		To        time.Time   `json:"to"`
		FromLabel string      `json:"from_label"`
		ToLabel   string      `json:"to_label"`
		Exams     []ExamEntry `json:"exams"`
		Notes     []NoteEntry `json:"notes"`
	}

	// ChangesDigest lists the next business day's schedule changes, each
	// cancellation annotated with the regular slot it cancels.
	ChangesDigest struct {
		Date      time.Time               `json:"date"`
		DateLabel string                  `json:"date_label"`
		Changes   []schedule.MergedChange `json:"changes"`
	}

	// ExamsDigest lists the next business day's exams.
	ExamsDigest struct {
		Date      time.Time   `json:"date"`
		DateLabel string      `json:"date_label"`
		Exams     []ExamEntry `json:"exams"`
	}
)

type Service struct {
	schedSvc  *schedule.Service
	examSvc   *exam.Service
	noteSvc   *note.Service
	subSvc    *subscriber.Service
	classRepo class.Repository
	mailSvc   core.EmailService
}

func NewService(
	schedSvc *schedule.Service,
	examSvc *exam.Service,
	noteSvc *note.Service,
	subSvc *subscriber.Service,
	classRepo class.Repository,
	mailSvc core.EmailService,
) *Service {
	return &Service{
		schedSvc:  schedSvc,
		examSvc:   examSvc,
		noteSvc:   noteSvc,
		subSvc:    subSvc,
		classRepo: classRepo,
		mailSvc:   mailSvc,
	}
}

// shortDate renders "02.01." labels used in subjects and template bodies.
func shortDate(t time.Time) string {
	return t.Format("02.01.")
}

// fullDate renders "02.01.2006." labels.
func fullDate(t time.Time) string {
	return t.Format("02.01.2006.")
}

// dayDate renders "02.01. (utorak)" labels.
func dayDate(t time.Time) string {
	return fmt.Sprintf("%s (%s)", shortDate(t), calendar.WeekdayOf(t))
}

func (svc *Service) className(ctx context.Context, classID string) (string, error) {
	cls, err := svc.classRepo.GetClass(ctx, classID)
	if err != nil {
		if err == class.ErrNotFound {
			return "", nil
		}
		return "", err
	}
	return cls.Name, nil
}

func (svc *Service) examEntries(ctx context.Context, exams []exam.Exam) ([]ExamEntry, error) {
	entries := make([]ExamEntry, 0, len(exams))
	for _, exm := range exams {
		name, err := svc.className(ctx, exm.ClassID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ExamEntry{
			Date:      exm.Date,
			DateLabel: dayDate(exm.Date),
			ClassName: name,
			Content:   exm.Content,
		})
	}
	return entries, nil
}

// BuildWeekly assembles the weekly agenda for the business week following
// now: from the next business day through four more business days.
func (svc *Service) BuildWeekly(ctx context.Context, now time.Time) (WeeklyDigest, error) {
	from := calendar.AddBusinessDays(calendar.Midnight(now), 1)
	to := calendar.AddBusinessDays(from, 4)

	exams, err := svc.examSvc.FindBetween(ctx, from, to)
	if err != nil {
		return WeeklyDigest{}, err
	}
	examEntries, err := svc.examEntries(ctx, exams)
	if err != nil {
		return WeeklyDigest{}, err
	}

	notes, err := svc.noteSvc.FindByReminderBetween(ctx, from, to)
	if err != nil {
		return WeeklyDigest{}, err
	}
	noteEntries := make([]NoteEntry, 0, len(notes))
	for _, nte := range notes {
		name, err := svc.className(ctx, nte.ClassID)
		if err != nil {
			return WeeklyDigest{}, err
		}
		noteEntries = append(noteEntries, NoteEntry{
			Reminder:  nte.Reminder,
			DateLabel: dayDate(nte.Reminder),
			ClassName: name,
			Body:      nte.Body,
		})
	}

	return WeeklyDigest{
		From:      from,
		To:        to,
		FromLabel: shortDate(from),
		ToLabel:   shortDate(to),
		Exams:     examEntries,
		Notes:     noteEntries,
	}, nil
}

// BuildDailyChanges assembles the change notice for the next business day.
func (svc *Service) BuildDailyChanges(ctx context.Context, now time.Time) (ChangesDigest, error) {
	date := calendar.AddBusinessDays(calendar.Midnight(now), 1)

	merged, err := svc.schedSvc.MergeChanges(ctx, date)
	if err != nil {
		return ChangesDigest{}, err
	}
	return ChangesDigest{
		Date:      date,
		DateLabel: fmt.Sprintf("%s (%s)", fullDate(date), calendar.WeekdayOf(date)),
		Changes:   merged,
	}, nil
}

// BuildDailyExams assembles the exam reminder for the next business day.
func (svc *Service) BuildDailyExams(ctx context.Context, now time.Time) (ExamsDigest, error) {
	date := calendar.AddBusinessDays(calendar.Midnight(now), 1)

	exams, err := svc.examSvc.FindByDate(ctx, date)
	if err != nil {
		return ExamsDigest{}, err
	}
	entries, err := svc.examEntries(ctx, exams)
	if err != nil {
		return ExamsDigest{}, err
	}
	return ExamsDigest{
		Date:      date,
		DateLabel: fullDate(date),
		Exams:     entries,
	}, nil
}

// fanOut sends one message per recipient so that a failing address never
// affects the others; the mail backends already send each message
// concurrently.
func (svc *Service) fanOut(ctx context.Context, subscription, subject, template string, data interface{}) error {
	recipients, err := svc.subSvc.Emails(ctx, subscription)
	if err != nil {
		return err
	}

	messages := make([]*core.EmailMessage, 0, len(recipients))
	for _, to := range recipients {
		messages = append(messages, &core.EmailMessage{
			To:           []mail.Address{to},
			Subject:      subject,
			TemplateName: template,
			TemplateData: data,
		})
	}
	svc.mailSvc.SendMessages(messages...)
	return nil
}

// SendWeekly builds and fans out the weekly digest. Sent even when the
// window is empty; the template renders an "all clear" body.
func (svc *Service) SendWeekly(ctx context.Context, now time.Time) error {
	digest, err := svc.BuildWeekly(ctx, now)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Obaveze u tjednu %s - %s", digest.FromLabel, digest.ToLabel)
	return svc.fanOut(ctx, subscriber.SubWeekly, subject, weeklyTemplate, digest)
}

// SendDailyChanges builds and fans out the change notice. Nothing is sent
// when the day has no changes.
func (svc *Service) SendDailyChanges(ctx context.Context, now time.Time) error {
	digest, err := svc.BuildDailyChanges(ctx, now)
	if err != nil {
		return err
	}
	if len(digest.Changes) == 0 {
		return nil
	}
	subject := fmt.Sprintf("Izmjene u rasporedu za %s", fullDate(digest.Date))
	return svc.fanOut(ctx, subscriber.SubChanges, subject, changesTemplate, digest)
}

// SendDailyExams builds and fans out the exam reminder. Nothing is sent when
// the day has no exams.
func (svc *Service) SendDailyExams(ctx context.Context, now time.Time) error {
	digest, err := svc.BuildDailyExams(ctx, now)
	if err != nil {
		return err
	}
	if len(digest.Exams) == 0 {
		return nil
	}
	subject := fmt.Sprintf("Ispiti %s", digest.DateLabel)
	return svc.fanOut(ctx, subscriber.SubExams, subject, examsTemplate, digest)
}
