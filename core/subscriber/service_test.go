package subscriber_test

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/dev-mario/raspored/core"
	"github.com/dev-mario/raspored/core/subscriber"
	emailsvc "github.com/dev-mario/raspored/services/email"
	logsvc "github.com/dev-mario/raspored/services/logger"
	dummydb "github.com/dev-mario/raspored/storage/database/dummy"
	testutil "github.com/dev-mario/raspored/tests"
)

var ctx = context.Background()

func setup(t *testing.T) *subscriber.Service {
	t.Helper()

	conf := testutil.NewConfig()

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)
	core.ParseEmailTemplates(logger, conf)

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	emailsvc.ClearSentMessages()
	return subscriber.NewService(dummydb.NewSubscriberRepository(db), emailsvc.NewConsoleServiceMock(conf), conf)
}

func TestService_Register(t *testing.T) {
	svc := setup(t)

	sub, err := svc.Register(ctx, subscriber.NewSubscriber{
		Name:          "Ana Anić",
		Email:         " Ana@Test.hr ",
		Subscriptions: []string{subscriber.SubWeekly, subscriber.SubExams},
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if sub.Email != "ana@test.hr" {
		t.Errorf("expected the email cleaned and lowered, got %q", sub.Email)
	}
	if sub.AccessKey == "" {
		t.Error("expected an access key to be generated")
	}

	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("expected a welcome email, got %d messages", len(emailsvc.SentMessages))
	}
	msg := emailsvc.SentMessages[0]
	if msg.To[0].Address != "ana@test.hr" {
		t.Errorf("unexpected recipient: %s", msg.To[0].Address)
	}
	if !strings.Contains(msg.TextContent, sub.AccessKey) {
		t.Error("expected the management link in the welcome email")
	}

	// email uniqueness, case-insensitive
	_, err = svc.Register(ctx, subscriber.NewSubscriber{
		Name:          "Druga Ana",
		Email:         "ANA@test.hr",
		Subscriptions: []string{subscriber.SubWeekly},
	})
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "email" {
		t.Errorf("expected an email field error, got %+v", vErr.Fields)
	}
}

func TestService_UpdateByKey(t *testing.T) {
	svc := setup(t)

	sub, err := svc.Register(ctx, subscriber.NewSubscriber{
		Name:          "Ana",
		Email:         "ana@test.hr",
		Subscriptions: []string{subscriber.SubWeekly},
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	updated, err := svc.UpdateByKey(ctx, sub.AccessKey, subscriber.UpdateSubscriber{
		Subscriptions: []string{subscriber.SubChanges, subscriber.SubExams},
	})
	if err != nil {
		t.Fatalf("UpdateByKey() failed: %v", err)
	}
	if updated.Name != "Ana" {
		t.Errorf("an empty name must not overwrite, got %q", updated.Name)
	}
	if !updated.SubscribedTo(subscriber.SubChanges) || updated.SubscribedTo(subscriber.SubWeekly) {
		t.Errorf("unexpected subscriptions: %v", updated.Subscriptions)
	}

	if _, err = svc.UpdateByKey(ctx, "bad-key", subscriber.UpdateSubscriber{Name: "X"}); err != subscriber.ErrNotFound {
		t.Errorf("expected ErrNotFound for an unknown key, got %v", err)
	}
}

func TestService_DeleteByKey(t *testing.T) {
	svc := setup(t)

	sub, err := svc.Register(ctx, subscriber.NewSubscriber{
		Name:          "Ana",
		Email:         "ana@test.hr",
		Subscriptions: []string{subscriber.SubWeekly},
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	emailsvc.ClearSentMessages()

	if err = svc.DeleteByKey(ctx, sub.AccessKey); err != nil {
		t.Fatalf("DeleteByKey() failed: %v", err)
	}
	if _, err = svc.GetByKey(ctx, sub.AccessKey); err != subscriber.ErrNotFound {
		t.Errorf("expected the subscriber gone, got %v", err)
	}
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("expected a goodbye email, got %d messages", len(emailsvc.SentMessages))
	}
	if !strings.Contains(emailsvc.SentMessages[0].TextContent, "otkazana") {
		t.Error("expected the goodbye body")
	}

	if err = svc.DeleteByKey(ctx, "bad-key"); err != subscriber.ErrNotFound {
		t.Errorf("expected ErrNotFound for an unknown key, got %v", err)
	}
}

func TestService_SendAccessLink(t *testing.T) {
	svc := setup(t)

	sub, err := svc.Register(ctx, subscriber.NewSubscriber{
		Name:          "Ana",
		Email:         "ana@test.hr",
		Subscriptions: []string{subscriber.SubWeekly},
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	emailsvc.ClearSentMessages()

	if err = svc.SendAccessLink(ctx, "Ana@Test.hr"); err != nil {
		t.Fatalf("SendAccessLink() failed: %v", err)
	}
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("expected an access link email, got %d messages", len(emailsvc.SentMessages))
	}
	if !strings.Contains(emailsvc.SentMessages[0].TextContent, sub.AccessKey) {
		t.Error("expected the management link in the email")
	}

	if err = svc.SendAccessLink(ctx, "nobody@test.hr"); err != subscriber.ErrNotFound {
		t.Errorf("expected ErrNotFound for an unknown email, got %v", err)
	}
}

func TestService_Emails(t *testing.T) {
	svc := setup(t)

	for _, ns := range []subscriber.NewSubscriber{
		{Name: "Ana", Email: "ana@test.hr", Subscriptions: []string{subscriber.SubWeekly, subscriber.SubChanges}},
		{Name: "Ivan", Email: "ivan@test.hr", Subscriptions: []string{subscriber.SubChanges}},
		{Name: "Maja", Email: "maja@test.hr", Subscriptions: []string{subscriber.SubExams}},
	} {
		if _, err := svc.Register(ctx, ns); err != nil {
			t.Fatalf("Register() failed: %v", err)
		}
	}

	addrs, err := svc.Emails(ctx, subscriber.SubChanges)
	if err != nil {
		t.Fatalf("Emails() failed: %v", err)
	}
	if len(addrs) != 2 {
		t.Fatalf("expected 2 addresses, got %d", len(addrs))
	}
	if addrs[0].Address != "ana@test.hr" || addrs[1].Address != "ivan@test.hr" {
		t.Errorf("unexpected addresses: %+v", addrs)
	}
}
