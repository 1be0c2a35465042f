package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	echoapi "github.com/dev-mario/raspored/apps/api/echo"
	"github.com/dev-mario/raspored/core/subscriber"
	emailsvc "github.com/dev-mario/raspored/services/email"
)

func registerSubscriber(t *testing.T, app *echoapi.Server, name, email string, subscriptions []string) subscriber.Subscriber {
	t.Helper()

	body := marchallObj(t, subscriber.NewSubscriber{Name: name, Email: email, Subscriptions: subscriptions})
	req, rec := newRequest(http.MethodPost, "/v1/subscribers", body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("registering %q failed: code = %v; body %s", email, rec.Code, rec.Body.String())
	}

	sub, err := subRepo.GetSubscriberByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetSubscriberByEmail() failed: %v", err)
	}
	return sub
}

func Test_subscriberApi_register(t *testing.T) {
	app := setup(t)

	runTable(t, app, []httpTest{
		{
			name: "empty payload", method: http.MethodPost, path: "/v1/subscribers", body: marchallObj(t, echo.Map{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{
				"name":          "this field is required",
				"email":         "this field is required",
				"subscriptions": "this field is required",
			}),
		},
		{
			name: "unknown subscription tag", method: http.MethodPost, path: "/v1/subscribers",
			body:     marchallObj(t, subscriber.NewSubscriber{Name: "Ana", Email: "ana@test.hr", Subscriptions: []string{"lol"}}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"subscriptions": "must only contain: weekly, changes, exams"}),
		},
	})

	t.Run("register", func(t *testing.T) {
		sub := registerSubscriber(t, app, "Ana", "ana@test.hr", subscriber.AllSubscriptions)
		if sub.AccessKey == "" {
			t.Errorf("AccessKey not generated")
		}

		if len(emailsvc.SentMessages) != 1 {
			t.Fatalf("expected 1 welcome email, got %d", len(emailsvc.SentMessages))
		}
		msg := emailsvc.SentMessages[0]
		if msg.To[0].Address != "ana@test.hr" {
			t.Errorf("To = %q, want %q", msg.To[0].Address, "ana@test.hr")
		}
		if !strings.Contains(msg.TextContent, sub.AccessKey) {
			t.Errorf("welcome email is missing the access link; body %q", msg.TextContent)
		}
	})

	t.Run("access key never leaks", func(t *testing.T) {
		sub, err := subRepo.GetSubscriberByEmail(ctx, "ana@test.hr")
		if err != nil {
			t.Fatalf("GetSubscriberByEmail() failed: %v", err)
		}

		req, rec := newRequest(http.MethodGet, "/v1/subscribers/me/"+sub.AccessKey)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var fields map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &fields); err != nil {
			t.Fatalf("unmarshalling response failed: %v", err)
		}
		for key, val := range fields {
			if s, ok := val.(string); ok && s == sub.AccessKey {
				t.Errorf("access key leaked in field %q", key)
			}
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		// matching is case-insensitive
		body := marchallObj(t, subscriber.NewSubscriber{Name: "Ana", Email: "ANA@test.hr", Subscriptions: []string{subscriber.SubWeekly}})
		req, rec := newRequest(http.MethodPost, "/v1/subscribers", body)
		app.ServeHTTP(rec, req)

		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"email": "a subscriber with this email already exists"}),
		}, rec)
	})
}

func Test_subscriberApi_manage(t *testing.T) {
	app := setup(t)

	sub := registerSubscriber(t, app, "Ana", "ana@test.hr", subscriber.AllSubscriptions)

	runTable(t, app, []httpTest{
		{name: "retrieve", path: "/v1/subscribers/me/" + sub.AccessKey, wantData: marchallObj(t, sub)},
		{
			name: "retrieve unknown key", path: "/v1/subscribers/me/ghost",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFoundResp),
		},
		{
			name: "update unknown key", method: http.MethodPut, path: "/v1/subscribers/me/ghost",
			body:     marchallObj(t, subscriber.UpdateSubscriber{Name: "Ana Anić"}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFoundResp),
		},
		{
			name: "update with unknown tag", method: http.MethodPut, path: "/v1/subscribers/me/" + sub.AccessKey,
			body:     marchallObj(t, subscriber.UpdateSubscriber{Subscriptions: []string{"lol"}}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"subscriptions": "must only contain: weekly, changes, exams"}),
		},
	})

	t.Run("update", func(t *testing.T) {
		body := marchallObj(t, subscriber.UpdateSubscriber{Subscriptions: []string{subscriber.SubExams}})
		req, rec := newRequest(http.MethodPut, "/v1/subscribers/me/"+sub.AccessKey, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		got, err := subRepo.GetSubscriberByKey(ctx, sub.AccessKey)
		if err != nil {
			t.Fatalf("GetSubscriberByKey() failed: %v", err)
		}
		if len(got.Subscriptions) != 1 || got.Subscriptions[0] != subscriber.SubExams {
			t.Errorf("Subscriptions = %v, want [%s]", got.Subscriptions, subscriber.SubExams)
		}
		if got.Name != "Ana" {
			t.Errorf("Name = %q, want it preserved", got.Name)
		}
	})

	t.Run("unsubscribe", func(t *testing.T) {
		emailsvc.ClearSentMessages()

		req, rec := newRequest(http.MethodDelete, "/v1/subscribers/me/"+sub.AccessKey)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}

		if _, err := subRepo.GetSubscriberByKey(ctx, sub.AccessKey); err != subscriber.ErrNotFound {
			t.Errorf("subscriber still retrievable after unsubscribe; err %v", err)
		}
		if len(emailsvc.SentMessages) != 1 {
			t.Fatalf("expected 1 goodbye email, got %d", len(emailsvc.SentMessages))
		}
		if !strings.Contains(emailsvc.SentMessages[0].TextContent, "otkazana") {
			t.Errorf("goodbye email body %q", emailsvc.SentMessages[0].TextContent)
		}

		req, rec = newRequest(http.MethodDelete, "/v1/subscribers/me/"+sub.AccessKey)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v, want %v", rec.Code, http.StatusNotFound)
		}
	})
}

func Test_subscriberApi_sendAccessLink(t *testing.T) {
	app := setup(t)

	sub := registerSubscriber(t, app, "Ana", "ana@test.hr", subscriber.AllSubscriptions)
	emailsvc.ClearSentMessages()

	t.Run("existing subscriber", func(t *testing.T) {
		body := marchallObj(t, echo.Map{"email": "ana@test.hr"})
		req, rec := newRequest(http.MethodPost, "/v1/subscribers/admin", body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}

		if len(emailsvc.SentMessages) != 1 {
			t.Fatalf("expected 1 email, got %d", len(emailsvc.SentMessages))
		}
		if !strings.Contains(emailsvc.SentMessages[0].TextContent, sub.AccessKey) {
			t.Errorf("access link email is missing the key; body %q", emailsvc.SentMessages[0].TextContent)
		}
	})

	t.Run("unknown email is not revealed", func(t *testing.T) {
		emailsvc.ClearSentMessages()

		body := marchallObj(t, echo.Map{"email": "ghost@test.hr"})
		req, rec := newRequest(http.MethodPost, "/v1/subscribers/admin", body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}
		if len(emailsvc.SentMessages) != 0 {
			t.Errorf("expected no email, got %d", len(emailsvc.SentMessages))
		}
	})

	t.Run("bad email", func(t *testing.T) {
		body := marchallObj(t, echo.Map{"email": "lol"})
		req, rec := newRequest(http.MethodPost, "/v1/subscribers/admin", body)
		app.ServeHTTP(rec, req)

		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"email": "email must be a valid email address"}),
		}, rec)
	})
}
