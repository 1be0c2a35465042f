package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dev-mario/raspored/core/notification"
	testutil "github.com/dev-mario/raspored/tests"
)

func createNotification(t *testing.T, ntf notification.Notification) notification.Notification {
	t.Helper()
	ntf, err := notifRepo.CreateNotification(ctx, ntf)
	if err != nil {
		t.Fatalf("CreateNotification() failed: %v", err)
	}
	return ntf
}

func Test_notificationApi_query(t *testing.T) {
	app := setup(t)

	ntf := createNotification(t, notification.Notification{
		FromDate: testutil.Date(2024, time.February, 5),
		ToDate:   testutil.Date(2024, time.February, 9),
		Title:    "Roditeljski sastanak",
		Content:  "U četvrtak u 18h.",
	})

	runTable(t, app, []httpTest{
		{name: "all", path: "/v1/notifications/all", wantData: marchallList(t, ntf)},
		{name: "retrieve", path: "/v1/notifications/id/" + ntf.ID, wantData: marchallObj(t, ntf)},
		{
			name: "retrieve unknown", path: "/v1/notifications/id/ghost",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFoundResp),
		},
		{
			name: "bad date", path: "/v1/notifications/day/lol", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"date": "must be a date in YYYY-MM-DD format"}),
		},
		{
			name: "active", path: "/v1/notifications/day/2024-02-06",
			wantData: marchallObj(t, echo.Map{"active": true, "notification": ntf}),
		},
		{
			// a quiet day is a regular answer, never a 404
			name: "inactive", path: "/v1/notifications/day/2024-02-12",
			wantData: marchallObj(t, echo.Map{"active": false}),
		},
	})
}

func Test_notificationApi_createUpdateDestroy(t *testing.T) {
	app := setup(t)
	admin := adminToken(t)

	body := marchallObj(t, notification.NewNotification{
		FromDate: testutil.Date(2024, time.February, 5),
		ToDate:   testutil.Date(2024, time.February, 9),
		Title:    "Roditeljski sastanak",
	})

	runTable(t, app, []httpTest{
		{
			name: "auth required", method: http.MethodPost, path: "/v1/notifications", body: body,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "empty payload", method: http.MethodPost, path: "/v1/notifications", body: marchallObj(t, echo.Map{}), token: admin,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{
				"from_date": "this field is required",
				"to_date":   "this field is required",
				"title":     "this field is required",
			}),
		},
	})

	t.Run("create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/notifications", admin, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
	})

	findCreated := func(t *testing.T) notification.Notification {
		ntfs, err := notifRepo.QueryAllNotifications(ctx)
		if err != nil {
			t.Fatalf("QueryAllNotifications() failed: %v", err)
		}
		if len(ntfs) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(ntfs))
		}
		return ntfs[0]
	}

	t.Run("update", func(t *testing.T) {
		ntf := findCreated(t)

		update := marchallObj(t, notification.UpdateNotification{Title: "Roditeljski sastanak (novi termin)"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/notifications/id/"+ntf.ID, admin, update)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		ntf = findCreated(t)
		if ntf.Title != "Roditeljski sastanak (novi termin)" {
			t.Errorf("Title = %q, want %q", ntf.Title, "Roditeljski sastanak (novi termin)")
		}
	})

	t.Run("destroy", func(t *testing.T) {
		ntf := findCreated(t)

		req, rec := newAuthRequest(http.MethodDelete, "/v1/notifications/id/"+ntf.ID, admin)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodDelete, "/v1/notifications/id/"+ntf.ID, admin)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v, want %v", rec.Code, http.StatusNotFound)
		}
	})
}
