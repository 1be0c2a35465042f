package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dev-mario/raspored/core/breaks"
	testutil "github.com/dev-mario/raspored/tests"
)

func Test_breakApi_query(t *testing.T) {
	app := setup(t)

	winter := createBreak(t, testutil.Date(2023, time.December, 27), testutil.Date(2024, time.January, 12), "zimski praznici")
	summer := createBreak(t, testutil.Date(2024, time.June, 22), testutil.Date(2024, time.September, 1), "ljetni praznici")

	runTable(t, app, []httpTest{
		{name: "all", path: "/v1/breaks", wantData: marchallList(t, winter, summer)},
		{
			name: "bad date", path: "/v1/breaks/lol", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"date": "must be a date in YYYY-MM-DD format"}),
		},
		{
			name: "active", path: "/v1/breaks/2024-07-15",
			wantData: marchallObj(t, echo.Map{"active": true, "break": summer}),
		},
		{
			// boundary days are inside the break
			name: "active on last day", path: "/v1/breaks/2024-01-12",
			wantData: marchallObj(t, echo.Map{"active": true, "break": winter}),
		},
		{
			name: "inactive", path: "/v1/breaks/2024-02-06",
			wantData: marchallObj(t, echo.Map{"active": false}),
		},
	})
}

func Test_breakApi_createDestroy(t *testing.T) {
	app := setup(t)
	admin := adminToken(t)

	body := marchallObj(t, breaks.NewBreak{
		ValidFrom:  testutil.Date(2024, time.June, 22),
		ValidUntil: testutil.Date(2024, time.September, 1),
		Status:     "ljetni praznici",
	})

	runTable(t, app, []httpTest{
		{
			name: "auth required", method: http.MethodPost, path: "/v1/breaks", body: body,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "empty payload", method: http.MethodPost, path: "/v1/breaks", body: marchallObj(t, echo.Map{}), token: admin,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{
				"valid_from":  "this field is required",
				"valid_until": "this field is required",
				"status":      "this field is required",
			}),
		},
	})

	t.Run("create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/breaks", admin, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
	})

	t.Run("destroy", func(t *testing.T) {
		brks, err := brkRepo.QueryAllBreaks(ctx)
		if err != nil {
			t.Fatalf("QueryAllBreaks() failed: %v", err)
		}
		if len(brks) != 1 {
			t.Fatalf("expected 1 break, got %d", len(brks))
		}

		req, rec := newAuthRequest(http.MethodDelete, "/v1/breaks/"+brks[0].ID, admin)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodDelete, "/v1/breaks/"+brks[0].ID, admin)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v, want %v", rec.Code, http.StatusNotFound)
		}
	})
}
