package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dev-mario/raspored/core/exam"
	testutil "github.com/dev-mario/raspored/tests"
)

func createExam(t *testing.T, exm exam.Exam) exam.Exam {
	t.Helper()
	exm, err := examRepo.CreateExam(ctx, exm)
	if err != nil {
		t.Fatalf("CreateExam() failed: %v", err)
	}
	return exm
}

func Test_examApi_queryByDate(t *testing.T) {
	app := setup(t)

	math := createClass(t, "Matematika")
	first := createExam(t, exam.Exam{
		Date: testutil.Date(2024, time.February, 6), SequenceID: 2, ClassID: math.ID, Content: "1. pismena provjera",
	})
	createExam(t, exam.Exam{
		Date: testutil.Date(2024, time.February, 12), SequenceID: 3, ClassID: math.ID, Content: "usmena provjera",
	})

	runTable(t, app, []httpTest{
		{
			name: "bad date", path: "/v1/exams/lol", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"date": "must be a date in YYYY-MM-DD format"}),
		},
		{name: "none", path: "/v1/exams/2024-02-07", wantData: marchallList(t)},
		{name: "by date", path: "/v1/exams/2024-02-06", wantData: marchallList(t, first)},
	})
}

func Test_examApi_createUpdateDestroy(t *testing.T) {
	app := setup(t)
	admin := adminToken(t)

	math := createClass(t, "Matematika")
	body := marchallObj(t, exam.NewExam{
		Date:       testutil.Date(2024, time.February, 6),
		SequenceID: 2,
		ClassID:    math.ID,
		Content:    "1. pismena provjera",
	})

	runTable(t, app, []httpTest{
		{
			name: "auth required", method: http.MethodPost, path: "/v1/exams", body: body,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "empty payload", method: http.MethodPost, path: "/v1/exams", body: marchallObj(t, echo.Map{}), token: admin,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{
				"date":     "this field is required",
				"seq":      "this field is required",
				"class_id": "this field is required",
				"content":  "this field is required",
			}),
		},
		{
			name: "update unknown", method: http.MethodPut, path: "/v1/exams/ghost", token: admin,
			body:     marchallObj(t, exam.UpdateExam{Content: "odgođeno"}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFoundResp),
		},
	})

	t.Run("create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/exams", admin, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
	})

	findCreated := func(t *testing.T) exam.Exam {
		exams, err := examRepo.FindExamsBetween(ctx, testutil.Date(2024, time.February, 6), testutil.Date(2024, time.February, 6))
		if err != nil {
			t.Fatalf("FindExamsBetween() failed: %v", err)
		}
		if len(exams) != 1 {
			t.Fatalf("expected 1 exam, got %d", len(exams))
		}
		return exams[0]
	}

	t.Run("update", func(t *testing.T) {
		exm := findCreated(t)

		update := marchallObj(t, exam.UpdateExam{Content: "2. pismena provjera"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/exams/"+exm.ID, admin, update)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		exm = findCreated(t)
		if exm.Content != "2. pismena provjera" {
			t.Errorf("Content = %q, want %q", exm.Content, "2. pismena provjera")
		}
	})

	t.Run("destroy", func(t *testing.T) {
		exm := findCreated(t)

		req, rec := newAuthRequest(http.MethodDelete, "/v1/exams/"+exm.ID, admin)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodDelete, "/v1/exams/"+exm.ID, admin)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v, want %v", rec.Code, http.StatusNotFound)
		}
	})
}
