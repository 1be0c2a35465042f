package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	echoapi "github.com/dev-mario/raspored/apps/api/echo"
	testutil "github.com/dev-mario/raspored/tests"
)

func Test_home(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("code = %v, want %v", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "Dobro došli na Raspored API!" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func Test_userApi_login(t *testing.T) {
	app := setup(t)

	testutil.CreateUser(t, usrRepo, "Ravnatelj", "ravnatelj", "ravnatelj@test.hr", "LoremIpsum12", true, true)
	testutil.CreateUser(t, usrRepo, "Bivši", "bivsi", "bivsi@test.hr", "LoremIpsum12", false, false)

	runTable(t, app, []httpTest{
		{
			name: "empty payload", method: http.MethodPost, path: "/v1/users/login", body: marchallObj(t, echo.Map{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{
				"username": "this field is required",
				"password": "this field is required",
			}),
		},
		{
			name: "unknown user", method: http.MethodPost, path: "/v1/users/login",
			body:     marchallObj(t, echoapi.LoginRequest{Username: "ghost", Password: "LoremIpsum12"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/v1/users/login",
			body:     marchallObj(t, echoapi.LoginRequest{Username: "ravnatelj", Password: "wrong"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "deactivated account", method: http.MethodPost, path: "/v1/users/login",
			body:     marchallObj(t, echoapi.LoginRequest{Username: "bivsi", Password: "LoremIpsum12"}),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
	})

	login := func(t *testing.T, username string) string {
		body := marchallObj(t, echoapi.LoginRequest{Username: username, Password: "LoremIpsum12"})
		req, rec := newRequest(http.MethodPost, "/v1/users/login", body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var resp echoapi.LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling response failed: %v", err)
		}
		if resp.Token == "" {
			t.Fatalf("empty token")
		}
		return resp.Token
	}

	t.Run("login", func(t *testing.T) {
		login(t, "ravnatelj")

		usr, err := usrRepo.GetUserByUsernameOrEmail(ctx, "ravnatelj")
		if err != nil {
			t.Fatalf("GetUserByUsernameOrEmail() failed: %v", err)
		}
		if usr.LastLogin.IsZero() {
			t.Errorf("LastLogin not set")
		}
	})

	t.Run("login by email", func(t *testing.T) {
		login(t, "ravnatelj@test.hr")
	})

	t.Run("token grants admin access", func(t *testing.T) {
		token := login(t, "ravnatelj")

		req, rec := newAuthRequest(http.MethodDelete, "/v1/schedule/ghost", token)
		app.ServeHTTP(rec, req)
		// past the auth middlewares; the id simply does not exist
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v, want %v; body %s", rec.Code, http.StatusNotFound, rec.Body.String())
		}
	})
}
