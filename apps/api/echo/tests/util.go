package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	echoapi "github.com/dev-mario/raspored/apps/api/echo"
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
	emailsvc "github.com/dev-mario/raspored/services/email"
	logsvc "github.com/dev-mario/raspored/services/logger"
	dummydb "github.com/dev-mario/raspored/storage/database/dummy"
	testutil "github.com/dev-mario/raspored/tests"
)

// repositories of the current setup; reset by every setup(t) call
var (
	ttRepo    schedule.Repository
	brkRepo   breaks.Repository
	chgRepo   change.Repository
	classRepo class.Repository
	examRepo  exam.Repository
	noteRepo  note.Repository
	notifRepo notification.Repository
	subRepo   subscriber.Repository
	usrRepo   user.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errDenied       = httpErr{Error: "permission denied"}
	errNotFoundResp = httpErr{Error: "not found"}
)

func setup(t *testing.T) *echoapi.Server {
	t.Helper()

	conf := testutil.NewConfig()

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)
	core.ParseEmailTemplates(logger, conf)

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	ttRepo = dummydb.NewTimetableRepository(db)
	brkRepo = dummydb.NewBreakRepository(db)
	chgRepo = dummydb.NewChangeRepository(db)
	classRepo = dummydb.NewClassRepository(db)
	examRepo = dummydb.NewExamRepository(db)
	noteRepo = dummydb.NewNoteRepository(db)
	notifRepo = dummydb.NewNotificationRepository(db)
	subRepo = dummydb.NewSubscriberRepository(db)
	usrRepo = dummydb.NewUserRepository(db)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	emailsvc.ClearSentMessages()

	breakSvc := breaks.NewService(brkRepo)
	changeSvc := change.NewService(chgRepo)
	schedSvc := schedule.NewService(ttRepo, breakSvc, changeSvc, classRepo, conf)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)
	subscriber.InitValidators(validate, translator)

	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:            conf,
		Logger:          logger,
		Validate:        validate,
		Translator:      translator,
		ScheduleSvc:     schedSvc,
		BreakSvc:        breakSvc,
		ChangeSvc:       changeSvc,
		ExamSvc:         exam.NewService(examRepo),
		NoteSvc:         note.NewService(noteRepo),
		ClassSvc:        class.NewService(classRepo),
		NotificationSvc: notification.NewService(notifRepo),
		SubscriberSvc:   subscriber.NewService(subRepo, mailSvc, conf),
		UserSvc:         user.NewService(usrRepo),
		DisableReqLogs:  true,
	})
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := echoapi.GetUserClaims(usr)
	token, err := echoapi.GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func adminToken(t *testing.T) string {
	t.Helper()
	return getToken(t, testutil.CreateUser(t, usrRepo, "Admin", "admin", "admin@test.hr", "", true, true))
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runTable(t *testing.T, app *echoapi.Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.method == "" {
				tt.method = http.MethodGet
			}
			if tt.wantCode == 0 {
				tt.wantCode = http.StatusOK
			}
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
