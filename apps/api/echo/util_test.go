package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/auth"
	logsvc "github.com/trezcool/academia/services/logger"
	"github.com/trezcool/academia/tests"
)

var (
	errMissingToken = httpErr{Message: auth.ErrUnauthenticated.Error()}
	errForbidden    = httpErr{Message: auth.ErrForbidden.Error()}
)

type httpErr struct {
	Message string `json:"message"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

// app bundles a server on in-memory storage with one account per role.
type app struct {
	Server
	env     *testutil.Env
	iss     *auth.Issuer
	metrics *Metrics

	adminToken, teacherToken, studentToken string
	teacherID, studentID                   int
}

func setup(t *testing.T) *app {
	t.Helper()
	conf := &core.Config{
		AppName:  "Academia",
		Env:      "TEST",
		TestMode: true,
		Server:   core.ServerConfig{AllowOrigins: []string{"*"}},
	}
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)

	env := testutil.NewEnv()
	iss := auth.NewIssuer(conf.AppName, []byte("test-secret"), time.Hour)
	metrics := NewMetrics(prometheus.NewRegistry())

	a := &app{
		Server: NewServer(ServerDeps{
			Conf:           conf,
			Logger:         logger,
			Issuer:         iss,
			Identities:     env.Identities,
			Academics:      env.Academics,
			Metrics:        metrics,
			DisableReqLogs: true,
		}),
		env:     env,
		iss:     iss,
		metrics: metrics,
	}

	adm := env.CreateAdmin(t, "Root", "root@uni.ro", "adminpwd")
	tch := env.CreateTeacher(t, "Ana", "ana@uni.ro", "teacherpwd")
	std := env.CreateStudent(t, "Ion", "ion@uni.ro", "studentpwd", 311)
	a.teacherID, a.studentID = tch.ID, std.ID
	a.adminToken = getToken(t, iss, auth.Identity{ID: adm.ID, Email: adm.Email.String, Role: auth.RoleAdmin})
	a.teacherToken = getToken(t, iss, auth.Identity{ID: tch.ID, Email: tch.Email.String, Role: auth.RoleTeacher})
	a.studentToken = getToken(t, iss, auth.Identity{ID: std.ID, Email: std.Email.String, Role: auth.RoleStudent})
	return a
}

func (a *app) do(method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, token, data...)
	a.ServeHTTP(rec, req)
	return rec
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

func getToken(t *testing.T, iss *auth.Issuer, idt auth.Identity) string {
	token, err := iss.Issue(idt)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
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
	if _, ok := j1.([]interface{}); !ok {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode() failed: %v; body %s", err, rec.Body.String())
	}
}
