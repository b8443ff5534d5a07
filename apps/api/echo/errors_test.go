package echoapi

import (
	"context"
	"io"
	"log"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/academics"
	"github.com/trezcool/academia/core/auth"
	logsvc "github.com/trezcool/academia/services/logger"
	"github.com/trezcool/academia/tests"
)

// unavailableCourses fails every call the way the Postgres store does when the database goes away.
type unavailableCourses struct{}

func (unavailableCourses) QueryCourses(context.Context, academics.CourseFilter) ([]academics.Course, error) {
	return nil, core.NewShutdownError("querying courses: database unavailable")
}

func (unavailableCourses) CreateCourse(context.Context, academics.Course) (academics.Course, error) {
	return academics.Course{}, core.NewShutdownError("creating course: database unavailable")
}

func (unavailableCourses) UpdateCourse(context.Context, int, academics.UpdateCourse) (academics.Course, error) {
	return academics.Course{}, core.NewShutdownError("updating course: database unavailable")
}

func (unavailableCourses) DeleteCourse(context.Context, int) error {
	return core.NewShutdownError("deleting course: database unavailable")
}

func TestShutdownOnUnavailableStore(t *testing.T) {
	conf := &core.Config{AppName: "Academia", Env: "TEST", TestMode: true}
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)

	env := testutil.NewEnv()
	srv := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Issuer:     auth.NewIssuer(conf.AppName, []byte("test-secret"), time.Hour),
		Identities: env.Identities,
		Academics: academics.NewService(academics.Deps{
			Courses: unavailableCourses{},
		}),
		DisableReqLogs: true,
	})

	req, rec := newRequest(http.MethodGet, "/discipline")
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "database unavailable")

	select {
	case sig := <-srv.ShutdownSignal():
		assert.Equal(t, syscall.SIGTERM, sig)
	default:
		t.Fatal("expected a shutdown signal")
	}

	// repeated failures do not block once a signal is pending
	for i := 0; i < 2; i++ {
		req, rec = newRequest(http.MethodGet, "/discipline")
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	}
	assert.Len(t, srv.ShutdownSignal(), 1)
}

func TestNoShutdownOnRegularError(t *testing.T) {
	a := setup(t)

	rec := a.do(http.MethodDelete, "/admin/discipline/404", a.adminToken)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	select {
	case sig := <-a.ShutdownSignal():
		t.Fatalf("unexpected shutdown signal %v", sig)
	default:
	}
}
