package logsvc

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/auth"
)

func newTestLogger(debug bool) (*RollbarLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST", Debug: debug})
	l.Enable(false)
	return l, &buf
}

func TestNewEntry(t *testing.T) {
	idt := auth.Identity{ID: 7, Email: "ana@uni.ro", Role: auth.RoleTeacher}
	other := auth.Identity{ID: 8, Role: auth.RoleStudent}
	e := newEntry("boom", []interface{}{
		errors.New("store down"),
		idt,
		map[string]interface{}{"path": "/x"},
		other,
		map[string]interface{}{"status": 500},
		42,
	})

	require.NotNil(t, e.caller)
	assert.Equal(t, idt, *e.caller, "first identity wins")
	assert.EqualError(t, e.err, "store down")
	assert.Equal(t, map[string]interface{}{"path": "/x", "status": 500}, e.extras)
	assert.Equal(t, []interface{}{42}, e.other)

	args := e.rollbarArgs()
	require.Len(t, args, 4)
	assert.Equal(t, "boom", args[0])
	_, ok := args[3].(context.Context)
	assert.True(t, ok, "caller is passed as a person context")

	assert.Equal(t, `boom path=/x status=500 caller=teacher:7 42 error="store down"`, e.line())
}

func TestRollbarLogger(t *testing.T) {
	l, buf := newTestLogger(false)
	idt := auth.Identity{ID: 7, Email: "ana@uni.ro", Role: auth.RoleTeacher}

	l.Error("boom", errors.New("store down"), idt)
	assert.Equal(t, "[ERROR] boom caller=teacher:7 error=\"store down\"\n", buf.String())
	assert.NotContains(t, buf.String(), "ana@uni.ro")

	buf.Reset()
	l.Debug("noise")
	assert.Empty(t, buf.String(), "debug is muted outside debug mode")

	l.Warn("careful", map[string]interface{}{"id": 3})
	assert.Equal(t, "[WARNING] careful id=3\n", buf.String())
}

func TestRollbarLogger_debug(t *testing.T) {
	l, buf := newTestLogger(true)
	l.Debug("noise")
	assert.Equal(t, "[DEBUG] noise\n", buf.String())
}
