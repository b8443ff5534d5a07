package logsvc

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/auth"
)

// RollbarLogger writes every entry to a std logger and reports it to Rollbar when enabled.
type RollbarLogger struct {
	std   *log.Logger
	debug bool
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std, debug: conf.Debug}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// entry is a log call split by argument kind.
// Accepted args: error, map[string]interface{}, auth.Identity; anything else is printed as is.
type entry struct {
	msg    string
	err    error
	extras map[string]interface{}
	caller *auth.Identity
	other  []interface{}
}

func newEntry(msg string, args []interface{}) entry {
	e := entry{msg: msg}
	for _, arg := range args {
		switch v := arg.(type) {
		case error:
			if e.err == nil {
				e.err = v
			} else {
				e.other = append(e.other, v)
			}
		case map[string]interface{}:
			if e.extras == nil {
				e.extras = make(map[string]interface{}, len(v))
			}
			for k, val := range v {
				e.extras[k] = val
			}
		case auth.Identity:
			if e.caller == nil {
				idt := v
				e.caller = &idt
			}
		default:
			e.other = append(e.other, v)
		}
	}
	return e
}

// rollbarArgs builds the interfaces accepted by rollbar.Log.
// The caller travels in a context so concurrent requests do not share a person.
func (e entry) rollbarArgs() []interface{} {
	args := []interface{}{e.msg}
	if e.err != nil {
		args = append(args, e.err)
	}
	if e.extras != nil {
		args = append(args, e.extras)
	}
	if e.caller != nil {
		args = append(args, rollbar.NewPersonContext(context.Background(), &rollbar.Person{
			Id:       strconv.Itoa(e.caller.ID),
			Username: e.caller.Role.String(),
			Email:    e.caller.Email,
		}))
	}
	return args
}

// line renders the entry on one line: `msg key=value ... error=...`.
// The caller is reduced to its role and id.
func (e entry) line() string {
	var b strings.Builder
	b.WriteString(e.msg)

	keys := make([]string, 0, len(e.extras))
	for k := range e.extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.extras[k])
	}
	if e.caller != nil {
		fmt.Fprintf(&b, " caller=%s:%d", e.caller.Role, e.caller.ID)
	}
	for _, o := range e.other {
		fmt.Fprintf(&b, " %v", o)
	}
	if e.err != nil {
		fmt.Fprintf(&b, " error=%q", e.err.Error())
	}
	return b.String()
}

func (l RollbarLogger) log(level, msg string, args []interface{}) entry {
	e := newEntry(msg, args)
	rollbar.Log(level, e.rollbarArgs()...)
	if level != rollbar.DEBUG || l.debug {
		l.std.Printf("[%s] %s", strings.ToUpper(level), e.line())
	}
	return e
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.log(rollbar.DEBUG, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.log(rollbar.INFO, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.log(rollbar.WARN, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.log(rollbar.ERR, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.CRIT, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
