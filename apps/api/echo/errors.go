package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/auth"
	"github.com/trezcool/academia/core/identity"
)

const internalErrorMessage = "internal server error"

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var code int
		body := echo.Map{}

		switch origErr := errors.Cause(err); origErr {
		case auth.ErrUnauthenticated, auth.ErrInvalidToken, identity.ErrUnknownEmail, identity.ErrWrongPassword:
			code = http.StatusUnauthorized
			body["message"] = origErr.Error()
		case auth.ErrForbidden:
			code = http.StatusForbidden
			body["message"] = origErr.Error()
		default:
			if herr, ok := origErr.(*echo.HTTPError); ok {
				if herr.Internal != nil {
					if inner, ok := herr.Internal.(*echo.HTTPError); ok {
						herr = inner
					}
				}
				code = herr.Code
				body["message"] = herr.Message
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			body["message"] = internalErrorMessage
			body["error"] = err.Error()

			args := []interface{}{errors.Wrap(err, internalErrorMessage)}
			if idt, iErr := contextIdentity(ctx); iErr == nil {
				args = append(args, idt)
			}
			logger.Error(internalErrorMessage, args...)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code != http.StatusInternalServerError {
			body["error"] = err.Error()
		}

		// Send response
		if ctx.Request().Method == http.MethodHead { // Issue #608
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, body)
		}
		if err != nil {
			ctx.Echo().Logger.Error(err)
		}
	}
}
