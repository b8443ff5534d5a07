package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/auth"
)

const contextIdentityKey = "identity"

// authenticated resolves the caller from the bearer token (or the token cookie) and stores it in the context.
func authenticated(iss *auth.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			idt, err := iss.Authenticate(ctx.Request())
			if err != nil {
				return err
			}
			ctx.Set(contextIdentityKey, idt)
			return next(ctx)
		}
	}
}

// allow must run after authenticated.
func allow(roles ...auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			idt, err := contextIdentity(ctx)
			if err != nil {
				return err
			}
			if err = auth.Authorize(idt, roles...); err != nil {
				return err
			}
			return next(ctx)
		}
	}
}

func contextIdentity(ctx echo.Context) (auth.Identity, error) {
	if idt, ok := ctx.Get(contextIdentityKey).(auth.Identity); ok {
		return idt, nil
	}
	return auth.Identity{}, auth.ErrUnauthenticated
}

// pathID parses the `:id` path parameter. A malformed id is reported as a server error.
func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errors.Wrapf(err, "parsing id %q", ctx.Param("id"))
	}
	return id, nil
}
