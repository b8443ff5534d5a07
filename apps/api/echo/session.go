package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/auth"
	"github.com/trezcool/academia/core/identity"
)

type (
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

type sessionApi struct {
	svc *identity.Service
	iss *auth.Issuer
}

func registerSessionAPI(g *echo.Group, svc *identity.Service, iss *auth.Issuer) {
	api := sessionApi{svc: svc, iss: iss}

	g.POST("/login", api.login)
	g.POST("/logout", api.logout)
}

func (api *sessionApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}

	idt, err := api.svc.Login(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return err
	}
	token, err := api.iss.Issue(idt)
	if err != nil {
		return errors.Wrap(err, "issuing token")
	}

	ctx.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(api.iss.TTL() / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

// logout only clears the cookie; issued tokens stay valid until they expire.
func (api *sessionApi) logout(ctx echo.Context) error {
	ctx.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctx.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
