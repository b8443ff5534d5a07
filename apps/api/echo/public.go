package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/academics"
)

type publicApi struct {
	svc *academics.Service
}

func registerPublicAPI(e *echo.Echo, svc *academics.Service) {
	api := publicApi{svc: svc}

	e.GET("/discipline", api.queryCourses)
	e.GET("/testari", api.queryTests)
}

func (api *publicApi) queryCourses(ctx echo.Context) error {
	courses, err := api.svc.QueryCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *publicApi) queryTests(ctx echo.Context) error {
	tests, err := api.svc.QueryTests(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying tests")
	}
	return ctx.JSON(http.StatusOK, tests)
}
