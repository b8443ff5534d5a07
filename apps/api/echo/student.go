package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/academics"
)

type studentApi struct {
	svc *academics.Service
}

func registerStudentAPI(g *echo.Group, svc *academics.Service) {
	api := studentApi{svc: svc}

	g.GET("/discipline", api.queryCourses)
	g.GET("/note", api.queryGrades)
	g.POST("/inscriere", api.enroll)
}

func (api *studentApi) queryCourses(ctx echo.Context) error {
	idt, err := contextIdentity(ctx)
	if err != nil {
		return err
	}
	enrollments, err := api.svc.StudentCourses(ctx.Request().Context(), idt.ID)
	if err != nil {
		return errors.Wrap(err, "querying student courses")
	}
	return ctx.JSON(http.StatusOK, enrollments)
}

func (api *studentApi) queryGrades(ctx echo.Context) error {
	idt, err := contextIdentity(ctx)
	if err != nil {
		return err
	}
	grades, err := api.svc.StudentGrades(ctx.Request().Context(), idt.ID)
	if err != nil {
		return errors.Wrap(err, "querying student grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *studentApi) enroll(ctx echo.Context) error {
	idt, err := contextIdentity(ctx)
	if err != nil {
		return err
	}
	var data academics.NewEnrollment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	enr, err := api.svc.Enroll(ctx.Request().Context(), idt.ID, data)
	if err != nil {
		return errors.Wrap(err, "enrolling")
	}
	return ctx.JSON(http.StatusCreated, enr)
}
