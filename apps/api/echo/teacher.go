package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/academics"
)

type teacherApi struct {
	svc *academics.Service
}

// registerTeacherAPI expects g to only admit teachers.
func registerTeacherAPI(g *echo.Group, svc *academics.Service) {
	api := teacherApi{svc: svc}

	g.GET("/discipline", api.queryCourses)
	g.GET("/studenti", api.queryStudents)
	g.POST("/testari", api.createTest)
	g.POST("/note", api.createGrade)
	g.PATCH("/note/:id", api.updateGrade)
}

func (api *teacherApi) queryCourses(ctx echo.Context) error {
	idt, err := contextIdentity(ctx)
	if err != nil {
		return err
	}
	contracts, err := api.svc.TeacherCourses(ctx.Request().Context(), idt.ID)
	if err != nil {
		return errors.Wrap(err, "querying teacher courses")
	}
	return ctx.JSON(http.StatusOK, contracts)
}

func (api *teacherApi) queryStudents(ctx echo.Context) error {
	idt, err := contextIdentity(ctx)
	if err != nil {
		return err
	}
	students, err := api.svc.TeacherStudents(ctx.Request().Context(), idt.ID)
	if err != nil {
		return errors.Wrap(err, "querying teacher students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *teacherApi) createTest(ctx echo.Context) error {
	var data academics.NewTest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTest")
	}
	tst, err := api.svc.CreateTest(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating test")
	}
	return ctx.JSON(http.StatusCreated, tst)
}

func (api *teacherApi) createGrade(ctx echo.Context) error {
	var data academics.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	grd, err := api.svc.CreateGrade(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusCreated, grd)
}

func (api *teacherApi) updateGrade(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data academics.UpdateGrade
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGrade")
	}
	grd, err := api.svc.UpdateGrade(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, grd)
}
