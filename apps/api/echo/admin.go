package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/academics"
	"github.com/trezcool/academia/core/identity"
)

type adminApi struct {
	identities *identity.Service
	academics  *academics.Service
}

func registerAdminAPI(g *echo.Group, identities *identity.Service, acad *academics.Service) {
	api := adminApi{identities: identities, academics: acad}

	g.GET("/profesori", api.queryTeachers)
	g.POST("/profesori", api.createTeacher)
	g.PATCH("/profesori/:id", api.updateTeacher)
	g.DELETE("/profesori/:id", api.destroyTeacher)

	g.GET("/studenti", api.queryStudents)
	g.POST("/studenti", api.createStudent)
	g.PATCH("/studenti/:id", api.updateStudent)
	g.DELETE("/studenti/:id", api.destroyStudent)

	g.GET("/discipline", api.queryCourses)
	g.POST("/discipline", api.createCourse)
	g.PATCH("/discipline/:id", api.updateCourse)
	g.DELETE("/discipline/:id", api.destroyCourse)

	g.GET("/contracte", api.queryContracts)
	g.POST("/contracte", api.createContract)

	g.GET("/inscrieri", api.queryEnrollments)
	g.POST("/inscrieri", api.createEnrollment)

	g.GET("/testari", api.queryTests)

	g.GET("/note", api.queryGrades)
	g.DELETE("/note/:id", api.destroyGrade)
}

// Teachers

func (api *adminApi) queryTeachers(ctx echo.Context) error {
	teachers, err := api.identities.QueryTeachers(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *adminApi) createTeacher(ctx echo.Context) error {
	var data identity.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	tch, err := api.identities.CreateTeacher(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, tch)
}

func (api *adminApi) updateTeacher(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data identity.UpdateTeacher
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	tch, err := api.identities.UpdateTeacher(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, tch)
}

func (api *adminApi) destroyTeacher(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.identities.DeleteTeacher(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Students

func (api *adminApi) queryStudents(ctx echo.Context) error {
	students, err := api.identities.QueryStudents(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *adminApi) createStudent(ctx echo.Context) error {
	var data identity.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	std, err := api.identities.CreateStudent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *adminApi) updateStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data identity.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	std, err := api.identities.UpdateStudent(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *adminApi) destroyStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.identities.DeleteStudent(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Courses

func (api *adminApi) queryCourses(ctx echo.Context) error {
	courses, err := api.academics.QueryCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *adminApi) createCourse(ctx echo.Context) error {
	var data academics.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	crs, err := api.academics.CreateCourse(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *adminApi) updateCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data academics.UpdateCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	crs, err := api.academics.UpdateCourse(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *adminApi) destroyCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.academics.DeleteCourse(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Contracts & Enrollments

func (api *adminApi) queryContracts(ctx echo.Context) error {
	contracts, err := api.academics.QueryContracts(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying contracts")
	}
	return ctx.JSON(http.StatusOK, contracts)
}

func (api *adminApi) createContract(ctx echo.Context) error {
	var data academics.NewContract
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewContract")
	}
	ctr, err := api.academics.CreateContract(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating contract")
	}
	return ctx.JSON(http.StatusCreated, ctr)
}

func (api *adminApi) queryEnrollments(ctx echo.Context) error {
	enrollments, err := api.academics.QueryEnrollments(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}
	return ctx.JSON(http.StatusOK, enrollments)
}

func (api *adminApi) createEnrollment(ctx echo.Context) error {
	var data academics.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	enr, err := api.academics.CreateEnrollment(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating enrollment")
	}
	return ctx.JSON(http.StatusCreated, enr)
}

// Tests & Grades

func (api *adminApi) queryTests(ctx echo.Context) error {
	tests, err := api.academics.QueryTests(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying tests")
	}
	return ctx.JSON(http.StatusOK, tests)
}

func (api *adminApi) queryGrades(ctx echo.Context) error {
	grades, err := api.academics.QueryGrades(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *adminApi) destroyGrade(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.academics.DeleteGrade(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}
