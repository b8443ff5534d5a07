package academics

import (
	"context"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/identity"
)

type (
	CourseRepository interface {
		QueryCourses(ctx context.Context, filter CourseFilter) ([]Course, error)
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		UpdateCourse(ctx context.Context, id int, uc UpdateCourse) (Course, error)
		DeleteCourse(ctx context.Context, id int) error
	}

	ContractRepository interface {
		QueryContracts(ctx context.Context, filter ContractFilter) ([]Contract, error)
		CreateContract(ctx context.Context, ctr Contract) (Contract, error)
	}

	EnrollmentRepository interface {
		QueryEnrollments(ctx context.Context, filter EnrollmentFilter) ([]Enrollment, error)
		CreateEnrollment(ctx context.Context, enr Enrollment) (Enrollment, error)
	}

	TestRepository interface {
		QueryTests(ctx context.Context) ([]Test, error)
		CreateTest(ctx context.Context, tst Test) (Test, error)
	}

	GradeRepository interface {
		QueryGrades(ctx context.Context, filter GradeFilter) ([]Grade, error)
		CreateGrade(ctx context.Context, grd Grade) (Grade, error)
		UpdateGrade(ctx context.Context, id int, ug UpdateGrade) (Grade, error)
		DeleteGrade(ctx context.Context, id int) error
	}

	Deps struct {
		Courses     CourseRepository
		Contracts   ContractRepository
		Enrollments EnrollmentRepository
		Tests       TestRepository
		Grades      GradeRepository
		Students    identity.StudentRepository
	}

	// Service exposes the academic records. Methods without a caller argument are unscoped
	// and meant for admins and public listings; the scoped ones live in scope.go.
	Service struct {
		courses     CourseRepository
		contracts   ContractRepository
		enrollments EnrollmentRepository
		tests       TestRepository
		grades      GradeRepository
		students    identity.StudentRepository
	}
)

func NewService(deps Deps) *Service {
	return &Service{
		courses:     deps.Courses,
		contracts:   deps.Contracts,
		enrollments: deps.Enrollments,
		tests:       deps.Tests,
		grades:      deps.Grades,
		students:    deps.Students,
	}
}

// Courses

func (svc *Service) QueryCourses(ctx context.Context) ([]Course, error) {
	return svc.courses.QueryCourses(ctx, CourseFilter{})
}

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	if nc.Name.Valid {
		nc.Name.String = core.CleanString(nc.Name.String)
	}
	return svc.courses.CreateCourse(ctx, Course{Name: nc.Name, Domain: nc.Domain})
}

func (svc *Service) UpdateCourse(ctx context.Context, id int, uc UpdateCourse) (Course, error) {
	if uc.Name.Valid {
		uc.Name.String = core.CleanString(uc.Name.String)
	}
	return svc.courses.UpdateCourse(ctx, id, uc)
}

func (svc *Service) DeleteCourse(ctx context.Context, id int) error {
	return svc.courses.DeleteCourse(ctx, id)
}

// Contracts

func (svc *Service) QueryContracts(ctx context.Context) ([]Contract, error) {
	return svc.contracts.QueryContracts(ctx, ContractFilter{})
}

func (svc *Service) CreateContract(ctx context.Context, nc NewContract) (Contract, error) {
	return svc.contracts.CreateContract(ctx, Contract{
		TeacherID:   nc.TeacherID,
		CourseID:    nc.CourseID,
		Description: nc.Description,
	})
}

// Enrollments

func (svc *Service) QueryEnrollments(ctx context.Context) ([]Enrollment, error) {
	return svc.enrollments.QueryEnrollments(ctx, EnrollmentFilter{})
}

func (svc *Service) CreateEnrollment(ctx context.Context, ne NewEnrollment) (Enrollment, error) {
	return svc.enrollments.CreateEnrollment(ctx, Enrollment{
		StudentID:   ne.StudentID,
		CourseID:    ne.CourseID,
		Description: ne.Description,
	})
}

// Tests

func (svc *Service) QueryTests(ctx context.Context) ([]Test, error) {
	return svc.tests.QueryTests(ctx)
}

// CreateTest does not check that the caller teaches the course.
func (svc *Service) CreateTest(ctx context.Context, nt NewTest) (Test, error) {
	return svc.tests.CreateTest(ctx, Test{
		CourseID:    nt.CourseID,
		Description: nt.Description,
		Date:        nt.Date,
	})
}

// Grades

func (svc *Service) QueryGrades(ctx context.Context) ([]Grade, error) {
	return svc.grades.QueryGrades(ctx, GradeFilter{})
}

// CreateGrade does not check that the caller teaches the student or owns the test.
func (svc *Service) CreateGrade(ctx context.Context, ng NewGrade) (Grade, error) {
	return svc.grades.CreateGrade(ctx, Grade{
		Description: ng.Description,
		StudentID:   ng.StudentID,
		TestID:      ng.TestID,
		Value:       ng.Value,
	})
}

func (svc *Service) UpdateGrade(ctx context.Context, id int, ug UpdateGrade) (Grade, error) {
	return svc.grades.UpdateGrade(ctx, id, ug)
}

func (svc *Service) DeleteGrade(ctx context.Context, id int) error {
	return svc.grades.DeleteGrade(ctx, id)
}
