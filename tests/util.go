package testutil

import (
	"context"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core/academics"
	"github.com/trezcool/academia/core/identity"
	inmemdb "github.com/trezcool/academia/storage/database/inmem"
)

// TestHashCost keeps bcrypt fast in tests.
const TestHashCost = 4

// Env bundles in-memory repositories and the services built on them.
type Env struct {
	DB         *inmemdb.DB
	Identities *identity.Service
	Academics  *academics.Service
}

func NewEnv() *Env {
	db := inmemdb.Open()
	students := inmemdb.NewStudentRepository(db)
	return &Env{
		DB: db,
		Identities: identity.NewService(
			inmemdb.NewAdminRepository(db),
			inmemdb.NewTeacherRepository(db),
			students,
			identity.NewHasher(TestHashCost),
		),
		Academics: academics.NewService(academics.Deps{
			Courses:     inmemdb.NewCourseRepository(db),
			Contracts:   inmemdb.NewContractRepository(db),
			Enrollments: inmemdb.NewEnrollmentRepository(db),
			Tests:       inmemdb.NewTestRepository(db),
			Grades:      inmemdb.NewGradeRepository(db),
			Students:    students,
		}),
	}
}

func (env *Env) CreateAdmin(t *testing.T, name, email, pwd string) identity.Admin {
	t.Helper()
	adm, err := env.Identities.CreateAdmin(context.Background(), identity.NewAdmin{Name: name, Email: email, Password: pwd})
	if err != nil {
		t.Fatalf("CreateAdmin() failed: %v", err)
	}
	return adm
}

func (env *Env) CreateTeacher(t *testing.T, name, email, pwd string) identity.Teacher {
	t.Helper()
	tch, err := env.Identities.CreateTeacher(context.Background(), identity.NewTeacher{
		Name:     null.StringFrom(name),
		Domain:   null.StringFrom("Informatica"),
		Email:    null.StringFrom(email),
		Password: pwd,
	})
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return tch
}

func (env *Env) CreateStudent(t *testing.T, name, email, pwd string, group int) identity.Student {
	t.Helper()
	std, err := env.Identities.CreateStudent(context.Background(), identity.NewStudent{
		Name:     null.StringFrom(name),
		Domain:   null.StringFrom("Informatica"),
		Group:    null.IntFrom(group),
		Email:    null.StringFrom(email),
		Password: pwd,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func (env *Env) CreateCourse(t *testing.T, name string) academics.Course {
	t.Helper()
	crs, err := env.Academics.CreateCourse(context.Background(), academics.NewCourse{
		Name:   null.StringFrom(name),
		Domain: null.StringFrom("Informatica"),
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func (env *Env) CreateContract(t *testing.T, teacherID, courseID int) academics.Contract {
	t.Helper()
	ctr, err := env.Academics.CreateContract(context.Background(), academics.NewContract{
		TeacherID: null.IntFrom(teacherID),
		CourseID:  null.IntFrom(courseID),
	})
	if err != nil {
		t.Fatalf("CreateContract() failed: %v", err)
	}
	return ctr
}

func (env *Env) CreateEnrollment(t *testing.T, studentID, courseID int) academics.Enrollment {
	t.Helper()
	enr, err := env.Academics.CreateEnrollment(context.Background(), academics.NewEnrollment{
		StudentID: null.IntFrom(studentID),
		CourseID:  null.IntFrom(courseID),
	})
	if err != nil {
		t.Fatalf("CreateEnrollment() failed: %v", err)
	}
	return enr
}

func (env *Env) CreateTest(t *testing.T, courseID int, desc string) academics.Test {
	t.Helper()
	tst, err := env.Academics.CreateTest(context.Background(), academics.NewTest{
		CourseID:    null.IntFrom(courseID),
		Description: null.StringFrom(desc),
	})
	if err != nil {
		t.Fatalf("CreateTest() failed: %v", err)
	}
	return tst
}

func (env *Env) CreateGrade(t *testing.T, studentID, testID, value int) academics.Grade {
	t.Helper()
	grd, err := env.Academics.CreateGrade(context.Background(), academics.NewGrade{
		StudentID: null.IntFrom(studentID),
		TestID:    null.IntFrom(testID),
		Value:     null.IntFrom(value),
	})
	if err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	return grd
}
