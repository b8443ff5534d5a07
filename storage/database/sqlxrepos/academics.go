package sqlxrepos

import (
	"context"

	"github.com/lib/pq"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/academics"
)

const (
	courseColumns     = "id, name, domain"
	contractColumns   = "id, teacher_id, course_id, description"
	enrollmentColumns = "id, student_id, course_id, description"
	testColumns       = "id, course_id, description, date"
	gradeColumns      = "id, description, student_id, test_id, value"
)

type (
	courseRepository     struct{ exec core.DBExecutor }
	contractRepository   struct{ exec core.DBExecutor }
	enrollmentRepository struct{ exec core.DBExecutor }
	testRepository       struct{ exec core.DBExecutor }
	gradeRepository      struct{ exec core.DBExecutor }
)

var (
	_ academics.CourseRepository     = (*courseRepository)(nil)
	_ academics.ContractRepository   = (*contractRepository)(nil)
	_ academics.EnrollmentRepository = (*enrollmentRepository)(nil)
	_ academics.TestRepository       = (*testRepository)(nil)
	_ academics.GradeRepository      = (*gradeRepository)(nil)
)

func NewCourseRepository(exec core.DBExecutor) academics.CourseRepository {
	return &courseRepository{exec: exec}
}

func NewContractRepository(exec core.DBExecutor) academics.ContractRepository {
	return &contractRepository{exec: exec}
}

func NewEnrollmentRepository(exec core.DBExecutor) academics.EnrollmentRepository {
	return &enrollmentRepository{exec: exec}
}

func NewTestRepository(exec core.DBExecutor) academics.TestRepository {
	return &testRepository{exec: exec}
}

func NewGradeRepository(exec core.DBExecutor) academics.GradeRepository {
	return &gradeRepository{exec: exec}
}

// Courses

func (repo *courseRepository) QueryCourses(ctx context.Context, filter academics.CourseFilter) ([]academics.Course, error) {
	courses := make([]academics.Course, 0)
	q := "SELECT " + courseColumns + " FROM courses"
	var args []interface{}
	if filter.IDs != nil {
		if len(filter.IDs) == 0 {
			return courses, nil
		}
		q += " WHERE id = ANY($1)"
		args = append(args, pq.Array(int64s(filter.IDs)))
	}

	if err := repo.exec.SelectContext(ctx, &courses, q+" ORDER BY id", args...); err != nil {
		return nil, trapErr(err, "querying courses")
	}
	return courses, nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs academics.Course) (academics.Course, error) {
	q := "INSERT INTO courses (name, domain) VALUES ($1, $2) RETURNING " + courseColumns

	var created academics.Course
	if err := repo.exec.GetContext(ctx, &created, q, crs.Name, crs.Domain); err != nil {
		return academics.Course{}, trapErr(err, "creating course")
	}
	return created, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, id int, uc academics.UpdateCourse) (academics.Course, error) {
	q := `UPDATE courses SET
		name = COALESCE($2, name),
		domain = COALESCE($3, domain)
	WHERE id = $1 RETURNING ` + courseColumns

	var updated academics.Course
	if err := repo.exec.GetContext(ctx, &updated, q, id, uc.Name, uc.Domain); err != nil {
		return academics.Course{}, trapErr(err, "updating course")
	}
	return updated, nil
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, id int) error {
	res, err := repo.exec.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return trapErr(err, "deleting course")
	}
	return checkAffected(res, "deleting course")
}

// Contracts

func (repo *contractRepository) QueryContracts(ctx context.Context, filter academics.ContractFilter) ([]academics.Contract, error) {
	contracts := make([]academics.Contract, 0)
	q := "SELECT " + contractColumns + " FROM contracts"
	var args []interface{}
	if filter.TeacherID.Valid {
		q += " WHERE teacher_id = $1"
		args = append(args, filter.TeacherID)
	}

	if err := repo.exec.SelectContext(ctx, &contracts, q+" ORDER BY id", args...); err != nil {
		return nil, trapErr(err, "querying contracts")
	}
	return contracts, nil
}

func (repo *contractRepository) CreateContract(ctx context.Context, ctr academics.Contract) (academics.Contract, error) {
	q := "INSERT INTO contracts (teacher_id, course_id, description) VALUES ($1, $2, $3) RETURNING " + contractColumns

	var created academics.Contract
	if err := repo.exec.GetContext(ctx, &created, q, ctr.TeacherID, ctr.CourseID, ctr.Description); err != nil {
		return academics.Contract{}, trapErr(err, "creating contract")
	}
	return created, nil
}

// Enrollments

func (repo *enrollmentRepository) QueryEnrollments(ctx context.Context, filter academics.EnrollmentFilter) ([]academics.Enrollment, error) {
	enrollments := make([]academics.Enrollment, 0)
	if filter.CourseIDs != nil && len(filter.CourseIDs) == 0 {
		return enrollments, nil
	}

	// conditions are ANDed; a NULL argument disables its condition
	q := `SELECT ` + enrollmentColumns + ` FROM enrollments
	WHERE ($1::INTEGER IS NULL OR student_id = $1)
	AND ($2::INTEGER[] IS NULL OR course_id = ANY($2))
	ORDER BY id`

	var courseIDs interface{}
	if filter.CourseIDs != nil {
		courseIDs = pq.Array(int64s(filter.CourseIDs))
	}
	if err := repo.exec.SelectContext(ctx, &enrollments, q, filter.StudentID, courseIDs); err != nil {
		return nil, trapErr(err, "querying enrollments")
	}
	return enrollments, nil
}

func (repo *enrollmentRepository) CreateEnrollment(ctx context.Context, enr academics.Enrollment) (academics.Enrollment, error) {
	q := "INSERT INTO enrollments (student_id, course_id, description) VALUES ($1, $2, $3) RETURNING " + enrollmentColumns

	var created academics.Enrollment
	if err := repo.exec.GetContext(ctx, &created, q, enr.StudentID, enr.CourseID, enr.Description); err != nil {
		return academics.Enrollment{}, trapErr(err, "creating enrollment")
	}
	return created, nil
}

// Tests

func (repo *testRepository) QueryTests(ctx context.Context) ([]academics.Test, error) {
	tests := make([]academics.Test, 0)
	if err := repo.exec.SelectContext(ctx, &tests, "SELECT "+testColumns+" FROM tests ORDER BY id"); err != nil {
		return nil, trapErr(err, "querying tests")
	}
	return tests, nil
}

func (repo *testRepository) CreateTest(ctx context.Context, tst academics.Test) (academics.Test, error) {
	q := "INSERT INTO tests (course_id, description, date) VALUES ($1, $2, $3) RETURNING " + testColumns

	var created academics.Test
	if err := repo.exec.GetContext(ctx, &created, q, tst.CourseID, tst.Description, tst.Date); err != nil {
		return academics.Test{}, trapErr(err, "creating test")
	}
	return created, nil
}

// Grades

func (repo *gradeRepository) QueryGrades(ctx context.Context, filter academics.GradeFilter) ([]academics.Grade, error) {
	grades := make([]academics.Grade, 0)
	q := "SELECT " + gradeColumns + " FROM grades"
	var args []interface{}
	if filter.StudentID.Valid {
		q += " WHERE student_id = $1"
		args = append(args, filter.StudentID)
	}

	if err := repo.exec.SelectContext(ctx, &grades, q+" ORDER BY id", args...); err != nil {
		return nil, trapErr(err, "querying grades")
	}
	return grades, nil
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, grd academics.Grade) (academics.Grade, error) {
	q := `INSERT INTO grades (description, student_id, test_id, value)
	VALUES ($1, $2, $3, $4) RETURNING ` + gradeColumns

	var created academics.Grade
	if err := repo.exec.GetContext(ctx, &created, q, grd.Description, grd.StudentID, grd.TestID, grd.Value); err != nil {
		return academics.Grade{}, trapErr(err, "creating grade")
	}
	return created, nil
}

func (repo *gradeRepository) UpdateGrade(ctx context.Context, id int, ug academics.UpdateGrade) (academics.Grade, error) {
	q := `UPDATE grades SET
		description = COALESCE($2, description),
		value = COALESCE($3, value)
	WHERE id = $1 RETURNING ` + gradeColumns

	var updated academics.Grade
	if err := repo.exec.GetContext(ctx, &updated, q, id, ug.Description, ug.Value); err != nil {
		return academics.Grade{}, trapErr(err, "updating grade")
	}
	return updated, nil
}

func (repo *gradeRepository) DeleteGrade(ctx context.Context, id int) error {
	res, err := repo.exec.ExecContext(ctx, "DELETE FROM grades WHERE id = $1", id)
	if err != nil {
		return trapErr(err, "deleting grade")
	}
	return checkAffected(res, "deleting grade")
}
