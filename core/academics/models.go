package academics

import (
	"github.com/volatiletech/null/v8"
)

type (
	// Course is a discipline taught to students.
	Course struct {
		ID     int         `json:"id" db:"id"`
		Name   null.String `json:"name" db:"name"`
		Domain null.String `json:"domain" db:"domain"`
	}

	// Contract binds a teacher to a course; a teacher owns a course only through a contract.
	Contract struct {
		ID          int         `json:"id" db:"id"`
		TeacherID   null.Int    `json:"teacher_id" db:"teacher_id"`
		CourseID    null.Int    `json:"course_id" db:"course_id"`
		Description null.String `json:"description" db:"description"`
		Course      *Course     `json:"course,omitempty" db:"-"`
	}

	// Enrollment binds a student to a course.
	Enrollment struct {
		ID          int         `json:"id" db:"id"`
		StudentID   null.Int    `json:"student_id" db:"student_id"`
		CourseID    null.Int    `json:"course_id" db:"course_id"`
		Description null.String `json:"description" db:"description"`
		Course      *Course     `json:"course,omitempty" db:"-"`
	}

	// Test is an assessment event scoped to one course.
	Test struct {
		ID          int         `json:"id" db:"id"`
		CourseID    null.Int    `json:"course_id" db:"course_id"`
		Description null.String `json:"description" db:"description"`
		Date        null.Time   `json:"date" db:"date"`
	}

	// Grade is the score of one student on one test.
	Grade struct {
		ID          int         `json:"id" db:"id"`
		Description null.String `json:"description" db:"description"`
		StudentID   null.Int    `json:"student_id" db:"student_id"`
		TestID      null.Int    `json:"test_id" db:"test_id"`
		Value       null.Int    `json:"value" db:"value"`
	}
)

// Request payloads. Absent fields reach the store as NULL.
type (
	NewCourse struct {
		Name   null.String `json:"name"`
		Domain null.String `json:"domain"`
	}

	// UpdateCourse only changes the supplied (non-null) fields.
	UpdateCourse struct {
		Name   null.String `json:"name"`
		Domain null.String `json:"domain"`
	}

	NewContract struct {
		TeacherID   null.Int    `json:"teacher_id"`
		CourseID    null.Int    `json:"course_id"`
		Description null.String `json:"description"`
	}

	NewEnrollment struct {
		StudentID   null.Int    `json:"student_id"`
		CourseID    null.Int    `json:"course_id"`
		Description null.String `json:"description"`
	}

	NewTest struct {
		CourseID    null.Int    `json:"course_id"`
		Description null.String `json:"description"`
		Date        null.Time   `json:"date"`
	}

	NewGrade struct {
		Description null.String `json:"description"`
		StudentID   null.Int    `json:"student_id"`
		TestID      null.Int    `json:"test_id"`
		Value       null.Int    `json:"value"`
	}

	// UpdateGrade only changes the supplied (non-null) fields.
	UpdateGrade struct {
		Description null.String `json:"description"`
		Value       null.Int    `json:"value"`
	}
)

// Query filters. A nil ID slice means no restriction; an empty one matches nothing.
type (
	CourseFilter struct {
		IDs []int
	}

	ContractFilter struct {
		TeacherID null.Int
	}

	EnrollmentFilter struct {
		StudentID null.Int
		CourseIDs []int
	}

	GradeFilter struct {
		StudentID null.Int
	}
)
