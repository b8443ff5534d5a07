package academics

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core/identity"
)

// TeacherCourses returns the contracts of teacherID with their course attached.
func (svc *Service) TeacherCourses(ctx context.Context, teacherID int) ([]Contract, error) {
	contracts, err := svc.contracts.QueryContracts(ctx, ContractFilter{TeacherID: null.IntFrom(teacherID)})
	if err != nil {
		return nil, errors.Wrap(err, "querying teacher contracts")
	}

	courseIDs := make([]int, 0, len(contracts))
	for _, ctr := range contracts {
		courseIDs = append(courseIDs, ctr.CourseID.Int)
	}
	courses, err := svc.courseIndex(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	for i := range contracts {
		contracts[i].Course = courses[contracts[i].CourseID.Int]
	}
	return contracts, nil
}

// TeacherStudents returns the students enrolled in any course teacherID holds a contract for.
// Students enrolled in several of those courses appear once, in first-enrollment order.
func (svc *Service) TeacherStudents(ctx context.Context, teacherID int) ([]identity.Student, error) {
	contracts, err := svc.contracts.QueryContracts(ctx, ContractFilter{TeacherID: null.IntFrom(teacherID)})
	if err != nil {
		return nil, errors.Wrap(err, "querying teacher contracts")
	}
	if len(contracts) == 0 {
		return []identity.Student{}, nil
	}

	courseIDs := make([]int, 0, len(contracts))
	for _, ctr := range contracts {
		courseIDs = append(courseIDs, ctr.CourseID.Int)
	}
	enrollments, err := svc.enrollments.QueryEnrollments(ctx, EnrollmentFilter{CourseIDs: courseIDs})
	if err != nil {
		return nil, errors.Wrap(err, "querying course enrollments")
	}

	seen := make(map[int]bool, len(enrollments))
	studentIDs := make([]int, 0, len(enrollments))
	for _, enr := range enrollments {
		if id := enr.StudentID.Int; !seen[id] {
			seen[id] = true
			studentIDs = append(studentIDs, id)
		}
	}
	if len(studentIDs) == 0 {
		return []identity.Student{}, nil
	}

	students, err := svc.students.QueryStudents(ctx, identity.StudentFilter{IDs: studentIDs})
	if err != nil {
		return nil, errors.Wrap(err, "querying enrolled students")
	}
	byID := make(map[int]identity.Student, len(students))
	for _, std := range students {
		std.PasswordHash = nil
		byID[std.ID] = std
	}

	result := make([]identity.Student, 0, len(studentIDs))
	for _, id := range studentIDs {
		if std, ok := byID[id]; ok {
			result = append(result, std)
		}
	}
	return result, nil
}

// StudentCourses returns the enrollments of studentID with their course attached.
func (svc *Service) StudentCourses(ctx context.Context, studentID int) ([]Enrollment, error) {
	enrollments, err := svc.enrollments.QueryEnrollments(ctx, EnrollmentFilter{StudentID: null.IntFrom(studentID)})
	if err != nil {
		return nil, errors.Wrap(err, "querying student enrollments")
	}

	courseIDs := make([]int, 0, len(enrollments))
	for _, enr := range enrollments {
		courseIDs = append(courseIDs, enr.CourseID.Int)
	}
	courses, err := svc.courseIndex(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	for i := range enrollments {
		enrollments[i].Course = courses[enrollments[i].CourseID.Int]
	}
	return enrollments, nil
}

// StudentGrades returns the grades of studentID only.
func (svc *Service) StudentGrades(ctx context.Context, studentID int) ([]Grade, error) {
	return svc.grades.QueryGrades(ctx, GradeFilter{StudentID: null.IntFrom(studentID)})
}

// Enroll enrolls studentID in a course. Any student ID in ne is ignored.
func (svc *Service) Enroll(ctx context.Context, studentID int, ne NewEnrollment) (Enrollment, error) {
	ne.StudentID = null.IntFrom(studentID)
	return svc.CreateEnrollment(ctx, ne)
}

func (svc *Service) courseIndex(ctx context.Context, ids []int) (map[int]*Course, error) {
	index := make(map[int]*Course, len(ids))
	if len(ids) == 0 {
		return index, nil
	}
	courses, err := svc.courses.QueryCourses(ctx, CourseFilter{IDs: ids})
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	for i := range courses {
		index[courses[i].ID] = &courses[i]
	}
	return index, nil
}
