package inmemdb

import (
	"context"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/academics"
)

type (
	courseRepository     struct{ db *DB }
	contractRepository   struct{ db *DB }
	enrollmentRepository struct{ db *DB }
	testRepository       struct{ db *DB }
	gradeRepository      struct{ db *DB }
)

var (
	_ academics.CourseRepository     = (*courseRepository)(nil)
	_ academics.ContractRepository   = (*contractRepository)(nil)
	_ academics.EnrollmentRepository = (*enrollmentRepository)(nil)
	_ academics.TestRepository       = (*testRepository)(nil)
	_ academics.GradeRepository      = (*gradeRepository)(nil)
)

func NewCourseRepository(db *DB) academics.CourseRepository {
	return &courseRepository{db: db}
}

func NewContractRepository(db *DB) academics.ContractRepository {
	return &contractRepository{db: db}
}

func NewEnrollmentRepository(db *DB) academics.EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func NewTestRepository(db *DB) academics.TestRepository {
	return &testRepository{db: db}
}

func NewGradeRepository(db *DB) academics.GradeRepository {
	return &gradeRepository{db: db}
}

// existence checks, called with the lock held

func (db *DB) teacherExists(id int) bool {
	_, ok := db.teachers[id]
	return ok
}

func (db *DB) studentExists(id int) bool {
	_, ok := db.students[id]
	return ok
}

func (db *DB) courseExists(id int) bool {
	_, ok := db.courses[id]
	return ok
}

func (db *DB) testExists(id int) bool {
	_, ok := db.tests[id]
	return ok
}

// Courses

func (repo *courseRepository) QueryCourses(_ context.Context, filter academics.CourseFilter) ([]academics.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	ids := idSet(filter.IDs)
	courses := make([]academics.Course, 0, len(repo.db.courses))
	for _, crs := range repo.db.courses {
		if matches(ids, crs.ID) {
			courses = append(courses, *crs)
		}
	}
	return sortByID(courses, func(c academics.Course) int { return c.ID }), nil
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs academics.Course) (academics.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := notNull("courses", "name", crs.Name.Valid); err != nil {
		return academics.Course{}, err
	}
	crs.ID = repo.db.nextID("courses")
	repo.db.courses[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) UpdateCourse(_ context.Context, id int, uc academics.UpdateCourse) (academics.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	crs, ok := repo.db.courses[id]
	if !ok {
		return academics.Course{}, core.ErrNotFound
	}
	if uc.Name.Valid {
		crs.Name = uc.Name
	}
	if uc.Domain.Valid {
		crs.Domain = uc.Domain
	}
	return *crs, nil
}

func (repo *courseRepository) DeleteCourse(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.courses[id]; !ok {
		return core.ErrNotFound
	}
	contracted, enrolled, tested := false, false, false
	for _, ctr := range repo.db.contracts {
		contracted = contracted || ctr.CourseID.Int == id
	}
	for _, enr := range repo.db.enrollments {
		enrolled = enrolled || enr.CourseID.Int == id
	}
	for _, tst := range repo.db.tests {
		tested = tested || tst.CourseID.Int == id
	}
	if err := restrict("courses", "contracts", contracted); err != nil {
		return err
	}
	if err := restrict("courses", "enrollments", enrolled); err != nil {
		return err
	}
	if err := restrict("courses", "tests", tested); err != nil {
		return err
	}
	delete(repo.db.courses, id)
	return nil
}

// Contracts

func (repo *contractRepository) QueryContracts(_ context.Context, filter academics.ContractFilter) ([]academics.Contract, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	contracts := make([]academics.Contract, 0, len(repo.db.contracts))
	for _, ctr := range repo.db.contracts {
		if filter.TeacherID.Valid && ctr.TeacherID.Int != filter.TeacherID.Int {
			continue
		}
		contracts = append(contracts, *ctr)
	}
	return sortByID(contracts, func(c academics.Contract) int { return c.ID }), nil
}

func (repo *contractRepository) CreateContract(_ context.Context, ctr academics.Contract) (academics.Contract, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := foreignKey("contracts", "teacher_id", ctr.TeacherID, repo.db.teacherExists); err != nil {
		return academics.Contract{}, err
	}
	if err := foreignKey("contracts", "course_id", ctr.CourseID, repo.db.courseExists); err != nil {
		return academics.Contract{}, err
	}
	ctr.ID = repo.db.nextID("contracts")
	ctr.Course = nil
	repo.db.contracts[ctr.ID] = &ctr
	return ctr, nil
}

// Enrollments

func (repo *enrollmentRepository) QueryEnrollments(_ context.Context, filter academics.EnrollmentFilter) ([]academics.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courseIDs := idSet(filter.CourseIDs)
	enrollments := make([]academics.Enrollment, 0, len(repo.db.enrollments))
	for _, enr := range repo.db.enrollments {
		if filter.StudentID.Valid && enr.StudentID.Int != filter.StudentID.Int {
			continue
		}
		if !matches(courseIDs, enr.CourseID.Int) {
			continue
		}
		enrollments = append(enrollments, *enr)
	}
	return sortByID(enrollments, func(e academics.Enrollment) int { return e.ID }), nil
}

func (repo *enrollmentRepository) CreateEnrollment(_ context.Context, enr academics.Enrollment) (academics.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := foreignKey("enrollments", "student_id", enr.StudentID, repo.db.studentExists); err != nil {
		return academics.Enrollment{}, err
	}
	if err := foreignKey("enrollments", "course_id", enr.CourseID, repo.db.courseExists); err != nil {
		return academics.Enrollment{}, err
	}
	enr.ID = repo.db.nextID("enrollments")
	enr.Course = nil
	repo.db.enrollments[enr.ID] = &enr
	return enr, nil
}

// Tests

func (repo *testRepository) QueryTests(_ context.Context) ([]academics.Test, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tests := make([]academics.Test, 0, len(repo.db.tests))
	for _, tst := range repo.db.tests {
		tests = append(tests, *tst)
	}
	return sortByID(tests, func(t academics.Test) int { return t.ID }), nil
}

func (repo *testRepository) CreateTest(_ context.Context, tst academics.Test) (academics.Test, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := foreignKey("tests", "course_id", tst.CourseID, repo.db.courseExists); err != nil {
		return academics.Test{}, err
	}
	tst.ID = repo.db.nextID("tests")
	repo.db.tests[tst.ID] = &tst
	return tst, nil
}

// Grades

func (repo *gradeRepository) QueryGrades(_ context.Context, filter academics.GradeFilter) ([]academics.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	grades := make([]academics.Grade, 0, len(repo.db.grades))
	for _, grd := range repo.db.grades {
		if filter.StudentID.Valid && grd.StudentID.Int != filter.StudentID.Int {
			continue
		}
		grades = append(grades, *grd)
	}
	return sortByID(grades, func(g academics.Grade) int { return g.ID }), nil
}

func (repo *gradeRepository) CreateGrade(_ context.Context, grd academics.Grade) (academics.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := foreignKey("grades", "student_id", grd.StudentID, repo.db.studentExists); err != nil {
		return academics.Grade{}, err
	}
	if err := foreignKey("grades", "test_id", grd.TestID, repo.db.testExists); err != nil {
		return academics.Grade{}, err
	}
	if err := notNull("grades", "value", grd.Value.Valid); err != nil {
		return academics.Grade{}, err
	}
	grd.ID = repo.db.nextID("grades")
	repo.db.grades[grd.ID] = &grd
	return grd, nil
}

func (repo *gradeRepository) UpdateGrade(_ context.Context, id int, ug academics.UpdateGrade) (academics.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	grd, ok := repo.db.grades[id]
	if !ok {
		return academics.Grade{}, core.ErrNotFound
	}
	if ug.Description.Valid {
		grd.Description = ug.Description
	}
	if ug.Value.Valid {
		grd.Value = ug.Value
	}
	return *grd, nil
}

func (repo *gradeRepository) DeleteGrade(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.grades[id]; !ok {
		return core.ErrNotFound
	}
	delete(repo.db.grades, id)
	return nil
}
