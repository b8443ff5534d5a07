package inmemdb

import (
	"context"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/identity"
)

type (
	adminRepository   struct{ db *DB }
	teacherRepository struct{ db *DB }
	studentRepository struct{ db *DB }
)

var (
	_ identity.AdminRepository   = (*adminRepository)(nil)
	_ identity.TeacherRepository = (*teacherRepository)(nil)
	_ identity.StudentRepository = (*studentRepository)(nil)
)

func NewAdminRepository(db *DB) identity.AdminRepository {
	return &adminRepository{db: db}
}

func NewTeacherRepository(db *DB) identity.TeacherRepository {
	return &teacherRepository{db: db}
}

func NewStudentRepository(db *DB) identity.StudentRepository {
	return &studentRepository{db: db}
}

func matchGetFilter(filter identity.GetFilter, id int, email string) bool {
	if filter.ID != 0 {
		return filter.ID == id
	}
	return filter.Email != "" && filter.Email == email
}

// Admins

func (repo *adminRepository) GetAdmin(_ context.Context, filter identity.GetFilter) (identity.Admin, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, adm := range repo.db.admins {
		if matchGetFilter(filter, adm.ID, adm.Email.String) {
			return *adm, nil
		}
	}
	return identity.Admin{}, core.ErrNotFound
}

func (repo *adminRepository) emailTaken(email string) bool {
	for _, adm := range repo.db.admins {
		if adm.Email.String == email {
			return true
		}
	}
	return false
}

func (repo *adminRepository) CreateAdmin(_ context.Context, adm identity.Admin) (identity.Admin, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := notNull("admins", "name", adm.Name.Valid); err != nil {
		return identity.Admin{}, err
	}
	if err := notNull("admins", "email", adm.Email.Valid); err != nil {
		return identity.Admin{}, err
	}
	if err := uniqueEmail("admins", adm.Email.String, repo.emailTaken(adm.Email.String)); err != nil {
		return identity.Admin{}, err
	}

	adm.ID = repo.db.nextID("admins")
	repo.db.admins[adm.ID] = &adm
	return adm, nil
}

func (repo *adminRepository) UpdateAdminPassword(_ context.Context, id int, hash []byte) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	adm, ok := repo.db.admins[id]
	if !ok {
		return core.ErrNotFound
	}
	adm.PasswordHash = hash
	return nil
}

// Teachers

func (repo *teacherRepository) QueryTeachers(_ context.Context) ([]identity.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	teachers := make([]identity.Teacher, 0, len(repo.db.teachers))
	for _, tch := range repo.db.teachers {
		teachers = append(teachers, *tch)
	}
	return sortByID(teachers, func(t identity.Teacher) int { return t.ID }), nil
}

func (repo *teacherRepository) GetTeacher(_ context.Context, filter identity.GetFilter) (identity.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, tch := range repo.db.teachers {
		if matchGetFilter(filter, tch.ID, tch.Email.String) {
			return *tch, nil
		}
	}
	return identity.Teacher{}, core.ErrNotFound
}

func (repo *teacherRepository) emailTaken(email string, self int) bool {
	for _, tch := range repo.db.teachers {
		if tch.ID != self && tch.Email.String == email {
			return true
		}
	}
	return false
}

func (repo *teacherRepository) CreateTeacher(_ context.Context, tch identity.Teacher) (identity.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := notNull("teachers", "name", tch.Name.Valid); err != nil {
		return identity.Teacher{}, err
	}
	if err := notNull("teachers", "email", tch.Email.Valid); err != nil {
		return identity.Teacher{}, err
	}
	if err := uniqueEmail("teachers", tch.Email.String, repo.emailTaken(tch.Email.String, 0)); err != nil {
		return identity.Teacher{}, err
	}

	tch.ID = repo.db.nextID("teachers")
	repo.db.teachers[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) UpdateTeacher(_ context.Context, id int, ut identity.UpdateTeacher) (identity.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	tch, ok := repo.db.teachers[id]
	if !ok {
		return identity.Teacher{}, core.ErrNotFound
	}
	if ut.Email.Valid {
		if err := uniqueEmail("teachers", ut.Email.String, repo.emailTaken(ut.Email.String, id)); err != nil {
			return identity.Teacher{}, err
		}
		tch.Email = ut.Email
	}
	// only save set fields
	if ut.Name.Valid {
		tch.Name = ut.Name
	}
	if ut.Domain.Valid {
		tch.Domain = ut.Domain
	}
	return *tch, nil
}

func (repo *teacherRepository) UpdateTeacherPassword(_ context.Context, id int, hash []byte) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	tch, ok := repo.db.teachers[id]
	if !ok {
		return core.ErrNotFound
	}
	tch.PasswordHash = hash
	return nil
}

func (repo *teacherRepository) DeleteTeacher(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.teachers[id]; !ok {
		return core.ErrNotFound
	}
	referenced := false
	for _, ctr := range repo.db.contracts {
		referenced = referenced || ctr.TeacherID.Int == id
	}
	if err := restrict("teachers", "contracts", referenced); err != nil {
		return err
	}
	delete(repo.db.teachers, id)
	return nil
}

// Students

func (repo *studentRepository) QueryStudents(_ context.Context, filter identity.StudentFilter) ([]identity.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	ids := idSet(filter.IDs)
	students := make([]identity.Student, 0, len(repo.db.students))
	for _, std := range repo.db.students {
		if matches(ids, std.ID) {
			students = append(students, *std)
		}
	}
	return sortByID(students, func(s identity.Student) int { return s.ID }), nil
}

func (repo *studentRepository) GetStudent(_ context.Context, filter identity.GetFilter) (identity.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, std := range repo.db.students {
		if matchGetFilter(filter, std.ID, std.Email.String) {
			return *std, nil
		}
	}
	return identity.Student{}, core.ErrNotFound
}

func (repo *studentRepository) emailTaken(email string, self int) bool {
	for _, std := range repo.db.students {
		if std.ID != self && std.Email.String == email {
			return true
		}
	}
	return false
}

func (repo *studentRepository) CreateStudent(_ context.Context, std identity.Student) (identity.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := notNull("students", "name", std.Name.Valid); err != nil {
		return identity.Student{}, err
	}
	if err := notNull("students", "email", std.Email.Valid); err != nil {
		return identity.Student{}, err
	}
	if err := uniqueEmail("students", std.Email.String, repo.emailTaken(std.Email.String, 0)); err != nil {
		return identity.Student{}, err
	}

	std.ID = repo.db.nextID("students")
	repo.db.students[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, id int, us identity.UpdateStudent) (identity.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	std, ok := repo.db.students[id]
	if !ok {
		return identity.Student{}, core.ErrNotFound
	}
	if us.Email.Valid {
		if err := uniqueEmail("students", us.Email.String, repo.emailTaken(us.Email.String, id)); err != nil {
			return identity.Student{}, err
		}
		std.Email = us.Email
	}
	if us.Name.Valid {
		std.Name = us.Name
	}
	if us.Domain.Valid {
		std.Domain = us.Domain
	}
	if us.Group.Valid {
		std.Group = us.Group
	}
	return *std, nil
}

func (repo *studentRepository) UpdateStudentPassword(_ context.Context, id int, hash []byte) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	std, ok := repo.db.students[id]
	if !ok {
		return core.ErrNotFound
	}
	std.PasswordHash = hash
	return nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return core.ErrNotFound
	}
	enrolled, graded := false, false
	for _, enr := range repo.db.enrollments {
		enrolled = enrolled || enr.StudentID.Int == id
	}
	for _, grd := range repo.db.grades {
		graded = graded || grd.StudentID.Int == id
	}
	if err := restrict("students", "enrollments", enrolled); err != nil {
		return err
	}
	if err := restrict("students", "grades", graded); err != nil {
		return err
	}
	delete(repo.db.students, id)
	return nil
}
