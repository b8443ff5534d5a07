package sqlxrepos

import (
	"context"

	"github.com/lib/pq"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/identity"
)

const (
	adminColumns   = "id, name, email, password_hash"
	teacherColumns = "id, name, domain, email, password_hash"
	studentColumns = "id, name, domain, study_group, email, password_hash"
)

type (
	adminRepository   struct{ exec core.DBExecutor }
	teacherRepository struct{ exec core.DBExecutor }
	studentRepository struct{ exec core.DBExecutor }
)

var (
	_ identity.AdminRepository   = (*adminRepository)(nil)
	_ identity.TeacherRepository = (*teacherRepository)(nil)
	_ identity.StudentRepository = (*studentRepository)(nil)
)

func NewAdminRepository(exec core.DBExecutor) identity.AdminRepository {
	return &adminRepository{exec: exec}
}

func NewTeacherRepository(exec core.DBExecutor) identity.TeacherRepository {
	return &teacherRepository{exec: exec}
}

func NewStudentRepository(exec core.DBExecutor) identity.StudentRepository {
	return &studentRepository{exec: exec}
}

// getWhere turns a GetFilter into a WHERE clause and its single argument.
func getWhere(filter identity.GetFilter) (string, interface{}) {
	if filter.ID != 0 {
		return " WHERE id = $1", filter.ID
	}
	return " WHERE email = $1", filter.Email
}

// Admins

func (repo *adminRepository) GetAdmin(ctx context.Context, filter identity.GetFilter) (identity.Admin, error) {
	if filter.ID == 0 && filter.Email == "" {
		return identity.Admin{}, core.ErrNotFound
	}
	where, arg := getWhere(filter)

	var adm identity.Admin
	if err := repo.exec.GetContext(ctx, &adm, "SELECT "+adminColumns+" FROM admins"+where, arg); err != nil {
		return identity.Admin{}, trapErr(err, "finding admin")
	}
	return adm, nil
}

func (repo *adminRepository) CreateAdmin(ctx context.Context, adm identity.Admin) (identity.Admin, error) {
	q := "INSERT INTO admins (name, email, password_hash) VALUES ($1, $2, $3) RETURNING " + adminColumns

	var created identity.Admin
	if err := repo.exec.GetContext(ctx, &created, q, adm.Name, adm.Email, adm.PasswordHash); err != nil {
		return identity.Admin{}, trapErr(err, "creating admin")
	}
	return created, nil
}

func (repo *adminRepository) UpdateAdminPassword(ctx context.Context, id int, hash []byte) error {
	res, err := repo.exec.ExecContext(ctx, "UPDATE admins SET password_hash = $2 WHERE id = $1", id, hash)
	if err != nil {
		return trapErr(err, "updating admin password")
	}
	return checkAffected(res, "updating admin password")
}

// Teachers

func (repo *teacherRepository) QueryTeachers(ctx context.Context) ([]identity.Teacher, error) {
	teachers := make([]identity.Teacher, 0)
	if err := repo.exec.SelectContext(ctx, &teachers, "SELECT "+teacherColumns+" FROM teachers ORDER BY id"); err != nil {
		return nil, trapErr(err, "querying teachers")
	}
	return teachers, nil
}

func (repo *teacherRepository) GetTeacher(ctx context.Context, filter identity.GetFilter) (identity.Teacher, error) {
	if filter.ID == 0 && filter.Email == "" {
		return identity.Teacher{}, core.ErrNotFound
	}
	where, arg := getWhere(filter)

	var tch identity.Teacher
	if err := repo.exec.GetContext(ctx, &tch, "SELECT "+teacherColumns+" FROM teachers"+where, arg); err != nil {
		return identity.Teacher{}, trapErr(err, "finding teacher")
	}
	return tch, nil
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, tch identity.Teacher) (identity.Teacher, error) {
	q := "INSERT INTO teachers (name, domain, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING " + teacherColumns

	var created identity.Teacher
	if err := repo.exec.GetContext(ctx, &created, q, tch.Name, tch.Domain, tch.Email, tch.PasswordHash); err != nil {
		return identity.Teacher{}, trapErr(err, "creating teacher")
	}
	return created, nil
}

func (repo *teacherRepository) UpdateTeacher(ctx context.Context, id int, ut identity.UpdateTeacher) (identity.Teacher, error) {
	q := `UPDATE teachers SET
		name = COALESCE($2, name),
		domain = COALESCE($3, domain),
		email = COALESCE($4, email)
	WHERE id = $1 RETURNING ` + teacherColumns

	var updated identity.Teacher
	if err := repo.exec.GetContext(ctx, &updated, q, id, ut.Name, ut.Domain, ut.Email); err != nil {
		return identity.Teacher{}, trapErr(err, "updating teacher")
	}
	return updated, nil
}

func (repo *teacherRepository) UpdateTeacherPassword(ctx context.Context, id int, hash []byte) error {
	res, err := repo.exec.ExecContext(ctx, "UPDATE teachers SET password_hash = $2 WHERE id = $1", id, hash)
	if err != nil {
		return trapErr(err, "updating teacher password")
	}
	return checkAffected(res, "updating teacher password")
}

func (repo *teacherRepository) DeleteTeacher(ctx context.Context, id int) error {
	res, err := repo.exec.ExecContext(ctx, "DELETE FROM teachers WHERE id = $1", id)
	if err != nil {
		return trapErr(err, "deleting teacher")
	}
	return checkAffected(res, "deleting teacher")
}

// Students

func (repo *studentRepository) QueryStudents(ctx context.Context, filter identity.StudentFilter) ([]identity.Student, error) {
	students := make([]identity.Student, 0)
	q := "SELECT " + studentColumns + " FROM students"
	var args []interface{}
	if filter.IDs != nil {
		if len(filter.IDs) == 0 {
			return students, nil
		}
		q += " WHERE id = ANY($1)"
		args = append(args, pq.Array(int64s(filter.IDs)))
	}

	if err := repo.exec.SelectContext(ctx, &students, q+" ORDER BY id", args...); err != nil {
		return nil, trapErr(err, "querying students")
	}
	return students, nil
}

func (repo *studentRepository) GetStudent(ctx context.Context, filter identity.GetFilter) (identity.Student, error) {
	if filter.ID == 0 && filter.Email == "" {
		return identity.Student{}, core.ErrNotFound
	}
	where, arg := getWhere(filter)

	var std identity.Student
	if err := repo.exec.GetContext(ctx, &std, "SELECT "+studentColumns+" FROM students"+where, arg); err != nil {
		return identity.Student{}, trapErr(err, "finding student")
	}
	return std, nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std identity.Student) (identity.Student, error) {
	q := `INSERT INTO students (name, domain, study_group, email, password_hash)
	VALUES ($1, $2, $3, $4, $5) RETURNING ` + studentColumns

	var created identity.Student
	if err := repo.exec.GetContext(ctx, &created, q, std.Name, std.Domain, std.Group, std.Email, std.PasswordHash); err != nil {
		return identity.Student{}, trapErr(err, "creating student")
	}
	return created, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, id int, us identity.UpdateStudent) (identity.Student, error) {
	q := `UPDATE students SET
		name = COALESCE($2, name),
		domain = COALESCE($3, domain),
		study_group = COALESCE($4, study_group),
		email = COALESCE($5, email)
	WHERE id = $1 RETURNING ` + studentColumns

	var updated identity.Student
	if err := repo.exec.GetContext(ctx, &updated, q, id, us.Name, us.Domain, us.Group, us.Email); err != nil {
		return identity.Student{}, trapErr(err, "updating student")
	}
	return updated, nil
}

func (repo *studentRepository) UpdateStudentPassword(ctx context.Context, id int, hash []byte) error {
	res, err := repo.exec.ExecContext(ctx, "UPDATE students SET password_hash = $2 WHERE id = $1", id, hash)
	if err != nil {
		return trapErr(err, "updating student password")
	}
	return checkAffected(res, "updating student password")
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id int) error {
	res, err := repo.exec.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return trapErr(err, "deleting student")
	}
	return checkAffected(res, "deleting student")
}
