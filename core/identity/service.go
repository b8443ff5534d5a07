package identity

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/auth"
)

var (
	// ErrUnknownEmail is returned when no identity class holds the email.
	ErrUnknownEmail  = errors.New("incorrect email")
	// ErrWrongPassword is returned when the password does not match the first class holding the email.
	ErrWrongPassword = errors.New("incorrect password")
)

type (
	AdminRepository interface {
		GetAdmin(ctx context.Context, filter GetFilter) (Admin, error)
		CreateAdmin(ctx context.Context, adm Admin) (Admin, error)
		UpdateAdminPassword(ctx context.Context, id int, hash []byte) error
	}

	TeacherRepository interface {
		QueryTeachers(ctx context.Context) ([]Teacher, error)
		GetTeacher(ctx context.Context, filter GetFilter) (Teacher, error)
		CreateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		UpdateTeacher(ctx context.Context, id int, ut UpdateTeacher) (Teacher, error)
		UpdateTeacherPassword(ctx context.Context, id int, hash []byte) error
		DeleteTeacher(ctx context.Context, id int) error
	}

	StudentRepository interface {
		QueryStudents(ctx context.Context, filter StudentFilter) ([]Student, error)
		GetStudent(ctx context.Context, filter GetFilter) (Student, error)
		CreateStudent(ctx context.Context, std Student) (Student, error)
		UpdateStudent(ctx context.Context, id int, us UpdateStudent) (Student, error)
		UpdateStudentPassword(ctx context.Context, id int, hash []byte) error
		DeleteStudent(ctx context.Context, id int) error
	}

	// Service owns the three identity classes and credential checks.
	Service struct {
		admins   AdminRepository
		teachers TeacherRepository
		students StudentRepository
		hasher   Hasher
	}
)

func NewService(admins AdminRepository, teachers TeacherRepository, students StudentRepository, hasher Hasher) *Service {
	return &Service{
		admins:   admins,
		teachers: teachers,
		students: students,
		hasher:   hasher,
	}
}

// account is the credential view shared by all identity classes.
type account struct {
	id   int
	hash []byte
	role auth.Role
}

// findAccount looks email up in one identity class.
func (svc *Service) findAccount(ctx context.Context, role auth.Role, email string) (account, error) {
	filter := GetFilter{Email: email}
	switch role {
	case auth.RoleAdmin:
		adm, err := svc.admins.GetAdmin(ctx, filter)
		return account{adm.ID, adm.PasswordHash, role}, err
	case auth.RoleTeacher:
		tch, err := svc.teachers.GetTeacher(ctx, filter)
		return account{tch.ID, tch.PasswordHash, role}, err
	case auth.RoleStudent:
		std, err := svc.students.GetStudent(ctx, filter)
		return account{std.ID, std.PasswordHash, role}, err
	}
	return account{}, auth.ErrUnknownRole
}

// Login checks the identity classes in priority order (admin, teacher, student).
// The first class holding email decides: only its password hash is compared.
func (svc *Service) Login(ctx context.Context, email, pwd string) (auth.Identity, error) {
	email = core.CleanString(email, true /* lower */)
	if email == "" {
		return auth.Identity{}, ErrUnknownEmail
	}

	for _, role := range auth.Roles {
		acc, err := svc.findAccount(ctx, role, email)
		if err != nil {
			if errors.Cause(err) == core.ErrNotFound {
				continue
			}
			return auth.Identity{}, errors.Wrapf(err, "finding %s by email", role)
		}
		if err = svc.hasher.Check(acc.hash, pwd); err != nil {
			return auth.Identity{}, ErrWrongPassword
		}
		return auth.Identity{ID: acc.id, Email: email, Role: acc.role}, nil
	}
	return auth.Identity{}, ErrUnknownEmail
}

// ResetPassword replaces the password of the account holding email in the given identity class.
func (svc *Service) ResetPassword(ctx context.Context, role auth.Role, email, pwd string) error {
	acc, err := svc.findAccount(ctx, role, core.CleanString(email, true /* lower */))
	if err != nil {
		return errors.Wrapf(err, "finding %s by email", role)
	}
	hash, err := svc.hasher.Hash(pwd)
	if err != nil {
		return err
	}

	switch role {
	case auth.RoleAdmin:
		err = svc.admins.UpdateAdminPassword(ctx, acc.id, hash)
	case auth.RoleTeacher:
		err = svc.teachers.UpdateTeacherPassword(ctx, acc.id, hash)
	case auth.RoleStudent:
		err = svc.students.UpdateStudentPassword(ctx, acc.id, hash)
	}
	return errors.Wrapf(err, "updating %s password", role)
}

// Admins

func (svc *Service) GetAdmin(ctx context.Context, filter GetFilter) (Admin, error) {
	filter.Email = core.CleanString(filter.Email, true /* lower */)
	return svc.admins.GetAdmin(ctx, filter)
}

func (svc *Service) CreateAdmin(ctx context.Context, na NewAdmin) (Admin, error) {
	na.Clean()
	hash, err := svc.hasher.Hash(na.Password)
	if err != nil {
		return Admin{}, err
	}
	return svc.admins.CreateAdmin(ctx, Admin{
		Name:         null.StringFrom(na.Name),
		Email:        null.StringFrom(na.Email),
		PasswordHash: hash,
	})
}

// Teachers

func (svc *Service) QueryTeachers(ctx context.Context) ([]Teacher, error) {
	return svc.teachers.QueryTeachers(ctx)
}

func (svc *Service) CreateTeacher(ctx context.Context, nt NewTeacher) (Teacher, error) {
	hash, err := svc.hasher.Hash(nt.Password)
	if err != nil {
		return Teacher{}, err
	}
	return svc.teachers.CreateTeacher(ctx, Teacher{
		Name:         cleanName(nt.Name),
		Domain:       nt.Domain,
		Email:        cleanEmail(nt.Email),
		PasswordHash: hash,
	})
}

func (svc *Service) UpdateTeacher(ctx context.Context, id int, ut UpdateTeacher) (Teacher, error) {
	ut.Name = cleanName(ut.Name)
	ut.Email = cleanEmail(ut.Email)
	return svc.teachers.UpdateTeacher(ctx, id, ut)
}

func (svc *Service) DeleteTeacher(ctx context.Context, id int) error {
	return svc.teachers.DeleteTeacher(ctx, id)
}

// Students

func (svc *Service) QueryStudents(ctx context.Context) ([]Student, error) {
	return svc.students.QueryStudents(ctx, StudentFilter{})
}

func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	hash, err := svc.hasher.Hash(ns.Password)
	if err != nil {
		return Student{}, err
	}
	return svc.students.CreateStudent(ctx, Student{
		Name:         cleanName(ns.Name),
		Domain:       ns.Domain,
		Group:        ns.Group,
		Email:        cleanEmail(ns.Email),
		PasswordHash: hash,
	})
}

func (svc *Service) UpdateStudent(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	us.Name = cleanName(us.Name)
	us.Email = cleanEmail(us.Email)
	return svc.students.UpdateStudent(ctx, id, us)
}

func (svc *Service) DeleteStudent(ctx context.Context, id int) error {
	return svc.students.DeleteStudent(ctx, id)
}
