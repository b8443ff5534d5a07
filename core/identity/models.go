package identity

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core"
)

// Admin, Teacher and Student are the three disjoint identity classes.
// The role of an account is the class it belongs to, never a stored column.
// Password hashes are never serialized.
type (
	Admin struct {
		ID           int         `json:"id" db:"id"`
		Name         null.String `json:"name" db:"name"`
		Email        null.String `json:"email" db:"email"`
		PasswordHash []byte      `json:"-" db:"password_hash"`
	}

	Teacher struct {
		ID           int         `json:"id" db:"id"`
		Name         null.String `json:"name" db:"name"`
		Domain       null.String `json:"domain" db:"domain"`
		Email        null.String `json:"email" db:"email"`
		PasswordHash []byte      `json:"-" db:"password_hash"`
	}

	Student struct {
		ID           int         `json:"id" db:"id"`
		Name         null.String `json:"name" db:"name"`
		Domain       null.String `json:"domain" db:"domain"`
		Group        null.Int    `json:"group" db:"study_group"`
		Email        null.String `json:"email" db:"email"`
		PasswordHash []byte      `json:"-" db:"password_hash"`
	}
)

// NewAdmin contains information needed to create a new Admin.
type NewAdmin struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (na *NewAdmin) Clean() {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true /* lower */)
}

// NewTeacher contains information needed to create a new Teacher.
// Absent fields are handed to the store as NULL.
type NewTeacher struct {
	Name     null.String `json:"name"`
	Domain   null.String `json:"domain"`
	Email    null.String `json:"email"`
	Password string      `json:"password"`
}

// UpdateTeacher defines what information may be provided to modify an existing Teacher.
// Only the supplied (non-null) fields change.
type UpdateTeacher struct {
	Name   null.String `json:"name"`
	Domain null.String `json:"domain"`
	Email  null.String `json:"email"`
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name     null.String `json:"name"`
	Domain   null.String `json:"domain"`
	Group    null.Int    `json:"group"`
	Email    null.String `json:"email"`
	Password string      `json:"password"`
}

// UpdateStudent defines what information may be provided to modify an existing Student.
type UpdateStudent struct {
	Name   null.String `json:"name"`
	Domain null.String `json:"domain"`
	Group  null.Int    `json:"group"`
	Email  null.String `json:"email"`
}

// GetFilter selects a single account, by ID or by Email.
type GetFilter struct {
	ID    int
	Email string
}

// StudentFilter restricts QueryStudents. A nil IDs means no restriction; an empty IDs matches nothing.
type StudentFilter struct {
	IDs []int
}

func cleanEmail(email null.String) null.String {
	if email.Valid {
		email.String = core.CleanString(email.String, true /* lower */)
	}
	return email
}

func cleanName(name null.String) null.String {
	if name.Valid {
		name.String = core.CleanString(name.String)
	}
	return name
}
