package auth

import "github.com/pkg/errors"

// Role is resolved once at login from the identity class an account belongs to.
type Role uint8

const (
	RoleAdmin Role = iota + 1
	RoleTeacher
	RoleStudent
)

var (
	// Roles lists every role in login priority order.
	Roles = []Role{RoleAdmin, RoleTeacher, RoleStudent}

	roleNames = map[Role]string{
		RoleAdmin:   "admin",
		RoleTeacher: "teacher",
		RoleStudent: "student",
	}

	ErrUnknownRole = errors.New("unknown role")
)

func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownRole, "%q", s)
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrUnknownRole
	}
	return []byte(roleNames[r]), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Identity is the authenticated caller of a request.
type Identity struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
