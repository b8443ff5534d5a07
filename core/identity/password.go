package identity

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is used when no cost factor is configured.
const DefaultHashCost = 10

var ErrEmptyPassword = errors.New("password is required")

// Hasher hashes and checks account passwords with bcrypt.
type Hasher struct {
	cost int
}

func NewHasher(cost int) Hasher {
	if cost <= 0 {
		cost = DefaultHashCost
	}
	return Hasher{cost: cost}
}

func (h Hasher) Hash(pwd string) ([]byte, error) {
	if pwd == "" {
		return nil, ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), h.cost)
	if err != nil {
		return nil, errors.Wrap(err, "hashing password")
	}
	return hash, nil
}

func (h Hasher) Check(hash []byte, pwd string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(pwd))
}
