package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// DefaultTokenTTL is how long an issued token stays valid. There is no refresh: callers log in again.
const DefaultTokenTTL = time.Hour

var signingMethod = jwt.SigningMethodHS256

// claims represents the authorization claims transmitted via a JWT.
type claims struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

// Issuer issues and verifies signed bearer tokens.
type Issuer struct {
	name   string
	secret []byte
	ttl    time.Duration
	now    func() time.Time // mockable
}

func NewIssuer(appName string, secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{
		name:   appName,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (iss *Issuer) TTL() time.Duration {
	return iss.ttl
}

// Issue generates a signed JWT token string representing idt.
func (iss *Issuer) Issue(idt Identity) (string, error) {
	if !idt.Role.Valid() {
		return "", errors.Wrap(ErrUnknownRole, "issuing token")
	}
	now := iss.now()
	clms := claims{
		ID:    idt.ID,
		Email: idt.Email,
		Role:  idt.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    iss.name,
			Subject:   strconv.Itoa(idt.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(iss.ttl)),
		},
	}
	ss, err := jwt.NewWithClaims(signingMethod, clms).SignedString(iss.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// Verify checks the signature and expiry of token and returns the Identity it carries.
// Any failure is reported as ErrInvalidToken.
func (iss *Issuer) Verify(token string) (Identity, error) {
	clms := new(claims)
	parsed, err := jwt.ParseWithClaims(
		token, clms,
		func(*jwt.Token) (interface{}, error) { return iss.secret, nil },
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(iss.name),
		jwt.WithTimeFunc(iss.now),
	)
	if err != nil {
		return Identity{}, errors.Wrap(ErrInvalidToken, err.Error())
	}
	if !parsed.Valid || !clms.Role.Valid() {
		return Identity{}, ErrInvalidToken
	}
	return Identity{ID: clms.ID, Email: clms.Email, Role: clms.Role}, nil
}
