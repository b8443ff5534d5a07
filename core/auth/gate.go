package auth

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// CookieName is the cookie consulted when no Authorization header is sent.
const CookieName = "token"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidToken    = errors.New("invalid token")
	ErrForbidden       = errors.New("permission denied")
)

// TokenFromRequest returns the bearer token of r, falling back to the token cookie.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Authenticate resolves the caller of r.
func (iss *Issuer) Authenticate(r *http.Request) (Identity, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}
	return iss.Verify(token)
}

// Authorize fails with ErrForbidden unless idt holds one of the allowed roles.
func Authorize(idt Identity, allowed ...Role) error {
	for _, role := range allowed {
		if idt.Role == role {
			return nil
		}
	}
	return ErrForbidden
}
