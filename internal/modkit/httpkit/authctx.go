package httpkit

import (
	"net/http"
	"strings"

	perrs "lockbox/internal/platform/errors"
	pnet "lockbox/internal/platform/net"
)

// User returns the authenticated caller email from the request context
func User(r *http.Request) (string, error) {
	email := pnet.UserEmail(r.Context())
	if email == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return email, nil
}

// Admin reports whether the caller carries the administrator role
func Admin(r *http.Request) bool {
	return pnet.IsAdmin(r.Context())
}

// MustUser returns the authenticated caller email or panics
func MustUser(r *http.Request) string {
	email, err := User(r)
	if err != nil {
		panic(err)
	}
	return email
}

// JWT returns the raw bearer token from the Authorization header
func JWT(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	if strings.TrimSpace(authz) == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	// case-insensitive Bearer prefix (don't trim the whole header first)
	const prefix = "bearer "
	if len(authz) < len(prefix) || strings.ToLower(authz[:len(prefix)]) != prefix {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(authz[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}

// MustJWT returns the raw bearer token or panics
// only use on routes protected by the auth middleware
func MustJWT(r *http.Request) string {
	raw, err := JWT(r)
	if err != nil {
		panic(err)
	}
	return raw
}
