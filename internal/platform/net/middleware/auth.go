package middleware

import (
	"net/http"

	pnet "lockbox/internal/platform/net"
)

// AuthPort is a tiny seam the identity provider implements
type AuthPort interface {
	// Parse returns the caller email and admin flag from the request or an error
	Parse(r *http.Request) (email string, admin bool, err error)
}

// Auth is a no-op until wired. It uses the port when provided
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			email, admin, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithIdentity(r.Context(), email, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
