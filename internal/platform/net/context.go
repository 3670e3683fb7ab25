// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyUserEmail ctxKey = "user_email"
	keyAdmin     ctxKey = "is_admin"
)

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithIdentity annotates context with the authenticated caller
func WithIdentity(ctx context.Context, email string, admin bool) context.Context {
	if email != "" {
		ctx = context.WithValue(ctx, keyUserEmail, email)
	}
	if admin {
		ctx = context.WithValue(ctx, keyAdmin, true)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// UserEmail returns the authenticated caller email if present
func UserEmail(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserEmail).(string); ok {
		return v
	}
	return ""
}

// IsAdmin reports whether the caller carries the administrator role
func IsAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(keyAdmin).(bool)
	return v
}
