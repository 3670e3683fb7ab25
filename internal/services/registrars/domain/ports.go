package domain

import "context"

// Repo abstracts registrar storage
type Repo interface {
	// GetByClientID loads a registrar and its contacts
	GetByClientID(ctx context.Context, clientID string) (Registrar, error)
}

// AccessorPort answers whether a caller may see a registrar's records
// the authentication itself happens upstream; this only checks membership
type AccessorPort interface {
	// VerifyAccess returns the registrar when callerEmail is one of its
	// contacts or isAdmin is set, and a forbidden error otherwise
	VerifyAccess(ctx context.Context, clientID, callerEmail string, isAdmin bool) (Registrar, error)
}
