package domain

import (
	"context"
	"time"
)

// Repo abstracts the operations the lock workflow needs from domain storage
type Repo interface {
	// GetActiveByName resolves a canonical FQDN to its domain record,
	// skipping domains already deleted as of asOf
	GetActiveByName(ctx context.Context, fqdn string, asOf time.Time) (Domain, error)

	// GetByRepoID resolves a domain by its stable repository id
	GetByRepoID(ctx context.Context, repoID string) (Domain, error)

	// Save persists the mutable fields of an existing domain (statuses, sponsor)
	Save(ctx context.Context, d Domain) error

	// Create inserts a new domain record and returns it with its assigned repo id
	Create(ctx context.Context, d Domain) (Domain, error)
}
