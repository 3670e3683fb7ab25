// Package domain defines the core types and interfaces for the history service
package domain

import (
	"context"
	"time"
)

// EntryType classifies a history entry
type EntryType string

// TypeDomainUpdate records a server-side update of a domain's statuses
const TypeDomainUpdate EntryType = "DOMAIN_UPDATE"

// Entry is one append-only audit record against a domain
type Entry struct {
	ID                   string
	RepoID               string
	ClientID             string
	Type                 EntryType
	BySuperuser          bool
	RequestedByRegistrar bool
	Reason               string
	ModificationTime     time.Time
}

// Writer appends audit records; entries are never updated or deleted
type Writer interface {
	Append(ctx context.Context, e Entry) (Entry, error)
}
