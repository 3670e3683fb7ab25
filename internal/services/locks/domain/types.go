// Package domain defines the core types and interfaces for the locks service
package domain

import (
	"time"
)

// LockStatuses are the protective EPP status flags a registry lock applies
// a domain carrying all three cannot be deleted, transferred, or updated
var LockStatuses = []string{
	"serverDeleteProhibited",
	"serverTransferProhibited",
	"serverUpdateProhibited",
}

// Lock is one immutable revision of the registry lock ledger
// a lock or unlock request creates a revision; verifying it appends another
// revision of the same logical action with the completion timestamp set.
// The current state of a logical lock is the row with the highest revision
type Lock struct {
	// RevisionID orders revisions; zero means not yet persisted
	RevisionID int64

	// RepoID is the stable id of the locked domain, immutable across renames
	RepoID string

	// DomainName is the FQDN at the time of the action
	DomainName string

	// RegistrarID is the owning registrar
	RegistrarID string

	// RegistrarPocID is the requesting contact; empty for admin actions
	RegistrarPocID string

	// VerificationCode confirms the pending action, delivered out of band
	VerificationCode string

	// IsSuperuser marks an administrator action, exempt from ownership
	// checks and excluded from billing
	IsSuperuser bool

	LockRequestTime      *time.Time
	LockCompletionTime   *time.Time
	UnlockRequestTime    *time.Time
	UnlockCompletionTime *time.Time
}

// IsLocked reports whether this revision represents a currently locked domain
func (l Lock) IsLocked() bool {
	return l.LockCompletionTime != nil && l.UnlockCompletionTime == nil
}

// IsLockRequestExpired reports whether the pending lock request has aged out
// a completed lock never expires
func (l Lock) IsLockRequestExpired(now time.Time, ttl time.Duration) bool {
	return l.LockCompletionTime == nil &&
		l.LockRequestTime != nil &&
		now.Sub(*l.LockRequestTime) > ttl
}

// IsUnlockRequestExpired reports whether the pending unlock request has aged out
func (l Lock) IsUnlockRequestExpired(now time.Time, ttl time.Duration) bool {
	return l.UnlockCompletionTime == nil &&
		l.UnlockRequestTime != nil &&
		now.Sub(*l.UnlockRequestTime) > ttl
}

// HasPendingUnlock reports whether an unlock was requested but not completed
func (l Lock) HasPendingUnlock() bool {
	return l.UnlockRequestTime != nil && l.UnlockCompletionTime == nil
}

// LockedBy is the display label for who holds the lock
func (l Lock) LockedBy() string {
	if l.IsSuperuser {
		return "admin"
	}
	return l.RegistrarPocID
}
