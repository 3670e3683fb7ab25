package domain

import (
	"context"
	"time"
)

// Ledger abstracts the append-only registry lock ledger
// every method that resolves a lock returns its highest-revision row
type Ledger interface {
	// GetByVerificationCode returns the most recent revision carrying the
	// code, or ok=false when the code is unknown
	GetByVerificationCode(ctx context.Context, code string) (Lock, bool, error)

	// GetMostRecentByRepoID returns the current row for a domain in any state
	GetMostRecentByRepoID(ctx context.Context, repoID string) (Lock, bool, error)

	// GetMostRecentVerifiedLockByRepoID returns the current row that has a
	// completed lock, irrespective of unlock state
	GetMostRecentVerifiedLockByRepoID(ctx context.Context, repoID string) (Lock, bool, error)

	// GetLockedDomainsByRegistrarID lists domains the registrar currently
	// holds locked (lock completed, unlock not completed)
	GetLockedDomainsByRegistrarID(ctx context.Context, registrarID string) ([]Lock, error)

	// Save appends l as a fresh revision and returns it with the assigned id
	Save(ctx context.Context, l Lock) (Lock, error)
}

// WorkflowPort is the lock/unlock request-and-verify state machine
type WorkflowPort interface {
	CreateLockRequest(ctx context.Context, domainName, registrarID, pocID string, isAdmin bool) (Lock, error)
	CreateUnlockRequest(ctx context.Context, domainName, registrarID string, isAdmin bool) (Lock, error)
	VerifyAndApplyLock(ctx context.Context, code string, isAdmin bool) (Lock, error)
	VerifyAndApplyUnlock(ctx context.Context, code string, isAdmin bool) (Lock, error)
}

// QueryPort is the read-only console projection
type QueryPort interface {
	LockStatusForContact(ctx context.Context, clientID, callerEmail string, isAdmin bool) (StatusView, error)
}

// StatusView is what the console renders for one registrar
type StatusView struct {
	LockEnabledForContact bool
	Email                 string
	ClientID              string
	Locks                 []LockView
}

// LockView is one currently locked domain in the console list
type LockView struct {
	DomainName    string
	LockedTime    string // ISO-8601, empty when the completion time is missing
	LockedBy      string
	UserCanUnlock bool
}

// Event mirrors a completed workflow step into the analytics feed
type Event struct {
	Action      string // "lock" or "unlock"
	RepoID      string
	DomainName  string
	RegistrarID string
	IsSuperuser bool
	OccurredAt  time.Time
}

// EventSink receives completed lock events, best effort
// sinks must never fail the workflow; errors are logged and dropped
type EventSink interface {
	Publish(ctx context.Context, e Event)
}
