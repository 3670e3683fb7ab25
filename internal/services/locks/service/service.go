// Package service implements the registry lock workflow engine
//
// Every lock or unlock is a two step dance: a request revision is written to
// the ledger with a verification code, then the code comes back out of band
// and the verify step applies (or removes) the protective statuses on the
// domain itself. The ledger and the domain/audit/billing records live in
// separate transaction scopes; the apply step re-checks the domain's own
// flags so a retry after a crash between the two is safe
package service

import (
	"context"
	"time"

	"lockbox/internal/core/codegen"
	"lockbox/internal/core/dnsname"
	"lockbox/internal/modkit/repokit"
	"lockbox/internal/platform/clock"
	perr "lockbox/internal/platform/errors"

	billdomain "lockbox/internal/services/billing/domain"
	domdomain "lockbox/internal/services/domains/domain"
	histdomain "lockbox/internal/services/history/domain"
	"lockbox/internal/services/locks/domain"
	regdomain "lockbox/internal/services/registrars/domain"
	tlddomain "lockbox/internal/services/tlds/domain"
)

// historyReason is recorded on every audit entry the workflow writes
const historyReason = "Lock or unlock of a domain through a RegistryLock operation"

// Config holds the workflow engine's operational constants
type Config struct {
	// CodeLength is the length of issued verification codes
	CodeLength int

	// LockTTL and UnlockTTL bound how long a pending request stays valid;
	// expiry is evaluated lazily at verification time
	LockTTL   time.Duration
	UnlockTTL time.Duration
}

// Deps are the collaborators the engine needs
type Deps struct {
	DB         repokit.TxRunner
	Ledger     repokit.Binder[domain.Ledger]
	Domains    repokit.Binder[domdomain.Repo]
	History    repokit.Binder[histdomain.Writer]
	Billing    repokit.Binder[billdomain.Writer]
	TLDs       repokit.Binder[tlddomain.Repo]
	Registrars regdomain.AccessorPort
	Codes      codegen.Generator
	Clock      clock.Clock

	// Events is optional; completed actions are mirrored there best effort
	Events domain.EventSink
}

// Svc implements domain.WorkflowPort and domain.QueryPort
type Svc struct {
	deps Deps
	cfg  Config
}

var (
	_ domain.WorkflowPort = (*Svc)(nil)
	_ domain.QueryPort    = (*Svc)(nil)
)

// New constructs the locks service
func New(deps Deps, cfg Config) *Svc {
	if deps.DB == nil {
		panic("locks.Service requires a non-nil TxRunner")
	}
	if deps.Ledger == nil || deps.Domains == nil || deps.History == nil ||
		deps.Billing == nil || deps.TLDs == nil {
		panic("locks.Service requires all store binders")
	}
	if deps.Codes == nil {
		panic("locks.Service requires a code generator")
	}
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = 32
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = time.Hour
	}
	if cfg.UnlockTTL <= 0 {
		cfg.UnlockTTL = 24 * time.Hour
	}
	return &Svc{deps: deps, cfg: cfg}
}

// CreateLockRequest validates preconditions and writes a pending lock
// revision with a fresh verification code. The domain itself is untouched
// until the code is verified
func (s *Svc) CreateLockRequest(
	ctx context.Context, domainName, registrarID, pocID string, isAdmin bool,
) (domain.Lock, error) {
	name, err := dnsname.Canonical(domainName)
	if err != nil {
		return domain.Lock{}, err
	}
	now := s.deps.Clock.Now()

	var out domain.Lock
	err = s.deps.DB.Tx(ctx, func(q repokit.Queryer) error {
		d, err := s.deps.Domains.Bind(q).GetActiveByName(ctx, name, now)
		if err != nil {
			return err
		}
		if d.HasAllStatuses(domain.LockStatuses) {
			return perr.Conflictf("domain %s is already locked", name)
		}

		ledger := s.deps.Ledger.Bind(q)
		prev, ok, err := ledger.GetMostRecentByRepoID(ctx, d.RepoID)
		if err != nil {
			return err
		}
		// only one live action per domain: the previous row must be either
		// an expired request or a fully completed unlock
		if ok && !prev.IsLockRequestExpired(now, s.cfg.LockTTL) && prev.UnlockCompletionTime == nil {
			return perr.Conflictf("a pending or completed lock action already exists for %s", prev.DomainName)
		}

		code, err := s.deps.Codes.Generate(s.cfg.CodeLength)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "generate verification code")
		}
		out, err = ledger.Save(ctx, domain.Lock{
			RepoID:           d.RepoID,
			DomainName:       name,
			RegistrarID:      registrarID,
			RegistrarPocID:   pocID,
			VerificationCode: code,
			IsSuperuser:      isAdmin,
			LockRequestTime:  &now,
		})
		return err
	})
	return out, err
}

// CreateUnlockRequest validates preconditions and writes a pending unlock
// revision. Admins bypass every check so a domain can always be recovered
// from inconsistent state
func (s *Svc) CreateUnlockRequest(
	ctx context.Context, domainName, registrarID string, isAdmin bool,
) (domain.Lock, error) {
	name, err := dnsname.Canonical(domainName)
	if err != nil {
		return domain.Lock{}, err
	}
	now := s.deps.Clock.Now()

	var out domain.Lock
	err = s.deps.DB.Tx(ctx, func(q repokit.Queryer) error {
		d, err := s.deps.Domains.Bind(q).GetActiveByName(ctx, name, now)
		if err != nil {
			return err
		}
		ledger := s.deps.Ledger.Bind(q)
		prev, ok, err := ledger.GetMostRecentVerifiedLockByRepoID(ctx, d.RepoID)
		if err != nil {
			return err
		}

		var base domain.Lock
		if isAdmin {
			if ok {
				base = prev
			} else {
				// no ledger history; synthesize a completed-lock base row so
				// the unlock still leaves a coherent audit trail
				base = domain.Lock{
					RepoID:             d.RepoID,
					DomainName:         name,
					RegistrarID:        registrarID,
					LockCompletionTime: &now,
				}
			}
		} else {
			if !d.HasAnyStatus(domain.LockStatuses) {
				return perr.InvalidArgf("domain %s is not locked", name)
			}
			if !ok {
				return perr.NotFoundf("no lock on record for domain %s", name)
			}
			if !prev.IsLocked() {
				return perr.InvalidArgf("lock for domain %s is not currently held", name)
			}
			if prev.HasPendingUnlock() && !prev.IsUnlockRequestExpired(now, s.cfg.UnlockTTL) {
				return perr.Conflictf("a pending unlock action already exists for %s", name)
			}
			if prev.RegistrarID != registrarID {
				return perr.Forbiddenf("lock for domain %s is not owned by registrar %s", name, registrarID)
			}
			if prev.IsSuperuser {
				return perr.Forbiddenf("non-admin user cannot unlock admin-locked domain %s", name)
			}
			base = prev
		}

		code, err := s.deps.Codes.Generate(s.cfg.CodeLength)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "generate verification code")
		}
		next := base
		next.RevisionID = 0
		next.VerificationCode = code
		next.IsSuperuser = isAdmin
		next.RegistrarID = registrarID
		next.UnlockRequestTime = &now
		next.UnlockCompletionTime = nil
		out, err = ledger.Save(ctx, next)
		return err
	})
	return out, err
}

// VerifyAndApplyLock consumes a verification code, marks the ledger row
// completed, then applies the protective statuses to the domain together
// with its audit and billing records
func (s *Svc) VerifyAndApplyLock(ctx context.Context, code string, isAdmin bool) (domain.Lock, error) {
	now := s.deps.Clock.Now()

	var saved domain.Lock
	err := s.deps.DB.Tx(ctx, func(q repokit.Queryer) error {
		ledger := s.deps.Ledger.Bind(q)
		l, ok, err := ledger.GetByVerificationCode(ctx, code)
		if err != nil {
			return err
		}
		if !ok {
			return perr.InvalidArgf("invalid verification code")
		}
		if l.LockCompletionTime != nil {
			return perr.Conflictf("domain %s is already locked", l.DomainName)
		}
		if l.IsLockRequestExpired(now, s.cfg.LockTTL) {
			return perr.InvalidArgf("the pending lock has expired; please try again")
		}
		if l.IsSuperuser && !isAdmin {
			return perr.Forbiddenf("non-admin user cannot complete admin lock")
		}
		l.RevisionID = 0
		l.LockCompletionTime = &now
		saved, err = ledger.Save(ctx, l)
		return err
	})
	if err != nil {
		return domain.Lock{}, err
	}

	// separate transaction scope: the domain store is its own authority
	err = s.deps.DB.Tx(ctx, func(q repokit.Queryer) error {
		return s.applyLockStatuses(ctx, q, saved, now)
	})
	if err != nil {
		return domain.Lock{}, err
	}

	s.publish(ctx, "lock", saved, now)
	return saved, nil
}

// VerifyAndApplyUnlock is the mirror image of VerifyAndApplyLock
func (s *Svc) VerifyAndApplyUnlock(ctx context.Context, code string, isAdmin bool) (domain.Lock, error) {
	now := s.deps.Clock.Now()

	var saved domain.Lock
	err := s.deps.DB.Tx(ctx, func(q repokit.Queryer) error {
		ledger := s.deps.Ledger.Bind(q)
		l, ok, err := ledger.GetByVerificationCode(ctx, code)
		if err != nil {
			return err
		}
		if !ok {
			return perr.InvalidArgf("invalid verification code")
		}
		if l.UnlockCompletionTime != nil {
			return perr.Conflictf("domain %s is already unlocked", l.DomainName)
		}
		if l.IsUnlockRequestExpired(now, s.cfg.UnlockTTL) {
			return perr.InvalidArgf("the pending unlock has expired; please try again")
		}
		if l.IsSuperuser && !isAdmin {
			return perr.Forbiddenf("non-admin user cannot complete admin unlock")
		}
		l.RevisionID = 0
		l.UnlockCompletionTime = &now
		saved, err = ledger.Save(ctx, l)
		return err
	})
	if err != nil {
		return domain.Lock{}, err
	}

	err = s.deps.DB.Tx(ctx, func(q repokit.Queryer) error {
		return s.removeLockStatuses(ctx, q, saved, isAdmin, now)
	})
	if err != nil {
		return domain.Lock{}, err
	}

	s.publish(ctx, "unlock", saved, now)
	return saved, nil
}

// applyLockStatuses unions the protective flags onto the domain and writes
// the audit/billing side effects. The already-locked re-check defends
// against a concurrent apply between code lookup and here
func (s *Svc) applyLockStatuses(ctx context.Context, q repokit.Queryer, l domain.Lock, now time.Time) error {
	doms := s.deps.Domains.Bind(q)
	d, err := doms.GetActiveByName(ctx, l.DomainName, now)
	if err != nil {
		return err
	}
	if d.HasAllStatuses(domain.LockStatuses) {
		return perr.Conflictf("domain %s is already locked", d.FQDN)
	}
	d = d.WithStatuses(domain.LockStatuses)
	if err := doms.Save(ctx, d); err != nil {
		return err
	}
	return s.appendAuditAndBilling(ctx, q, d, l, now)
}

// removeLockStatuses differences the protective flags off the domain.
// Admin callers skip the must-be-locked check so inconsistent state stays
// recoverable; the difference operation itself is a no-op on missing flags
func (s *Svc) removeLockStatuses(ctx context.Context, q repokit.Queryer, l domain.Lock, isAdmin bool, now time.Time) error {
	doms := s.deps.Domains.Bind(q)
	d, err := doms.GetActiveByName(ctx, l.DomainName, now)
	if err != nil {
		return err
	}
	if !isAdmin && !d.HasAnyStatus(domain.LockStatuses) {
		return perr.Conflictf("domain %s is already unlocked", d.FQDN)
	}
	d = d.WithoutStatuses(domain.LockStatuses)
	if err := doms.Save(ctx, d); err != nil {
		return err
	}
	return s.appendAuditAndBilling(ctx, q, d, l, now)
}

func (s *Svc) appendAuditAndBilling(
	ctx context.Context, q repokit.Queryer, d domdomain.Domain, l domain.Lock, now time.Time,
) error {
	entry, err := s.deps.History.Bind(q).Append(ctx, histdomain.Entry{
		RepoID:               d.RepoID,
		ClientID:             d.CurrentSponsorID,
		Type:                 histdomain.TypeDomainUpdate,
		BySuperuser:          l.IsSuperuser,
		RequestedByRegistrar: !l.IsSuperuser,
		Reason:               historyReason,
		ModificationTime:     now,
	})
	if err != nil {
		return err
	}

	// admin actions never bill
	if l.IsSuperuser {
		return nil
	}
	t, err := s.deps.TLDs.Bind(q).Get(ctx, d.TLD)
	if err != nil {
		return err
	}
	_, err = s.deps.Billing.Bind(q).Append(ctx, billdomain.Event{
		Reason:      billdomain.ReasonServerStatus,
		TargetID:    d.FQDN,
		ClientID:    d.CurrentSponsorID,
		Cost:        t.ServerStatusChangeCost,
		Currency:    t.Currency,
		HistoryID:   entry.ID,
		EventTime:   now,
		BillingTime: now,
	})
	return err
}

func (s *Svc) publish(ctx context.Context, action string, l domain.Lock, now time.Time) {
	if s.deps.Events == nil {
		return
	}
	s.deps.Events.Publish(ctx, domain.Event{
		Action:      action,
		RepoID:      l.RepoID,
		DomainName:  l.DomainName,
		RegistrarID: l.RegistrarID,
		IsSuperuser: l.IsSuperuser,
		OccurredAt:  now,
	})
}
