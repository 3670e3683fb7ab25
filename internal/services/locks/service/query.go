package service

import (
	"context"
	"time"

	"lockbox/internal/modkit/repokit"
	perr "lockbox/internal/platform/errors"

	"lockbox/internal/services/locks/domain"
)

// LockStatusForContact builds the console projection for one registrar:
// whether the caller may use registry lock at all, and the list of domains
// currently locked under the registrar's account
func (s *Svc) LockStatusForContact(
	ctx context.Context, clientID, callerEmail string, isAdmin bool,
) (domain.StatusView, error) {
	if s.deps.Registrars == nil {
		return domain.StatusView{}, perr.Internalf("registrar accessor not configured")
	}
	reg, err := s.deps.Registrars.VerifyAccess(ctx, clientID, callerEmail, isAdmin)
	if err != nil {
		return domain.StatusView{}, err
	}
	// a registrar that never opted in is a precondition failure, not an
	// access problem; only access failures surface as forbidden
	if !reg.RegistryLockAllowed && !isAdmin {
		return domain.StatusView{}, perr.InvalidArgf("registry lock not allowed for registrar %s", clientID)
	}

	lockEnabled := isAdmin
	if !lockEnabled {
		if c, ok := reg.ContactByEmail(callerEmail); ok {
			lockEnabled = c.RegistryLockAllowed
		}
	}

	var locks []domain.Lock
	err = s.deps.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		locks, err = s.deps.Ledger.Bind(q).GetLockedDomainsByRegistrarID(ctx, clientID)
		return err
	})
	if err != nil {
		return domain.StatusView{}, err
	}

	views := make([]domain.LockView, 0, len(locks))
	for _, l := range locks {
		lockedTime := ""
		if l.LockCompletionTime != nil {
			lockedTime = l.LockCompletionTime.UTC().Format(time.RFC3339)
		}
		views = append(views, domain.LockView{
			DomainName: l.DomainName,
			LockedTime: lockedTime,
			LockedBy:   l.LockedBy(),
			// admin locks can only be undone by admins
			UserCanUnlock: isAdmin || !l.IsSuperuser,
		})
	}

	return domain.StatusView{
		LockEnabledForContact: lockEnabled,
		Email:                 callerEmail,
		ClientID:              clientID,
		Locks:                 views,
	}, nil
}
