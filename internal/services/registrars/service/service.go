// Package service provides the registrars service implementation
package service

import (
	"context"

	"lockbox/internal/modkit/repokit"
	perr "lockbox/internal/platform/errors"
	"lockbox/internal/services/registrars/domain"
)

// Svc implements domain.Repo and domain.AccessorPort over a bound store
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
}

var (
	_ domain.Repo         = (*Svc)(nil)
	_ domain.AccessorPort = (*Svc)(nil)
)

// New constructs the registrars service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo]) *Svc {
	if db == nil {
		panic("registrars.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("registrars.Service requires a non-nil Repo binder")
	}
	return &Svc{db: db, binder: binder}
}

// GetByClientID loads a registrar and its contacts
func (s *Svc) GetByClientID(ctx context.Context, clientID string) (domain.Registrar, error) {
	return s.binder.Bind(s.db).GetByClientID(ctx, clientID)
}

// VerifyAccess loads the registrar and checks the caller may see its records
// admins always have access; everyone else must be a registered contact
func (s *Svc) VerifyAccess(
	ctx context.Context, clientID, callerEmail string, isAdmin bool,
) (domain.Registrar, error) {
	reg, err := s.GetByClientID(ctx, clientID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			// don't leak which registrar ids exist
			return domain.Registrar{}, perr.Forbiddenf("no access to registrar %s", clientID)
		}
		return domain.Registrar{}, err
	}
	if isAdmin {
		return reg, nil
	}
	if _, ok := reg.ContactByEmail(callerEmail); !ok {
		return domain.Registrar{}, perr.Forbiddenf("no access to registrar %s", clientID)
	}
	return reg, nil
}
