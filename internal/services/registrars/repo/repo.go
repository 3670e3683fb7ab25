// Package repo provides Postgres bindings for domain.Repo
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"

	"lockbox/internal/modkit/repokit"
	perr "lockbox/internal/platform/errors"
	"lockbox/internal/services/registrars/domain"
)

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

// GetByClientID loads a registrar and its contacts
func (r *queries) GetByClientID(ctx context.Context, clientID string) (domain.Registrar, error) {
	const regq = `
		SELECT client_id, email, registry_lock_allowed
		  FROM registrars
		 WHERE client_id = $1
	`
	var reg domain.Registrar
	if err := r.q.QueryRow(ctx, regq, clientID).Scan(
		&reg.ClientID, &reg.Email, &reg.RegistryLockAllowed,
	); err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Registrar{}, perr.NotFoundf("unknown registrar %s", clientID)
		}
		return domain.Registrar{}, perr.FromPostgresf(err, "get registrar %s", clientID)
	}

	const contactq = `
		SELECT email_address, name, registry_lock_allowed
		  FROM registrar_contacts
		 WHERE client_id = $1
		 ORDER BY email_address
	`
	rows, err := r.q.Query(ctx, contactq, clientID)
	if err != nil {
		return domain.Registrar{}, perr.FromPostgresf(err, "get contacts for %s", clientID)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.EmailAddress, &c.Name, &c.RegistryLockAllowed); err != nil {
			return domain.Registrar{}, perr.FromPostgres(err, "scan registrar contact")
		}
		reg.Contacts = append(reg.Contacts, c)
	}
	if err := rows.Err(); err != nil {
		return domain.Registrar{}, perr.FromPostgres(err, "iterate registrar contacts")
	}
	return reg, nil
}
