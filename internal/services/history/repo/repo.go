// Package repo provides Postgres bindings for domain.Writer
package repo

import (
	"context"

	"lockbox/internal/modkit/repokit"
	perr "lockbox/internal/platform/errors"
	"lockbox/internal/services/history/domain"

	"github.com/google/uuid"
)

type (
	// PG is a Postgres binder for domain.Writer
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

var _ domain.Writer = (*queries)(nil)

// NewPG returns a Postgres binder for Writer
func NewPG() repokit.Binder[domain.Writer] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Writer { return &queries{q: q} }

// Append inserts one audit record
func (r *queries) Append(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	const sqlq = `
		INSERT INTO domain_history
			(id, repo_id, client_id, type, by_superuser, requested_by_registrar, reason, modification_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.q.Exec(ctx, sqlq,
		e.ID, e.RepoID, e.ClientID, string(e.Type),
		e.BySuperuser, e.RequestedByRegistrar, e.Reason, e.ModificationTime,
	)
	if err != nil {
		return domain.Entry{}, perr.FromPostgresf(err, "append history for %s", e.RepoID)
	}
	return e, nil
}
