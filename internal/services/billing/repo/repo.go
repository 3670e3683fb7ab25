// Package repo provides Postgres bindings for domain.Writer
package repo

import (
	"context"

	"lockbox/internal/modkit/repokit"
	perr "lockbox/internal/platform/errors"
	"lockbox/internal/services/billing/domain"

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

// Append inserts one one-time billing event
func (r *queries) Append(ctx context.Context, e domain.Event) (domain.Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	const sqlq = `
		INSERT INTO billing_events
			(id, reason, target_id, client_id, cost, currency, history_id, event_time, billing_time)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9)
	`
	_, err := r.q.Exec(ctx, sqlq,
		e.ID, string(e.Reason), e.TargetID, e.ClientID,
		e.Cost.String(), e.Currency, e.HistoryID, e.EventTime, e.BillingTime,
	)
	if err != nil {
		return domain.Event{}, perr.FromPostgresf(err, "append billing event for %s", e.TargetID)
	}
	return e, nil
}
