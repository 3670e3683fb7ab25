// Package repo provides Postgres bindings for domain.Repo
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"

	"lockbox/internal/modkit/repokit"
	perr "lockbox/internal/platform/errors"
	"lockbox/internal/services/tlds/domain"

	"github.com/shopspring/decimal"
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

// Get loads the configuration for a TLD
func (r *queries) Get(ctx context.Context, tld string) (domain.TLD, error) {
	// cost comes back as text so decimal parsing stays exact
	const sqlq = `
		SELECT tld, currency, server_status_change_cost::text
		  FROM tlds
		 WHERE tld = $1
	`
	var out domain.TLD
	var cost string
	if err := r.q.QueryRow(ctx, sqlq, tld).Scan(&out.TLD, &out.Currency, &cost); err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.TLD{}, perr.NotFoundf("unknown tld %s", tld)
		}
		return domain.TLD{}, perr.FromPostgresf(err, "get tld %s", tld)
	}
	var err error
	if out.ServerStatusChangeCost, err = decimal.NewFromString(cost); err != nil {
		return domain.TLD{}, perr.Wrapf(err, perr.ErrorCodeDB, "bad cost for tld %s", tld)
	}
	return out, nil
}
