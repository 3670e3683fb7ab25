// Package repo provides Postgres bindings for domain.Repo
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lockbox/internal/core/dnsname"
	"lockbox/internal/modkit/repokit"
	perr "lockbox/internal/platform/errors"
	"lockbox/internal/services/domains/domain"

	"github.com/google/uuid"
)

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// Compile-time assertion: queries implements domain.Repo
var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

const domainCols = `repo_id, fqdn, tld, current_sponsor_id, statuses, creation_time, deletion_time`

// GetActiveByName resolves fqdn to its domain record as of asOf
func (r *queries) GetActiveByName(ctx context.Context, fqdn string, asOf time.Time) (domain.Domain, error) {
	const sqlq = `
		SELECT ` + domainCols + `
		  FROM domains
		 WHERE fqdn = $1
		   AND (deletion_time IS NULL OR deletion_time > $2)
	`
	d, err := scanDomain(r.q.QueryRow(ctx, sqlq, fqdn, asOf))
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Domain{}, perr.NotFoundf("unknown domain %s", fqdn)
		}
		return domain.Domain{}, perr.FromPostgresf(err, "get domain %s", fqdn)
	}
	return d, nil
}

// GetByRepoID resolves a domain by its stable repository id
func (r *queries) GetByRepoID(ctx context.Context, repoID string) (domain.Domain, error) {
	const sqlq = `SELECT ` + domainCols + ` FROM domains WHERE repo_id = $1`
	d, err := scanDomain(r.q.QueryRow(ctx, sqlq, repoID))
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Domain{}, perr.NotFoundf("unknown domain repo id %s", repoID)
		}
		return domain.Domain{}, perr.FromPostgresf(err, "get domain by repo id %s", repoID)
	}
	return d, nil
}

// Save persists the mutable fields of an existing domain
func (r *queries) Save(ctx context.Context, d domain.Domain) error {
	const sqlq = `
		UPDATE domains
		   SET statuses = $2, current_sponsor_id = $3, deletion_time = $4
		 WHERE repo_id = $1
	`
	tag, err := r.q.Exec(ctx, sqlq, d.RepoID, d.Statuses, d.CurrentSponsorID, d.DeletionTime)
	if err != nil {
		return perr.FromPostgresf(err, "save domain %s", d.RepoID)
	}
	if tag.RowsAffected() != 1 {
		return perr.NotFoundf("unknown domain repo id %s", d.RepoID)
	}
	return nil
}

// Create inserts a new domain record, assigning its repo id
// repo ids look like 7A1F42C9-TLD and are stable across renames
func (r *queries) Create(ctx context.Context, d domain.Domain) (domain.Domain, error) {
	if d.TLD == "" {
		d.TLD = dnsname.TLD(d.FQDN)
	}
	if d.RepoID == "" {
		token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
		d.RepoID = fmt.Sprintf("%s-%s", token, strings.ToUpper(d.TLD))
	}
	const sqlq = `
		INSERT INTO domains (repo_id, fqdn, tld, current_sponsor_id, statuses, deletion_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING creation_time
	`
	err := r.q.QueryRow(ctx, sqlq,
		d.RepoID, d.FQDN, d.TLD, d.CurrentSponsorID, d.Statuses, d.DeletionTime,
	).Scan(&d.CreationTime)
	if err != nil {
		return domain.Domain{}, perr.FromPostgresf(err, "create domain %s", d.FQDN)
	}
	return d, nil
}

func scanDomain(row repokit.Row) (domain.Domain, error) {
	var d domain.Domain
	err := row.Scan(
		&d.RepoID, &d.FQDN, &d.TLD, &d.CurrentSponsorID,
		&d.Statuses, &d.CreationTime, &d.DeletionTime,
	)
	if err != nil {
		return domain.Domain{}, err
	}
	return d, nil
}
