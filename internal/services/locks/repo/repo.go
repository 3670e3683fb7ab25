// Package repo provides Postgres bindings for the registry lock ledger
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"

	"lockbox/internal/modkit/repokit"
	perr "lockbox/internal/platform/errors"
	"lockbox/internal/services/locks/domain"
)

type (
	// PG is a Postgres binder for domain.Ledger
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// Compile-time assertion: queries implements domain.Ledger
var _ domain.Ledger = (*queries)(nil)

// NewPG returns a Postgres binder for Ledger
func NewPG() repokit.Binder[domain.Ledger] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Ledger { return &queries{q: q} }

const lockCols = `revision_id, repo_id, domain_name, registrar_id, registrar_poc_id,
	verification_code, is_superuser,
	lock_request_time, lock_completion_time, unlock_request_time, unlock_completion_time`

// GetByVerificationCode returns the most recent revision carrying the code.
// The same code appears once when the request is created and again when it is
// verified, so the max revision is the one that matters
func (r *queries) GetByVerificationCode(ctx context.Context, code string) (domain.Lock, bool, error) {
	const sqlq = `
		SELECT ` + lockCols + `
		  FROM registry_locks
		 WHERE verification_code = $1
		 ORDER BY revision_id DESC
		 LIMIT 1
	`
	return r.one(ctx, sqlq, code)
}

// GetMostRecentByRepoID returns the current row for a domain in any state
func (r *queries) GetMostRecentByRepoID(ctx context.Context, repoID string) (domain.Lock, bool, error) {
	const sqlq = `
		SELECT ` + lockCols + `
		  FROM registry_locks
		 WHERE repo_id = $1
		 ORDER BY revision_id DESC
		 LIMIT 1
	`
	return r.one(ctx, sqlq, repoID)
}

// GetMostRecentVerifiedLockByRepoID returns the current completed-lock row
func (r *queries) GetMostRecentVerifiedLockByRepoID(ctx context.Context, repoID string) (domain.Lock, bool, error) {
	const sqlq = `
		SELECT ` + lockCols + `
		  FROM registry_locks
		 WHERE repo_id = $1
		   AND lock_completion_time IS NOT NULL
		 ORDER BY revision_id DESC
		 LIMIT 1
	`
	return r.one(ctx, sqlq, repoID)
}

// GetLockedDomainsByRegistrarID lists domains the registrar currently holds
// locked. Only the highest revision per domain counts, so a domain whose
// unlock has completed (a newer revision with both timestamps set) drops out
func (r *queries) GetLockedDomainsByRegistrarID(ctx context.Context, registrarID string) ([]domain.Lock, error) {
	const sqlq = `
		SELECT ` + lockCols + ` FROM (
			SELECT DISTINCT ON (repo_id) ` + lockCols + `
			  FROM registry_locks
			 WHERE registrar_id = $1
			 ORDER BY repo_id, revision_id DESC
		) cur
		 WHERE cur.lock_completion_time IS NOT NULL
		   AND cur.unlock_completion_time IS NULL
	`
	rows, err := r.q.Query(ctx, sqlq, registrarID)
	if err != nil {
		return nil, perr.FromPostgresf(err, "list locked domains for %s", registrarID)
	}
	defer rows.Close()

	var out []domain.Lock
	for rows.Next() {
		l, err := scanLock(rows)
		if err != nil {
			return nil, perr.FromPostgres(err, "scan registry lock")
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgres(err, "iterate registry locks")
	}
	return out, nil
}

// Save appends l as a fresh revision; rows are never updated in place
func (r *queries) Save(ctx context.Context, l domain.Lock) (domain.Lock, error) {
	const sqlq = `
		INSERT INTO registry_locks
			(repo_id, domain_name, registrar_id, registrar_poc_id,
			 verification_code, is_superuser,
			 lock_request_time, lock_completion_time, unlock_request_time, unlock_completion_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING revision_id
	`
	err := r.q.QueryRow(ctx, sqlq,
		l.RepoID, l.DomainName, l.RegistrarID, l.RegistrarPocID,
		l.VerificationCode, l.IsSuperuser,
		l.LockRequestTime, l.LockCompletionTime, l.UnlockRequestTime, l.UnlockCompletionTime,
	).Scan(&l.RevisionID)
	if err != nil {
		return domain.Lock{}, perr.FromPostgresf(err, "save registry lock for %s", l.DomainName)
	}
	return l, nil
}

type scanner interface{ Scan(dest ...any) error }

func (r *queries) one(ctx context.Context, sqlq string, arg any) (domain.Lock, bool, error) {
	l, err := scanLock(r.q.QueryRow(ctx, sqlq, arg))
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Lock{}, false, nil
		}
		return domain.Lock{}, false, perr.FromPostgres(err, "get registry lock")
	}
	return l, true, nil
}

func scanLock(row scanner) (domain.Lock, error) {
	var l domain.Lock
	err := row.Scan(
		&l.RevisionID, &l.RepoID, &l.DomainName, &l.RegistrarID, &l.RegistrarPocID,
		&l.VerificationCode, &l.IsSuperuser,
		&l.LockRequestTime, &l.LockCompletionTime, &l.UnlockRequestTime, &l.UnlockCompletionTime,
	)
	return l, err
}
