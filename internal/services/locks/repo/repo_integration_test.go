//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"lockbox/internal/platform/store"
	"lockbox/internal/services/locks/domain"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

const ledgerDDL = `
	CREATE TABLE registry_locks (
		revision_id            BIGSERIAL PRIMARY KEY,
		repo_id                TEXT NOT NULL,
		domain_name            TEXT NOT NULL,
		registrar_id           TEXT NOT NULL,
		registrar_poc_id       TEXT NOT NULL DEFAULT '',
		verification_code      TEXT NOT NULL,
		is_superuser           BOOLEAN NOT NULL DEFAULT FALSE,
		lock_request_time      TIMESTAMPTZ,
		lock_completion_time   TIMESTAMPTZ,
		unlock_request_time    TIMESTAMPTZ,
		unlock_completion_time TIMESTAMPTZ
	)
`

func TestLedger_Integration_AppendOnlyRoundTrip(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	s, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	if _, err := s.PG.Exec(ctx, ledgerDDL); err != nil {
		t.Fatalf("create table: %v", err)
	}

	ledger := NewPG().Bind(s.PG)
	now := time.Now().UTC().Truncate(time.Microsecond)

	// pending lock request
	req, err := ledger.Save(ctx, domain.Lock{
		RepoID:           "7A1F42C9-TLD",
		DomainName:       "example.tld",
		RegistrarID:      "TheRegistrar",
		RegistrarPocID:   "poc@example.test",
		VerificationCode: "CODE-1",
		LockRequestTime:  &now,
	})
	if err != nil {
		t.Fatalf("save request: %v", err)
	}
	if req.RevisionID == 0 {
		t.Fatalf("revision id not assigned")
	}

	got, ok, err := ledger.GetByVerificationCode(ctx, "CODE-1")
	if err != nil || !ok {
		t.Fatalf("get by code: ok=%v err=%v", ok, err)
	}
	if got.RevisionID != req.RevisionID || got.DomainName != "example.tld" {
		t.Fatalf("got %+v, want revision %d", got, req.RevisionID)
	}
	if got.LockRequestTime == nil || !got.LockRequestTime.Equal(now) {
		t.Fatalf("LockRequestTime = %v, want %v", got.LockRequestTime, now)
	}

	// completing appends, never updates
	done := req
	done.LockCompletionTime = &now
	saved, err := ledger.Save(ctx, done)
	if err != nil {
		t.Fatalf("save completion: %v", err)
	}
	if saved.RevisionID <= req.RevisionID {
		t.Fatalf("completion revision %d not after %d", saved.RevisionID, req.RevisionID)
	}

	cur, ok, err := ledger.GetByVerificationCode(ctx, "CODE-1")
	if err != nil || !ok {
		t.Fatalf("get current by code: ok=%v err=%v", ok, err)
	}
	if cur.RevisionID != saved.RevisionID || cur.LockCompletionTime == nil {
		t.Fatalf("current revision = %+v, want completed %d", cur, saved.RevisionID)
	}

	verified, ok, err := ledger.GetMostRecentVerifiedLockByRepoID(ctx, "7A1F42C9-TLD")
	if err != nil || !ok || verified.RevisionID != saved.RevisionID {
		t.Fatalf("verified lock = %+v ok=%v err=%v", verified, ok, err)
	}

	if _, ok, _ := ledger.GetByVerificationCode(ctx, "NOPE"); ok {
		t.Fatalf("unknown code reported found")
	}
}

func TestLedger_Integration_LockedDomainsProjection(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	s, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	if _, err := s.PG.Exec(ctx, ledgerDDL); err != nil {
		t.Fatalf("create table: %v", err)
	}

	ledger := NewPG().Bind(s.PG)
	now := time.Now().UTC().Truncate(time.Microsecond)

	save := func(l domain.Lock) domain.Lock {
		t.Helper()
		out, err := ledger.Save(ctx, l)
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		return out
	}

	// held lock: request then completion
	save(domain.Lock{RepoID: "R1-TLD", DomainName: "held.tld", RegistrarID: "TheRegistrar",
		VerificationCode: "C1", LockRequestTime: &now})
	save(domain.Lock{RepoID: "R1-TLD", DomainName: "held.tld", RegistrarID: "TheRegistrar",
		VerificationCode: "C1", LockRequestTime: &now, LockCompletionTime: &now})

	// fully unlocked: the newest revision carries both completion times
	save(domain.Lock{RepoID: "R2-TLD", DomainName: "released.tld", RegistrarID: "TheRegistrar",
		VerificationCode: "C2", LockRequestTime: &now, LockCompletionTime: &now})
	save(domain.Lock{RepoID: "R2-TLD", DomainName: "released.tld", RegistrarID: "TheRegistrar",
		VerificationCode: "C3", LockRequestTime: &now, LockCompletionTime: &now,
		UnlockRequestTime: &now, UnlockCompletionTime: &now})

	// someone else's lock
	save(domain.Lock{RepoID: "R3-TLD", DomainName: "other.tld", RegistrarID: "OtherRegistrar",
		VerificationCode: "C4", LockRequestTime: &now, LockCompletionTime: &now})

	locks, err := ledger.GetLockedDomainsByRegistrarID(ctx, "TheRegistrar")
	if err != nil {
		t.Fatalf("list locked: %v", err)
	}
	if len(locks) != 1 || locks[0].DomainName != "held.tld" {
		t.Fatalf("locked domains = %+v, want only held.tld", locks)
	}
}
