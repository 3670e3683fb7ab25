package service

import (
	"context"
	"testing"
	"time"

	perr "lockbox/internal/platform/errors"
	regdomain "lockbox/internal/services/registrars/domain"
)

type fakeAccessor struct {
	reg regdomain.Registrar
	err error

	gotClientID string
	gotEmail    string
	gotAdmin    bool
}

func (f *fakeAccessor) VerifyAccess(_ context.Context, clientID, callerEmail string, isAdmin bool) (regdomain.Registrar, error) {
	f.gotClientID, f.gotEmail, f.gotAdmin = clientID, callerEmail, isAdmin
	return f.reg, f.err
}

func queryEnv(t *testing.T, acc *fakeAccessor) *env {
	t.Helper()
	e := newEnv(t)
	e.svc.deps.Registrars = acc
	return e
}

func allowedRegistrar() regdomain.Registrar {
	return regdomain.Registrar{
		ClientID:            "TheRegistrar",
		Email:               "registrar@example.test",
		RegistryLockAllowed: true,
		Contacts: []regdomain.Contact{
			{EmailAddress: "poc@example.test", Name: "Poc", RegistryLockAllowed: true},
			{EmailAddress: "other@example.test", Name: "Other", RegistryLockAllowed: false},
		},
	}
}

func TestLockStatusForContact_ListsHeldLocks(t *testing.T) {
	t.Parallel()
	acc := &fakeAccessor{reg: allowedRegistrar()}
	e := queryEnv(t, acc)
	ctx := context.Background()
	done := lockDomain(t, e)

	view, err := e.svc.LockStatusForContact(ctx, "TheRegistrar", "poc@example.test", false)
	if err != nil {
		t.Fatalf("LockStatusForContact: %v", err)
	}
	if acc.gotClientID != "TheRegistrar" || acc.gotEmail != "poc@example.test" || acc.gotAdmin {
		t.Fatalf("access check called with %q %q admin=%v", acc.gotClientID, acc.gotEmail, acc.gotAdmin)
	}
	if !view.LockEnabledForContact {
		t.Fatalf("contact with lock permission reported disabled")
	}
	if view.Email != "poc@example.test" || view.ClientID != "TheRegistrar" {
		t.Fatalf("view identity mis-shaped: %+v", view)
	}
	if len(view.Locks) != 1 {
		t.Fatalf("locks = %+v, want exactly one", view.Locks)
	}
	l := view.Locks[0]
	if l.DomainName != "example.tld" {
		t.Fatalf("DomainName = %q", l.DomainName)
	}
	if l.LockedBy != "poc@example.test" {
		t.Fatalf("LockedBy = %q", l.LockedBy)
	}
	if !l.UserCanUnlock {
		t.Fatalf("registrar lock must be unlockable by the registrar")
	}
	want := done.LockCompletionTime.UTC().Format(time.RFC3339)
	if l.LockedTime != want {
		t.Fatalf("LockedTime = %q, want %q", l.LockedTime, want)
	}
}

func TestLockStatusForContact_ContactWithoutPermission(t *testing.T) {
	t.Parallel()
	e := queryEnv(t, &fakeAccessor{reg: allowedRegistrar()})

	view, err := e.svc.LockStatusForContact(context.Background(), "TheRegistrar", "other@example.test", false)
	if err != nil {
		t.Fatalf("LockStatusForContact: %v", err)
	}
	if view.LockEnabledForContact {
		t.Fatalf("contact without lock permission reported enabled")
	}
}

func TestLockStatusForContact_RegistrarNotAllowed(t *testing.T) {
	t.Parallel()
	reg := allowedRegistrar()
	reg.RegistryLockAllowed = false
	e := queryEnv(t, &fakeAccessor{reg: reg})

	_, err := e.svc.LockStatusForContact(context.Background(), "TheRegistrar", "poc@example.test", false)
	// opt-out must not read as an access failure, the console keeps 403
	// for callers who cannot see the registrar at all
	wantCode(t, err, perr.ErrorCodeInvalidArgument)
	if perr.IsCode(err, perr.ErrorCodeForbidden) {
		t.Fatalf("opt-out surfaced as forbidden: %v", err)
	}
}

func TestLockStatusForContact_AdminBypassesRegistrarOptOut(t *testing.T) {
	t.Parallel()
	reg := allowedRegistrar()
	reg.RegistryLockAllowed = false
	e := queryEnv(t, &fakeAccessor{reg: reg})

	view, err := e.svc.LockStatusForContact(context.Background(), "TheRegistrar", "admin@example.test", true)
	if err != nil {
		t.Fatalf("admin LockStatusForContact: %v", err)
	}
	if !view.LockEnabledForContact {
		t.Fatalf("admin must always see lock enabled")
	}
}

func TestLockStatusForContact_AccessDenied_Propagates(t *testing.T) {
	t.Parallel()
	e := queryEnv(t, &fakeAccessor{err: perr.Forbiddenf("not a contact")})

	_, err := e.svc.LockStatusForContact(context.Background(), "TheRegistrar", "stranger@example.test", false)
	wantCode(t, err, perr.ErrorCodeForbidden)
}

func TestLockStatusForContact_AdminLockVisibility(t *testing.T) {
	t.Parallel()
	acc := &fakeAccessor{reg: allowedRegistrar()}
	e := queryEnv(t, acc)
	ctx := context.Background()

	req, err := e.svc.CreateLockRequest(ctx, "example.tld", "TheRegistrar", "", true)
	if err != nil {
		t.Fatalf("admin CreateLockRequest: %v", err)
	}
	if _, err := e.svc.VerifyAndApplyLock(ctx, req.VerificationCode, true); err != nil {
		t.Fatalf("admin verify: %v", err)
	}

	view, err := e.svc.LockStatusForContact(ctx, "TheRegistrar", "poc@example.test", false)
	if err != nil {
		t.Fatalf("LockStatusForContact: %v", err)
	}
	if len(view.Locks) != 1 {
		t.Fatalf("locks = %+v, want one", view.Locks)
	}
	l := view.Locks[0]
	if l.LockedBy != "admin" {
		t.Fatalf("LockedBy = %q, want admin", l.LockedBy)
	}
	if l.UserCanUnlock {
		t.Fatalf("admin lock must not be unlockable by the registrar user")
	}

	adminView, err := e.svc.LockStatusForContact(ctx, "TheRegistrar", "admin@example.test", true)
	if err != nil {
		t.Fatalf("admin LockStatusForContact: %v", err)
	}
	if len(adminView.Locks) != 1 || !adminView.Locks[0].UserCanUnlock {
		t.Fatalf("admin view = %+v, want unlockable lock", adminView.Locks)
	}
}

func TestLockStatusForContact_NoAccessorConfigured(t *testing.T) {
	t.Parallel()
	e := newEnv(t) // Registrars left nil

	_, err := e.svc.LockStatusForContact(context.Background(), "TheRegistrar", "poc@example.test", false)
	wantCode(t, err, perr.ErrorCodeUnknown)
}
