// Package module implements the registry locks service module
package module

import (
	"lockbox/internal/modkit"
	"lockbox/internal/modkit/httpkit"
	"lockbox/internal/platform/clock"

	"lockbox/internal/core/codegen"
	billrepo "lockbox/internal/services/billing/repo"
	domrepo "lockbox/internal/services/domains/repo"
	histrepo "lockbox/internal/services/history/repo"
	"lockbox/internal/services/locks/domain"
	"lockbox/internal/services/locks/repo"
	"lockbox/internal/services/locks/service"
	regrepo "lockbox/internal/services/registrars/repo"
	regservice "lockbox/internal/services/registrars/service"
	tldrepo "lockbox/internal/services/tlds/repo"
)

// Ports exposed by the locks module
type Ports struct {
	Workflow domain.WorkflowPort
	Query    domain.QueryPort
}

// Module implements the registry locks service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new locks module, wiring the workflow engine with its
// ledger, domain, audit and billing stores plus the optional analytics sink
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	registrars := regservice.New(deps.PG, regrepo.NewPG())
	svc := service.New(service.Deps{
		DB:         deps.PG,
		Ledger:     repo.NewPG(),
		Domains:    domrepo.NewPG(),
		History:    histrepo.NewPG(),
		Billing:    billrepo.NewPG(),
		TLDs:       tldrepo.NewPG(),
		Registrars: registrars,
		Codes:      codegen.Base58{},
		Clock:      clock.System{},
		Events:     repo.NewCH(deps.CH),
	}, service.Config{
		CodeLength: opts.CodeLength,
		LockTTL:    opts.LockTTL,
		UnlockTTL:  opts.UnlockTTL,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Workflow: svc,
		Query:    svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "locks" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
