// Package api provides the HTTP API for the application
package api

import (
	"lockbox/internal/platform/config"
	"lockbox/internal/platform/logger"
	phttp "lockbox/internal/platform/net/http"
	"lockbox/internal/platform/store"

	"lockbox/internal/modkit"
	"lockbox/internal/modkit/httpkit"
	"lockbox/internal/modkit/module"
	"lockbox/internal/modkit/swaggerkit"

	lockapi "lockbox/internal/services/api/locks/module"
	metamod "lockbox/internal/services/api/meta/module"

	// Worker locks module (owns the Workflow and Query ports)
	workerlocks "lockbox/internal/services/locks/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Construct the WORKER locks module first and extract its ports
	workerLocks := workerlocks.New(deps)
	ports := module.MustPortsOf[workerlocks.Ports](workerLocks)

	// Inject the workflow and query ports into the API locks module
	apiLocks := lockapi.New(
		deps,
		modkit.WithPorts(lockapi.Ports{
			Workflow: ports.Workflow,
			Query:    ports.Query,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		workerLocks, // include worker so its ports are registered
		apiLocks,    // API module that depends on the worker's ports
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
