package module

import (
	"fmt"
	"sync"

	"backoffice/core/config"
	"backoffice/core/email"
	"backoffice/core/emitter"
	"backoffice/core/logger"
	"backoffice/core/metrics"
	"backoffice/core/router"
	"backoffice/core/storage"

	"gorm.io/gorm"
)

// Dependencies carries shared infrastructure into module initializers
type Dependencies struct {
	DB          *gorm.DB
	Router      *router.RouterGroup
	Logger      logger.Logger
	Emitter     *emitter.Emitter
	Storage     *storage.ActiveStorage
	EmailSender email.Sender
	Metrics     *metrics.Metrics
	Config      *config.Config
}

// Module is the minimal contract every application module satisfies.
// Optional lifecycle hooks (Init, Migrate, Routes) are discovered by
// interface assertion during initialization.
type Module interface {
	Name() string
}

// DefaultModule provides a no-op Name; modules embed it and override as needed
type DefaultModule struct{}

func (DefaultModule) Name() string { return "unnamed" }

// AppModuleProvider supplies the application's modules to main
type AppModuleProvider interface {
	GetAppModules(deps Dependencies) map[string]Module
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]Module)
)

// RegisterModule records a module in the global registry. Duplicate names
// are an error so wiring mistakes surface at startup.
func RegisterModule(name string, mod Module) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		return fmt.Errorf("module %s is already registered", name)
	}
	registry[name] = mod
	return nil
}

// Initializer drives the module lifecycle: register, Init, Migrate, Routes
type Initializer struct {
	logger logger.Logger
}

// NewInitializer creates an initializer
func NewInitializer(log logger.Logger) *Initializer {
	return &Initializer{logger: log}
}

// Initialize runs the lifecycle for every module; failures are logged and
// skip the module rather than aborting startup.
func (in *Initializer) Initialize(modules map[string]Module, deps Dependencies) []Module {
	var initialized []Module

	for name, mod := range modules {
		if err := RegisterModule(name, mod); err != nil {
			in.logger.Error("failed to register module",
				logger.String("module", name),
				logger.String("error", err.Error()))
			continue
		}

		if initMod, ok := mod.(interface{ Init() error }); ok {
			if err := initMod.Init(); err != nil {
				in.logger.Error("failed to initialize module",
					logger.String("module", name),
					logger.String("error", err.Error()))
				continue
			}
		}

		if migrator, ok := mod.(interface{ Migrate() error }); ok {
			if err := migrator.Migrate(); err != nil {
				in.logger.Error("failed to migrate module",
					logger.String("module", name),
					logger.String("error", err.Error()))
				continue
			}
		}

		if routeMod, ok := mod.(interface{ Routes(*router.RouterGroup) }); ok {
			routeMod.Routes(deps.Router)
		}

		initialized = append(initialized, mod)
	}

	return initialized
}
