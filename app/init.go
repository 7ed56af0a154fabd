package app

import (
	"backoffice/app/search"
	"backoffice/core/module"
)

// AppModules implements module.AppModuleProvider
type AppModules struct{}

// NewAppModules creates the app module provider
func NewAppModules() *AppModules {
	return &AppModules{}
}

// GetAppModules returns the application modules to initialize. This is the
// only function that needs updating when adding a new module.
func (am *AppModules) GetAppModules(deps module.Dependencies) map[string]module.Module {
	modules := make(map[string]module.Module)

	modules["search"] = search.Init(deps)

	return modules
}
