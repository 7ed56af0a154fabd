package search

import (
	"backoffice/app/models"
	"backoffice/core/module"
	"backoffice/core/router"
	"backoffice/core/storage"

	"gorm.io/gorm"
)

type Module struct {
	module.DefaultModule
	DB         *gorm.DB
	Service    *SearchService
	Controller *SearchController
}

// Init creates and initializes the Search module with all dependencies
func Init(deps module.Dependencies) module.Module {
	service := NewSearchService(deps.DB, deps.Emitter, deps.Storage, deps.Logger, deps.Metrics)
	controller := NewSearchController(service, deps.Logger)

	if deps.Storage != nil {
		deps.Storage.RegisterAttachment("product", storage.AttachmentConfig{
			Field:             "image",
			Path:              "products",
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp"},
			MaxFileSize:       5 << 20,
		})
	}

	return &Module{
		DB:         deps.DB,
		Service:    service,
		Controller: controller,
	}
}

func (m *Module) Name() string { return "search" }

// Migrate creates the tables the search module reads and owns
func (m *Module) Migrate() error {
	return m.DB.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Customer{},
		&models.SearchHistory{},
	)
}

// Routes registers the module routes
func (m *Module) Routes(router *router.RouterGroup) {
	m.Controller.Routes(router)
}
