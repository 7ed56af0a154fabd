package models

import (
	"time"

	"backoffice/core/storage"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Product statuses use the store's internal (uppercase) vocabulary.
// Request-facing spellings are mapped in the search filter layer.
const (
	ProductStatusActive   = "ACTIVE"
	ProductStatusInactive = "INACTIVE"
	ProductStatusDraft    = "DRAFT"
)

// Product represents a catalog product entity
type Product struct {
	Id            uint                `json:"id" gorm:"primarykey"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	DeletedAt     gorm.DeletedAt      `json:"deleted_at" gorm:"index"`
	TenantId      uint                `json:"tenant_id" gorm:"index"`
	Name          string              `json:"name"`
	NameAr        string              `json:"name_ar"`
	Slug          string              `json:"slug" gorm:"index"`
	Description   string              `json:"description"`
	DescriptionAr string              `json:"description_ar"`
	Sku           string              `json:"sku" gorm:"index"`
	ProductCode   string              `json:"product_code" gorm:"index"`
	Price         float64             `json:"price"`
	Currency      string              `json:"currency"`
	Quantity      int                 `json:"quantity"`
	Status        string              `json:"status" gorm:"index"`
	CategoryId    uint                `json:"category_id" gorm:"index"`
	Category      *Category           `json:"category,omitempty" gorm:"foreignKey:CategoryId"`
	Image         *storage.Attachment `json:"image,omitempty" gorm:"foreignKey:ModelId;references:Id"`
}

// TableName returns the table name for the Product model
func (m *Product) TableName() string {
	return "products"
}

// GetId returns the Id of the model
func (m *Product) GetId() uint {
	return m.Id
}

// GetModelName returns the model name
func (m *Product) GetModelName() string {
	return "product"
}

// BeforeSave keeps the slug in sync with the product name
func (m *Product) BeforeSave(tx *gorm.DB) error {
	if m.Slug == "" && m.Name != "" {
		m.Slug = slug.Make(m.Name)
	}
	return nil
}

// Preload preloads the model's relationships
func (m *Product) Preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").
		Preload("Image", "model_type = ? AND field = ?", "product", "image")
}

// Category represents a product category
type Category struct {
	Id        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	TenantId  uint           `json:"tenant_id" gorm:"index"`
	Name      string         `json:"name"`
	NameAr    string         `json:"name_ar"`
	Slug      string         `json:"slug" gorm:"index"`
}

// TableName returns the table name for the Category model
func (m *Category) TableName() string {
	return "categories"
}

// GetId returns the Id of the model
func (m *Category) GetId() uint {
	return m.Id
}

// GetModelName returns the model name
func (m *Category) GetModelName() string {
	return "category"
}

// BeforeSave keeps the slug in sync with the category name
func (m *Category) BeforeSave(tx *gorm.DB) error {
	if m.Slug == "" && m.Name != "" {
		m.Slug = slug.Make(m.Name)
	}
	return nil
}

// CategoryModelResponse represents a simplified response when the category
// is embedded in other entities
type CategoryModelResponse struct {
	Id   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ToModelResponse converts the model to a simplified response
func (m *Category) ToModelResponse() *CategoryModelResponse {
	if m == nil {
		return nil
	}
	return &CategoryModelResponse{
		Id:   m.Id,
		Name: m.Name,
		Slug: m.Slug,
	}
}
