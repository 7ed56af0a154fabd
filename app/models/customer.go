package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a storefront customer
type Customer struct {
	Id        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	TenantId  uint           `json:"tenant_id" gorm:"index"`
	Name      string         `json:"name"`
	Email     string         `json:"email" gorm:"index"`
	Phone     string         `json:"phone"`
}

// TableName returns the table name for the Customer model
func (m *Customer) TableName() string {
	return "customers"
}

// GetId returns the Id of the model
func (m *Customer) GetId() uint {
	return m.Id
}

// GetModelName returns the model name
func (m *Customer) GetModelName() string {
	return "customer"
}
