package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses use the store's internal (uppercase) vocabulary
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
	OrderStatusRefunded   = "REFUNDED"
)

// Order represents a placed order. Customer contact fields are denormalized
// onto the order at checkout time so the order remains searchable even when
// the customer record changes later.
type Order struct {
	Id            uint           `json:"id" gorm:"primarykey"`
	CreatedAt     time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	TenantId      uint           `json:"tenant_id" gorm:"index"`
	OrderNumber   string         `json:"order_number" gorm:"index"`
	CustomerId    uint           `json:"customer_id" gorm:"index"`
	CustomerName  string         `json:"customer_name"`
	CustomerEmail string         `json:"customer_email" gorm:"index"`
	CustomerPhone string         `json:"customer_phone"`
	Status        string         `json:"status" gorm:"index"`
	TotalAmount   float64        `json:"total_amount"`
	Currency      string         `json:"currency"`
	Items         []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderId"`
}

// TableName returns the table name for the Order model
func (m *Order) TableName() string {
	return "orders"
}

// GetId returns the Id of the model
func (m *Order) GetId() uint {
	return m.Id
}

// GetModelName returns the model name
func (m *Order) GetModelName() string {
	return "order"
}

// Preload preloads the model's relationships
func (m *Order) Preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Items")
}

// OrderItem is a single line item on an order
type OrderItem struct {
	Id          uint    `json:"id" gorm:"primarykey"`
	OrderId     uint    `json:"order_id" gorm:"index"`
	ProductId   uint    `json:"product_id" gorm:"index"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// TableName returns the table name for the OrderItem model
func (m *OrderItem) TableName() string {
	return "order_items"
}
