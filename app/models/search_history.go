package models

import (
	"encoding/json"
	"time"
)

// SearchHistory records a search a user chose to save. Entries are
// immutable: they are created once and only ever deleted.
type SearchHistory struct {
	Id            uint            `json:"id" gorm:"primarykey"`
	CreatedAt     time.Time       `json:"created_at" gorm:"index"`
	TenantId      uint            `json:"tenant_id" gorm:"index"`
	UserId        uint            `json:"user_id" gorm:"index"`
	Query         *string         `json:"query"`
	Entities      json.RawMessage `json:"entities" gorm:"type:json"`
	Filters       json.RawMessage `json:"filters" gorm:"type:json"`
	ResultCount   int             `json:"result_count"`
	PrimaryEntity *string         `json:"primary_entity" gorm:"index"`
}

// TableName returns the table name for the SearchHistory model
func (m *SearchHistory) TableName() string {
	return "search_histories"
}

// GetId returns the Id of the model
func (m *SearchHistory) GetId() uint {
	return m.Id
}

// GetModelName returns the model name
func (m *SearchHistory) GetModelName() string {
	return "search_history"
}
