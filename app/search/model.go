package search

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"backoffice/core/types"

	"backoffice/app/models"
)

// EntityKind identifies a searchable domain category
type EntityKind string

const (
	EntityProduct  EntityKind = "product"
	EntityOrder    EntityKind = "order"
	EntityCustomer EntityKind = "customer"

	// EntityTask is reserved: requests may name it, and it always resolves
	// to an empty result set rather than an error.
	EntityTask EntityKind = "task"
)

// Valid reports whether the kind is part of the closed enumeration
func (k EntityKind) Valid() bool {
	switch k {
	case EntityProduct, EntityOrder, EntityCustomer, EntityTask:
		return true
	}
	return false
}

// DefaultEntities are searched when a request names none
func DefaultEntities() []EntityKind {
	return []EntityKind{EntityProduct, EntityOrder, EntityCustomer}
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// SearchRequest is the typed request for a cross-entity search. Boundary
// code (controller) builds it once from the wire; the service never sees
// raw parameters.
type SearchRequest struct {
	Query      string        `json:"query"`
	Entities   []EntityKind  `json:"entities"`
	Filters    SearchFilters `json:"filters"`
	Pagination Pagination    `json:"pagination"`
	Sorting    Sorting       `json:"sorting"`
}

// Pagination is an offset page window
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Sorting selects a sort key and direction
type Sorting struct {
	SortBy    string `json:"sort_by"`    // relevance, date, price, name, status
	SortOrder string `json:"sort_order"` // asc, desc
}

// normalize applies the request invariants: default entities, page >= 1,
// limit clamped to [1, 100]. Unknown entity kinds are dropped.
func (r *SearchRequest) normalize() {
	r.Query = strings.TrimSpace(r.Query)

	var entities []EntityKind
	seen := make(map[EntityKind]bool)
	for _, kind := range r.Entities {
		if kind.Valid() && !seen[kind] {
			entities = append(entities, kind)
			seen[kind] = true
		}
	}
	if len(entities) == 0 {
		entities = DefaultEntities()
	}
	r.Entities = entities

	if r.Pagination.Page < 1 {
		r.Pagination.Page = 1
	}
	if r.Pagination.Limit < 1 {
		r.Pagination.Limit = defaultLimit
	}
	if r.Pagination.Limit > maxLimit {
		r.Pagination.Limit = maxLimit
	}
}

func (r *SearchRequest) skip() int {
	return (r.Pagination.Page - 1) * r.Pagination.Limit
}

// SearchFilters carries the per-entity filter structs. Each entity's
// filters are independent; there is no shared base shape.
type SearchFilters struct {
	Products  *ProductFilters  `json:"products,omitempty"`
	Orders    *OrderFilters    `json:"orders,omitempty"`
	Customers *CustomerFilters `json:"customers,omitempty"`
}

// ProductFilters narrows product search. Every field is optional; an unset
// field (or an empty set) contributes no constraint.
type ProductFilters struct {
	CategoryIds []uint   `json:"category_ids,omitempty"`
	Statuses    []string `json:"statuses,omitempty"`
	PriceMin    *float64 `json:"price_min,omitempty"`
	PriceMax    *float64 `json:"price_max,omitempty"`
}

// OrderFilters narrows order search
type OrderFilters struct {
	Statuses    []string        `json:"statuses,omitempty"`
	DateFrom    *types.DateTime `json:"date_from,omitempty"`
	DateTo      *types.DateTime `json:"date_to,omitempty"`
	AmountMin   *float64        `json:"amount_min,omitempty"`
	AmountMax   *float64        `json:"amount_max,omitempty"`
	CustomerIds []uint          `json:"customer_ids,omitempty"`
}

// CustomerFilters narrows customer search
type CustomerFilters struct {
	DateFrom *types.DateTime `json:"date_from,omitempty"`
	DateTo   *types.DateTime `json:"date_to,omitempty"`
}

// Money is the display form of a stored numeric amount
type Money struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

// NewMoney builds a display amount. SAR is the platform default currency.
func NewMoney(amount float64, currency string) Money {
	if currency == "" {
		currency = "SAR"
	}
	return Money{
		Amount:    amount,
		Currency:  currency,
		Formatted: fmt.Sprintf("%.2f %s", amount, currency),
	}
}

// ProductHit is a product search result item
type ProductHit struct {
	Id             uint                          `json:"id"`
	Name           string                        `json:"name"`
	NameAr         string                        `json:"name_ar,omitempty"`
	Slug           string                        `json:"slug"`
	Sku            string                        `json:"sku"`
	ProductCode    string                        `json:"product_code,omitempty"`
	Price          Money                         `json:"price"`
	Quantity       int                           `json:"quantity"`
	Status         string                        `json:"status"`
	Category       *models.CategoryModelResponse `json:"category,omitempty"`
	ImageURL       string                        `json:"image_url,omitempty"`
	CreatedAt      time.Time                     `json:"created_at"`
	RelevanceScore *float64                      `json:"relevance_score,omitempty"`
	MatchedFields  *[]string                     `json:"matched_fields,omitempty"`
}

// OrderLineItem is a brief line item embedded in an order hit
type OrderLineItem struct {
	ProductId   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// OrderHit is an order search result item
type OrderHit struct {
	Id             uint            `json:"id"`
	OrderNumber    string          `json:"order_number"`
	CustomerId     uint            `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email"`
	CustomerPhone  string          `json:"customer_phone,omitempty"`
	Status         string          `json:"status"`
	Total          Money           `json:"total"`
	Items          []OrderLineItem `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	RelevanceScore *float64        `json:"relevance_score,omitempty"`
	MatchedFields  *[]string       `json:"matched_fields,omitempty"`
}

// CustomerHit is a customer search result item. OrdersCount and TotalSpent
// are per-item enrichments computed from the tenant's orders.
type CustomerHit struct {
	Id             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	OrdersCount    int64     `json:"orders_count"`
	TotalSpent     Money     `json:"total_spent"`
	CreatedAt      time.Time `json:"created_at"`
	RelevanceScore *float64  `json:"relevance_score,omitempty"`
	MatchedFields  *[]string `json:"matched_fields,omitempty"`
}

// TaskHit is the (never populated) result item for the reserved task kind
type TaskHit struct {
	Id uint `json:"id"`
}

// ProductSearchResult holds the product page plus the unbounded match count
type ProductSearchResult struct {
	Count int64         `json:"count"`
	Items []*ProductHit `json:"items"`
}

// OrderSearchResult holds the order page plus the unbounded match count
type OrderSearchResult struct {
	Count int64       `json:"count"`
	Items []*OrderHit `json:"items"`
}

// CustomerSearchResult holds the customer page plus the unbounded match count
type CustomerSearchResult struct {
	Count int64          `json:"count"`
	Items []*CustomerHit `json:"items"`
}

// TaskSearchResult is always empty; the kind is reserved
type TaskSearchResult struct {
	Count int64      `json:"count"`
	Items []*TaskHit `json:"items"`
}

// SearchResults maps requested entity kinds to their result sets.
// Unrequested kinds are absent from the JSON, not null or empty.
type SearchResults struct {
	Products  *ProductSearchResult  `json:"products,omitempty"`
	Orders    *OrderSearchResult    `json:"orders,omitempty"`
	Customers *CustomerSearchResult `json:"customers,omitempty"`
	Tasks     *TaskSearchResult     `json:"tasks,omitempty"`
}

// Range is a numeric min/max facet
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CategoryCount is a category facet bucket
type CategoryCount struct {
	CategoryId uint   `json:"category_id"`
	Name       string `json:"name"`
	Count      int64  `json:"count"`
}

// ProductAggregations summarizes the filtered (unpaginated) product population
type ProductAggregations struct {
	PriceRange Range           `json:"price_range"`
	Categories []CategoryCount `json:"categories"`
}

// OrderAggregations summarizes the filtered (unpaginated) order population
type OrderAggregations struct {
	AmountRange Range            `json:"amount_range"`
	Statuses    map[string]int64 `json:"statuses"`
}

// Aggregations groups facet summaries by entity kind. Customers do not
// support aggregation.
type Aggregations struct {
	Products *ProductAggregations `json:"products,omitempty"`
	Orders   *OrderAggregations   `json:"orders,omitempty"`
}

// SearchResponse is the unified search envelope
type SearchResponse struct {
	Success      bool          `json:"success"`
	Query        string        `json:"query"`
	TotalResults int64         `json:"total_results"`
	Page         int           `json:"page"`
	Limit        int           `json:"limit"`
	TotalPages   int           `json:"total_pages"`
	Results      SearchResults `json:"results"`
	Aggregations *Aggregations `json:"aggregations,omitempty"`
}

// SaveHistoryRequest is the payload for persisting an executed search
type SaveHistoryRequest struct {
	Query       *string         `json:"query,omitempty"`
	Entities    []EntityKind    `json:"entities,omitempty"`
	Filters     json.RawMessage `json:"filters,omitempty"`
	ResultCount int             `json:"result_count,omitempty"`
}

// DeleteHistoryRequest selects what to delete. Exactly one selector must
// be set; a request with none is a client error, not a no-op.
type DeleteHistoryRequest struct {
	Id       *uint  `json:"id,omitempty"`
	Ids      []uint `json:"ids,omitempty"`
	ClearAll bool   `json:"clear_all,omitempty"`
}

// DeleteHistoryResponse reports how many records were removed
type DeleteHistoryResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// SuggestionItem is a live autocomplete entry derived from the entity
// stores; it has no lifecycle of its own.
type SuggestionItem struct {
	Text     string     `json:"text"`
	Type     EntityKind `json:"type"`
	EntityId uint       `json:"entity_id"`
	Category string     `json:"category"`
}

// SuggestionsResponse wraps an ordered suggestion list
type SuggestionsResponse struct {
	Suggestions []SuggestionItem `json:"suggestions"`
}
