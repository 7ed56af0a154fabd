package search

import (
	"strings"

	"backoffice/app/models"

	"gorm.io/gorm"
)

// Status vocabulary mapping. Requests may use the storefront-facing
// spellings or the store's internal uppercase ones; unrecognized values
// fall back to upper-casing rather than rejecting the request.
var productStatusAliases = map[string]string{
	"published":   models.ProductStatusActive,
	"unpublished": models.ProductStatusInactive,
	"hidden":      models.ProductStatusInactive,
}

var orderStatusAliases = map[string]string{
	"completed":   models.OrderStatusDelivered,
	"canceled":    models.OrderStatusCancelled,
	"in_progress": models.OrderStatusProcessing,
}

func normalizeStatuses(values []string, aliases map[string]string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if mapped, ok := aliases[strings.ToLower(v)]; ok {
			out = append(out, mapped)
			continue
		}
		out = append(out, strings.ToUpper(v))
	}
	return out
}

// applyProductFilters ANDs each populated filter field onto the query.
// Empty sets behave like absent fields: no constraint, never "match
// nothing".
func applyProductFilters(db *gorm.DB, f *ProductFilters) *gorm.DB {
	if f == nil {
		return db
	}
	if len(f.CategoryIds) > 0 {
		db = db.Where("category_id IN ?", f.CategoryIds)
	}
	if statuses := normalizeStatuses(f.Statuses, productStatusAliases); len(statuses) > 0 {
		db = db.Where("status IN ?", statuses)
	}
	if f.PriceMin != nil {
		db = db.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		db = db.Where("price <= ?", *f.PriceMax)
	}
	return db
}

func applyOrderFilters(db *gorm.DB, f *OrderFilters) *gorm.DB {
	if f == nil {
		return db
	}
	if statuses := normalizeStatuses(f.Statuses, orderStatusAliases); len(statuses) > 0 {
		db = db.Where("status IN ?", statuses)
	}
	if f.DateFrom != nil && !f.DateFrom.IsZero() {
		db = db.Where("created_at >= ?", f.DateFrom.Time)
	}
	if f.DateTo != nil && !f.DateTo.IsZero() {
		db = db.Where("created_at <= ?", f.DateTo.Time)
	}
	if f.AmountMin != nil {
		db = db.Where("total_amount >= ?", *f.AmountMin)
	}
	if f.AmountMax != nil {
		db = db.Where("total_amount <= ?", *f.AmountMax)
	}
	if len(f.CustomerIds) > 0 {
		db = db.Where("customer_id IN ?", f.CustomerIds)
	}
	return db
}

func applyCustomerFilters(db *gorm.DB, f *CustomerFilters) *gorm.DB {
	if f == nil {
		return db
	}
	if f.DateFrom != nil && !f.DateFrom.IsZero() {
		db = db.Where("created_at >= ?", f.DateFrom.Time)
	}
	if f.DateTo != nil && !f.DateTo.IsZero() {
		db = db.Where("created_at <= ?", f.DateTo.Time)
	}
	return db
}
