package search

import (
	"backoffice/app/models"
)

// buildAggregations computes facet summaries for the requested kinds that
// support them (products and orders). Structured filters apply; the text
// query and pagination do not, so facets reflect the filtered but
// unpaginated population.
func (s *SearchService) buildAggregations(tenantID uint, req *SearchRequest) (*Aggregations, error) {
	aggs := &Aggregations{}
	populated := false

	for _, kind := range req.Entities {
		switch kind {
		case EntityProduct:
			productAggs, err := s.aggregateProducts(tenantID, req.Filters.Products)
			if err != nil {
				return nil, err
			}
			aggs.Products = productAggs
			populated = true
		case EntityOrder:
			orderAggs, err := s.aggregateOrders(tenantID, req.Filters.Orders)
			if err != nil {
				return nil, err
			}
			aggs.Orders = orderAggs
			populated = true
		}
	}

	if !populated {
		return nil, nil
	}
	return aggs, nil
}

func (s *SearchService) aggregateProducts(tenantID uint, filters *ProductFilters) (*ProductAggregations, error) {
	var priceRange Range
	db := s.DB.Model(&models.Product{}).Where("tenant_id = ?", tenantID)
	db = applyProductFilters(db, filters)
	err := db.Select("COALESCE(MIN(price), 0) AS min, COALESCE(MAX(price), 0) AS max").Scan(&priceRange).Error
	if err != nil {
		return nil, err
	}

	var buckets []struct {
		CategoryId uint
		Count      int64
	}
	db = s.DB.Model(&models.Product{}).Where("tenant_id = ?", tenantID)
	db = applyProductFilters(db, filters)
	err = db.Select("category_id, COUNT(*) AS count").
		Group("category_id").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}

	categoryIds := make([]uint, 0, len(buckets))
	for _, b := range buckets {
		if b.CategoryId != 0 {
			categoryIds = append(categoryIds, b.CategoryId)
		}
	}

	names := make(map[uint]string, len(categoryIds))
	if len(categoryIds) > 0 {
		var categories []models.Category
		if err := s.DB.Where("id IN ?", categoryIds).Find(&categories).Error; err != nil {
			return nil, err
		}
		for _, c := range categories {
			names[c.Id] = c.Name
		}
	}

	counts := make([]CategoryCount, 0, len(buckets))
	for _, b := range buckets {
		counts = append(counts, CategoryCount{
			CategoryId: b.CategoryId,
			Name:       names[b.CategoryId],
			Count:      b.Count,
		})
	}

	return &ProductAggregations{
		PriceRange: priceRange,
		Categories: counts,
	}, nil
}

func (s *SearchService) aggregateOrders(tenantID uint, filters *OrderFilters) (*OrderAggregations, error) {
	var amountRange Range
	db := s.DB.Model(&models.Order{}).Where("tenant_id = ?", tenantID)
	db = applyOrderFilters(db, filters)
	err := db.Select("COALESCE(MIN(total_amount), 0) AS min, COALESCE(MAX(total_amount), 0) AS max").Scan(&amountRange).Error
	if err != nil {
		return nil, err
	}

	var buckets []struct {
		Status string
		Count  int64
	}
	db = s.DB.Model(&models.Order{}).Where("tenant_id = ?", tenantID)
	db = applyOrderFilters(db, filters)
	err = db.Select("status, COUNT(*) AS count").Group("status").Scan(&buckets).Error
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		statuses[b.Status] = b.Count
	}

	return &OrderAggregations{
		AmountRange: amountRange,
		Statuses:    statuses,
	}, nil
}
