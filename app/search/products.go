package search

import (
	"strings"

	"backoffice/app/models"
)

// productTextFields is the fixed set of columns the free-text predicate
// spans for products.
const productTextPredicate = "LOWER(name) LIKE ? OR LOWER(name_ar) LIKE ? OR " +
	"LOWER(description) LIKE ? OR LOWER(description_ar) LIKE ? OR " +
	"LOWER(sku) LIKE ? OR LOWER(product_code) LIKE ?"

func (s *SearchService) searchProducts(tenantID uint, query string, filters *ProductFilters, skip, limit int, sort Sorting) (*ProductSearchResult, error) {
	db := s.DB.Model(&models.Product{}).Where("tenant_id = ?", tenantID)
	db = applyProductFilters(db, filters)

	if query != "" {
		like := likePattern(query)
		db = db.Where(productTextPredicate, like, like, like, like, like, like)
	}

	// Total match count is taken before the page window is applied; the
	// two reads are an accepted consistency window, not a transaction.
	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, err
	}

	var items []*models.Product
	db = (&models.Product{}).Preload(db)
	if err := db.Order(productOrderClause(sort)).Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}

	hits := make([]*ProductHit, len(items))
	for i, item := range items {
		hits[i] = s.toProductHit(item, query)
	}

	return &ProductSearchResult{Count: count, Items: hits}, nil
}

func (s *SearchService) toProductHit(p *models.Product, query string) *ProductHit {
	hit := &ProductHit{
		Id:          p.Id,
		Name:        p.Name,
		NameAr:      p.NameAr,
		Slug:        p.Slug,
		Sku:         p.Sku,
		ProductCode: p.ProductCode,
		Price:       NewMoney(p.Price, p.Currency),
		Quantity:    p.Quantity,
		Status:      p.Status,
		Category:    p.Category.ToModelResponse(),
		CreatedAt:   p.CreatedAt,
	}
	if p.Image != nil {
		hit.ImageURL = p.Image.URL
	}
	if query != "" {
		score, matched := scoreProduct(p, query)
		hit.RelevanceScore = &score
		hit.MatchedFields = &matched
	}
	return hit
}

func productOrderClause(sort Sorting) string {
	switch sort.SortBy {
	case "date":
		return "created_at " + sortDirection(sort.SortOrder, "desc")
	case "price":
		return "price " + sortDirection(sort.SortOrder, "asc")
	case "name":
		return "name " + sortDirection(sort.SortOrder, "asc")
	case "status":
		return "status " + sortDirection(sort.SortOrder, "asc")
	default:
		// "relevance" (and unset) approximates relevance with a stable
		// name ordering; the store query cannot rank by score.
		// TODO: score-sort the fetched page in memory instead of falling
		// back to name order when sort_by is "relevance".
		return "name ASC"
	}
}

func likePattern(query string) string {
	return "%" + strings.ToLower(query) + "%"
}
