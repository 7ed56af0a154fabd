package search

import (
	"sync"

	"backoffice/app/models"
)

const customerTextPredicate = "LOWER(email) LIKE ? OR LOWER(name) LIKE ?"

func (s *SearchService) searchCustomers(tenantID uint, query string, filters *CustomerFilters, skip, limit int, sort Sorting) (*CustomerSearchResult, error) {
	db := s.DB.Model(&models.Customer{}).Where("tenant_id = ?", tenantID)
	db = applyCustomerFilters(db, filters)

	if query != "" {
		like := likePattern(query)
		db = db.Where(customerTextPredicate, like, like)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, err
	}

	var items []*models.Customer
	if err := db.Order(customerOrderClause(sort)).Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}

	hits := make([]*CustomerHit, len(items))
	for i, item := range items {
		hit := &CustomerHit{
			Id:        item.Id,
			Name:      item.Name,
			Email:     item.Email,
			Phone:     item.Phone,
			CreatedAt: item.CreatedAt,
		}
		if query != "" {
			score, matched := scoreCustomer(item, query)
			hit.RelevanceScore = &score
			hit.MatchedFields = &matched
		}
		hits[i] = hit
	}

	if err := s.enrichCustomerHits(tenantID, items, hits); err != nil {
		return nil, err
	}

	return &CustomerSearchResult{Count: count, Items: hits}, nil
}

// enrichCustomerHits computes order-count and total-spend per returned
// customer. Enrichments are independent of each other and run
// concurrently; the page-size cap bounds the fan-out.
func (s *SearchService) enrichCustomerHits(tenantID uint, items []*models.Customer, hits []*CustomerHit) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			var stats struct {
				Count    int64
				Total    float64
				Currency string
			}
			err := s.DB.Model(&models.Order{}).
				Where("tenant_id = ? AND customer_id = ?", tenantID, items[i].Id).
				Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total, COALESCE(MAX(currency), '') AS currency").
				Scan(&stats).Error
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			hits[i].OrdersCount = stats.Count
			hits[i].TotalSpent = NewMoney(stats.Total, stats.Currency)
		}(i)
	}

	wg.Wait()
	return firstErr
}

func customerOrderClause(sort Sorting) string {
	switch sort.SortBy {
	case "date":
		return "created_at " + sortDirection(sort.SortOrder, "desc")
	case "name":
		return "name " + sortDirection(sort.SortOrder, "asc")
	default:
		return "name ASC"
	}
}
