package search

import (
	"backoffice/app/models"
)

const orderTextPredicate = "LOWER(order_number) LIKE ? OR LOWER(customer_email) LIKE ? OR " +
	"LOWER(customer_name) LIKE ? OR customer_phone LIKE ?"

func (s *SearchService) searchOrders(tenantID uint, query string, filters *OrderFilters, skip, limit int, sort Sorting) (*OrderSearchResult, error) {
	db := s.DB.Model(&models.Order{}).Where("tenant_id = ?", tenantID)
	db = applyOrderFilters(db, filters)

	if query != "" {
		like := likePattern(query)
		db = db.Where(orderTextPredicate, like, like, like, like)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, err
	}

	var items []*models.Order
	db = (&models.Order{}).Preload(db)
	if err := db.Order(orderOrderClause(sort)).Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}

	hits := make([]*OrderHit, len(items))
	for i, item := range items {
		hits[i] = toOrderHit(item, query)
	}

	return &OrderSearchResult{Count: count, Items: hits}, nil
}

func toOrderHit(o *models.Order, query string) *OrderHit {
	lineItems := make([]OrderLineItem, len(o.Items))
	for i, item := range o.Items {
		lineItems[i] = OrderLineItem{
			ProductId:   item.ProductId,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	hit := &OrderHit{
		Id:            o.Id,
		OrderNumber:   o.OrderNumber,
		CustomerId:    o.CustomerId,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		Status:        o.Status,
		Total:         NewMoney(o.TotalAmount, o.Currency),
		Items:         lineItems,
		CreatedAt:     o.CreatedAt,
	}
	if query != "" {
		score, matched := scoreOrder(o, query)
		hit.RelevanceScore = &score
		hit.MatchedFields = &matched
	}
	return hit
}

func orderOrderClause(sort Sorting) string {
	switch sort.SortBy {
	case "date":
		return "created_at " + sortDirection(sort.SortOrder, "desc")
	case "price":
		return "total_amount " + sortDirection(sort.SortOrder, "asc")
	case "name":
		return "customer_name " + sortDirection(sort.SortOrder, "asc")
	case "status":
		return "status " + sortDirection(sort.SortOrder, "asc")
	default:
		return "order_number ASC"
	}
}
