package search

import (
	"sort"
	"strings"

	"backoffice/app/models"

	"github.com/gertd/go-pluralize"
)

const (
	defaultSuggestionLimit = 10
	maxSuggestionLimit     = 50
	minSuggestionQueryLen  = 2
)

var pluralizer = pluralize.NewClient()

// GetSearchSuggestions performs a live prefix/substring lookup across the
// requested entity kinds. Suggestions whose text starts with the query are
// ranked ahead of pure substring matches, independent of entity kind.
func (s *SearchService) GetSearchSuggestions(tenantID uint, query string, entities []EntityKind, limit int) (*SuggestionsResponse, error) {
	if tenantID == 0 {
		return nil, NewClientError("tenant is required")
	}

	query = strings.TrimSpace(query)
	if len(query) < minSuggestionQueryLen {
		return nil, NewClientError("suggestion query must be at least 2 characters")
	}

	if limit < 1 {
		limit = defaultSuggestionLimit
	}
	if limit > maxSuggestionLimit {
		limit = maxSuggestionLimit
	}

	kinds := make([]EntityKind, 0, 3)
	seen := make(map[EntityKind]bool)
	for _, kind := range entities {
		switch kind {
		case EntityProduct, EntityOrder, EntityCustomer:
			if !seen[kind] {
				kinds = append(kinds, kind)
				seen[kind] = true
			}
		}
	}
	if len(kinds) == 0 {
		kinds = DefaultEntities()
	}

	var suggestions []SuggestionItem
	for _, kind := range kinds {
		var (
			items []SuggestionItem
			err   error
		)
		switch kind {
		case EntityProduct:
			items, err = s.suggestProducts(tenantID, query, limit)
		case EntityOrder:
			items, err = s.suggestOrders(tenantID, query, limit)
		case EntityCustomer:
			items, err = s.suggestCustomers(tenantID, query, limit)
		}
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, items...)
	}

	// Prefix matches first; the original per-entity ordering is preserved
	// within each group.
	q := strings.ToLower(query)
	sort.SliceStable(suggestions, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(suggestions[i].Text), q)
		pj := strings.HasPrefix(strings.ToLower(suggestions[j].Text), q)
		return pi && !pj
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	if suggestions == nil {
		suggestions = []SuggestionItem{}
	}

	return &SuggestionsResponse{Suggestions: suggestions}, nil
}

func suggestionCategory(kind EntityKind) string {
	plural := pluralizer.Plural(string(kind))
	return strings.ToUpper(plural[:1]) + plural[1:]
}

func (s *SearchService) suggestProducts(tenantID uint, query string, limit int) ([]SuggestionItem, error) {
	like := likePattern(query)

	var products []models.Product
	err := s.DB.Where("tenant_id = ?", tenantID).
		Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like).
		Order("name ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	items := make([]SuggestionItem, 0, len(products))
	for _, p := range products {
		text := p.Name
		if !strings.Contains(strings.ToLower(p.Name), q) {
			text = p.Sku
		}
		items = append(items, SuggestionItem{
			Text:     text,
			Type:     EntityProduct,
			EntityId: p.Id,
			Category: suggestionCategory(EntityProduct),
		})
	}
	return items, nil
}

func (s *SearchService) suggestOrders(tenantID uint, query string, limit int) ([]SuggestionItem, error) {
	like := likePattern(query)

	var orders []models.Order
	err := s.DB.Where("tenant_id = ?", tenantID).
		Where("LOWER(order_number) LIKE ?", like).
		Order("order_number ASC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	items := make([]SuggestionItem, 0, len(orders))
	for _, o := range orders {
		items = append(items, SuggestionItem{
			Text:     o.OrderNumber,
			Type:     EntityOrder,
			EntityId: o.Id,
			Category: suggestionCategory(EntityOrder),
		})
	}
	return items, nil
}

func (s *SearchService) suggestCustomers(tenantID uint, query string, limit int) ([]SuggestionItem, error) {
	like := likePattern(query)

	var customers []models.Customer
	err := s.DB.Where("tenant_id = ?", tenantID).
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like).
		Order("name ASC").
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	items := make([]SuggestionItem, 0, len(customers))
	for _, c := range customers {
		text := c.Name
		if !strings.Contains(strings.ToLower(c.Name), q) {
			text = c.Email
		}
		items = append(items, SuggestionItem{
			Text:     text,
			Type:     EntityCustomer,
			EntityId: c.Id,
			Category: suggestionCategory(EntityCustomer),
		})
	}
	return items, nil
}
