package search

import (
	"strings"

	"backoffice/app/models"
)

// Relevance weights. These are a fixed heuristic, not a tunable ranking
// model: exact matches on names and identifiers dominate, substring
// matches contribute less, and long-text fields least of all. Scores
// accumulate across fields and clamp at 1.0.
const (
	weightNameExact          = 1.0
	weightIdentifierExact    = 0.9
	weightNameContains       = 0.8
	weightIdentifierContains = 0.8
	weightDescriptionContains = 0.5
	weightEmailContains      = 0.7
)

type fieldKind int

const (
	fieldName fieldKind = iota
	fieldIdentifier
	fieldDescription
	fieldEmail
)

type scorableField struct {
	name  string
	value string
	kind  fieldKind
}

// scoreFields computes the bounded relevance score for a record's fields
// against a query, and the deduplicated set of fields that contributed.
// Pure and deterministic; empty values never match.
func scoreFields(query string, fields []scorableField) (float64, []string) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0, nil
	}

	score := 0.0
	// Non-nil so every hit carries a matched-field list for a real query,
	// even when the row was found through a column the scorer has no weight
	// for (localized text, phone numbers).
	matched := []string{}
	seen := make(map[string]bool)

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		value := strings.ToLower(f.value)

		weight := 0.0
		if value == q {
			switch f.kind {
			case fieldName:
				weight = weightNameExact
			case fieldIdentifier:
				weight = weightIdentifierExact
			case fieldDescription:
				weight = weightDescriptionContains
			case fieldEmail:
				weight = weightEmailContains
			}
		} else if strings.Contains(value, q) {
			switch f.kind {
			case fieldName:
				weight = weightNameContains
			case fieldIdentifier:
				weight = weightIdentifierContains
			case fieldDescription:
				weight = weightDescriptionContains
			case fieldEmail:
				weight = weightEmailContains
			}
		}

		if weight == 0 {
			continue
		}
		score += weight
		if !seen[f.name] {
			matched = append(matched, f.name)
			seen[f.name] = true
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score, matched
}

func scoreProduct(p *models.Product, query string) (float64, []string) {
	return scoreFields(query, []scorableField{
		{name: "name", value: p.Name, kind: fieldName},
		{name: "name_ar", value: p.NameAr, kind: fieldName},
		{name: "sku", value: p.Sku, kind: fieldIdentifier},
		{name: "product_code", value: p.ProductCode, kind: fieldIdentifier},
		{name: "description", value: p.Description, kind: fieldDescription},
		{name: "description_ar", value: p.DescriptionAr, kind: fieldDescription},
	})
}

func scoreOrder(o *models.Order, query string) (float64, []string) {
	return scoreFields(query, []scorableField{
		{name: "order_number", value: o.OrderNumber, kind: fieldIdentifier},
		{name: "customer_name", value: o.CustomerName, kind: fieldName},
		{name: "customer_email", value: o.CustomerEmail, kind: fieldEmail},
	})
}

func scoreCustomer(c *models.Customer, query string) (float64, []string) {
	return scoreFields(query, []scorableField{
		{name: "name", value: c.Name, kind: fieldName},
		{name: "email", value: c.Email, kind: fieldEmail},
	})
}
