package search

import (
	"testing"

	"backoffice/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFieldsExactName(t *testing.T) {
	score, matched := scoreFields("Wireless Mouse", []scorableField{
		{name: "name", value: "Wireless Mouse", kind: fieldName},
	})

	assert.Equal(t, 1.0, score)
	assert.Equal(t, []string{"name"}, matched)
}

func TestScoreFieldsExactIdentifier(t *testing.T) {
	score, matched := scoreFields("SKU-100", []scorableField{
		{name: "sku", value: "SKU-100", kind: fieldIdentifier},
	})

	assert.Equal(t, 0.9, score)
	assert.Equal(t, []string{"sku"}, matched)
}

func TestScoreFieldsContains(t *testing.T) {
	tests := []struct {
		label  string
		field  scorableField
		query  string
		weight float64
	}{
		{"name contains", scorableField{name: "name", value: "Wireless Mouse Pro", kind: fieldName}, "mouse", 0.8},
		{"identifier contains", scorableField{name: "sku", value: "SKU-100-XL", kind: fieldIdentifier}, "100", 0.8},
		{"description contains", scorableField{name: "description", value: "A mouse for gaming", kind: fieldDescription}, "gaming", 0.5},
		{"email contains", scorableField{name: "email", value: "jane@example.com", kind: fieldEmail}, "jane", 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			score, matched := scoreFields(tt.query, []scorableField{tt.field})
			assert.Equal(t, tt.weight, score)
			assert.Equal(t, []string{tt.field.name}, matched)
		})
	}
}

func TestScoreFieldsAccumulatesAndClamps(t *testing.T) {
	// Exact name (1.0) plus identifier contains (0.8) must clamp at 1.0
	score, matched := scoreFields("gift card", []scorableField{
		{name: "name", value: "Gift Card", kind: fieldName},
		{name: "sku", value: "GIFT CARD-01", kind: fieldIdentifier},
	})

	assert.Equal(t, 1.0, score)
	assert.ElementsMatch(t, []string{"name", "sku"}, matched)
}

func TestScoreFieldsCaseInsensitive(t *testing.T) {
	score, _ := scoreFields("WIRELESS mouse", []scorableField{
		{name: "name", value: "wireless MOUSE", kind: fieldName},
	})

	assert.Equal(t, 1.0, score)
}

func TestScoreFieldsNoMatch(t *testing.T) {
	score, matched := scoreFields("keyboard", []scorableField{
		{name: "name", value: "Wireless Mouse", kind: fieldName},
		{name: "description", value: "", kind: fieldDescription},
	})

	assert.Equal(t, 0.0, score)
	// The list is empty but never nil for a non-empty query
	require.NotNil(t, matched)
	assert.Empty(t, matched)
}

func TestScoreFieldsEmptyQuery(t *testing.T) {
	score, matched := scoreFields("   ", []scorableField{
		{name: "name", value: "Wireless Mouse", kind: fieldName},
	})

	assert.Equal(t, 0.0, score)
	assert.Nil(t, matched)
}

func TestScoreFieldsDedupesMatchedFields(t *testing.T) {
	score, matched := scoreFields("mo", []scorableField{
		{name: "name", value: "Mouse", kind: fieldName},
		{name: "name", value: "Mousepad", kind: fieldName},
	})

	assert.Equal(t, 1.0, score)
	assert.Equal(t, []string{"name"}, matched)
}

func TestScoreProduct(t *testing.T) {
	p := &models.Product{
		Name:        "Gift Card",
		Sku:         "GC-500",
		Description: "A prepaid gift card for the store",
	}

	score, matched := scoreProduct(p, "gift card")

	assert.Equal(t, 1.0, score) // name exact 1.0 + description contains 0.5, clamped
	assert.Contains(t, matched, "name")
	assert.Contains(t, matched, "description")
	assert.NotContains(t, matched, "sku")
}

func TestScoreProductLocalizedDescription(t *testing.T) {
	p := &models.Product{
		Name:          "Prayer Rug",
		Sku:           "PR-300",
		DescriptionAr: "سجادة صلاة فاخرة",
	}

	score, matched := scoreProduct(p, "فاخرة")

	assert.Equal(t, 0.5, score)
	assert.Equal(t, []string{"description_ar"}, matched)
}

func TestScoreOrder(t *testing.T) {
	o := &models.Order{
		OrderNumber:   "ORD-2024-001",
		CustomerName:  "Jane Smith",
		CustomerEmail: "jane@example.com",
	}

	score, matched := scoreOrder(o, "ord-2024-001")
	assert.Equal(t, 0.9, score)
	assert.Equal(t, []string{"order_number"}, matched)

	score, matched = scoreOrder(o, "jane")
	assert.Equal(t, 1.0, score) // name contains 0.8 + email contains 0.7, clamped
	assert.ElementsMatch(t, []string{"customer_name", "customer_email"}, matched)
}

func TestScoreCustomer(t *testing.T) {
	c := &models.Customer{
		Name:  "Jane Smith",
		Email: "jane.smith@example.com",
	}

	score, matched := scoreCustomer(c, "jane smith")
	assert.Equal(t, 1.0, score)
	assert.Contains(t, matched, "name")

	score, matched = scoreCustomer(c, "example.com")
	assert.Equal(t, 0.7, score)
	assert.Equal(t, []string{"email"}, matched)
}
