package search

import (
	"strings"
	"testing"

	"backoffice/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionsRequireTenant(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetSearchSuggestions(0, "mo", nil, 10)
	require.Error(t, err)
	assert.True(t, IsClientError(err))
}

func TestSuggestionsQueryTooShort(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetSearchSuggestions(1, "m", nil, 10)
	require.Error(t, err)
	assert.True(t, IsClientError(err))

	_, err = svc.GetSearchSuggestions(1, "  m  ", nil, 10)
	require.Error(t, err)
	assert.True(t, IsClientError(err))
}

func TestSuggestionsPrefixBeforeSubstring(t *testing.T) {
	svc := newTestService(t)

	products := []*models.Product{
		{TenantId: 1, Name: "Waterproof iPad Sleeve", Sku: "WS-01"},
		{TenantId: 1, Name: "iPhone Case", Sku: "IC-01"},
	}
	for _, p := range products {
		require.NoError(t, svc.DB.Create(p).Error)
	}
	require.NoError(t, svc.DB.Create(&models.Order{
		TenantId: 1, OrderNumber: "IP-2024-001",
	}).Error)

	resp, err := svc.GetSearchSuggestions(1, "ip", nil, 10)
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 3)

	// Prefix matches come first regardless of entity kind
	assert.Equal(t, "iPhone Case", resp.Suggestions[0].Text)
	assert.Equal(t, "IP-2024-001", resp.Suggestions[1].Text)
	assert.Equal(t, "Waterproof iPad Sleeve", resp.Suggestions[2].Text)
}

func TestSuggestionsEntityFilter(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.DB.Create(&models.Product{TenantId: 1, Name: "Mouse"}).Error)
	require.NoError(t, svc.DB.Create(&models.Customer{TenantId: 1, Name: "Mo Salah", Email: "mo@example.com"}).Error)

	resp, err := svc.GetSearchSuggestions(1, "mo", []EntityKind{EntityCustomer}, 10)
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, EntityCustomer, resp.Suggestions[0].Type)
}

func TestSuggestionsTaskKindIgnored(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.DB.Create(&models.Product{TenantId: 1, Name: "Mouse"}).Error)

	// Only the reserved kind is named, so defaults apply
	resp, err := svc.GetSearchSuggestions(1, "mo", []EntityKind{EntityTask}, 10)
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, EntityProduct, resp.Suggestions[0].Type)
}

func TestSuggestionsLimitClamped(t *testing.T) {
	svc := newTestService(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.DB.Create(&models.Product{
			TenantId: 1,
			Name:     "Mouse " + strings.Repeat("x", i+1),
			Sku:      "MO-" + strings.Repeat("0", i+1),
		}).Error)
	}

	resp, err := svc.GetSearchSuggestions(1, "mouse", nil, 3)
	require.NoError(t, err)
	assert.Len(t, resp.Suggestions, 3)

	// Non-positive limit falls back to the default rather than erroring
	resp, err = svc.GetSearchSuggestions(1, "mouse", nil, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Suggestions, 5)
}

func TestSuggestionsSkuFallbackText(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.DB.Create(&models.Product{
		TenantId: 1, Name: "Wireless Mouse", Sku: "GC-500",
	}).Error)

	resp, err := svc.GetSearchSuggestions(1, "gc-5", []EntityKind{EntityProduct}, 10)
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)

	// Name did not match, so the SKU is surfaced as the suggestion text
	assert.Equal(t, "GC-500", resp.Suggestions[0].Text)
}

func TestSuggestionsCategories(t *testing.T) {
	assert.Equal(t, "Products", suggestionCategory(EntityProduct))
	assert.Equal(t, "Orders", suggestionCategory(EntityOrder))
	assert.Equal(t, "Customers", suggestionCategory(EntityCustomer))
}

func TestSuggestionsEmptyResultIsNotNil(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.GetSearchSuggestions(1, "zz", nil, 10)
	require.NoError(t, err)
	assert.NotNil(t, resp.Suggestions)
	assert.Empty(t, resp.Suggestions)
}

func TestSuggestionsTenantScoped(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.DB.Create(&models.Product{TenantId: 1, Name: "Mouse"}).Error)
	require.NoError(t, svc.DB.Create(&models.Product{TenantId: 2, Name: "Mouse Pad"}).Error)

	resp, err := svc.GetSearchSuggestions(1, "mo", []EntityKind{EntityProduct}, 10)
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "Mouse", resp.Suggestions[0].Text)
}
