package search

import (
	"testing"

	"backoffice/app/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProductStatuses(t *testing.T) {
	out := normalizeStatuses([]string{"published", "Unpublished", "HIDDEN", "draft"}, productStatusAliases)

	assert.Equal(t, []string{
		models.ProductStatusActive,
		models.ProductStatusInactive,
		models.ProductStatusInactive,
		"DRAFT",
	}, out)
}

func TestNormalizeOrderStatuses(t *testing.T) {
	out := normalizeStatuses([]string{"completed", "canceled", "in_progress", "shipped"}, orderStatusAliases)

	assert.Equal(t, []string{
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
		models.OrderStatusProcessing,
		"SHIPPED",
	}, out)
}

func TestNormalizeStatusesUppercaseFallback(t *testing.T) {
	// Unknown values upper-case rather than reject
	out := normalizeStatuses([]string{"archived"}, productStatusAliases)
	assert.Equal(t, []string{"ARCHIVED"}, out)
}

func TestNormalizeStatusesSkipsBlanks(t *testing.T) {
	out := normalizeStatuses([]string{"", "  ", "published"}, productStatusAliases)
	assert.Equal(t, []string{models.ProductStatusActive}, out)
}

func TestSearchRequestNormalizeDefaults(t *testing.T) {
	req := &SearchRequest{}
	req.normalize()

	assert.Equal(t, DefaultEntities(), req.Entities)
	assert.Equal(t, 1, req.Pagination.Page)
	assert.Equal(t, defaultLimit, req.Pagination.Limit)
}

func TestSearchRequestNormalizeDropsInvalidKinds(t *testing.T) {
	req := &SearchRequest{
		Entities: []EntityKind{"product", "warehouse", "product", "task"},
	}
	req.normalize()

	assert.Equal(t, []EntityKind{EntityProduct, EntityTask}, req.Entities)
}

func TestSearchRequestNormalizeOnlyInvalidKinds(t *testing.T) {
	req := &SearchRequest{Entities: []EntityKind{"warehouse"}}
	req.normalize()

	assert.Equal(t, DefaultEntities(), req.Entities)
}

func TestSearchRequestNormalizeClampsLimit(t *testing.T) {
	req := &SearchRequest{Pagination: Pagination{Page: -3, Limit: 500}}
	req.normalize()

	assert.Equal(t, 1, req.Pagination.Page)
	assert.Equal(t, maxLimit, req.Pagination.Limit)
}

func TestSearchRequestNormalizeTrimsQuery(t *testing.T) {
	req := &SearchRequest{Query: "  mouse  "}
	req.normalize()

	assert.Equal(t, "mouse", req.Query)
}

func TestSearchRequestSkip(t *testing.T) {
	req := &SearchRequest{Pagination: Pagination{Page: 3, Limit: 20}}
	req.normalize()

	assert.Equal(t, 40, req.skip())
}
