package search

import (
	"encoding/json"
	"fmt"
	"testing"

	"backoffice/app/models"
	"backoffice/core/emitter"
	"backoffice/core/logger"
	"backoffice/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *SearchService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&storage.Attachment{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Customer{},
		&models.SearchHistory{},
	))

	return NewSearchService(db, emitter.New(), nil, logger.NewNop(), nil)
}

func seedCatalog(t *testing.T, db *gorm.DB, tenantID uint) {
	t.Helper()

	electronics := &models.Category{TenantId: tenantID, Name: "Electronics"}
	require.NoError(t, db.Create(electronics).Error)

	products := []*models.Product{
		{TenantId: tenantID, Name: "Wireless Mouse", Sku: "WM-100", Price: 15.00, Currency: "SAR", Quantity: 10, Status: models.ProductStatusActive, CategoryId: electronics.Id},
		{TenantId: tenantID, Name: "Gift Card", Sku: "GC-500", Description: "A prepaid gift card", Price: 9.99, Currency: "SAR", Quantity: 100, Status: models.ProductStatusActive, CategoryId: electronics.Id},
		{TenantId: tenantID, Name: "Keyboard", Sku: "KB-200", Price: 20.01, Currency: "SAR", Quantity: 5, Status: models.ProductStatusDraft, CategoryId: electronics.Id},
	}
	for _, p := range products {
		require.NoError(t, db.Create(p).Error)
	}

	customer := &models.Customer{TenantId: tenantID, Name: "Jane Smith", Email: "jane@example.com", Phone: "+966500000001"}
	require.NoError(t, db.Create(customer).Error)

	orders := []*models.Order{
		{TenantId: tenantID, OrderNumber: "ORD-2024-001", CustomerId: customer.Id, CustomerName: "Jane Smith", CustomerEmail: "jane@example.com", Status: models.OrderStatusDelivered, TotalAmount: 120.50, Currency: "SAR"},
		{TenantId: tenantID, OrderNumber: "ORD-2024-002", CustomerId: customer.Id, CustomerName: "Jane Smith", CustomerEmail: "jane@example.com", Status: models.OrderStatusPending, TotalAmount: 45.00, Currency: "SAR"},
	}
	for _, o := range orders {
		require.NoError(t, db.Create(o).Error)
	}
}

func TestSearchRequiresTenant(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Search(0, 1, &SearchRequest{Query: "mouse"})
	require.Error(t, err)
	assert.True(t, IsClientError(err))
}

func TestSearchRequiresUser(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Search(1, 0, &SearchRequest{Query: "mouse"})
	require.Error(t, err)
	assert.True(t, IsUnauthorizedError(err))
}

func TestSearchDefaultEntities(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)

	resp, err := svc.Search(1, 1, &SearchRequest{Query: "jane"})
	require.NoError(t, err)

	// No entities requested: products, orders and customers are searched,
	// tasks are not.
	assert.NotNil(t, resp.Results.Products)
	assert.NotNil(t, resp.Results.Orders)
	assert.NotNil(t, resp.Results.Customers)
	assert.Nil(t, resp.Results.Tasks)

	assert.Equal(t, int64(0), resp.Results.Products.Count)
	assert.Equal(t, int64(2), resp.Results.Orders.Count)
	assert.Equal(t, int64(1), resp.Results.Customers.Count)
	assert.Equal(t, int64(3), resp.TotalResults)
}

func TestSearchTaskKindAlwaysEmpty(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)

	resp, err := svc.Search(1, 1, &SearchRequest{
		Query:    "anything",
		Entities: []EntityKind{EntityTask},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Results.Tasks)
	assert.Equal(t, int64(0), resp.Results.Tasks.Count)
	assert.Empty(t, resp.Results.Tasks.Items)
	assert.Nil(t, resp.Results.Products)
}

func TestSearchUnrequestedKindsAbsent(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)

	resp, err := svc.Search(1, 1, &SearchRequest{
		Query:    "mouse",
		Entities: []EntityKind{EntityProduct},
	})
	require.NoError(t, err)

	assert.NotNil(t, resp.Results.Products)
	assert.Nil(t, resp.Results.Orders)
	assert.Nil(t, resp.Results.Customers)
	assert.Nil(t, resp.Results.Tasks)
}

func TestSearchTenantIsolation(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)
	seedCatalog(t, svc.DB, 2)

	resp, err := svc.Search(1, 1, &SearchRequest{
		Query:    "mouse",
		Entities: []EntityKind{EntityProduct},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Results.Products.Count)
	for _, hit := range resp.Results.Products.Items {
		var p models.Product
		require.NoError(t, svc.DB.First(&p, hit.Id).Error)
		assert.Equal(t, uint(1), p.TenantId)
	}
}

func TestSearchPriceFilterBoundaries(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)

	min, max := 10.0, 20.0
	resp, err := svc.Search(1, 1, &SearchRequest{
		Entities: []EntityKind{EntityProduct},
		Filters: SearchFilters{
			Products: &ProductFilters{PriceMin: &min, PriceMax: &max},
		},
	})
	require.NoError(t, err)

	// 9.99 and 20.01 fall outside the inclusive range; only 15.00 survives
	require.Equal(t, int64(1), resp.Results.Products.Count)
	assert.Equal(t, "Wireless Mouse", resp.Results.Products.Items[0].Name)
}

func TestSearchStatusAliasFilter(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)

	resp, err := svc.Search(1, 1, &SearchRequest{
		Entities: []EntityKind{EntityProduct},
		Filters: SearchFilters{
			Products: &ProductFilters{Statuses: []string{"published"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.Results.Products.Count)
	for _, hit := range resp.Results.Products.Items {
		assert.Equal(t, models.ProductStatusActive, hit.Status)
	}
}

func TestSearchEmptyFilterSetsAreNoConstraint(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)

	resp, err := svc.Search(1, 1, &SearchRequest{
		Entities: []EntityKind{EntityProduct},
		Filters: SearchFilters{
			Products: &ProductFilters{CategoryIds: []uint{}, Statuses: []string{}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.Results.Products.Count)
}

func TestSearchRelevancePresentOnlyWithQuery(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)

	withQuery, err := svc.Search(1, 1, &SearchRequest{
		Query:    "gift card",
		Entities: []EntityKind{EntityProduct},
	})
	require.NoError(t, err)
	require.Len(t, withQuery.Results.Products.Items, 1)

	hit := withQuery.Results.Products.Items[0]
	require.NotNil(t, hit.RelevanceScore)
	assert.Equal(t, 1.0, *hit.RelevanceScore)
	require.NotNil(t, hit.MatchedFields)
	assert.Contains(t, *hit.MatchedFields, "name")
	assert.Contains(t, *hit.MatchedFields, "description")

	withoutQuery, err := svc.Search(1, 1, &SearchRequest{
		Entities: []EntityKind{EntityProduct},
	})
	require.NoError(t, err)
	for _, hit := range withoutQuery.Results.Products.Items {
		assert.Nil(t, hit.RelevanceScore)
		assert.Nil(t, hit.MatchedFields)
	}
}

func TestSearchLocalizedDescriptionOnlyMatch(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.DB.Create(&models.Product{
		TenantId:      1,
		Name:          "Prayer Rug",
		Sku:           "PR-300",
		DescriptionAr: "سجادة صلاة فاخرة",
	}).Error)

	resp, err := svc.Search(1, 1, &SearchRequest{
		Query:    "فاخرة",
		Entities: []EntityKind{EntityProduct},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results.Products.Items, 1)

	hit := resp.Results.Products.Items[0]
	require.NotNil(t, hit.RelevanceScore)
	assert.Equal(t, 0.5, *hit.RelevanceScore)
	require.NotNil(t, hit.MatchedFields)
	assert.Equal(t, []string{"description_ar"}, *hit.MatchedFields)
}

func TestSearchOrderPhoneOnlyMatch(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.DB.Create(&models.Order{
		TenantId:      1,
		OrderNumber:   "ORD-2024-001",
		CustomerName:  "Jane Smith",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "+966555123456",
	}).Error)

	resp, err := svc.Search(1, 1, &SearchRequest{
		Query:    "555123",
		Entities: []EntityKind{EntityOrder},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results.Orders.Items, 1)

	// The phone column is searchable but carries no relevance weight, so the
	// hit reports a zero score and an empty (not absent) matched-field list.
	hit := resp.Results.Orders.Items[0]
	require.NotNil(t, hit.RelevanceScore)
	assert.Equal(t, 0.0, *hit.RelevanceScore)
	require.NotNil(t, hit.MatchedFields)
	assert.Empty(t, *hit.MatchedFields)

	body, err := json.Marshal(hit)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"relevance_score":0`)
	assert.Contains(t, string(body), `"matched_fields":[]`)
}

func TestSearchTotalPages(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)

	resp, err := svc.Search(1, 1, &SearchRequest{
		Entities:   []EntityKind{EntityProduct},
		Pagination: Pagination{Page: 1, Limit: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.TotalResults)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Results.Products.Items, 2)
}

func TestSearchCustomerEnrichment(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)

	resp, err := svc.Search(1, 1, &SearchRequest{
		Query:    "jane",
		Entities: []EntityKind{EntityCustomer},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results.Customers.Items, 1)

	hit := resp.Results.Customers.Items[0]
	assert.Equal(t, int64(2), hit.OrdersCount)
	assert.Equal(t, 165.50, hit.TotalSpent.Amount)
	assert.Equal(t, "SAR", hit.TotalSpent.Currency)
	assert.Equal(t, "165.50 SAR", hit.TotalSpent.Formatted)
}

func TestSearchAggregations(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)

	resp, err := svc.Search(1, 1, &SearchRequest{
		Query:    "mouse", // facets ignore the text query
		Entities: []EntityKind{EntityProduct, EntityOrder},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Aggregations)

	products := resp.Aggregations.Products
	require.NotNil(t, products)
	assert.Equal(t, 9.99, products.PriceRange.Min)
	assert.Equal(t, 20.01, products.PriceRange.Max)
	require.Len(t, products.Categories, 1)
	assert.Equal(t, "Electronics", products.Categories[0].Name)
	assert.Equal(t, int64(3), products.Categories[0].Count)

	orders := resp.Aggregations.Orders
	require.NotNil(t, orders)
	assert.Equal(t, 45.00, orders.AmountRange.Min)
	assert.Equal(t, 120.50, orders.AmountRange.Max)
	assert.Equal(t, int64(1), orders.Statuses[models.OrderStatusDelivered])
	assert.Equal(t, int64(1), orders.Statuses[models.OrderStatusPending])
}

func TestSearchAggregationsAbsentForCustomerOnly(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)

	resp, err := svc.Search(1, 1, &SearchRequest{
		Entities: []EntityKind{EntityCustomer},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Aggregations)
}

func TestSearchEmitsEvent(t *testing.T) {
	svc := newTestService(t)
	seedCatalog(t, svc.DB, 1)

	var payload *SearchExecutedPayload
	svc.Emitter.On(SearchExecutedEvent, func(data any) {
		payload = data.(*SearchExecutedPayload)
	})

	_, err := svc.Search(1, 7, &SearchRequest{Query: "mouse"})
	require.NoError(t, err)

	require.NotNil(t, payload)
	assert.Equal(t, uint(1), payload.TenantId)
	assert.Equal(t, uint(7), payload.UserId)
	assert.Equal(t, "mouse", payload.Query)
}

func TestNewMoneyDefaultsCurrency(t *testing.T) {
	m := NewMoney(12.5, "")

	assert.Equal(t, "SAR", m.Currency)
	assert.Equal(t, "12.50 SAR", m.Formatted)
}
