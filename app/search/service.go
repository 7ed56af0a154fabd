package search

import (
	"fmt"
	"math"
	"sync"

	"backoffice/core/emitter"
	"backoffice/core/logger"
	"backoffice/core/metrics"
	"backoffice/core/storage"

	"gorm.io/gorm"
)

const (
	// SearchExecutedEvent fires after every successful search
	SearchExecutedEvent = "search.executed"
	// HistoryCreatedEvent fires when a search is saved to history
	HistoryCreatedEvent = "search.history.created"
)

// SearchService implements cross-entity search: per-entity searchers,
// facet aggregation, history and suggestions. All reads are tenant scoped.
type SearchService struct {
	DB      *gorm.DB
	Emitter *emitter.Emitter
	Storage *storage.ActiveStorage
	Logger  logger.Logger
	Metrics *metrics.Metrics
}

// NewSearchService creates the search service
func NewSearchService(db *gorm.DB, em *emitter.Emitter, st *storage.ActiveStorage, log logger.Logger, m *metrics.Metrics) *SearchService {
	return &SearchService{
		DB:      db,
		Emitter: em,
		Storage: st,
		Logger:  log,
		Metrics: m,
	}
}

// SearchExecutedPayload is the event payload emitted after a search
type SearchExecutedPayload struct {
	TenantId     uint   `json:"tenant_id"`
	UserId       uint   `json:"user_id"`
	Query        string `json:"query"`
	TotalResults int64  `json:"total_results"`
}

// Search fans the request out across the requested entity kinds in
// parallel, merges counts, computes aggregations and assembles the
// unified envelope. Any searcher failure fails the whole request; there
// is no partial-results degradation.
func (s *SearchService) Search(tenantID, userID uint, req *SearchRequest) (*SearchResponse, error) {
	if tenantID == 0 {
		return nil, NewClientError("tenant is required")
	}
	if userID == 0 {
		return nil, NewUnauthorizedError("acting user is required")
	}

	req.normalize()
	skip := req.skip()
	limit := req.Pagination.Limit

	var (
		results  SearchResults
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for _, kind := range req.Entities {
		s.countSearch(kind)

		switch kind {
		case EntityProduct:
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := s.searchProducts(tenantID, req.Query, req.Filters.Products, skip, limit, req.Sorting)
				if err != nil {
					fail(fmt.Errorf("product search: %w", err))
					return
				}
				mu.Lock()
				results.Products = result
				mu.Unlock()
			}()
		case EntityOrder:
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := s.searchOrders(tenantID, req.Query, req.Filters.Orders, skip, limit, req.Sorting)
				if err != nil {
					fail(fmt.Errorf("order search: %w", err))
					return
				}
				mu.Lock()
				results.Orders = result
				mu.Unlock()
			}()
		case EntityCustomer:
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := s.searchCustomers(tenantID, req.Query, req.Filters.Customers, skip, limit, req.Sorting)
				if err != nil {
					fail(fmt.Errorf("customer search: %w", err))
					return
				}
				mu.Lock()
				results.Customers = result
				mu.Unlock()
			}()
		case EntityTask:
			// Reserved kind: always empty, never an error
			mu.Lock()
			results.Tasks = &TaskSearchResult{Count: 0, Items: []*TaskHit{}}
			mu.Unlock()
		}
	}

	wg.Wait()

	if firstErr != nil {
		s.Logger.Error("search failed",
			logger.Uint("tenant_id", tenantID),
			logger.String("query", req.Query),
			logger.String("error", firstErr.Error()))
		return nil, firstErr
	}

	aggregations, err := s.buildAggregations(tenantID, req)
	if err != nil {
		s.Logger.Error("aggregation failed",
			logger.Uint("tenant_id", tenantID),
			logger.String("error", err.Error()))
		return nil, err
	}

	var total int64
	if results.Products != nil {
		total += results.Products.Count
	}
	if results.Orders != nil {
		total += results.Orders.Count
	}
	if results.Customers != nil {
		total += results.Customers.Count
	}
	if results.Tasks != nil {
		total += results.Tasks.Count
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	s.Emitter.Emit(SearchExecutedEvent, &SearchExecutedPayload{
		TenantId:     tenantID,
		UserId:       userID,
		Query:        req.Query,
		TotalResults: total,
	})

	return &SearchResponse{
		Success:      true,
		Query:        req.Query,
		TotalResults: total,
		Page:         req.Pagination.Page,
		Limit:        limit,
		TotalPages:   totalPages,
		Results:      results,
		Aggregations: aggregations,
	}, nil
}

func (s *SearchService) countSearch(kind EntityKind) {
	if s.Metrics != nil {
		s.Metrics.SearchesTotal.WithLabelValues(string(kind)).Inc()
	}
}

// sortDirection validates an order parameter, falling back to the sort
// key's own default.
func sortDirection(order, fallback string) string {
	if order == "asc" || order == "desc" {
		return order
	}
	return fallback
}
