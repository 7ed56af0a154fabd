package search

import (
	"encoding/json"
	"math"
	"time"

	"backoffice/app/models"
	"backoffice/core/logger"
	"backoffice/core/types"
)

// SaveSearchHistory persists a search verbatim for the tenant+user. No
// deduplication: saving the same search twice creates two records.
func (s *SearchService) SaveSearchHistory(tenantID, userID uint, req *SaveHistoryRequest) (*models.SearchHistory, error) {
	if tenantID == 0 {
		return nil, NewClientError("tenant is required")
	}
	if userID == 0 {
		return nil, NewUnauthorizedError("acting user is required")
	}

	entities := req.Entities
	if len(entities) == 0 {
		entities = DefaultEntities()
	}

	entitiesJSON, err := json.Marshal(entities)
	if err != nil {
		return nil, err
	}

	primary := string(entities[0])
	item := &models.SearchHistory{
		TenantId:      tenantID,
		UserId:        userID,
		Query:         req.Query,
		Entities:      entitiesJSON,
		Filters:       req.Filters,
		ResultCount:   req.ResultCount,
		PrimaryEntity: &primary,
	}

	if err := s.DB.Create(item).Error; err != nil {
		s.Logger.Error("failed to save search history",
			logger.Uint("tenant_id", tenantID),
			logger.String("error", err.Error()))
		return nil, err
	}

	s.Emitter.Emit(HistoryCreatedEvent, item)
	return item, nil
}

// GetSearchHistory lists saved searches newest-first, optionally filtered
// by a single entity tag.
func (s *SearchService) GetSearchHistory(tenantID, userID uint, page, limit int, entity string) (*types.PaginatedResponse, error) {
	if tenantID == 0 {
		return nil, NewClientError("tenant is required")
	}
	if userID == 0 {
		return nil, NewUnauthorizedError("acting user is required")
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	db := s.DB.Model(&models.SearchHistory{}).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID)
	if entity != "" {
		db = db.Where("primary_entity = ?", entity)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []*models.SearchHistory
	err := db.Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	// Unlike the search envelope, which reports zero pages for zero results,
	// the history list floors at one page so pager UIs always have a current
	// page to render.
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages == 0 {
		totalPages = 1
	}

	return &types.PaginatedResponse{
		Data: items,
		Pagination: types.Pagination{
			Total:      int(total),
			Page:       page,
			PageSize:   limit,
			TotalPages: totalPages,
		},
	}, nil
}

// DeleteSearchHistory removes history records in exactly one of three
// modes: single id, id set, or full tenant+user wipe. Supplying no
// selector (or more than one) is a client error and deletes nothing.
func (s *SearchService) DeleteSearchHistory(tenantID, userID uint, req *DeleteHistoryRequest) (int64, error) {
	if tenantID == 0 {
		return 0, NewClientError("tenant is required")
	}
	if userID == 0 {
		return 0, NewUnauthorizedError("acting user is required")
	}

	selectors := 0
	if req.Id != nil {
		selectors++
	}
	if len(req.Ids) > 0 {
		selectors++
	}
	if req.ClearAll {
		selectors++
	}
	if selectors == 0 {
		return 0, NewClientError("one of id, ids or clear_all must be provided")
	}
	if selectors > 1 {
		return 0, NewClientError("id, ids and clear_all are mutually exclusive")
	}

	db := s.DB.Where("tenant_id = ? AND user_id = ?", tenantID, userID)
	switch {
	case req.Id != nil:
		db = db.Where("id = ?", *req.Id)
	case len(req.Ids) > 0:
		db = db.Where("id IN ?", req.Ids)
	}

	result := db.Delete(&models.SearchHistory{})
	if result.Error != nil {
		s.Logger.Error("failed to delete search history",
			logger.Uint("tenant_id", tenantID),
			logger.String("error", result.Error.Error()))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// PruneHistory deletes history records older than the cutoff across all
// tenants. Used by the retention job.
func (s *SearchService) PruneHistory(olderThan time.Time) (int64, error) {
	result := s.DB.Where("created_at < ?", olderThan).Delete(&models.SearchHistory{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// QueryCount is a query with its saved-search frequency
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// TopQueries returns the most frequently saved queries since the cutoff.
// Used by the digest job.
func (s *SearchService) TopQueries(since time.Time, limit int) ([]QueryCount, error) {
	var rows []QueryCount
	err := s.DB.Model(&models.SearchHistory{}).
		Where("created_at >= ? AND query IS NOT NULL AND query != ''", since).
		Select("query, COUNT(*) AS count").
		Group("query").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
