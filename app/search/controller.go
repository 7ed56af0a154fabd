package search

import (
	"net/http"
	"strconv"
	"strings"

	"backoffice/core/logger"
	"backoffice/core/router"
	"backoffice/core/types"
)

type SearchController struct {
	Service *SearchService
	Logger  logger.Logger
}

func NewSearchController(service *SearchService, log logger.Logger) *SearchController {
	return &SearchController{
		Service: service,
		Logger:  log,
	}
}

func (c *SearchController) Routes(router *router.RouterGroup) {
	router.POST("/search", c.Search)
	router.GET("/search", c.SearchSimple)
	router.GET("/search/history", c.GetHistory)
	router.POST("/search/history", c.SaveHistory)
	router.DELETE("/search/history", c.DeleteHistory)
	router.GET("/search/suggestions", c.GetSuggestions)
}

// Search godoc
// @Summary Cross-entity search
// @Description Search products, orders and customers with structured filters
// @Tags Search
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body SearchRequest true "Search request"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /search [post]
func (c *SearchController) Search(ctx *router.Context) error {
	var req SearchRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid input: " + err.Error()})
	}

	response, err := c.Service.Search(ctx.GetUint("tenant_id"), ctx.GetUint("user_id"), &req)
	if err != nil {
		return c.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// SearchSimple godoc
// @Summary Cross-entity search via query parameters
// @Description Simplified GET variant without structured filters
// @Tags Search
// @Security BearerAuth
// @Produce json
// @Param q query string false "Free-text query"
// @Param entities query string false "Comma-separated entity kinds" example("product,order")
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param sort_by query string false "relevance, date, price, name, status"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /search [get]
func (c *SearchController) SearchSimple(ctx *router.Context) error {
	// Build the typed request once at the boundary; the service never
	// sees raw parameters.
	req := SearchRequest{
		Query:    ctx.Query("q"),
		Entities: parseEntities(ctx.Query("entities")),
		Pagination: Pagination{
			Page:  queryInt(ctx, "page"),
			Limit: queryInt(ctx, "limit"),
		},
		Sorting: Sorting{
			SortBy:    ctx.Query("sort_by"),
			SortOrder: ctx.Query("sort_order"),
		},
	}

	response, err := c.Service.Search(ctx.GetUint("tenant_id"), ctx.GetUint("user_id"), &req)
	if err != nil {
		return c.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetHistory godoc
// @Summary List saved searches
// @Description Paginated, newest first, optionally filtered by entity tag
// @Tags Search
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param entity query string false "Entity tag filter"
// @Success 200 {object} types.PaginatedResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /search/history [get]
func (c *SearchController) GetHistory(ctx *router.Context) error {
	response, err := c.Service.GetSearchHistory(
		ctx.GetUint("tenant_id"),
		ctx.GetUint("user_id"),
		queryInt(ctx, "page"),
		queryInt(ctx, "limit"),
		ctx.Query("entity"),
	)
	if err != nil {
		return c.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// SaveHistory godoc
// @Summary Save a search to history
// @Tags Search
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body SaveHistoryRequest true "Search to save"
// @Success 201 {object} models.SearchHistory
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /search/history [post]
func (c *SearchController) SaveHistory(ctx *router.Context) error {
	var req SaveHistoryRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid input: " + err.Error()})
	}

	item, err := c.Service.SaveSearchHistory(ctx.GetUint("tenant_id"), ctx.GetUint("user_id"), &req)
	if err != nil {
		return c.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, item)
}

// DeleteHistory godoc
// @Summary Delete saved searches
// @Description Exactly one of id, ids or clear_all must be provided
// @Tags Search
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body DeleteHistoryRequest true "Deletion selector"
// @Success 200 {object} DeleteHistoryResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /search/history [delete]
func (c *SearchController) DeleteHistory(ctx *router.Context) error {
	var req DeleteHistoryRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid input: " + err.Error()})
	}

	deleted, err := c.Service.DeleteSearchHistory(ctx.GetUint("tenant_id"), ctx.GetUint("user_id"), &req)
	if err != nil {
		return c.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, DeleteHistoryResponse{DeletedCount: deleted})
}

// GetSuggestions godoc
// @Summary Autocomplete suggestions
// @Description Live prefix/substring lookup across entity stores
// @Tags Search
// @Security BearerAuth
// @Produce json
// @Param q query string true "Query (minimum 2 characters)"
// @Param entities query string false "Comma-separated entity kinds"
// @Param limit query int false "Max suggestions (default 10, max 50)"
// @Success 200 {object} SuggestionsResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /search/suggestions [get]
func (c *SearchController) GetSuggestions(ctx *router.Context) error {
	response, err := c.Service.GetSearchSuggestions(
		ctx.GetUint("tenant_id"),
		ctx.Query("q"),
		parseEntities(ctx.Query("entities")),
		queryInt(ctx, "limit"),
	)
	if err != nil {
		return c.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// respondError maps the service error taxonomy onto HTTP statuses. Internal
// failures are logged with context and surfaced opaquely.
func (c *SearchController) respondError(ctx *router.Context, err error) error {
	if IsClientError(err) {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}
	if IsUnauthorizedError(err) {
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: err.Error()})
	}
	c.Logger.Error("search request failed",
		logger.String("path", ctx.Request.URL.Path),
		logger.String("error", err.Error()))
	return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Search failed"})
}

func parseEntities(raw string) []EntityKind {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	kinds := make([]EntityKind, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			kinds = append(kinds, EntityKind(trimmed))
		}
	}
	return kinds
}

func queryInt(ctx *router.Context, name string) int {
	if raw := ctx.Query(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return 0
}
