package search

import (
	"encoding/json"
	"testing"
	"time"

	"backoffice/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func TestSaveSearchHistory(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.SaveSearchHistory(1, 2, &SaveHistoryRequest{
		Query:       strPtr("wireless mouse"),
		Entities:    []EntityKind{EntityOrder, EntityProduct},
		Filters:     json.RawMessage(`{"orders":{"statuses":["completed"]}}`),
		ResultCount: 12,
	})
	require.NoError(t, err)

	assert.NotZero(t, item.Id)
	assert.Equal(t, uint(1), item.TenantId)
	assert.Equal(t, uint(2), item.UserId)
	assert.Equal(t, "wireless mouse", *item.Query)
	assert.Equal(t, 12, item.ResultCount)
	require.NotNil(t, item.PrimaryEntity)
	assert.Equal(t, "order", *item.PrimaryEntity)

	var kinds []EntityKind
	require.NoError(t, json.Unmarshal(item.Entities, &kinds))
	assert.Equal(t, []EntityKind{EntityOrder, EntityProduct}, kinds)
}

func TestSaveSearchHistoryDefaultsEntities(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.SaveSearchHistory(1, 2, &SaveHistoryRequest{Query: strPtr("mouse")})
	require.NoError(t, err)

	var kinds []EntityKind
	require.NoError(t, json.Unmarshal(item.Entities, &kinds))
	assert.Equal(t, DefaultEntities(), kinds)
	assert.Equal(t, "product", *item.PrimaryEntity)
}

func TestSaveSearchHistoryNoDeduplication(t *testing.T) {
	svc := newTestService(t)

	req := &SaveHistoryRequest{Query: strPtr("mouse")}
	_, err := svc.SaveSearchHistory(1, 2, req)
	require.NoError(t, err)
	_, err = svc.SaveSearchHistory(1, 2, req)
	require.NoError(t, err)

	var count int64
	require.NoError(t, svc.DB.Model(&models.SearchHistory{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSaveSearchHistoryEmitsEvent(t *testing.T) {
	svc := newTestService(t)

	var emitted *models.SearchHistory
	svc.Emitter.On(HistoryCreatedEvent, func(data any) {
		emitted = data.(*models.SearchHistory)
	})

	item, err := svc.SaveSearchHistory(1, 2, &SaveHistoryRequest{Query: strPtr("mouse")})
	require.NoError(t, err)
	require.NotNil(t, emitted)
	assert.Equal(t, item.Id, emitted.Id)
}

func TestGetSearchHistoryNewestFirst(t *testing.T) {
	svc := newTestService(t)

	for i, q := range []string{"first", "second", "third"} {
		query := q
		entry := &models.SearchHistory{
			TenantId:      1,
			UserId:        2,
			Query:         &query,
			Entities:      json.RawMessage(`["product"]`),
			PrimaryEntity: strPtr("product"),
			CreatedAt:     time.Now().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, svc.DB.Create(entry).Error)
	}

	resp, err := svc.GetSearchHistory(1, 2, 1, 10, "")
	require.NoError(t, err)

	items := resp.Data.([]*models.SearchHistory)
	require.Len(t, items, 3)
	assert.Equal(t, "third", *items[0].Query)
	assert.Equal(t, "first", *items[2].Query)
	assert.Equal(t, 3, resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}

func TestGetSearchHistoryEntityFilter(t *testing.T) {
	svc := newTestService(t)

	for _, entity := range []string{"product", "order", "product"} {
		entry := &models.SearchHistory{
			TenantId:      1,
			UserId:        2,
			Query:         strPtr("q"),
			Entities:      json.RawMessage(`["` + entity + `"]`),
			PrimaryEntity: strPtr(entity),
		}
		require.NoError(t, svc.DB.Create(entry).Error)
	}

	resp, err := svc.GetSearchHistory(1, 2, 1, 10, "product")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Pagination.Total)
}

func TestGetSearchHistoryEmptyPage(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.GetSearchHistory(1, 2, 1, 10, "")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}

func TestDeleteSearchHistoryById(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.SaveSearchHistory(1, 2, &SaveHistoryRequest{Query: strPtr("a")})
	require.NoError(t, err)
	_, err = svc.SaveSearchHistory(1, 2, &SaveHistoryRequest{Query: strPtr("b")})
	require.NoError(t, err)

	deleted, err := svc.DeleteSearchHistory(1, 2, &DeleteHistoryRequest{Id: uintPtr(a.Id)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var count int64
	require.NoError(t, svc.DB.Model(&models.SearchHistory{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteSearchHistoryByIds(t *testing.T) {
	svc := newTestService(t)

	a, _ := svc.SaveSearchHistory(1, 2, &SaveHistoryRequest{Query: strPtr("a")})
	b, _ := svc.SaveSearchHistory(1, 2, &SaveHistoryRequest{Query: strPtr("b")})
	_, err := svc.SaveSearchHistory(1, 2, &SaveHistoryRequest{Query: strPtr("c")})
	require.NoError(t, err)

	deleted, err := svc.DeleteSearchHistory(1, 2, &DeleteHistoryRequest{Ids: []uint{a.Id, b.Id}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestDeleteSearchHistoryClearAll(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SaveSearchHistory(1, 2, &SaveHistoryRequest{Query: strPtr("a")})
	require.NoError(t, err)
	_, err = svc.SaveSearchHistory(1, 2, &SaveHistoryRequest{Query: strPtr("b")})
	require.NoError(t, err)
	// Another user's entry must survive the wipe
	_, err = svc.SaveSearchHistory(1, 9, &SaveHistoryRequest{Query: strPtr("c")})
	require.NoError(t, err)

	deleted, err := svc.DeleteSearchHistory(1, 2, &DeleteHistoryRequest{ClearAll: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var count int64
	require.NoError(t, svc.DB.Model(&models.SearchHistory{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteSearchHistoryNoSelector(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.DeleteSearchHistory(1, 2, &DeleteHistoryRequest{})
	require.Error(t, err)
	assert.True(t, IsClientError(err))
}

func TestDeleteSearchHistoryConflictingSelectors(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.DeleteSearchHistory(1, 2, &DeleteHistoryRequest{
		Id:       uintPtr(1),
		ClearAll: true,
	})
	require.Error(t, err)
	assert.True(t, IsClientError(err))
}

func TestDeleteSearchHistoryScopedToOwner(t *testing.T) {
	svc := newTestService(t)

	other, err := svc.SaveSearchHistory(1, 9, &SaveHistoryRequest{Query: strPtr("theirs")})
	require.NoError(t, err)

	deleted, err := svc.DeleteSearchHistory(1, 2, &DeleteHistoryRequest{Id: uintPtr(other.Id)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestPruneHistory(t *testing.T) {
	svc := newTestService(t)

	old := &models.SearchHistory{
		TenantId:  1,
		UserId:    2,
		Query:     strPtr("old"),
		CreatedAt: time.Now().AddDate(0, 0, -120),
	}
	require.NoError(t, svc.DB.Create(old).Error)
	_, err := svc.SaveSearchHistory(1, 2, &SaveHistoryRequest{Query: strPtr("recent")})
	require.NoError(t, err)

	deleted, err := svc.PruneHistory(time.Now().AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestTopQueries(t *testing.T) {
	svc := newTestService(t)

	for _, q := range []string{"mouse", "mouse", "keyboard", "mouse", "keyboard", ""} {
		query := q
		var qp *string
		if query != "" {
			qp = &query
		}
		require.NoError(t, svc.DB.Create(&models.SearchHistory{
			TenantId: 1, UserId: 2, Query: qp,
		}).Error)
	}

	top, err := svc.TopQueries(time.Now().AddDate(0, 0, -7), 10)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "mouse", top[0].Query)
	assert.Equal(t, int64(3), top[0].Count)
	assert.Equal(t, "keyboard", top[1].Query)
	assert.Equal(t, int64(2), top[1].Count)
}
