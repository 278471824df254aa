package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlift-io/iform/internal/models"
)

// pagedHandler serves rows[offset:offset+limit] the way the API windows
// list responses.
func pagedHandler[T any](t *testing.T, rows []T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		end := offset + limit
		if end > len(rows) {
			end = len(rows)
		}
		if offset > len(rows) {
			offset = len(rows)
		}

		writeJSON(t, w, rows[offset:end])
	}
}

func TestListPagesWalksPagination(t *testing.T) {

	// 230 pages forces three windows at the 100-row limit
	var pages []models.Page
	for i := 1; i <= 230; i++ {
		pages = append(pages, models.Page{
			ID:    int64(i),
			Name:  fmt.Sprintf("form_%d", i),
			Label: fmt.Sprintf("Form %d", i),
		})
	}

	server, _ := newTestServer(t, pagedHandler(t, pages))
	api := newTestClient(t, server.URL)

	got, err := api.ListPages(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, got, 230)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(230), got[229].ID)
	assert.Equal(t, "form_115", got[114].Name)
}

func TestListPagesEmptyProfile(t *testing.T) {
	server, _ := newTestServer(t, pagedHandler(t, []models.Page{}))
	api := newTestClient(t, server.URL)

	got, err := api.ListPages(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetPage(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exzact/api/v60/profiles/42/pages/7", r.URL.Path)
		writeJSON(t, w, models.Page{ID: 7, Name: "site_survey", Label: "Site Survey"})
	})
	api := newTestClient(t, server.URL)

	page, err := api.GetPage(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Equal(t, "site_survey", page.Name)
}

func TestFindPageID(t *testing.T) {
	pages := []models.Page{
		{ID: 1, Name: "alpha", Label: "Alpha Form"},
		{ID: 2, Name: "beta", Label: "Beta Form"},
	}

	server, _ := newTestServer(t, pagedHandler(t, pages))
	api := newTestClient(t, server.URL)

	ctx := context.Background()

	id, err := api.FindPageID(ctx, 42, "beta")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	// Labels match too, case-insensitively
	id, err = api.FindPageID(ctx, 42, "alpha form")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = api.FindPageID(ctx, 42, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePage(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/exzact/api/v60/profiles/42/pages", r.URL.Path)
		writeJSON(t, w, map[string]any{"id": 99})
	})
	api := newTestClient(t, server.URL)

	id, err := api.CreatePage(context.Background(), 42, "New Form")
	require.NoError(t, err)
	assert.Equal(t, int64(99), id)

	_, err = api.CreatePage(context.Background(), 42, "")
	require.Error(t, err)
}

func TestListElements(t *testing.T) {
	elements := []models.PageElement{
		{ID: 1, Name: "observer", Label: "Observer", DataType: 1, SortOrder: 1},
		{ID: 2, Name: "count", Label: "Count", DataType: 2, SortOrder: 2},
	}

	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exzact/api/v60/profiles/42/pages/7/elements", r.URL.Path)
		pagedHandler(t, elements)(w, r)
	})
	api := newTestClient(t, server.URL)

	got, err := api.ListElements(context.Background(), 42, 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "observer", got[0].Name)
}
