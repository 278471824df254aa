package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlift-io/iform/internal/models"
)

// sinceHandler mimics the records endpoint's since-id windowing: it
// parses the id:(>"N") clause out of the fields param and serves records
// with greater ids, capped at limit.
func sinceHandler(t *testing.T, total int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields := r.URL.Query().Get("fields")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		sinceID := 0
		if start := strings.Index(fields, `id:(>"`); start >= 0 {
			rest := fields[start+len(`id:(>"`):]
			end := strings.Index(rest, `"`)
			sinceID, _ = strconv.Atoi(rest[:end])
		}

		var batch []models.Record
		for id := sinceID + 1; id <= total && len(batch) < limit; id++ {
			batch = append(batch, models.Record{
				"id":       float64(id),
				"observer": fmt.Sprintf("observer_%d", id),
			})
		}

		writeJSON(t, w, batch)
	}
}

func TestFetchAllRecordsSinceIDLoop(t *testing.T) {

	// 2400 records forces three windows at the 1000-row batch size
	server, _ := newTestServer(t, sinceHandler(t, 2400))
	api := newTestClient(t, server.URL)

	records, err := api.FetchAllRecords(context.Background(), 42, 7, 0)
	require.NoError(t, err)

	require.Len(t, records, 2400)
	assert.Equal(t, int64(1), records[0].ID())
	assert.Equal(t, int64(2400), records[2399].ID())

	// No duplicates: the strictly-greater filter must never re-serve a
	// record already returned
	seen := make(map[int64]bool)
	for _, record := range records {
		assert.False(t, seen[record.ID()], "record %d returned twice", record.ID())
		seen[record.ID()] = true
	}
}

func TestFetchAllRecordsResumesFromSinceID(t *testing.T) {
	server, _ := newTestServer(t, sinceHandler(t, 50))
	api := newTestClient(t, server.URL)

	records, err := api.FetchAllRecords(context.Background(), 42, 7, 30)
	require.NoError(t, err)

	require.Len(t, records, 20)
	assert.Equal(t, int64(31), records[0].ID())
}

func TestFetchAllRecordsEmptyPage(t *testing.T) {
	server, _ := newTestServer(t, sinceHandler(t, 0))
	api := newTestClient(t, server.URL)

	records, err := api.FetchAllRecords(context.Background(), 42, 7, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListRecordsQueryParams(t *testing.T) {
	var gotFields, gotLimit string

	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotFields = r.URL.Query().Get("fields")
		gotLimit = r.URL.Query().Get("limit")
		writeJSON(t, w, []models.Record{})
	})
	api := newTestClient(t, server.URL)

	_, err := api.ListRecords(context.Background(), 42, 7, ListQuery{
		Fields:  []string{"observer", "count"},
		SinceID: 500,
		Limit:   250,
	})
	require.NoError(t, err)

	assert.Equal(t, `observer,count,id:(>"500")`, gotFields)
	assert.Equal(t, "250", gotLimit)
}

func TestCreateRecord(t *testing.T) {
	var payload map[string]any

	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		writeJSON(t, w, map[string]any{"id": 1001})
	})
	api := newTestClient(t, server.URL)

	id, err := api.CreateRecord(context.Background(), 42, 7, map[string]any{
		"observer": "jane",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1001), id)

	fields, ok := payload["fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	field := fields[0].(map[string]any)
	assert.Equal(t, "observer", field["element_name"])
	assert.Equal(t, "jane", field["value"])

	_, err = api.CreateRecord(context.Background(), 42, 7, nil)
	require.Error(t, err)
}

func TestCreateRecordsChunksBatches(t *testing.T) {
	posts := 0

	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		posts++

		var payload []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.LessOrEqual(t, len(payload), 100)

		var created []map[string]any
		for i := range payload {
			created = append(created, map[string]any{"id": (posts-1)*100 + i + 1})
		}
		writeJSON(t, w, created)
	})
	api := newTestClient(t, server.URL)

	records := make([]map[string]any, 250)
	for i := range records {
		records[i] = map[string]any{"observer": fmt.Sprintf("o%d", i)}
	}

	ids, err := api.CreateRecords(context.Background(), 42, 7, records)
	require.NoError(t, err)

	assert.Equal(t, 3, posts)
	require.Len(t, ids, 250)
	assert.Equal(t, int64(1), ids[0])
}

func TestUpdateAndDeleteRecord(t *testing.T) {
	var methods []string

	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	api := newTestClient(t, server.URL)

	ctx := context.Background()

	require.NoError(t, api.UpdateRecord(ctx, 42, 7, 1001, map[string]any{"count": 3}))
	require.NoError(t, api.DeleteRecord(ctx, 42, 7, 1001))

	assert.Equal(t, []string{
		"PUT /exzact/api/v60/profiles/42/pages/7/records/1001",
		"DELETE /exzact/api/v60/profiles/42/pages/7/records/1001",
	}, methods)
}

func TestDeleteRecordsBulk(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, `id:(>"0")`, r.URL.Query().Get("fields"))
		writeJSON(t, w, []map[string]any{{"id": 1}, {"id": 2}, {"id": 3}})
	})
	api := newTestClient(t, server.URL)

	deleted, err := api.DeleteRecords(context.Background(), 42, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
}
