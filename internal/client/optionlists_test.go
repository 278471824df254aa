package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlift-io/iform/internal/models"
)

func TestFindOptionListID(t *testing.T) {
	lists := []models.OptionList{
		{ID: 10, Name: "species"},
		{ID: 11, Name: "habitats"},
	}

	server, _ := newTestServer(t, pagedHandler(t, lists))
	api := newTestClient(t, server.URL)

	ctx := context.Background()

	id, err := api.FindOptionListID(ctx, 42, "Habitats")
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	_, err = api.FindOptionListID(ctx, 42, "colors")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOptionsChunksBatches(t *testing.T) {
	posts := 0

	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exzact/api/v60/profiles/42/optionlists/10/options", r.URL.Path)
		posts++

		var payload []models.Option
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.LessOrEqual(t, len(payload), 100)

		var created []map[string]any
		for i := range payload {
			created = append(created, map[string]any{"id": (posts-1)*100 + i + 1})
		}
		writeJSON(t, w, created)
	})
	api := newTestClient(t, server.URL)

	options := make([]models.Option, 250)
	for i := range options {
		options[i] = models.Option{
			KeyValue:  fmt.Sprintf("key_%d", i),
			Label:     fmt.Sprintf("Label %d", i),
			SortOrder: i,
		}
	}

	ids, err := api.CreateOptions(context.Background(), 42, 10, options)
	require.NoError(t, err)

	assert.Equal(t, 3, posts)
	require.Len(t, ids, 250)
	assert.Equal(t, int64(250), ids[249])
}

func TestCreateOptionsRejectsEmptyBatch(t *testing.T) {
	server, _ := newTestServer(t, nil)
	api := newTestClient(t, server.URL)

	_, err := api.CreateOptions(context.Background(), 42, 10, nil)
	require.Error(t, err)
}

func TestPurgeOptions(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)

		// -1 matches every id including 0
		assert.Equal(t, `id:(>"-1")`, r.URL.Query().Get("fields"))
		writeJSON(t, w, []map[string]any{{"id": 0}, {"id": 1}})
	})
	api := newTestClient(t, server.URL)

	deleted, err := api.PurgeOptions(context.Background(), 42, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
}

func TestDeleteOptionsStopsOnFailure(t *testing.T) {
	var deletes []string

	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		deletes = append(deletes, r.URL.Path)
		if len(deletes) == 2 {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error_message": "no such option"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	api := newTestClient(t, server.URL)

	err := api.DeleteOptions(context.Background(), 42, 10, []int64{1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "option 2")
	assert.Len(t, deletes, 2, "loop should stop at the first failure")
}

func TestCreateOptionListRequiresName(t *testing.T) {
	server, _ := newTestServer(t, nil)
	api := newTestClient(t, server.URL)

	_, err := api.CreateOptionList(context.Background(), 42, "")
	require.Error(t, err)
}
