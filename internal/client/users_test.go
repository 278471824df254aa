package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlift-io/iform/internal/models"
)

func TestListUsers(t *testing.T) {
	users := []models.User{
		{ID: 1, Username: "jdoe", Email: "jdoe@example.com"},
		{ID: 2, Username: "asmith"},
	}

	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exzact/api/v60/profiles/42/users", r.URL.Path)
		pagedHandler(t, users)(w, r)
	})
	api := newTestClient(t, server.URL)

	got, err := api.ListUsers(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "jdoe", got[0].Username)
}

func TestCreateUser(t *testing.T) {
	var payload models.NewUserRequest

	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		writeJSON(t, w, map[string]any{"id": 55})
	})
	api := newTestClient(t, server.URL)

	id, err := api.CreateUser(context.Background(), 42, models.NewUserRequest{
		Username: "newuser",
		Password: "s3cret",
		Email:    "new@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55), id)
	assert.Equal(t, "newuser", payload.Username)

	_, err = api.CreateUser(context.Background(), 42, models.NewUserRequest{Username: "nopass"})
	require.Error(t, err)
}

func TestDeleteUser(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/exzact/api/v60/profiles/42/users/55", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	api := newTestClient(t, server.URL)

	require.NoError(t, api.DeleteUser(context.Background(), 42, 55))
}
