package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formlift-io/iform/internal/config"
)

// newTestServer starts a mock API that issues tokens at the OAuth
// endpoint and delegates everything under the versioned API root to
// handler. tokenRequests counts token endpoint hits.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int) {
	t.Helper()

	tokenRequests := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/exzact/api/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		tokenRequests++
		writeJSON(t, w, map[string]any{
			"access_token": "test-token",
			"token_type":   "bearer",
			"expires_in":   600,
		})
	})
	if handler != nil {
		mux.HandleFunc("/exzact/api/v60/", handler)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, &tokenRequests
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	cfg := &config.Config{
		Server:       serverURL,
		ClientKey:    "test-client-key",
		ClientSecret: "test-client-secret",
		ProfileID:    42,
		API:          config.APIConfig{Version: "v60", Timeout: "5s"},
	}

	api, err := New(cfg)
	require.NoError(t, err)

	return api
}

func writeJSON(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(&config.Config{Server: "mycompany"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "client_key")
}
