package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlift-io/iform/internal/models"
	"github.com/formlift-io/iform/internal/sessions"
)

func TestRequestTokenSendsSignedAssertion(t *testing.T) {

	var grantType, assertion string

	mux := http.NewServeMux()
	mux.HandleFunc("/exzact/api/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		grantType = r.PostFormValue("grant_type")
		assertion = r.PostFormValue("assertion")
		writeJSON(t, w, map[string]any{
			"access_token": "issued-token",
			"token_type":   "bearer",
			"expires_in":   600,
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	api := newTestClient(t, server.URL)

	token, err := api.RequestToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "issued-token", token.AccessToken)
	assert.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", grantType)

	// The assertion must verify against the client secret and carry the
	// client key and token URL claims
	parsed, err := jwt.Parse(assertion, func(token *jwt.Token) (any, error) {
		return []byte("test-client-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "test-client-key", claims["iss"])
	assert.Equal(t, server.URL+"/exzact/api/oauth/token", claims["aud"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), exp.Time, time.Minute)
}

func TestRequestTokenExpiryFromExpiresIn(t *testing.T) {
	server, _ := newTestServer(t, nil)

	api := newTestClient(t, server.URL)

	token, err := api.RequestToken(context.Background())
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(600*time.Second), token.Expiry, 5*time.Second)
	assert.False(t, token.IsExpired())
}

func TestTokenIsCachedAcrossCalls(t *testing.T) {
	server, tokenRequests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []any{})
	})

	api := newTestClient(t, server.URL)

	ctx := context.Background()

	_, err := api.ListPages(ctx, 42)
	require.NoError(t, err)

	_, err = api.ListUsers(ctx, 42)
	require.NoError(t, err)

	assert.Equal(t, 1, *tokenRequests, "second call should reuse the cached token")
}

func TestTokenRefreshedWhenNearExpiry(t *testing.T) {
	server, tokenRequests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []any{})
	})

	api := newTestClient(t, server.URL)

	// Seed a token that is still valid but inside the refresh window
	api.token = &models.Token{
		AccessToken: "stale-token",
		TokenType:   "bearer",
		Expiry:      time.Now().Add(10 * time.Second),
	}

	_, err := api.ListPages(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 1, *tokenRequests, "token inside refresh window should be replaced")
}

func TestTokenPersistedThroughSessionManager(t *testing.T) {
	restore := sessions.SetSessionDir(t.TempDir())
	defer restore()

	server, tokenRequests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []any{})
	})

	manager := &sessions.Manager{Servers: make(map[string]sessions.ServerSession)}

	api := newTestClient(t, server.URL)
	WithSessionManager(manager)(api)

	_, err := api.ListPages(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, 1, *tokenRequests)

	// A second client sharing the cache should not hit the token endpoint
	second := newTestClient(t, server.URL)
	WithSessionManager(manager)(second)

	_, err = second.ListPages(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 1, *tokenRequests)
}

func TestTokenRequestRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/exzact/api/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_message": "invalid assertion"}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	api := newTestClient(t, server.URL)

	_, err := api.RequestToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid assertion")
}
