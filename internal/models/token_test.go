package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenExpiresWithin(t *testing.T) {
	token := &Token{
		AccessToken: "abc",
		Expiry:      time.Now().Add(5 * time.Minute),
	}

	assert.False(t, token.IsExpired())
	assert.False(t, token.ExpiresWithin(time.Minute))
	assert.True(t, token.ExpiresWithin(10*time.Minute))
}

func TestTokenExpiredStates(t *testing.T) {
	expired := &Token{AccessToken: "abc", Expiry: time.Now().Add(-time.Minute)}
	assert.True(t, expired.IsExpired())

	// A nil or empty token always counts as expired
	var missing *Token
	assert.True(t, missing.IsExpired())
	assert.True(t, (&Token{}).IsExpired())
}

func TestTokenResponseComputesAbsoluteExpiry(t *testing.T) {
	response := &TokenResponse{
		AccessToken: "abc",
		TokenType:   "bearer",
		ExpiresIn:   600,
	}

	token := response.Token()
	assert.Equal(t, "abc", token.AccessToken)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), token.Expiry, 5*time.Second)
}
