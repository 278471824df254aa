package models

import "time"

// Token is a bearer credential issued by the platform's OAuth endpoint.
// The wire response carries a relative expires_in; Expiry is the absolute
// deadline computed at acquisition time.
type Token struct {
	AccessToken string    `json:"access_token" yaml:"access_token"`
	TokenType   string    `json:"token_type" yaml:"token_type"`
	Expiry      time.Time `json:"expiry" yaml:"expiry"`
}

func (t *Token) IsExpired() bool {
	return t.ExpiresWithin(0)
}

// ExpiresWithin reports whether the token will expire inside the given
// window. Used to refresh slightly ahead of the deadline.
func (t *Token) ExpiresWithin(window time.Duration) bool {
	if t == nil || len(t.AccessToken) == 0 {
		return true
	}
	return time.Now().Add(window).After(t.Expiry)
}

// TokenResponse is the raw token endpoint payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Token converts the wire payload into a Token with an absolute expiry.
func (r *TokenResponse) Token() *Token {
	return &Token{
		AccessToken: r.AccessToken,
		TokenType:   r.TokenType,
		Expiry:      time.Now().Add(time.Duration(r.ExpiresIn) * time.Second),
	}
}
