package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/formlift-io/iform/internal/common"
	"github.com/formlift-io/iform/internal/models"
)

// The platform issues short-lived tokens against a JWT bearer assertion
// signed with the client secret, per RFC 7523.
const jwtBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// assertionLifetime bounds the exp claim on the signed assertion. The
// server rejects assertions valid for longer than ten minutes.
const assertionLifetime = 10 * time.Minute

// refreshWindow is how close to expiry a cached token may get before a
// fresh one is requested.
const refreshWindow = time.Minute

// signAssertion builds and signs the HS256 assertion presented to the
// token endpoint.
func (c *Client) signAssertion(now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss": c.cfg.ClientKey,
		"aud": c.cfg.TokenURL(),
		"iat": now.Unix(),
		"exp": now.Add(assertionLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(c.cfg.ClientSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token assertion: %w", err)
	}

	return signed, nil
}

// RequestToken always performs a token request, bypassing any cache.
func (c *Client) RequestToken(ctx context.Context) (*models.Token, error) {

	assertion, err := c.signAssertion(time.Now())
	if err != nil {
		return nil, err
	}

	tokenURL := c.cfg.TokenURL()

	resp, err := common.MakeRequestFromBuilder(
		c.rest.R().
			SetContext(ctx).
			SetHeader("Accept", "application/json").
			SetFormData(map[string]string{
				"grant_type": jwtBearerGrantType,
				"assertion":  assertion,
			}),
		"POST", tokenURL)

	if err != nil {
		logrus.WithField("url", tokenURL).WithError(err).Errorln("Token request failed")
		return nil, err
	}

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("token request rejected: %w", err)
	}

	var tokenResponse models.TokenResponse
	if err := json.Unmarshal(resp.Body(), &tokenResponse); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	if len(tokenResponse.AccessToken) == 0 {
		return nil, fmt.Errorf("token response missing access_token")
	}

	token := tokenResponse.Token()

	logrus.WithFields(logrus.Fields{
		"server": c.cfg.ServerHostname(),
		"expiry": token.Expiry,
	}).Debug("Acquired access token")

	return token, nil
}

// Token returns a valid access token, reusing the in-memory or on-disk
// cached one and requesting a fresh token when less than a minute of
// validity remains.
func (c *Client) Token(ctx context.Context) (*models.Token, error) {

	if c.token != nil && !c.token.ExpiresWithin(refreshWindow) {
		return c.token, nil
	}

	server := c.cfg.ServerHostname()

	if c.sessions != nil {
		if cached, err := c.sessions.GetToken(server); err == nil && !cached.ExpiresWithin(refreshWindow) {
			c.token = cached
			return cached, nil
		}
	}

	token, err := c.RequestToken(ctx)
	if err != nil {
		return nil, err
	}

	c.token = token

	if c.sessions != nil {
		if err := c.sessions.SetToken(server, token); err != nil {
			logrus.WithError(err).Warn("Failed to persist access token")
		}
	}

	return token, nil
}

// OAuth2Token exposes the current token as a golang.org/x/oauth2 token so
// the client can plug into libraries that expect one.
func (c *Client) OAuth2Token(ctx context.Context) (*oauth2.Token, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Expiry:      token.Expiry,
	}, nil
}

// TokenSource returns an oauth2.TokenSource backed by this client.
func (c *Client) TokenSource(ctx context.Context) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, tokenSourceFunc(func() (*oauth2.Token, error) {
		return c.OAuth2Token(ctx)
	}))
}

type tokenSourceFunc func() (*oauth2.Token, error)

func (f tokenSourceFunc) Token() (*oauth2.Token, error) {
	return f()
}
