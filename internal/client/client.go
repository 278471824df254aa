// Package client wraps the iFormBuilder REST API v60: token acquisition
// plus typed operations over profiles, pages, records, option lists and
// users. Every operation is one HTTP request or a plain pagination loop;
// failures surface immediately with no retry.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/formlift-io/iform/internal/common"
	"github.com/formlift-io/iform/internal/config"
	"github.com/formlift-io/iform/internal/models"
	"github.com/formlift-io/iform/internal/sessions"
)

const (
	// defaultPageLimit is the page size for metadata listings (pages,
	// option lists, users). The API caps list responses at 100 rows.
	defaultPageLimit = 100

	// recordPageLimit is the batch size for record fetches. Records
	// allow larger pages than metadata resources.
	recordPageLimit = 1000
)

// Client is a thin typed layer over the remote REST API. It is not safe
// for concurrent use: token refresh mutates shared state.
type Client struct {
	cfg      *config.Config
	rest     *resty.Client
	sessions *sessions.Manager
	token    *models.Token
}

// Option configures a Client.
type Option func(*Client)

// WithSessionManager sets the on-disk token cache. Pass nil to keep
// tokens in memory only.
func WithSessionManager(m *sessions.Manager) Option {
	return func(c *Client) {
		c.sessions = m
	}
}

// WithTimeout overrides the HTTP timeout from config.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.rest.SetTimeout(d)
	}
}

// New creates a Client for the server named in cfg.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	rest := resty.New()

	if timeout, err := time.ParseDuration(cfg.API.Timeout); err == nil && timeout > 0 {
		rest.SetTimeout(timeout)
	}

	c := &Client{
		cfg:  cfg,
		rest: rest,
	}

	for _, opt := range opts {
		opt(c)
	}

	logrus.WithFields(logrus.Fields{
		"server": cfg.ServerHostname(),
		"api":    cfg.APIURL(),
	}).Debug("Created API client")

	return c, nil
}

// ProfileID returns the default profile from config.
func (c *Client) ProfileID() int64 {
	return c.cfg.ProfileID
}

// apiRequest returns a request builder carrying bearer auth and a request
// id, refreshing the access token first when needed.
func (c *Client) apiRequest(ctx context.Context) (*resty.Request, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}

	return c.rest.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetHeader("Accept", "application/json").
		SetHeader("X-Request-Id", uuid.NewString()), nil
}

// invoke sends one authenticated JSON request and unmarshals a 2xx body
// into out (when out is non-nil). Non-2xx becomes an *APIError.
func (c *Client) invoke(ctx context.Context, method string, url string, query map[string]string, body any, out any) error {

	restBuilder, err := c.apiRequest(ctx)
	if err != nil {
		return err
	}

	if len(query) > 0 {
		restBuilder.SetQueryParams(query)
	}

	if body != nil {
		restBuilder.SetBody(body).
			SetHeader("Content-Type", "application/json")
	}

	resp, err := common.MakeRequestFromBuilder(restBuilder, method, url)

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"url":    url,
			"method": method,
		}).WithError(err).Errorln("API request failed")
		return err
	}

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}

	return nil
}

// listAll repeats a list request, advancing offset by limit, until the
// server returns a short page. Server ordering is preserved.
func listAll[T any](ctx context.Context, c *Client, url string, query ListQuery, limit int) ([]T, error) {

	var all []T
	offset := query.Offset

	for {
		query.Limit = limit
		query.Offset = offset

		var batch []T
		if err := c.invoke(ctx, "GET", url, query.Values(), nil, &batch); err != nil {
			return nil, err
		}

		all = append(all, batch...)

		if len(batch) < limit {
			return all, nil
		}

		offset += limit
	}
}
