// Package iform is the public entry point for using the client as a
// library. It re-exports the internal client and models so consumers do
// not reach into internal packages.
package iform

import (
	"github.com/formlift-io/iform/internal/client"
	"github.com/formlift-io/iform/internal/config"
	"github.com/formlift-io/iform/internal/models"
	"github.com/formlift-io/iform/internal/sessions"
)

// Client wraps the iFormBuilder REST API.
type Client = client.Client

// ClientOption configures a Client.
type ClientOption = client.Option

// ListQuery selects fields and windows for list operations.
type ListQuery = client.ListQuery

// APIError is a non-2xx response from the platform.
type APIError = client.APIError

// ErrNotFound is returned by the Find helpers when no resource matches.
var ErrNotFound = client.ErrNotFound

// Re-exported domain models.
type (
	Token       = models.Token
	Profile     = models.Profile
	Page        = models.Page
	PageElement = models.PageElement
	Record      = models.Record
	OptionList  = models.OptionList
	Option      = models.Option
	User        = models.User
)

// Config holds server and credential settings.
type Config = config.Config

// WithSessionManager attaches an on-disk token cache.
var WithSessionManager = client.WithSessionManager

// WithTimeout overrides the HTTP timeout.
var WithTimeout = client.WithTimeout

// New creates a Client for the given server and credentials.
func New(server, clientKey, clientSecret string, opts ...ClientOption) (*Client, error) {
	cfg := &Config{
		Server:       server,
		ClientKey:    clientKey,
		ClientSecret: clientSecret,
	}
	return client.New(cfg, opts...)
}

// NewFromConfig creates a Client from a full Config.
func NewFromConfig(cfg *Config, opts ...ClientOption) (*Client, error) {
	return client.New(cfg, opts...)
}

// NewSessionManager returns the shared on-disk token cache.
func NewSessionManager() *sessions.Manager {
	return sessions.GetSessionManager()
}
