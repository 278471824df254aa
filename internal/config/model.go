package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Config holds everything the client needs to talk to the platform:
// which server to call, the OAuth client credentials and the default
// profile, plus local logging and sync-store settings.
type Config struct {
	Server       string        `mapstructure:"server"`
	ClientKey    string        `mapstructure:"client_key"`
	ClientSecret string        `mapstructure:"client_secret"`
	ProfileID    int64         `mapstructure:"profile_id"`
	API          APIConfig     `mapstructure:"api"`
	Sync         SyncConfig    `mapstructure:"sync"`
	Logging      LoggingConfig `mapstructure:"logging"`
}

type APIConfig struct {
	Version string `mapstructure:"version"`
	Timeout string `mapstructure:"timeout"`
}

type SyncConfig struct {
	Path     string `mapstructure:"path"`
	Interval string `mapstructure:"interval"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Validate checks the fields every API command depends on.
func (c *Config) Validate() error {
	if len(c.Server) == 0 {
		return fmt.Errorf("server is required (e.g. 'mycompany' for mycompany.iformbuilder.com)")
	}
	if len(c.ClientKey) == 0 {
		return fmt.Errorf("client_key is required")
	}
	if len(c.ClientSecret) == 0 {
		return fmt.Errorf("client_secret is required")
	}
	return nil
}

// BaseURL returns the API root for the configured server. A bare server
// name expands to the hosted domain; a full URL is used as-is so tests and
// self-hosted deployments can point elsewhere.
func (c *Config) BaseURL() string {
	server := strings.TrimSuffix(c.Server, "/")
	if strings.HasPrefix(server, "http://") || strings.HasPrefix(server, "https://") {
		return server + "/exzact/api"
	}
	return fmt.Sprintf("https://%s.iformbuilder.com/exzact/api", server)
}

// TokenURL returns the OAuth token endpoint for the configured server.
func (c *Config) TokenURL() string {
	return c.BaseURL() + "/oauth/token"
}

// APIURL returns the versioned API root.
func (c *Config) APIURL() string {
	version := c.API.Version
	if len(version) == 0 {
		version = "v60"
	}
	return fmt.Sprintf("%s/%s", c.BaseURL(), version)
}

// ServerHostname returns the hostname the config points at, used to key
// the on-disk token cache.
func (c *Config) ServerHostname() string {
	parsed, err := url.Parse(c.BaseURL())
	if err != nil || len(parsed.Hostname()) == 0 {
		return c.Server
	}
	return parsed.Hostname()
}
