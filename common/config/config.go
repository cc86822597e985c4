package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v9"
)

const (
	DefaultGraphVersion = "v20.0"
	DefaultGraphBaseURL = "https://graph.facebook.com"
)

// Config holds the per-invocation settings for the page events endpoint
type Config struct {
	PageID       string `env:"FB_PAGE_ID"`
	AccessToken  string `env:"FB_PAGE_ACCESS_TOKEN"`
	GraphVersion string `env:"FB_GRAPH_VERSION" envDefault:"v20.0"`
	GraphBaseURL string `env:"FB_GRAPH_BASE_URL" envDefault:"https://graph.facebook.com"`
}

// Load reads the configuration from the process environment.
// Missing required values are reported by Validate, not here.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.PageID = strings.TrimSpace(c.PageID)
	c.AccessToken = strings.TrimSpace(c.AccessToken)
	if strings.TrimSpace(c.GraphVersion) == "" {
		c.GraphVersion = DefaultGraphVersion
	}
	if strings.TrimSpace(c.GraphBaseURL) == "" {
		c.GraphBaseURL = DefaultGraphBaseURL
	}
	c.GraphBaseURL = strings.TrimRight(c.GraphBaseURL, "/")
}

// Validate checks that the page id and access token are both present
func (c *Config) Validate() error {
	var missing []string
	if c.PageID == "" {
		missing = append(missing, "FB_PAGE_ID")
	}
	if c.AccessToken == "" {
		missing = append(missing, "FB_PAGE_ACCESS_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// EventsURL returns the Graph API events collection URL for the configured page
func (c *Config) EventsURL() string {
	return c.GraphBaseURL + "/" + url.PathEscape(c.GraphVersion) + "/" + url.PathEscape(c.PageID) + "/events"
}
