package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads all values from environment", func(t *testing.T) {
		t.Setenv("FB_PAGE_ID", "12345")
		t.Setenv("FB_PAGE_ACCESS_TOKEN", "secret")
		t.Setenv("FB_GRAPH_VERSION", "v21.0")
		t.Setenv("FB_GRAPH_BASE_URL", "http://localhost:9999/")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "12345", cfg.PageID)
		assert.Equal(t, "secret", cfg.AccessToken)
		assert.Equal(t, "v21.0", cfg.GraphVersion)
		assert.Equal(t, "http://localhost:9999", cfg.GraphBaseURL)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("FB_PAGE_ID", "12345")
		t.Setenv("FB_PAGE_ACCESS_TOKEN", "secret")
		t.Setenv("FB_GRAPH_VERSION", "")
		t.Setenv("FB_GRAPH_BASE_URL", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, DefaultGraphVersion, cfg.GraphVersion)
		assert.Equal(t, DefaultGraphBaseURL, cfg.GraphBaseURL)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		pageID      string
		token       string
		shouldError bool
		errorMsg    string
	}{
		{"Both present", "1", "t", false, ""},
		{"Missing page id", "", "t", true, "FB_PAGE_ID"},
		{"Missing token", "1", "", true, "FB_PAGE_ACCESS_TOKEN"},
		{"Missing both", "", "", true, "FB_PAGE_ID, FB_PAGE_ACCESS_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{PageID: tt.pageID, AccessToken: tt.token}
			err := cfg.Validate()
			if !tt.shouldError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestLoad_BlankRequiredValuesFailValidation(t *testing.T) {
	t.Setenv("FB_PAGE_ID", "   ")
	t.Setenv("FB_PAGE_ACCESS_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestEventsURL(t *testing.T) {
	cfg := &Config{
		PageID:       "12345",
		GraphVersion: "v20.0",
		GraphBaseURL: "https://graph.facebook.com",
	}
	assert.Equal(t, "https://graph.facebook.com/v20.0/12345/events", cfg.EventsURL())

	cfg.PageID = "a/b"
	assert.Equal(t, "https://graph.facebook.com/v20.0/a%2Fb/events", cfg.EventsURL())
}
