package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
nas:
  host: 10.0.0.5
  username: snap
  password: $SNAPVAULT_TEST_PASSWORD
destinations:
  - name: Long-term storage
    share: photos
    path: archive
  - name: Editing SSD
    share: editing
webhook_url: https://discord.test/webhook
ignore_patterns:
  - "**/@eaDir/**"
`

const hclConfigSrc = `
nas {
  host     = "10.0.0.5"
  username = "snap"
  password = "$SNAPVAULT_TEST_PASSWORD"
}

destination "Long-term storage" {
  share = "photos"
  path  = "archive"
}

destination "Editing SSD" {
  share = "editing"
}

webhook_url = "https://discord.test/webhook"
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("SNAPVAULT_TEST_PASSWORD", "hunter2")

	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{
			name:     "yaml_config",
			filename: "config.yaml",
			content:  yamlConfig,
		},
		{
			name:     "hcl_config",
			filename: "config.hcl",
			content:  hclConfigSrc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.filename, tt.content)

			cfg, err := Load(context.Background(), path)
			require.NoError(t, err)

			assert.Equal(t, "10.0.0.5", cfg.NAS.Host)
			assert.Equal(t, 445, cfg.NAS.Port, "default port applied")
			assert.Equal(t, "hunter2", cfg.NAS.Password, "env var expanded")
			require.Len(t, cfg.Destinations, 2)
			assert.Equal(t, "Long-term storage", cfg.Destinations[0].Name)
			assert.Equal(t, "photos", cfg.Destinations[0].Share)
			assert.Equal(t, "archive", cfg.Destinations[0].Path)
			assert.Equal(t, "Editing SSD", cfg.Destinations[1].Name)
			assert.Equal(t, "https://discord.test/webhook", cfg.WebhookURL)
			assert.Equal(t, "logs", cfg.LogDir, "default log dir applied")
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantErr  string
	}{
		{
			name:     "unknown_extension",
			filename: "config.toml",
			content:  "whatever",
			wantErr:  "no parser found",
		},
		{
			name:     "missing_host",
			filename: "config.yaml",
			content:  "nas:\n  username: u\n  password: p\ndestinations:\n  - name: a\n    share: s\n",
			wantErr:  "nas.host is required",
		},
		{
			name:     "no_destinations",
			filename: "config.yaml",
			content:  "nas:\n  host: h\n  username: u\n  password: p\n",
			wantErr:  "at least one destination",
		},
		{
			name:     "destination_missing_share",
			filename: "config.yaml",
			content:  "nas:\n  host: h\n  username: u\n  password: p\ndestinations:\n  - name: a\n",
			wantErr:  "share is required",
		},
		{
			name:     "unknown_yaml_field",
			filename: "config.yaml",
			content:  "bogus: true\n",
			wantErr:  "parsing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.filename, tt.content)

			_, err := Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSelectDestinations(t *testing.T) {
	cfg := &Config{
		Destinations: []Destination{
			{Name: "Long-term storage", Share: "photos"},
			{Name: "Editing SSD", Share: "editing"},
		},
	}

	assert.Len(t, cfg.SelectDestinations(""), 2)
	assert.Len(t, cfg.SelectDestinations("all"), 2)

	got := cfg.SelectDestinations("editing ssd")
	require.Len(t, got, 1)
	assert.Equal(t, "Editing SSD", got[0].Name)

	assert.Empty(t, cfg.SelectDestinations("nope"))
}

func TestShareNames(t *testing.T) {
	dests := []Destination{
		{Name: "a", Share: "photos"},
		{Name: "b", Share: "editing"},
		{Name: "c", Share: "photos"},
	}
	assert.Equal(t, []string{"photos", "editing"}, ShareNames(dests))
}
