package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("INVOICE_SORTER_YEAR", "2024")
	t.Setenv("INVOICE_SORTER_LANGUAGE", "de")
	t.Setenv("INVOICE_SORTER_PARALLEL", "true")
	t.Setenv("INFERENCE_MODEL", "llama3")
	t.Setenv("OPENAI_BASE_URL", "https://api.example.com/v1/chat/completions")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "5433")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2024, cfg.Year)
	assert.Equal(t, LanguageGerman, cfg.Language)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, "llama3", cfg.Inference.Model)
	assert.Equal(t, "https://api.example.com/v1/chat/completions", cfg.Inference.BaseURL)
	assert.Equal(t, "openai", cfg.Inference.Backend, "untouched nested values keep their defaults")
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 5433, cfg.Postgres.Port)
	assert.Equal(t, "Invoices", cfg.SortedDir, "untouched values keep their defaults")
	assert.Equal(t, "xlsx", cfg.Sink)
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Year = 2024

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing year", func(c *Config) { c.Year = 0 }, "report year"},
		{"bad language", func(c *Config) { c.Language = "fr" }, "unsupported language"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "worker count"},
		{"missing sorted dir", func(c *Config) { c.SortedDir = "" }, "sorted documents directory"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}
