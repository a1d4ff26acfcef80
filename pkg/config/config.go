// Package config holds the application configuration for report generation.
package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Supported report languages.
const (
	LanguageEnglish = "en"
	LanguageGerman  = "de"
)

// Config holds the application configuration loaded from environment
// variables (INVOICE_SORTER_*) and command-line flags.
type Config struct {
	// Year is the target report year.
	Year int `koanf:"INVOICE_SORTER_YEAR"`

	// SortedDir is the root directory holding the Travel/ and Food/
	// category subdirectories.
	SortedDir string `koanf:"INVOICE_SORTER_SORTED_DIR"`

	// ReportsDir is where finished reports are placed.
	ReportsDir string `koanf:"INVOICE_SORTER_REPORTS_DIR"`

	// Language selects the report column labels ("en" or "de").
	Language string `koanf:"INVOICE_SORTER_LANGUAGE"`

	// ForceInclude keeps undated or wrong-year documents under the
	// fallback date {year}-01-01 instead of skipping them.
	ForceInclude bool `koanf:"INVOICE_SORTER_FORCE_INCLUDE"`

	// Parallel processes documents with a bounded worker pool.
	Parallel bool `koanf:"INVOICE_SORTER_PARALLEL"`

	// Workers is the worker pool size when Parallel is set.
	Workers int `koanf:"INVOICE_SORTER_WORKERS"`

	// CacheEnabled consults the inference cache before calling the model.
	CacheEnabled bool `koanf:"INVOICE_SORTER_CACHE"`

	// CachePath is the durable inference cache database file.
	CachePath string `koanf:"INVOICE_SORTER_CACHE_PATH"`

	// CalendarPath is an optional YAML file mapping dates to event labels.
	CalendarPath string `koanf:"INVOICE_SORTER_CALENDAR"`

	// Sink is the name of the persistence sink to write the report to.
	Sink string `koanf:"INVOICE_SORTER_SINK"`

	// SheetTitle and SheetID select the target spreadsheet when the
	// sheets sink is used: an ID addresses an existing sheet, a title
	// creates a new one.
	SheetTitle string `koanf:"GSHEETS_TITLE"`
	SheetID    string `koanf:"GSHEETS_ID"`

	Inference InferenceConfig

	// Postgres configuration (used by the postgres sink).
	Postgres PostgresConfig
}

// InferenceConfig selects and configures the fact-inference backend.
type InferenceConfig struct {
	// Backend is "openai" (any OpenAI-compatible endpoint, including
	// Ollama's /v1) or "gemini".
	Backend string `koanf:"INFERENCE_BACKEND"`
	BaseURL string `koanf:"OPENAI_BASE_URL"`
	APIKey  string `koanf:"OPENAI_API_KEY"`
	Model   string `koanf:"INFERENCE_MODEL"`
}

// PostgresConfig holds PostgreSQL connection configuration.
type PostgresConfig struct {
	Host     string `koanf:"POSTGRES_HOST"`
	Port     int    `koanf:"POSTGRES_PORT"`
	Database string `koanf:"POSTGRES_DB"`
	User     string `koanf:"POSTGRES_USER"`
	Password string `koanf:"POSTGRES_PASSWORD"`
	SSLMode  string `koanf:"POSTGRES_SSLMODE"`
}

// Default returns the configuration defaults applied before environment
// variables and flags.
func Default() Config {
	return Config{
		SortedDir:  "Invoices",
		ReportsDir: "Reports",
		Language:   LanguageEnglish,
		Workers:    4,
		CachePath:  "llm_cache.db",
		Sink:       "xlsx",
		Inference: InferenceConfig{
			Backend: "openai",
			BaseURL: "http://localhost:11434/v1/chat/completions",
			Model:   "mistral",
		},
	}
}

// Load returns the defaults overlaid with environment variables.
func Load() (Config, error) {
	cfg := Default()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return cfg, fmt.Errorf("loading config from environment: %w", err)
	}
	// FlatPaths resolves tags at the top level only, so the nested
	// sections are unmarshaled against the same flat key set themselves.
	unmarshal := func(target any) error {
		return k.UnmarshalWithConf("", target, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true})
	}
	if err := unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := unmarshal(&cfg.Inference); err != nil {
		return cfg, fmt.Errorf("unmarshaling inference config: %w", err)
	}
	if err := unmarshal(&cfg.Postgres); err != nil {
		return cfg, fmt.Errorf("unmarshaling postgres config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Year <= 0 {
		return fmt.Errorf("report year is required")
	}
	if c.Language != LanguageEnglish && c.Language != LanguageGerman {
		return fmt.Errorf("unsupported language %q (want %q or %q)", c.Language, LanguageEnglish, LanguageGerman)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("worker count must be positive, got %d", c.Workers)
	}
	if c.SortedDir == "" {
		return fmt.Errorf("sorted documents directory is required")
	}
	return nil
}
