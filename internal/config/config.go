package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration.
type Config struct {
	// Principal scopes the persisted board. Switching principal starts from
	// a separately persisted collection; collections are never mixed.
	Principal string `json:"principal,omitempty"`

	// GeminiModel is the classification model name
	GeminiModel string `json:"gemini_model,omitempty"`

	// GeminiBaseURL overrides the Gemini API endpoint (tests, proxies)
	GeminiBaseURL string `json:"gemini_base_url,omitempty"`

	// DumpMaxChars is the maximum character count for a single brain dump
	DumpMaxChars int `json:"dump_max_chars,omitempty"`

	// WebBind and WebPort configure the web UI listener
	WebBind string `json:"web_bind,omitempty"`
	WebPort int    `json:"web_port,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized.
	// 0 means use sql.DB default. Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// Env holds settings sourced from the environment rather than config.json.
// Secrets live here so they never end up in a dotfile.
type Env struct {
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string `envconfig:"GEMINI_MODEL"`
	GeminiBaseURL string `envconfig:"GEMINI_URL"`
	Principal     string `envconfig:"PRINCIPAL"`
}

// LoadEnv reads FLOWDECK_* environment variables.
func LoadEnv() (*Env, error) {
	env := &Env{}
	if err := envconfig.Process("flowdeck", env); err != nil {
		return nil, err
	}
	return env, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Principal:    "local",
		GeminiModel:  "gemini-3-flash-preview",
		DumpMaxChars: 8000,
		WebBind:      "127.0.0.1",
		WebPort:      8750,
	}
}

// Load loads configuration from baseDir/config.json, applies defaults, and
// overlays FLOWDECK_* environment variables last.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.flowdeck.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}

	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	return ApplyEnv(cfg, env), nil
}

// ApplyEnv overlays environment values onto cfg. Env wins when set.
func ApplyEnv(cfg *Config, env *Env) *Config {
	if env == nil {
		return cfg
	}
	if v := strings.TrimSpace(env.GeminiModel); v != "" {
		cfg.GeminiModel = v
	}
	if v := strings.TrimSpace(env.GeminiBaseURL); v != "" {
		cfg.GeminiBaseURL = v
	}
	if v := strings.TrimSpace(env.Principal); v != "" {
		cfg.Principal = v
	}
	return cfg
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.Principal = overlay.Principal
	if result.Principal == "" {
		result.Principal = base.Principal
	}

	result.GeminiModel = overlay.GeminiModel
	if result.GeminiModel == "" {
		result.GeminiModel = base.GeminiModel
	}

	result.GeminiBaseURL = overlay.GeminiBaseURL
	if result.GeminiBaseURL == "" {
		result.GeminiBaseURL = base.GeminiBaseURL
	}

	result.DumpMaxChars = overlay.DumpMaxChars
	if result.DumpMaxChars == 0 {
		result.DumpMaxChars = base.DumpMaxChars
	}

	result.WebBind = overlay.WebBind
	if result.WebBind == "" {
		result.WebBind = base.WebBind
	}

	result.WebPort = overlay.WebPort
	if result.WebPort == 0 {
		result.WebPort = base.WebPort
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
