// Package config handles configuration for finchat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/diogo/finchat/internal/models"
)

// Environment variables consulted by ApplyEnv, in priority order per field
const (
	EnvAPIKey       = "FINCHAT_API_KEY"
	EnvAPIKeyVendor = "ALPHAVANTAGE_API_KEY"
	EnvBaseURL      = "FINCHAT_BASE_URL"
	EnvGlamourStyle = "GLAMOUR_STYLE"
)

// MaxHistoryMonths is the largest history window accepted from config
const MaxHistoryMonths = 120

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "dark", "light", "notty" or a glamour style name
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	// HistoryMonths is how many monthly closes the chart shows.
	// Values outside 1..MaxHistoryMonths fall back to the default of 12.
	HistoryMonths int `json:"history_months"`
	// ConcurrentFetch issues the quote and history requests in parallel.
	ConcurrentFetch bool `json:"concurrent_fetch"`
	// TimeoutSeconds bounds each HTTP request. Zero keeps the transport default.
	TimeoutSeconds  int            `json:"timeout_seconds"`
	Verbose         bool           `json:"verbose"`
	LogLevel        string         `json:"log_level,omitempty"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty"`      // TUI color theme
	KnowledgeFile   string         `json:"knowledge_file,omitempty"` // Extra YAML triggers
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		APIKey:          models.DefaultAPIKey,
		BaseURL:         models.DefaultBaseURL,
		HistoryMonths:   models.DefaultHistoryMonths,
		ConcurrentFetch: true,
		TimeoutSeconds:  0,
		Verbose:         false,
		LogLevel:        "info",
		CopyToClipboard: false,
		TUITheme:        "tokyonight",
		Markdown:        DefaultMarkdownConfig(),
	}
}

// Normalize repairs out-of-range values in place
func (c *Config) Normalize() {
	if c.HistoryMonths < 1 || c.HistoryMonths > MaxHistoryMonths {
		c.HistoryMonths = models.DefaultHistoryMonths
	}
	if c.TimeoutSeconds < 0 {
		c.TimeoutSeconds = 0
	}
	if strings.TrimSpace(c.APIKey) == "" {
		c.APIKey = models.DefaultAPIKey
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = models.DefaultBaseURL
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// ApplyEnv overrides file values with environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	} else if v := os.Getenv(EnvAPIKeyVendor); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvGlamourStyle); v != "" {
		c.Markdown.Style = v
	}
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".finchat")
	return configDir, nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the config holds the API key
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the path to the log file
func GetLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "finchat.log"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Load reads the config file and applies environment overrides.
// Flags are applied on top by the caller.
func Load() (Config, error) {
	cfg, err := LoadConfig()
	cfg.ApplyEnv()
	cfg.Normalize()
	return cfg, err
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MaskAPIKey shortens a key for display
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return key
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// AvailableLogLevels returns the accepted log_level values
func AvailableLogLevels() []string {
	return []string{
		"debug",
		"info",
		"warn",
		"error",
	}
}
