package domain

import (
	"bytes"
	_ "embed"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.toml"

// Defaults.
const (
	DefaultTimeout          = 10 * time.Second
	DefaultRetries          = 3
	DefaultGoalMinutes      = 120
	DefaultBreakGoalMinutes = 30
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings   []string         `toml:"-"`
	API        APIConfig        `toml:"api"`
	Categories CategoriesConfig `toml:"categories"`
	Log        LogConfig        `toml:"log"`
	State      StateConfig      `toml:"state"`
	Goals      GoalsConfig      `toml:"goals"`
}

// APIConfig holds backend settings from the [api] section.
type APIConfig struct {
	BaseURL      string        `toml:"base_url,omitempty"`      // Backend root, e.g. https://pm.example.com/api
	Token        string        `toml:"token,omitempty"`         // Bearer token (WORKLOG_TOKEN overrides)
	Timeout      time.Duration `toml:"timeout,omitempty"`       // Per-request timeout
	Retries      int           `toml:"retries,omitempty"`       // Retries for transient failures
	BatchReorder bool          `toml:"batch_reorder,omitempty"` // Persist board moves in one call
}

// GoalsConfig holds default goal minutes from the [goals] section.
type GoalsConfig struct {
	DefaultMinutes int `toml:"default_minutes,omitempty"`
	BreakMinutes   int `toml:"break_minutes,omitempty"`
}

// CategoriesConfig holds category semantics from the [categories] section.
type CategoriesConfig struct {
	BreakName string `toml:"break_name,omitempty"` // Additional category name treated as break time
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// StateConfig holds the client-local state location from the [state] section.
type StateConfig struct {
	Dir string `toml:"dir,omitempty"` // Directory for state.json and logs
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Timeout: DefaultTimeout,
			Retries: DefaultRetries,
		},
		Goals: GoalsConfig{
			DefaultMinutes: DefaultGoalMinutes,
			BreakMinutes:   DefaultBreakGoalMinutes,
		},
		Categories: CategoriesConfig{
			BreakName: BreakCategoryName,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// RenderConfigTemplate renders the commented config file for cfg.
func RenderConfigTemplate(cfg *Config) string {
	tmpl := template.Must(template.New("config").Parse(configTemplateContent))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return configTemplateContent
	}
	return buf.String()
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and initializes the global config file.
type ConfigManager interface {
	GlobalConfigInfo() ConfigInfo
	InitGlobalConfig(cfg *Config) (string, error)
}
