// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/worklog/internal/domain"
)

// TokenEnv overrides api.token when set.
const TokenEnv = "WORKLOG_TOKEN"

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	globalConfDir string // Path to global config directory (e.g., ~/.config/worklog)
	explicitPath  string // File given by --config; must exist when set
	getenv        func(string) string
}

// NewLoader creates a new Loader. explicitPath may be empty.
func NewLoader(explicitPath string) *Loader {
	return &Loader{
		globalConfDir: defaultGlobalConfigDir(),
		explicitPath:  explicitPath,
		getenv:        os.Getenv,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(explicitPath, globalConfDir string, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{
		globalConfDir: globalConfDir,
		explicitPath:  explicitPath,
		getenv:        getenv,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (defaults <- global <- explicit file).
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.loadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var explicit *fileConfig
	if l.explicitPath != "" {
		explicit, err = loadFile(l.explicitPath)
		if err != nil {
			return nil, err
		}
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if explicit != nil {
		base = mergeConfigs(base, explicit)
	}

	if token := l.getenv(TokenEnv); token != "" {
		base.API.Token = token
	}

	return base, nil
}

// loadGlobal reads the global config file.
func (l *Loader) loadGlobal() (*fileConfig, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// fileConfig is one decoded file plus the "section.key" names it sets,
// so a merge can tell an explicit zero value from an absent key.
type fileConfig struct {
	cfg *domain.Config
	set map[string]bool
}

// loadFile loads a configuration from a file.
func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg, set, err := convertRawToDomainConfig(raw)
	if err != nil {
		return nil, err
	}
	return &fileConfig{cfg: cfg, set: set}, nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects
// warnings. It also returns the "section.key" names that were assigned.
func convertRawToDomainConfig(raw map[string]any) (*domain.Config, map[string]bool, error) {
	res := &domain.Config{}
	set := make(map[string]bool)
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "api":
			for k, v := range m {
				switch k {
				case "base_url":
					if s, ok := v.(string); ok {
						res.API.BaseURL = s
						set[section+"."+k] = true
					}
				case "token":
					if s, ok := v.(string); ok {
						res.API.Token = s
						set[section+"."+k] = true
					}
				case "timeout":
					d, err := parseDuration(v)
					if err != nil {
						return nil, nil, fmt.Errorf("[api] timeout: %w", err)
					}
					res.API.Timeout = d
					set[section+"."+k] = true
				case "retries":
					if n, ok := v.(int64); ok {
						res.API.Retries = int(n)
						set[section+"."+k] = true
					}
				case "batch_reorder":
					if b, ok := v.(bool); ok {
						res.API.BatchReorder = b
						set[section+"."+k] = true
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [api]: %s", k))
				}
			}
		case "goals":
			for k, v := range m {
				switch k {
				case "default_minutes":
					if n, ok := v.(int64); ok {
						res.Goals.DefaultMinutes = int(n)
						set[section+"."+k] = true
					}
				case "break_minutes":
					if n, ok := v.(int64); ok {
						res.Goals.BreakMinutes = int(n)
						set[section+"."+k] = true
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [goals]: %s", k))
				}
			}
		case "categories":
			for k, v := range m {
				switch k {
				case "break_name":
					if s, ok := v.(string); ok {
						res.Categories.BreakName = s
						set[section+"."+k] = true
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [categories]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
						set[section+"."+k] = true
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "state":
			for k, v := range m {
				switch k {
				case "dir":
					if s, ok := v.(string); ok {
						res.State.Dir = s
						set[section+"."+k] = true
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [state]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res, set, nil
}

// parseDuration accepts a Go duration string ("15s") or whole seconds.
func parseDuration(v any) (time.Duration, error) {
	switch x := v.(type) {
	case string:
		return time.ParseDuration(x)
	case int64:
		return time.Duration(x) * time.Second, nil
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}
}

// mergeConfigs merges a file over base. Every key the file sets wins,
// including zero values such as retries = 0 or batch_reorder = false.
func mergeConfigs(base *domain.Config, file *fileConfig) *domain.Config {
	result := *base
	override, set := file.cfg, file.set
	if len(override.Warnings) > 0 {
		result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)
	}

	if set["api.base_url"] {
		result.API.BaseURL = override.API.BaseURL
	}
	if set["api.token"] {
		result.API.Token = override.API.Token
	}
	if set["api.timeout"] {
		result.API.Timeout = override.API.Timeout
	}
	if set["api.retries"] {
		result.API.Retries = override.API.Retries
	}
	if set["api.batch_reorder"] {
		result.API.BatchReorder = override.API.BatchReorder
	}
	if set["goals.default_minutes"] {
		result.Goals.DefaultMinutes = override.Goals.DefaultMinutes
	}
	if set["goals.break_minutes"] {
		result.Goals.BreakMinutes = override.Goals.BreakMinutes
	}
	if set["categories.break_name"] {
		result.Categories.BreakName = override.Categories.BreakName
	}
	if set["log.level"] {
		result.Log.Level = override.Log.Level
	}
	if set["state.dir"] {
		result.State.Dir = override.State.Dir
	}

	return &result
}
