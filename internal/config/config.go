package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/LFroesch/burrow/internal/logger"
)

// Config holds all burrow configuration
type Config struct {
	Editor           string   `mapstructure:"editor"`
	ShowHidden       bool     `mapstructure:"show_hidden"`
	PreviewEnabled   bool     `mapstructure:"preview_enabled"`
	SyntaxHighlight  bool     `mapstructure:"syntax_highlight"`
	DefaultDirectory string   `mapstructure:"default_directory"`
	SkipDirectories  []string `mapstructure:"skip_directories"` // glob patterns, e.g. "Python*"
	MaxFilesScanned  int      `mapstructure:"max_files_scanned"`
	MaxDepth         int      `mapstructure:"max_depth"`
	Watch            bool     `mapstructure:"watch"`
	PanelWidthRatio  float64  `mapstructure:"panel_width_ratio"`

	path string
}

// Setting is one key of the effective configuration, formatted for display.
type Setting struct {
	Key   string
	Value string
}

const (
	defaultMaxFilesScanned = 200000
	defaultMaxDepth        = 12
	defaultPanelWidthRatio = 0.4
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("editor", "")
	v.SetDefault("show_hidden", false)
	v.SetDefault("preview_enabled", true)
	v.SetDefault("syntax_highlight", true)
	v.SetDefault("default_directory", "")
	v.SetDefault("skip_directories", getDefaultSkipDirectories())
	v.SetDefault("max_files_scanned", defaultMaxFilesScanned)
	v.SetDefault("max_depth", defaultMaxDepth)
	v.SetDefault("watch", true)
	v.SetDefault("panel_width_ratio", defaultPanelWidthRatio)
}

// DefaultPath returns ~/.config/burrow/config.toml
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "burrow", "config.toml"), nil
}

// NewViper prepares a viper instance for path (DefaultPath when empty) with
// defaults and BURROW_* environment overrides. Callers may bind flags to
// it before calling Load.
func NewViper(path string) *viper.Viper {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			logger.Error("Failed to resolve config path: %v", err)
			p = "burrow.toml"
		}
		path = p
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("BURROW")
	v.AutomaticEnv()
	return v
}

// Load reads the config file behind v. A missing file is created with the
// defaults; an unreadable one is reported and the defaults are used.
func Load(v *viper.Viper) *Config {
	path := v.ConfigFileUsed()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			if err := writeDefaults(path); err != nil {
				logger.Warn("Failed to save default config: %v", err)
			} else {
				logger.Info("Wrote default config to %s", path)
			}
		} else {
			logger.Warn("Failed to parse config file %s: %v, using defaults", path, err)
		}
	}

	config := &Config{path: path}
	if err := v.Unmarshal(config); err != nil {
		logger.Warn("Failed to decode config %s: %v, using defaults", path, err)
		config = defaultConfig()
		config.path = path
	}
	config.validate()
	return config
}

func defaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		logger.Error("Failed to decode default config: %v", err)
	}
	return config
}

// writeDefaults uses a fresh viper so flag and env overrides never end up
// in the file.
func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")
	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// validate applies defaults and bounds to numeric settings
func (c *Config) validate() {
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaultMaxDepth
	} else if c.MaxDepth > 64 {
		logger.Warn("MaxDepth too high (%d), using maximum of 64", c.MaxDepth)
		c.MaxDepth = 64
	}

	if c.MaxFilesScanned <= 0 {
		c.MaxFilesScanned = defaultMaxFilesScanned
	} else if c.MaxFilesScanned < 1000 {
		logger.Warn("MaxFilesScanned too low (%d), using minimum of 1000", c.MaxFilesScanned)
		c.MaxFilesScanned = 1000
	} else if c.MaxFilesScanned > 2000000 {
		logger.Warn("MaxFilesScanned too high (%d), using maximum of 2000000", c.MaxFilesScanned)
		c.MaxFilesScanned = 2000000
	}

	if c.PanelWidthRatio <= 0 {
		c.PanelWidthRatio = defaultPanelWidthRatio
	} else if c.PanelWidthRatio < 0.2 {
		logger.Warn("PanelWidthRatio too low (%.2f), using minimum of 0.2", c.PanelWidthRatio)
		c.PanelWidthRatio = 0.2
	} else if c.PanelWidthRatio > 0.8 {
		logger.Warn("PanelWidthRatio too high (%.2f), using maximum of 0.8", c.PanelWidthRatio)
		c.PanelWidthRatio = 0.8
	}

	if c.DefaultDirectory != "" {
		expanded, err := homedir.Expand(c.DefaultDirectory)
		if err != nil {
			logger.Warn("Cannot expand default_directory %q: %v", c.DefaultDirectory, err)
			c.DefaultDirectory = ""
		} else {
			c.DefaultDirectory = expanded
		}
	}
}

// Path is the config file this configuration was read from.
func (c *Config) Path() string {
	return c.path
}

// Settings lists the effective configuration in file order.
func (c *Config) Settings() []Setting {
	return []Setting{
		{"editor", c.Editor},
		{"show_hidden", strconv.FormatBool(c.ShowHidden)},
		{"preview_enabled", strconv.FormatBool(c.PreviewEnabled)},
		{"syntax_highlight", strconv.FormatBool(c.SyntaxHighlight)},
		{"default_directory", c.DefaultDirectory},
		{"skip_directories", strings.Join(c.SkipDirectories, ", ")},
		{"max_files_scanned", strconv.Itoa(c.MaxFilesScanned)},
		{"max_depth", strconv.Itoa(c.MaxDepth)},
		{"watch", strconv.FormatBool(c.Watch)},
		{"panel_width_ratio", strconv.FormatFloat(c.PanelWidthRatio, 'f', 2, 64)},
	}
}

// getDefaultSkipDirectories returns patterns skipped by fuzzy scans on top
// of the built-in list. They are user-editable.
func getDefaultSkipDirectories() []string {
	return []string{
		// Python installations (Python27, Python38, Python312, etc.)
		"Python*",
		// Browser caches and data
		"Google/Chrome/User Data",
		"Mozilla/Firefox/Profiles",
		// Development tools
		"Android/Sdk",
		".venv",
		// System/temp directories
		"System Volume Information",
	}
}
