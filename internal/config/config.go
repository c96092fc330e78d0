// Package config loads PatternFlow settings from YAML with PATTERNFLOW_*
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"patternflow/internal/catalog"
	"patternflow/internal/logging"
)

// EnvPrefix marks environment overrides. The first underscore after the
// prefix separates the section: PATTERNFLOW_UI_THEME sets ui.theme.
const EnvPrefix = "PATTERNFLOW_"

// Config holds all PatternFlow configuration.
type Config struct {
	UI        UIConfig        `yaml:"ui" koanf:"ui"`
	Diagram   DiagramConfig   `yaml:"diagram" koanf:"diagram"`
	Highlight HighlightConfig `yaml:"highlight" koanf:"highlight"`
	Site      SiteConfig      `yaml:"site" koanf:"site"`
	Logging   LoggingConfig   `yaml:"logging" koanf:"logging"`
}

// UIConfig configures the interactive browser.
type UIConfig struct {
	Theme           string `yaml:"theme" koanf:"theme"` // auto, light, dark
	DefaultPattern  string `yaml:"default_pattern" koanf:"default_pattern"`
	DefaultLanguage string `yaml:"default_language" koanf:"default_language"`
	CopyAck         string `yaml:"copy_ack" koanf:"copy_ack"`
	Mouse           bool   `yaml:"mouse" koanf:"mouse"`
	SidebarWidth    int    `yaml:"sidebar_width" koanf:"sidebar_width"`
	Resume          bool   `yaml:"resume" koanf:"resume"` // reopen the last viewed pattern
}

// DiagramConfig configures the class diagram renderer.
type DiagramConfig struct {
	ASCII       bool `yaml:"ascii" koanf:"ascii"`
	MaxBoxWidth int  `yaml:"max_box_width" koanf:"max_box_width"`
}

// HighlightConfig picks chroma styles per theme.
type HighlightConfig struct {
	LightStyle string `yaml:"style_light" koanf:"style_light"`
	DarkStyle  string `yaml:"style_dark" koanf:"style_dark"`
	Formatter  string `yaml:"formatter" koanf:"formatter"`
}

// SiteConfig configures the static HTML export.
type SiteConfig struct {
	OutputDir   string `yaml:"output_dir" koanf:"output_dir"`
	Title       string `yaml:"title" koanf:"title"`
	MermaidURL  string `yaml:"mermaid_url" koanf:"mermaid_url"`
	Concurrency int    `yaml:"concurrency" koanf:"concurrency"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" koanf:"level"`           // debug, info, warn, error
	DebugMode  bool            `yaml:"debug_mode" koanf:"debug_mode"` // Master toggle - false = no logging
	Dir        string          `yaml:"dir" koanf:"dir"`
	JSONFormat bool            `yaml:"json_format" koanf:"json_format"`
	Categories map[string]bool `yaml:"categories,omitempty" koanf:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme:        "auto",
			CopyAck:      "2s",
			Mouse:        true,
			SidebarWidth: 30,
			Resume:       true,
		},
		Diagram: DiagramConfig{
			MaxBoxWidth: 44,
		},
		Highlight: HighlightConfig{
			LightStyle: "github",
			DarkStyle:  "monokai",
			Formatter:  "terminal256",
		},
		Site: SiteConfig{
			OutputDir:   "site",
			Title:       "PatternFlow",
			MermaidURL:  "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js",
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   filepath.Join(defaultDir(), "logs"),
		},
	}
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".patternflow"
	}
	return filepath.Join(dir, "patternflow")
}

// DefaultStateDir holds files the program writes for itself, such as
// remembered preferences.
func DefaultStateDir() string {
	return defaultDir()
}

// DefaultPath is where the config file lives unless --config says otherwise.
func DefaultPath() string {
	return filepath.Join(defaultDir(), "config.yaml")
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	logging.Config("Saved config to %s", path)
	return nil
}

// GetCopyAck returns how long the "copied" acknowledgement stays visible.
func (c *Config) GetCopyAck() time.Duration {
	d, err := time.ParseDuration(c.UI.CopyAck)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "light", "dark"}

var validLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui.theme %q (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if c.UI.DefaultLanguage != "" {
		if _, err := catalog.ParseLanguage(c.UI.DefaultLanguage); err != nil {
			return fmt.Errorf("ui.default_language: %w", err)
		}
	}
	if c.UI.CopyAck != "" {
		if d, err := time.ParseDuration(c.UI.CopyAck); err != nil || d <= 0 {
			return fmt.Errorf("ui.copy_ack must be a positive duration, got %q", c.UI.CopyAck)
		}
	}
	if c.UI.SidebarWidth < 16 {
		return fmt.Errorf("ui.sidebar_width must be at least 16, got %d", c.UI.SidebarWidth)
	}
	if c.Diagram.MaxBoxWidth < 12 {
		return fmt.Errorf("diagram.max_box_width must be at least 12, got %d", c.Diagram.MaxBoxWidth)
	}
	if c.Site.Concurrency < 0 {
		return fmt.Errorf("site.concurrency must be non-negative")
	}
	if c.Logging.Level != "" && !slices.Contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	if c.Logging.DebugMode && c.Logging.Dir == "" {
		return fmt.Errorf("logging.dir is required when debug_mode is on")
	}
	return nil
}

// LoggingOptions converts the logging section for logging.Initialize.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		DebugMode:  c.Logging.DebugMode,
		Level:      c.Logging.Level,
		Dir:        c.Logging.Dir,
		JSONFormat: c.Logging.JSONFormat,
		Categories: c.Logging.Categories,
	}
}

// IsDark resolves the theme for a terminal; auto defers to detected.
func (c *Config) IsDark(detected bool) bool {
	switch c.UI.Theme {
	case "dark":
		return true
	case "light":
		return false
	}
	return detected
}

// HighlightStyle returns the chroma style for the resolved theme.
func (c *Config) HighlightStyle(dark bool) string {
	if dark {
		return c.Highlight.DarkStyle
	}
	return c.Highlight.LightStyle
}
