// Package config loads the optional CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/alnah/go-profilemd/internal/fileutil"
	"github.com/alnah/go-profilemd/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Defaults applied before a config file is decoded.
const (
	DefaultPDFEngine = "text"
	DefaultTimeout   = "30s"
	DefaultServeAddr = "localhost:8080"
	DefaultTheme     = "default"

	// MaxWorkers bounds the configured worker count.
	MaxWorkers = 64
	// MaxTextWidth bounds the plain-text wrap column.
	MaxTextWidth = 1000
)

// appDir is the directory under the user config dir searched for named configs.
const appDir = "go-profilemd"

// themeNamePattern matches theme names resolvable as {name}.css.
var themeNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// formatNames lists accepted output format names, aliases included.
var formatNames = []string{"markdown", "md", "html", "htm", "text", "txt", "plain", "pdf", "all"}

// Config holds all CLI settings a config file may set.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	PDF     PDFConfig     `yaml:"pdf"`
	Text    TextConfig    `yaml:"text"`
	HTML    HTMLConfig    `yaml:"html"`
	Workers int           `yaml:"workers"` // 0 = auto
	Serve   ServeConfig   `yaml:"serve"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// OutputConfig defines where and what the render command writes.
type OutputConfig struct {
	Dir     string   `yaml:"dir"`     // Empty = next to each profile file
	Formats []string `yaml:"formats"` // markdown, html, text, pdf (aliases accepted)
}

// PDFConfig selects the PDF engine.
type PDFConfig struct {
	Engine  string `yaml:"engine"`  // "text" or "browser"
	Timeout string `yaml:"timeout"` // Go duration, browser engine only
}

// TextConfig controls the plain-text export.
type TextConfig struct {
	Width int `yaml:"width"` // 0 = no wrapping
}

// HTMLConfig selects the stylesheet of the HTML export.
type HTMLConfig struct {
	Theme     string `yaml:"theme"`      // default, dark, print, or a custom name
	ThemesDir string `yaml:"themes_dir"` // Directory of {name}.css files; empty = built-ins only
}

// ServeConfig controls the preview server.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// CatalogConfig points at replacement lookup tables.
type CatalogConfig struct {
	Path string `yaml:"path"` // Empty = built-in tables
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Formats: []string{"markdown"}},
		PDF:    PDFConfig{Engine: DefaultPDFEngine, Timeout: DefaultTimeout},
		HTML:   HTMLConfig{Theme: DefaultTheme},
		Serve:  ServeConfig{Addr: DefaultServeAddr},
	}
}

// Validate checks every field. Called by LoadConfig, and again by the CLI
// after environment and flag overrides are applied.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Output),
		validation.Field(&c.PDF),
		validation.Field(&c.Text),
		validation.Field(&c.HTML),
		validation.Field(&c.Workers, validation.Min(0), validation.Max(MaxWorkers)),
		validation.Field(&c.Serve),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}

// Validate implements validation.Validatable.
func (o OutputConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Formats, validation.Each(oneOfFold(formatNames...))),
	)
}

// Validate implements validation.Validatable.
func (p PDFConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Engine, oneOfFold("", "text", "browser")),
		validation.Field(&p.Timeout, validation.By(positiveDuration)),
	)
}

// Validate implements validation.Validatable.
func (t TextConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Width, validation.Min(0), validation.Max(MaxTextWidth)),
	)
}

// Validate implements validation.Validatable.
func (h HTMLConfig) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Theme, validation.Match(themeNamePattern).Error("must be a name without dots or slashes")),
	)
}

// Validate implements validation.Validatable.
func (s ServeConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, is.DialString),
	)
}

// TimeoutDuration returns the parsed PDF timeout, or zero when unset.
// Call after Validate.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.PDF.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// oneOfFold accepts strings equal to one of values, ignoring case and
// surrounding spaces.
func oneOfFold(values ...string) validation.Rule {
	return validation.By(func(v interface{}) error {
		s, _ := v.(string)
		s = strings.TrimSpace(s)
		for _, want := range values {
			if strings.EqualFold(s, want) {
				return nil
			}
		}
		return fmt.Errorf("must be one of %s", strings.Join(nonEmpty(values), ", "))
	})
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func positiveDuration(v interface{}) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("must be a duration such as 30s or 1m")
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys the file omits keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-profilemd/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
