package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	profilemd "github.com/alnah/go-profilemd"
	"github.com/alnah/go-profilemd/internal/assets"
	"github.com/alnah/go-profilemd/internal/config"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "PROFILEMD_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string   // PROFILEMD_CONFIG: config file name or path
	OutputDir  string   // PROFILEMD_OUTPUT_DIR: render output directory
	Formats    []string // PROFILEMD_FORMATS: comma-separated format list
	PDFEngine  string   // PROFILEMD_PDF_ENGINE: text or browser
	Workers    int      // PROFILEMD_WORKERS: parallel workers
	ServeAddr  string   // PROFILEMD_SERVE_ADDR: preview server address
	Theme      string   // PROFILEMD_THEME: HTML theme name
}

// knownEnvVars lists valid PROFILEMD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PROFILEMD_CONFIG":     true,
	"PROFILEMD_OUTPUT_DIR": true,
	"PROFILEMD_FORMATS":    true,
	"PROFILEMD_PDF_ENGINE": true,
	"PROFILEMD_WORKERS":    true,
	"PROFILEMD_SERVE_ADDR": true,
	"PROFILEMD_THEME":      true,
	"PROFILEMD_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are logged and ignored.
func loadEnvConfig(logger zerolog.Logger) *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PROFILEMD_CONFIG"),
		OutputDir:  os.Getenv("PROFILEMD_OUTPUT_DIR"),
		PDFEngine:  os.Getenv("PROFILEMD_PDF_ENGINE"),
		ServeAddr:  os.Getenv("PROFILEMD_SERVE_ADDR"),
		Theme:      os.Getenv("PROFILEMD_THEME"),
	}

	if formats := os.Getenv("PROFILEMD_FORMATS"); formats != "" {
		cfg.Formats = splitList(formats)
	}

	if workers := os.Getenv("PROFILEMD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		} else {
			logger.Warn().Str("value", workers).Msg("ignoring invalid PROFILEMD_WORKERS")
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PROFILEMD_* variables.
// Helps catch typos like PROFILEMD_FORMAT instead of PROFILEMD_FORMATS.
func warnUnknownEnvVars(logger zerolog.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			logger.Warn().Str("name", name).Msg("unknown environment variable (typo?)")
		}
	}
}

// applyEnvConfig overrides config values with the environment variables
// that are set. Flags are applied afterwards, giving
// defaults < config file < environment < flags.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if len(env.Formats) > 0 {
		cfg.Output.Formats = env.Formats
	}
	if env.PDFEngine != "" {
		cfg.PDF.Engine = env.PDFEngine
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.ServeAddr != "" {
		cfg.Serve.Addr = env.ServeAddr
	}
	if env.Theme != "" {
		cfg.HTML.Theme = env.Theme
	}
}

// resolveConfig builds the effective configuration for a command: the
// config file named by --config or PROFILEMD_CONFIG (else the environment's
// base config), then environment overrides. Callers apply their flags and
// call Validate.
func resolveConfig(common *commonFlags, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Logger)
	envCfg := loadEnvConfig(env.Logger)

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		env.Logger.Debug().Str("config", name).Msg("loaded config")
	} else {
		base := *env.Config
		base.Output.Formats = append([]string(nil), env.Config.Output.Formats...)
		cfg = &base
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// rendererOptions translates config into Renderer options.
// Call after cfg.Validate.
func rendererOptions(cfg *config.Config) ([]profilemd.Option, error) {
	engine, err := profilemd.ParsePDFEngine(cfg.PDF.Engine)
	if err != nil {
		return nil, err
	}

	opts := []profilemd.Option{
		profilemd.WithPDFEngine(engine),
		profilemd.WithTextWidth(cfg.Text.Width),
	}
	if d := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, profilemd.WithTimeout(d))
	}
	if cfg.Catalog.Path != "" {
		c, err := profilemd.LoadCatalog(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, profilemd.WithCatalog(c))
	}
	if cfg.HTML.Theme != "" {
		themes, err := assets.NewResolver(cfg.HTML.ThemesDir)
		if err != nil {
			return nil, err
		}
		css, err := themes.LoadTheme(cfg.HTML.Theme)
		if err != nil {
			return nil, err
		}
		opts = append(opts, profilemd.WithStyle(css))
	}
	return opts, nil
}

// splitList splits a comma-separated list, dropping blank items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
