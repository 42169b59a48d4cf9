package main

import (
	"context"
	"errors"
	"os"

	profilemd "github.com/alnah/go-profilemd"
	"github.com/alnah/go-profilemd/internal/assets"
	"github.com/alnah/go-profilemd/internal/config"
	"github.com/alnah/go-profilemd/internal/hints"
)

// Exit codes for profilemd CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, catalog, or profile data
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/PDF errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser and PDF errors (exit 4)
	if errors.Is(err, profilemd.ErrBrowserConnect) ||
		errors.Is(err, profilemd.ErrPageCreate) ||
		errors.Is(err, profilemd.ErrPageLoad) ||
		errors.Is(err, profilemd.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, profilemd.ErrProfileNotFound) ||
		errors.Is(err, profilemd.ErrCatalogNotFound) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, profilemd.ErrProfileParse) ||
		errors.Is(err, profilemd.ErrCatalogParse) ||
		errors.Is(err, profilemd.ErrCatalogInvalid) ||
		errors.Is(err, profilemd.ErrUnknownFormat) ||
		errors.Is(err, profilemd.ErrInvalidPDFEngine) ||
		errors.Is(err, assets.ErrThemeNotFound) ||
		errors.Is(err, assets.ErrInvalidThemeName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownTable) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable suggestion to print after err, or "".
func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, profilemd.ErrBrowserConnect),
		errors.Is(err, profilemd.ErrPageCreate),
		errors.Is(err, profilemd.ErrPageLoad):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, profilemd.ErrProfileParse):
		return hints.ForProfileParse()
	case errors.Is(err, profilemd.ErrUnknownFormat):
		names := make([]string, len(profilemd.Formats))
		for i, f := range profilemd.Formats {
			names[i] = string(f)
		}
		return hints.ForUnknownFormat(names)
	case errors.Is(err, assets.ErrThemeNotFound):
		names, _ := assets.NewEmbeddedLoader().Themes()
		return hints.ForThemeNotFound(names)
	}
	return ""
}
