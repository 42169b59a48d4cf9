// Package hints provides actionable follow-ups for common CLI failures.
// Every hint is formatted as "\n  hint: <text>" so it can be appended to an
// error message as is.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-profilemd/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker or a
// similar runtime. A variable so tests can replace it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv") || os.Getenv("PROFILEMD_CONTAINER") == "1"
}

// ForBrowserConnect returns hints for a Chrome launch or connect failure.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "or use --engine text, which needs no browser")

	return formatHints(hints)
}

// ForTimeout returns a hint for a browser PDF that ran out of time.
func ForTimeout() string {
	return format("raise the limit with --timeout (e.g., --timeout 2m)")
}

// ForConfigNotFound returns a hint for a named config that was not found.
func ForConfigNotFound() string {
	return format("use --config /path/to/file.yaml, or save it under ~/.config/go-profilemd/")
}

// ForOutputDirectory returns a hint for an output file that could not be written.
func ForOutputDirectory() string {
	return format("check that --output points to a writable directory")
}

// ForProfileParse returns a hint for a malformed profile file.
func ForProfileParse() string {
	return format("profiles are YAML or JSON objects; check indentation and quoting")
}

// ForUnknownFormat returns a hint listing the accepted format names.
func ForUnknownFormat(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + ", or all")
}

// ForThemeNotFound returns a hint listing the themes that can be used.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
