package internal

import (
	"fmt"
	"runtime"
	"strings"
)

// Name used for the binary, logger group, and directory naming.
const Name = "fleetpkg"

// String to indicate an undefined build variable.
const defaultUndefined = "(devel)"

var (
	version   = "" // Version number (e.g., "0.3.1")
	gitCommit = "" // Git commit hash (e.g., "a1b2c3d4")
	buildDate = "" // Build date (e.g., "2026-08-31")
)

// Returns the current version.
//
// If the version is not set, returns "(devel)". A "v" or "V" prefix
// (e.g., "v1.0.0") is stripped.
func Version() string {
	v := strings.TrimSpace(version)
	if v == "" {
		return defaultUndefined
	}
	return strings.TrimPrefix(strings.ToLower(v), "v")
}

// Returns the git commit hash, or "(devel)" if not set.
func GitCommit() string {
	c := strings.TrimSpace(gitCommit)
	if c == "" {
		return defaultUndefined
	}
	return c
}

// Returns true if this is a local (non-pipeline) build.
//
// Pipeline builds set the version, commit, and date variables via linker
// flags; a build with any of them unset is considered local.
func IsLocal() bool {
	return strings.TrimSpace(version) == "" ||
		strings.TrimSpace(gitCommit) == "" ||
		strings.TrimSpace(buildDate) == ""
}

// Returns a detailed version string.
//
// Local builds return "(devel)". Pipeline builds return a string formatted
// as "<version> <git-commit> <date> [<os>/<arch>]".
func VersionString() string {
	if IsLocal() {
		return defaultUndefined
	}
	return fmt.Sprintf("%s %s %s [%s/%s]",
		Version(), GitCommit(), strings.TrimSpace(buildDate),
		runtime.GOOS, runtime.GOARCH,
	)
}
