package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/rackworks/fleetpkg/internal"
)

const (

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644

	// Filename of the AutoPkg report plist.
	reportFilename = "report.plist"

	// Filename of the recipe-to-config mapping.
	recipeMapFilename = "recipe-map.yml"
)

// Path to the directory for transient run files (report plists, scratch
// checkouts).
//
//	Linux:   $XDG_CACHE_HOME/fleetpkg or ~/.cache/fleetpkg
//	macOS:   ~/Library/Caches/fleetpkg
func Cache() string {
	return filepath.Join(xdg.CacheHome, internal.Name)
}

// Default path for the AutoPkg report plist.
//
// The report is rewritten for every recipe and never needs to survive a
// run, so it lives under the cache directory.
func ReportPlist() string {
	return filepath.Join(Cache(), reportFilename)
}

// Default path to the recipe-to-config mapping.
//
// A config/recipe-map.yml relative to the working directory wins when it
// exists, matching the layout of a checked-out recipe repo. Otherwise the
// mapping is searched for in the XDG config directories.
//
//	Linux:   $XDG_CONFIG_HOME/fleetpkg/recipe-map.yml
//	macOS:   ~/Library/Application Support/fleetpkg/recipe-map.yml
func RecipeMap() string {
	local := filepath.Join("config", recipeMapFilename)
	if _, err := os.Stat(local); err == nil {
		return local
	}

	if found, err := xdg.SearchConfigFile(filepath.Join(internal.Name, recipeMapFilename)); err == nil {
		return found
	}
	return local
}
