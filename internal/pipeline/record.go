package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rackworks/fleetpkg/internal/paths"
	"github.com/rackworks/fleetpkg/internal/recipe"
)

// Normalized metadata for one uploaded package.
//
// One record is written per processed recipe, keyed by the slugified
// software name. Reruns overwrite; so do two names that share a slug.
type Record struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Hash        string `json:"hash"`
	TitleID     int64  `json:"title_id"`
	InstallerID int64  `json:"installer_id,omitempty"` // Omitted when the server did not report one.
	SelfService bool   `json:"self_service"`
}

// Writes a record to <dir>/<slug>.json and returns the file path.
func writeRecord(dir string, rec Record) (string, error) {
	slug := recipe.FileSlug(rec.Name)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecord, err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, slug+".json")
	if err := os.WriteFile(path, data, paths.DefaultFileMode); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecord, err)
	}

	return path, nil
}

// Reads a record previously written by a run.
func LoadRecord(path string) (Record, error) {
	var rec Record

	data, err := os.ReadFile(path)
	if err != nil {
		return rec, fmt.Errorf("%w: %v", ErrRecord, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("%w: %s: %v", ErrRecord, path, err)
	}

	return rec, nil
}

// Reads records from a path.
//
// A directory yields every *.json file inside it, sorted by filename; a
// plain file yields a single record.
func LoadRecords(path string) ([]Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecord, err)
	}

	if !info.IsDir() {
		rec, err := LoadRecord(path)
		if err != nil {
			return nil, err
		}
		return []Record{rec}, nil
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecord, err)
	}

	var recs []Record
	for _, m := range matches {
		rec, err := LoadRecord(m)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, nil
}
