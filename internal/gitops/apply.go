package gitops

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/rackworks/fleetpkg/internal/paths"
	"github.com/rackworks/fleetpkg/internal/pipeline"
	"github.com/rackworks/fleetpkg/internal/recipe"
)

const (

	// Directory for per-software package YAML files, relative to repo root.
	softwareDir = "lib/software"

	// Directory for team YAML files, relative to repo root.
	teamsDir = "teams"

	// Directory for update policy files, relative to repo root.
	policiesDir = "lib/policies"

	// Path prefix used when team YAML references a package YAML.
	packagePathPrefix = "../lib/software/"

	// Platform recorded in package YAML. AutoPkg only builds macOS
	// packages.
	platform = "darwin"
)

// Matches the pinned version inside an update policy query.
var versionComparePattern = regexp.MustCompile(`version_compare\(".*?"\)`)

// Applies one metadata record to a GitOps checkout.
//
// Ensures the package YAML exists with the record's name and hash,
// references it from each team YAML with the record's self-service flag,
// and bumps the matching update policy when one exists. Edits are
// idempotent.
func Apply(dir string, rec pipeline.Record, teams []string) error {
	slug := recipe.FileSlug(rec.Name)

	pkgFile := filepath.Join(dir, softwareDir, slug+".package.yml")
	if err := ensurePackageFile(pkgFile, rec.Name, rec.Hash); err != nil {
		return err
	}

	for _, team := range teams {
		teamFile := filepath.Join(dir, teamsDir, team+".yml")
		if err := ensureTeamFile(teamFile, slug, rec.SelfService); err != nil {
			return err
		}
	}

	return bumpPolicy(dir, slug, rec.Version)
}

// Ensures the per-software package YAML exists and carries the current
// hash.
//
// A missing or empty file is created whole. An existing file keeps its
// fields: name and platform are only filled in when absent, while the
// hash is always refreshed so the GitOps worker picks up the new build.
func ensurePackageFile(path, name, hash string) error {
	data, err := loadYAML(path)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		data = map[string]any{
			"apiVersion": "v1",
			"kind":       "software",
			"spec": map[string]any{
				"name":        name,
				"platform":    platform,
				"hash_sha256": hash,
			},
		}
		return dumpYAML(data, path)
	}

	spec, ok := data["spec"].(map[string]any)
	if !ok {
		spec = map[string]any{}
		data["spec"] = spec
	}
	if _, ok := spec["name"]; !ok {
		spec["name"] = name
	}
	if _, ok := spec["platform"]; !ok {
		spec["platform"] = platform
	}
	spec["hash_sha256"] = hash

	return dumpYAML(data, path)
}

// Ensures a team YAML references the package with the given self-service
// flag.
//
// An existing entry for the package gets its self_service value refreshed;
// otherwise a new entry is appended to software.packages. The team file is
// created if absent.
func ensureTeamFile(path, slug string, selfService bool) error {
	data, err := loadYAML(path)
	if err != nil {
		return err
	}
	if data == nil {
		data = map[string]any{}
	}

	software, ok := data["software"].(map[string]any)
	if !ok {
		software = map[string]any{}
		data["software"] = software
	}

	packages, _ := software["packages"].([]any)
	target := packagePathPrefix + slug + ".package.yml"

	found := false
	for _, entry := range packages {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if m["package_path"] == target {
			m["self_service"] = selfService
			found = true
			break
		}
	}
	if !found {
		packages = append(packages, map[string]any{
			"package_path": target,
			"self_service": selfService,
		})
	}
	software["packages"] = packages

	return dumpYAML(data, path)
}

// Rewrites the version pin in the software's update policy, if one exists.
//
// Policies live at lib/policies/update-<slug>.policy.yml and pin a version
// via version_compare("..."). A repo without a policy for the software is
// left alone.
func bumpPolicy(dir, slug, version string) error {
	path := filepath.Join(dir, policiesDir, "update-"+slug+".policy.yml")

	text, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}

	// ReplaceAllLiteral keeps the version byte-literal; a "$" in it must
	// not expand as a template reference.
	updated := versionComparePattern.ReplaceAllLiteral(text, fmt.Appendf(nil, `version_compare(%q)`, version))
	if string(updated) == string(text) {
		return nil
	}

	if err := os.WriteFile(path, updated, paths.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}
	return nil
}

// Loads a YAML file into a generic mapping. A missing file yields nil.
func loadYAML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrApply, err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrApply, path, err)
	}
	return m, nil
}

// Writes a mapping back to a YAML file, creating parent directories.
func dumpYAML(m map[string]any, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}
	if err := os.WriteFile(path, data, paths.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}
	return nil
}
