package gitops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/rackworks/fleetpkg/internal/pipeline"
)

func readYAML(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	return m
}

func firefoxRecord() pipeline.Record {
	return pipeline.Record{
		Name:        "Firefox",
		Version:     "119.0",
		Hash:        "abc123",
		TitleID:     42,
		SelfService: true,
	}
}

func TestApplyCreatesPackageFile(t *testing.T) {
	dir := t.TempDir()

	if err := Apply(dir, firefoxRecord(), []string{"workstations"}); err != nil {
		t.Fatal(err)
	}

	m := readYAML(t, filepath.Join(dir, "lib/software/firefox.package.yml"))
	if m["apiVersion"] != "v1" || m["kind"] != "software" {
		t.Fatalf("package yaml = %v", m)
	}
	spec, ok := m["spec"].(map[string]any)
	if !ok {
		t.Fatalf("spec missing: %v", m)
	}
	if spec["name"] != "Firefox" || spec["platform"] != "darwin" || spec["hash_sha256"] != "abc123" {
		t.Fatalf("spec = %v", spec)
	}
}

func TestApplyPreservesExistingPackageFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib/software/firefox.package.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	existing := `apiVersion: v1
kind: software
spec:
  name: Firefox ESR
  platform: darwin
  hash_sha256: old
  labels_include_any:
    - engineering
`
	if err := os.WriteFile(path, []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Apply(dir, firefoxRecord(), nil); err != nil {
		t.Fatal(err)
	}

	spec := readYAML(t, path)["spec"].(map[string]any)
	if spec["name"] != "Firefox ESR" {
		t.Fatalf("name = %v, existing value must be kept", spec["name"])
	}
	if spec["hash_sha256"] != "abc123" {
		t.Fatalf("hash = %v, must be refreshed", spec["hash_sha256"])
	}
	if _, ok := spec["labels_include_any"]; !ok {
		t.Fatal("unrelated field dropped")
	}
}

func TestApplyEnsuresTeamEntry(t *testing.T) {
	dir := t.TempDir()

	if err := Apply(dir, firefoxRecord(), []string{"workstations"}); err != nil {
		t.Fatal(err)
	}

	team := readYAML(t, filepath.Join(dir, "teams/workstations.yml"))
	packages := team["software"].(map[string]any)["packages"].([]any)
	if len(packages) != 1 {
		t.Fatalf("packages = %v", packages)
	}
	entry := packages[0].(map[string]any)
	if entry["package_path"] != "../lib/software/firefox.package.yml" {
		t.Fatalf("package_path = %v", entry["package_path"])
	}
	if entry["self_service"] != true {
		t.Fatalf("self_service = %v, want true", entry["self_service"])
	}
}

func TestApplyRefreshesExistingTeamEntry(t *testing.T) {
	dir := t.TempDir()

	if err := Apply(dir, firefoxRecord(), []string{"workstations"}); err != nil {
		t.Fatal(err)
	}

	rec := firefoxRecord()
	rec.SelfService = false
	if err := Apply(dir, rec, []string{"workstations"}); err != nil {
		t.Fatal(err)
	}

	team := readYAML(t, filepath.Join(dir, "teams/workstations.yml"))
	packages := team["software"].(map[string]any)["packages"].([]any)
	if len(packages) != 1 {
		t.Fatalf("packages grew to %d entries, must stay 1", len(packages))
	}
	if packages[0].(map[string]any)["self_service"] != false {
		t.Fatal("self_service not refreshed")
	}
}

func TestApplyKeepsOtherTeamEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teams/workstations.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	existing := `name: workstations
software:
  packages:
    - package_path: ../lib/software/slack.package.yml
      self_service: false
`
	if err := os.WriteFile(path, []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Apply(dir, firefoxRecord(), []string{"workstations"}); err != nil {
		t.Fatal(err)
	}

	team := readYAML(t, path)
	if team["name"] != "workstations" {
		t.Fatal("unrelated top-level field dropped")
	}
	packages := team["software"].(map[string]any)["packages"].([]any)
	if len(packages) != 2 {
		t.Fatalf("packages = %d, want 2", len(packages))
	}
}

func TestApplyBumpsPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib/policies/update-firefox.policy.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	policy := `name: Update Firefox
query: SELECT 1 FROM apps WHERE name = 'Firefox.app' AND version_compare("118.0") >= 0;
`
	if err := os.WriteFile(path, []byte(policy), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Apply(dir, firefoxRecord(), nil); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `version_compare("119.0")`) {
		t.Fatalf("policy not bumped: %s", data)
	}
	if strings.Contains(string(data), "118.0") {
		t.Fatalf("old version pin survived: %s", data)
	}
}

func TestBumpPolicyVersionIsLiteral(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib/policies/update-firefox.policy.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	policy := `query: version_compare("1.0") >= 0;` + "\n"
	if err := os.WriteFile(path, []byte(policy), 0644); err != nil {
		t.Fatal(err)
	}

	// "$0" must land in the file as-is, not expand to the matched text.
	if err := bumpPolicy(dir, "firefox", "2.0$0"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `version_compare("2.0$0")`) {
		t.Fatalf("version not written literally: %s", data)
	}
}

func TestApplyNoPolicyIsFine(t *testing.T) {
	if err := Apply(t.TempDir(), firefoxRecord(), nil); err != nil {
		t.Fatal(err)
	}
}
