package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteRecordFallbackSlug(t *testing.T) {
	dir := t.TempDir()

	path, err := writeRecord(dir, Record{Name: "!!!", Version: "1.0"})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "software.json" {
		t.Fatalf("path = %q, want software.json", path)
	}
}

func TestWriteRecordOverwrites(t *testing.T) {
	dir := t.TempDir()

	if _, err := writeRecord(dir, Record{Name: "Firefox", Version: "118.0"}); err != nil {
		t.Fatal(err)
	}
	path, err := writeRecord(dir, Record{Name: "Firefox", Version: "119.0"})
	if err != nil {
		t.Fatal(err)
	}

	rec, err := LoadRecord(path)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Version != "119.0" {
		t.Fatalf("version = %q, want 119.0 (rerun must overwrite)", rec.Version)
	}
}

func TestLoadRecords(t *testing.T) {
	dir := t.TempDir()

	for _, rec := range []Record{
		{Name: "Firefox", Version: "119.0", Hash: "abc", TitleID: 42, SelfService: true},
		{Name: "Slack", Version: "4.35", Hash: "def", TitleID: 7},
	} {
		if _, err := writeRecord(dir, rec); err != nil {
			t.Fatal(err)
		}
	}
	// Non-record files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	recs, err := LoadRecords(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	// Glob sorts by filename: firefox.json before slack.json.
	if recs[0].Name != "Firefox" || recs[1].Name != "Slack" {
		t.Fatalf("records = %+v", recs)
	}
	if recs[0].TitleID != 42 || !recs[0].SelfService {
		t.Fatalf("records[0] = %+v", recs[0])
	}
}

func TestLoadRecordsMissingPath(t *testing.T) {
	_, err := LoadRecords(filepath.Join(t.TempDir(), "no-such-dir"))
	if !errors.Is(err, ErrRecord) {
		t.Fatalf("err = %v, want ErrRecord", err)
	}
}

func TestLoadRecordsSingleFile(t *testing.T) {
	dir := t.TempDir()
	path, err := writeRecord(dir, Record{Name: "Firefox", Version: "119.0"})
	if err != nil {
		t.Fatal(err)
	}

	recs, err := LoadRecords(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Name != "Firefox" {
		t.Fatalf("records = %+v", recs)
	}
}
