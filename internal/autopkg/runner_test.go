package autopkg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Writes a shell script standing in for the autopkg binary.
func writeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts require a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "autopkg-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunInvocation(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	r := Runner{Command: writeStub(t, `printf '%s\n' "$@" > `+argsFile)}

	if err := r.Run(context.Background(), "overrides/Firefox.pkg.recipe", "/tmp/report.plist"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{"run", "overrides/Firefox.pkg.recipe", "--report-plist=/tmp/report.plist", "-v"}
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRunFailureIncludesOutput(t *testing.T) {
	r := Runner{Command: writeStub(t, "echo recipe exploded >&2\nexit 1")}

	err := r.Run(context.Background(), "Firefox.pkg.recipe", "/tmp/report.plist")
	if !errors.Is(err, ErrBuild) {
		t.Fatalf("err = %v, want ErrBuild", err)
	}
	if !strings.Contains(err.Error(), "recipe exploded") {
		t.Fatalf("error %q does not carry tool output", err)
	}
}

func TestRunMissingBinary(t *testing.T) {
	r := Runner{Command: filepath.Join(t.TempDir(), "no-such-binary")}

	err := r.Run(context.Background(), "Firefox.pkg.recipe", "/tmp/report.plist")
	if !errors.Is(err, ErrBuild) {
		t.Fatalf("err = %v, want ErrBuild", err)
	}
}
