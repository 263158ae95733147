package autopkg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Default AutoPkg binary, resolved via PATH.
const DefaultCommand = "autopkg"

// Invokes the AutoPkg CLI.
type Runner struct {
	Command string    // AutoPkg binary name or path. Empty uses [DefaultCommand].
	Output  io.Writer // Destination for tool output. Nil captures it for error reporting only.
}

// Runs AutoPkg for a single recipe override.
//
// The tool is invoked as "autopkg run <override> --report-plist=<report> -v"
// and blocks until it exits; no timeout is applied beyond the context. A
// non-zero exit is returned as [ErrBuild] with the tail of the tool's
// output attached.
func (r *Runner) Run(ctx context.Context, override, report string) error {
	command := r.Command
	if command == "" {
		command = DefaultCommand
	}

	args := []string{"run", override, "--report-plist=" + report, "-v"}
	slog.Debug("autopkg", "command", command, "args", args)

	var buf bytes.Buffer
	out := r.Output
	if out == nil {
		out = &buf
	} else {
		out = io.MultiWriter(out, &buf)
	}

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s %s: %v%s",
			ErrBuild, command, strings.Join(args, " "), err, outputTail(&buf))
	}

	return nil
}

// Returns the last few lines of captured tool output, formatted for
// inclusion in an error message. Empty output yields an empty string.
func outputTail(buf *bytes.Buffer) string {
	const tailLines = 5

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return ""
	}
	if len(lines) > tailLines {
		lines = lines[len(lines)-tailLines:]
	}
	return ": " + strings.Join(lines, " / ")
}
