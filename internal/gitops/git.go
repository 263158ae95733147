package gitops

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// A local clone of the GitOps repo.
type checkout struct {
	dir string
}

// Clones a single branch of the repo into dir.
func clone(ctx context.Context, url, branch, dir string) (*checkout, error) {
	args := []string{"clone", "--single-branch", "--branch", branch, url, dir}
	if _, err := execGit(ctx, "", args...); err != nil {
		return nil, errors.Wrap(err, "cloning repo")
	}
	return &checkout{dir: dir}, nil
}

// Creates and checks out a new branch.
func (c *checkout) newBranch(ctx context.Context, name string) error {
	_, err := execGit(ctx, c.dir, "checkout", "-b", name)
	return errors.Wrapf(err, "creating branch %s", name)
}

// Sets the commit author for this checkout only.
func (c *checkout) setAuthor(ctx context.Context, name, email string) error {
	for k, v := range map[string]string{
		"user.name":  name,
		"user.email": email,
	} {
		if _, err := execGit(ctx, c.dir, "config", k, v); err != nil {
			return errors.Wrap(err, "setting git config")
		}
	}
	return nil
}

// Stages every change in the working tree.
func (c *checkout) addAll(ctx context.Context) error {
	_, err := execGit(ctx, c.dir, "add", "--all")
	return errors.Wrap(err, "staging changes")
}

// Commits staged changes, if any. Returns false when the tree was clean.
func (c *checkout) commitIfChanged(ctx context.Context, message string) (bool, error) {
	status, err := execGit(ctx, c.dir, "status", "--porcelain")
	if err != nil {
		return false, errors.Wrap(err, "checking status")
	}
	if strings.TrimSpace(status) == "" {
		return false, nil
	}

	if _, err := execGit(ctx, c.dir, "commit", "-m", message); err != nil {
		return false, errors.Wrap(err, "committing")
	}
	return true, nil
}

// Pushes the branch and sets its upstream.
func (c *checkout) push(ctx context.Context, branch string) error {
	_, err := execGit(ctx, c.dir, "push", "--set-upstream", "origin", branch)
	return errors.Wrapf(err, "pushing branch %s", branch)
}

// Runs a git command and returns its stdout.
//
// On failure the trimmed stderr becomes the error message. Arguments are
// logged at debug level only; the clone URL may carry credentials.
func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	slog.Debug("git", "subcommand", args[0], "dir", dir)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", errors.Errorf("git %s: %s", args[0], msg)
	}

	return stdout.String(), nil
}
