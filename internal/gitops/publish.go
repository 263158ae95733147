package gitops

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/rackworks/fleetpkg/internal/pipeline"
	"github.com/rackworks/fleetpkg/internal/recipe"
)

// Defaults for repository automation.
const (
	DefaultBaseBranch  = "main"
	DefaultAuthorName  = "fleetpkg-bot"
	DefaultAuthorEmail = "fleetpkg-bot@example.com"
)

// Controls repository automation for [Publish].
type Options struct {
	RepoURL      string   // Git URL of the GitOps repo (HTTPS or SSH).
	BaseBranch   string   // Branch to clone and target in the PR. Empty uses [DefaultBaseBranch].
	BranchPrefix string   // Optional prefix for the working branch name.
	AuthorName   string   // Commit author name. Empty uses [DefaultAuthorName].
	AuthorEmail  string   // Commit author email. Empty uses [DefaultAuthorEmail].
	Teams        []string // Team YAML files (by name) to reference the packages from.
	GitHubRepo   string   // "owner/repo" for the PR. Empty derives it from RepoURL.
	GitHubToken  string   // Token for PR creation. Empty skips the PR and stops after push.
	Labels       []string // Labels to apply to the PR.
}

// Clones the GitOps repo, applies the records on a new branch, pushes, and
// opens a pull request.
//
// Nothing is pushed when the records produce no changes; the function then
// returns an empty URL. With no GitHub token the branch is pushed but no
// PR is opened. The clone lives in a temp directory removed on return.
func Publish(ctx context.Context, opts Options, recs []pipeline.Record) (string, error) {
	if len(recs) == 0 {
		return "", errors.New("no records to publish")
	}

	base := opts.BaseBranch
	if base == "" {
		base = DefaultBaseBranch
	}

	tmp, err := os.MkdirTemp("", "fleetpkg-gitops-")
	if err != nil {
		return "", errors.Wrap(err, "creating scratch directory")
	}
	defer os.RemoveAll(tmp)

	co, err := clone(ctx, opts.RepoURL, base, tmp)
	if err != nil {
		return "", err
	}

	branch := branchName(opts.BranchPrefix, recs)
	if err := co.newBranch(ctx, branch); err != nil {
		return "", err
	}

	for _, rec := range recs {
		if err := Apply(co.dir, rec, opts.Teams); err != nil {
			return "", err
		}
	}

	author, email := opts.AuthorName, opts.AuthorEmail
	if author == "" {
		author = DefaultAuthorName
	}
	if email == "" {
		email = DefaultAuthorEmail
	}
	if err := co.setAuthor(ctx, author, email); err != nil {
		return "", err
	}

	if err := co.addAll(ctx); err != nil {
		return "", err
	}

	committed, err := co.commitIfChanged(ctx, commitMessage(recs))
	if err != nil {
		return "", err
	}
	if !committed {
		slog.Info("gitops checkout already up to date", "branch", base)
		return "", nil
	}

	if err := co.push(ctx, branch); err != nil {
		return "", err
	}

	if opts.GitHubToken == "" {
		slog.Info("branch pushed; no GitHub token, skipping pull request", "branch", branch)
		return "", nil
	}

	owner, repo, ok := splitGitHubRepo(opts)
	if !ok {
		return "", errors.Errorf("cannot derive owner/repo from %q; set GitHubRepo", opts.RepoURL)
	}

	client := newGitHubClient(ctx, opts.GitHubToken)
	url, err := openPullRequest(ctx, client, owner, repo, branch, base,
		prTitle(recs), publishBody(recs), opts.Labels)
	if err != nil {
		return "", err
	}

	slog.Info("pull request opened", "url", url)
	return url, nil
}

// Returns the owner and repo for PR creation, preferring the explicit
// GitHubRepo option over derivation from the clone URL.
func splitGitHubRepo(opts Options) (string, string, bool) {
	if opts.GitHubRepo != "" {
		owner, repo, ok := strings.Cut(opts.GitHubRepo, "/")
		return owner, repo, ok && owner != "" && repo != ""
	}
	return ownerRepo(opts.RepoURL)
}

// Names the working branch after its content.
//
// A single record yields "<slug>-<version>"; a batch yields a timestamped
// name, since no single version describes it. The prefix, when set, is
// prepended with a slash.
func branchName(prefix string, recs []pipeline.Record) string {
	var name string
	if len(recs) == 1 {
		name = recipe.FileSlug(recs[0].Name) + "-" + recs[0].Version
	} else {
		name = "software-updates-" + time.Now().Format("20060102-150405")
	}

	if prefix != "" {
		return strings.TrimRight(prefix, "/") + "/" + name
	}
	return name
}

// Composes the commit message for a batch.
func commitMessage(recs []pipeline.Record) string {
	if len(recs) == 1 {
		rec := recs[0]
		return fmt.Sprintf("feat(software): %s %s [%s]", rec.Name, rec.Version, recipe.FileSlug(rec.Name))
	}
	return fmt.Sprintf("feat(software): update %d packages", len(recs))
}

// Composes the PR title for a batch.
func prTitle(recs []pipeline.Record) string {
	if len(recs) == 1 {
		return recs[0].Name + " " + recs[0].Version
	}
	return fmt.Sprintf("Software updates (%d packages)", len(recs))
}

// Composes the PR body: one section per record.
func publishBody(recs []pipeline.Record) string {
	sections := make([]string, 0, len(recs))
	for _, rec := range recs {
		sections = append(sections, prBody(rec.Name, rec.Version, recipe.FileSlug(rec.Name), rec.TitleID, rec.InstallerID, ""))
	}
	return strings.Join(sections, "\n")
}
