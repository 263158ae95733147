package cli

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/rackworks/fleetpkg/internal/gitops"
	"github.com/rackworks/fleetpkg/internal/pipeline"
)

// Represents the 'fleetpkg gitops' command.
type GitopsCmd struct {
	Records      string   `arg:"" optional:"" default:"out" help:"Metadata record file or directory of records."`
	Teams        []string `short:"t" required:"" help:"Team names whose YAML should reference the packages."`
	Dir          string   `help:"Existing GitOps checkout to edit in place." placeholder:"DIR" xor:"target"`
	RepoURL      string   `help:"GitOps repo URL to clone, push a branch to, and open a PR against." placeholder:"URL" xor:"target"`
	BaseBranch   string   `help:"Base branch for clone and PR." default:"main"`
	BranchPrefix string   `help:"Prefix for the working branch name."`
	AuthorName   string   `help:"Commit author name." default:"fleetpkg-bot"`
	AuthorEmail  string   `help:"Commit author email." default:"fleetpkg-bot@example.com"`
	GithubRepo   string   `help:"GitHub repo as owner/repo. Derived from the repo URL when unset."`
	GithubToken  string   `env:"GITHUB_TOKEN" help:"GitHub token for PR creation. Unset pushes without opening a PR."`
	Label        []string `help:"Labels to apply to the PR."`
}

// Executes the gitops command.
//
// With --dir, the records are applied to an existing checkout and nothing
// else happens; committing is left to the caller. With --repo-url, the
// repo is cloned and the full branch/commit/push/PR sequence runs.
func (c *GitopsCmd) Run(ctx context.Context) error {
	recs, err := pipeline.LoadRecords(c.Records)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return errors.Errorf("no metadata records found at %s", c.Records)
	}

	if c.Dir != "" {
		for _, rec := range recs {
			if err := gitops.Apply(c.Dir, rec, c.Teams); err != nil {
				return err
			}
			slog.Info("record applied", "software", rec.Name, "version", rec.Version)
		}
		return nil
	}

	if c.RepoURL == "" {
		return errors.New("one of --dir or --repo-url is required")
	}

	_, err = gitops.Publish(ctx, gitops.Options{
		RepoURL:      c.RepoURL,
		BaseBranch:   c.BaseBranch,
		BranchPrefix: c.BranchPrefix,
		AuthorName:   c.AuthorName,
		AuthorEmail:  c.AuthorEmail,
		Teams:        c.Teams,
		GitHubRepo:   c.GithubRepo,
		GitHubToken:  c.GithubToken,
		Labels:       c.Label,
	}, recs)
	return err
}
