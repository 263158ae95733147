package gitops

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-github/v28/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Creates a GitHub client authenticated with a personal access token.
func newGitHubClient(ctx context.Context, token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// Opens a pull request and returns its URL.
//
// A 422 from the create call means a PR for this head/base pair already
// exists; its URL is looked up and returned instead of an error, so reruns
// of an unchanged release are harmless. Label application is best-effort.
func openPullRequest(ctx context.Context, client *github.Client, owner, repo, head, base, title, body string, labels []string) (string, error) {
	pr, resp, err := client.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title:               github.String(title),
		Head:                github.String(head),
		Base:                github.String(base),
		Body:                github.String(body),
		MaintainerCanModify: github.Bool(true),
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			return findExistingPR(ctx, client, owner, repo, head, base)
		}
		return "", errors.Wrap(err, "creating pull request")
	}

	if len(labels) > 0 {
		if _, _, err := client.Issues.AddLabelsToIssue(ctx, owner, repo, pr.GetNumber(), labels); err != nil {
			slog.Warn("applying PR labels failed", "pr", pr.GetHTMLURL(), "error", err)
		}
	}

	return pr.GetHTMLURL(), nil
}

// Finds the open pull request for a head/base pair.
func findExistingPR(ctx context.Context, client *github.Client, owner, repo, head, base string) (string, error) {
	prs, _, err := client.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
		State: "open",
		Head:  owner + ":" + head,
		Base:  base,
	})
	if err != nil {
		return "", errors.Wrap(err, "listing pull requests")
	}
	if len(prs) == 0 {
		return "", errors.Errorf("pull request %s -> %s rejected but no open PR found", head, base)
	}

	return prs[0].GetHTMLURL(), nil
}

// Derives "owner", "repo" from a git repo URL.
//
// Accepts SSH (git@github.com:owner/repo.git), HTTPS
// (https://github.com/owner/repo.git), and bare owner/repo forms.
func ownerRepo(url string) (string, string, bool) {
	s := strings.TrimSpace(url)

	switch {
	case strings.HasPrefix(s, "git@"):
		_, s, _ = strings.Cut(s, ":")
	case strings.Contains(s, "github.com/"):
		_, s, _ = strings.Cut(s, "github.com/")
	}

	s = strings.TrimSuffix(s, ".git")
	s = strings.Trim(s, "/")

	owner, repo, ok := strings.Cut(s, "/")
	if !ok || owner == "" || repo == "" || strings.ContainsAny(s, ": ") || strings.Contains(repo, "/") {
		return "", "", false
	}
	return owner, repo, true
}
