// Package gitops applies package metadata records to a Fleet GitOps repo.
//
// For each record, [Apply] ensures a per-software package YAML under
// lib/software, references it from the selected team YAML files with the
// record's self-service flag, and bumps the version pin in the matching
// update policy when one exists. All edits are idempotent: applying the
// same record twice leaves the tree unchanged.
//
// [Publish] wraps Apply with repository automation: it clones the GitOps
// repo into a scratch directory, applies the records on a new branch,
// commits and pushes only when something changed, and opens a GitHub pull
// request. Git operations shell out to the git CLI; the pull request uses
// the GitHub API.
package gitops
