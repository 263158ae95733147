package gitops

import (
	"fmt"
	"strings"
)

// Composes the markdown body for a pull request covering one package.
//
// When no explicit changelog URL is given and the slug looks like an
// "owner/repo" GitHub slug, the body links to that repo's release tag for
// the version.
func prBody(name, version, slug string, titleID, installerID int64, changelogURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s %s\n\n", name, version)

	url := changelogURL
	if url == "" {
		if owner, repo, ok := strings.Cut(slug, "/"); ok {
			url = fmt.Sprintf("https://github.com/%s/%s/releases/tag/%s", owner, repo, version)
		}
	}
	if url != "" {
		fmt.Fprintf(&b, "[Changelog](%s)\n\n", url)
	}

	fmt.Fprintf(&b, "Fleet title ID: `%d`\n", titleID)
	fmt.Fprintf(&b, "Fleet installer ID: `%d`\n", installerID)
	fmt.Fprintf(&b, "Software slug: `%s`\n", slug)

	return b.String()
}
