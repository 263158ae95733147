package recipe

import "strings"

// Converts a display name to a filesystem-safe slug.
//
// The name is lowercased, runs of non-alphanumeric characters collapse to
// a single hyphen, and leading and trailing hyphens are stripped. The
// function is idempotent: slugifying a slug returns it unchanged. A name
// with no alphanumeric characters yields the empty string; callers that
// need a filename must supply their own fallback.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	hyphen := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
			continue
		}
		hyphen = true
	}

	return b.String()
}

// Returns the slug used for filenames derived from a software name.
//
// Names that slugify to nothing fall back to "software" so a record always
// has a filename; two such names overwrite each other, the same way two
// names sharing a slug do.
func FileSlug(name string) string {
	if s := Slugify(name); s != "" {
		return s
	}
	return "software"
}
