package posts

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// postSlug picks the route slug for a post: the explicit front-matter value,
// else the normalized base filename, else the raw base filename when the
// normalizer cannot produce anything (e.g. a title-only CJK filename).
func postSlug(explicit, baseName string) string {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return trimmed
	}
	if normalized, err := slug.Normalize(baseName); err == nil && normalized != "" {
		return normalized
	}
	return baseName
}
