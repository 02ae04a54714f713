package raindrop

import (
	"regexp"
	"strings"
)

// Upstream field length caps.
const (
	maxTitleLen           = 300
	maxExcerptLen         = 1000
	maxNoteLen            = 10000
	maxCollectionTitleLen = 100
	maxDescriptionLen     = 500
	maxTagLen             = 50
)

var (
	tagStripRe      = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// SanitizeTag normalizes a single tag: special characters stripped,
// whitespace collapsed, lowercased, capped at 50 characters. Returns ""
// for tags that normalize to nothing.
func SanitizeTag(tag string) string {
	tag = tagStripRe.ReplaceAllString(tag, "")
	tag = strings.TrimSpace(whitespaceRunRe.ReplaceAllString(tag, " "))
	tag = truncate(tag, maxTagLen)
	return strings.ToLower(tag)
}

// SanitizeTags normalizes every tag, drops empties, and removes duplicates
// while preserving the caller's order. The result is never nil so a tag
// replacement encodes as an empty JSON array rather than null.
func SanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, raw := range tags {
		tag := SanitizeTag(raw)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
