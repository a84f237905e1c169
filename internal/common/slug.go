package common

import "strings"

// FallbackSlug is used when a venue has no resolvable city or province name.
const FallbackSlug = "onbekend"

// Slugify converts a human-readable name into a URL-safe identifier:
// lowercase, runs of non-alphanumeric characters collapsed to a single
// hyphen, no leading or trailing hyphen. Deterministic for a given input.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastHyphen := true // Suppress a leading hyphen
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// SlugifyOrFallback slugifies the given name, substituting the fallback
// label when the name is empty or slugifies to nothing.
func SlugifyOrFallback(text string) string {
	slug := Slugify(text)
	if slug == "" {
		return FallbackSlug
	}
	return slug
}
