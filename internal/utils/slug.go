package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Slugify converts a display name into a URL-safe slug:
// lowercase, non-alphanumerics collapsed to single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "workspace"
	}
	return slug
}

// UniqueSuffix returns a short random suffix for slug collision handling.
func UniqueSuffix() string {
	return uuid.NewString()[:8]
}
