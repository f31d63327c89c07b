package utils

import (
	"regexp"
	"strconv"
	"strings"
)

const MaxSlugBaseLength = 50

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// DocumentID is the index document id for a CMS record. Blog and kalam ids
// come from separate tables, so the kind prefix keeps them apart.
// Example: ("kalam", 12) -> "kalam-12"
func DocumentID(kind string, id int64) string {
	return kind + "-" + strconv.FormatInt(id, 10)
}

// GenerateSlug builds a readable slug from a title and the record id.
// Format: {kebab-case-title}-{id}
// Example: "Qawwālī Night" + 7 -> "qawwali-night-7"
// Titles with no latin letters (Urdu, Arabic) produce just the id.
func GenerateSlug(title string, id int64) string {
	if id <= 0 {
		return ""
	}

	base := toSlug(title)
	suffix := strconv.FormatInt(id, 10)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

func toSlug(text string) string {
	slug := nonSlugChars.ReplaceAllString(NormalizeKey(text), "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > MaxSlugBaseLength {
		slug = slug[:MaxSlugBaseLength]
		if lastHyphen := strings.LastIndex(slug, "-"); lastHyphen > 0 {
			slug = slug[:lastHyphen]
		}
	}
	return slug
}
