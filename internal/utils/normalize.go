package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents removes diacritics so "Qawwālī" and "Qawwali" index and match
// the same way. Arabic-script harakat are combining marks too and are removed.
func FoldAccents(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// NormalizeKey folds accents, lower-cases and collapses whitespace. Used for
// facet values and filter comparisons.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(FoldAccents(s)), " "))
}

// MatchKey returns the entry of candidates whose normalized form equals key,
// or key itself when none does.
func MatchKey(key string, candidates []string) string {
	target := NormalizeKey(key)
	for _, c := range candidates {
		if NormalizeKey(c) == target {
			return c
		}
	}
	return key
}
