// Package util holds small text helpers shared by the server and CLI.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a preset name to its slug, the key presets are unique by.
//
//	"Warm Tones"      -> "warm-tones"
//	"Pastel_Light"    -> "pastel-light"
//	"Crème Brûlée"    -> "creme-brulee"
//	"  --Neon!!  "    -> "neon"
func Slugify(s string) string {
	// Decompose so accents split off their base letters, then drop them.
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NFC returns s in Unicode normalization form C. Visually identical strings
// typed on different systems hash to the same color once normalized.
func NFC(s string) string {
	return norm.NFC.String(s)
}
