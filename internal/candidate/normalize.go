package candidate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	// Anything outside ASCII word characters, whitespace, Hangul syllables
	// and hyphen is treated as OCR debris.
	debrisRE   = regexp.MustCompile(`[^\w\s가-힣\-]`)
	spaceRunRE = regexp.MustCompile(`\s+`)
)

// Normalize prepares raw OCR or scraped text for pattern matching.
// Text is NFKC-composed first so full-width digits and decomposed Hangul
// match the patterns, then debris becomes spaces, whitespace runs collapse
// to a single space and the ends are trimmed. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := norm.NFKC.String(text)
	s = debrisRE.ReplaceAllString(s, " ")
	s = spaceRunRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// collapseSpaces joins whitespace-separated fields with single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes returns at most max runes of s. max <= 0 disables the cap.
func truncateRunes(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
