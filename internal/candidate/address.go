package candidate

import (
	"regexp"
	"sort"
	"strings"
)

const minAddressRunes = 5

var (
	digitSyllableRE = regexp.MustCompile(`(\d)([가-힣])`)
	syllableDigitRE = regexp.MustCompile(`([가-힣])(\d)`)
	// Numbered road names such as 한강대로39길, 123번길 or 을지로3가 are one
	// token and keep their digits attached.
	numberedRoadRE = regexp.MustCompile(`^[가-힣A-Za-z]*\d+(?:번길|번가|길|로|가)$`)
)

// addresses implements the full-address path on already capped text.
func addresses(text string) []string {
	normalized := Normalize(text)
	out := []string{}
	if normalized == "" {
		return out
	}
	seen := make(map[string]struct{})
	for _, re := range addressPatterns {
		for _, m := range re.FindAllString(normalized, -1) {
			c := tidyAddress(m)
			if !IsValidAddress(c) {
				continue
			}
			out = appendUnique(out, seen, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return runeLen(out[i]) > runeLen(out[j])
	})
	return out
}

// tidyAddress is the display clean-up applied to a raw match: whitespace
// collapses and a space separates digit runs from adjacent syllables,
// except inside numbered road names, so "서울 용산구 한강대로39길 2-13"
// comes out unchanged while 번지 and 층 tokens are still split.
func tidyAddress(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		if numberedRoadRE.MatchString(f) {
			continue
		}
		f = digitSyllableRE.ReplaceAllString(f, "${1} ${2}")
		fields[i] = syllableDigitRE.ReplaceAllString(f, "${1} ${2}")
	}
	return strings.Join(fields, " ")
}

// IsValidAddress reports whether s carries the minimal structure of an
// address: at least five runes, a city/province (시, 도) or district/county
// (구, 군) marker, and a digit.
func IsValidAddress(s string) bool {
	if runeLen(s) < minAddressRunes {
		return false
	}
	if !strings.ContainsAny(s, "시도구군") {
		return false
	}
	return strings.ContainsAny(s, "0123456789")
}

func appendUnique(out []string, seen map[string]struct{}, s string) []string {
	if _, ok := seen[s]; ok {
		return out
	}
	seen[s] = struct{}{}
	return append(out, s)
}
