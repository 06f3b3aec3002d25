package candidate

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const minPlaceRunes = 3

// places implements the place/hashtag path on already capped text. The raw
// text is used rather than Normalize output because hashtags need their #.
func places(text string, excluded []string) []string {
	out := []string{}
	if text == "" {
		return out
	}
	text = norm.NFKC.String(text)
	seen := make(map[string]struct{})

	for _, m := range roadRE.FindAllString(text, -1) {
		out = appendUnique(out, seen, collapseSpaces(m))
	}
	for _, m := range hashtagRE.FindAllStringSubmatch(text, -1) {
		out = appendUnique(out, seen, m[1])
	}
	for _, m := range placeRE.FindAllString(text, -1) {
		if runeLen(m) < minPlaceRunes || isExcluded(m, excluded) {
			continue
		}
		out = appendUnique(out, seen, m)
	}
	return out
}

func isExcluded(s string, excluded []string) bool {
	for _, x := range excluded {
		if x != "" && strings.Contains(s, x) {
			return true
		}
	}
	return false
}
