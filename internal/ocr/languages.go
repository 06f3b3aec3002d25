package ocr

import "strings"

// languages splits a kor+eng style list, defaulting to Korean then English.
func languages(spec string) []string {
	var out []string
	for _, l := range strings.Split(spec, "+") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return []string{"kor", "eng"}
	}
	return out
}
