package candidate

import "strings"

// SplitHashtags separates #tags from post text. The returned body has every
// tag removed and is trimmed; tags keep their # and appear in source order.
func SplitHashtags(text string) (string, []string) {
	tags := hashtagRE.FindAllString(text, -1)
	if tags == nil {
		tags = []string{}
	}
	body := strings.TrimSpace(hashtagRE.ReplaceAllString(text, ""))
	return body, tags
}
