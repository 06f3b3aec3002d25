package scrape

import (
	"net/url"
	"strings"
)

// trackingParams are share-link parameters that do not select content.
var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content", "utm_id",
	"igsh", "igshid", "fbclid", "gclid", "si",
}

// canonicalize drops the fragment and tracking parameters and lowercases
// the host so share links of the same post hit the same cache entry.
func canonicalize(u *url.URL) {
	u.Fragment = ""
	u.RawFragment = ""
	u.Host = strings.ToLower(u.Host)
	if u.RawQuery == "" {
		return
	}
	q := u.Query()
	removed := false
	for _, p := range trackingParams {
		if q.Has(p) {
			q.Del(p)
			removed = true
		}
	}
	if removed {
		u.RawQuery = q.Encode()
	}
}
