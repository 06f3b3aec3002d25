package extract

import (
	"errors"
	"strings"

	"github.com/hyperifyio/placepin/internal/candidate"
)

// ErrNoPostContent is returned when a page has neither a caption meta tag
// nor an <article> to read the post from.
var ErrNoPostContent = errors.New("post content not found")

// Post is the caption of a social media post split into body and tags.
type Post struct {
	Text     string   `json:"text"`
	Hashtags []string `json:"hashtags"`
}

// HashtagLine joins the tags with single spaces, the way they are shown
// under a post.
func (p Post) HashtagLine() string {
	return strings.Join(p.Hashtags, " ")
}

// PostFromDocument reads the post caption from doc. The og:description is
// split at each '#': the first part is the body and every other part is a
// tag. Without a description the <article> text is used and its #tags
// are split out.
func PostFromDocument(doc Document) (Post, error) {
	if doc.Description != "" {
		parts := strings.Split(doc.Description, "#")
		p := Post{Text: strings.TrimSpace(parts[0]), Hashtags: []string{}}
		for _, part := range parts[1:] {
			if tag := strings.TrimSpace(part); tag != "" {
				p.Hashtags = append(p.Hashtags, "#"+tag)
			}
		}
		return p, nil
	}
	if doc.Article != "" {
		body, tags := candidate.SplitHashtags(doc.Article)
		return Post{Text: body, Hashtags: tags}, nil
	}
	return Post{}, ErrNoPostContent
}
