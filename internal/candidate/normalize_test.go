package candidate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "only whitespace", in: " \n\t ", want: ""},
		{name: "collapses line breaks", in: "서울\n\n용산구   한강대로", want: "서울 용산구 한강대로"},
		{name: "punctuation becomes space", in: "서울, 용산구 (한강대로)!", want: "서울 용산구 한강대로"},
		{name: "keeps hyphen and underscore", in: "2-13 a_b", want: "2-13 a_b"},
		{name: "drops hash marker", in: "#맛집", want: "맛집"},
		{name: "full-width digits fold to ascii", in: "한강대로３９길 ２-１３", want: "한강대로39길 2-13"},
		{name: "decomposed hangul is composed", in: "\u1109\u1165\u110b\u116e\u11af", want: "서울"},
		{name: "emoji and pin removed", in: "📍 서울 ✨", want: "서울"},
		{name: "invalid utf-8 removed", in: "서울\xff용산구", want: "서울 용산구"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, s := range propertyCorpus {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

func FuzzNormalizeIdempotent(f *testing.F) {
	for _, s := range propertyCorpus {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "서울", truncateRunes("서울 용산구", 2))
	assert.Equal(t, "서울 용산구", truncateRunes("서울 용산구", 0))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	long := strings.Repeat("가", 100)
	assert.Equal(t, 40, runeLen(truncateRunes(long, 40)))
}
