package candidate

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxInputRunes caps how much text a single call scans.
const DefaultMaxInputRunes = 50000

// Mode selects which extraction path Extract runs.
type Mode string

const (
	// ModePlace runs the place/hashtag path.
	ModePlace Mode = "place"
	// ModeAddress runs the full-address path.
	ModeAddress Mode = "address"
	// ModeAll runs both, addresses first.
	ModeAll Mode = "all"
)

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("unknown candidate mode")

// ParseMode maps a user-supplied mode name to a Mode. Empty means ModePlace.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModePlace, nil
	case ModePlace, ModeAddress, ModeAll:
		return m, nil
	default:
		return "", fmt.Errorf("%w %q (want place, address or all)", ErrUnknownMode, s)
	}
}

// Options configures an Extractor.
type Options struct {
	// MaxInputRunes truncates longer inputs before matching. Zero or
	// negative selects DefaultMaxInputRunes.
	MaxInputRunes int
	// ExcludedPlaces drops place-suffix matches containing any entry. Nil
	// selects DefaultExcludedPlaces; an empty non-nil slice disables it.
	ExcludedPlaces []string
}

// Extractor runs the candidate paths with a fixed configuration. It is
// immutable and safe for concurrent use.
type Extractor struct {
	maxInputRunes int
	excluded      []string
}

// New builds an Extractor from opts.
func New(opts Options) *Extractor {
	e := &Extractor{maxInputRunes: opts.MaxInputRunes}
	if e.maxInputRunes <= 0 {
		e.maxInputRunes = DefaultMaxInputRunes
	}
	if opts.ExcludedPlaces == nil {
		e.excluded = append([]string(nil), DefaultExcludedPlaces...)
	} else {
		for _, x := range opts.ExcludedPlaces {
			if x = strings.TrimSpace(x); x != "" {
				e.excluded = append(e.excluded, x)
			}
		}
	}
	return e
}

var defaultExtractor = New(Options{})

// Default returns the Extractor behind the package-level functions.
func Default() *Extractor { return defaultExtractor }

// ExcludedPlaces returns a copy of the active exclusion list.
func (e *Extractor) ExcludedPlaces() []string {
	return append([]string{}, e.excluded...)
}

// Addresses returns validated address candidates, longest first.
func (e *Extractor) Addresses(text string) []string {
	return addresses(truncateRunes(text, e.maxInputRunes))
}

// Places returns road addresses, hashtag bodies and place-suffix words in
// scan order, address matches first.
func (e *Extractor) Places(text string) []string {
	return places(truncateRunes(text, e.maxInputRunes), e.excluded)
}

// All returns Addresses followed by any Places not already present.
func (e *Extractor) All(text string) []string {
	out := e.Addresses(text)
	seen := make(map[string]struct{}, len(out))
	for _, s := range out {
		seen[s] = struct{}{}
	}
	for _, s := range e.Places(text) {
		out = appendUnique(out, seen, s)
	}
	return out
}

// Extract dispatches on mode. Unknown modes fall back to ModePlace.
func (e *Extractor) Extract(text string, mode Mode) []string {
	switch mode {
	case ModeAddress:
		return e.Addresses(text)
	case ModeAll:
		return e.All(text)
	default:
		return e.Places(text)
	}
}

// ExtractAddressCandidates runs the full-address path with default options.
func ExtractAddressCandidates(text string) []string {
	return defaultExtractor.Addresses(text)
}

// ExtractPlaceCandidates runs the place/hashtag path with default options.
func ExtractPlaceCandidates(text string) []string {
	return defaultExtractor.Places(text)
}
