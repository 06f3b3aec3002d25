// Package candidate pulls location candidates out of noisy post text.
//
// The input is whatever an OCR engine or a page scrape produced: Korean
// text with stray whitespace, punctuation debris and numbers glued to
// syllables. Two extraction paths are offered. Addresses returns full
// street or lot-number addresses, validated and ordered longest first.
// Places returns a lighter mix of road addresses, hashtag bodies and
// words ending in a place-type suffix such as 역 or 공원.
//
// Both paths are pure functions of their input. They never fail; an empty
// result means nothing location-shaped was found.
package candidate
