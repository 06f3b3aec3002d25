// Package mapview holds the state a map widget renders: markers, their
// info windows and the viewport. It is owned by the presentation layer and
// never read by candidate extraction.
package mapview

import (
	"fmt"
	"html"
	"strings"
)

// DefaultZoom is the zoom level used for a fresh map and after recentering.
const DefaultZoom = 15

// DefaultCenter is Seoul City Hall.
var DefaultCenter = LatLng{Lat: 37.5666805, Lng: 126.9784147}

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Pin is a resolved place handed to Render.
type Pin struct {
	Name     string
	Category string
	Address  string
	Position LatLng
}

type Marker struct {
	Position LatLng `json:"position"`
	Title    string `json:"title"`
}

// InfoWindow belongs to the marker at the same index.
type InfoWindow struct {
	Content string `json:"content"`
	Open    bool   `json:"open"`
}

// State is a map view. The zero value is not ready to use; call New.
type State struct {
	Markers     []Marker     `json:"markers"`
	InfoWindows []InfoWindow `json:"infoWindows"`
	Center      LatLng       `json:"center"`
	Zoom        int          `json:"zoom"`
}

// New returns an empty map centered on DefaultCenter.
func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset removes every marker and info window and restores the default viewport.
func (s *State) Reset() {
	s.Markers = []Marker{}
	s.InfoWindows = []InfoWindow{}
	s.Center = DefaultCenter
	s.Zoom = DefaultZoom
}

// Render replaces the markers with one per pin and centers on the first.
// With no pins the previous viewport is kept.
func (s *State) Render(pins []Pin) {
	s.Markers = make([]Marker, 0, len(pins))
	s.InfoWindows = make([]InfoWindow, 0, len(pins))
	for _, p := range pins {
		s.Markers = append(s.Markers, Marker{Position: p.Position, Title: p.Name})
		s.InfoWindows = append(s.InfoWindows, InfoWindow{Content: infoContent(p)})
	}
	if len(pins) > 0 {
		s.Center = pins[0].Position
		s.Zoom = DefaultZoom
	}
	if s.Zoom == 0 {
		s.Zoom = DefaultZoom
	}
}

// OpenInfoWindow opens the window of marker i and closes the others.
func (s *State) OpenInfoWindow(i int) error {
	if i < 0 || i >= len(s.InfoWindows) {
		return fmt.Errorf("no marker at index %d", i)
	}
	for j := range s.InfoWindows {
		s.InfoWindows[j].Open = j == i
	}
	return nil
}

func infoContent(p Pin) string {
	category := p.Category
	if category == "" {
		category = "기타"
	}
	var b strings.Builder
	b.WriteString(`<div class="iw_inner"><h3>`)
	b.WriteString(html.EscapeString(p.Name))
	b.WriteString(`</h3><p>`)
	b.WriteString(html.EscapeString(category))
	b.WriteString(`<br />`)
	if p.Address != "" {
		b.WriteString(html.EscapeString(p.Address))
		b.WriteString(`<br />`)
	}
	b.WriteString(`</p></div>`)
	return b.String()
}
