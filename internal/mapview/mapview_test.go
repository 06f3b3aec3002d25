package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	assert.Equal(t, DefaultCenter, s.Center)
	assert.Equal(t, 15, s.Zoom)
	assert.Empty(t, s.Markers)
	assert.NotNil(t, s.Markers)
}

func TestRender_ReplacesMarkersAndRecenters(t *testing.T) {
	s := New()
	s.Render([]Pin{{Name: "old", Position: LatLng{1, 1}}})
	s.Zoom = 11

	pins := []Pin{
		{Name: "현선이네", Category: "분식", Address: "서울 용산구 한강대로39길 2-13", Position: LatLng{37.5275, 126.9654}},
		{Name: "강남역", Position: LatLng{37.4979, 127.0276}},
	}
	s.Render(pins)

	require.Len(t, s.Markers, 2)
	require.Len(t, s.InfoWindows, 2)
	assert.Equal(t, "현선이네", s.Markers[0].Title)
	assert.Equal(t, pins[0].Position, s.Center)
	assert.Equal(t, DefaultZoom, s.Zoom)
	assert.Contains(t, s.InfoWindows[0].Content, "<h3>현선이네</h3>")
	assert.Contains(t, s.InfoWindows[0].Content, "한강대로39길")
	assert.Contains(t, s.InfoWindows[1].Content, "기타")
}

func TestRender_EmptyKeepsViewport(t *testing.T) {
	s := New()
	s.Render([]Pin{{Name: "a", Position: LatLng{35.1, 129.0}}})
	s.Render(nil)
	assert.Empty(t, s.Markers)
	assert.Equal(t, LatLng{35.1, 129.0}, s.Center)
}

func TestRender_EscapesContent(t *testing.T) {
	s := New()
	s.Render([]Pin{{Name: "<script>x</script>"}})
	assert.NotContains(t, s.InfoWindows[0].Content, "<script>")
}

func TestOpenInfoWindow(t *testing.T) {
	s := New()
	s.Render([]Pin{{Name: "a"}, {Name: "b"}})
	require.NoError(t, s.OpenInfoWindow(1))
	assert.False(t, s.InfoWindows[0].Open)
	assert.True(t, s.InfoWindows[1].Open)
	require.NoError(t, s.OpenInfoWindow(0))
	assert.True(t, s.InfoWindows[0].Open)
	assert.False(t, s.InfoWindows[1].Open)
	assert.Error(t, s.OpenInfoWindow(2))
}

func TestReset(t *testing.T) {
	s := New()
	s.Render([]Pin{{Name: "a", Position: LatLng{1, 2}}})
	s.Reset()
	assert.Empty(t, s.Markers)
	assert.Equal(t, DefaultCenter, s.Center)
}
