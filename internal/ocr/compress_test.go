package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noisePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompress_SmallImageUnchanged(t *testing.T) {
	data := noisePNG(t, 8, 8)
	out, mime, err := Compress(data, DefaultMaxUploadBytes)
	require.NoError(t, err)
	assert.Equal(t, data, out)
	assert.Equal(t, "image/png", mime)
}

func TestCompress_ShrinksToLimit(t *testing.T) {
	data := noisePNG(t, 300, 300)
	const limit = 20_000
	require.Greater(t, len(data), limit)

	out, mime, err := Compress(data, limit)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.LessOrEqual(t, len(out), limit)

	_, err = jpeg.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
}

func TestCompress_Errors(t *testing.T) {
	_, _, err := Compress(nil, 10)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, _, err = Compress(bytes.Repeat([]byte("x"), 100), 10)
	assert.Error(t, err)

	_, _, err = Compress(noisePNG(t, 100, 100), 50)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}
