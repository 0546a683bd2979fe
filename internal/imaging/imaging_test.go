package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 128, 255, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestProcessAcceptsJPEGAndPNG(t *testing.T) {
	for name, data := range map[string][]byte{
		"jpeg": encodeJPEG(t, 100, 80),
		"png":  encodePNG(t, 100, 80),
	} {
		t.Run(name, func(t *testing.T) {
			res, err := Process(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, "image/jpeg", res.MIME, "output is always JPEG")
			assert.NotEmpty(t, res.Data)
		})
	}
}

func TestProcessDownscalesLargeImages(t *testing.T) {
	res, err := Process(bytes.NewReader(encodeJPEG(t, 2048, 1024)))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), MaxDimension)
	assert.LessOrEqual(t, bounds.Dy(), MaxDimension)
	// Aspect ratio survives the downscale.
	assert.Equal(t, MaxDimension, bounds.Dx())
	assert.Equal(t, MaxDimension/2, bounds.Dy())
}

func TestProcessKeepsSmallImages(t *testing.T) {
	res, err := Process(bytes.NewReader(encodeJPEG(t, 64, 48)))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestProcessRejectsNonImages(t *testing.T) {
	_, err := Process(bytes.NewReader([]byte("definitely not an image")))
	assert.Error(t, err)
}

func TestProcessRejectsGIF(t *testing.T) {
	_, err := Process(bytes.NewReader([]byte("GIF89a......")))
	assert.Error(t, err)
}
