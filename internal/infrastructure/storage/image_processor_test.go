package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alupro-backend/internal/config"
)

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 37, G: 99, B: 235, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	p := NewImageProcessor()

	assert.NoError(t, p.ValidateImage(makePNG(t, 10, 10)))

	err := p.ValidateImage([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	p.MaxSize = 8
	err = p.ValidateImage(makePNG(t, 10, 10))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestProcessImage_Variants(t *testing.T) {
	p := NewImageProcessor()

	variants, err := p.ProcessImage(makePNG(t, 2000, 1000))
	require.NoError(t, err)
	require.Len(t, variants, 3)

	for name, size := range ImageVariants {
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(variants[name]))
		require.NoError(t, err, name)
		assert.Equal(t, size, cfg.Width, name)
		assert.Equal(t, size/2, cfg.Height, name)
	}
}

func TestProcessImage_NoUpscale(t *testing.T) {
	p := NewImageProcessor()

	variants, err := p.ProcessImage(makePNG(t, 200, 100))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(variants["large"]))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
}

func TestValidateVideo(t *testing.T) {
	// minimal ISO BMFF header: size + "ftyp" + brand
	mp4 := append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42\x00\x00\x00\x00mp42isom")...)
	ct, ext, err := ValidateVideo(mp4)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", ct)
	assert.Equal(t, "mp4", ext)

	_, _, err = ValidateVideo([]byte("<html></html>"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/alupro",
		publicBaseURL(config.MinIOConfig{Bucket: "alupro"}, "localhost:9000"))
	assert.Equal(t, "https://cdn.alupro.com",
		publicBaseURL(config.MinIOConfig{Bucket: "alupro", PublicURL: "https://cdn.alupro.com/"}, "minio:9000"))
}
