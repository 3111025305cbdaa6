package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/disintegration/imaging"
)

var (
	ErrFileTooLarge      = errors.New("file too large")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Variant widths for product and gallery images
var ImageVariants = map[string]int{
	"large":     1200,
	"medium":    600,
	"thumbnail": 300,
}

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024}
}

// ValidateImage accepts JPEG and PNG only
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w: image exceeds %dMB", ErrFileTooLarge, p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: not an image", ErrUnsupportedFormat)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("%w: %s (only jpeg/png)", ErrUnsupportedFormat, format)
	}
}

// ProcessImage returns variant name -> JPEG bytes (quality 85).
// Images are only shrunk, never upscaled.
func (p *ImageProcessor) ProcessImage(data []byte) (map[string][]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	variants := make(map[string][]byte, len(ImageVariants))
	for name, size := range ImageVariants {
		resized := img
		if img.Bounds().Dx() > size || img.Bounds().Dy() > size {
			resized = imaging.Fit(img, size, size, imaging.Lanczos)
		}

		b := new(bytes.Buffer)
		if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 85}); err != nil {
			return nil, fmt.Errorf("cannot encode %s: %w", name, err)
		}
		variants[name] = b.Bytes()
	}
	return variants, nil
}

// =====================================================
// VIDEO
// =====================================================

// Intro videos are stored as-is, no transcoding
const MaxVideoSize = 50 * 1024 * 1024

var allowedVideoTypes = map[string]string{
	"video/mp4":  "mp4",
	"video/webm": "webm",
}

// ValidateVideo sniffs the content type and returns the file extension to store under
func ValidateVideo(data []byte) (contentType, ext string, err error) {
	if len(data) > MaxVideoSize {
		return "", "", fmt.Errorf("%w: video exceeds %dMB", ErrFileTooLarge, MaxVideoSize/(1024*1024))
	}
	contentType = http.DetectContentType(data)
	ext, ok := allowedVideoTypes[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: %s (only mp4/webm)", ErrUnsupportedFormat, contentType)
	}
	return contentType, ext, nil
}
