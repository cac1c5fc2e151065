// Package thumbnail renders the fixed-width previews stored alongside avatars.
package thumbnail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// Format is an encoder output format.
type Format = imaging.Format

// PreviewWidth is the width of every generated preview in pixels.
const PreviewWidth = 100

var (
	// ErrUnsupportedFormat is returned for extensions the encoder cannot write.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrDecode is returned when the payload is not a readable image.
	ErrDecode = errors.New("cannot decode image")
	// ErrTooSmall is returned when the source image cannot produce a non-empty preview.
	ErrTooSmall = errors.New("image too small for preview")
)

// FormatFor maps a file extension (with or without the leading dot) to an encoder format.
func FormatFor(ext string) (Format, error) {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return 0, fmt.Errorf("%w: empty extension", ErrUnsupportedFormat)
	}
	f, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return f, nil
}

// Dimensions computes the preview size for a w x h source. The scale factor is the
// integer w / PreviewWidth, so sources narrower than PreviewWidth are rejected.
func Dimensions(w, h int) (int, int, error) {
	scale := w / PreviewWidth
	if scale == 0 {
		return 0, 0, fmt.Errorf("%w: width %d is below %d", ErrTooSmall, w, PreviewWidth)
	}
	height := h / scale
	if height == 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d collapses to zero height", ErrTooSmall, w, h)
	}
	return PreviewWidth, height, nil
}

// Generate decodes r and returns the preview encoded in format.
func Generate(r io.Reader, format Format) ([]byte, error) {
	src, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	width, height, err := Dimensions(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	preview := imaging.Resize(src, width, height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, preview, format); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
