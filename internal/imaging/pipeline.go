// Package imaging turns a selected image file into a previewable,
// size-bounded upload asset: it rejects oversized or non-image inputs,
// produces a base64 data-URL preview, and recompresses large bitmaps down
// to a bounded JPEG before upload.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

const (
	// MaxUploadBytes is the pre-compression ceiling. Files above it are
	// rejected outright, before any state is touched.
	MaxUploadBytes = 5 * 1024 * 1024

	// MaxEdge bounds both dimensions of a compressed image.
	MaxEdge = 1200

	// JPEGQuality is the re-encode quality for compressed assets.
	JPEGQuality = 70
)

var (
	ErrTooLarge = errors.New("image larger than 5MB")
	ErrNotImage = errors.New("file is not an image")
)

// Source distinguishes the two selection paths. Dropped files carry a MIME
// check the picker path never had: the picker input already filters on
// image types, a drop can hand us anything.
type Source int

const (
	SourcePicker Source = iota
	SourceDrop
)

// Asset is one selected image, ready for preview and upload. It is
// replaced wholesale on re-selection and cleared on removal or after a
// successful submit.
type Asset struct {
	RawBytes       []byte
	Filename       string
	MIMEType       string
	SizeBytes      int64
	PreviewDataURL string
	Compressed     bool
	ModTime        time.Time
}

// Accept applies the rejection policy and wraps an accepted file in an
// Asset. On rejection the caller's current asset must be left untouched;
// Accept guarantees that by never mutating anything it did not create.
func Accept(filename string, data []byte, mimeType string, src Source) (*Asset, error) {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if src == SourceDrop && !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrNotImage
	}
	if int64(len(data)) > MaxUploadBytes {
		return nil, ErrTooLarge
	}
	return &Asset{
		RawBytes:  data,
		Filename:  filename,
		MIMEType:  mimeType,
		SizeBytes: int64(len(data)),
		ModTime:   time.Now(),
	}, nil
}

// EncodePreview renders the asset as a base64 data URL and records it on
// the asset. This is the payload a preview surface displays.
func (a *Asset) EncodePreview() string {
	a.PreviewDataURL = fmt.Sprintf("data:%s;base64,%s", a.MIMEType, base64.StdEncoding.EncodeToString(a.RawBytes))
	return a.PreviewDataURL
}

// Compress decodes the asset, scales it so neither edge exceeds MaxEdge
// while preserving aspect ratio, and re-encodes it as JPEG. The result is
// a new asset with the original filename and a fresh timestamp; the input
// is left untouched.
func Compress(a *Asset) (*Asset, error) {
	img, _, err := image.Decode(bytes.NewReader(a.RawBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := targetBounds(bounds.Dx(), bounds.Dy())

	scaled := img
	if w != bounds.Dx() || h != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		scaled = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return &Asset{
		RawBytes:   buf.Bytes(),
		Filename:   a.Filename,
		MIMEType:   "image/jpeg",
		SizeBytes:  int64(buf.Len()),
		Compressed: true,
		ModTime:    time.Now(),
	}, nil
}

// targetBounds shrinks (w, h) so the longer edge is at most MaxEdge,
// preserving aspect ratio. Images already within bounds pass through.
func targetBounds(w, h int) (int, int) {
	if w <= MaxEdge && h <= MaxEdge {
		return w, h
	}
	if w > h {
		return MaxEdge, max(1, h*MaxEdge/w)
	}
	return max(1, w*MaxEdge/h), MaxEdge
}
