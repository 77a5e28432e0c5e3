package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// encodePNG renders a small gradient so the encoder has real pixel data.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y += 8 {
		for x := 0; x < w; x += 8 {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestAcceptRejectsOversized(t *testing.T) {
	data := make([]byte, MaxUploadBytes+1)

	for _, src := range []Source{SourcePicker, SourceDrop} {
		if _, err := Accept("big.jpg", data, "image/jpeg", src); !errors.Is(err, ErrTooLarge) {
			t.Errorf("Expected ErrTooLarge for source %v, got %v", src, err)
		}
	}
}

func TestAcceptMIMEPolicyPerSource(t *testing.T) {
	data := []byte("plain text, not pixels")

	// The drop path screens MIME types; the picker path never did.
	if _, err := Accept("notes.txt", data, "text/plain", SourceDrop); !errors.Is(err, ErrNotImage) {
		t.Errorf("Expected ErrNotImage on drop, got %v", err)
	}
	if _, err := Accept("notes.txt", data, "text/plain", SourcePicker); err != nil {
		t.Errorf("Expected picker path to accept any MIME, got %v", err)
	}
}

func TestAcceptDetectsMIME(t *testing.T) {
	data := encodePNG(t, 16, 16)
	a, err := Accept("pic", data, "", SourceDrop)
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if a.MIMEType != "image/png" {
		t.Errorf("Expected detected image/png, got %q", a.MIMEType)
	}
	if a.SizeBytes != int64(len(data)) {
		t.Errorf("Expected size %d, got %d", len(data), a.SizeBytes)
	}
}

func TestCompressBoundsLongerEdge(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		maxW  int
		maxH  int
		grows bool
	}{
		{name: "landscape over limit", w: 2400, h: 1000, maxW: 1200, maxH: 500},
		{name: "portrait over limit", w: 900, h: 1800, maxW: 600, maxH: 1200},
		{name: "within limit passes through", w: 640, h: 480, maxW: 640, maxH: 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Accept("pic.png", encodePNG(t, tt.w, tt.h), "image/png", SourcePicker)
			if err != nil {
				t.Fatalf("Accept failed: %v", err)
			}

			c, err := Compress(a)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			if !c.Compressed {
				t.Error("Expected compressed flag")
			}
			if c.MIMEType != "image/jpeg" {
				t.Errorf("Expected jpeg output, got %q", c.MIMEType)
			}
			if c.Filename != "pic.png" {
				t.Errorf("Expected original filename kept, got %q", c.Filename)
			}

			img, err := jpeg.Decode(bytes.NewReader(c.RawBytes))
			if err != nil {
				t.Fatalf("Failed to decode output: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.maxW || b.Dy() != tt.maxH {
				t.Errorf("Expected %dx%d, got %dx%d", tt.maxW, tt.maxH, b.Dx(), b.Dy())
			}

			// The input asset is untouched.
			if a.Compressed || a.MIMEType != "image/png" {
				t.Error("Expected source asset to be left alone")
			}
		})
	}
}

func TestCompressRejectsNonImage(t *testing.T) {
	a := &Asset{RawBytes: []byte("not pixels"), Filename: "x.bin"}
	if _, err := Compress(a); err == nil {
		t.Error("Expected decode failure for non-image bytes")
	}
}

func TestEncodePreview(t *testing.T) {
	a, err := Accept("pic.png", encodePNG(t, 8, 8), "image/png", SourcePicker)
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	url := a.EncodePreview()
	if url == "" || a.PreviewDataURL != url {
		t.Fatal("Expected preview recorded on the asset")
	}
	const prefix = "data:image/png;base64,"
	if url[:len(prefix)] != prefix {
		t.Errorf("Expected data URL prefix, got %q", url[:len(prefix)])
	}
}

func TestSequenceGateDiscardsStaleLoads(t *testing.T) {
	var g SequenceGate

	first := g.Begin()
	second := g.Begin()

	// The older load finishing late must be dropped; only the newest
	// ticket wins.
	if g.Accept(first) {
		t.Error("Expected stale ticket to be rejected")
	}
	if !g.Accept(second) {
		t.Error("Expected latest ticket to be accepted")
	}

	third := g.Begin()
	if g.Accept(second) {
		t.Error("Expected superseded ticket to be rejected")
	}
	if !g.Accept(third) {
		t.Error("Expected newest ticket to be accepted")
	}
}
