// Package testutil provides in-memory fixtures for media tests.
// It builds small but real image files so decoders run against genuine data
// without touching the actual filesystem.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"path"
	"testing"

	"github.com/jackmordaunt/icns/v2"
	"github.com/jmgilman/go/fs/billy"
)

// Test SVG documents.
const (
	// StaticSVG is a vector image without animation.
	StaticSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="24px" height="24" viewBox="0 0 24 24">
  <rect x="2" y="2" width="20" height="20" fill="#336699"/>
</svg>
`

	// AnimatedSVG is a loading spinner driven by SMIL animation.
	AnimatedSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0,0,100,100">
  <circle cx="50" cy="50" r="32" stroke="#e15b64" stroke-width="8" fill="none">
    <animateTransform attributeName="transform" type="rotate" repeatCount="indefinite"
      dur="1s" values="0 50 50;360 50 50"/>
  </circle>
</svg>
`

	// NotSVG is XML whose root element is not <svg>.
	NotSVG = `<html><body>not an image</body></html>`
)

// Solid returns a w×h image filled with c.
func Solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// PNG returns an encoded w×h red PNG.
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, Solid(w, h, color.RGBA{R: 255, A: 255})); err != nil {
		t.Fatalf("failed to encode PNG fixture: %v", err)
	}
	return buf.Bytes()
}

// JPEG returns an encoded w×h green JPEG.
func JPEG(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Solid(w, h, color.RGBA{G: 255, A: 255}), nil); err != nil {
		t.Fatalf("failed to encode JPEG fixture: %v", err)
	}
	return buf.Bytes()
}

// ICNS returns an encoded icon set built from a w×h blue square.
func ICNS(t testing.TB, w int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := icns.Encode(&buf, Solid(w, w, color.RGBA{B: 255, A: 255})); err != nil {
		t.Fatalf("failed to encode ICNS fixture: %v", err)
	}
	return buf.Bytes()
}

// MemoryFS creates an in-memory filesystem containing files, keyed by path.
func MemoryFS(t testing.TB, files map[string][]byte) *billy.MemoryFS {
	t.Helper()
	mfs := billy.NewMemory()
	for name, data := range files {
		if err := mfs.MkdirAll(path.Dir(name), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", name, err)
		}
		if err := mfs.WriteFile(name, data, 0o644); err != nil {
			t.Fatalf("failed to create test file %s: %v", name, err)
		}
	}
	return mfs
}
