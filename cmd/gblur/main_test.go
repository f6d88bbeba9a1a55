package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// testImage returns a small gray gradient.
func testImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 32)})
		}
	}
	return img
}

func TestWriteImageSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := writeImage(path, testImage()); err != nil {
		t.Fatalf("writeImage: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode written file: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 8 || got.Dy() != 8 {
		t.Fatalf("decoded bounds = %v, want 8x8", got)
	}
}

func TestWriteImageCreateError(t *testing.T) {
	// Reports failures instead of silently succeeding, and leaves no
	// partial file behind.
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	if err := writeImage(path, testImage()); err == nil {
		t.Fatal("writeImage into nonexistent directory: want error, got nil")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("partial output left behind: stat err = %v", err)
	}
}

func TestEncodeImageFormats(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	jpegMagic := []byte{0xff, 0xd8}

	tests := []struct {
		path  string
		magic []byte
	}{
		{"a.png", pngMagic},
		{"a.jpg", jpegMagic},
		{"a.JPEG", jpegMagic},
		{"-", pngMagic}, // stdout defaults to PNG
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := encodeImage(&buf, tt.path, testImage()); err != nil {
			t.Fatalf("encodeImage(%q): %v", tt.path, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), tt.magic) {
			t.Fatalf("encodeImage(%q): wrong magic bytes %x", tt.path, buf.Bytes()[:4])
		}
	}
}
