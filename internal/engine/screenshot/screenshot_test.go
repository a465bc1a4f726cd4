package screenshot

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedCapture(dir string) *Capture {
	c := New(dir, "surface")
	c.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC) }
	return c
}

func TestSavePixelsFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := fixedCapture(dir)

	// 1x2 image: bottom row red, top row blue (GL order is bottom first).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := c.SavePixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("SavePixels: %v", err)
	}
	if want := filepath.Join(dir, "surface_2024-03-01_12-30-45.png"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	top := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	bottom := color.RGBAModel.Convert(img.At(0, 1)).(color.RGBA)
	if top != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel = %v, want blue", top)
	}
	if bottom != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel = %v, want red", bottom)
	}
}

func TestSaveUniqueNames(t *testing.T) {
	dir := t.TempDir()
	c := fixedCapture(dir)
	pixels := make([]byte, 4)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		path, err := c.SavePixels(pixels, 1, 1)
		if err != nil {
			t.Fatalf("SavePixels %d: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate path %s", path)
		}
		seen[path] = true
	}
	if !seen[filepath.Join(dir, "surface_2024-03-01_12-30-45_2.png")] {
		t.Errorf("expected numbered third capture, got %v", seen)
	}
}

func TestSavePixelsSizeMismatch(t *testing.T) {
	c := fixedCapture(t.TempDir())
	tests := []struct {
		name          string
		pixels        []byte
		width, height int
	}{
		{"short", make([]byte, 7), 1, 2},
		{"zero size", nil, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.SavePixels(tt.pixels, tt.width, tt.height); err == nil {
				t.Error("expected error")
			}
		})
	}
}
