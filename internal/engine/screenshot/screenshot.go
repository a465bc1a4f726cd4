// Package screenshot saves rendered frames as PNG files.
package screenshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const timeLayout = "2006-01-02_15-04-05"

// Capture writes numbered PNG files into a directory.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New creates a capture writing to dir (created on first save) with file
// names starting with prefix.
func New(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// SavePixels saves a GL framebuffer read: tightly packed RGBA rows,
// bottom row first.
func (c *Capture) SavePixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: %dx%d needs %d bytes, got %d",
			width, height, width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return c.Save(img)
}

// Save encodes img into the next free file name and returns its path.
// Two captures within the same second get a numeric suffix.
func (c *Capture) Save(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating screenshot dir: %w", err)
		}
	}

	base := fmt.Sprintf("%s_%s", c.prefix, c.now().Format(timeLayout))
	for n := 0; ; n++ {
		name := base + ".png"
		if n > 0 {
			name = fmt.Sprintf("%s_%d.png", base, n)
		}
		path := filepath.Join(c.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating %s: %w", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return "", fmt.Errorf("encoding %s: %w", path, err)
		}
		return path, f.Close()
	}
}
