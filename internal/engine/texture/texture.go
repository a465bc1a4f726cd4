// Package texture decodes and prepares images for upload as surface
// texture maps.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/Faultbox/surfacelab/internal/logger"
)

// ErrUnsupportedFormat is returned when no decoder recognizes the data.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Kind identifies which map a texture feeds in the textured shader.
type Kind int

const (
	KindDiffuse Kind = iota
	KindNormal
	KindSpecular
)

func (k Kind) String() string {
	switch k {
	case KindDiffuse:
		return "diffuse"
	case KindNormal:
		return "normal"
	case KindSpecular:
		return "specular"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Source supplies raw file contents by path.
type Source interface {
	Load(path string) ([]byte, error)
}

// Decode decodes an image, choosing the TGA decoder by file extension and
// the registered decoders (PNG, JPEG, GIF, BMP, WebP) otherwise.
func Decode(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// Prepare converts img to tightly packed RGBA ready for glTexImage2D.
// Images larger than maxSize on either side are downscaled preserving the
// aspect ratio (maxSize <= 0 disables scaling). Rows are flipped so the
// first row is the bottom of the image, matching GL texture coordinates.
func Prepare(img image.Image, maxSize int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			w, h = maxSize, max(1, h*maxSize/w)
		} else {
			w, h = max(1, w*maxSize/h), maxSize
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Rect, img, b, draw.Src, nil)
	}
	FlipVertical(dst)
	return dst
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) {
	h := img.Rect.Dy()
	rowLen := img.Rect.Dx() * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+rowLen]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// Fallback returns a 1x1 texture that makes a missing map neutral: white
// diffuse, a flat tangent-space normal, and no specular.
func Fallback(kind Kind) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	var c color.RGBA
	switch kind {
	case KindNormal:
		c = color.RGBA{R: 128, G: 128, B: 255, A: 255}
	case KindSpecular:
		c = color.RGBA{A: 255}
	default:
		c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	img.SetRGBA(0, 0, c)
	return img
}

// Load reads, decodes and prepares a texture map. If path is empty or the
// file cannot be used, it logs a warning and returns the fallback for kind
// with ok set to false.
func Load(src Source, path string, kind Kind, maxSize int) (img *image.RGBA, ok bool) {
	if path == "" {
		return Fallback(kind), false
	}
	data, err := src.Load(path)
	if err == nil {
		var decoded image.Image
		if decoded, err = Decode(path, data); err == nil {
			img = Prepare(decoded, maxSize)
			logger.Debug("texture loaded",
				zap.Stringer("kind", kind),
				zap.String("path", path),
				zap.Int("width", img.Rect.Dx()),
				zap.Int("height", img.Rect.Dy()))
			return img, true
		}
	}
	logger.Warn("texture unavailable, using fallback",
		zap.Stringer("kind", kind),
		zap.String("path", path),
		zap.Error(err))
	return Fallback(kind), false
}
