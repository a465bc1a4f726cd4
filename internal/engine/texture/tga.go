package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes a TGA image.
// Supports uncompressed (type 2) and RLE compressed (type 10) true-color
// images at 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("tga: header too short (%d bytes)", len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, errors.New("tga: empty image")
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := &tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		stride:      bpp / 8,
		topToBottom: topToBottom,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw(width * height)
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

// tgaDecoder writes BGR(A) pixels into img in file order.
type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	stride      int
	topToBottom bool
	n           int // pixels written
}

func (d *tgaDecoder) next() (color.RGBA, bool) {
	if d.pos+d.stride > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos : d.pos+d.stride]
	d.pos += d.stride
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.stride == 4 {
		c.A = p[3]
	}
	return c, true
}

func (d *tgaDecoder) put(c color.RGBA) {
	w := d.img.Rect.Dx()
	x, y := d.n%w, d.n/w
	if !d.topToBottom {
		y = d.img.Rect.Dy() - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.n++
}

func (d *tgaDecoder) raw(count int) error {
	for i := 0; i < count; i++ {
		c, ok := d.next()
		if !ok {
			return errTGATruncated
		}
		d.put(c)
	}
	return nil
}

// rle decodes run-length packets. A truncated stream leaves the remaining
// pixels transparent.
func (d *tgaDecoder) rle() error {
	total := d.img.Rect.Dx() * d.img.Rect.Dy()
	for d.n < total && d.pos < len(d.src) {
		header := d.src[d.pos]
		d.pos++
		count := min(int(header&0x7F)+1, total-d.n)

		if header&0x80 == 0 {
			if err := d.raw(count); err != nil {
				return nil
			}
			continue
		}
		c, ok := d.next()
		if !ok {
			return nil
		}
		for i := 0; i < count; i++ {
			d.put(c)
		}
	}
	return nil
}
