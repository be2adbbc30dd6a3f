package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	MaxImageBytes = 5 << 20
	CoverMaxWidth = 1280
	webpQuality   = 80
	WebPMimeType  = "image/webp"
	webpExtension = ".webp"
)

// ToWebP decodifica JPEG/PNG/WebP, reduz para maxWidth (mantendo a proporção)
// e recodifica em WebP.
func ToWebP(r io.Reader, maxWidth int) ([]byte, error) {
	src, _, err := image.Decode(io.LimitReader(r, MaxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img := resize(src, maxWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func resize(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
