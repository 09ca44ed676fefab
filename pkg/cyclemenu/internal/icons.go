package internal

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
)

// IconSource resolves an icon reference to SVG text. A reference is either
// one of the built-in icon names or a path to an .svg file.
func IconSource(ref string) (string, error) {
	if src, ok := constants.BuiltinIcons[ref]; ok {
		return src, nil
	}
	if !strings.EqualFold(filepath.Ext(ref), ".svg") {
		return "", fmt.Errorf("unknown icon %q", ref)
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("read icon %s: %w", ref, err)
	}
	return string(data), nil
}

// RasterizeSVG renders src into a size x size image.
func RasterizeSVG(src string, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", size)
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(src), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img, nil
}

// RasterizeIcon resolves ref and renders it tinted with c.
func RasterizeIcon(ref string, size int, c color.RGBA) (*image.RGBA, error) {
	src, err := IconSource(ref)
	if err != nil {
		return nil, err
	}
	img, err := RasterizeSVG(src, size)
	if err != nil {
		return nil, fmt.Errorf("icon %s: %w", ref, err)
	}
	Tint(img, c)
	return img, nil
}

// Tint replaces the color of every pixel with c, keeping the pixel's coverage.
// The image is premultiplied, so the channels are scaled by the coverage.
func Tint(img *image.RGBA, c color.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3]) * uint32(c.A) / 255
		img.Pix[i] = uint8(uint32(c.R) * a / 255)
		img.Pix[i+1] = uint8(uint32(c.G) * a / 255)
		img.Pix[i+2] = uint8(uint32(c.B) * a / 255)
		img.Pix[i+3] = uint8(a)
	}
}
