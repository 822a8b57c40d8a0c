// Package export renders the slideshow slot geometry as a PNG diagram.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/robby/folio/internal/domain"
	"github.com/robby/folio/internal/slideshow"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// DefaultWidth is the image width used when Options.Width is zero.
const DefaultWidth = 1536

// The diagram covers three viewports in each direction so the off-screen
// staging slots are visible.
const worldSpan = 3.0

// ErrUnmeasured indicates the slide size is zero and no slots exist.
var ErrUnmeasured = errors.New("slide size not measured")

var (
	backgroundColor = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	viewportColor   = color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	slotColor       = color.RGBA{R: 0xff, G: 0x5f, B: 0xaf, A: 0xff} // Pink
	currentColor    = color.RGBA{R: 0xaf, G: 0x87, B: 0xff, A: 0xff} // Purple
	labelColor      = color.White
)

// Options controls the diagram.
type Options struct {
	Scale  float64        // Neighbour scale factor, DefaultScale if zero
	Margin float64        // Edge margin in viewport units
	Width  int            // Output width in pixels
	Labels map[int]string // Optional caption per slot offset
}

// Render draws the viewport and the five slots for the given dimensions.
func Render(slide, viewport domain.Size, opts Options) (image.Image, error) {
	dc, err := draw(slide, viewport, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders the diagram into a PNG file at path.
func WritePNG(path string, slide, viewport domain.Size, opts Options) error {
	dc, err := draw(slide, viewport, opts)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save layout png: %w", err)
	}
	return nil
}

func draw(slide, viewport domain.Size, opts Options) (*gg.Context, error) {
	if viewport.IsZero() {
		return nil, fmt.Errorf("viewport %vx%v: %w", viewport.Width, viewport.Height, ErrUnmeasured)
	}
	scale := opts.Scale
	if scale == 0 {
		scale = slideshow.DefaultScale
	}
	slots, ok := slideshow.ComputeSlots(slide, viewport, scale, opts.Margin)
	if !ok {
		return nil, ErrUnmeasured
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	k := float64(width) / (worldSpan * viewport.Width)
	height := int(worldSpan * viewport.Height * k)

	dc := gg.NewContext(width, height)
	dc.SetColor(backgroundColor)
	dc.Clear()

	face, err := newFace(12)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)

	// World origin is the viewport centre
	toPx := func(x, y float64) (float64, float64) {
		return (x + worldSpan*viewport.Width/2) * k, (y + worldSpan*viewport.Height/2) * k
	}

	vx, vy := toPx(-viewport.Width/2, -viewport.Height/2)
	dc.SetColor(viewportColor)
	dc.SetLineWidth(2)
	dc.DrawRectangle(vx, vy, viewport.Width*k, viewport.Height*k)
	dc.Stroke()

	for off := slideshow.MinOffset; off <= slideshow.MaxOffset; off++ {
		t := slots.At(off)
		w := slide.Width * t.Scale * k
		h := slide.Height * t.Scale * k
		cx, cy := toPx(t.X, t.Y)

		dc.SetColor(slotColor)
		if off == 0 {
			dc.SetColor(currentColor)
		}
		dc.SetLineWidth(1.5)
		dc.DrawRoundedRectangle(cx-w/2, cy-h/2, w, h, 6)
		dc.Stroke()

		dc.SetColor(labelColor)
		dc.DrawStringAnchored(fmt.Sprintf("%+d", off), cx, cy, 0.5, 0.5)
		if label := opts.Labels[off]; label != "" {
			dc.DrawStringAnchored(label, cx, cy+h/2+14, 0.5, 0.5)
		}
	}

	return dc, nil
}

func newFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
