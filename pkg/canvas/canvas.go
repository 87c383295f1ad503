package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// MaxSize is the largest edge length, in pixels, that [New] will allocate.
const MaxSize = 16384

var (
	// ErrUnavailable indicates that a drawing surface could not be obtained.
	ErrUnavailable = errors.New("canvas unavailable")
	// ErrInvalidSize indicates a non-positive or oversized surface.
	ErrInvalidSize = errors.New("invalid canvas size")
)

// Canvas is an opaque drawing surface. Every shape is filled or stroked
// immediately with a solid color, so later calls paint over earlier ones.
type Canvas struct {
	dc         *gg.Context
	background color.RGBA
	width      int
	height     int
}

// New allocates a width x height canvas filled with bg.
func New(width, height int, bg color.RGBA) (c *Canvas, err error) {
	if width < 1 || height < 1 || width > MaxSize || height > MaxSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	defer func() {
		if r := recover(); r != nil {
			c = nil
			err = fmt.Errorf("%w: allocate %dx%d: %v", ErrUnavailable, width, height, r)
		}
	}()

	bg.A = 0xff

	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.FromColor(bg))

	return &Canvas{
		dc:         dc,
		background: bg,
		width:      width,
		height:     height,
	}, nil
}

// Bounds returns the canvas bounds.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// FillRect fills r. Empty rectangles are ignored.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) error {
	if r.Empty() {
		return nil
	}

	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))

	return c.fill("rectangle")
}

// FillRoundedRect fills r with corners of the given radius. The radius is
// clamped to half the shorter side.
func (c *Canvas) FillRoundedRect(r image.Rectangle, radius int, col color.Color) error {
	if r.Empty() {
		return nil
	}

	c.dc.SetColor(col)
	c.dc.DrawRoundedRectangle(
		float64(r.Min.X), float64(r.Min.Y),
		float64(r.Dx()), float64(r.Dy()),
		float64(max(0, radius)),
	)

	return c.fill("rounded rectangle")
}

// FillEllipse fills the ellipse whose bounding box spans the pixels from
// center-r to center+r inclusive on each axis.
func (c *Canvas) FillEllipse(center image.Point, rx, ry int, col color.Color) error {
	if rx < 0 || ry < 0 {
		return nil
	}

	cx, cy := pixelCenter(center)

	c.dc.SetColor(col)
	c.dc.DrawEllipse(cx, cy, float64(rx)+0.5, float64(ry)+0.5)

	return c.fill("ellipse")
}

// StrokeEllipse draws an elliptical outline width pixels wide. The outer
// edge matches the bounding box used by [Canvas.FillEllipse]; the stroke
// grows inward.
func (c *Canvas) StrokeEllipse(center image.Point, rx, ry, width int, col color.Color) error {
	if rx < 0 || ry < 0 || width < 1 {
		return nil
	}

	cx, cy := pixelCenter(center)
	half := float64(width) / 2

	c.dc.SetColor(col)
	c.dc.SetLineWidth(float64(width))
	c.dc.DrawEllipse(cx, cy, max(0, float64(rx)+0.5-half), max(0, float64(ry)+0.5-half))

	err := c.dc.Stroke()
	if err != nil {
		return fmt.Errorf("stroke ellipse: %w", err)
	}

	return nil
}

// Image returns a fully opaque copy of the canvas.
func (c *Canvas) Image() *image.RGBA {
	b := c.Bounds()
	dst := image.NewRGBA(b)

	// Composite over the background so that anti-aliasing rounding never
	// leaves an alpha below 0xff; opaque images encode as RGB PNGs.
	draw.Draw(dst, b, image.NewUniform(c.background), image.Point{}, draw.Src)
	draw.Draw(dst, b, c.dc.Image(), b.Min, draw.Over)

	return dst
}

// EncodePNG writes the canvas as an RGB PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return EncodePNG(w, c.Image())
}

// Close releases the underlying drawing context.
func (c *Canvas) Close() error {
	err := c.dc.Close()
	if err != nil {
		return fmt.Errorf("close context: %w", err)
	}

	return nil
}

func (c *Canvas) fill(shape string) error {
	err := c.dc.Fill()
	if err != nil {
		return fmt.Errorf("fill %s: %w", shape, err)
	}

	return nil
}

// EncodePNG encodes img as PNG. Opaque images are written without an alpha
// channel.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}

	err := enc.Encode(w, img)
	if err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	return nil
}

// Downscale resamples src to a size x size image using Catmull-Rom.
func Downscale(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return dst
}

// Probe checks that a surface can be allocated, drawn on and encoded.
func Probe() error {
	c, err := New(2, 2, color.RGBA{A: 0xff})
	if err != nil {
		return err
	}

	defer func() {
		err := c.Close()
		if err != nil {
			slog.Debug("close probe canvas", slog.Any("err", err))
		}
	}()

	err = c.FillEllipse(image.Pt(1, 1), 1, 1, color.White)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	err = c.EncodePNG(io.Discard)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return nil
}

func pixelCenter(p image.Point) (float64, float64) {
	return float64(p.X) + 0.5, float64(p.Y) + 0.5
}
