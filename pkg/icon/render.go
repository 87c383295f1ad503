package icon

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/macropower/termicon/pkg/canvas"
)

// MaxSupersample bounds the supersampling factor accepted by [Render].
const MaxSupersample = 8

// RenderOpt configures [Render].
type RenderOpt func(*renderOptions)

type renderOptions struct {
	supersample int
}

// WithSupersample renders at n times the target size and downscales the
// result. Values below 2 disable supersampling.
func WithSupersample(n int) RenderOpt {
	return func(o *renderOptions) {
		o.supersample = min(max(1, n), MaxSupersample)
	}
}

// Render draws style at size x size pixels. The result is fully opaque.
func Render(size int, style Style, opts ...RenderOpt) (*image.RGBA, error) {
	options := &renderOptions{supersample: 1}
	for _, opt := range opts {
		opt(options)
	}

	drawSize := size * options.supersample
	if options.supersample > 1 && drawSize > canvas.MaxSize {
		slog.Debug("supersampled size too large, rendering at target size",
			slog.Int("size", size),
			slog.Int("supersample", options.supersample),
		)

		drawSize = size
	}

	img, err := render(drawSize, style)
	if err != nil {
		return nil, err
	}

	if drawSize != size {
		return canvas.Downscale(img, size), nil
	}

	return img, nil
}

func render(size int, style Style) (*image.RGBA, error) {
	p := style.Palette()

	c, err := canvas.New(size, size, p.Background)
	if err != nil {
		return nil, fmt.Errorf("render %s icon: %w", style, err)
	}

	defer func() {
		err := c.Close()
		if err != nil {
			slog.Debug("close canvas", slog.Any("err", err))
		}
	}()

	err = draw(c, ComputeLayout(size, style), p)
	if err != nil {
		return nil, fmt.Errorf("render %s icon at %dpx: %w", style, size, err)
	}

	return c.Image(), nil
}

// draw paints l back to front: frame, header, buttons, content, decorations.
func draw(c *canvas.Canvas, l Layout, p Palette) error {
	err := c.FillRoundedRect(l.Frame, l.CornerRadius, p.Body)
	if err != nil {
		return err
	}

	err = c.FillRoundedRect(l.Header, l.CornerRadius, p.Header)
	if err != nil {
		return err
	}

	for _, b := range l.Buttons {
		err = fillDot(c, b)
		if err != nil {
			return err
		}
	}

	if l.Logo != nil {
		ring := l.Logo.Ring

		err = c.StrokeEllipse(ring.Center, ring.Radius, ring.Radius, l.Logo.Width, p.Accent)
		if err != nil {
			return err
		}

		err = c.FillRect(l.Logo.Gap, p.Body)
		if err != nil {
			return err
		}
	}

	err = c.FillRect(l.Cursor, p.Accent)
	if err != nil {
		return err
	}

	for _, d := range l.Prompt {
		err = fillDot(c, d)
		if err != nil {
			return err
		}
	}

	return nil
}

func fillDot(c *canvas.Canvas, d Dot) error {
	return c.FillEllipse(d.Center, d.Radius, d.Radius, d.Color)
}
