package icon

import (
	"image"
	"image/color"
)

// Circle is a disc centered on a pixel. Its bounding box covers the pixels
// from Center-Radius to Center+Radius inclusive.
type Circle struct {
	Center image.Point
	Radius int
}

// Dot is a filled [Circle] with a color.
type Dot struct {
	Color color.RGBA
	Circle
}

// Logo is the ring glyph drawn in the body of the [StyleLogo] design. The
// ring is stroked first, then Gap is painted over it in the body color to
// open the ring on its right side.
type Logo struct {
	Bounds image.Rectangle
	// Ring is the outer edge of the ring; the stroke grows inward.
	Ring  Circle
	Gap   image.Rectangle
	Width int
}

// Layout is the geometry of one icon at one size.
type Layout struct {
	// Logo is nil for styles without a logo.
	Logo         *Logo
	Prompt       []Dot
	Buttons      [3]Dot
	Frame        image.Rectangle
	Header       image.Rectangle
	Cursor       image.Rectangle
	Size         int
	CornerRadius int
	Style        Style
}

// ComputeLayout computes the geometry of style at size x size pixels.
// Every dimension is a floor-divided proportion of size, with radii, widths
// and heights kept at one pixel or more. Sizes below one are treated as one.
// Rectangles are half-open like every [image.Rectangle]: a computed width of
// n covers exactly n pixels.
func ComputeLayout(size int, style Style) Layout {
	size = max(1, size)

	if style == StyleCursor {
		return cursorLayout(size)
	}

	return logoLayout(size)
}

func logoLayout(size int) Layout {
	p := StyleLogo.Palette()

	side := atLeast1(size * 4 / 5)
	origin := (size - side) / 2
	frame := square(origin, origin, side)
	radius := atLeast1(side * 2 / 25)

	headerHeight := atLeast1(side * 3 / 20)
	header := image.Rect(frame.Min.X, frame.Min.Y, frame.Max.X, frame.Min.Y+headerHeight)

	buttonRadius := atLeast1(headerHeight * 3 / 20)
	buttonY := frame.Min.Y + headerHeight/2
	buttonX := frame.Min.X + headerHeight*3/10
	buttonSpacing := headerHeight * 2 / 5

	var buttons [3]Dot
	for i := range buttons {
		buttons[i] = Dot{
			Circle: Circle{Center: image.Pt(buttonX+i*buttonSpacing, buttonY), Radius: buttonRadius},
			Color:  p.Buttons[i],
		}
	}

	bodyY := frame.Min.Y + headerHeight
	bodyHeight := side - headerHeight

	logoSide := atLeast1(side * 7 / 20)
	logoX := frame.Min.X + (side-logoSide)/2
	logoY := bodyY + (bodyHeight-logoSide)/2
	center := image.Pt(logoX+logoSide/2, logoY+logoSide/2)

	ringRadius := atLeast1(logoSide * 7 / 20)
	ringWidth := atLeast1(logoSide * 3 / 25)
	gapHeight := atLeast1(ringRadius * 4 / 5)
	gapY := center.Y - gapHeight/2

	logo := &Logo{
		Bounds: square(logoX, logoY, logoSide),
		Ring:   Circle{Center: center, Radius: ringRadius + ringWidth/2},
		Width:  ringWidth,
		Gap:    image.Rect(center.X, gapY, center.X+ringRadius+ringWidth, gapY+gapHeight),
	}

	cursorX := logoX + logoSide*3/4
	cursorY := logoY + logoSide*11/20
	cursor := image.Rect(
		cursorX, cursorY,
		cursorX+atLeast1(logoSide*3/100), cursorY+atLeast1(logoSide*3/20),
	)

	dotRadius := atLeast1(logoSide / 50)
	dotY := logoY + logoSide*4/5
	dotX := logoX + logoSide/5
	dotSpacing := logoSide * 2 / 25

	prompt := make([]Dot, 3)
	for i := range prompt {
		c := p.Dim
		if i == 0 {
			c = p.Accent
		}

		prompt[i] = Dot{
			Circle: Circle{Center: image.Pt(dotX+i*dotSpacing, dotY), Radius: dotRadius},
			Color:  c,
		}
	}

	return Layout{
		Style:        StyleLogo,
		Size:         size,
		Frame:        frame,
		CornerRadius: radius,
		Header:       header,
		Buttons:      buttons,
		Logo:         logo,
		Cursor:       cursor,
		Prompt:       prompt,
	}
}

func cursorLayout(size int) Layout {
	p := StyleCursor.Palette()

	margin := size / 8
	side := atLeast1(size - 2*margin)
	frame := square(margin, margin, side)
	radius := atLeast1(size / 16)

	headerHeight := atLeast1(size / 12)
	header := image.Rect(frame.Min.X, frame.Min.Y, frame.Max.X, frame.Min.Y+headerHeight)

	dotSize := atLeast1(size / 32)
	buttonRadius := atLeast1(dotSize / 2)
	buttonY := margin + headerHeight/2
	buttonX := margin + dotSize*2

	var buttons [3]Dot
	for i := range buttons {
		buttons[i] = Dot{
			Circle: Circle{Center: image.Pt(buttonX+i*dotSize*2, buttonY), Radius: buttonRadius},
			Color:  p.Buttons[i],
		}
	}

	cursorX := margin + size/16
	cursorY := margin + headerHeight + size/8
	cursor := image.Rect(
		cursorX, cursorY,
		cursorX+atLeast1(size/32), cursorY+atLeast1(size/24),
	)

	return Layout{
		Style:        StyleCursor,
		Size:         size,
		Frame:        frame,
		CornerRadius: radius,
		Header:       header,
		Buttons:      buttons,
		Cursor:       cursor,
	}
}

func square(x, y, side int) image.Rectangle {
	return image.Rect(x, y, x+side, y+side)
}

func atLeast1(n int) int {
	return max(1, n)
}
