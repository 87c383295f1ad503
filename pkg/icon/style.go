package icon

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Style selects one of the icon designs.
type Style int

const (
	// StyleLogo is the dark design with a ring logo, cursor and prompt dots.
	StyleLogo Style = iota
	// StyleCursor is the blue design with a single prompt cursor.
	StyleCursor
)

var (
	ErrUnknownStyle = errors.New("unknown style")

	// AllStyles lists the style names accepted by [ParseStyle].
	AllStyles = []string{
		StyleLogo.String(),
		StyleCursor.String(),
	}
)

// Button colors, left to right.
var (
	ButtonRed    = color.RGBA{R: 255, G: 95, B: 87, A: 0xff}
	ButtonYellow = color.RGBA{R: 255, G: 189, B: 46, A: 0xff}
	ButtonGreen  = color.RGBA{R: 40, G: 202, B: 66, A: 0xff}
)

// Palette holds the colors a style paints with.
type Palette struct {
	Background color.RGBA
	Body       color.RGBA
	Header     color.RGBA
	Buttons    [3]color.RGBA
	Accent     color.RGBA
	Dim        color.RGBA
}

var palettes = map[Style]Palette{
	StyleLogo: {
		Background: rgb(26, 26, 26),
		Body:       rgb(30, 30, 30),
		Header:     rgb(45, 45, 45),
		Buttons:    [3]color.RGBA{ButtonRed, ButtonYellow, ButtonGreen},
		Accent:     rgb(0, 255, 136),
		Dim:        rgb(102, 102, 102),
	},
	StyleCursor: {
		Background: rgb(0, 122, 255),
		Body:       rgb(28, 28, 30),
		Header:     rgb(44, 44, 46),
		Buttons:    [3]color.RGBA{ButtonRed, ButtonYellow, ButtonGreen},
		Accent:     rgb(0, 255, 65),
		Dim:        rgb(102, 102, 102),
	},
}

// ParseStyle returns the [Style] with the given name. Unknown names produce
// an error that suggests the closest known style.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "logo", "a":
		return StyleLogo, nil
	case "cursor", "b":
		return StyleCursor, nil
	}

	return 0, suggest(ErrUnknownStyle, name, AllStyles)
}

// Palette returns the style's colors.
func (s Style) Palette() Palette {
	return palettes[s]
}

// DefaultSet returns the name of the icon set that ships with the style.
func (s Style) DefaultSet() string {
	return s.String()
}

func (s Style) String() string {
	switch s {
	case StyleLogo:
		return "logo"
	case StyleCursor:
		return "cursor"
	}

	return fmt.Sprintf("Style(%d)", int(s))
}

// MarshalText implements [encoding.TextMarshaler].
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// suggest wraps err with the candidate closest to name, if any.
func suggest(err error, name string, candidates []string) error {
	matches := fuzzy.Find(strings.ToLower(name), candidates)
	if len(matches) > 0 {
		return fmt.Errorf("%w: %q (did you mean %q?)", err, name, matches[0].Str)
	}

	return fmt.Errorf("%w: %q, must be one of %v", err, name, candidates)
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
