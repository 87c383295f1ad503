package icon

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrUnknownSet  = errors.New("unknown icon set")
	ErrInvalidSpec = errors.New("invalid icon spec")

	scaleRe = regexp.MustCompile(`@(\d+)x`)
)

// Spec describes one required icon asset.
type Spec struct {
	// Filename is the output file name, relative to the output directory.
	Filename string `json:"filename" jsonschema:"title=Filename,minLength=1"`
	// Size is the edge length in pixels.
	Size int `json:"size" jsonschema:"title=Size,minimum=1,maximum=16384"`
}

// Scale returns the "@Nx" factor encoded in the file name, or 1.
func (s Spec) Scale() int {
	m := scaleRe.FindStringSubmatch(s.Filename)
	if m == nil {
		return 1
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}

	return n
}

// Points returns the size in points (pixels divided by [Spec.Scale]).
func (s Spec) Points() float64 {
	return float64(s.Size) / float64(s.Scale())
}

// Validate checks that s can be rendered and written.
func (s Spec) Validate() error {
	if s.Size < 1 {
		return fmt.Errorf("%w: %q: size must be positive, got %d", ErrInvalidSpec, s.Filename, s.Size)
	}

	name := strings.TrimSpace(s.Filename)
	if name == "" {
		return fmt.Errorf("%w: empty filename", ErrInvalidSpec)
	}
	if name != s.Filename || name == "." || name == ".." ||
		path.Clean(name) != name || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q: filename must be a plain file name", ErrInvalidSpec, s.Filename)
	}

	return nil
}

func (s Spec) String() string {
	return fmt.Sprintf("%s (%dx%d)", s.Filename, s.Size, s.Size)
}

// Specs is an ordered icon table.
type Specs []Spec

// Validate validates every entry and rejects duplicate file names.
func (ss Specs) Validate() error {
	seen := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		err := s.Validate()
		if err != nil {
			return err
		}

		if _, ok := seen[s.Filename]; ok {
			return fmt.Errorf("%w: duplicate filename %q", ErrInvalidSpec, s.Filename)
		}

		seen[s.Filename] = struct{}{}
	}

	return nil
}

var sets = map[string]Specs{
	"logo": {
		{Size: 20, Filename: "Icon-20.png"},
		{Size: 40, Filename: "Icon-20@2x.png"},
		{Size: 60, Filename: "Icon-20@3x.png"},
		{Size: 29, Filename: "Icon-29.png"},
		{Size: 58, Filename: "Icon-29@2x.png"},
		{Size: 87, Filename: "Icon-29@3x.png"},
		{Size: 40, Filename: "Icon-40.png"},
		{Size: 80, Filename: "Icon-40@2x.png"},
		{Size: 120, Filename: "Icon-40@3x.png"},
		{Size: 120, Filename: "Icon-60@2x.png"},
		{Size: 180, Filename: "Icon-60@3x.png"},
		{Size: 76, Filename: "Icon-76.png"},
		{Size: 152, Filename: "Icon-76@2x.png"},
		{Size: 167, Filename: "Icon-83.5@2x.png"},
		{Size: 1024, Filename: "Icon-1024.png"},
	},
	"cursor": {
		// iPhone.
		{Size: 40, Filename: "iphone-20@2x.png"},
		{Size: 60, Filename: "iphone-20@3x.png"},
		{Size: 58, Filename: "iphone-29@2x.png"},
		{Size: 87, Filename: "iphone-29@3x.png"},
		{Size: 80, Filename: "iphone-40@2x.png"},
		{Size: 120, Filename: "iphone-40@3x.png"},
		{Size: 120, Filename: "iphone-60@2x.png"},
		{Size: 180, Filename: "iphone-60@3x.png"},

		// iPad.
		{Size: 20, Filename: "ipad-20@1x.png"},
		{Size: 40, Filename: "ipad-20@2x.png"},
		{Size: 29, Filename: "ipad-29@1x.png"},
		{Size: 58, Filename: "ipad-29@2x.png"},
		{Size: 40, Filename: "ipad-40@1x.png"},
		{Size: 80, Filename: "ipad-40@2x.png"},
		{Size: 76, Filename: "ipad-76@1x.png"},
		{Size: 152, Filename: "ipad-76@2x.png"},
		{Size: 167, Filename: "ipad-83.5@2x.png"},

		// App Store.
		{Size: 1024, Filename: "ios-marketing@1x.png"},
	},
}

// SetNames returns the names of the built-in icon sets, sorted.
func SetNames() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Set returns a copy of the named built-in icon set.
func Set(name string) (Specs, error) {
	s, ok := sets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, suggest(ErrUnknownSet, name, SetNames())
	}

	return slices.Clone(s), nil
}
