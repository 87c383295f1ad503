package cli

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/exp/charmtone"

	"github.com/macropower/termicon/pkg/icon"
)

// ColorSchemeFunc styles help and error output after the logo palette.
func ColorSchemeFunc(c lipgloss.LightDarkFunc) fang.ColorScheme {
	p := icon.StyleLogo.Palette()
	accent := c(charmtone.Guac, p.Accent)
	text := c(charmtone.Charcoal, charmtone.Ash)
	subtle := c(charmtone.Squid, p.Dim)

	return fang.ColorScheme{
		Base:           text,
		Title:          accent,
		Codeblock:      c(charmtone.Salt, lipgloss.Color("#2F2E36")),
		Program:        accent,
		Command:        accent,
		DimmedArgument: subtle,
		Comment:        subtle,
		Flag:           c(charmtone.Malibu, icon.StyleCursor.Palette().Background),
		Argument:       text,
		Description:    text,
		FlagDefault:    subtle,
		QuotedString:   c(charmtone.Citron, icon.ButtonYellow),
		ErrorHeader: [2]color.Color{
			charmtone.Butter,
			c(charmtone.Cherry, icon.ButtonRed),
		},
	}
}
