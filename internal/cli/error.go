package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"

	"github.com/macropower/termicon/pkg/generate"
)

// ErrorHandler prints err with fang's styles, followed by a hint when one
// applies.
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))
	mustN(fmt.Fprintln(w, lipgloss.NewStyle().MarginLeft(2).Render(err.Error())))
	mustN(fmt.Fprintln(w))

	hint := func(before, code, after string) {
		mustN(fmt.Fprintln(w, lipgloss.JoinHorizontal(
			lipgloss.Left,
			styles.ErrorText.UnsetWidth().Render(before),
			styles.Program.Flag.Render(code),
			styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render(after),
		)))
		mustN(fmt.Fprintln(w))
	}

	switch {
	case isUsageError(err):
		hint("Try", "--help", "for usage.")
	case errors.Is(err, generate.ErrOutputDir):
		hint("Create it first, e.g.", "mkdir -p <output-dir>", "and run again.")
	case errors.Is(err, errWatchNeedsConfig):
		hint("Create one with", "termicon --write-config", "or pass --config.")
	}
}

// XXX: this is a hack to detect usage errors.
// See: https://github.com/spf13/cobra/pull/2266
func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"unknown command",
		"invalid argument",
		"accepts at most",
	} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustN(_ int, err error) {
	must(err)
}
