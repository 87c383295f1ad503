package cli

import (
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/macropower/termicon/pkg/generate"
	"github.com/macropower/termicon/pkg/yaml"
)

// printer writes progress and results. Styles are only applied when the
// writer is a terminal.
type printer struct {
	w      io.Writer
	styles styles
	color  bool
}

type styles struct {
	ok      lipgloss.Style
	fail    lipgloss.Style
	file    lipgloss.Style
	dim     lipgloss.Style
	summary lipgloss.Style
	header  lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	p := &printer{w: w, color: isTerminal(w)}
	if p.color {
		p.styles = styles{
			ok:      lipgloss.NewStyle().Foreground(charmtone.Guac).Bold(true),
			fail:    lipgloss.NewStyle().Foreground(charmtone.Sriracha).Bold(true),
			file:    lipgloss.NewStyle().Foreground(charmtone.Salt),
			dim:     lipgloss.NewStyle().Foreground(charmtone.Squid),
			header:  lipgloss.NewStyle().Foreground(charmtone.Malibu).Bold(true),
			summary: lipgloss.NewStyle().MarginTop(1).Bold(true),
		}
	}

	return p
}

func (p *printer) event(evt generate.Event) {
	switch e := evt.(type) {
	case generate.EventStart:
		p.println(p.styles.header.Render(fmt.Sprintf("Generating %d icons in %s", e.Total, e.Dir)))

	case generate.EventWritten:
		p.println(fmt.Sprintf("%s %s %s",
			p.styles.ok.Render("✓"),
			p.styles.file.Render(e.Spec.Filename),
			p.styles.dim.Render(fmt.Sprintf("%dx%d, %s", e.Spec.Size, e.Spec.Size, humanize.Bytes(uint64(e.Bytes)))), //nolint:gosec // G115: byte counts are non-negative.
		))

	case generate.EventFailed:
		p.println(fmt.Sprintf("%s %s %s",
			p.styles.fail.Render("✗"),
			p.styles.file.Render(e.Spec.Filename),
			p.styles.dim.Render(e.Err.Error()),
		))

	case generate.EventDone:
		p.println(p.summary(generate.Result(e)))
	}
}

func (p *printer) summary(res generate.Result) string {
	status := p.styles.ok
	if res.Written < res.Total {
		status = p.styles.fail
	}

	msg := fmt.Sprintf("Wrote %d of %d icons (%s)", res.Written, res.Total,
		humanize.Bytes(uint64(res.Bytes))) //nolint:gosec // G115: byte counts are non-negative.
	if n := len(res.Failures); n > 0 {
		msg += fmt.Sprintf(", %d failed", n)
	}

	return p.styles.summary.Inherit(status).Render(msg)
}

func (p *printer) yaml(b []byte) error {
	formatter, style := "noop", ""
	if p.color {
		formatter, style = "terminal16m", "monokai"
	}

	return yaml.Highlight(p.w, b, formatter, style) //nolint:wrapcheck // Already descriptive.
}

func (p *printer) println(s string) {
	mustN(fmt.Fprintln(p.w, s))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int.
}
