package yaml

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight writes source to w with YAML syntax highlighting. The formatter
// and style are chroma names; unknown names fall back to chroma's defaults.
// Use the "noop" formatter for plain output.
func Highlight(w io.Writer, source []byte, formatter, style string) error {
	lexer := chroma.Coalesce(lexers.Get("yaml"))

	it, err := lexer.Tokenise(nil, string(source))
	if err != nil {
		return fmt.Errorf("tokenise yaml: %w", err)
	}

	err = formatters.Get(formatter).Format(w, styles.Get(style), it)
	if err != nil {
		return fmt.Errorf("format yaml: %w", err)
	}

	return nil
}
