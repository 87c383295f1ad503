package yaml

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// Error is a YAML error located by a [*yaml.Path] or a [*token.Token]. When
// Source is set, the message includes the surrounding source lines.
type Error struct {
	Err    error
	Path   *yaml.Path
	Token  *token.Token
	Source []byte
	// Colored enables ANSI colors in the annotated source.
	Colored bool
}

func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

type ErrorOpt func(e *Error)

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

func WithColor(colored bool) ErrorOpt {
	return func(e *Error) {
		e.Colored = colored
	}
}

// Annotate applies opts to err if it is an [*Error], and otherwise returns
// err unmodified.
func Annotate(err error, opts ...ErrorOpt) error {
	var yamlErr *Error
	if errors.As(err, &yamlErr) {
		for _, opt := range opts {
			opt(yamlErr)
		}
	}

	return err
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}
	if e.Path == nil && e.Token == nil {
		return e.Err.Error()
	}

	tk := e.Token
	if tk == nil {
		if len(e.Source) == 0 {
			return fmt.Sprintf("error at %s: %v", e.Path, e.Err)
		}

		var err error

		tk, err = tokenFromPath(e.Source, e.Path)
		if err != nil {
			slog.Debug("annotate yaml error",
				slog.String("path", e.Path.String()),
				slog.Any("err", err),
			)

			return fmt.Sprintf("error at %s: %v", e.Path, e.Err)
		}
	}

	var pp printer.Printer

	src := pp.PrintErrorToken(tk, e.Colored)

	return fmt.Sprintf("[%d:%d] %v:\n%s", tk.Position.Line, tk.Position.Column, e.Err, src)
}

func tokenFromPath(source []byte, path *yaml.Path) (*token.Token, error) {
	file, err := parser.ParseBytes(source, 0)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}

	node, err := path.FilterFile(file)
	if err != nil {
		return nil, fmt.Errorf("filter by path: %w", err)
	}

	// Point at the key rather than the value when there is one.
	if tk := keyToken(file, path); tk != nil {
		return tk, nil
	}

	return node.GetToken(), nil
}

func keyToken(file *ast.File, path *yaml.Path) *token.Token {
	pathStr := path.String()

	lastDot := strings.LastIndex(pathStr, ".")
	if lastDot == -1 || lastDot < strings.LastIndex(pathStr, "[") {
		return nil
	}

	parentPath, err := yaml.PathString(pathStr[:lastDot])
	if err != nil {
		return nil
	}

	parent, err := parentPath.FilterFile(file)
	if err != nil {
		return nil
	}

	mapping, ok := parent.(*ast.MappingNode)
	if !ok {
		return nil
	}

	for _, val := range mapping.Values {
		if val.Key.String() == pathStr[lastDot+1:] {
			return val.Key.GetToken()
		}
	}

	return nil
}
