package expr

import (
	"fmt"
	"log/slog"

	"github.com/google/cel-go/cel"

	"github.com/macropower/termicon/pkg/icon"
)

// Filter selects icon specs with a CEL expression.
//
// Examples:
//   - size >= 100
//   - scale(filename) == 2
//   - filename.startsWith("ipad-") && points(filename, size) < 80.0
//   - pathBase(filename) in ["Icon-1024.png", "ios-marketing@1x.png"]
type Filter struct {
	program    cel.Program
	expression string
}

// NewFilter compiles expression. An empty expression matches every spec.
func NewFilter(expression string) (*Filter, error) {
	f := &Filter{expression: expression}
	if expression == "" {
		return f, nil
	}

	env, err := NewEnvironment()
	if err != nil {
		return nil, err
	}

	f.program, err = env.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", expression, err)
	}

	return f, nil
}

// Match reports whether s satisfies the expression. Evaluation errors and
// non-boolean results are treated as non-matches.
func (f *Filter) Match(s icon.Spec) bool {
	if f.program == nil {
		return true
	}

	result, _, err := f.program.Eval(map[string]any{
		"size":     s.Size,
		"filename": s.Filename,
	})
	if err != nil {
		slog.Debug("evaluate filter",
			slog.String("expression", f.expression),
			slog.String("filename", s.Filename),
			slog.Any("err", err),
		)

		return false
	}

	if boolVal, ok := result.Value().(bool); ok {
		return boolVal
	}

	return false
}

// Select returns the specs that match, preserving order.
func (f *Filter) Select(specs icon.Specs) icon.Specs {
	selected := make(icon.Specs, 0, len(specs))
	for _, s := range specs {
		if f.Match(s) {
			selected = append(selected, s)
		}
	}

	return selected
}

func (f *Filter) String() string {
	if f.expression == "" {
		return "true"
	}

	return f.expression
}
