package yaml

import (
	"io"

	"github.com/goccy/go-yaml"
)

// DefaultEncoderOptions are used by [NewEncoder] and [Marshal].
var DefaultEncoderOptions = []yaml.EncodeOption{
	yaml.Indent(2),
	yaml.IndentSequence(true),
}

type Encoder struct {
	e *yaml.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		e: yaml.NewEncoder(w, DefaultEncoderOptions...),
	}
}

func (e *Encoder) Encode(v any) error {
	return e.e.Encode(v) //nolint:wrapcheck // Return the original error.
}

func (e *Encoder) Close() error {
	return e.e.Close() //nolint:wrapcheck // Return the original error.
}

// Marshal encodes v with [DefaultEncoderOptions].
func Marshal(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v, DefaultEncoderOptions...) //nolint:wrapcheck // Return the original error.
}

// ToJSONValue converts YAML data to the generic form used by JSON schema
// validation (maps, slices, strings, float64 and bool).
func ToJSONValue(data []byte) (any, error) {
	var v any

	err := Unmarshal(data, &v)
	if err != nil {
		return nil, err
	}

	return normalize(v), nil
}

func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			x[k] = normalize(val)
		}

		return x
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			if s, ok := k.(string); ok {
				m[s] = normalize(val)
			}
		}

		return m
	case []any:
		for i, val := range x {
			x[i] = normalize(val)
		}

		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	default:
		return v
	}
}
