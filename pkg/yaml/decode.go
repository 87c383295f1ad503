package yaml

import (
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

// Decoder decodes YAML documents. Unknown fields and duplicate keys are
// rejected, and syntax errors are returned as [*Error] with the offending
// token attached.
type Decoder struct {
	d *yaml.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		d: yaml.NewDecoder(r, yaml.DisallowUnknownField()),
	}
}

func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return &Error{
			Err:   errors.New(yamlErr.GetMessage()),
			Token: yamlErr.GetToken(),
		}
	}

	//nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
	return err
}

// Unmarshal decodes data into v. Errors carry data as their source.
func Unmarshal(data []byte, v any) error {
	err := yaml.UnmarshalWithOptions(data, v, yaml.DisallowUnknownField())
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return NewError(errors.New(yamlErr.GetMessage()),
			WithToken(yamlErr.GetToken()),
			WithSource(data),
		)
	}

	//nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
	return err
}
