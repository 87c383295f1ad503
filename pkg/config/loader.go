package config

import (
	"fmt"

	"github.com/macropower/termicon/pkg/yaml"
)

// Validator validates decoded configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*Loader)

// WithValidator replaces the schema validator.
func WithValidator(v Validator) LoaderOpt {
	return func(l *Loader) {
		l.validator = v
	}
}

// WithColor enables ANSI colors in annotated errors.
func WithColor(colored bool) LoaderOpt {
	return func(l *Loader) {
		l.colored = colored
	}
}

// Loader validates and decodes a configuration document.
type Loader struct {
	validator Validator
	data      []byte
	colored   bool
}

// NewLoaderFromBytes creates a [Loader] for data.
func NewLoaderFromBytes(data []byte, opts ...LoaderOpt) *Loader {
	l := &Loader{data: data}
	for _, opt := range opts {
		opt(l)
	}

	if l.validator == nil {
		l.validator = DefaultValidator()
	}

	return l
}

// NewLoaderFromFile creates a [Loader] for the file at path.
func NewLoaderFromFile(path string, opts ...LoaderOpt) (*Loader, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	return NewLoaderFromBytes(data, opts...), nil
}

// Validate checks the document against the schema.
func (l *Loader) Validate() error {
	data, err := yaml.ToJSONValue(l.data)
	if err != nil {
		return l.annotate(err)
	}

	err = l.validator.Validate(data)
	if err != nil {
		return l.annotate(err)
	}

	return nil
}

// Load decodes the document, applies defaults, and validates the result.
func (l *Loader) Load() (*Config, error) {
	c := &Config{}

	err := yaml.Unmarshal(l.data, c)
	if err != nil {
		return nil, l.annotate(err)
	}

	c.EnsureDefaults()

	err = c.Validate()
	if err != nil {
		return nil, l.annotate(err)
	}

	return c, nil
}

func (l *Loader) annotate(err error) error {
	return yaml.Annotate(err, yaml.WithSource(l.data), yaml.WithColor(l.colored))
}

// Load reads, validates and decodes the configuration file at path.
func Load(path string, opts ...LoaderOpt) (*Config, error) {
	l, err := NewLoaderFromFile(path, opts...)
	if err != nil {
		return nil, err
	}

	err = l.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config %q: %w", path, err)
	}

	c, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}

	return c, nil
}
