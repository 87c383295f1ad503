package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/termicon/pkg/expr"
	"github.com/macropower/termicon/pkg/icon"
	"github.com/macropower/termicon/pkg/yaml"
)

const (
	// APIVersion is the current configuration API version.
	APIVersion = "termicon.jacobcolvin.com/v1beta1"
	// Kind is the configuration kind.
	Kind = "Configuration"
)

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	ValidAPIVersions = []string{APIVersion}
	ValidKinds       = []string{Kind}

	ErrInvalidConfig = errors.New("invalid configuration")
)

// TypeMeta contains the API version and kind of a configuration document.
type TypeMeta struct {
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind"`
}

// Config is the termicon configuration.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	TypeMeta `json:",inline"`
	// OutputDir is the directory icons are written to. It must exist.
	OutputDir string `json:"outputDir,omitempty" jsonschema:"title=Output Directory"`
	// Style is the icon design.
	Style string `json:"style,omitempty" jsonschema:"title=Style,enum=logo,enum=cursor"`
	// IconSet names a built-in icon table. Defaults to the table of Style.
	IconSet string `json:"iconSet,omitempty" jsonschema:"title=Icon Set,enum=logo,enum=cursor"`
	// Match is a CEL expression that selects icons by size and filename.
	Match string `json:"match,omitempty" jsonschema:"title=Match"`
	// Icons replaces the built-in icon table.
	Icons icon.Specs `json:"icons,omitempty" jsonschema:"title=Icons"`
	// Supersample renders each icon at N times its size and downscales it.
	Supersample int `json:"supersample,omitempty" jsonschema:"title=Supersample,minimum=1,maximum=8"`
}

// NewConfig creates a [Config] with default values.
func NewConfig() *Config {
	c := &Config{
		TypeMeta: TypeMeta{
			APIVersion: APIVersion,
			Kind:       Kind,
		},
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults sets unset fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Style == "" {
		c.Style = icon.StyleLogo.String()
	}
	if c.Supersample == 0 {
		c.Supersample = 1
	}
}

// Validate checks the values the schema cannot. Errors are [*yaml.Error]s
// located at the offending field.
func (c *Config) Validate() error {
	root := yaml.NewPathBuilder().Root

	if !slices.Contains(ValidAPIVersions, c.APIVersion) {
		return yaml.NewError(
			fmt.Errorf("%w: unsupported apiVersion %q", ErrInvalidConfig, c.APIVersion),
			yaml.WithPath(root().Child("apiVersion").Build()),
		)
	}

	if !slices.Contains(ValidKinds, c.Kind) {
		return yaml.NewError(
			fmt.Errorf("%w: unsupported kind %q", ErrInvalidConfig, c.Kind),
			yaml.WithPath(root().Child("kind").Build()),
		)
	}

	_, err := icon.ParseStyle(c.Style)
	if err != nil {
		return yaml.NewError(err, yaml.WithPath(root().Child("style").Build()))
	}

	if c.IconSet != "" {
		_, err = icon.Set(c.IconSet)
		if err != nil {
			return yaml.NewError(err, yaml.WithPath(root().Child("iconSet").Build()))
		}
	}

	if c.Supersample < 1 || c.Supersample > icon.MaxSupersample {
		return yaml.NewError(
			fmt.Errorf("%w: supersample must be between 1 and %d, got %d",
				ErrInvalidConfig, icon.MaxSupersample, c.Supersample),
			yaml.WithPath(root().Child("supersample").Build()),
		)
	}

	for i, s := range c.Icons {
		err = s.Validate()
		if err != nil {
			return yaml.NewError(err, yaml.WithPath(root().Child("icons").Index(uint(i)).Build()))
		}
	}

	err = c.Icons.Validate()
	if err != nil {
		return yaml.NewError(err, yaml.WithPath(root().Child("icons").Build()))
	}

	_, err = expr.NewFilter(c.Match)
	if err != nil {
		return yaml.NewError(err, yaml.WithPath(root().Child("match").Build()))
	}

	return nil
}

// GetStyle returns the parsed [Config.Style].
func (c *Config) GetStyle() (icon.Style, error) {
	return icon.ParseStyle(c.Style)
}

// Specs returns the icons to generate: [Config.Icons] if set, otherwise the
// built-in set, filtered by [Config.Match].
func (c *Config) Specs() (icon.Specs, error) {
	specs := c.Icons
	if len(specs) == 0 {
		name := c.IconSet
		if name == "" {
			style, err := c.GetStyle()
			if err != nil {
				return nil, err
			}

			name = style.DefaultSet()
		}

		var err error

		specs, err = icon.Set(name)
		if err != nil {
			return nil, err //nolint:wrapcheck // Already descriptive.
		}
	}

	f, err := expr.NewFilter(c.Match)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	return f.Select(specs), nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	extendEnum := func(name string, values []string) {
		prop, ok := jss.Properties.Get(name)
		if !ok {
			panic(name + " property not found in schema")
		}

		for _, v := range values {
			prop.OneOf = append(prop.OneOf, &jsonschema.Schema{
				Type:  "string",
				Const: v,
			})
		}

		_, _ = jss.Properties.Set(name, prop)
	}

	extendEnum("apiVersion", ValidAPIVersions)
	extendEnum("kind", ValidKinds)
}

// MarshalYAML serializes the config to YAML.
func (c *Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := yaml.Marshal(alias(*c))
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b, nil
}
