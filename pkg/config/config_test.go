package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/termicon/pkg/config"
	"github.com/macropower/termicon/pkg/icon"
	"github.com/macropower/termicon/pkg/yaml"
)

const header = "apiVersion: termicon.jacobcolvin.com/v1beta1\nkind: Configuration\n"

func TestNewConfig(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()
	assert.Equal(t, config.APIVersion, c.APIVersion)
	assert.Equal(t, config.Kind, c.Kind)
	assert.Equal(t, ".", c.OutputDir)
	assert.Equal(t, "logo", c.Style)
	assert.Equal(t, 1, c.Supersample)
	require.NoError(t, c.Validate())

	specs, err := c.Specs()
	require.NoError(t, err)
	assert.Len(t, specs, 15)
}

func TestLoader(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wantLoadErr  error
		check        func(t *testing.T, c *config.Config)
		source       string
		wantInvalid  string
		wantLoadPath string
	}{
		"defaults": {
			source: header,
			check: func(t *testing.T, c *config.Config) {
				t.Helper()

				assert.Equal(t, ".", c.OutputDir)
				assert.Equal(t, "logo", c.Style)
				assert.Equal(t, 1, c.Supersample)
			},
		},
		"cursor with match": {
			source: header + "style: cursor\nmatch: size >= 152\nsupersample: 4\noutputDir: out\n",
			check: func(t *testing.T, c *config.Config) {
				t.Helper()

				style, err := c.GetStyle()
				require.NoError(t, err)
				assert.Equal(t, icon.StyleCursor, style)
				assert.Equal(t, "out", c.OutputDir)
				assert.Equal(t, 4, c.Supersample)

				specs, err := c.Specs()
				require.NoError(t, err)

				names := []string{}
				for _, s := range specs {
					names = append(names, s.Filename)
				}

				assert.Equal(t, []string{
					"iphone-60@3x.png", "ipad-76@2x.png", "ipad-83.5@2x.png", "ios-marketing@1x.png",
				}, names)
			},
		},
		"icon set differs from style": {
			source: header + "style: cursor\niconSet: logo\n",
			check: func(t *testing.T, c *config.Config) {
				t.Helper()

				specs, err := c.Specs()
				require.NoError(t, err)
				assert.Len(t, specs, 15)
			},
		},
		"custom icons": {
			source: header + "icons:\n  - filename: small.png\n    size: 16\n  - filename: large.png\n    size: 512\n",
			check: func(t *testing.T, c *config.Config) {
				t.Helper()

				specs, err := c.Specs()
				require.NoError(t, err)
				assert.Equal(t, icon.Specs{
					{Filename: "small.png", Size: 16},
					{Filename: "large.png", Size: 512},
				}, specs)
			},
		},
		"unknown style": {
			source:      header + "style: plaid\n",
			wantInvalid: "$.style",
		},
		"non-positive size": {
			source:      header + "icons:\n  - filename: a.png\n    size: 0\n",
			wantInvalid: "$.icons[0].size",
		},
		"unknown field": {
			source:      header + "colour: red\n",
			wantInvalid: "$",
		},
		"wrong kind": {
			source:      "apiVersion: termicon.jacobcolvin.com/v1beta1\nkind: Policy\n",
			wantInvalid: "$.kind",
		},
		"supersample too large": {
			source:      header + "supersample: 9\n",
			wantInvalid: "$.supersample",
		},
		"invalid match": {
			source:       header + "match: size >=\n",
			wantLoadPath: "$.match",
		},
		"duplicate icons": {
			source:      header + "icons:\n  - filename: a.png\n    size: 20\n  - filename: a.png\n    size: 40\n",
			wantLoadErr: icon.ErrInvalidSpec,
		},
		"path traversal": {
			source:      header + "icons:\n  - filename: ../a.png\n    size: 20\n",
			wantLoadErr: icon.ErrInvalidSpec,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := config.NewLoaderFromBytes([]byte(tc.source))

			err := l.Validate()
			if tc.wantInvalid != "" {
				var yamlErr *yaml.Error
				require.ErrorAs(t, err, &yamlErr)
				require.NotNil(t, yamlErr.Path)
				assert.Equal(t, tc.wantInvalid, yamlErr.Path.String())

				return
			}

			require.NoError(t, err)

			c, err := l.Load()
			if tc.wantLoadPath != "" {
				var yamlErr *yaml.Error
				require.ErrorAs(t, err, &yamlErr)
				assert.Equal(t, tc.wantLoadPath, yamlErr.Path.String())

				return
			}

			if tc.wantLoadErr != nil {
				require.ErrorIs(t, err, tc.wantLoadErr)

				return
			}

			require.NoError(t, err)
			tc.check(t, c)
		})
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, config.WriteDefault(path, false))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), c)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(dir)
	require.ErrorContains(t, err, "path is a directory")
}

func TestLoad_AnnotatedError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(header+"supersample: 42\n"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[3:1]")
	assert.Contains(t, err.Error(), "supersample: 42")
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, config.WriteDefault(path, false))
	assert.FileExists(t, path)

	require.NoError(t, os.WriteFile(path, []byte("custom"), 0o600))

	// Existing files are kept without force.
	require.NoError(t, config.WriteDefault(path, false))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(b))

	// Force backs up and replaces.
	require.NoError(t, config.WriteDefault(path, true))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "kind: Configuration")

	require.Error(t, config.WriteDefault(dir, true))
}

func TestConfig_MarshalYAML(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()
	c.Icons = icon.Specs{{Filename: "a.png", Size: 20}}

	b, err := c.MarshalYAML()
	require.NoError(t, err)

	got, err := config.NewLoaderFromBytes(b).Load()
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestGetPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	assert.Equal(t, filepath.Join("/xdg", "termicon", "config.yaml"), config.GetPath())
}

func TestSchema(t *testing.T) {
	t.Parallel()

	data, err := config.Schema()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"outputDir"`)
	assert.Contains(t, string(data), `"supersample"`)
	assert.Contains(t, string(data), config.APIVersion)
}
