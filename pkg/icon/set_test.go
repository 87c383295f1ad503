package icon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/termicon/pkg/icon"
)

func TestSet(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err       error
		name      string
		first     icon.Spec
		last      icon.Spec
		wantCount int
	}{
		"logo": {
			name:      "logo",
			wantCount: 15,
			first:     icon.Spec{Size: 20, Filename: "Icon-20.png"},
			last:      icon.Spec{Size: 1024, Filename: "Icon-1024.png"},
		},
		"cursor": {
			name:      "Cursor",
			wantCount: 18,
			first:     icon.Spec{Size: 40, Filename: "iphone-20@2x.png"},
			last:      icon.Spec{Size: 1024, Filename: "ios-marketing@1x.png"},
		},
		"unknown": {
			name: "curs",
			err:  icon.ErrUnknownSet,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := icon.Set(tc.name)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				assert.Contains(t, err.Error(), `did you mean "cursor"`)

				return
			}

			require.NoError(t, err)
			require.Len(t, got, tc.wantCount)
			assert.Equal(t, tc.first, got[0])
			assert.Equal(t, tc.last, got[len(got)-1])
			require.NoError(t, got.Validate())
		})
	}
}

func TestSet_ReturnsCopy(t *testing.T) {
	t.Parallel()

	a, err := icon.Set("logo")
	require.NoError(t, err)

	a[0].Size = 1

	b, err := icon.Set("logo")
	require.NoError(t, err)
	assert.Equal(t, 20, b[0].Size)
}

func TestSetNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"cursor", "logo"}, icon.SetNames())
}

func TestSpec_Scale(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		spec       icon.Spec
		wantScale  int
		wantPoints float64
	}{
		"no suffix": {
			spec:       icon.Spec{Size: 1024, Filename: "Icon-1024.png"},
			wantScale:  1,
			wantPoints: 1024,
		},
		"2x": {
			spec:       icon.Spec{Size: 40, Filename: "Icon-20@2x.png"},
			wantScale:  2,
			wantPoints: 20,
		},
		"fractional points": {
			spec:       icon.Spec{Size: 167, Filename: "ipad-83.5@2x.png"},
			wantScale:  2,
			wantPoints: 83.5,
		},
		"1x": {
			spec:       icon.Spec{Size: 20, Filename: "ipad-20@1x.png"},
			wantScale:  1,
			wantPoints: 20,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.wantScale, tc.spec.Scale())
			assert.InDelta(t, tc.wantPoints, tc.spec.Points(), 0.001)
		})
	}
}

func TestSpecs_Validate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		specs   icon.Specs
		wantErr bool
	}{
		"valid": {
			specs: icon.Specs{{Size: 20, Filename: "a.png"}, {Size: 40, Filename: "b.png"}},
		},
		"zero size": {
			specs:   icon.Specs{{Size: 0, Filename: "a.png"}},
			wantErr: true,
		},
		"empty filename": {
			specs:   icon.Specs{{Size: 20, Filename: " "}},
			wantErr: true,
		},
		"path traversal": {
			specs:   icon.Specs{{Size: 20, Filename: "../a.png"}},
			wantErr: true,
		},
		"subdirectory": {
			specs:   icon.Specs{{Size: 20, Filename: "dir/a.png"}},
			wantErr: true,
		},
		"duplicate": {
			specs:   icon.Specs{{Size: 20, Filename: "a.png"}, {Size: 40, Filename: "a.png"}},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.specs.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, icon.ErrInvalidSpec)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseStyle(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    icon.Style
		wantErr bool
	}{
		"logo":          {input: "logo", want: icon.StyleLogo},
		"cursor":        {input: "cursor", want: icon.StyleCursor},
		"variant alias": {input: "B", want: icon.StyleCursor},
		"whitespace":    {input: " Logo ", want: icon.StyleLogo},
		"unknown":       {input: "plaid", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := icon.ParseStyle(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, icon.ErrUnknownStyle)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStyle_Text(t *testing.T) {
	t.Parallel()

	b, err := icon.StyleCursor.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "cursor", string(b))

	var s icon.Style
	require.NoError(t, s.UnmarshalText([]byte("logo")))
	assert.Equal(t, icon.StyleLogo, s)

	require.ErrorIs(t, s.UnmarshalText([]byte("nope")), icon.ErrUnknownStyle)
}
