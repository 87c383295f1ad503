package generate_test

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/termicon/pkg/generate"
	"github.com/macropower/termicon/pkg/icon"
)

func TestGenerator_GenerateAll(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		style icon.Style
		set   string
		want  int
	}{
		"logo": {
			style: icon.StyleLogo,
			set:   "logo",
			want:  15,
		},
		"cursor": {
			style: icon.StyleCursor,
			set:   "cursor",
			want:  18,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()

			specs, err := icon.Set(tc.set)
			require.NoError(t, err)

			g, err := generate.New(dir, generate.WithStyle(tc.style))
			require.NoError(t, err)
			t.Cleanup(func() { require.NoError(t, g.Close()) })

			res, err := g.GenerateAll(t.Context(), specs)
			require.NoError(t, err)
			require.NoError(t, res.Err())

			assert.Equal(t, tc.want, res.Total)
			assert.Equal(t, tc.want, res.Written)
			assert.Empty(t, res.Failures)
			assert.Len(t, res.Files, tc.want)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, tc.want)

			var total int64
			for _, spec := range specs {
				b, err := os.ReadFile(filepath.Join(dir, spec.Filename))
				require.NoError(t, err, spec.Filename)

				total += int64(len(b))

				cfg, err := png.DecodeConfig(bytes.NewReader(b))
				require.NoError(t, err, spec.Filename)
				assert.Equal(t, spec.Size, cfg.Width, spec.Filename)
				assert.Equal(t, spec.Size, cfg.Height, spec.Filename)

				// Color type 2 is truecolor without alpha.
				assert.Equal(t, byte(2), b[25], spec.Filename)
			}

			assert.Equal(t, total, res.Bytes)
		})
	}
}

func TestNew_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := generate.New(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, generate.ErrOutputDir)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerator_ContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// A directory in place of an output file makes that one write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b.png"), 0o755))

	specs := icon.Specs{
		{Filename: "a.png", Size: 20},
		{Filename: "b.png", Size: 29},
		{Filename: "c.png", Size: 40},
	}

	g, err := generate.New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, g.Close()) })

	res, err := g.GenerateAll(t.Context(), specs)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Written)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "b.png", res.Failures[0].Spec.Filename)
	require.ErrorIs(t, res.Failures[0], generate.ErrWrite)

	require.ErrorIs(t, res.Err(), generate.ErrIncomplete)
	require.ErrorIs(t, res.Err(), generate.ErrWrite)

	assert.FileExists(t, filepath.Join(dir, "a.png"))
	assert.FileExists(t, filepath.Join(dir, "c.png"))
}

func TestGenerator_Overwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "Icon-20.png")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 1<<16), 0o644))

	g, err := generate.New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, g.Close()) })

	res, err := g.GenerateAll(t.Context(), icon.Specs{{Filename: "Icon-20.png", Size: 20}})
	require.NoError(t, err)
	require.NoError(t, res.Err())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, res.Bytes, int64(len(b)))

	_, err = png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
}

func TestGenerator_InvalidSpecs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	g, err := generate.New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, g.Close()) })

	tcs := map[string]icon.Specs{
		"escape":    {{Filename: "../escape.png", Size: 20}},
		"zero size": {{Filename: "a.png", Size: 0}},
		"duplicate": {{Filename: "a.png", Size: 20}, {Filename: "a.png", Size: 40}},
	}

	for name, specs := range tcs {
		_, err := g.GenerateAll(t.Context(), specs)
		require.ErrorIs(t, err, icon.ErrInvalidSpec, name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerator_Canceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	g, err := generate.New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, g.Close()) })

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	res, err := g.GenerateAll(ctx, icon.Specs{{Filename: "a.png", Size: 20}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Written)
	assert.NoFileExists(t, filepath.Join(dir, "a.png"))
}

func TestGenerator_Events(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b.png"), 0o755))

	g, err := generate.New(dir, generate.WithStyle(icon.StyleCursor), generate.WithSupersample(2))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, g.Close()) })

	ch := make(chan generate.Event, 10)
	g.Subscribe(ch)

	_, err = g.GenerateAll(t.Context(), icon.Specs{
		{Filename: "a.png", Size: 20},
		{Filename: "b.png", Size: 20},
	})
	require.NoError(t, err)
	close(ch)

	events := []generate.Event{}
	for evt := range ch {
		events = append(events, evt)
	}

	require.Len(t, events, 4)

	start, ok := events[0].(generate.EventStart)
	require.True(t, ok)
	assert.Equal(t, 2, start.Total)

	written, ok := events[1].(generate.EventWritten)
	require.True(t, ok)
	assert.Equal(t, "a.png", written.Spec.Filename)
	assert.Positive(t, written.Bytes)

	failed, ok := events[2].(generate.EventFailed)
	require.True(t, ok)
	assert.Equal(t, "b.png", failed.Spec.Filename)

	done, ok := events[3].(generate.EventDone)
	require.True(t, ok)
	assert.Equal(t, 1, done.Written)
	assert.Equal(t, 2, done.Total)
}

func TestWatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o644))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	calls := make(chan struct{}, 10)
	done := make(chan error, 1)

	go func() {
		done <- generate.Watch(ctx, path, func(context.Context) error {
			calls <- struct{}{}
			return nil
		})
	}()

	// Writes to other files in the directory are ignored.
	require.Eventually(t, func() bool {
		err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("b: 2\n"), 0o644)
		if err != nil {
			return false
		}

		err = os.WriteFile(path, []byte("a: 2\n"), 0o644)
		if err != nil {
			return false
		}

		select {
		case <-calls:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not return after cancel")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	t.Parallel()

	err := generate.Watch(t.Context(), filepath.Join(t.TempDir(), "missing", "config.yaml"),
		func(context.Context) error { return nil })
	require.ErrorIs(t, err, generate.ErrWatch)
}
