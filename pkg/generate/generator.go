package generate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/termicon/pkg/canvas"
	"github.com/macropower/termicon/pkg/icon"
	"github.com/macropower/termicon/pkg/log"
)

var (
	// ErrWrite is returned when a single icon could not be written.
	ErrWrite = errors.New("write icon")
	// ErrIncomplete is returned by [Result.Err] when not every icon was written.
	ErrIncomplete = errors.New("icon set incomplete")
	// ErrOutputDir is returned when the output directory cannot be opened.
	ErrOutputDir = errors.New("open output directory")
)

// Result summarizes a batch.
type Result struct {
	Files    []File
	Failures []Failure
	Total    int
	Written  int
	Bytes    int64
}

// Err returns nil when every icon was written, and otherwise an error wrapping
// [ErrIncomplete] and each [Failure].
func (r Result) Err() error {
	if r.Written == r.Total && len(r.Failures) == 0 {
		return nil
	}

	errs := make([]error, 0, len(r.Failures)+1)
	errs = append(errs, fmt.Errorf("%w: wrote %d of %d icons", ErrIncomplete, r.Written, r.Total))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}

	return errors.Join(errs...)
}

// Generator renders icons into an output directory.
type Generator struct {
	tracer     trace.Tracer
	root       *os.Root
	listeners  []chan<- Event
	renderOpts []icon.RenderOpt
	style      icon.Style
	mu         sync.Mutex
}

// Opt configures a [Generator].
type Opt func(*Generator)

// WithStyle sets the icon style. The default is [icon.StyleLogo].
func WithStyle(s icon.Style) Opt {
	return func(g *Generator) {
		g.style = s
	}
}

// WithSupersample renders each icon at n times its size and downscales it.
func WithSupersample(n int) Opt {
	return func(g *Generator) {
		g.renderOpts = append(g.renderOpts, icon.WithSupersample(n))
	}
}

// New creates a [Generator] writing into dir. The directory must exist.
func New(dir string, opts ...Opt) (*Generator, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOutputDir, dir, err)
	}

	g := &Generator{
		tracer: otel.Tracer("generator"),
		root:   root,
		style:  icon.StyleLogo,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Dir returns the output directory passed to [New].
func (g *Generator) Dir() string {
	return g.root.Name()
}

// Close releases the output directory.
func (g *Generator) Close() error {
	return g.root.Close() //nolint:wrapcheck // Return the original error.
}

// Subscribe registers ch to receive [Event]s. Sends are synchronous, so ch
// must be buffered or drained concurrently.
func (g *Generator) Subscribe(ch chan<- Event) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.listeners = append(g.listeners, ch)
}

func (g *Generator) broadcast(ctx context.Context, evt Event) {
	g.mu.Lock()
	listeners := g.listeners
	g.mu.Unlock()

	log.WithContext(ctx).DebugContext(ctx, "broadcasting event",
		slog.String("event", fmt.Sprintf("%T", evt)),
	)

	for _, ch := range listeners {
		ch <- evt
	}
}

// GenerateAll renders and writes every spec in order.
//
// Write failures are logged, recorded in the [Result] and skipped. The
// returned error is non-nil only when the batch was aborted: the specs are
// invalid, the canvas is unavailable, or ctx was canceled. Use [Result.Err]
// to check whether every icon was written.
func (g *Generator) GenerateAll(ctx context.Context, specs icon.Specs) (Result, error) {
	ctx, span := g.tracer.Start(ctx, "generate", trace.WithAttributes(
		attribute.String("dir", g.Dir()),
		attribute.String("style", g.style.String()),
		attribute.Int("total", len(specs)),
	))
	defer span.End()

	logger := log.WithContext(ctx)
	res := Result{Total: len(specs)}

	err := specs.Validate()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid specs")

		return res, err
	}

	g.broadcast(ctx, EventStart{Dir: g.Dir(), Total: res.Total})
	defer func() {
		g.broadcast(ctx, EventDone(res))
	}()

	for _, spec := range specs {
		err := ctx.Err()
		if err != nil {
			span.SetStatus(codes.Error, "canceled")

			return res, fmt.Errorf("generate icons: %w", err)
		}

		file, err := g.Generate(ctx, spec)
		if errors.Is(err, canvas.ErrUnavailable) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "canvas unavailable")

			return res, err
		}
		if err != nil {
			logger.ErrorContext(ctx, "skipping icon",
				slog.String("file", spec.Filename),
				slog.Int("size", spec.Size),
				slog.Any("err", err),
			)

			failure := Failure{Spec: spec, Err: err}
			res.Failures = append(res.Failures, failure)
			g.broadcast(ctx, EventFailed(failure))

			continue
		}

		logger.InfoContext(ctx, "wrote icon",
			slog.String("file", file.Spec.Filename),
			slog.Int("size", file.Spec.Size),
		)

		res.Files = append(res.Files, file)
		res.Written++
		res.Bytes += file.Bytes
		g.broadcast(ctx, EventWritten(file))
	}

	span.SetAttributes(
		attribute.Int("written", res.Written),
		attribute.Int64("bytes", res.Bytes),
	)
	if len(res.Failures) > 0 {
		span.SetStatus(codes.Error, "incomplete")
	}

	return res, nil
}

// Generate renders spec and writes it to the output directory.
// Errors other than [canvas.ErrUnavailable] wrap [ErrWrite].
func (g *Generator) Generate(ctx context.Context, spec icon.Spec) (File, error) {
	_, span := g.tracer.Start(ctx, "icon", trace.WithAttributes(
		attribute.String("file", spec.Filename),
		attribute.Int("size", spec.Size),
	))
	defer span.End()

	file, err := g.generate(spec)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate icon")

		return File{}, err
	}

	span.SetAttributes(attribute.Int64("bytes", file.Bytes))

	return file, nil
}

func (g *Generator) generate(spec icon.Spec) (File, error) {
	img, err := icon.Render(spec.Size, g.style, g.renderOpts...)
	if errors.Is(err, canvas.ErrUnavailable) {
		return File{}, err
	}
	if err != nil {
		return File{}, fmt.Errorf("%w %q: %w", ErrWrite, spec.Filename, err)
	}

	f, err := g.root.OpenFile(spec.Filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return File{}, fmt.Errorf("%w %q: %w", ErrWrite, spec.Filename, err)
	}

	n, err := writePNG(f, img)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return File{}, fmt.Errorf("%w %q: %w", ErrWrite, spec.Filename, err)
	}

	return File{
		Spec:  spec,
		Path:  filepath.Join(g.Dir(), spec.Filename),
		Bytes: n,
	}, nil
}

func writePNG(w io.Writer, img *image.RGBA) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}

	err := canvas.EncodePNG(cw, img)
	if err != nil {
		return cw.n, err
	}

	err = cw.w.Flush()
	if err != nil {
		return cw.n, fmt.Errorf("flush: %w", err)
	}

	return cw.n, nil
}

type countingWriter struct {
	w *bufio.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err //nolint:wrapcheck // Return the original error.
}
