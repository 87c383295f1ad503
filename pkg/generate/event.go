package generate

import "github.com/macropower/termicon/pkg/icon"

// Event represents progress of a [Generator] batch.
type Event any

type (
	// EventStart is sent before the first icon of a batch is rendered.
	EventStart struct {
		Dir   string
		Total int
	}

	// EventWritten is sent after an icon was written.
	EventWritten File

	// EventFailed is sent after an icon could not be rendered or written.
	EventFailed Failure

	// EventDone is sent when a batch ends, including when it was aborted.
	EventDone Result
)

// File is an icon written to the output directory.
type File struct {
	Spec  icon.Spec
	Path  string
	Bytes int64
}

// Failure is an icon that was skipped.
type Failure struct {
	Err  error
	Spec icon.Spec
}

func (f Failure) Error() string {
	return f.Spec.Filename + ": " + f.Err.Error()
}

func (f Failure) Unwrap() error {
	return f.Err
}
