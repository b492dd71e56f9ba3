package algoviz

import "errors"

var (
	// ErrNoDataset is wrapped by the PreconditionError of operations that
	// need a loaded dataset.
	ErrNoDataset = errors.New("no dataset loaded")

	// ErrNoResult is wrapped by the PreconditionError of operations that
	// need a committed run result.
	ErrNoResult = errors.New("no result available")

	// ErrSuperseded reports a run whose response arrived after a newer run
	// was committed. Its result is discarded.
	ErrSuperseded = errors.New("result superseded by a newer run")
)

// PreconditionError reports an operation invoked in a state that does not
// allow it. No network call is made.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return "algoviz: " + e.Op + ": " + e.Err.Error()
}

func (e *PreconditionError) Unwrap() error { return e.Err }
