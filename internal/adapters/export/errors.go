package export

import (
	"errors"
	"fmt"
)

// ErrNoSinks is returned when publishing with nothing configured.
var ErrNoSinks = errors.New("no export sinks configured")

// ExportIOError reports a failed write to a single sink.
type ExportIOError struct {
	Sink string
	Key  string
	Err  error
}

func (e *ExportIOError) Error() string {
	return fmt.Sprintf("export to %s (%s): %v", e.Sink, e.Key, e.Err)
}

func (e *ExportIOError) Unwrap() error { return e.Err }
