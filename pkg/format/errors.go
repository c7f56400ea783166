package format

import (
	"fmt"
	"strings"

	"github.com/oneconcern/datarev/pkg/errors"
)

var (
	// ErrNoMatchingFormats indicates that no registered recognizer matched a dataset path
	ErrNoMatchingFormats = errors.New("no matching formats")

	// ErrMultipleFormatsMatch indicates that several recognizers matched a dataset path.
	//
	// The returned error is a *MultipleFormatsMatchError, which carries the matched formats.
	ErrMultipleFormatsMatch = errors.New("multiple formats match")

	// ErrUnknownFormat indicates that a format name is not registered
	ErrUnknownFormat = errors.New("unknown format")
)

// MultipleFormatsMatchError is returned when detection is ambiguous
type MultipleFormatsMatchError struct {
	Path    string
	Formats []string
}

func (e *MultipleFormatsMatchError) Error() string {
	return fmt.Sprintf("%v: path %q may be loaded as any of [%s], specify a format explicitly",
		ErrMultipleFormatsMatch, e.Path, strings.Join(e.Formats, ", "))
}

// Is ErrMultipleFormatsMatch
func (e *MultipleFormatsMatchError) Is(target error) bool {
	return target == error(ErrMultipleFormatsMatch)
}
