package kb

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat indicates that no extractor variant matches the
	// requested source/format combination.
	ErrUnknownFormat = errors.New("unknown source/format combination")

	// ErrMissingFile indicates that a declared input path does not exist.
	ErrMissingFile = errors.New("input file not found")
)

// MalformedRecordError describes a row or stanza that violates the source's
// format contract (missing required field, unexpected delimiter count,
// out-of-range column).
type MalformedRecordError struct {
	Source string // Source tag or file name
	Line   int    // 1-based line number, 0 if unknown
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed record in %s at line %d: %s", e.Source, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed record in %s: %s", e.Source, e.Reason)
}
