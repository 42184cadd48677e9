package codec

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrTruncatedStream means fewer bytes remained than a field needs.
	ErrTruncatedStream = errors.New("truncated stream")
	// ErrStreamWrite marks any failure reported by the underlying writer.
	ErrStreamWrite = errors.New("stream write failed")
	// ErrFieldOverflow is returned in strict mode when a value is wider
	// than its field.
	ErrFieldOverflow = errors.New("value exceeds field width")
	// ErrMalformedField means a numeric text field held non-numeric text.
	ErrMalformedField = errors.New("malformed numeric text field")
	// ErrCountMismatch means a table's length disagrees with its count field.
	ErrCountMismatch = errors.New("table length does not match its count")
	// ErrTableTooLarge means a table count exceeds the configured maximum.
	ErrTableTooLarge = errors.New("table count exceeds limit")
)

// ParseError reports the field at which ParseStream stopped.
type ParseError struct {
	Record string
	Field  string
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: field %s at offset %d: %v", e.Record, e.Field, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError reports the field at which WriteStream stopped.
type WriteError struct {
	Record string
	Field  string
	Offset int64
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: field %s at offset %d: %v", e.Record, e.Field, e.Offset, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// MissingKeywordWarning records a key that was absent from, or did not
// convert in, the keyword list handed to LoadState.
type MissingKeywordWarning struct {
	Key string
}

func (w *MissingKeywordWarning) Error() string {
	return "missing keyword " + w.Key
}

// CountMismatchWarning records a table whose declared count disagrees with
// the number of entries present in the keyword list.
type CountMismatchWarning struct {
	Key      string
	Declared int
	Found    int
}

func (w *CountMismatchWarning) Error() string {
	return fmt.Sprintf("table %s declares %d entries, found %d", w.Key, w.Declared, w.Found)
}
