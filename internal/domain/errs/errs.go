// Package errs defines the failure taxonomy of a report run.
//
// Every error that ends a run is one of the types below (possibly wrapped), so
// callers can classify it with errors.As / errors.Is.
package errs

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the source delivered zero records.
var ErrEmptyInput = &EmptyInputError{}

// FetchError reports a failed request to the market-data source: either a
// non-2xx status (StatusCode set) or a transport/decode failure (Err set).
type FetchError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		if e.Body != "" {
			return fmt.Sprintf("fetch market data: unexpected status %d: %s", e.StatusCode, e.Body)
		}
		return fmt.Sprintf("fetch market data: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("fetch market data: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// EmptyInputError reports a successful fetch that returned no records.
type EmptyInputError struct{}

func (*EmptyInputError) Error() string { return "empty record set" }

// Is lets errors.Is(err, ErrEmptyInput) match any EmptyInputError value.
func (*EmptyInputError) Is(target error) bool {
	_, ok := target.(*EmptyInputError)
	return ok
}

// MalformedRecordError identifies the first record failing validation.
type MalformedRecordError struct {
	Index      int
	Identifier string
	Field      string
	Rule       string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %s (index %d): field %s failed %q", e.Identifier, e.Index, e.Field, e.Rule)
}

// SinkWriteError reports a failed artifact write. Sink names the artifact kind
// ("spreadsheet", "report").
type SinkWriteError struct {
	Sink string
	Path string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("write %s %s: %v", e.Sink, e.Path, e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }

// IsFetch reports whether err is (or wraps) a FetchError.
func IsFetch(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
