package history

import (
	"errors"
	"fmt"
)

var ErrDirectoryNotFound = errors.New("the specified directory does not exist")

// ParseError reports a file whose content is not a JSON array of records.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TimestampError reports an endTime that doesn't match EndTimeLayout.
type TimestampError struct {
	Value string
	Err   error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("invalid endTime %q: %v", e.Value, e.Err)
}

func (e *TimestampError) Unwrap() error {
	return e.Err
}
