package browser

import (
	"errors"
	"fmt"
)

// Navigation failures. None of them change the mode or the listing.
var (
	ErrNotADirectory = errors.New("selection is not a directory")
	ErrNoSelection   = errors.New("nothing selected")
	ErrAtRoot        = errors.New("already at the root directory")
)

// IOError reports a directory that could not be read or scanned.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
