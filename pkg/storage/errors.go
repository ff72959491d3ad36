package storage

import "errors"

var ErrLocked = errors.New("store is locked by another handle")

// Error is returned for every failure of the underlying engine: I/O, corruption,
// lock contention or a rejected write.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	return &Error{Op: op, Err: err}
}
