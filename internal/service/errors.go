package service

import "errors"

// errInvalidArgument marks validation failures that handlers turn
// into 400 responses. Wrapped errors carry the field-level message.
var errInvalidArgument = errors.New("invalid argument")

// ErrInvalidArgument reports whether err is a validation failure.
func ErrInvalidArgument(err error) bool { return errors.Is(err, errInvalidArgument) }

// ErrCodeSpaceExhausted is returned by visitor registration when no
// free pass code could be found within the bounded attempt budget.
// Given the size of the code space it is expected never to trigger in
// practice.
var ErrCodeSpaceExhausted = errors.New("pass code space exhausted")
