package colorhash

import "errors"

// Sentinel errors. Every error returned by this package wraps one of them, so
// callers can branch with errors.Is.
var (
	// ErrRange is returned when a pool value or hue bound lies outside its
	// allowed interval, or when the hue bounds are inverted.
	ErrRange = errors.New("colorhash: value out of range")

	// ErrInvalidArgument is returned for malformed input that is not a range
	// problem: empty pools, RGB triples of the wrong arity.
	ErrInvalidArgument = errors.New("colorhash: invalid argument")
)

// ParamError is returned when a single parameter is rejected.
type ParamError struct {
	Param string // e.g. "lightness", "min_h", "rgb"
	Msg   string
	Err   error // ErrRange or ErrInvalidArgument
}

func (e *ParamError) Error() string {
	return e.Msg
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

func rangeError(param, msg string) error {
	return &ParamError{Param: param, Msg: msg, Err: ErrRange}
}

func invalidArgument(param, msg string) error {
	return &ParamError{Param: param, Msg: msg, Err: ErrInvalidArgument}
}
