package argon

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is wrapped by every *ParamError.
	ErrInvalidParameter = errors.New("argon: invalid parameter")

	// ErrOutOfMemory is returned when the memory matrix cannot be allocated.
	ErrOutOfMemory = errors.New("argon: out of memory")

	// ErrMalformedEncoding is wrapped by every *EncodingError.
	ErrMalformedEncoding = errors.New("argon: malformed encoded hash")

	// ErrVerificationMismatch is returned by CompareHashAndPassword when
	// the password does not match. Verify and VerifyEncoded report a
	// mismatch as false instead.
	ErrVerificationMismatch = errors.New("argon: hash and password do not match")
)

// A ParamError reports an input or parameter outside its allowed range.
// It is always detected before any memory is allocated.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("argon: invalid %s: %s", e.Field, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// An EncodingError reports an encoded hash that could not be parsed.
// Err, if set, is the underlying cause.
type EncodingError struct {
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("argon: malformed encoded hash: %s: %v", e.Reason, e.Err)
	}
	return "argon: malformed encoded hash: " + e.Reason
}

func (e *EncodingError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedEncoding, e.Err}
	}
	return []error{ErrMalformedEncoding}
}

// errorKind names the class of err for metrics and logs.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedEncoding):
		return "malformed_encoding"
	case errors.Is(err, ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, ErrOutOfMemory):
		return "out_of_memory"
	default:
		return "unknown"
	}
}
