package badge

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrContractViolation = errors.New("contract violation")
	ErrDecodeFailure     = errors.New("decode failure")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// ErrorKind is a coarse-grained categorization for engine errors.
type ErrorKind string

const (
	// KindContractViolation marks a call with invalid parameters (a programming error).
	KindContractViolation ErrorKind = "contract_violation"
	// KindDecodeFailure marks input bytes that could not be turned into an image.
	KindDecodeFailure ErrorKind = "decode_failure"
)

// OpError wraps an underlying error with the failing operation and its kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an OpError against the sentinel for its kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindContractViolation:
		return target == ErrContractViolation
	case KindDecodeFailure:
		return target == ErrDecodeFailure
	}
	return false
}

// IsKind reports whether err is an OpError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

func contractViolation(op, format string, args ...interface{}) error {
	return &OpError{Op: op, Kind: KindContractViolation, Err: fmt.Errorf(format, args...)}
}

func decodeFailure(op string, err error) error {
	return &OpError{Op: op, Kind: KindDecodeFailure, Err: err}
}
