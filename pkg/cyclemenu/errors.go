package cyclemenu

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every InvalidArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a missing or unusable required argument.
// It is the only caller error the widget surfaces; everything else is
// clamped to a usable value.
type InvalidArgumentError struct {
	Param  string // Name of the offending parameter or config field
	Reason string // Optional detail
}

func (e *InvalidArgumentError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cyclemenu: invalid argument %q: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("cyclemenu: invalid argument %q", e.Param)
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalidArgument(param, reason string) error {
	return &InvalidArgumentError{Param: param, Reason: reason}
}

// IsInvalidArgument checks if err was caused by a bad argument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// InfrastructureError represents a host level failure (SDL, window or
// renderer creation, icon rasterizing) that the widget logic cannot recover
// from.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "init_sdl", "rasterize_icon")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cyclemenu: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("cyclemenu: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}
