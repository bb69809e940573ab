package sfoglia

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoRouteFactory indicates SetNewRoutePath was called on a navigator
	// with no OnGenerateRoute factory configured.
	ErrNoRouteFactory = errors.New("no route factory configured")

	// ErrRouteNotFound indicates the route factory declined a configuration.
	// This is normal flow control for unrecognized deep links, not a failure
	// of the engine.
	ErrRouteNotFound = errors.New("route not found")
)

// PlatformError represents a failure in the platform glue underneath the
// engine (texture creation failed, input device unavailable, etc.). These
// errors are typically fatal or require host-level recovery.
//
// Programming errors against the engine itself (popping an empty stack,
// completing a result twice) panic instead; negotiated rejections are plain
// return values, never errors.
type PlatformError struct {
	Op  string // Operation that failed (e.g., "create_texture", "open_input_device")
	Err error  // Underlying error
}

func (e *PlatformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sfoglia: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sfoglia: %s", e.Op)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// NewPlatformError creates a new platform error.
func NewPlatformError(op string, err error) *PlatformError {
	return &PlatformError{Op: op, Err: err}
}

// IsPlatformError checks if an error is a platform error.
func IsPlatformError(err error) bool {
	var platformErr *PlatformError
	return errors.As(err, &platformErr)
}

// IsRouteNotFound checks if an error indicates a declined configuration.
func IsRouteNotFound(err error) bool {
	return errors.Is(err, ErrRouteNotFound)
}
