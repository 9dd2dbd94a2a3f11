package segment

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a marker matches no line.
	ErrNotFound = errors.New("marker not found")
	// ErrRange is returned when segment bounds are invalid or overlap.
	ErrRange = errors.New("invalid segment range")
	// ErrConfiguration is returned when a plan cannot be applied as written.
	ErrConfiguration = errors.New("invalid plan")
)

// NotFoundError reports a marker that matched nothing at or after From.
type NotFoundError struct {
	Marker string
	From   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("marker %q not found at or after line %d", e.Marker, e.From+1)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// RangeError reports segment bounds that cannot be extracted.
type RangeError struct {
	Segment string
	Start   int
	End     int
	Len     int
	Reason  string
}

func (e *RangeError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "out of bounds"
	}
	if e.Segment == "" {
		return fmt.Sprintf("range [%d, %d) over %d lines: %s", e.Start, e.End, e.Len, reason)
	}
	return fmt.Sprintf("segment %q: range [%d, %d) over %d lines: %s", e.Segment, e.Start, e.End, e.Len, reason)
}

func (e *RangeError) Unwrap() error {
	return ErrRange
}

// ConfigurationError wraps a failure to resolve part of a plan.
// It matches both ErrConfiguration and the underlying cause.
type ConfigurationError struct {
	Plan string
	Item string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Plan == "" {
		return fmt.Sprintf("%s: %v", e.Item, e.Err)
	}
	return fmt.Sprintf("plan %q: %s: %v", e.Plan, e.Item, e.Err)
}

func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}
