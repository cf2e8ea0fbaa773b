package sim

import (
	"fmt"
	"reflect"
)

// ErrorPolicy decides what the engine does when a handler returns an error.
type ErrorPolicy int

const (
	// ContinueOnError logs the failure together with the event and keeps
	// draining the queue.
	ContinueOnError ErrorPolicy = iota

	// StopOnError makes Run return the failure immediately. The events that
	// are still queued stay in the queue.
	StopOnError
)

func (p ErrorPolicy) String() string {
	switch p {
	case ContinueOnError:
		return "continue"
	case StopOnError:
		return "stop"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// EventError wraps an error returned by a handler with the event that
// triggered it.
type EventError struct {
	Time  VTimeInSec
	Event Event
	Err   error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("event %s @ %.10f failed: %v",
		reflect.TypeOf(e.Event), e.Time, e.Err)
}

// Unwrap returns the error returned by the handler.
func (e *EventError) Unwrap() error {
	return e.Err
}
