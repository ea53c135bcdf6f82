package domain

import (
	"context"
	"time"
)

// EventType defines the category of a dispatch event.
type EventType string

const (
	EventBind    EventType = "bind"
	EventInvoke  EventType = "invoke"
	EventCommit  EventType = "commit"
	EventFailure EventType = "failure"
)

// TransitionEvent describes one step of a transition call as seen by
// observability hooks.
type TransitionEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	Machine    string    `json:"machine"`
	State      string    `json:"state"`
	Transition string    `json:"transition,omitempty"`
	Next       string    `json:"next,omitempty"`
	Subject    any       `json:"-"`
	Err        error     `json:"-"`
}

// LifecycleHooks defines callbacks for dispatcher observability. Any field
// may be nil. Hooks run synchronously on the calling goroutine, so keep them
// cheap.
type LifecycleHooks struct {
	// OnBind fires after a subject passes the pre-check.
	OnBind func(context.Context, *TransitionEvent)

	// OnInvoke fires just before a transition body runs.
	OnInvoke func(context.Context, *TransitionEvent)

	// OnCommit fires after the state change is written. Next carries the
	// committed state; it is empty for terminal moves.
	OnCommit func(context.Context, *TransitionEvent)

	// OnFailure fires for every dispatch failure, with Err set.
	OnFailure func(context.Context, *TransitionEvent)
}
