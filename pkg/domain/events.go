package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart  EventType = "run_start"
	EventRunEnd    EventType = "run_end"
	EventNodeEnter EventType = "node_enter"
	EventNodeLeave EventType = "node_leave"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// RunEvent reports the start or the end of a run.
// Status, Waves and Duration are only set on EventRunEnd.
type RunEvent struct {
	EventBase
	Graph    string        `json:"graph,omitempty"`
	Status   string        `json:"status,omitempty"`
	Waves    int           `json:"waves,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// NodeEvent represents entry or exit from a node.
type NodeEvent struct {
	EventBase
	NodeID   string      `json:"node_id"`
	NodeType NodeType    `json:"node_type"`
	Wave     int         `json:"wave"`
	Outcome  OutcomeKind `json:"outcome,omitempty"`
	Err      error       `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnRunStart  func(context.Context, *RunEvent)
	OnRunEnd    func(context.Context, *RunEvent)
	OnNodeEnter func(context.Context, *NodeEvent)
	OnNodeLeave func(context.Context, *NodeEvent)
}
