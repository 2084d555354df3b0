// Package snapshot defines the immutable view of a pod that the diagnosis
// core operates on. A PodSnapshot is built once per run from collaborator
// calls and never mutated afterwards; every detector is a pure function
// over it.
package snapshot

import (
	"sort"
	"time"
)

// Phase is the coarse pod lifecycle state.
type Phase string

const (
	PhasePending   Phase = "Pending"
	PhaseRunning   Phase = "Running"
	PhaseSucceeded Phase = "Succeeded"
	PhaseFailed    Phase = "Failed"
	PhaseUnknown   Phase = "Unknown"
)

// StateKind discriminates the ContainerState variant.
type StateKind string

const (
	StateRunning    StateKind = "Running"
	StateWaiting    StateKind = "Waiting"
	StateTerminated StateKind = "Terminated"
)

// ContainerState is a tagged variant: Running, Waiting{reason} or
// Terminated{reason, exitCode}. Reason is empty for Running.
type ContainerState struct {
	Kind     StateKind `json:"kind"`
	Reason   string    `json:"reason,omitempty"`
	ExitCode int32     `json:"exit_code,omitempty"`
}

// ContainerStatus is the per-container slice of pod status.
type ContainerStatus struct {
	Name         string         `json:"name"`
	Ready        bool           `json:"ready"`
	RestartCount int32          `json:"restart_count"`
	State        ContainerState `json:"state"`
}

// Condition is a named boolean-ish health signal attached to a pod.
type Condition struct {
	Type    string `json:"type"`
	Status  bool   `json:"status"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// Event types as reported by the cluster.
const (
	EventNormal  = "Normal"
	EventWarning = "Warning"
)

// ObjectRef identifies the object an event is about.
type ObjectRef struct {
	Kind string `json:"kind,omitempty"`
	Name string `json:"name"`
}

// EventRecord is one cluster event touching the pod or its namespace.
type EventRecord struct {
	Type          string    `json:"type"`
	Reason        string    `json:"reason"`
	Message       string    `json:"message"`
	Object        ObjectRef `json:"object"`
	LastTimestamp time.Time `json:"last_timestamp"`
	Count         int32     `json:"count"`
}

// ResourceUsage is current consumption as reported by metrics; nil on the
// snapshot when metrics are not obtainable.
type ResourceUsage struct {
	CPU    string `json:"cpu"`
	Memory string `json:"memory"`
}

// PodSnapshot is everything the detectors need, gathered up front.
// LogText may contain a previous-container section ahead of the current one.
type PodSnapshot struct {
	Name       string            `json:"name"`
	Namespace  string            `json:"namespace"`
	Phase      Phase             `json:"phase"`
	Containers []ContainerStatus `json:"containers,omitempty"`
	Conditions []Condition       `json:"conditions,omitempty"`
	LogText    string            `json:"-"`
	Events     []EventRecord     `json:"events,omitempty"`
	Usage      *ResourceUsage    `json:"usage,omitempty"`
}

// SortEventsByTime returns a new slice ordered most-recent-first.
// The sort is stable: events with equal timestamps keep their input order.
// The input is never modified.
func SortEventsByTime(events []EventRecord) []EventRecord {
	out := make([]EventRecord, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastTimestamp.After(out[j].LastTimestamp)
	})
	return out
}

// LatestEvents returns at most n events, most-recent-first.
func LatestEvents(events []EventRecord, n int) []EventRecord {
	sorted := SortEventsByTime(events)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
