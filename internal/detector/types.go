package detector

import (
	"context"
	"time"
)

// EventOp is the kind of raw filesystem event a watcher reports.
type EventOp string

const (
	EventCreate EventOp = "create"
	EventWrite  EventOp = "write"
	EventRemove EventOp = "remove"
	EventRename EventOp = "rename"
	EventChmod  EventOp = "chmod"
)

// KnownEventOps lists every event kind a scenario may carry.
func KnownEventOps() []EventOp {
	return []EventOp{EventCreate, EventWrite, EventRemove, EventRename, EventChmod}
}

// Event is a single raw filesystem event. The analyzer treats events as
// opaque and passes them to the detector verbatim.
type Event struct {
	Op        EventOp   `json:"op" yaml:"op"`
	Path      string    `json:"path" yaml:"path"`
	OldPath   string    `json:"old_path,omitempty" yaml:"old_path,omitempty"`
	Size      int64     `json:"size,omitempty" yaml:"size,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// OperationType classifies a detected high-level file operation.
type OperationType string

const (
	OpCreate OperationType = "create"
	OpEdit   OperationType = "edit"
	OpDelete OperationType = "delete"
	OpRename OperationType = "rename"
	OpMove   OperationType = "move"
	OpCopy   OperationType = "copy"
)

// String returns the string value of the operation type.
func (t OperationType) String() string {
	return string(t)
}

// KnownOperationTypes lists every operation type a detector may report.
func KnownOperationTypes() []OperationType {
	return []OperationType{OpCreate, OpEdit, OpDelete, OpRename, OpMove, OpCopy}
}

// Operation is a single operation instance reported by a detector for one
// scenario, with a type and a confidence in [0, 1].
type Operation struct {
	Type       OperationType `json:"type"`
	Confidence float64       `json:"confidence"`
	Paths      []string      `json:"paths,omitempty"`
}

// Detector turns a sequence of raw filesystem events into the high-level
// operations it believes produced them.
type Detector interface {
	Detect(ctx context.Context, events []Event) ([]Operation, error)
}
