// Package types defines the Manager interface, step and log entry types, and
// standard errors for the rewind undo/redo system.
// See docs/ARCHITECTURE.md § Main Interface.
package types

import "errors"

// Direction selects which history stack Perform replays.
type Direction int

const (
	Undo Direction = iota
	Redo
)

// String returns the lower-case direction name.
func (d Direction) String() string {
	if d == Redo {
		return "redo"
	}
	return "undo"
}

// Range is an inclusive span of undo log sequence numbers making up one step.
type Range struct {
	Begin int64
	End   int64
}

// LogEntry is one captured inverse statement from a scope's undo log.
type LogEntry struct {
	Seq int64
	SQL string
}

// Manager records inverse SQL for mutations on a fixed set of tables and
// replays it as whole steps. A manager owns one scope of one database handle;
// instances are not safe for concurrent use.
type Manager interface {
	// Activate installs the undo log table and capture triggers, clears
	// all history, and begins recording. Activating an active manager is
	// a no-op.
	Activate() error

	// Deactivate removes the triggers and the log table and clears all
	// history. Deactivating an inactive manager is a no-op.
	Deactivate() error

	// Freeze marks the current end of the log. Entries captured past the
	// mark are excluded from barriers and purged on Unfreeze, including
	// the steps regenerated by Perform while frozen. Freezing a frozen
	// manager is a no-op.
	Freeze() error

	// Unfreeze purges the entries captured while frozen and resumes
	// normal capture. Unfreezing an unfrozen manager is a no-op.
	Unfreeze() error

	// Barrier closes the current step, pushing its range onto the undo
	// stack and discarding the redo stack. Returns false without touching
	// the stacks when nothing was captured since the previous barrier.
	Barrier() (bool, error)

	// Perform pops the top step of the selected stack and replays it in
	// one transaction. The replayed mutations are recaptured as the
	// complementary step on the opposite stack. Returns ErrEndOfStack
	// when the selected stack is empty.
	Perform(d Direction) error

	// IsActive reports whether capture triggers are installed.
	IsActive() bool

	// IsFrozen reports whether the manager is active and frozen.
	IsFrozen() bool

	// CanUndo reports whether the undo stack is non-empty.
	CanUndo() bool

	// CanRedo reports whether the redo stack is non-empty.
	CanRedo() bool

	// Prefix returns the scope prefix of this instance.
	Prefix() string

	// Tables returns the observed table names in sorted order.
	Tables() []string
}

// Manager state errors.
var (
	ErrNotActive = errors.New("undo manager is not active")

	// ErrAlreadyActive is reserved for callers that treat double
	// activation as a fault; Manager itself makes Activate idempotent.
	ErrAlreadyActive = errors.New("undo manager is already active")

	ErrEndOfStack            = errors.New("end of stack")
	ErrInternalInconsistency = errors.New("undo log is inconsistent with recorded state")
)

// Scope construction errors.
var (
	ErrForeignKeyNotObserved = errors.New("foreign key references a table outside the observed scope")
	ErrInvalidIdentifier     = errors.New("invalid SQL identifier")
	ErrNoTables              = errors.New("no tables to observe")
)
