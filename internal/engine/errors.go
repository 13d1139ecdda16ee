package engine

import "fmt"

// SpawnError reports that the operating system failed to create a child
// process. It is fatal to Start: the remaining batch is aborted, while any
// already-running processes stay reachable by Stop.
type SpawnError struct {
	Process string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn process %s: %v", e.Process, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// TerminationError reports that a termination signal could not be delivered,
// typically because the process was already gone. It is logged by the caller
// and otherwise treated as already-terminal.
type TerminationError struct {
	Process string
	Err     error
}

func (e *TerminationError) Error() string {
	return fmt.Sprintf("terminate process %s: %v", e.Process, e.Err)
}

func (e *TerminationError) Unwrap() error { return e.Err }
