package pointcsv

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveRobot is returned when no robot is selected in the host.
	ErrNoActiveRobot = errors.New("no robot selected")

	// ErrNoActiveRoutine is returned when no routine is selected in the host.
	ErrNoActiveRoutine = errors.New("no routine selected")

	// ErrNoPointsImported is the top-level diagnostic of an import that created nothing.
	ErrNoPointsImported = errors.New("no valid points imported")

	// ErrNoPointsExported is the top-level diagnostic of an export that found nothing.
	ErrNoPointsExported = errors.New("no exportable points found")

	// ErrRoutineExists is returned when the target routine exists and overwrite is off.
	ErrRoutineExists = errors.New("routine already exists")

	// ErrRoutinesUnsupported is returned when a named routine is requested from a
	// host that cannot create routines.
	ErrRoutinesUnsupported = errors.New("host cannot create routines")

	// ErrNoTarget is returned for a motion statement without any position.
	ErrNoTarget = errors.New("statement has no target position")

	// ErrJointAssignment is returned when every joint assignment strategy failed.
	ErrJointAssignment = errors.New("could not assign joint values")

	// ErrStrategyUnavailable marks a joint strategy the host does not support.
	ErrStrategyUnavailable = errors.New("not supported by host")
)

// FileAccessError reports a file that could not be opened, read or written.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// StatementError reports a statement whose target could not be resolved or
// written. Index is 1-based in program order, Waypoint is 1-based within
// the statement.
type StatementError struct {
	Index    int
	Name     string
	Waypoint int
	Err      error
}

func (e *StatementError) Error() string {
	name := e.Name
	if name == "" {
		name = "unnamed"
	}
	if e.Waypoint > 0 {
		return fmt.Sprintf("statement %d (%s) waypoint %d: %v", e.Index, name, e.Waypoint, e.Err)
	}
	return fmt.Sprintf("statement %d (%s): %v", e.Index, name, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}
