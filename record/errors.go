package record

import (
	"errors"
	"fmt"
)

var (
	// ErrMixedSeparators is returned for a line that uses more than one separator kind.
	ErrMixedSeparators = errors.New("mixed separators in one line")

	// ErrNonNumeric is returned when a field does not parse as a finite real number.
	ErrNonNumeric = errors.New("non-numeric field")

	// ErrEmptyField is returned when two separators enclose nothing.
	ErrEmptyField = errors.New("empty field")

	// ErrUnknownFormat is returned by ParseFormat for unrecognised names.
	ErrUnknownFormat = errors.New("unknown point format")

	// ErrNoJointCount is returned when joint records are classified without a robot joint count.
	ErrNoJointCount = errors.New("robot joint count unknown")
)

// Error is a record level failure tied to its source line.
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FieldCountError reports a record whose length does not fit the declared format.
type FieldCountError struct {
	Line     int
	Format   Format
	Expected int // 0 for Coordinates, which accepts 3 or 6
	Got      int
}

func (e *FieldCountError) Error() string {
	if e.Format == Coordinates {
		return fmt.Sprintf("format mismatch at line %d: expected 3 or 6 fields, got %d", e.Line, e.Got)
	}
	return fmt.Sprintf("format mismatch at line %d: expected %d fields, got %d", e.Line, e.Expected, e.Got)
}

// JointCountError reports a joint record whose length differs from the robot's joint count.
type JointCountError struct {
	Line     int
	Expected int
	Got      int
}

func (e *JointCountError) Error() string {
	return fmt.Sprintf("joint count mismatch at line %d: expected %d joints, got %d", e.Line, e.Expected, e.Got)
}

// LineOf returns the source line carried by a record error, if any.
func LineOf(err error) (int, bool) {
	var recErr *Error
	if errors.As(err, &recErr) {
		return recErr.Line, true
	}
	var countErr *FieldCountError
	if errors.As(err, &countErr) {
		return countErr.Line, true
	}
	var jointErr *JointCountError
	if errors.As(err, &jointErr) {
		return jointErr.Line, true
	}
	return 0, false
}
