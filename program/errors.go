package program

import "errors"

var (
	// ErrProgramNotFound is returned by stores for unknown program names.
	ErrProgramNotFound = errors.New("program not found")

	// ErrRoutineExists is returned when adding a routine under a taken name.
	ErrRoutineExists = errors.New("routine already exists")

	// ErrRoutineNotFound is returned for unknown routine names.
	ErrRoutineNotFound = errors.New("routine not found")

	// ErrStatementNotFound is returned when removing a statement the routine does not hold.
	ErrStatementNotFound = errors.New("statement not found")

	// ErrEmptyName is returned for empty routine or program names.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrPoseUnresolved is returned for positions that only carry joint values.
	ErrPoseUnresolved = errors.New("position has no resolved pose")

	// ErrNilPose is returned when assigning a nil pose.
	ErrNilPose = errors.New("pose is nil")

	// ErrNoJoints is returned for positions without a joint configuration.
	ErrNoJoints = errors.New("position has no joint values")

	// ErrNoJointCount is returned by a robot whose joint count was never recorded.
	ErrNoJointCount = errors.New("robot joint count not configured")
)
