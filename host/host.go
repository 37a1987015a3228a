// Package host describes the environment that owns robots, routines and
// motion statements. The CSV converter only talks to these interfaces.
package host

import (
	"context"
	"strings"

	"go.viam.com/rdk/spatialmath"
)

// Kind is the motion kind of a routine statement.
type Kind int

const (
	// KindOther is any statement that carries no exportable target.
	KindOther Kind = iota
	// KindPTP is a point-to-point motion to one target.
	KindPTP
	// KindLIN is a linear motion to one target.
	KindLIN
	// KindPath is a motion through an ordered list of waypoints.
	KindPath
	// KindCustom is a host specific motion with one target.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindPTP:
		return "ptp"
	case KindLIN:
		return "lin"
	case KindPath:
		return "path"
	case KindCustom:
		return "custom"
	default:
		return "other"
	}
}

// ParseKind is the inverse of Kind.String. Unknown names map to KindOther.
func ParseKind(name string) Kind {
	switch strings.ToLower(name) {
	case "ptp":
		return KindPTP
	case "lin":
		return KindLIN
	case "path":
		return KindPath
	case "custom":
		return KindCustom
	default:
		return KindOther
	}
}

// Motion reports whether statements of this kind carry target points.
func (k Kind) Motion() bool {
	return k == KindPTP || k == KindLIN || k == KindPath || k == KindCustom
}

// Host exposes the current selection.
type Host interface {
	ActiveRobot() (Robot, bool)
	ActiveRoutine() (Routine, bool)
}

// RoutineManager is implemented by hosts that can create and replace
// routines by name in the active program.
type RoutineManager interface {
	FindRoutine(name string) (Routine, bool)
	AddRoutine(name string) (Routine, error)
	DeleteRoutine(name string) error
}

// Robot is the selected robot.
type Robot interface {
	Name() string
	JointCount(ctx context.Context) (int, error)
}

// ForwardKinematics is implemented by robots that can convert joint values
// (degrees) into a pose in the reference frame.
type ForwardKinematics interface {
	ForwardKinematics(ctx context.Context, jointsDeg []float64) (spatialmath.Pose, error)
}

// Routine is an ordered list of statements.
type Routine interface {
	Name() string
	Statements() []Statement
	// AppendStatement adds a statement of the given kind at the end of the
	// routine. Single target kinds come with one empty position.
	AppendStatement(kind Kind) (Statement, error)
}

// StatementRemover is implemented by routines that can drop a statement.
type StatementRemover interface {
	RemoveStatement(s Statement) error
}

// Statement is one routine element.
type Statement interface {
	Name() string
	Kind() Kind
	Positions() []Position
}

// Position is one target of a motion statement.
type Position interface {
	// Pose returns the target in the routine's reference frame.
	Pose() (spatialmath.Pose, error)
	SetPose(pose spatialmath.Pose) error
	// Joints returns the joint configuration in degrees.
	Joints() ([]float64, error)
}

// JointsSetter is the primary way of assigning a joint configuration.
type JointsSetter interface {
	SetJoints(jointsDeg []float64) error
}

// JointValueSetter assigns joints one at a time.
type JointValueSetter interface {
	SetJointValue(index int, valueDeg float64) error
}
