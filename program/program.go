// Package program is a self-contained robot program model: named routines
// of motion statements, each holding target positions. It implements the
// host interfaces and can be persisted with a Store.
package program

import (
	"fmt"

	"github.com/biotinker/pointcsv/host"
	"go.viam.com/rdk/spatialmath"
)

// RobotInfo describes the robot a program was taught for.
type RobotInfo struct {
	Name       string `json:"name"`
	JointCount int    `json:"joint_count"`
}

// Program is an ordered set of routines with at most one active routine.
type Program struct {
	Name  string
	Robot *RobotInfo

	routines []*Routine
	active   string
}

// New returns an empty program.
func New(name string) *Program {
	return &Program{Name: name}
}

// Routines returns the routines in creation order.
func (p *Program) Routines() []*Routine {
	return p.routines
}

// FindRoutine looks a routine up by name.
func (p *Program) FindRoutine(name string) (*Routine, bool) {
	for _, r := range p.routines {
		if r.name == name {
			return r, true
		}
	}
	return nil, false
}

// AddRoutine appends an empty routine.
func (p *Program) AddRoutine(name string) (*Routine, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, ok := p.FindRoutine(name); ok {
		return nil, fmt.Errorf("%w: %q", ErrRoutineExists, name)
	}
	r := &Routine{name: name}
	p.routines = append(p.routines, r)
	return r, nil
}

// DeleteRoutine removes a routine. Deleting the active routine leaves the
// program without an active routine.
func (p *Program) DeleteRoutine(name string) error {
	for i, r := range p.routines {
		if r.name != name {
			continue
		}
		p.routines = append(p.routines[:i], p.routines[i+1:]...)
		if p.active == name {
			p.active = ""
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrRoutineNotFound, name)
}

// SetActiveRoutine selects the routine operations run against.
func (p *Program) SetActiveRoutine(name string) error {
	if _, ok := p.FindRoutine(name); !ok {
		return fmt.Errorf("%w: %q", ErrRoutineNotFound, name)
	}
	p.active = name
	return nil
}

// ActiveRoutine returns the selected routine.
func (p *Program) ActiveRoutine() (*Routine, bool) {
	if p.active == "" {
		return nil, false
	}
	return p.FindRoutine(p.active)
}

// Routine is an ordered list of statements.
type Routine struct {
	name       string
	statements []*Statement
	seq        int
}

// Name returns the routine name.
func (r *Routine) Name() string {
	return r.name
}

// Len returns the number of statements.
func (r *Routine) Len() int {
	return len(r.statements)
}

// Statements returns the statements in program order.
func (r *Routine) Statements() []host.Statement {
	out := make([]host.Statement, len(r.statements))
	for i, s := range r.statements {
		out[i] = s
	}
	return out
}

// AppendStatement implements host.Routine.
func (r *Routine) AppendStatement(kind host.Kind) (host.Statement, error) {
	return r.AddStatement(kind), nil
}

// AddStatement appends a statement. Single target motion kinds get one
// empty position; paths start without waypoints.
func (r *Routine) AddStatement(kind host.Kind) *Statement {
	r.seq++
	s := &Statement{name: fmt.Sprintf("%s_%d", kind, r.seq), kind: kind}
	if kind.Motion() && kind != host.KindPath {
		s.positions = []*Position{{}}
	}
	r.statements = append(r.statements, s)
	return s
}

// RemoveStatement implements host.StatementRemover.
func (r *Routine) RemoveStatement(st host.Statement) error {
	for i, s := range r.statements {
		if host.Statement(s) == st {
			r.statements = append(r.statements[:i], r.statements[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrStatementNotFound, st.Name())
}

// Statement is one routine element.
type Statement struct {
	name      string
	kind      host.Kind
	positions []*Position
}

// Name returns the statement name.
func (s *Statement) Name() string {
	return s.name
}

// Kind returns the motion kind.
func (s *Statement) Kind() host.Kind {
	return s.kind
}

// Positions returns the statement targets in order.
func (s *Statement) Positions() []host.Position {
	out := make([]host.Position, len(s.positions))
	for i, p := range s.positions {
		out[i] = p
	}
	return out
}

// AddWaypoint appends a target, typically to a path statement.
func (s *Statement) AddWaypoint(pose spatialmath.Pose) *Position {
	p := &Position{pose: pose}
	s.positions = append(s.positions, p)
	return p
}

// Position is a target pose and, when known, the joint configuration that
// reaches it.
type Position struct {
	pose   spatialmath.Pose
	joints []float64
}

// Pose implements host.Position.
func (p *Position) Pose() (spatialmath.Pose, error) {
	if p.pose == nil {
		return nil, ErrPoseUnresolved
	}
	return p.pose, nil
}

// SetPose replaces the target pose. A joint configuration stored earlier no
// longer matches and is dropped.
func (p *Position) SetPose(pose spatialmath.Pose) error {
	if pose == nil {
		return ErrNilPose
	}
	p.pose = pose
	p.joints = nil
	return nil
}

// Joints implements host.Position. Values are in degrees.
func (p *Position) Joints() ([]float64, error) {
	if len(p.joints) == 0 {
		return nil, ErrNoJoints
	}
	out := make([]float64, len(p.joints))
	copy(out, p.joints)
	return out, nil
}

// SetJoints implements host.JointsSetter.
func (p *Position) SetJoints(jointsDeg []float64) error {
	if len(jointsDeg) == 0 {
		return ErrNoJoints
	}
	p.joints = make([]float64, len(jointsDeg))
	copy(p.joints, jointsDeg)
	return nil
}

// SetJointValue implements host.JointValueSetter, growing the configuration
// as needed.
func (p *Position) SetJointValue(index int, valueDeg float64) error {
	if index < 0 {
		return fmt.Errorf("joint index %d out of range", index)
	}
	for len(p.joints) <= index {
		p.joints = append(p.joints, 0)
	}
	p.joints[index] = valueDeg
	return nil
}
