package pointcsv

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/biotinker/pointcsv/host"
	"github.com/biotinker/pointcsv/program"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"
)

// newProgramConverter returns a converter over a program with one active,
// empty routine named "main".
func newProgramConverter(t *testing.T, jointCount int) (*Converter, *program.Program) {
	t.Helper()

	p := program.New("cell")
	p.Robot = &program.RobotInfo{Name: "kr6", JointCount: jointCount}
	_, err := p.AddRoutine("main")
	require.NoError(t, err)
	require.NoError(t, p.SetActiveRoutine("main"))

	return NewConverter(program.NewHost(p, nil), logging.NewTestLogger(t)), p
}

func activeRoutine(t *testing.T, p *program.Program) *program.Routine {
	t.Helper()
	r, ok := p.ActiveRoutine()
	require.True(t, ok)
	return r
}

// lines splits exported text into records regardless of newline convention.
func lines(s string) []string {
	return strings.Fields(s)
}

// fkRobot computes a pose from the first three joints.
type fkRobot struct {
	*program.StaticRobot
	calls int
}

func (r *fkRobot) ForwardKinematics(_ context.Context, jointsDeg []float64) (spatialmath.Pose, error) {
	r.calls++
	return spatialmath.NewPoseFromPoint(r3.Vector{X: jointsDeg[0], Y: jointsDeg[1], Z: jointsDeg[2]}), nil
}

// fakeHost is a host without routine management.
type fakeHost struct {
	robot   host.Robot
	routine host.Routine
}

func (h *fakeHost) ActiveRobot() (host.Robot, bool) {
	return h.robot, h.robot != nil
}

func (h *fakeHost) ActiveRoutine() (host.Routine, bool) {
	return h.routine, h.routine != nil
}

// fakeRoutine hands out positions built by newPosition.
type fakeRoutine struct {
	statements  []host.Statement
	newPosition func() host.Position
}

func (r *fakeRoutine) Name() string {
	return "fake"
}

func (r *fakeRoutine) Statements() []host.Statement {
	return r.statements
}

func (r *fakeRoutine) AppendStatement(kind host.Kind) (host.Statement, error) {
	st := &fakeStatement{kind: kind, positions: []host.Position{r.newPosition()}}
	r.statements = append(r.statements, st)
	return st, nil
}

type fakeStatement struct {
	kind      host.Kind
	positions []host.Position
}

func (s *fakeStatement) Name() string { return s.kind.String() }

func (s *fakeStatement) Kind() host.Kind { return s.kind }

func (s *fakeStatement) Positions() []host.Position { return s.positions }

// jointPosition accepts joints only through the setters whose error is nil.
type jointPosition struct {
	joints       []float64
	setJointsErr error
	setValueErr  error
}

func (p *jointPosition) Pose() (spatialmath.Pose, error) {
	return nil, program.ErrPoseUnresolved
}

func (p *jointPosition) SetPose(spatialmath.Pose) error {
	return nil
}

func (p *jointPosition) Joints() ([]float64, error) {
	return p.joints, nil
}

func (p *jointPosition) SetJoints([]float64) error {
	return p.setJointsErr
}

func (p *jointPosition) SetJointValue(index int, valueDeg float64) error {
	if p.setValueErr != nil {
		return p.setValueErr
	}
	for len(p.joints) <= index {
		p.joints = append(p.joints, 0)
	}
	p.joints[index] = valueDeg
	return nil
}
