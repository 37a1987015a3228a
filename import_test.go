package pointcsv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/biotinker/pointcsv/host"
	"github.com/biotinker/pointcsv/program"
	"github.com/biotinker/pointcsv/record"
	"go.viam.com/rdk/logging"
)

func importString(t *testing.T, c *Converter, input string, opts ImportOptions) *ImportResult {
	t.Helper()
	res, err := c.Import(context.Background(), strings.NewReader(input), opts)
	require.NoError(t, err)
	return res
}

func TestImport_FullPose(t *testing.T) {
	c, p := newProgramConverter(t, 6)

	opts := DefaultImportOptions()
	opts.Format = record.FullPose
	res := importString(t, c, "1167,154,499.2820845,0,0,0\n", opts)

	require.True(t, res.OK())
	require.Equal(t, 1, res.Created)
	require.Equal(t, "main", res.Routine)

	st := activeRoutine(t, p).Statements()
	require.Len(t, st, 1)
	require.Equal(t, host.KindPTP, st[0].Kind())

	pose, err := st[0].Positions()[0].Pose()
	require.NoError(t, err)
	got := PoseFromSpatial(pose)
	require.InDelta(t, 1167, got.Position.X, 1e-9)
	require.InDelta(t, 154, got.Position.Y, 1e-9)
	require.InDelta(t, 499.2820845, got.Position.Z, 1e-9)
	require.InDelta(t, 0, got.Orientation.W, 1e-9)
	require.InDelta(t, 0, got.Orientation.P, 1e-9)
	require.InDelta(t, 0, got.Orientation.R, 1e-9)
}

func TestImport_MixedSeparatorsAcrossLines(t *testing.T) {
	c, p := newProgramConverter(t, 6)

	res := importString(t, c, "1,2,3\n4;5;6\n", DefaultImportOptions())
	require.Equal(t, 2, res.Created)
	require.Zero(t, res.Skipped)

	want := []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}
	for i, st := range activeRoutine(t, p).Statements() {
		pose, err := st.Positions()[0].Pose()
		require.NoError(t, err)
		require.InDelta(t, 0, pose.Point().Sub(want[i]).Norm(), 1e-9)
	}
}

func TestImport_MixedSeparatorsWithinLine(t *testing.T) {
	c, _ := newProgramConverter(t, 6)

	res := importString(t, c, "1,2;3\n4,5,6\n", DefaultImportOptions())
	require.Equal(t, 1, res.Created)
	require.Equal(t, 1, res.Skipped)
	require.ErrorIs(t, res.Diagnostics[0].Err, record.ErrMixedSeparators)
	require.Equal(t, 1, res.Diagnostics[0].Line)
}

func TestImport_WrongFieldCountSkipsLine(t *testing.T) {
	c, p := newProgramConverter(t, 6)

	opts := DefaultImportOptions()
	opts.Format = record.FullPose
	input := "1,2,3,4,5,6\n1,2,3\n\n7,8,9,10,11,12\n1,2,x,4,5,6\n"
	res := importString(t, c, input, opts)

	require.Equal(t, 2, res.Created)
	require.Equal(t, 2, res.Skipped)
	require.Zero(t, res.Failed)
	require.Len(t, activeRoutine(t, p).Statements(), 2)

	require.Len(t, res.Diagnostics, 2)
	require.Equal(t, 2, res.Diagnostics[0].Line)
	var fieldErr *record.FieldCountError
	require.True(t, errors.As(res.Diagnostics[0].Err, &fieldErr))
	require.Equal(t, 6, fieldErr.Expected)
	require.Equal(t, 3, fieldErr.Got)
	require.Contains(t, res.Diagnostics[0].String(), "line 2")

	require.Equal(t, 5, res.Diagnostics[1].Line)
	require.ErrorIs(t, res.Diagnostics[1].Err, record.ErrNonNumeric)
}

func TestImport_NothingValid(t *testing.T) {
	c, p := newProgramConverter(t, 6)

	res := importString(t, c, "a,b,c\n\n   \n1,2\n", DefaultImportOptions())
	require.Zero(t, res.Created)
	require.Equal(t, 2, res.Skipped)
	require.False(t, res.OK())
	require.ErrorIs(t, res.Err, ErrNoPointsImported)
	require.Empty(t, activeRoutine(t, p).Statements())

	res = importString(t, c, "", DefaultImportOptions())
	require.Zero(t, res.Created)
	require.ErrorIs(t, res.Err, ErrNoPointsImported)
}

func TestImport_JointAngles(t *testing.T) {
	c, p := newProgramConverter(t, 6)

	opts := DefaultImportOptions()
	opts.Format = record.JointAngles
	res := importString(t, c, "10,20,30,40,50,60\n1,2,3,4,5\n", opts)

	require.Equal(t, 1, res.Created)
	require.Equal(t, 1, res.Skipped)
	var countErr *record.JointCountError
	require.True(t, errors.As(res.Diagnostics[0].Err, &countErr))
	require.Equal(t, 2, countErr.Line)

	joints, err := activeRoutine(t, p).Statements()[0].Positions()[0].Joints()
	require.NoError(t, err)
	require.Equal(t, []float64{10, 20, 30, 40, 50, 60}, joints)
}

func TestImport_JointAnglesNeedJointCount(t *testing.T) {
	c, _ := newProgramConverter(t, 0)

	opts := DefaultImportOptions()
	opts.Format = record.JointAngles
	_, err := c.Import(context.Background(), strings.NewReader("1,2,3\n"), opts)
	require.ErrorIs(t, err, program.ErrNoJointCount)
}

func TestImport_JointAnglesViaForwardKinematics(t *testing.T) {
	p := program.New("cell")
	_, err := p.AddRoutine("main")
	require.NoError(t, err)
	require.NoError(t, p.SetActiveRoutine("main"))
	robot := &fkRobot{StaticRobot: program.NewStaticRobot("fk", 6)}
	c := NewConverter(program.NewHost(p, robot), logging.NewTestLogger(t))

	opts := DefaultImportOptions()
	opts.Format = record.JointAngles
	res := importString(t, c, "100,200,300,0,0,0\n", opts)
	require.Equal(t, 1, res.Created)
	require.Equal(t, 1, robot.calls)

	pos := activeRoutine(t, p).Statements()[0].Positions()[0]
	pose, err := pos.Pose()
	require.NoError(t, err)
	require.InDelta(t, 0, pose.Point().Sub(r3.Vector{X: 100, Y: 200, Z: 300}).Norm(), 1e-9)

	joints, err := pos.Joints()
	require.NoError(t, err)
	require.Equal(t, []float64{100, 200, 300, 0, 0, 0}, joints)
}

func TestImport_JointStrategyFallback(t *testing.T) {
	ctx := context.Background()
	opts := DefaultImportOptions()
	opts.Format = record.JointAngles

	t.Run("per joint assignment after set joints fails", func(t *testing.T) {
		var made []*jointPosition
		routine := &fakeRoutine{newPosition: func() host.Position {
			pos := &jointPosition{setJointsErr: errors.New("rejected")}
			made = append(made, pos)
			return pos
		}}
		h := &fakeHost{robot: program.NewStaticRobot("r", 3), routine: routine}
		c := NewConverter(h, logging.NewTestLogger(t))

		res, err := c.Import(ctx, strings.NewReader("1,2,3\n"), opts)
		require.NoError(t, err)
		require.Equal(t, 1, res.Created)
		require.Len(t, made, 1)
		require.Equal(t, []float64{1, 2, 3}, made[0].joints)
	})

	t.Run("last error kept when every strategy fails", func(t *testing.T) {
		lastErr := errors.New("axis locked")
		routine := &fakeRoutine{newPosition: func() host.Position {
			return &jointPosition{setJointsErr: errors.New("rejected"), setValueErr: lastErr}
		}}
		h := &fakeHost{robot: program.NewStaticRobot("r", 3), routine: routine}
		c := NewConverter(h, logging.NewTestLogger(t))

		res, err := c.Import(ctx, strings.NewReader("1,2,3\n"), opts)
		require.NoError(t, err)
		require.Zero(t, res.Created)
		require.Equal(t, 1, res.Failed)
		require.ErrorIs(t, res.Err, ErrNoPointsImported)
		require.Len(t, res.Diagnostics, 1)
		require.Equal(t, 1, res.Diagnostics[0].Line)
		require.ErrorIs(t, res.Diagnostics[0].Err, ErrJointAssignment)
		require.ErrorIs(t, res.Diagnostics[0].Err, lastErr)
	})

	t.Run("custom strategy order", func(t *testing.T) {
		var used []string
		strategy := func(name string) JointStrategy {
			return JointStrategy{Name: name, Apply: func(context.Context, host.Robot, host.Position, []float64) error {
				used = append(used, name)
				if name == "first" {
					return ErrStrategyUnavailable
				}
				return nil
			}}
		}
		routine := &fakeRoutine{newPosition: func() host.Position { return &jointPosition{} }}
		h := &fakeHost{robot: program.NewStaticRobot("r", 3), routine: routine}
		c := NewConverter(h, logging.NewTestLogger(t), strategy("first"), strategy("second"), strategy("third"))

		res, err := c.Import(ctx, strings.NewReader("1,2,3\n"), opts)
		require.NoError(t, err)
		require.Equal(t, 1, res.Created)
		require.Equal(t, []string{"first", "second"}, used)
	})
}

func TestImport_FailedStatementIsRemoved(t *testing.T) {
	c, p := newProgramConverter(t, 3)

	failing := JointStrategy{Name: "broken", Apply: func(context.Context, host.Robot, host.Position, []float64) error {
		return errors.New("broken")
	}}
	c = NewConverter(c.host, logging.NewTestLogger(t), failing)

	opts := DefaultImportOptions()
	opts.Format = record.JointAngles
	res := importString(t, c, "1,2,3\n", opts)
	require.Equal(t, 1, res.Failed)
	require.Empty(t, activeRoutine(t, p).Statements())
}

func TestImport_Selection(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewTestLogger(t)

	p := program.New("cell")
	c := NewConverter(program.NewHost(p, nil), logger)
	_, err := c.Import(ctx, strings.NewReader("1,2,3\n"), DefaultImportOptions())
	require.ErrorIs(t, err, ErrNoActiveRobot)
	require.True(t, IsSelectionError(err))

	p.Robot = &program.RobotInfo{Name: "kr6", JointCount: 6}
	_, err = c.Import(ctx, strings.NewReader("1,2,3\n"), DefaultImportOptions())
	require.ErrorIs(t, err, ErrNoActiveRoutine)
	require.True(t, IsSelectionError(err))
}

func TestImport_NamedRoutine(t *testing.T) {
	ctx := context.Background()
	c, p := newProgramConverter(t, 6)

	opts := DefaultImportOptions()
	opts.RoutineName = "cal_points_csv"
	res := importString(t, c, "1,2,3\n4,5,6\n", opts)
	require.Equal(t, "cal_points_csv", res.Routine)
	require.Equal(t, 2, res.Created)
	require.Empty(t, activeRoutine(t, p).Statements(), "the active routine is left alone")

	_, err := c.Import(ctx, strings.NewReader("7,8,9\n"), opts)
	require.ErrorIs(t, err, ErrRoutineExists)

	opts.Overwrite = true
	res = importString(t, c, "7,8,9\n", opts)
	require.Equal(t, 1, res.Created)
	r, ok := p.FindRoutine("cal_points_csv")
	require.True(t, ok)
	require.Equal(t, 1, r.Len())

	h := &fakeHost{robot: program.NewStaticRobot("r", 6), routine: &fakeRoutine{}}
	_, err = NewConverter(h, logging.NewTestLogger(t)).Import(ctx, strings.NewReader("1,2,3\n"), opts)
	require.ErrorIs(t, err, ErrRoutinesUnsupported)
}

func TestRoutineNameFromPath(t *testing.T) {
	require.Equal(t, "cal_points_csv", RoutineNameFromPath(filepath.Join("data", "cal.points.csv")))
	require.Equal(t, "plain", RoutineNameFromPath("plain"))
}

func TestImportFile(t *testing.T) {
	ctx := context.Background()
	c, _ := newProgramConverter(t, 6)

	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("1;2;3\n"), 0o644))
	res, err := c.ImportFile(ctx, path, DefaultImportOptions())
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)

	missing := filepath.Join(t.TempDir(), "missing.csv")
	_, err = c.ImportFile(ctx, missing, DefaultImportOptions())
	var fileErr *FileAccessError
	require.True(t, errors.As(err, &fileErr))
	require.Equal(t, "open", fileErr.Op)
	require.Equal(t, missing, fileErr.Path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestImport_CancelledKeepsSkippedLines(t *testing.T) {
	c, p := newProgramConverter(t, 6)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := c.Import(ctx, strings.NewReader("1,2,3\nbad\n4,5\n"), DefaultImportOptions())
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	require.Zero(t, res.Created)
	require.Equal(t, 2, res.Skipped)
	require.Len(t, res.Diagnostics, 2)
	require.Equal(t, 2, res.Diagnostics[0].Line)
	require.Equal(t, 3, res.Diagnostics[1].Line)
	require.Empty(t, activeRoutine(t, p).Statements())
}
