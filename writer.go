package pointcsv

import (
	"context"
	"errors"
	"fmt"

	"github.com/biotinker/pointcsv/host"
	"go.viam.com/rdk/logging"
)

// JointStrategy is one way of putting a joint configuration on a position.
// Apply returns ErrStrategyUnavailable when the host lacks the capability.
type JointStrategy struct {
	Name  string
	Apply func(ctx context.Context, robot host.Robot, pos host.Position, jointsDeg []float64) error
}

// DefaultJointStrategies returns the assignment order used on import:
// forward kinematics, then whole-configuration assignment, then per-joint
// assignment.
func DefaultJointStrategies() []JointStrategy {
	return []JointStrategy{
		{Name: "forward kinematics", Apply: applyForwardKinematics},
		{Name: "set joints", Apply: applySetJoints},
		{Name: "set joint values", Apply: applyJointValues},
	}
}

func applyForwardKinematics(ctx context.Context, robot host.Robot, pos host.Position, jointsDeg []float64) error {
	fk, ok := robot.(host.ForwardKinematics)
	if !ok {
		return ErrStrategyUnavailable
	}
	pose, err := fk.ForwardKinematics(ctx, jointsDeg)
	if err != nil {
		return fmt.Errorf("forward kinematics: %w", err)
	}
	if err := pos.SetPose(pose); err != nil {
		return fmt.Errorf("set pose: %w", err)
	}
	// Keep the configuration as well so joint exports round trip.
	if setter, ok := pos.(host.JointsSetter); ok {
		if err := setter.SetJoints(jointsDeg); err != nil {
			return fmt.Errorf("set joints after forward kinematics: %w", err)
		}
	}
	return nil
}

func applySetJoints(_ context.Context, _ host.Robot, pos host.Position, jointsDeg []float64) error {
	setter, ok := pos.(host.JointsSetter)
	if !ok {
		return ErrStrategyUnavailable
	}
	return setter.SetJoints(jointsDeg)
}

func applyJointValues(_ context.Context, _ host.Robot, pos host.Position, jointsDeg []float64) error {
	setter, ok := pos.(host.JointValueSetter)
	if !ok {
		return ErrStrategyUnavailable
	}
	for i, v := range jointsDeg {
		if err := setter.SetJointValue(i, v); err != nil {
			return fmt.Errorf("joint %d: %w", i+1, err)
		}
	}
	return nil
}

// StatementWriter appends PTP statements to a routine, one per point.
type StatementWriter struct {
	logger     logging.Logger
	strategies []JointStrategy
}

// NewStatementWriter returns a writer using the given joint strategies, or
// DefaultJointStrategies when none are given.
func NewStatementWriter(logger logging.Logger, strategies ...JointStrategy) *StatementWriter {
	if len(strategies) == 0 {
		strategies = DefaultJointStrategies()
	}
	return &StatementWriter{logger: logger, strategies: strategies}
}

// Write appends one statement per point, in order. Per-point failures are
// recorded in the result; the returned error is only set when ctx ends.
func (w *StatementWriter) Write(ctx context.Context, robot host.Robot, routine host.Routine, points []Point) (*ImportResult, error) {
	res := &ImportResult{Routine: routine.Name()}

	for _, pt := range points {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		if err := w.writePoint(ctx, robot, routine, pt); err != nil {
			res.Failed++
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Line: pt.Line, Err: err})
			w.logger.Warnf("Line %d: %v", pt.Line, err)
			continue
		}
		res.Created++
	}

	return res, nil
}

func (w *StatementWriter) writePoint(ctx context.Context, robot host.Robot, routine host.Routine, pt Point) error {
	st, err := routine.AppendStatement(host.KindPTP)
	if err != nil {
		return fmt.Errorf("line %d: add statement: %w", pt.Line, err)
	}

	positions := st.Positions()
	if len(positions) == 0 {
		err = ErrNoTarget
	} else if pt.IsJoints() {
		err = w.assignJoints(ctx, robot, positions[0], pt.Joints.Values)
	} else {
		err = positions[0].SetPose(pt.Pose.Spatial())
	}
	if err == nil {
		return nil
	}

	if remover, ok := routine.(host.StatementRemover); ok {
		if rmErr := remover.RemoveStatement(st); rmErr != nil {
			w.logger.Warnf("Line %d: failed to remove incomplete statement %s: %v", pt.Line, st.Name(), rmErr)
		}
	}
	return fmt.Errorf("line %d: %w", pt.Line, err)
}

// assignJoints tries each strategy in order until one succeeds. The error
// of the last strategy that was actually attempted is kept.
func (w *StatementWriter) assignJoints(ctx context.Context, robot host.Robot, pos host.Position, jointsDeg []float64) error {
	var lastErr error = ErrStrategyUnavailable
	for _, s := range w.strategies {
		err := s.Apply(ctx, robot, pos, jointsDeg)
		if err == nil {
			w.logger.Debugf("Assigned %d joints via %s", len(jointsDeg), s.Name)
			return nil
		}
		if errors.Is(err, ErrStrategyUnavailable) {
			continue
		}
		w.logger.Debugf("Joint strategy %s failed: %v", s.Name, err)
		lastErr = fmt.Errorf("%s: %w", s.Name, err)
	}
	return fmt.Errorf("%w: %w", ErrJointAssignment, lastErr)
}
