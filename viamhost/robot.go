// Package viamhost adapts a Viam arm into the robot the CSV converter
// imports joint configurations for.
package viamhost

import (
	"context"
	"errors"
	"fmt"

	"github.com/biotinker/pointcsv/host"
	"go.viam.com/rdk/components/arm"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/referenceframe"
	"go.viam.com/rdk/robot"
	"go.viam.com/rdk/spatialmath"
	"go.viam.com/rdk/utils"
)

// ErrNoJoints is returned for an arm that reports no joint positions.
var ErrNoJoints = errors.New("arm reports no joints")

// Arm is the part of arm.Arm the adapter reads.
type Arm interface {
	JointPositions(ctx context.Context, extra map[string]interface{}) ([]referenceframe.Input, error)
}

// Frame maps joint inputs (radians) onto the arm's end effector pose.
type Frame interface {
	Transform(inputs []referenceframe.Input) (spatialmath.Pose, error)
}

type kinematicsProvider interface {
	Kinematics(ctx context.Context) (referenceframe.Model, error)
}

// Robot is a Viam arm seen as the active robot. All joints are treated as
// revolute: arm inputs are radians, converter values are degrees.
type Robot struct {
	name string
	arm  Arm
}

// NewRobot returns a Robot for a.
func NewRobot(name string, a Arm) *Robot {
	return &Robot{name: name, arm: a}
}

// Name implements host.Robot.
func (r *Robot) Name() string {
	return r.name
}

// JointCount implements host.Robot by reading the arm's current joints.
func (r *Robot) JointCount(ctx context.Context) (int, error) {
	joints, err := r.CurrentJoints(ctx)
	if err != nil {
		return 0, err
	}
	return len(joints), nil
}

// CurrentJoints returns the arm's joint positions in degrees.
func (r *Robot) CurrentJoints(ctx context.Context) ([]float64, error) {
	inputs, err := r.arm.JointPositions(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("joint positions of %s: %w", r.name, err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%s: %w", r.name, ErrNoJoints)
	}
	return InputsToDegrees(inputs), nil
}

// KinematicRobot is a Robot whose kinematic model is known, so imported
// joint configurations also get a Cartesian pose.
type KinematicRobot struct {
	*Robot
	frame Frame
}

// NewKinematicRobot returns a KinematicRobot for a and its frame.
func NewKinematicRobot(name string, a Arm, frame Frame) *KinematicRobot {
	return &KinematicRobot{Robot: NewRobot(name, a), frame: frame}
}

// ForwardKinematics implements host.ForwardKinematics.
func (r *KinematicRobot) ForwardKinematics(_ context.Context, jointsDeg []float64) (spatialmath.Pose, error) {
	pose, err := r.frame.Transform(DegreesToInputs(jointsDeg))
	if err != nil {
		return nil, fmt.Errorf("transform %d joints of %s: %w", len(jointsDeg), r.name, err)
	}
	return pose, nil
}

// FromMachine looks the named arm up on a connected machine. The result
// offers forward kinematics when the arm exposes its model.
func FromMachine(ctx context.Context, machine robot.Robot, armName string, logger logging.Logger) (host.Robot, error) {
	a, err := arm.FromProvider(machine, armName)
	if err != nil {
		return nil, fmt.Errorf("arm %q: %w", armName, err)
	}

	if k, ok := a.(kinematicsProvider); ok {
		model, err := k.Kinematics(ctx)
		if err == nil && model != nil {
			return NewKinematicRobot(armName, a, model), nil
		}
		logger.Debugf("Arm %s has no kinematic model, joint imports keep joints only: %v", armName, err)
	}
	return NewRobot(armName, a), nil
}

// InputsToDegrees converts revolute joint inputs to degrees.
func InputsToDegrees(inputs []referenceframe.Input) []float64 {
	out := make([]float64, len(inputs))
	for i, in := range inputs {
		out[i] = utils.RadToDeg(float64(in))
	}
	return out
}

// DegreesToInputs is the inverse of InputsToDegrees.
func DegreesToInputs(jointsDeg []float64) []referenceframe.Input {
	out := make([]referenceframe.Input, len(jointsDeg))
	for i, v := range jointsDeg {
		out[i] = referenceframe.Input(utils.DegToRad(v))
	}
	return out
}
