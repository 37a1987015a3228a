package program

import (
	"context"

	"github.com/biotinker/pointcsv/host"
)

// StaticRobot is a robot known only by name and joint count.
type StaticRobot struct {
	name   string
	joints int
}

// NewStaticRobot returns a StaticRobot.
func NewStaticRobot(name string, joints int) *StaticRobot {
	return &StaticRobot{name: name, joints: joints}
}

// Name implements host.Robot.
func (r *StaticRobot) Name() string {
	return r.name
}

// JointCount implements host.Robot.
func (r *StaticRobot) JointCount(context.Context) (int, error) {
	if r.joints <= 0 {
		return 0, ErrNoJointCount
	}
	return r.joints, nil
}

// Host exposes a Program as a host.Host. The robot is either supplied by
// the caller, for example a live arm, or taken from the program's RobotInfo.
type Host struct {
	program *Program
	robot   host.Robot
}

// NewHost returns a Host for p. robot may be nil.
func NewHost(p *Program, robot host.Robot) *Host {
	return &Host{program: p, robot: robot}
}

// Program returns the underlying program.
func (h *Host) Program() *Program {
	return h.program
}

// ActiveRobot implements host.Host.
func (h *Host) ActiveRobot() (host.Robot, bool) {
	if h.robot != nil {
		return h.robot, true
	}
	if info := h.program.Robot; info != nil {
		return NewStaticRobot(info.Name, info.JointCount), true
	}
	return nil, false
}

// ActiveRoutine implements host.Host.
func (h *Host) ActiveRoutine() (host.Routine, bool) {
	r, ok := h.program.ActiveRoutine()
	if !ok {
		return nil, false
	}
	return r, true
}

// FindRoutine implements host.RoutineManager.
func (h *Host) FindRoutine(name string) (host.Routine, bool) {
	r, ok := h.program.FindRoutine(name)
	if !ok {
		return nil, false
	}
	return r, true
}

// AddRoutine implements host.RoutineManager.
func (h *Host) AddRoutine(name string) (host.Routine, error) {
	r, err := h.program.AddRoutine(name)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteRoutine implements host.RoutineManager.
func (h *Host) DeleteRoutine(name string) error {
	return h.program.DeleteRoutine(name)
}
