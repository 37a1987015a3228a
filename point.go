package pointcsv

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/biotinker/pointcsv/record"
	"go.viam.com/rdk/spatialmath"
)

// Pose is a Cartesian target with an orientation in degrees.
type Pose struct {
	Position    r3.Vector
	Orientation WPR

	// HasOrientation is false when the source record carried no W,P,R.
	// Orientation is then the zero rotation, which is a default and not
	// a value read from the input.
	HasOrientation bool
}

// Spatial converts the pose for the host. Angles stay in degrees until here.
func (p Pose) Spatial() spatialmath.Pose {
	return spatialmath.NewPose(p.Position, p.Orientation.Orientation())
}

// PoseFromSpatial reads a host pose back into degrees.
func PoseFromSpatial(sp spatialmath.Pose) Pose {
	return Pose{
		Position:       sp.Point(),
		Orientation:    WPRFromOrientation(sp.Orientation()),
		HasOrientation: true,
	}
}

// JointConfiguration holds one value per robot axis, in degrees.
type JointConfiguration struct {
	Values []float64
}

// Point is one validated import record ready to become a statement.
type Point struct {
	Line   int
	Format record.Format
	Pose   Pose
	Joints JointConfiguration
}

// IsJoints reports whether the point targets a joint configuration.
func (p Point) IsJoints() bool {
	return p.Format == record.JointAngles
}

// BuildPoint converts a classified record. format must be PositionOnly,
// FullPose or JointAngles and rec must already have the matching length.
func BuildPoint(rec record.NumericRecord, format record.Format) (Point, error) {
	v := rec.Values
	pt := Point{Line: rec.Line, Format: format}

	switch format {
	case record.PositionOnly:
		if len(v) != 3 {
			return Point{}, &record.FieldCountError{Line: rec.Line, Format: format, Expected: 3, Got: len(v)}
		}
		pt.Pose = Pose{Position: r3.Vector{X: v[0], Y: v[1], Z: v[2]}}
	case record.FullPose:
		if len(v) != 6 {
			return Point{}, &record.FieldCountError{Line: rec.Line, Format: format, Expected: 6, Got: len(v)}
		}
		pt.Pose = Pose{
			Position:       r3.Vector{X: v[0], Y: v[1], Z: v[2]},
			Orientation:    WPR{W: v[3], P: v[4], R: v[5]},
			HasOrientation: true,
		}
	case record.JointAngles:
		joints := make([]float64, len(v))
		copy(joints, v)
		pt.Joints = JointConfiguration{Values: joints}
	default:
		return Point{}, fmt.Errorf("build point at line %d: %w: %v", rec.Line, record.ErrUnknownFormat, format)
	}

	return pt, nil
}

// poseValues lays out a pose for export.
func poseValues(p Pose, format record.Format) []float64 {
	pos := p.Position
	if format == record.PositionOnly {
		return []float64{pos.X, pos.Y, pos.Z}
	}
	o := p.Orientation
	return []float64{pos.X, pos.Y, pos.Z, o.W, o.P, o.R}
}
