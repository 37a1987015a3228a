// Package record parses and formats the numeric point records of a CSV file.
package record

import (
	"fmt"
	"strings"
)

// Format identifies the column layout of a point record.
type Format int

const (
	// PositionOnly is X,Y,Z.
	PositionOnly Format = iota
	// FullPose is X,Y,Z,W,P,R with W,P,R in degrees.
	FullPose
	// JointAngles is J1..JN in degrees, N being the robot's joint count.
	JointAngles
	// Coordinates accepts either PositionOnly or FullPose, chosen per line
	// by field count. Only meaningful on import.
	Coordinates
)

func (f Format) String() string {
	switch f {
	case PositionOnly:
		return "position_only"
	case FullPose:
		return "full_pose"
	case JointAngles:
		return "joint_angles"
	case Coordinates:
		return "coordinates"
	default:
		return "unknown"
	}
}

// ParseFormat maps a user supplied name onto a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "position_only", "position", "xyz":
		return PositionOnly, nil
	case "full_pose", "pose", "xyzwpr":
		return FullPose, nil
	case "joint_angles", "joints":
		return JointAngles, nil
	case "coordinates", "coords":
		return Coordinates, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FieldCount returns the number of fields a record of this format carries.
// Coordinates has no single count and returns 0.
func (f Format) FieldCount(jointCount int) int {
	switch f {
	case PositionOnly:
		return 3
	case FullPose:
		return 6
	case JointAngles:
		return jointCount
	default:
		return 0
	}
}

// RawRecord is the trimmed tokens of one non-blank input line.
type RawRecord struct {
	Line      int // 1-based source line
	Fields    []string
	Separator rune // 0 when the line holds a single field
}

// NumericRecord is a RawRecord whose every field parsed as a real number.
type NumericRecord struct {
	Line   int
	Values []float64
}

// Len returns the number of values in the record.
func (r NumericRecord) Len() int {
	return len(r.Values)
}
