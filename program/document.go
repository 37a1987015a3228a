package program

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/biotinker/pointcsv/host"
	"go.viam.com/rdk/spatialmath"
)

// document is the persisted form of a Program.
type document struct {
	Name          string       `json:"name"`
	Robot         *RobotInfo   `json:"robot,omitempty"`
	ActiveRoutine string       `json:"active_routine,omitempty"`
	Routines      []routineDoc `json:"routines"`
}

type routineDoc struct {
	Name       string         `json:"name"`
	Statements []statementDoc `json:"statements"`
}

type statementDoc struct {
	Name      string        `json:"name"`
	Kind      string        `json:"kind"`
	Positions []positionDoc `json:"positions,omitempty"`
}

type positionDoc struct {
	Point       *pointDoc                             `json:"point,omitempty"`
	Orientation *spatialmath.OrientationVectorDegrees `json:"orientation,omitempty"`
	Joints      []float64                             `json:"joints,omitempty"`
}

type pointDoc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Marshal encodes a program as JSON.
func Marshal(p *Program) ([]byte, error) {
	doc := document{
		Name:          p.Name,
		Robot:         p.Robot,
		ActiveRoutine: p.active,
		Routines:      make([]routineDoc, 0, len(p.routines)),
	}
	for _, r := range p.routines {
		rd := routineDoc{Name: r.name, Statements: make([]statementDoc, 0, len(r.statements))}
		for _, s := range r.statements {
			sd := statementDoc{Name: s.name, Kind: s.kind.String()}
			for _, pos := range s.positions {
				sd.Positions = append(sd.Positions, encodePosition(pos))
			}
			rd.Statements = append(rd.Statements, sd)
		}
		doc.Routines = append(doc.Routines, rd)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal decodes a program written by Marshal.
func Unmarshal(data []byte) (*Program, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse program: %w", err)
	}

	p := New(doc.Name)
	p.Robot = doc.Robot
	for _, rd := range doc.Routines {
		r, err := p.AddRoutine(rd.Name)
		if err != nil {
			return nil, fmt.Errorf("program %q: %w", doc.Name, err)
		}
		for _, sd := range rd.Statements {
			s := &Statement{name: sd.Name, kind: host.ParseKind(sd.Kind)}
			for _, pd := range sd.Positions {
				s.positions = append(s.positions, decodePosition(pd))
			}
			r.statements = append(r.statements, s)
			r.seq = max(r.seq+1, statementSeq(sd.Name))
		}
	}
	if doc.ActiveRoutine != "" {
		if err := p.SetActiveRoutine(doc.ActiveRoutine); err != nil {
			return nil, fmt.Errorf("program %q: %w", doc.Name, err)
		}
	}
	return p, nil
}

// statementSeq returns the counter suffix of a generated statement name
// such as "ptp_3", or 0.
func statementSeq(name string) int {
	i := strings.LastIndexByte(name, '_')
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(name[i+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func encodePosition(pos *Position) positionDoc {
	var pd positionDoc
	if pos.pose != nil {
		pt := pos.pose.Point()
		pd.Point = &pointDoc{X: pt.X, Y: pt.Y, Z: pt.Z}
		pd.Orientation = pos.pose.Orientation().OrientationVectorDegrees()
	}
	if len(pos.joints) > 0 {
		pd.Joints = append([]float64(nil), pos.joints...)
	}
	return pd
}

func decodePosition(pd positionDoc) *Position {
	pos := &Position{joints: pd.Joints}
	if pd.Point == nil {
		return pos
	}
	pt := r3.Vector{X: pd.Point.X, Y: pd.Point.Y, Z: pd.Point.Z}
	if pd.Orientation != nil {
		pos.pose = spatialmath.NewPose(pt, pd.Orientation)
	} else {
		pos.pose = spatialmath.NewPoseFromPoint(pt)
	}
	return pos
}
