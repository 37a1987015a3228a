package pointcsv

import (
	"context"
	"fmt"

	"github.com/biotinker/pointcsv/host"
	"github.com/biotinker/pointcsv/record"
	"go.viam.com/rdk/logging"
)

// ExportPoint is one target extracted from a statement.
type ExportPoint struct {
	Statement int // 1-based program order
	Waypoint  int // 1-based, always 1 for single target statements
	Values    []float64
}

// StatementReader extracts target points from a routine's motion statements.
type StatementReader struct {
	logger logging.Logger
}

// NewStatementReader returns a StatementReader.
func NewStatementReader(logger logging.Logger) *StatementReader {
	return &StatementReader{logger: logger}
}

// Read walks the routine in program order. PTP, LIN and CUSTOM statements
// yield their first position, PATH statements (and any statement holding
// more than one position) yield every waypoint in order. Other statements
// are skipped without a diagnostic.
func (r *StatementReader) Read(ctx context.Context, routine host.Routine, format record.Format) ([]ExportPoint, *ExportResult, error) {
	if format != record.PositionOnly && format != record.FullPose && format != record.JointAngles {
		return nil, nil, fmt.Errorf("export %v: %w", format, record.ErrUnknownFormat)
	}

	res := &ExportResult{Routine: routine.Name(), Format: format}
	var points []ExportPoint

	for i, st := range routine.Statements() {
		select {
		case <-ctx.Done():
			return points, res, ctx.Err()
		default:
		}

		index := i + 1
		positions := st.Positions()
		path := st.Kind() == host.KindPath || len(positions) > 1
		if !st.Kind().Motion() && !path {
			continue
		}

		if len(positions) == 0 {
			r.fail(res, &StatementError{Index: index, Name: st.Name(), Err: ErrNoTarget})
			continue
		}
		if !path {
			positions = positions[:1]
		}

		for j, pos := range positions {
			values, err := extractValues(pos, format)
			if err != nil {
				stErr := &StatementError{Index: index, Name: st.Name(), Err: err}
				if path {
					stErr.Waypoint = j + 1
				}
				r.fail(res, stErr)
				continue
			}
			points = append(points, ExportPoint{Statement: index, Waypoint: j + 1, Values: values})
		}
	}

	res.Exported = len(points)
	return points, res, nil
}

func (r *StatementReader) fail(res *ExportResult, err *StatementError) {
	res.Failed++
	res.Diagnostics = append(res.Diagnostics, statementDiagnostic(err))
	r.logger.Warnf("Failed to extract point from %v", err)
}

func extractValues(pos host.Position, format record.Format) ([]float64, error) {
	if pos == nil {
		return nil, ErrNoTarget
	}
	if format == record.JointAngles {
		joints, err := pos.Joints()
		if err != nil {
			return nil, fmt.Errorf("joint values: %w", err)
		}
		if len(joints) == 0 {
			return nil, fmt.Errorf("joint values: %w", ErrNoTarget)
		}
		out := make([]float64, len(joints))
		copy(out, joints)
		return out, nil
	}

	sp, err := pos.Pose()
	if err != nil {
		return nil, fmt.Errorf("pose: %w", err)
	}
	if sp == nil {
		return nil, fmt.Errorf("pose: %w", ErrNoTarget)
	}
	return poseValues(PoseFromSpatial(sp), format), nil
}
