package pointcsv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biotinker/pointcsv/host"
	"github.com/biotinker/pointcsv/record"
)

// ImportOptions configure one import.
type ImportOptions struct {
	// Format is the declared layout of every record.
	Format record.Format
	// Separators lists the accepted field separators.
	Separators string
	// RoutineName, when set, imports into a new routine of that name in the
	// active program instead of into the active routine.
	RoutineName string
	// Overwrite replaces an existing routine named RoutineName.
	Overwrite bool
}

// DefaultImportOptions accepts X,Y,Z or X,Y,Z,W,P,R lines separated by ',' or ';'.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		Format:     record.Coordinates,
		Separators: record.DefaultSeparators,
	}
}

// RoutineNameFromPath derives a routine name from a CSV path: the base name
// with every dot replaced by an underscore, so "cal.points.csv" becomes
// "cal_points_csv".
func RoutineNameFromPath(path string) string {
	return strings.ReplaceAll(filepath.Base(path), ".", "_")
}

// ImportFile opens path and imports it. The file is closed before returning.
func (c *Converter) ImportFile(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	res, err := c.Import(ctx, f, opts)
	var fileErr *FileAccessError
	if errors.As(err, &fileErr) && fileErr.Path == "" {
		fileErr.Path = path
	}
	return res, err
}

// Import parses CSV records from r and appends one PTP statement per valid
// record. Bad records are skipped and reported; the error is only set for
// failures that stop the whole operation.
func (c *Converter) Import(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	robot, err := c.activeRobot()
	if err != nil {
		return nil, err
	}
	active, err := c.activeRoutine()
	if err != nil {
		return nil, err
	}
	manager, err := c.checkTargetRoutine(opts)
	if err != nil {
		return nil, err
	}

	jointCount := 0
	if opts.Format == record.JointAngles {
		jointCount, err = robot.JointCount(ctx)
		if err != nil {
			return nil, fmt.Errorf("joint count of %s: %w", robot.Name(), err)
		}
	}

	points, skipped, err := c.readPoints(r, opts, jointCount)
	if err != nil {
		return nil, err
	}

	routine := active
	if opts.RoutineName != "" {
		if routine, err = replaceRoutine(manager, opts.RoutineName, opts.Overwrite); err != nil {
			return nil, err
		}
	}

	res, err := c.writer.Write(ctx, robot, routine, points)
	res.Skipped = len(skipped)
	res.Diagnostics = append(skipped, res.Diagnostics...)
	sortDiagnostics(res.Diagnostics)
	if err != nil {
		return res, err
	}
	if res.Created == 0 {
		res.Err = fmt.Errorf("%w: %d skipped, %d failed", ErrNoPointsImported, res.Skipped, res.Failed)
		c.logger.Warnf("Failed to import any valid points: %v", res.Err)
		return res, nil
	}

	c.logger.Infof("Successfully imported %d points to routine %q", res.Created, res.Routine)
	return res, nil
}

// readPoints runs the parse, classify and build steps. Rejected lines come
// back as diagnostics.
func (c *Converter) readPoints(r io.Reader, opts ImportOptions, jointCount int) ([]Point, []Diagnostic, error) {
	parser := record.NewParser(opts.Separators)
	records, lineErrs, err := parser.ReadAll(r)
	if err != nil {
		return nil, nil, &FileAccessError{Op: "read", Err: err}
	}

	var diags []Diagnostic
	for _, lineErr := range lineErrs {
		diags = append(diags, lineDiagnostic(lineErr))
	}

	points := make([]Point, 0, len(records))
	for _, rec := range records {
		format, err := record.Classify(rec, opts.Format, jointCount)
		if err == nil {
			var pt Point
			if pt, err = BuildPoint(rec, format); err == nil {
				points = append(points, pt)
				continue
			}
		}
		diags = append(diags, lineDiagnostic(err))
	}

	// Line order, not failure kind order.
	sortDiagnostics(diags)
	for _, d := range diags {
		c.logger.Warnf("Skipped %v", d.Err)
	}
	return points, diags, nil
}

func (c *Converter) checkTargetRoutine(opts ImportOptions) (host.RoutineManager, error) {
	if opts.RoutineName == "" {
		return nil, nil
	}
	manager, ok := c.host.(host.RoutineManager)
	if !ok {
		return nil, ErrRoutinesUnsupported
	}
	if _, exists := manager.FindRoutine(opts.RoutineName); exists && !opts.Overwrite {
		return nil, fmt.Errorf("%w: %q", ErrRoutineExists, opts.RoutineName)
	}
	return manager, nil
}

func replaceRoutine(manager host.RoutineManager, name string, overwrite bool) (host.Routine, error) {
	if _, exists := manager.FindRoutine(name); exists {
		if !overwrite {
			return nil, fmt.Errorf("%w: %q", ErrRoutineExists, name)
		}
		if err := manager.DeleteRoutine(name); err != nil {
			return nil, fmt.Errorf("delete routine %q: %w", name, err)
		}
	}
	routine, err := manager.AddRoutine(name)
	if err != nil {
		return nil, fmt.Errorf("add routine %q: %w", name, err)
	}
	return routine, nil
}
