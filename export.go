package pointcsv

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/biotinker/pointcsv/record"
)

// ExportOptions configure one export.
type ExportOptions struct {
	// Format is PositionOnly, FullPose or JointAngles.
	Format record.Format
	// Precision is the number of decimals per field. Zero selects
	// record.DefaultPrecision.
	Precision int
}

// DefaultExportOptions writes X,Y,Z,W,P,R with six decimals.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:    record.FullPose,
		Precision: record.DefaultPrecision,
	}
}

// Export writes the target points of the active routine to w.
func (c *Converter) Export(ctx context.Context, w io.Writer, opts ExportOptions) (*ExportResult, error) {
	points, res, err := c.extract(ctx, opts)
	if err != nil {
		return res, err
	}
	if err := writePoints(w, points, opts); err != nil {
		return res, err
	}
	return res, nil
}

// ExportFile writes the target points of the active routine to path. The
// file is only created when there is at least one point to write.
func (c *Converter) ExportFile(ctx context.Context, path string, opts ExportOptions) (res *ExportResult, err error) {
	points, res, err := c.extract(ctx, opts)
	if err != nil || len(points) == 0 {
		return res, err
	}

	f, err := os.Create(path)
	if err != nil {
		return res, &FileAccessError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &FileAccessError{Op: "close", Path: path, Err: closeErr}
		}
	}()

	if err := writePoints(f, points, opts); err != nil {
		return res, &FileAccessError{Op: "write", Path: path, Err: err}
	}
	c.logger.Infof("Successfully exported %d points to %s", res.Exported, path)
	return res, nil
}

func (c *Converter) extract(ctx context.Context, opts ExportOptions) ([]ExportPoint, *ExportResult, error) {
	routine, err := c.activeRoutine()
	if err != nil {
		return nil, nil, err
	}

	points, res, err := c.reader.Read(ctx, routine, opts.Format)
	if err != nil {
		return nil, res, err
	}
	if len(points) == 0 {
		res.Err = fmt.Errorf("%w in routine %q (%d failed)", ErrNoPointsExported, res.Routine, res.Failed)
		c.logger.Warn(res.Err.Error())
	}
	return points, res, nil
}

func writePoints(w io.Writer, points []ExportPoint, opts ExportOptions) error {
	precision := opts.Precision
	if precision <= 0 {
		precision = record.DefaultPrecision
	}
	out := record.NewWriter(w, precision)
	for _, pt := range points {
		if err := out.Write(pt.Values); err != nil {
			return err
		}
	}
	return out.Flush()
}
