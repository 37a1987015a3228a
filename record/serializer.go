package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultPrecision is the number of decimals written on export.
const DefaultPrecision = 6

// Round rounds v half away from zero at the given number of decimals.
// The value is scaled by 10^precision before rounding, so a literal such as
// 499.2820845 rounds up to 499.282085 even though its binary form is
// slightly below the midpoint.
func Round(v float64, precision int) float64 {
	return scalar.Round(v, precision)
}

// FormatValue renders v with exactly precision decimals.
func FormatValue(v float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	r := Round(v, precision)
	if r == 0 {
		// Normalize -0 so tiny negative residues print as 0.000000.
		r = 0
	}
	return strconv.FormatFloat(r, 'f', precision, 64)
}

// FormatValues renders every value with FormatValue.
func FormatValues(values []float64, precision int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = FormatValue(v, precision)
	}
	return out
}

// FormatLine renders values as one comma separated record without newline.
func FormatLine(values []float64, precision int) string {
	return strings.Join(FormatValues(values, precision), ",")
}

// Writer writes comma separated point records, one per line, using the
// platform newline convention.
type Writer struct {
	csv       *csv.Writer
	precision int
	written   int
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer, precision int) *Writer {
	cw := csv.NewWriter(w)
	cw.UseCRLF = runtime.GOOS == "windows"
	if precision < 0 {
		precision = DefaultPrecision
	}
	return &Writer{csv: cw, precision: precision}
}

// Write writes one record.
func (w *Writer) Write(values []float64) error {
	if err := w.csv.Write(FormatValues(values, w.precision)); err != nil {
		return fmt.Errorf("write record %d: %w", w.written+1, err)
	}
	w.written++
	return nil
}

// Flush flushes buffered records and reports any write error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

// Written returns the number of records written so far.
func (w *Writer) Written() int {
	return w.written
}
