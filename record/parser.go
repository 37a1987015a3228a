package record

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// DefaultSeparators are the field separators accepted on import.
const DefaultSeparators = ",;"

const (
	byteOrderMark = "\ufeff"
	maxLineBytes  = 1 << 20
)

// Parser splits CSV text into records. A line may use any one of the
// configured separators, but only one kind.
type Parser struct {
	separators string
}

// NewParser returns a Parser for the given separator set. An empty set
// selects DefaultSeparators.
func NewParser(separators string) *Parser {
	if separators == "" {
		separators = DefaultSeparators
	}
	return &Parser{separators: separators}
}

// ParseLine splits one line. ok is false for blank lines, which are not errors.
func (p *Parser) ParseLine(lineNum int, line string) (rec RawRecord, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return RawRecord{}, false, nil
	}

	var sep rune
	for _, candidate := range p.separators {
		if !strings.ContainsRune(trimmed, candidate) {
			continue
		}
		if sep != 0 {
			return RawRecord{}, false, &Error{Line: lineNum, Err: ErrMixedSeparators}
		}
		sep = candidate
	}

	var fields []string
	if sep == 0 {
		fields = []string{trimmed}
	} else {
		fields = strings.Split(trimmed, string(sep))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	return RawRecord{Line: lineNum, Fields: fields, Separator: sep}, true, nil
}

// Numeric converts every field of raw into a float64.
func (p *Parser) Numeric(raw RawRecord) (NumericRecord, error) {
	values := make([]float64, len(raw.Fields))
	for i, field := range raw.Fields {
		if field == "" {
			return NumericRecord{}, &Error{Line: raw.Line, Err: fmt.Errorf("%w at column %d", ErrEmptyField, i+1)}
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil || isHex(field) || math.IsNaN(v) || math.IsInf(v, 0) {
			return NumericRecord{}, &Error{Line: raw.Line, Err: fmt.Errorf("%w %q at column %d", ErrNonNumeric, field, i+1)}
		}
		values[i] = v
	}
	return NumericRecord{Line: raw.Line, Values: values}, nil
}

// isHex reports a hexadecimal literal, which ParseFloat accepts but a
// decimal point file never contains.
func isHex(field string) bool {
	digits := strings.TrimLeft(field, "+-")
	return strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X")
}

// ParseNumericLine combines ParseLine and Numeric.
func (p *Parser) ParseNumericLine(lineNum int, line string) (NumericRecord, bool, error) {
	raw, ok, err := p.ParseLine(lineNum, line)
	if err != nil || !ok {
		return NumericRecord{}, ok, err
	}
	rec, err := p.Numeric(raw)
	if err != nil {
		return NumericRecord{}, false, err
	}
	return rec, true, nil
}

// ReadAll parses every line of r. Records that fail are reported in
// lineErrs and parsing continues; err is only set for read failures.
func (p *Parser) ReadAll(r io.Reader) (records []NumericRecord, lineErrs []error, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}

		rec, ok, err := p.ParseNumericLine(lineNum, line)
		if err != nil {
			lineErrs = append(lineErrs, err)
			continue
		}
		if ok {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return records, lineErrs, fmt.Errorf("read records: %w", err)
	}
	return records, lineErrs, nil
}
