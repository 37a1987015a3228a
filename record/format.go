package record

// Classify validates rec against the declared format and returns the
// concrete format of the record. jointCount is only consulted for
// JointAngles. Mismatches are errors, never coerced.
func Classify(rec NumericRecord, declared Format, jointCount int) (Format, error) {
	got := rec.Len()
	switch declared {
	case PositionOnly, FullPose:
		if want := declared.FieldCount(jointCount); got != want {
			return declared, &FieldCountError{Line: rec.Line, Format: declared, Expected: want, Got: got}
		}
		return declared, nil
	case Coordinates:
		switch got {
		case 3:
			return PositionOnly, nil
		case 6:
			return FullPose, nil
		}
		return declared, &FieldCountError{Line: rec.Line, Format: Coordinates, Got: got}
	case JointAngles:
		if jointCount <= 0 {
			return declared, &Error{Line: rec.Line, Err: ErrNoJointCount}
		}
		if got != jointCount {
			return declared, &JointCountError{Line: rec.Line, Expected: jointCount, Got: got}
		}
		return declared, nil
	default:
		return declared, &Error{Line: rec.Line, Err: ErrUnknownFormat}
	}
}
