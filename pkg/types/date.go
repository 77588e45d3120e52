package types

import "time"

// DateLayout is the wire format for all dates in snapshots.
const DateLayout = "2006/01/02"

// ProtectedDate is a date value that tolerates being absent or unparsable,
// such as a person with no recorded birthday. Formatting an empty value
// yields an empty string rather than failing.
type ProtectedDate struct {
	t     time.Time
	valid bool
}

// NewDate wraps a concrete time as a ProtectedDate. A zero time yields an
// empty date.
func NewDate(t time.Time) ProtectedDate {
	if t.IsZero() {
		return ProtectedDate{}
	}
	return ProtectedDate{t: t, valid: true}
}

// ParseDate parses a YYYY/MM/DD string. Any failure, including an empty
// string, yields an empty ProtectedDate; loading is never aborted by a bad
// date field.
func ParseDate(s string) ProtectedDate {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return ProtectedDate{}
	}
	return ProtectedDate{t: t, valid: true}
}

// IsZero reports whether the date is empty.
func (d ProtectedDate) IsZero() bool {
	return !d.valid
}

// Format renders the date as YYYY/MM/DD, or "" when empty.
func (d ProtectedDate) Format() string {
	if !d.valid {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Time returns the underlying time and whether it is set.
func (d ProtectedDate) Time() (time.Time, bool) {
	return d.t, d.valid
}

// Equal reports whether two dates are both empty or fall on the same day.
func (d ProtectedDate) Equal(other ProtectedDate) bool {
	if d.valid != other.valid {
		return false
	}
	if !d.valid {
		return true
	}
	return d.t.Format(DateLayout) == other.t.Format(DateLayout)
}
