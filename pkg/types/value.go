package types

import (
	"fmt"
	"strconv"
)

// PropertyValue is a concrete value held by an item for one property
// definition. A nil payload means the value is empty (set but blank), which
// is how back-filled and lazily materialized properties start out.
type PropertyValue struct {
	Definition *PropertyDefinition
	Value      any // string, int64, or float64 per Definition.ValueType; nil when empty
}

// NewValue creates a value holder for def, coercing v to the definition's
// value type when possible. Uncoercible values are stored as given; the
// original data entry path accepted arbitrary input and the permissive
// snapshot loader depends on the same tolerance.
func NewValue(def *PropertyDefinition, v any) *PropertyValue {
	pv := &PropertyValue{Definition: def}
	if coerced, err := Coerce(def.ValueType, v); err == nil {
		pv.Value = coerced
	} else {
		pv.Value = v
	}
	return pv
}

// EmptyValue creates a blank value holder for def.
func EmptyValue(def *PropertyDefinition) *PropertyValue {
	return &PropertyValue{Definition: def}
}

// Set replaces the payload, strictly coercing v to the definition's value
// type. Returns ErrTypeMismatch when v cannot represent that type.
func (pv *PropertyValue) Set(v any) error {
	coerced, err := Coerce(pv.Definition.ValueType, v)
	if err != nil {
		return err
	}
	pv.Value = coerced
	return nil
}

// IsEmpty reports whether the value is blank.
func (pv *PropertyValue) IsEmpty() bool {
	if pv.Value == nil {
		return true
	}
	s, ok := pv.Value.(string)
	return ok && s == ""
}

// String renders the value for display, with the unit suffix when present.
// Empty values render as "".
func (pv *PropertyValue) String() string {
	if pv.IsEmpty() {
		return ""
	}
	text := fmt.Sprintf("%v", pv.Value)
	if pv.Definition.Unit != "" {
		return text + " " + pv.Definition.Unit
	}
	return text
}

// Coerce converts v to the Go representation of the given value type:
// string, int64, or float64. JSON numbers (float64) coerce to integers only
// when whole. Returns ErrTypeMismatch when no clean conversion exists and
// ErrInvalidValueType for an unrecognized type. A nil v stays nil (empty).
func Coerce(valueType string, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch valueType {
	case ValueTypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, ErrTypeMismatch
	case ValueTypeInteger:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n == float64(int64(n)) {
				return int64(n), nil
			}
			return nil, ErrTypeMismatch
		case string:
			if n == "" {
				return nil, nil
			}
			i, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, ErrTypeMismatch
			}
			return i, nil
		}
		return nil, ErrTypeMismatch
	case ValueTypeFloat:
		switch n := v.(type) {
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case float64:
			return n, nil
		case string:
			if n == "" {
				return nil, nil
			}
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return nil, ErrTypeMismatch
			}
			return f, nil
		}
		return nil, ErrTypeMismatch
	default:
		return nil, ErrInvalidValueType
	}
}
