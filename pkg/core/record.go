package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is a snapshot of scalar facts about an instrument, keyed by provider field name.
type Record map[string]any

// Field is the result of a Record lookup. The zero value is Absent.
type Field struct {
	Name    string
	Value   any
	present bool
}

// Absent is the Field returned for keys that are not in a record.
var Absent = Field{}

// Lookup returns the named field, or Absent when missing or null. It never fails.
func (r Record) Lookup(name string) Field {
	v, ok := r[name]
	if !ok || v == nil {
		return Absent
	}
	return Field{Name: name, Value: v, present: true}
}

// Absent reports whether the field was missing from the record.
func (f Field) Absent() bool { return !f.present }

// Err returns ErrMissingField for an absent field and nil otherwise.
func (f Field) Err() error {
	if !f.present {
		return ErrMissingField
	}
	return nil
}

// Float returns the field as a float64 when it holds a finite number.
func (f Field) Float() (float64, bool) {
	if !f.present {
		return 0, false
	}
	return Number(f.Value)
}

// Number converts numeric values, json.Number and numeric strings to float64.
// NaN and infinities are rejected.
func Number(v any) (float64, bool) {
	x, ok := number(v)
	return x, ok && Finite(x)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		x, err := n.Float64()
		return x, err == nil
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return x, err == nil
	default:
		return 0, false
	}
}

// Int returns the field truncated to an int64 when it holds a number.
func (f Field) Int() (int64, bool) {
	n, ok := f.Float()
	return int64(n), ok
}
