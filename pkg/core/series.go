package core

import (
	"golang.org/x/exp/constraints"
)

// Series is a plain ordered slice of values, newest last.
type Series[T constraints.Ordered] []T

// Values returns the underlying slice of values
func (s Series[T]) Values() []T {
	return s
}

// Length returns the number of values in the series
func (s Series[T]) Length() int {
	return len(s)
}

// Last returns the value at a position from the end, 0 being the newest.
func (s Series[T]) Last(position int) T {
	return s[len(s)-1-position]
}

// LastValues returns the newest size values, or the whole series when shorter.
func (s Series[T]) LastValues(size int) Series[T] {
	if l := len(s); l > size {
		return s[l-size:]
	}
	return s
}

// Min returns the smallest value; ok is false on an empty series.
func (s Series[T]) Min() (lowest T, ok bool) {
	for i, v := range s {
		if i == 0 || v < lowest {
			lowest = v
		}
	}
	return lowest, len(s) > 0
}

// Max returns the largest value; ok is false on an empty series.
func (s Series[T]) Max() (highest T, ok bool) {
	for i, v := range s {
		if i == 0 || v > highest {
			highest = v
		}
	}
	return highest, len(s) > 0
}
