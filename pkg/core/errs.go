package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrInvalidTimestamp      = errors.New("invalid timestamp")
	ErrMissingField          = errors.New("missing field")
	ErrEmptySeriesSet        = errors.New("empty series set")
	ErrUnorderedSeries       = errors.New("series timestamps must be strictly ascending")
	ErrDataSourceUnavailable = errors.New("data source unavailable")
	ErrUnknownTicker         = errors.New("unknown ticker")
	ErrInvalidRange          = errors.New("start date must be before end date")
	ErrNotFinite             = errors.New("value is not a finite number")
)

// SourceError reports a failed call to an upstream data provider.
// It matches ErrDataSourceUnavailable with errors.Is.
type SourceError struct {
	Source string // provider name, e.g. "yahoo"
	Ref    string // symbol or series id
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Ref, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) Is(target error) bool {
	return target == ErrDataSourceUnavailable
}

// Unavailable wraps err as a SourceError, leaving nil and existing SourceErrors untouched.
func Unavailable(source, ref string, err error) error {
	if err == nil {
		return nil
	}

	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return err
	}

	return &SourceError{Source: source, Ref: ref, Err: err}
}

// ParseFinite parses s as a float64 and rejects NaN and infinities.
func ParseFinite(s string) (float64, error) {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !Finite(x) {
		return 0, fmt.Errorf("%w: %q", ErrNotFinite, s)
	}
	return x, nil
}

// Finite reports whether x is neither NaN nor an infinity.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
