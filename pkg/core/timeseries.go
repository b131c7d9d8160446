package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// Point is a single observation of a time series.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// TimeSeries is an immutable sequence of points with strictly ascending timestamps.
// The zero value is an empty series.
type TimeSeries struct {
	points []Point
}

// NewTimeSeries copies points into a TimeSeries. Points must already be sorted
// by time with no duplicated timestamps.
func NewTimeSeries(points []Point) (TimeSeries, error) {
	for i := 1; i < len(points); i++ {
		if !points[i].Time.After(points[i-1].Time) {
			return TimeSeries{}, fmt.Errorf("%w: %s after %s", ErrUnorderedSeries,
				points[i].Time.Format(time.RFC3339), points[i-1].Time.Format(time.RFC3339))
		}
	}

	owned := make([]Point, len(points))
	copy(owned, points)
	return TimeSeries{points: owned}, nil
}

// MustTimeSeries is NewTimeSeries for literals known to be ordered.
func MustTimeSeries(points ...Point) TimeSeries {
	ts, err := NewTimeSeries(points)
	if err != nil {
		panic(err)
	}
	return ts
}

func (t TimeSeries) Len() int { return len(t.points) }

func (t TimeSeries) Empty() bool { return len(t.points) == 0 }

func (t TimeSeries) At(i int) Point { return t.points[i] }

// Points returns a copy of the observations.
func (t TimeSeries) Points() []Point {
	out := make([]Point, len(t.points))
	copy(out, t.points)
	return out
}

// Times returns a fresh slice of the timestamps.
func (t TimeSeries) Times() []time.Time {
	out := make([]time.Time, len(t.points))
	for i, p := range t.points {
		out[i] = p.Time
	}
	return out
}

// Values returns a fresh slice of the observed values.
func (t TimeSeries) Values() Series[float64] {
	out := make(Series[float64], len(t.points))
	for i, p := range t.points {
		out[i] = p.Value
	}
	return out
}

// Latest returns the newest point; ok is false on an empty series.
func (t TimeSeries) Latest() (Point, bool) {
	if len(t.points) == 0 {
		return Point{}, false
	}
	return t.points[len(t.points)-1], true
}

// Between returns the points with start <= time < end. Zero bounds are open.
func (t TimeSeries) Between(start, end time.Time) TimeSeries {
	out := make([]Point, 0, len(t.points))
	for _, p := range t.points {
		if !start.IsZero() && p.Time.Before(start) {
			continue
		}
		if !end.IsZero() && !p.Time.Before(end) {
			continue
		}
		out = append(out, p)
	}
	return TimeSeries{points: out}
}

func (t TimeSeries) MarshalJSON() ([]byte, error) {
	if t.points == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.points)
}

func (t *TimeSeries) UnmarshalJSON(data []byte) error {
	var points []Point
	if err := json.Unmarshal(data, &points); err != nil {
		return err
	}

	ts, err := NewTimeSeries(points)
	if err != nil {
		return err
	}

	*t = ts
	return nil
}
