package core

import (
	"strconv"
	"time"
)

// Bar is one daily OHLCV row of a price history.
type Bar struct {
	Time     time.Time `json:"time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close"`
	Volume   float64   `json:"volume"`
}

// ToSlice converts a bar to CSV cells with the given decimal precision.
func (b Bar) ToSlice(precision int) []string {
	return []string{
		b.Time.UTC().Format("2006-01-02"),
		strconv.FormatFloat(b.Open, 'f', precision, 64),
		strconv.FormatFloat(b.High, 'f', precision, 64),
		strconv.FormatFloat(b.Low, 'f', precision, 64),
		strconv.FormatFloat(b.Close, 'f', precision, 64),
		strconv.FormatFloat(b.AdjClose, 'f', precision, 64),
		strconv.FormatFloat(b.Volume, 'f', 0, 64),
	}
}

// BarHeader names the columns produced by Bar.ToSlice.
var BarHeader = []string{"date", "open", "high", "low", "close", "adj_close", "volume"}

// Bars is a price history ordered by time ascending.
type Bars []Bar

func (b Bars) Times() []time.Time {
	out := make([]time.Time, len(b))
	for i, bar := range b {
		out[i] = bar.Time
	}
	return out
}

func (b Bars) column(pick func(Bar) float64) Series[float64] {
	out := make(Series[float64], len(b))
	for i, bar := range b {
		out[i] = pick(bar)
	}
	return out
}

func (b Bars) Opens() Series[float64]   { return b.column(func(x Bar) float64 { return x.Open }) }
func (b Bars) Highs() Series[float64]   { return b.column(func(x Bar) float64 { return x.High }) }
func (b Bars) Lows() Series[float64]    { return b.column(func(x Bar) float64 { return x.Low }) }
func (b Bars) Closes() Series[float64]  { return b.column(func(x Bar) float64 { return x.Close }) }
func (b Bars) Volumes() Series[float64] { return b.column(func(x Bar) float64 { return x.Volume }) }

// CloseSeries converts the closing prices into a TimeSeries.
func (b Bars) CloseSeries() (TimeSeries, error) {
	points := make([]Point, len(b))
	for i, bar := range b {
		points[i] = Point{Time: bar.Time, Value: bar.Close}
	}
	return NewTimeSeries(points)
}

// Returns computes simple close-to-close returns.
func (b Bars) Returns() Series[float64] {
	if len(b) < 2 {
		return Series[float64]{}
	}

	out := make(Series[float64], 0, len(b)-1)
	for i := 1; i < len(b); i++ {
		if b[i-1].Close == 0 {
			continue
		}
		out = append(out, b[i].Close/b[i-1].Close-1)
	}
	return out
}
