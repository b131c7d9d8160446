package chart

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/raykavin/fluid/pkg/core"
)

// Trace types and modes understood by the browser renderer.
const (
	TypeScatter     = "scatter"
	TypeBar         = "bar"
	TypeCandlestick = "candlestick"

	ModeLines = "lines"
)

// Spec is a renderable chart: a list of traces plus layout, serialised the way
// plotly.js expects ({"data": [...], "layout": {...}}).
type Spec struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one drawn series.
type Trace struct {
	Type       string      `json:"type"`
	Mode       string      `json:"mode,omitempty"`
	Name       string      `json:"name,omitempty"`
	X          []time.Time `json:"x"`
	Y          []float64   `json:"y,omitempty"`
	Open       []float64   `json:"open,omitempty"`
	High       []float64   `json:"high,omitempty"`
	Low        []float64   `json:"low,omitempty"`
	Close      []float64   `json:"close,omitempty"`
	XAxis      string      `json:"xaxis,omitempty"`
	YAxis      string      `json:"yaxis,omitempty"`
	ShowLegend bool        `json:"showlegend"`
	Fill       string      `json:"fill,omitempty"`
	FillColor  string      `json:"fillcolor,omitempty"`
	Line       *Line       `json:"line,omitempty"`
	Marker     *Marker     `json:"marker,omitempty"`
}

type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

type Marker struct {
	Color  string   `json:"color,omitempty"`
	Colors []string `json:"-"`
}

// MarshalJSON emits per-point colours as an array when Colors is set.
func (m Marker) MarshalJSON() ([]byte, error) {
	switch {
	case len(m.Colors) > 0:
		return json.Marshal(map[string]any{"color": m.Colors})
	case m.Color != "":
		return json.Marshal(map[string]any{"color": m.Color})
	default:
		return []byte("{}"), nil
	}
}

// UnmarshalJSON accepts both a single colour and per-point colours.
func (m *Marker) UnmarshalJSON(data []byte) error {
	var raw struct {
		Color json.RawMessage `json:"color"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Color) == 0 {
		return nil
	}
	if raw.Color[0] == '[' {
		return json.Unmarshal(raw.Color, &m.Colors)
	}
	return json.Unmarshal(raw.Color, &m.Color)
}

// Axis describes one axis of the layout.
type Axis struct {
	Title       string     `json:"-"`
	Type        string     `json:"type,omitempty"`
	Domain      []float64  `json:"domain,omitempty"`
	Range       []float64  `json:"range,omitempty"`
	Anchor      string     `json:"anchor,omitempty"`
	RangeSlider *bool      `json:"-"`
	ShowGrid    *bool      `json:"showgrid,omitempty"`
	Extra       []Shortcut `json:"-"`
}

// Shortcut is a rangeselector button rendered above the time axis.
type Shortcut struct {
	Label string `json:"label"`
	Step  string `json:"step"`
	Count int    `json:"count,omitempty"`
}

func (a Axis) MarshalJSON() ([]byte, error) {
	type plain Axis
	out := map[string]any{}

	raw, err := json.Marshal(plain(a))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	if a.Title != "" {
		out["title"] = map[string]string{"text": a.Title}
	}
	if a.RangeSlider != nil {
		out["rangeslider"] = map[string]bool{"visible": *a.RangeSlider}
	}
	if len(a.Extra) > 0 {
		out["rangeselector"] = map[string]any{"buttons": a.Extra}
	}
	return json.Marshal(out)
}

// Legend positions the legend box.
type Legend struct {
	Orientation string  `json:"orientation,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// Layout holds the shared axes. YAxes[0] is "yaxis", YAxes[1] "yaxis2" and so on.
type Layout struct {
	Title      string
	XAxis      Axis
	YAxes      []Axis
	ShowLegend bool
	Legend     *Legend
	Height     int
}

func (l Layout) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"xaxis":      l.XAxis,
		"showlegend": l.ShowLegend,
	}
	if l.Title != "" {
		out["title"] = map[string]string{"text": l.Title}
	}
	if l.Legend != nil {
		out["legend"] = l.Legend
	}
	if l.Height > 0 {
		out["height"] = l.Height
	}
	for i, axis := range l.YAxes {
		out[axisKey(i)] = axis
	}
	return json.Marshal(out)
}

// axisKey returns the layout key of the i-th y axis: yaxis, yaxis2, ...
func axisKey(i int) string {
	if i == 0 {
		return "yaxis"
	}
	return fmt.Sprintf("yaxis%d", i+1)
}

// axisRef returns the trace reference of the i-th y axis: y, y2, ...
func axisRef(i int) string {
	if i == 0 {
		return "y"
	}
	return fmt.Sprintf("y%d", i+1)
}

// Labeled pairs a series with its legend label.
type Labeled struct {
	Series core.TimeSeries
	Label  string
}

// OverlaySpec is an ordered, non-empty set of labeled series sharing one value axis.
type OverlaySpec struct {
	Series    []Labeled
	AxisLabel string
}

// Overlay is a convenience constructor for OverlaySpec.
func Overlay(axisLabel string, series ...Labeled) OverlaySpec {
	return OverlaySpec{Series: series, AxisLabel: axisLabel}
}
