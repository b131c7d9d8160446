package chart

import (
	"time"

	"github.com/raykavin/fluid/pkg/core"
)

// Indicator is a study computed from price bars and drawn with the candles.
// Overlay indicators share the price axis; the others get their own panel.
// Warmup is the number of leading bars the study needs before its first value.
type Indicator interface {
	Name() string
	Overlay() bool
	Warmup() int
	Traces(bars core.Bars) []Trace
}

const (
	priceHeight = 700
	// share of the plot height kept by the price panel when studies are stacked below it
	pricePanelShare = 0.6
	panelGap        = 0.03
)

var rangeButtons = []Shortcut{
	{Label: "1m", Step: "month", Count: 1},
	{Label: "6m", Step: "month", Count: 6},
	{Label: "YTD", Step: "year"},
	{Label: "1y", Step: "year", Count: 1},
	{Label: "all", Step: "all"},
}

// PriceFigure renders a candlestick chart for bars with the given studies.
func PriceFigure(name string, bars core.Bars, indicators ...Indicator) (Spec, error) {
	if len(bars) == 0 {
		return Spec{}, core.ErrEmptySeriesSet
	}

	candles := Trace{
		Type:       TypeCandlestick,
		Name:       name,
		X:          bars.Times(),
		Open:       bars.Opens(),
		High:       bars.Highs(),
		Low:        bars.Lows(),
		Close:      bars.Closes(),
		YAxis:      axisRef(0),
		ShowLegend: true,
	}

	var overlays, panels []Indicator
	for _, ind := range indicators {
		if len(bars) <= ind.Warmup() {
			continue
		}
		if ind.Overlay() {
			overlays = append(overlays, ind)
		} else {
			panels = append(panels, ind)
		}
	}

	traces := []Trace{candles}
	for _, ind := range overlays {
		for _, tr := range ind.Traces(bars) {
			tr.YAxis = axisRef(0)
			traces = append(traces, tr)
		}
	}

	axes := stackAxes(name, panels)
	for i, ind := range panels {
		for _, tr := range ind.Traces(bars) {
			tr.YAxis = axisRef(i + 1)
			traces = append(traces, tr)
		}
	}

	noSlider := false
	return Spec{
		Data: traces,
		Layout: Layout{
			XAxis: Axis{
				Type:        "date",
				RangeSlider: &noSlider,
				Extra:       rangeButtons,
			},
			YAxes:      axes,
			ShowLegend: true,
			Legend:     &Legend{Orientation: "h", X: 0, Y: 1.08},
			Height:     priceHeight,
		},
	}, nil
}

// stackAxes splits the vertical space between the price panel and one panel per study.
func stackAxes(name string, panels []Indicator) []Axis {
	if len(panels) == 0 {
		return []Axis{{Title: name, Domain: []float64{0, 1}}}
	}

	studyShare := (1 - pricePanelShare) / float64(len(panels))
	axes := []Axis{{Title: name, Domain: []float64{1 - pricePanelShare + panelGap, 1}}}

	top := 1 - pricePanelShare
	for i, ind := range panels {
		bottom := top - studyShare
		if i == len(panels)-1 {
			bottom = 0
		}
		axes = append(axes, Axis{
			Title:  ind.Name(),
			Domain: []float64{bottom, top - panelGap},
			Anchor: "x",
		})
		top = bottom
	}

	return axes
}

// LineTrace builds a line trace from aligned times and values.
func LineTrace(name, color string, times []time.Time, values []float64) Trace {
	return Trace{
		Type:       TypeScatter,
		Mode:       ModeLines,
		Name:       name,
		X:          times,
		Y:          values,
		ShowLegend: true,
		Line:       &Line{Color: color, Width: 1.2},
	}
}
