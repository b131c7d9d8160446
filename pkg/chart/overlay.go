package chart

import (
	"github.com/raykavin/fluid/pkg/core"
)

// RenderOverlay draws every labeled series of spec as a line on one shared
// value axis. Traces keep the caller's order, which is also the legend order.
func RenderOverlay(spec OverlaySpec) (Spec, error) {
	if len(spec.Series) == 0 {
		return Spec{}, core.ErrEmptySeriesSet
	}

	traces := make([]Trace, 0, len(spec.Series))
	for _, s := range spec.Series {
		traces = append(traces, Trace{
			Type:       TypeScatter,
			Mode:       ModeLines,
			Name:       s.Label,
			X:          s.Series.Times(),
			Y:          s.Series.Values(),
			ShowLegend: true,
		})
	}

	return Spec{
		Data: traces,
		Layout: Layout{
			XAxis:      Axis{Type: "date"},
			YAxes:      []Axis{{Title: spec.AxisLabel}},
			ShowLegend: true,
		},
	}, nil
}
