package indicator

import (
	"github.com/raykavin/fluid/pkg/chart"
	"github.com/raykavin/fluid/pkg/core"
)

// Volume draws traded volume as bars coloured by the direction of the session.
func Volume(upColor, downColor string) chart.Indicator {
	return &volume{up: upColor, down: downColor}
}

type volume struct {
	up, down string
}

func (v volume) Warmup() int { return 0 }

func (v volume) Name() string { return "Volume" }

func (v volume) Overlay() bool { return false }

func (v volume) Traces(bars core.Bars) []chart.Trace {
	colors := make([]string, len(bars))
	for i, bar := range bars {
		colors[i] = v.up
		if bar.Close < bar.Open {
			colors[i] = v.down
		}
	}

	return []chart.Trace{{
		Type:       chart.TypeBar,
		Name:       v.Name(),
		X:          bars.Times(),
		Y:          bars.Volumes(),
		ShowLegend: false,
		Marker:     &chart.Marker{Colors: colors},
	}}
}
