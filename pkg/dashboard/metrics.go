package dashboard

import (
	"github.com/raykavin/fluid/pkg/core"
	"github.com/raykavin/fluid/pkg/format"
)

// MetricDef describes how one snapshot field is displayed.
type MetricDef struct {
	Label    string
	Hint     string
	Field    string
	Template format.Value
	// Scale multiplies the raw number before display, e.g. 100 for fractions shown as percent.
	Scale float64
}

// Metric is a formatted snapshot field.
type Metric struct {
	Label     string `json:"label"`
	Hint      string `json:"hint,omitempty"`
	Field     string `json:"field"`
	Kind      string `json:"kind"`
	Value     string `json:"value"`
	Available bool   `json:"available"`
}

// DefaultMetrics lists the snapshot fields of the metrics panel in display order.
func DefaultMetrics() []MetricDef {
	return []MetricDef{
		{Label: "Today's Price (Close)", Field: "previousClose", Template: format.Amount(0, 2)},
		{Label: "Today's Volume", Field: "volume", Template: format.Count(0, "shares")},
		{Label: "Average Volume (past 10 days)", Field: "averageVolume10days", Template: format.Count(0, "shares")},
		{Label: "52wk high", Field: "fiftyTwoWeekHigh", Template: format.Amount(0, 3)},
		{Label: "52wk low", Field: "fiftyTwoWeekLow", Template: format.Amount(0, 3)},
		{Label: "Market Capitalization", Field: "marketCap", Template: format.Count(0, format.CurrencySuffix)},
		{Label: "Dividend Yield", Field: "dividendYield", Template: format.Percentage(0, 2), Scale: 100},
		{Label: "PEG Ratio", Hint: "Price per Earning divided by Growth", Field: "pegRatio", Template: format.Ratio(0, 2)},
		{Label: "Last Dividend Date", Field: "lastDividendDate", Template: format.Timestamp(nil)},
		{Label: "Shares Outstanding", Field: "sharesOutstanding", Template: format.Count(0, "shares")},
	}
}

// BuildMetrics formats every definition against record. Each field is checked
// on its own; missing or malformed values render as format.NotAvailable.
func BuildMetrics(record core.Record, defs []MetricDef) []Metric {
	metrics := make([]Metric, 0, len(defs))
	for _, def := range defs {
		m := Metric{
			Label: def.Label,
			Hint:  def.Hint,
			Field: def.Field,
			Kind:  def.Template.Kind.String(),
			Value: format.NotAvailable,
		}

		if value, ok := format.FromField(record.Lookup(def.Field), def.Template); ok {
			if def.Scale != 0 {
				value.Number *= def.Scale
			}
			if s, err := value.Format(); err == nil {
				m.Value, m.Available = s, true
			}
		}

		metrics = append(metrics, m)
	}
	return metrics
}
