package dashboard

import (
	"errors"
	"fmt"
)

const (
	GroupEconomic = "Economic Indicators"
	GroupRates    = "Interest Rates"
	GroupIndices  = "Stock Market Indices"
)

// SeriesRef names one economic series and its legend label.
type SeriesRef struct {
	ID    string `mapstructure:"id" json:"id" yaml:"id"`
	Label string `mapstructure:"label" json:"label" yaml:"label"`
}

// Section is one chart of the Economic Indicators tab. Its series share one axis
// and are drawn in the listed order.
type Section struct {
	Group     string      `mapstructure:"group" json:"group" yaml:"group"`
	Title     string      `mapstructure:"title" json:"title" yaml:"title"`
	Note      string      `mapstructure:"note" json:"note,omitempty" yaml:"note,omitempty"`
	AxisLabel string      `mapstructure:"axis_label" json:"axis_label" yaml:"axis_label"`
	Series    []SeriesRef `mapstructure:"series" json:"series" yaml:"series"`
}

// Validate rejects sections that cannot be drawn.
func (s Section) Validate() error {
	if s.Title == "" {
		return errors.New("section without title")
	}
	if len(s.Series) == 0 {
		return fmt.Errorf("section %q has no series", s.Title)
	}
	for _, ref := range s.Series {
		if ref.ID == "" || ref.Label == "" {
			return fmt.Errorf("section %q: series needs both id and label", s.Title)
		}
	}
	return nil
}

// DefaultCatalog is the FRED catalog of the Economic Indicators tab.
func DefaultCatalog() []Section {
	us := func(id string) []SeriesRef { return []SeriesRef{{ID: id, Label: "U.S."}} }

	return []Section{
		{
			Group: GroupEconomic, Title: "Gross Domestic Product in the U.S. (GDP)",
			Note: "Market value of the goods and services produced by labor and property " +
				"located in the United States. Source: U.S. Bureau of Economic Analysis, via FRED.",
			AxisLabel: "GDP (billions USD)", Series: us("GDP"),
		},
		{
			Group: GroupEconomic, Title: "Gross Domestic Product in Canada (GDP)",
			AxisLabel: "GDP (CAD)", Series: []SeriesRef{{ID: "NGDPRSAXDCCAQ", Label: "CAN"}},
		},
		{
			Group: GroupEconomic, Title: "Inflation", AxisLabel: "Inflation (%)",
			Series: []SeriesRef{{ID: "FPCPITOTLZGUSA", Label: "U.S."}, {ID: "FPCPITOTLZGCAN", Label: "CAN"}},
		},
		{
			Group: GroupEconomic, Title: "Consumer Price Index (CPI)", AxisLabel: "CPI",
			Series: []SeriesRef{{ID: "CPIAUCNS", Label: "U.S."}, {ID: "CANCPALTT01CTGYM", Label: "CAN"}},
		},
		{
			Group: GroupEconomic, Title: "Unemployment Rates", AxisLabel: "Unemployment (%)",
			Series: []SeriesRef{{ID: "UNRATE", Label: "U.S."}, {ID: "LRHUTTTTCAM156S", Label: "CAN"}},
		},
		{
			Group: GroupEconomic, Title: "Housing Prices",
			Note:      "Estimated using sales prices and appraisal data.",
			AxisLabel: "Housing Prices (USD)", Series: us("USSTHPI"),
		},
		{
			Group: GroupEconomic, Title: "Business Inventory",
			AxisLabel: "Business Inventory ($)", Series: us("BUSINV"),
		},
		{
			Group: GroupEconomic, Title: "Real Median Household Income",
			AxisLabel: "Real Median Household Income (USD)", Series: us("MEHOINUSA672N"),
		},
		{
			Group: GroupEconomic, Title: "Lead Economic Indicator (LEI)",
			Note: "Predicts the six-month growth rate of the coincident index. Source: Federal Reserve " +
				"Bank of Philadelphia, Leading Index for the United States [USSLIND], via FRED.",
			AxisLabel: "LEI", Series: us("USSLIND"),
		},
		{
			Group: GroupRates,
			Title: "U.S. Federal Funds Rate, Bank of Canada Key Interest Rate and Mexico Interbank Rate",
			AxisLabel: "Rates (%)",
			Series: []SeriesRef{
				{ID: "DFF", Label: "U.S."},
				{ID: "IRSTCB01CAM156N", Label: "CAN"},
				{ID: "IRSTCI01MXM156N", Label: "MEX"},
			},
		},
		{
			Group: GroupIndices, Title: "Dow Jones Industrial Average (DJIA)",
			AxisLabel: "DJIA (unitless)", Series: []SeriesRef{{ID: "DJIA", Label: "DJIA"}},
		},
		{
			Group: GroupIndices, Title: "S&P500 Index",
			AxisLabel: "S&P500 (unitless)", Series: []SeriesRef{{ID: "SP500", Label: "S&P500"}},
		},
		{
			Group: GroupIndices, Title: "NASDAQ Composite Index",
			AxisLabel: "NASDAQ Composite Index",
			Series:    []SeriesRef{{ID: "NASDAQCOM", Label: "NASDAQ Composite Index"}},
		},
	}
}
