// Package report prints dashboard views as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/fluid/pkg/core"
	"github.com/raykavin/fluid/pkg/dashboard"
	"github.com/raykavin/fluid/pkg/directory"
	"github.com/raykavin/fluid/pkg/format"
	"github.com/raykavin/fluid/pkg/metric"
)

const (
	histogramBins  = 15
	bootstrapRuns  = 10000
	confidence     = 0.95
	latestDecimals = 2
)

// Metrics writes the snapshot metrics of symbol as a two column table.
func Metrics(w io.Writer, symbol string, metrics []dashboard.Metric) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{symbol, "Value"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, m := range metrics {
		label := m.Label
		if m.Hint != "" {
			label += " (" + m.Hint + ")"
		}
		table.Append([]string{label, m.Value})
	}
	table.Render()
}

// Summary writes the per-column statistics of a price history.
func Summary(w io.Writer, rows []dashboard.SummaryRow) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Column", "Count", "Mean", "Std", "Min", "Max"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, row := range rows {
		table.Append([]string{row.Column, strconv.Itoa(row.Count), row.Mean, row.Std, row.Min, row.Max})
	}
	table.Render()
}

// Returns prints a histogram of the daily close-to-close returns of bars and the
// bootstrapped confidence interval of their mean.
func Returns(w io.Writer, bars core.Bars) error {
	returns := bars.Returns()
	if len(returns) < 2 {
		_, err := fmt.Fprintln(w, "not enough bars for a return distribution")
		return err
	}

	percent := make([]float64, len(returns))
	for i, r := range returns {
		percent[i] = r * 100
	}

	fmt.Fprintln(w, "------ DAILY RETURN (%) -------")
	if err := histogram.Fprint(w, histogram.Hist(histogramBins, percent), histogram.Linear(10)); err != nil {
		return err
	}

	interval := metric.Bootstrap(returns, metric.Mean, bootstrapRuns, confidence)
	_, err := fmt.Fprintf(w, "\nMEAN RETURN: %.3f%% (%.3f%% ~ %.3f%%) at %.0f%% confidence\n",
		interval.Mean*100, interval.Lower*100, interval.Upper*100, confidence*100)
	return err
}

// Section writes one economic section: the latest observation of every series.
func Section(w io.Writer, panel dashboard.Panel) {
	fmt.Fprintf(w, "## %s\n", panel.Title)
	if panel.Note != "" {
		fmt.Fprintln(w, panel.Note)
	}
	if panel.Error != "" {
		fmt.Fprintf(w, "error: %s\n\n", panel.Error)
		return
	}
	if panel.Chart == nil {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	axis := ""
	if len(panel.Chart.Layout.YAxes) > 0 {
		axis = panel.Chart.Layout.YAxes[0].Title
	}
	table.SetHeader([]string{"Series", "Points", "Since", "Latest", axis})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, trace := range panel.Chart.Data {
		row := []string{trace.Name, strconv.Itoa(len(trace.Y)), format.NotAvailable, format.NotAvailable, format.NotAvailable}
		if n := len(trace.X); n > 0 && n == len(trace.Y) {
			row[2] = trace.X[0].Format(time.DateOnly)
			row[3] = trace.X[n-1].Format(time.DateOnly)
			row[4] = format.Decimal(trace.Y[n-1], latestDecimals)
		}
		table.Append(row)
	}
	table.Render()
	fmt.Fprintln(w)
}

// Tickers writes the ticker directory.
func Tickers(w io.Writer, labels []string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Symbol", "Label"})

	for i, label := range labels {
		table.Append([]string{strconv.Itoa(i + 1), directory.SymbolOf(label), label})
	}
	table.Render()
}
