// Package export writes daily price history to CSV.
package export

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/raykavin/fluid/pkg/core"
	"github.com/raykavin/fluid/pkg/dashboard"
	"github.com/raykavin/fluid/pkg/logger"
	"github.com/schollz/progressbar/v3"
	"github.com/xhit/go-str2duration/v2"
)

// batchYears is the span requested from the price source per call.
const batchYears = 1

// Downloader fetches daily bars through the dashboard service and saves them as CSV
type Downloader struct {
	service  *dashboard.Service
	log      logger.Logger
	progress io.Writer
}

// NewDownloader creates a new downloader. Progress is drawn on progress, or
// discarded when it is nil.
func NewDownloader(service *dashboard.Service, log logger.Logger, progress io.Writer) Downloader {
	if progress == nil {
		progress = io.Discard
	}
	return Downloader{service: service, log: log, progress: progress}
}

// Parameters defines the time range for data download
type Parameters struct {
	Start  time.Time
	End    time.Time
	Period time.Duration
}

// Option is a function type for configuring download parameters
type Option func(*Parameters) error

// WithInterval sets specific start and end dates for the download
func WithInterval(start, end time.Time) Option {
	return func(parameters *Parameters) error {
		parameters.Start = start
		parameters.End = end
		return nil
	}
}

// WithPeriod sets the download window to the given period back from the
// current end, e.g. "90d" or "2w".
func WithPeriod(period string) Option {
	return func(parameters *Parameters) error {
		d, err := str2duration.ParseDuration(period)
		if err != nil {
			return err
		}
		parameters.Period = d
		return nil
	}
}

// Download writes the daily bars of ticker to w and returns the resolved
// symbol and the bars written. The window is fetched one year at a time.
func (d Downloader) Download(ctx context.Context, ticker string, w io.Writer, options ...Option) (string, core.Bars, error) {
	parameters := &Parameters{}
	for _, option := range options {
		if err := option(parameters); err != nil {
			return "", nil, err
		}
	}

	symbol, err := d.service.Tickers().Resolve(ticker)
	if err != nil {
		return "", nil, err
	}

	if parameters.Period > 0 {
		if parameters.End.IsZero() {
			parameters.End = d.service.Today()
		}
		parameters.Start = parameters.End.Add(-parameters.Period)
	}

	start, end, err := d.service.Window(parameters.Start, parameters.End)
	if err != nil {
		return symbol, nil, err
	}

	days := int64(end.Sub(start) / (24 * time.Hour))
	d.log.Infof("Downloading %d days of %s", days, symbol)

	progressBar := progressbar.NewOptions64(days,
		progressbar.OptionSetWriter(d.progress),
		progressbar.OptionSetDescription(symbol),
		progressbar.OptionShowCount(),
	)

	writer := csv.NewWriter(w)
	if err := writer.Write(core.BarHeader); err != nil {
		return symbol, nil, err
	}

	var all core.Bars
	for batchStart := start; batchStart.Before(end); {
		batchEnd := batchStart.AddDate(batchYears, 0, 0)
		if batchEnd.After(end) {
			batchEnd = end
		}

		_, bars, err := d.service.History(ctx, symbol, batchStart, batchEnd)
		if err != nil {
			return symbol, all, err
		}
		if err := writeBars(writer, bars); err != nil {
			return symbol, all, err
		}
		all = append(all, bars...)

		if err := progressBar.Add64(int64(batchEnd.Sub(batchStart) / (24 * time.Hour))); err != nil {
			d.log.Warnf("Failed to update progress bar: %s", err.Error())
		}
		batchStart = batchEnd
	}

	if err := progressBar.Close(); err != nil {
		d.log.Warnf("Failed to close progress bar: %s", err.Error())
	}

	writer.Flush()
	d.log.WithField("bars", len(all)).Info("Done!")
	return symbol, all, writer.Error()
}
