package core

import (
	"context"
	"time"
)

// PriceSource provides daily price bars and current scalar facts for a ticker.
type PriceSource interface {
	PriceHistory(ctx context.Context, symbol string, start, end time.Time) (Bars, error)
	Snapshot(ctx context.Context, symbol string) (Record, error)
}

// EconomicSource provides macroeconomic series by identifier (e.g. "GDP").
type EconomicSource interface {
	NamedSeries(ctx context.Context, id string) (TimeSeries, error)
}
