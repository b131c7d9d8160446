package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/raykavin/fluid/pkg/core"
	"github.com/raykavin/fluid/pkg/logger"
)

// Cache stores fetched payloads by key. Get reports false on a miss or an expired entry.
type Cache interface {
	Get(key string, dst any) (bool, error)
	Set(key string, value any) error
}

// CachedPrices decorates a PriceSource with a read-through cache.
type CachedPrices struct {
	Source core.PriceSource
	Cache  Cache
	Log    logger.Logger
}

func (c CachedPrices) PriceHistory(ctx context.Context, symbol string, start, end time.Time) (core.Bars, error) {
	key := fmt.Sprintf("bars:%s:%s:%s", symbol, start.UTC().Format(time.DateOnly), end.UTC().Format(time.DateOnly))

	var bars core.Bars
	if hit := c.get(key, &bars); hit {
		return bars, nil
	}

	bars, err := c.Source.PriceHistory(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	c.set(key, bars)
	return bars, nil
}

func (c CachedPrices) Snapshot(ctx context.Context, symbol string) (core.Record, error) {
	key := "snapshot:" + symbol

	var record core.Record
	if hit := c.get(key, &record); hit {
		return record, nil
	}

	record, err := c.Source.Snapshot(ctx, symbol)
	if err != nil {
		return nil, err
	}

	c.set(key, record)
	return record, nil
}

func (c CachedPrices) get(key string, dst any) bool {
	return cacheGet(c.Cache, c.Log, key, dst)
}

func (c CachedPrices) set(key string, value any) {
	cacheSet(c.Cache, c.Log, key, value)
}

// CachedEconomics decorates an EconomicSource with a read-through cache.
type CachedEconomics struct {
	Source core.EconomicSource
	Cache  Cache
	Log    logger.Logger
}

func (c CachedEconomics) NamedSeries(ctx context.Context, id string) (core.TimeSeries, error) {
	key := "series:" + id

	var series core.TimeSeries
	if cacheGet(c.Cache, c.Log, key, &series) {
		return series, nil
	}

	series, err := c.Source.NamedSeries(ctx, id)
	if err != nil {
		return core.TimeSeries{}, err
	}

	cacheSet(c.Cache, c.Log, key, series)
	return series, nil
}

// cacheGet treats cache errors as a miss.
func cacheGet(cache Cache, log logger.Logger, key string, dst any) bool {
	if cache == nil {
		return false
	}

	hit, err := cache.Get(key, dst)
	if err != nil {
		if log != nil {
			log.WithError(err).WithField("key", key).Warn("cache read failed")
		}
		return false
	}
	if hit && log != nil {
		log.WithField("key", key).Debug("cache hit")
	}
	return hit
}

func cacheSet(cache Cache, log logger.Logger, key string, value any) {
	if cache == nil {
		return
	}
	if err := cache.Set(key, value); err != nil && log != nil {
		log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}
