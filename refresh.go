package fluid

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// scheduleRefresh registers the cache purge on the configured cron schedule.
// It returns nil when the cache or the schedule is disabled.
func (a *App) scheduleRefresh() (*cron.Cron, error) {
	if a.cache == nil || a.cfg.Cache.Refresh == "" {
		return nil, nil
	}

	scheduler := cron.New(cron.WithLocation(time.UTC))
	if _, err := scheduler.AddFunc(a.cfg.Cache.Refresh, a.refreshCache); err != nil {
		return nil, fmt.Errorf("register cache refresh: %w", err)
	}
	return scheduler, nil
}

// refreshCache drops every cached response so the next request reaches the sources.
func (a *App) refreshCache() {
	entries, err := a.cache.Len()
	if err != nil {
		a.log.WithError(err).Warn("cache size unknown")
	}

	if err := a.cache.Purge(); err != nil {
		a.log.WithError(err).Error("cache refresh failed")
		return
	}
	a.log.WithField("entries", entries).Info("cache refreshed")
}
