package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"VCPScanner/internal/cache"
	"VCPScanner/internal/model"
)

// SeriesFetcher wraps a provider Fetcher with bounded retry at a fixed
// delay and an optional series cache. An empty series (ErrNoData) is
// terminal and never retried; every other provider error is retried
// identically, transient or not. Failures never propagate beyond the
// symbol they belong to: callers get an error and move on.
type SeriesFetcher struct {
	provider Fetcher
	cache    cache.SeriesCache
	retries  int
	delay    time.Duration
	sleep    func(time.Duration)
	log      zerolog.Logger
}

// NewSeriesFetcher creates a SeriesFetcher. Retries is the total number
// of attempts, not the number of retries after the first failure.
func NewSeriesFetcher(provider Fetcher, c cache.SeriesCache, retries int, delay time.Duration, log zerolog.Logger) *SeriesFetcher {
	return &SeriesFetcher{
		provider: provider,
		cache:    c,
		retries:  retries,
		delay:    delay,
		sleep:    time.Sleep,
		log:      log,
	}
}

// SetSleep replaces the inter-attempt sleep, letting tests verify retry
// timing without waiting.
func (f *SeriesFetcher) SetSleep(sleep func(time.Duration)) {
	f.sleep = sleep
}

// Fetch retrieves the daily bar series for symbol over period.
func (f *SeriesFetcher) Fetch(ctx context.Context, symbol, period string) ([]model.Bar, error) {
	if bars, ok := f.cache.GetSeries(ctx, symbol, period); ok {
		f.log.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("series cache hit")
		return bars, nil
	}

	var lastErr error
	for attempt := 1; attempt <= f.retries; attempt++ {
		bars, err := f.provider.FetchDailyBars(symbol, period)
		if err == nil && len(bars) == 0 {
			err = fmt.Errorf("%s %s: %w", f.provider.Name(), symbol, ErrNoData)
		}
		if err == nil {
			f.cache.SetSeries(ctx, symbol, period, bars)
			return bars, nil
		}
		if errors.Is(err, ErrNoData) {
			f.log.Warn().Str("symbol", symbol).Msg("no data found, skipping")
			return nil, err
		}
		lastErr = err
		if attempt < f.retries {
			f.log.Warn().
				Str("symbol", symbol).
				Int("attempt", attempt).
				Dur("retry_in", f.delay).
				Err(err).
				Msg("fetch attempt failed, retrying")
			f.sleep(f.delay)
		}
	}

	f.log.Error().
		Str("symbol", symbol).
		Int("attempts", f.retries).
		Err(lastErr).
		Msg("fetch failed, giving up")
	return nil, fmt.Errorf("fetch %s after %d attempts: %w", symbol, f.retries, lastErr)
}
