package scanner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"VCPScanner/internal/calculator"
	"VCPScanner/internal/model"
	"VCPScanner/internal/strategy"
)

// SeriesFetcher retrieves one symbol's daily bar series.
type SeriesFetcher interface {
	Fetch(ctx context.Context, symbol, period string) ([]model.Bar, error)
}

// Scanner fans fetches out over a bounded worker pool, waits for all of
// them, then annotates and evaluates each series sequentially. A
// symbol's failure (fetch error, no data, short history) only removes
// that symbol from the results.
type Scanner struct {
	fetcher SeriesFetcher
	period  string
	workers int
	windows calculator.Windows
	params  strategy.Params
	log     zerolog.Logger
	now     func() time.Time
}

// New creates a Scanner. Workers bounds fetch concurrency.
func New(fetcher SeriesFetcher, period string, workers int, w calculator.Windows, p strategy.Params, log zerolog.Logger) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{
		fetcher: fetcher,
		period:  period,
		workers: workers,
		windows: w,
		params:  p,
		log:     log,
		now:     time.Now,
	}
}

// SetNow overrides the scan-date clock, for tests.
func (s *Scanner) SetNow(now func() time.Time) {
	s.now = now
}

// Scan fetches and evaluates every symbol and returns the matches.
func (s *Scanner) Scan(ctx context.Context, symbols []string) []model.Match {
	if len(symbols) == 0 {
		s.log.Error().Msg("no symbols to scan")
		return nil
	}

	s.log.Info().Int("symbols", len(symbols)).Str("period", s.period).Msg("starting VCP scan")

	// Each worker writes only its own indices, so the slice needs no lock.
	series := make([][]model.Bar, len(symbols))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := s.workers
	if workers > len(symbols) {
		workers = len(symbols)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				bars, err := s.fetcher.Fetch(ctx, symbols[i], s.period)
				if err != nil {
					continue // already logged by the fetcher
				}
				series[i] = bars
			}
		}()
	}
	for i := range symbols {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	scanDate := s.now()
	var matches []model.Match
	scored := 0
	for i, sym := range symbols {
		if series[i] == nil {
			continue
		}
		annotated, err := calculator.Annotate(series[i], s.windows)
		if err != nil {
			if errors.Is(err, calculator.ErrInsufficientHistory) {
				s.log.Warn().Str("symbol", sym).Int("bars", len(series[i])).Msg("insufficient history, skipping")
			} else {
				s.log.Warn().Str("symbol", sym).Err(err).Msg("annotate failed, skipping")
			}
			continue
		}
		verdict := strategy.Evaluate(annotated, s.params)
		scored++
		s.log.Debug().
			Str("symbol", sym).
			Int("score", verdict.Score).
			Bool("found", verdict.Found).
			Msg("evaluated")
		if verdict.Found {
			matches = append(matches, model.Match{Symbol: sym, Verdict: verdict, ScanDate: scanDate})
		}
	}

	s.log.Info().
		Int("symbols", len(symbols)).
		Int("evaluated", scored).
		Int("matches", len(matches)).
		Msg("scan complete")
	return matches
}
