package cache

import (
	"context"

	"VCPScanner/internal/model"
)

// SeriesCache stores fetched bar series between scans so a scheduled
// re-scan does not refetch symbols whose history is still fresh.
// Implementations must treat every failure as a miss.
type SeriesCache interface {
	GetSeries(ctx context.Context, symbol, period string) ([]model.Bar, bool)
	SetSeries(ctx context.Context, symbol, period string, bars []model.Bar)
	Close() error
}

// NoopCache is used when no Redis address is configured.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (n *NoopCache) GetSeries(_ context.Context, _, _ string) ([]model.Bar, bool) {
	return nil, false
}

func (n *NoopCache) SetSeries(_ context.Context, _, _ string, _ []model.Bar) {}

func (n *NoopCache) Close() error { return nil }
