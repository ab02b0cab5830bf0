package collector

import (
	"errors"

	"VCPScanner/internal/model"
)

// ErrNoData indicates the provider has no bars for a symbol. It is
// terminal: SeriesFetcher skips the symbol without retrying.
var ErrNoData = errors.New("no data for symbol")

// Fetcher defines the interface for fetching daily bar history from a
// market-data provider. Period is a lookback span such as "1y" or "6mo".
type Fetcher interface {
	FetchDailyBars(symbol, period string) ([]model.Bar, error)
	Name() string
}
