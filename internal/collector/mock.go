package collector

import (
	"sync"
	"time"

	"VCPScanner/internal/model"
)

// MockFetcher returns controllable fixed data for development and
// testing. Safe for concurrent use.
type MockFetcher struct {
	Bars map[string][]model.Bar
	Errs map[string]error

	mu    sync.Mutex
	calls map[string]int
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Bars:  make(map[string][]model.Bar),
		Errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol, _ string) ([]model.Bar, error) {
	m.mu.Lock()
	m.calls[symbol]++
	m.mu.Unlock()
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	return m.Bars[symbol], nil
}

// CallCount reports how many times a symbol was fetched.
func (m *MockFetcher) CallCount(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

// GenerateBars produces count consecutive daily bars in a gentle drift
// around basePrice, useful as filler data in tests.
func GenerateBars(basePrice float64, count int) []model.Bar {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
