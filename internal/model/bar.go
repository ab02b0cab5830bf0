package model

import "time"

// Bar represents a single daily OHLCV record.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}
