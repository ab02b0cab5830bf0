package model

import "time"

// Criteria holds the four independent VCP checks for one symbol.
type Criteria struct {
	PriceAboveMAs        bool
	DecreasingVolatility bool
	HigherLows           bool
	VolumeDryUp          bool
}

// Verdict is the outcome of evaluating one symbol's recent window
// against the VCP rule set.
type Verdict struct {
	Found             bool
	Score             int
	Criteria          Criteria
	LastPrice         float64
	CurrentVolatility float64
	VolumeRatio       float64
	TriggerDate       time.Time
	Remarks           string
}

// Match pairs a positive verdict with its symbol and the scan date.
type Match struct {
	Symbol   string
	Verdict  Verdict
	ScanDate time.Time
}
