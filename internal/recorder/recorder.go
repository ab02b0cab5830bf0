package recorder

import (
	"time"

	"VCPScanner/internal/model"
)

// ScanRun holds everything recorded for one completed scan.
type ScanRun struct {
	ScanDate       time.Time
	SymbolsScanned int
	Matches        []model.Match
}

// Recorder persists scan history for later analysis.
type Recorder interface {
	RecordScan(run *ScanRun) error
	Close() error
}
