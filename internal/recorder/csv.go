package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"VCPScanner/internal/model"
)

// csvHeader defines the result columns, in output order.
var csvHeader = []string{
	"Symbol", "Pattern_Score", "Last_Price", "Volatility", "Volume_Ratio",
	"Scan_Date", "Price_Above_MAs", "Decreasing_Volatility", "Higher_Lows",
	"Volume_Dry_Up", "Remarks", "Trigger_Date",
}

// CSVSink writes match rows to a CSV file. Nothing is written — and no
// file is created — when there are zero matches.
type CSVSink struct {
	Path string
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{Path: path}
}

// Write persists the matches, replacing any previous file at Path.
func (s *CSVSink) Write(matches []model.Match) error {
	if len(matches) == 0 {
		return nil
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, m := range matches {
		v := m.Verdict
		row := []string{
			m.Symbol,
			strconv.Itoa(v.Score),
			strconv.FormatFloat(v.LastPrice, 'f', 2, 64),
			strconv.FormatFloat(v.CurrentVolatility, 'f', 4, 64),
			strconv.FormatFloat(v.VolumeRatio, 'f', 4, 64),
			m.ScanDate.Format("2006-01-02"),
			strconv.FormatBool(v.Criteria.PriceAboveMAs),
			strconv.FormatBool(v.Criteria.DecreasingVolatility),
			strconv.FormatBool(v.Criteria.HigherLows),
			strconv.FormatBool(v.Criteria.VolumeDryUp),
			v.Remarks,
			v.TriggerDate.Format("2006-01-02"),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", m.Symbol, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
