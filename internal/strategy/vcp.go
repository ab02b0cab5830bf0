package strategy

import (
	"math"
	"strings"

	"VCPScanner/internal/calculator"
	"VCPScanner/internal/model"
)

// Criterion weights. They sum to 100; a verdict qualifies at 75 or
// above, which requires at least three criteria (the largest
// two-criterion sum is 30+25=55).
const (
	WeightPriceAboveMAs        = 30
	WeightDecreasingVolatility = 25
	WeightHigherLows           = 25
	WeightVolumeDryUp          = 20

	FoundThreshold = 75
)

// Params tunes the recent-window evaluation.
type Params struct {
	// RecentDays is the length of the window the rules examine. The
	// fixed sampling offsets reach 40 bars back, so values below 41
	// are rejected by config validation before a scan starts.
	RecentDays          int
	VolatilityThreshold float64
	VolumeThreshold     float64
}

// DefaultParams returns the standard VCP rule parameters.
func DefaultParams() Params {
	return Params{RecentDays: 60, VolatilityThreshold: 0.8, VolumeThreshold: 0.8}
}

const noTriggers = "No triggers met"

// Evaluate applies the VCP rule set to the last RecentDays bars of the
// annotated series. Series shorter than RecentDays yield a zero
// verdict with Found=false. NaN indicators make the affected criterion
// false, never an error.
func Evaluate(a *calculator.Annotated, p Params) model.Verdict {
	n := len(a.Bars)
	if n < p.RecentDays {
		return model.Verdict{}
	}

	// Offsets count back from the last bar: off(1) is the last bar,
	// off(20) the bar 19 before it.
	off := func(k int) int { return n - k }

	lastClose := a.Bars[off(1)].Close

	var crit model.Criteria
	crit.PriceAboveMAs = lastClose > a.ShortMA[off(1)] && lastClose > a.LongMA[off(1)]

	volNow := a.Volatility[off(1)]
	volThen := a.Volatility[off(20)]
	crit.DecreasingVolatility = volNow/volThen < p.VolatilityThreshold

	// The 5-bar low minimum is computed within the recent window only;
	// its first four positions are undefined.
	start := n - p.RecentDays
	lows := make([]float64, p.RecentDays)
	for i := range lows {
		lows[i] = a.Bars[start+i].Low
	}
	low5 := calculator.RollingMin(lows, 5)
	m := p.RecentDays
	crit.HigherLows = low5[m-1] > low5[m-20] && low5[m-20] > low5[m-40]

	avgRatio := nanMean(a.VolumeRatio[n-10:])
	crit.VolumeDryUp = avgRatio < p.VolumeThreshold

	score := 0
	if crit.PriceAboveMAs {
		score += WeightPriceAboveMAs
	}
	if crit.DecreasingVolatility {
		score += WeightDecreasingVolatility
	}
	if crit.HigherLows {
		score += WeightHigherLows
	}
	if crit.VolumeDryUp {
		score += WeightVolumeDryUp
	}

	return model.Verdict{
		Found:             score >= FoundThreshold,
		Score:             score,
		Criteria:          crit,
		LastPrice:         lastClose,
		CurrentVolatility: volNow,
		VolumeRatio:       avgRatio,
		TriggerDate:       a.Bars[off(1)].Date,
		Remarks:           remarks(crit),
	}
}

// remarks lists the display names of satisfied criteria, in rule order.
func remarks(c model.Criteria) string {
	var met []string
	if c.PriceAboveMAs {
		met = append(met, "Price Above Mas")
	}
	if c.DecreasingVolatility {
		met = append(met, "Decreasing Volatility")
	}
	if c.HigherLows {
		met = append(met, "Higher Lows")
	}
	if c.VolumeDryUp {
		met = append(met, "Volume Dry Up")
	}
	if len(met) == 0 {
		return noTriggers
	}
	return strings.Join(met, ", ")
}

// nanMean averages the defined values only; all-NaN input yields NaN.
func nanMean(xs []float64) float64 {
	var sum float64
	var count int
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		sum += x
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}
