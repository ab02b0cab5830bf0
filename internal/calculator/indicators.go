package calculator

import (
	"errors"
	"math"

	"VCPScanner/internal/model"
)

// ErrInsufficientHistory indicates a series too short to annotate.
var ErrInsufficientHistory = errors.New("insufficient history")

// Windows holds the rolling-window lengths used for annotation.
type Windows struct {
	Short      int // short close MA
	Long       int // long close MA
	Volatility int // close stddev
	VolumeAvg  int // volume MA
}

// DefaultWindows returns the standard VCP window set.
func DefaultWindows() Windows {
	return Windows{Short: 20, Long: 50, Volatility: 20, VolumeAvg: 50}
}

// Annotated pairs a bar series with its rolling indicators. Indicator
// slices are index-aligned with Bars; positions with fewer than
// window-1 prior bars hold NaN. VolumeRatio is also NaN wherever
// VolumeMA is zero.
type Annotated struct {
	Bars        []model.Bar
	ShortMA     []float64
	LongMA      []float64
	Volatility  []float64
	VolumeMA    []float64
	VolumeRatio []float64
}

// Annotate computes rolling indicators over the series. It never
// modifies bars. Series shorter than the long MA window cannot produce
// a meaningful annotation and yield ErrInsufficientHistory.
func Annotate(bars []model.Bar, w Windows) (*Annotated, error) {
	if len(bars) < w.Long {
		return nil, ErrInsufficientHistory
	}

	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = float64(b.Volume)
	}

	a := &Annotated{
		Bars:       bars,
		ShortMA:    RollingMean(closes, w.Short),
		LongMA:     RollingMean(closes, w.Long),
		Volatility: RollingStdDev(closes, w.Volatility),
		VolumeMA:   RollingMean(volumes, w.VolumeAvg),
	}

	a.VolumeRatio = make([]float64, len(bars))
	for i := range bars {
		ma := a.VolumeMA[i]
		if math.IsNaN(ma) || ma == 0 {
			a.VolumeRatio[i] = math.NaN()
		} else {
			a.VolumeRatio[i] = volumes[i] / ma
		}
	}
	return a, nil
}

// RollingMean computes the trailing mean over window elements. The
// first window-1 positions are NaN.
func RollingMean(xs []float64, window int) []float64 {
	out := make([]float64, len(xs))
	var sum float64
	for i, x := range xs {
		sum += x
		if i >= window {
			sum -= xs[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// RollingStdDev computes the trailing sample standard deviation
// (divide by n-1) over window elements. The first window-1 positions
// are NaN.
func RollingStdDev(xs []float64, window int) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		start := i - window + 1
		var sum float64
		for j := start; j <= i; j++ {
			sum += xs[j]
		}
		mean := sum / float64(window)
		var sq float64
		for j := start; j <= i; j++ {
			d := xs[j] - mean
			sq += d * d
		}
		out[i] = math.Sqrt(sq / float64(window-1))
	}
	return out
}

// RollingMin computes the trailing minimum over window elements. The
// first window-1 positions are NaN.
func RollingMin(xs []float64, window int) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		lo := xs[i]
		for j := i - window + 1; j < i; j++ {
			if xs[j] < lo {
				lo = xs[j]
			}
		}
		out[i] = lo
	}
	return out
}
