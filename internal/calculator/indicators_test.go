package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VCPScanner/internal/model"
)

func constantBars(n int, close float64, volume int64) []model.Bar {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = model.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   close,
			High:   close + 1,
			Low:    close - 1,
			Close:  close,
			Volume: volume,
		}
	}
	return bars
}

func TestRollingMean(t *testing.T) {
	out := RollingMean([]float64{1, 2, 3, 4, 5}, 3)

	require.Len(t, out, 5)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-9)
	assert.InDelta(t, 3.0, out[3], 1e-9)
	assert.InDelta(t, 4.0, out[4], 1e-9)
}

func TestRollingStdDev_SampleVariance(t *testing.T) {
	// Sample stddev divides by n-1: stddev of {1,2,3} is exactly 1.
	out := RollingStdDev([]float64{1, 2, 3, 4}, 3)

	require.Len(t, out, 4)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 1.0, out[2], 1e-9)
	assert.InDelta(t, 1.0, out[3], 1e-9)
}

func TestRollingMin(t *testing.T) {
	out := RollingMin([]float64{5, 3, 4, 1, 2}, 3)

	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, 3.0, out[2])
	assert.Equal(t, 1.0, out[3])
	assert.Equal(t, 1.0, out[4])
}

func TestAnnotate_InsufficientHistory(t *testing.T) {
	bars := constantBars(49, 100, 1000)

	_, err := Annotate(bars, DefaultWindows())

	require.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestAnnotate_AlignmentAndLeadingNaNs(t *testing.T) {
	bars := constantBars(60, 100, 1000)

	a, err := Annotate(bars, DefaultWindows())
	require.NoError(t, err)

	require.Len(t, a.ShortMA, 60)
	assert.True(t, math.IsNaN(a.ShortMA[18]))
	assert.InDelta(t, 100.0, a.ShortMA[19], 1e-9)
	assert.True(t, math.IsNaN(a.LongMA[48]))
	assert.InDelta(t, 100.0, a.LongMA[49], 1e-9)
	assert.InDelta(t, 0.0, a.Volatility[19], 1e-9)
	assert.True(t, math.IsNaN(a.VolumeMA[48]))
	assert.InDelta(t, 1000.0, a.VolumeMA[49], 1e-9)
	assert.InDelta(t, 1.0, a.VolumeRatio[49], 1e-9)
	assert.True(t, math.IsNaN(a.VolumeRatio[48]))
}

func TestAnnotate_ZeroVolumeMAYieldsNaNRatio(t *testing.T) {
	bars := constantBars(60, 100, 0)

	a, err := Annotate(bars, DefaultWindows())
	require.NoError(t, err)

	// volumeMA is zero everywhere; the ratio must be absent, not Inf.
	assert.True(t, math.IsNaN(a.VolumeRatio[59]))
}

func TestAnnotate_DoesNotMutateInput(t *testing.T) {
	bars := constantBars(60, 100, 1000)
	snapshot := make([]model.Bar, len(bars))
	copy(snapshot, bars)

	_, err := Annotate(bars, DefaultWindows())
	require.NoError(t, err)

	assert.Equal(t, snapshot, bars)
}
