package utils_test

import (
	"math"
	"testing"

	"cryptoportfolio/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingMean(t *testing.T) {
	got := utils.RollingMean([]float64{10, 20, 30, 40}, 3)
	require.Len(t, got, 4)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
	assert.Equal(t, 20.0, got[2])
	assert.Equal(t, 30.0, got[3])

	got = utils.RollingMean([]float64{1, 2}, 5)
	require.Len(t, got, 2)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))

	assert.Empty(t, utils.RollingMean([]float64{}, 2))
	assert.Equal(t, []float64{1, 2}, utils.RollingMean([]float64{1, 2}, 1))
}

func TestRollingStdDev(t *testing.T) {
	got := utils.RollingStdDev([]float64{1, 3, 5, 5}, 2)
	require.Len(t, got, 4)
	assert.True(t, math.IsNaN(got[0]))
	assert.InDelta(t, math.Sqrt(2), got[1], 1e-12)
	assert.InDelta(t, math.Sqrt(2), got[2], 1e-12)
	assert.InDelta(t, 0, got[3], 1e-12)

	got = utils.RollingStdDev([]float64{1, 2}, 1)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
}

func TestPctChange(t *testing.T) {
	got := utils.PctChange([]float64{100, 110, 99})
	require.Len(t, got, 2)
	assert.InDelta(t, 0.1, got[0], 1e-12)
	assert.InDelta(t, -0.1, got[1], 1e-12)

	assert.Empty(t, utils.PctChange([]float64{1}))
	assert.Empty(t, utils.PctChange(nil))
	assert.True(t, math.IsNaN(utils.PctChange([]float64{0, 1})[0]))
}

func TestDropNaN(t *testing.T) {
	assert.Equal(t, []float64{1, 3}, utils.DropNaN([]float64{1, math.NaN(), 3}))
	assert.Empty(t, utils.DropNaN([]float64{math.NaN()}))
}
