package services_test

import (
	"context"
	"math"
	"testing"

	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/services"
	"cryptoportfolio/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(series schemas.Series) []*float64 {
	out := make([]*float64, len(series))
	for i, p := range series {
		out[i] = p.Value
	}
	return out
}

func f(v float64) *float64 { return &v }

func TestRollingMean(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	t.Run("window of three over four closes", func(t *testing.T) {
		series, err := s.analytics.RollingMean(ctx, "btc", 3, "1mo")
		require.NoError(t, err)
		assert.Equal(t, []*float64{nil, nil, f(20), f(30)}, values(series))
		assert.Equal(t, "2024-06-01", series[0].Date)
		assert.Equal(t, "2024-06-04", series[3].Date)
	})

	t.Run("window longer than the series", func(t *testing.T) {
		series, err := s.analytics.RollingMean(ctx, "btc", 10, "1mo")
		require.NoError(t, err)
		assert.Equal(t, []*float64{nil, nil, nil, nil}, values(series))
	})

	t.Run("window of one is the series itself", func(t *testing.T) {
		series, err := s.analytics.RollingMean(ctx, "btc", 1, "1mo")
		require.NoError(t, err)
		assert.Equal(t, []*float64{f(10), f(20), f(30), f(40)}, values(series))
	})

	t.Run("invalid window", func(t *testing.T) {
		_, err := s.analytics.RollingMean(ctx, "btc", 0, "1mo")
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	})

	t.Run("invalid period", func(t *testing.T) {
		_, err := s.analytics.RollingMean(ctx, "btc", 3, "7w")
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	})

	t.Run("no coverage", func(t *testing.T) {
		series, err := s.analytics.RollingMean(ctx, "xyz", 3, "1mo")
		require.NoError(t, err)
		assert.Empty(t, series)
	})
}

func TestMovingVolume(t *testing.T) {
	s := setupServices(t)

	series, err := s.analytics.MovingVolume(context.Background(), "btc", 2, "1mo")
	require.NoError(t, err)
	assert.Equal(t, []*float64{nil, f(150), f(250), f(350)}, values(series))
}

func TestVolatility(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	t.Run("annualized rolling deviation of returns", func(t *testing.T) {
		series, err := s.analytics.Volatility(ctx, "eth", "1y", 2)
		require.NoError(t, err)
		require.Len(t, series, 5)
		assert.Equal(t, "2024-06-02", series[0].Date)
		assert.Equal(t, "2024-06-06", series[4].Date)

		assert.Nil(t, series[0].Value)
		want := math.Sqrt(0.02) * math.Sqrt(252) * 100
		for _, i := range []int{1, 2, 4} {
			require.NotNil(t, series[i].Value, i)
			assert.InDelta(t, want, *series[i].Value, 1e-6, i)
		}
		require.NotNil(t, series[3].Value)
		assert.InDelta(t, 0, *series[3].Value, 1e-6)
	})

	t.Run("constant prices", func(t *testing.T) {
		_, err := s.analytics.Volatility(ctx, "usdt", "1y", 2)
		assert.ErrorIs(t, err, utils.ErrInsufficientData)
	})

	t.Run("single observation", func(t *testing.T) {
		_, err := s.analytics.Volatility(ctx, "sol", "1y", 2)
		assert.ErrorIs(t, err, utils.ErrInsufficientData)
	})

	t.Run("no coverage", func(t *testing.T) {
		_, err := s.analytics.Volatility(ctx, "xyz", "1y", services.DefaultVolatilityWindow)
		assert.ErrorIs(t, err, utils.ErrInsufficientData)
	})

	t.Run("invalid window", func(t *testing.T) {
		_, err := s.analytics.Volatility(ctx, "eth", "1y", -3)
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	})
}

func TestSharpeRatio(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	t.Run("default risk free rate", func(t *testing.T) {
		ratio, err := s.analytics.SharpeRatio(ctx, "eth", services.DefaultRiskFreeRate, services.DefaultSharpePeriod)
		require.NoError(t, err)
		assert.InDelta(t, 2.8867742565821835, ratio, 1e-9)
	})

	t.Run("custom risk free rate", func(t *testing.T) {
		ratio, err := s.analytics.SharpeRatio(ctx, "eth", 0.05, "1y")
		require.NoError(t, err)
		assert.InDelta(t, 2.8695226175986246, ratio, 1e-9)
	})

	t.Run("zero variance", func(t *testing.T) {
		_, err := s.analytics.SharpeRatio(ctx, "usdt", services.DefaultRiskFreeRate, "1y")
		assert.ErrorIs(t, err, utils.ErrInsufficientData)
	})

	t.Run("fewer than two returns", func(t *testing.T) {
		_, err := s.analytics.SharpeRatio(ctx, "sol", services.DefaultRiskFreeRate, "1y")
		assert.ErrorIs(t, err, utils.ErrInsufficientData)

		_, err = s.analytics.SharpeRatio(ctx, "doge", services.DefaultRiskFreeRate, "1y")
		assert.ErrorIs(t, err, utils.ErrInsufficientData)
	})

	t.Run("non finite rate", func(t *testing.T) {
		_, err := s.analytics.SharpeRatio(ctx, "eth", math.Inf(1), "1y")
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	})
}
