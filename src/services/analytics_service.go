package services

import (
	"context"
	"fmt"
	"math"

	"cryptoportfolio/src/clients/marketdata"
	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/utils"

	"gonum.org/v1/gonum/stat"
)

const (
	DefaultRiskFreeRate     = 0.02
	DefaultSharpePeriod     = "1y"
	DefaultVolatilityPeriod = "1y"
	DefaultVolatilityWindow = 30
)

type AnalyticsServiceI interface {
	RollingMean(ctx context.Context, symbol string, window int, period string) (schemas.Series, error)
	MovingVolume(ctx context.Context, symbol string, window int, period string) (schemas.Series, error)
	Volatility(ctx context.Context, symbol string, period string, window int) (schemas.Series, error)
	SharpeRatio(ctx context.Context, symbol string, riskFreeRate float64, period string) (float64, error)
}

type AnalyticsService struct {
	client marketdata.MarketDataClientI
}

func NewAnalyticsService(client marketdata.MarketDataClientI) *AnalyticsService {
	return &AnalyticsService{client: client}
}

func (s *AnalyticsService) history(ctx context.Context, symbol string, period string) (marketdata.OHLCVs, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	return s.client.GetHistoricalSeries(ctx, symbol, period)
}

func validateWindow(window int) error {
	if window < 1 {
		return fmt.Errorf("%w: window must be at least 1, got %d", utils.ErrInvalidArgument, window)
	}
	return nil
}

// RollingMean is the simple moving average of the close over window bars. The
// result has one point per bar; the first window-1 points are null.
func (s *AnalyticsService) RollingMean(ctx context.Context, symbol string, window int, period string) (schemas.Series, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	series, err := s.history(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	return schemas.NewSeries(series.Dates(), utils.RollingMean(series.Close(), window)), nil
}

// MovingVolume is RollingMean applied to the traded volume.
func (s *AnalyticsService) MovingVolume(ctx context.Context, symbol string, window int, period string) (schemas.Series, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	series, err := s.history(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	return schemas.NewSeries(series.Dates(), utils.RollingMean(series.Volume(), window)), nil
}

// dailyReturns returns the close to close changes of series, failing when they
// are too few or constant for a deviation to mean anything.
func dailyReturns(series marketdata.OHLCVs) ([]float64, error) {
	returns := utils.PctChange(series.Close())
	defined := utils.DropNaN(returns)
	if len(defined) < 2 {
		return nil, fmt.Errorf("%w: %d daily returns, need at least 2", utils.ErrInsufficientData, len(defined))
	}
	if std := stat.StdDev(defined, nil); std == 0 || math.IsNaN(std) {
		return nil, fmt.Errorf("%w: daily returns have no variance", utils.ErrInsufficientData)
	}
	return returns, nil
}

// Volatility is the rolling sample deviation of daily returns over window
// days, annualized and expressed in percent. Points are dated by the second
// and following bars.
func (s *AnalyticsService) Volatility(ctx context.Context, symbol string, period string, window int) (schemas.Series, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	series, err := s.history(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	returns, err := dailyReturns(series)
	if err != nil {
		return nil, err
	}

	annualize := math.Sqrt(utils.TradingDaysPerYear) * 100
	volatility := utils.RollingStdDev(returns, window)
	for i := range volatility {
		volatility[i] *= annualize
	}
	return schemas.NewSeries(series.Dates()[1:], volatility), nil
}

// SharpeRatio is the annualized mean daily return in excess of riskFreeRate
// divided by the annualized deviation of daily returns.
func (s *AnalyticsService) SharpeRatio(ctx context.Context, symbol string, riskFreeRate float64, period string) (float64, error) {
	if math.IsNaN(riskFreeRate) || math.IsInf(riskFreeRate, 0) {
		return 0, fmt.Errorf("%w: risk free rate must be finite", utils.ErrInvalidArgument)
	}
	series, err := s.history(ctx, symbol, period)
	if err != nil {
		return 0, err
	}
	returns, err := dailyReturns(series)
	if err != nil {
		return 0, err
	}

	mean, std := stat.MeanStdDev(utils.DropNaN(returns), nil)
	annualReturn := mean * utils.TradingDaysPerYear
	annualVolatility := std * math.Sqrt(utils.TradingDaysPerYear)
	return (annualReturn - riskFreeRate) / annualVolatility, nil
}
