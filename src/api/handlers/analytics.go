package handlers

import (
	"context"
	"errors"
	"net/http"

	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/services"
	"cryptoportfolio/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetRollingMean(w http.ResponseWriter, r *http.Request) {
	h.windowSeries(w, r, h.Analytics.RollingMean)
}

func (h *Handler) GetMovingVolume(w http.ResponseWriter, r *http.Request) {
	h.windowSeries(w, r, h.Analytics.MovingVolume)
}

type windowSeriesFunc func(ctx context.Context, symbol string, window int, period string) (schemas.Series, error)

// windowSeries serves a rolling statistic whose window and period are both required.
func (h *Handler) windowSeries(w http.ResponseWriter, r *http.Request, compute windowSeriesFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	window, err := intQuery(r, "window", 0, true)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	period, err := stringQuery(r, "period", "", true)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	series, err := compute(ctx, chi.URLParam(r, "symbol"), window, period)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, series, http.StatusOK)
}

func (h *Handler) GetVolatility(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	period, _ := stringQuery(r, "period", services.DefaultVolatilityPeriod, false)
	window, err := intQuery(r, "window", services.DefaultVolatilityWindow, false)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	series, err := h.Analytics.Volatility(ctx, chi.URLParam(r, "symbol"), period, window)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, series, http.StatusOK)
}

// GetSharpeRatio answers sharpe_ratio null when the period holds too few returns.
func (h *Handler) GetSharpeRatio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	symbol, err := symbolParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	period, _ := stringQuery(r, "period", services.DefaultSharpePeriod, false)
	riskFreeRate, err := floatQuery(r, "risk_free_rate", services.DefaultRiskFreeRate)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	response := schemas.SharpeRatioResponse{Symbol: symbol, Period: period, RiskFreeRate: riskFreeRate}
	ratio, err := h.Analytics.SharpeRatio(ctx, symbol, riskFreeRate, period)
	switch {
	case errors.Is(err, utils.ErrInsufficientData):
	case err != nil:
		h.HandleErrors(w, err)
		return
	default:
		response.SharpeRatio = schemas.Float(ratio)
	}
	h.respond(w, r, response, http.StatusOK)
}
