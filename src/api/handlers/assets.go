package handlers

import (
	"context"
	"net/http"

	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/services"

	"github.com/go-chi/chi/v5"
)

const defaultHistoryPeriod = "1mo"

func symbolParam(r *http.Request) (string, error) {
	return services.NormalizeSymbol(chi.URLParam(r, "symbol"))
}

func (h *Handler) GetAssetPrice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	symbol, err := symbolParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	price, err := h.Assets.CurrentPrice(ctx, symbol)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.PriceResponse{Symbol: symbol, Price: price}, http.StatusOK)
}

// GetAssetMetric serves one of the market metrics of an asset.
func (h *Handler) GetAssetMetric(metric string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		symbol, err := symbolParam(r)
		if err != nil {
			h.HandleErrors(w, err)
			return
		}

		value, err := h.Assets.Metric(ctx, symbol, metric)
		if err != nil {
			h.HandleErrors(w, err)
			return
		}
		h.respond(w, r, schemas.MetricResponse{Symbol: symbol, Metric: metric, Value: value}, http.StatusOK)
	}
}

func (h *Handler) GetAssetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	quote, err := h.Assets.Quote(ctx, chi.URLParam(r, "symbol"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, quote, http.StatusOK)
}

func (h *Handler) GetAssetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	period, _ := stringQuery(r, "period", defaultHistoryPeriod, false)
	candles, err := h.Assets.History(ctx, chi.URLParam(r, "symbol"), period)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, candles, http.StatusOK)
}

// GetAssetValuation prices ?quantity= units of the asset.
func (h *Handler) GetAssetValuation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	symbol, err := symbolParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	quantity, err := decimalQuery(r, "quantity")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	price, err := h.Assets.CurrentPrice(ctx, symbol)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	valuation, err := h.Assets.Valuation(ctx, symbol, quantity)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.AssetValuationResponse{
		Symbol:    symbol,
		Quantity:  quantity.String(),
		Price:     price,
		Valuation: valuation,
	}, http.StatusOK)
}
