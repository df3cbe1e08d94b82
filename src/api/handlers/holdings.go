package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/services"
	"cryptoportfolio/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, err := userIDParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	holdings, err := h.Portfolio.ListHoldings(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, holdings, http.StatusOK)
}

func (h *Handler) AddHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, err := userIDParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.HoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request payload"))
		return
	}

	holding, err := h.Portfolio.Add(ctx, userID, req.Asset, req.Quantity)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, holding, http.StatusOK)
}

func (h *Handler) GetHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, err := userIDParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	asset, err := services.NormalizeSymbol(chi.URLParam(r, "asset"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	quantity, err := h.Portfolio.HoldingQuantity(ctx, userID, asset)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.HoldingResponse{UserID: userID, Asset: asset, Quantity: quantity}, http.StatusOK)
}

// RemoveHolding withdraws ?quantity= of the asset.
func (h *Handler) RemoveHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, err := userIDParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	quantity, err := decimalQuery(r, "quantity")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	holding, err := h.Portfolio.Remove(ctx, userID, chi.URLParam(r, "asset"), quantity)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, holding, http.StatusOK)
}

func (h *Handler) GetHoldingValue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, err := userIDParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	value, err := h.Portfolio.AssetValue(ctx, userID, chi.URLParam(r, "asset"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, value, http.StatusOK)
}

func (h *Handler) GetValuation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, err := userIDParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	valuation, err := h.Portfolio.Valuation(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, valuation, http.StatusOK)
}

// ExportValuation answers with the valuation and snapshot history as an XLSX workbook.
func (h *Handler) ExportValuation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	userID, err := userIDParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	valuation, err := h.Portfolio.Valuation(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	snapshots, err := h.Snapshots.ListSnapshots(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	xlsxFile, err := h.Reports.GenerateValuationXLSX(ctx, valuation, snapshots)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	defer xlsxFile.Close()

	filename := fmt.Sprintf("portfolio_%d_%s.xlsx", userID, utils.FormatDate(time.Now()))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := xlsxFile.Write(w); err != nil {
		h.Logger.WithError(err).Warning("writing valuation export")
	}
}

func (h *Handler) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, err := userIDParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	snapshots, err := h.Snapshots.ListSnapshots(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, snapshots, http.StatusOK)
}
