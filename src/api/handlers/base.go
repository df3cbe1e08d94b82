package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cryptoportfolio/src/clients/marketdata"
	"cryptoportfolio/src/repositories"
	"cryptoportfolio/src/services"
	"cryptoportfolio/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const requestTimeout = 10 * time.Second

type Handler struct {
	Users     services.UserServiceI
	Portfolio services.PortfolioServiceI
	Assets    services.AssetServiceI
	Analytics services.AnalyticsServiceI
	Snapshots services.SnapshotServiceI
	Reports   services.ReportServiceI
	Logger    *logrus.Logger
}

func NewHandler(repos *repositories.Repositories, client marketdata.MarketDataClientI, logger *logrus.Logger) *Handler {
	assets := services.NewAssetService(client)
	portfolio := services.NewPortfolioService(repos.Users, repos.Holdings, assets)
	return &Handler{
		Users:     services.NewUserService(repos.Users),
		Portfolio: portfolio,
		Assets:    assets,
		Analytics: services.NewAnalyticsService(client),
		Snapshots: services.NewSnapshotService(repos.Users, repos.Snapshots, portfolio),
		Reports:   services.NewReportService(),
		Logger:    logger,
	}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors writes err as {"error": message} with the status it maps to.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	status := utils.StatusFromError(err)
	message := "Unhandled error"
	if err != nil {
		message = err.Error()
	}
	if status == http.StatusGatewayTimeout {
		message = "Request timed out"
	}
	if status >= http.StatusInternalServerError {
		h.Logger.WithField("status", status).Warning(err)
	}
	h.respond(w, nil, map[string]string{"error": message}, status)
}

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		_, _ = w.Write([]byte("Im alive!"))
	} else {
		http.Error(w, "Method not available: "+r.Method, http.StatusMethodNotAllowed)
	}
}

func userIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, utils.BadRequest("invalid user id")
	}
	return id, nil
}

func intQuery(r *http.Request, name string, fallback int, required bool) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		if required {
			return 0, utils.BadRequest(name + " is required")
		}
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.BadRequest(name + " must be an integer")
	}
	return v, nil
}

func floatQuery(r *http.Request, name string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, utils.BadRequest(name + " must be a number")
	}
	return v, nil
}

func stringQuery(r *http.Request, name string, fallback string, required bool) (string, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		if required {
			return "", utils.BadRequest(name + " is required")
		}
		return fallback, nil
	}
	return raw, nil
}

func decimalQuery(r *http.Request, name string) (decimal.Decimal, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return decimal.Zero, utils.BadRequest(name + " is required")
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, utils.BadRequest(name + " must be a decimal number")
	}
	return v, nil
}
