package handlers

import (
	"encoding/json"
	"net/http"

	"cryptoportfolio/src/utils"
	"cryptoportfolio/src/worker/controllers"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	Controller *controllers.Controller
	Logger     *logrus.Logger
}

func NewHandler(controller *controllers.Controller) *Handler {
	return &Handler{Controller: controller, Logger: controller.Logger}
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
