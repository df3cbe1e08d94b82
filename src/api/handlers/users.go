package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request payload"))
		return
	}

	user, err := h.Users.Create(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, user, http.StatusCreated)
}

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, users, http.StatusOK)
}

func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := userIDParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, user, http.StatusOK)
}

func (h *Handler) GetUserByName(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.Users.GetByName(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, user, http.StatusOK)
}

func (h *Handler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, chi.URLParam(r, "email"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, user, http.StatusOK)
}

// UpdateUser changes a single field. new_value may be sent as a JSON string or a
// bare number.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := userIDParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request payload"))
		return
	}

	newValue, err := rawValue(req.NewValue)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	user, err := h.Users.Update(ctx, id, req.Param, newValue)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, user, http.StatusOK)
}

func rawValue(raw json.RawMessage) (string, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return "", utils.BadRequest("new_value is required")
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", utils.BadRequest("invalid new_value")
		}
		return s, nil
	}
	return text, nil
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := userIDParam(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Users.Delete(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
