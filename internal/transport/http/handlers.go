package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/you/user-dashboard/internal/domain"
	"github.com/you/user-dashboard/internal/infra"
	uc "github.com/you/user-dashboard/internal/usecase"
)

type Handlers struct {
	UC  *uc.UserUsecase
	Log infra.Logger
}

func NewHandlers(uc *uc.UserUsecase, log infra.Logger) *Handlers {
	return &Handlers{UC: uc, Log: log}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func errorResp(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]interface{}{"error": map[string]string{"code": code, "message": msg}})
}

func (h *Handlers) ucError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, uc.ErrInvalidUser):
		errorResp(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	case errors.Is(err, uc.ErrNotFound):
		errorResp(w, http.StatusNotFound, "NOT_FOUND", "user not found")
	default:
		h.Log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		errorResp(w, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

func decodeDraft(r *http.Request) (domain.UserDraft, error) {
	var payload domain.UserDraft
	err := json.NewDecoder(r.Body).Decode(&payload)
	return payload, err
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UC.List(r.Context())
	if err != nil {
		h.ucError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeDraft(r)
	if err != nil {
		errorResp(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json")
		return
	}
	user, err := h.UC.Create(r.Context(), payload)
	if err != nil {
		h.ucError(w, r, err)
		return
	}
	h.Log.Infof("user %s created", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := domain.UserID(mux.Vars(r)["id"])
	payload, err := decodeDraft(r)
	if err != nil {
		errorResp(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json")
		return
	}
	user, err := h.UC.Update(r.Context(), id, payload)
	if err != nil {
		h.ucError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := domain.UserID(mux.Vars(r)["id"])
	if err := h.UC.Delete(r.Context(), id); err != nil {
		h.ucError(w, r, err)
		return
	}
	h.Log.Infof("user %s deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
