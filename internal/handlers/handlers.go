package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"procurement/internal/service"
)

// Handler связывает HTTP-слой с хранилищем и движком версионирования.
type Handler struct {
	Store  StorageInterface
	Engine *service.Engine
}

// NewHandler создает новый Handler
func NewHandler(store StorageInterface, engine *service.Engine) *Handler {
	return &Handler{Store: store, Engine: engine}
}

// PingHandler отвечает "ok" для проверки сервера
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type PaginationParams struct {
	Limit  int
	Offset int
}

// parsePaginationParams парсит limit и offset из query, с дефолтами и ограничениями
func parsePaginationParams(r *http.Request) PaginationParams {
	params := PaginationParams{Limit: 5, Offset: 0}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 50 {
			params.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			params.Offset = o
		}
	}
	return params
}

// parseUUIDParam читает и разбирает UUID из параметра пути chi.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// respondServiceError переводит ошибку ядра в HTTP-ответ.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrPermissionDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// requireResponsible проверяет, что пользователь существует и отвечает за
// организацию. Пишет 401/403 и возвращает false, если проверка не прошла.
func (h *Handler) requireResponsible(w http.ResponseWriter, r *http.Request, username string, orgID uuid.UUID) bool {
	employee, err := h.Store.GetEmployeeByUsername(r.Context(), username)
	if err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return false
	}
	isResponsible, err := h.Store.IsUserResponsibleForOrganization(r.Context(), employee.ID, orgID)
	if err != nil || !isResponsible {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return false
	}
	return true
}
