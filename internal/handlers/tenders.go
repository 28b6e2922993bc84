package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"procurement/internal/service"
	"procurement/models"
)

type createTenderRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	ServiceType     string    `json:"serviceType"`
	OrganizationID  uuid.UUID `json:"organizationId"`
	CreatorUsername string    `json:"creatorUsername"`
}

func (req *createTenderRequest) validate() error {
	if req.Name == "" || len(req.Name) > 100 {
		return errors.New("name is required and max length 100")
	}
	if req.Description == "" || len(req.Description) > 500 {
		return errors.New("description is required and max length 500")
	}
	if _, err := models.ParseServiceType(req.ServiceType); err != nil {
		return err
	}
	if req.OrganizationID == uuid.Nil {
		return errors.New("organizationId is required")
	}
	if req.CreatorUsername == "" {
		return errors.New("creatorUsername is required")
	}
	return nil
}

// CreateTenderHandler обрабатывает POST /api/tenders/new запрос
func (h *Handler) CreateTenderHandler(w http.ResponseWriter, r *http.Request) {
	// Ограничение размера тела, чтобы избежать DoS
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req createTenderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.requireResponsible(w, r, req.CreatorUsername, req.OrganizationID) {
		return
	}

	serviceType, _ := models.ParseServiceType(req.ServiceType)
	tender := models.Tender{
		Name:            req.Name,
		Description:     req.Description,
		ServiceType:     serviceType,
		Status:          models.TenderCreated, // статус при создании всегда Created
		OrganizationID:  req.OrganizationID,
		CreatorUsername: req.CreatorUsername,
	}

	if err := h.Store.CreateTender(r.Context(), &tender); err != nil {
		http.Error(w, "Failed to create tender", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(tender)
}

// GetTendersHandler возвращает список тендеров с фильтрами по типу serviceType
func (h *Handler) GetTendersHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	// Фильтр service_type - может быть несколько через query param,
	// неизвестные значения отбрасываются
	var filteredTypes []models.ServiceType
	for _, v := range r.URL.Query()["service_type"] {
		if st, err := models.ParseServiceType(v); err == nil {
			filteredTypes = append(filteredTypes, st)
		}
	}

	tenders, err := h.Store.GetTenders(r.Context(), filteredTypes, params.Limit, params.Offset)
	if err != nil {
		http.Error(w, "Failed to get tenders", http.StatusInternalServerError)
		return
	}

	writeJSON(w, tenders)
}

// GetUserTendersHandler возвращает список тендеров для пользователя username
func (h *Handler) GetUserTendersHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		http.Error(w, "Missing username parameter", http.StatusBadRequest)
		return
	}

	if _, err := h.Store.GetEmployeeByUsername(r.Context(), username); err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	tenders, err := h.Store.GetUserTenders(r.Context(), username, params.Limit, params.Offset)
	if err != nil {
		http.Error(w, "Failed to get user tenders", http.StatusInternalServerError)
		return
	}

	writeJSON(w, tenders)
}

// EditTenderHandler обрабатывает PATCH /api/tenders/{tenderId}/edit
func (h *Handler) EditTenderHandler(w http.ResponseWriter, r *http.Request) {
	tenderID, err := parseUUIDParam(r, "tenderId")
	if err != nil {
		http.Error(w, "Invalid tenderId", http.StatusBadRequest)
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "Missing username", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Cannot read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		ServiceType *string `json:"serviceType"`
	}
	if err := json.Unmarshal(body, &input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	tender, err := h.Store.GetTender(r.Context(), tenderID)
	if err != nil {
		http.Error(w, "Tender not found", http.StatusNotFound)
		return
	}

	if !h.requireResponsible(w, r, username, tender.OrganizationID) {
		return
	}

	patch := service.TenderPatch{
		Name:        input.Name,
		Description: input.Description,
	}
	if input.Name != nil && (*input.Name == "" || len(*input.Name) > 100) {
		http.Error(w, "Invalid name length", http.StatusBadRequest)
		return
	}
	if input.Description != nil && (*input.Description == "" || len(*input.Description) > 500) {
		http.Error(w, "Invalid description length", http.StatusBadRequest)
		return
	}
	if input.ServiceType != nil {
		st, err := models.ParseServiceType(*input.ServiceType)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		patch.ServiceType = &st
	}

	updated, err := h.Engine.UpdateTender(r.Context(), tenderID, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, updated)
}

// ChangeTenderStatusHandler обрабатывает PUT /api/tenders/{tenderId}/status
func (h *Handler) ChangeTenderStatusHandler(w http.ResponseWriter, r *http.Request) {
	tenderID, err := parseUUIDParam(r, "tenderId")
	if err != nil {
		http.Error(w, "Invalid tenderId", http.StatusBadRequest)
		return
	}

	username := r.URL.Query().Get("username")
	statusStr := r.URL.Query().Get("status")
	if username == "" || statusStr == "" {
		http.Error(w, "Missing status or username", http.StatusBadRequest)
		return
	}

	newStatus, err := models.ParseTenderStatus(statusStr)
	if err != nil {
		http.Error(w, "Invalid status value", http.StatusBadRequest)
		return
	}

	tender, err := h.Store.GetTender(r.Context(), tenderID)
	if err != nil {
		http.Error(w, "Tender not found", http.StatusNotFound)
		return
	}

	if !h.requireResponsible(w, r, username, tender.OrganizationID) {
		return
	}

	// Допустимые переходы: Created -> Published -> Closed
	switch tender.Status {
	case models.TenderCreated:
		if newStatus != models.TenderPublished {
			http.Error(w, "Invalid status transition", http.StatusBadRequest)
			return
		}
	case models.TenderPublished:
		if newStatus != models.TenderClosed {
			http.Error(w, "Invalid status transition", http.StatusBadRequest)
			return
		}
	case models.TenderClosed:
		http.Error(w, "Tender is already closed", http.StatusBadRequest)
		return
	}

	updated, err := h.Engine.UpdateTender(r.Context(), tenderID, service.TenderPatch{Status: &newStatus})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, updated)
}

// RollbackTenderHandler обрабатывает PUT /api/tenders/{tenderId}/rollback/{version}
func (h *Handler) RollbackTenderHandler(w http.ResponseWriter, r *http.Request) {
	tenderID, err := parseUUIDParam(r, "tenderId")
	if err != nil {
		http.Error(w, "invalid tender ID", http.StatusBadRequest)
		return
	}
	version, err := strconv.Atoi(chi.URLParam(r, "version"))
	if err != nil || version < 1 {
		http.Error(w, "invalid version number", http.StatusBadRequest)
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "missing username", http.StatusBadRequest)
		return
	}

	tender, err := h.Store.GetTender(r.Context(), tenderID)
	if err != nil {
		http.Error(w, "tender not found", http.StatusNotFound)
		return
	}

	if !h.requireResponsible(w, r, username, tender.OrganizationID) {
		return
	}

	restored, err := h.Engine.RollbackTender(r.Context(), tenderID, version)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, restored)
}
