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

type createBidRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	TenderID        uuid.UUID `json:"tenderId"`
	OrganizationID  uuid.UUID `json:"organizationId"`
	CreatorUsername string    `json:"creatorUsername"`
}

func (req *createBidRequest) validate() error {
	if req.Name == "" || len(req.Name) > 100 {
		return errors.New("name is required and max length 100")
	}
	if req.Description == "" || len(req.Description) > 500 {
		return errors.New("description is required and max length 500")
	}
	if req.TenderID == uuid.Nil {
		return errors.New("tenderId is required")
	}
	if req.OrganizationID == uuid.Nil {
		return errors.New("organizationId is required")
	}
	if req.CreatorUsername == "" {
		return errors.New("creatorUsername is required")
	}
	return nil
}

func (h *Handler) CreateBidHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req createBidRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Store.GetTender(r.Context(), req.TenderID); err != nil {
		http.Error(w, "Tender not found", http.StatusNotFound)
		return
	}
	if _, err := h.Store.GetOrganization(r.Context(), req.OrganizationID); err != nil {
		http.Error(w, "Organization not found", http.StatusUnauthorized)
		return
	}

	if !h.requireResponsible(w, r, req.CreatorUsername, req.OrganizationID) {
		return
	}

	bid := models.Bid{
		Name:            req.Name,
		Description:     req.Description,
		Status:          models.BidCreated, // Статус при создании
		TenderID:        req.TenderID,
		OrganizationID:  req.OrganizationID,
		CreatorUsername: req.CreatorUsername,
	}

	if err := h.Store.CreateBid(r.Context(), &bid); err != nil {
		http.Error(w, "Failed to create bid", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(bid)
}

func (h *Handler) GetUserBidsHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		http.Error(w, "Missing username parameter", http.StatusBadRequest)
		return
	}

	bids, err := h.Store.GetUserBids(r.Context(), username, params.Limit, params.Offset)
	if err != nil {
		http.Error(w, "Failed to get user bids", http.StatusInternalServerError)
		return
	}

	writeJSON(w, bids)
}

func (h *Handler) GetBidsForTenderHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	tenderID, err := parseUUIDParam(r, "tenderId")
	if err != nil {
		http.Error(w, "Invalid tenderId", http.StatusBadRequest)
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "Missing username parameter", http.StatusBadRequest)
		return
	}

	bids, err := h.Store.GetBidsForTender(r.Context(), tenderID, username, params.Limit, params.Offset)
	if err != nil {
		http.Error(w, "Failed to get bids for tender", http.StatusInternalServerError)
		return
	}

	writeJSON(w, bids)
}

func (h *Handler) EditBidHandler(w http.ResponseWriter, r *http.Request) {
	bidID, err := parseUUIDParam(r, "bidId")
	if err != nil {
		http.Error(w, "Invalid bidId", http.StatusBadRequest)
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "Missing username parameter", http.StatusBadRequest)
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
	}
	if err := json.Unmarshal(body, &input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	bid, err := h.Store.GetBid(r.Context(), bidID)
	if err != nil {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}

	// Автор предложения правит свое, остальные — только как ответственные
	employee, err := h.Store.GetEmployeeByUsername(r.Context(), username)
	if err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}
	if employee.Username != bid.CreatorUsername {
		isResponsible, err := h.Store.IsUserResponsibleForOrganization(r.Context(), employee.ID, bid.OrganizationID)
		if err != nil || !isResponsible {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	if input.Name != nil && (*input.Name == "" || len(*input.Name) > 100) {
		http.Error(w, "Invalid name length", http.StatusBadRequest)
		return
	}
	if input.Description != nil && (*input.Description == "" || len(*input.Description) > 500) {
		http.Error(w, "Invalid description length", http.StatusBadRequest)
		return
	}

	updated, err := h.Engine.UpdateBid(r.Context(), bidID, service.BidPatch{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, updated)
}

func (h *Handler) UpdateBidStatusHandler(w http.ResponseWriter, r *http.Request) {
	bidID, err := parseUUIDParam(r, "bidId")
	if err != nil {
		http.Error(w, "Invalid bidId", http.StatusBadRequest)
		return
	}

	statusStr := r.URL.Query().Get("status")
	username := r.URL.Query().Get("username")
	if statusStr == "" || username == "" {
		http.Error(w, "Missing status or username", http.StatusBadRequest)
		return
	}

	status, err := models.ParseBidStatus(statusStr)
	if err != nil {
		http.Error(w, "Invalid status value", http.StatusBadRequest)
		return
	}

	bid, err := h.Store.GetBid(r.Context(), bidID)
	if err != nil {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}

	if !h.requireResponsible(w, r, username, bid.OrganizationID) {
		return
	}

	updated, err := h.Engine.UpdateBid(r.Context(), bidID, service.BidPatch{Status: &status})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, updated)
}

func (h *Handler) RollbackBidHandler(w http.ResponseWriter, r *http.Request) {
	bidID, err := parseUUIDParam(r, "bidId")
	if err != nil {
		http.Error(w, "Invalid bidId", http.StatusBadRequest)
		return
	}
	version, err := strconv.Atoi(chi.URLParam(r, "version"))
	if err != nil || version < 1 {
		http.Error(w, "Invalid version", http.StatusBadRequest)
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "Missing username", http.StatusBadRequest)
		return
	}

	bid, err := h.Store.GetBid(r.Context(), bidID)
	if err != nil {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}

	if !h.requireResponsible(w, r, username, bid.OrganizationID) {
		return
	}

	restored, err := h.Engine.RollbackBid(r.Context(), bidID, version)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, restored)
}

func (h *Handler) SubmitBidDecisionHandler(w http.ResponseWriter, r *http.Request) {
	bidID, err := parseUUIDParam(r, "bidId")
	if err != nil {
		http.Error(w, "Invalid bidId", http.StatusBadRequest)
		return
	}

	decisionStr := r.URL.Query().Get("decision")
	username := r.URL.Query().Get("username")
	if decisionStr == "" || username == "" {
		http.Error(w, "Missing required parameters", http.StatusBadRequest)
		return
	}

	decision, err := models.ParseDecision(decisionStr)
	if err != nil {
		http.Error(w, "Invalid decision", http.StatusBadRequest)
		return
	}

	bid, err := h.Store.GetBid(r.Context(), bidID)
	if err != nil {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}

	if !h.requireResponsible(w, r, username, bid.OrganizationID) {
		return
	}

	updated, err := h.Engine.SubmitDecision(r.Context(), bidID, decision, username)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, updated)
}

func (h *Handler) CreateBidFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	bidID, err := parseUUIDParam(r, "bidId")
	if err != nil {
		http.Error(w, "Invalid bidId", http.StatusBadRequest)
		return
	}

	username := r.URL.Query().Get("username")
	feedback := r.URL.Query().Get("bidFeedback")
	if username == "" || feedback == "" {
		http.Error(w, "Missing username or feedback", http.StatusBadRequest)
		return
	}
	if len(feedback) > 1000 {
		http.Error(w, "Feedback max length 1000", http.StatusBadRequest)
		return
	}

	bid, err := h.Store.GetBid(r.Context(), bidID)
	if err != nil {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}

	if !h.requireResponsible(w, r, username, bid.OrganizationID) {
		return
	}

	review := &models.BidReview{
		BidID:       bidID,
		Description: feedback,
		Username:    username,
	}
	if err := h.Store.CreateBidReview(r.Context(), review); err != nil {
		http.Error(w, "Failed to submit feedback", http.StatusInternalServerError)
		return
	}

	writeJSON(w, review)
}

func (h *Handler) GetBidReviewsHandler(w http.ResponseWriter, r *http.Request) {
	tenderID, err := parseUUIDParam(r, "tenderId")
	if err != nil {
		http.Error(w, "Invalid tenderId", http.StatusBadRequest)
		return
	}

	authorUsername := r.URL.Query().Get("authorUsername")
	requesterUsername := r.URL.Query().Get("requesterUsername")
	if authorUsername == "" || requesterUsername == "" {
		http.Error(w, "Missing required parameters", http.StatusBadRequest)
		return
	}

	// Отзывы видит только ответственный за организацию тендера
	tender, err := h.Store.GetTender(r.Context(), tenderID)
	if err != nil {
		http.Error(w, "Tender not found", http.StatusNotFound)
		return
	}

	if !h.requireResponsible(w, r, requesterUsername, tender.OrganizationID) {
		return
	}

	reviews, err := h.Store.GetBidReviewsByAuthorForTender(r.Context(), authorUsername, tenderID)
	if err != nil {
		http.Error(w, "Failed to get reviews", http.StatusInternalServerError)
		return
	}

	writeJSON(w, reviews)
}
