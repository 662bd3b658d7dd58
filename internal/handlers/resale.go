package handlers

import (
	"net/http"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ResaleHandler struct {
	listService domain.ResaleListService
	logger      *zap.Logger
}

func NewResaleHandler(listService domain.ResaleListService, logger *zap.Logger) *ResaleHandler {
	return &ResaleHandler{
		listService: listService,
		logger:      logger,
	}
}

type addAutomationRequest struct {
	AutomationID uuid.UUID `json:"automation_id"`
}

type toggleRequest struct {
	IsActive *bool `json:"is_active"`
}

func (h *ResaleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.listService.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "failed to list user automations")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, items)
}

func (h *ResaleHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req addAutomationRequest
	if err := decodeJSON(r, &req); err != nil || req.AutomationID == uuid.Nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ua, err := h.listService.Add(r.Context(), userID, req.AutomationID)
	if err != nil {
		writeError(w, h.logger, err, "failed to add user automation")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, ua)
}

func (h *ResaleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	automationID, ok := uuidParam(r, "automationID")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.listService.Remove(r.Context(), userID, automationID); err != nil {
		writeError(w, h.logger, err, "failed to remove user automation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ResaleHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	automationID, ok := uuidParam(r, "automationID")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil || req.IsActive == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.listService.SetActive(r.Context(), userID, automationID, *req.IsActive); err != nil {
		writeError(w, h.logger, err, "failed to toggle user automation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
