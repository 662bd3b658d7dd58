package handlers

import (
	"net/http"

	"github.com/automation-market/marketplace/internal/domain"
	"go.uber.org/zap"
)

type SupportHandler struct {
	supportService domain.SupportService
	requestService domain.CustomRequestService
	logger         *zap.Logger
}

func NewSupportHandler(supportService domain.SupportService, requestService domain.CustomRequestService, logger *zap.Logger) *SupportHandler {
	return &SupportHandler{
		supportService: supportService,
		requestService: requestService,
		logger:         logger,
	}
}

type replyRequest struct {
	Message string `json:"message"`
}

type requestStatusUpdate struct {
	Status     domain.CustomRequestStatus `json:"status"`
	AdminNotes string                     `json:"admin_notes"`
}

func (h *SupportHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input domain.TicketInput
	if err := decodeJSON(r, &input); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ticket, err := h.supportService.CreateTicket(r.Context(), userID, input)
	if err != nil {
		writeError(w, h.logger, err, "failed to create ticket")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, ticket)
}

func (h *SupportHandler) GetTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tickets, err := h.supportService.GetTickets(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "failed to get tickets")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, tickets)
}

// GetTicket отдает тикет с тредом. Администратор видит любой тикет.
func (h *SupportHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ticketID, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ticket, err := h.supportService.GetTicket(r.Context(), userID, ticketID, IsAdmin(r.Context()))
	if err != nil {
		writeError(w, h.logger, err, "failed to get ticket")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, ticket)
}

// Reply добавляет сообщение. Ответ администратора помечается как ответ поддержки.
func (h *SupportHandler) Reply(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ticketID, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var req replyRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	msg, err := h.supportService.Reply(r.Context(), userID, ticketID, req.Message, IsAdmin(r.Context()))
	if err != nil {
		writeError(w, h.logger, err, "failed to reply to ticket")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, msg)
}

func (h *SupportHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	status := domain.TicketStatus(r.URL.Query().Get("status"))

	tickets, err := h.supportService.ListTickets(r.Context(), status)
	if err != nil {
		writeError(w, h.logger, err, "failed to list tickets")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, tickets)
}

func (h *SupportHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var update domain.TicketUpdate
	if err := decodeJSON(r, &update); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.supportService.UpdateTicket(r.Context(), ticketID, update); err != nil {
		writeError(w, h.logger, err, "failed to update ticket")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SupportHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input domain.CustomRequestInput
	if err := decodeJSON(r, &input); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	req, err := h.requestService.Create(r.Context(), userID, input)
	if err != nil {
		writeError(w, h.logger, err, "failed to create custom request")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, req)
}

func (h *SupportHandler) GetRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reqs, err := h.requestService.GetMine(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "failed to get custom requests")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, reqs)
}

func (h *SupportHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.requestService.ListAll(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "failed to list custom requests")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, reqs)
}

func (h *SupportHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var req requestStatusUpdate
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.requestService.UpdateStatus(r.Context(), id, req.Status, req.AdminNotes); err != nil {
		writeError(w, h.logger, err, "failed to update custom request")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
