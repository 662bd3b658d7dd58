package handlers

import (
	"net/http"

	"github.com/automation-market/marketplace/internal/domain"
	"go.uber.org/zap"
)

// AdminHandler операции администратора над заказами, леджером и выводами
type AdminHandler struct {
	orderService  domain.OrderService
	ledgerService domain.LedgerService
	walletService domain.WalletService
	policy        domain.TransitionPolicy
	logger        *zap.Logger
}

func NewAdminHandler(
	orderService domain.OrderService,
	ledgerService domain.LedgerService,
	walletService domain.WalletService,
	policy domain.TransitionPolicy,
	logger *zap.Logger,
) *AdminHandler {
	if policy == "" {
		policy = domain.TransitionPolicyStrict
	}
	return &AdminHandler{
		orderService:  orderService,
		ledgerService: ledgerService,
		walletService: walletService,
		policy:        policy,
		logger:        logger,
	}
}

type statusInfo struct {
	Status   domain.OrderStatus   `json:"status"`
	Terminal bool                 `json:"terminal"`
	Next     []domain.OrderStatus `json:"next"`
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

type settleRequest struct {
	Status domain.LineStatus `json:"status"`
}

// ListOrders возвращает все заказы, ?status= фильтрует по статусу
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := domain.OrderStatus(r.URL.Query().Get("status"))

	orders, err := h.orderService.ListAllOrders(r.Context(), status)
	if err != nil {
		writeError(w, h.logger, err, "failed to list orders")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, orders)
}

// OrderStatuses возвращает перечень статусов с переходами, которые разрешает политика
func (h *AdminHandler) OrderStatuses(w http.ResponseWriter, r *http.Request) {
	statuses := domain.AllStatuses()
	out := make([]statusInfo, 0, len(statuses))
	for _, s := range statuses {
		next := h.policy.Next(s)
		if next == nil {
			next = []domain.OrderStatus{}
		}
		out = append(out, statusInfo{Status: s, Terminal: s.IsTerminal(), Next: next})
	}

	writeJSON(w, h.logger, http.StatusOK, out)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		writeError(w, h.logger, err, "failed to update order status")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, order)
}

func (h *AdminHandler) UpdateOrderDetails(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var update domain.OrderDetailsUpdate
	if err := decodeJSON(r, &update); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	order, err := h.orderService.UpdateDetails(r.Context(), orderID, update)
	if err != nil {
		writeError(w, h.logger, err, "failed to update order details")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, order)
}

func (h *AdminHandler) CompleteLine(w http.ResponseWriter, r *http.Request) {
	lineID, ok := uuidParam(r, "lineID")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	line, err := h.ledgerService.CompleteLine(r.Context(), lineID)
	if err != nil {
		writeError(w, h.logger, err, "failed to complete ledger line")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, line)
}

func (h *AdminHandler) CancelLine(w http.ResponseWriter, r *http.Request) {
	lineID, ok := uuidParam(r, "lineID")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	line, err := h.ledgerService.CancelLine(r.Context(), lineID)
	if err != nil {
		writeError(w, h.logger, err, "failed to cancel ledger line")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, line)
}

func (h *AdminHandler) SettleWithdrawal(w http.ResponseWriter, r *http.Request) {
	txID, ok := uuidParam(r, "txID")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var req settleRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	tx, err := h.walletService.SettleWithdrawal(r.Context(), txID, req.Status)
	if err != nil {
		writeError(w, h.logger, err, "failed to settle withdrawal")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, tx)
}
