package handlers

import (
	"net/http"

	"github.com/automation-market/marketplace/internal/domain"
	"go.uber.org/zap"
)

type OrdersHandler struct {
	orderService  domain.OrderService
	ledgerService domain.LedgerService
	logger        *zap.Logger
}

func NewOrdersHandler(orderService domain.OrderService, ledgerService domain.LedgerService, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		orderService:  orderService,
		ledgerService: ledgerService,
		logger:        logger,
	}
}

func (h *OrdersHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input domain.OrderInput
	if err := decodeJSON(r, &input); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	order, err := h.orderService.SubmitOrder(r.Context(), userID, input)
	if err != nil {
		writeError(w, h.logger, err, "failed to submit order")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, order)
}

func (h *OrdersHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := h.orderService.GetOrders(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "failed to get orders")
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, orders)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, h.logger, err, "failed to get order")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, order)
}

// GetLedger возвращает леджер заказа, формируя его при первом просмотре
func (h *OrdersHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	view, err := h.ledgerService.GetOrderLedger(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, h.logger, err, "failed to get order ledger")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, view)
}
