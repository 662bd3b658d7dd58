package handlers

import (
	"net/http"
	"time"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/realtime"
	"github.com/starfederation/datastar-go/datastar"
	"go.uber.org/zap"
)

// RealtimeHandler отдает ленты изменений через Server-Sent Events.
// Клиент получает уведомление и перечитывает данные.
type RealtimeHandler struct {
	broker       realtime.Broker
	orderService domain.OrderService
	logger       *zap.Logger
	keepAlive    time.Duration
}

func NewRealtimeHandler(broker realtime.Broker, orderService domain.OrderService, logger *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		broker:       broker,
		orderService: orderService,
		logger:       logger,
		keepAlive:    15 * time.Second,
	}
}

// OrderTransactions поток изменений леджера заказа владельца
func (h *RealtimeHandler) OrderTransactions(w http.ResponseWriter, r *http.Request) {
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

	if _, err := h.orderService.GetOrder(r.Context(), userID, orderID); err != nil {
		writeError(w, h.logger, err, "failed to get order for stream")
		return
	}

	h.stream(w, r, realtime.OrderTransactionsTopic(orderID))
}

// Wallet поток изменений операций кошелька и заказов пользователя
func (h *RealtimeHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.stream(w, r, realtime.WalletTransactionsTopic(userID), realtime.OrdersTopic(userID))
}

// streamSignals сигналы, которые поток передает клиенту
type streamSignals struct {
	Connected bool            `json:"connected,omitempty"`
	Ping      int64           `json:"ping,omitempty"`
	Event     *realtime.Event `json:"event,omitempty"`
}

func (h *RealtimeHandler) stream(w http.ResponseWriter, r *http.Request, topics ...string) {
	events, unsubscribe, err := h.broker.Subscribe(r.Context(), topics...)
	if err != nil {
		h.logger.Error("failed to subscribe", zap.Strings("topics", topics), zap.Error(err))
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	defer unsubscribe()

	// Поток живет дольше WriteTimeout сервера
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})
	w.Header().Set("X-Accel-Buffering", "no")

	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(streamSignals{Connected: true}); err != nil {
		h.logger.Warn("failed to open stream", zap.Error(err))
		return
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case t := <-ticker.C:
			if err := sse.MarshalAndPatchSignals(streamSignals{Ping: t.Unix()}); err != nil {
				return
			}
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := sse.MarshalAndPatchSignals(streamSignals{Event: &ev}); err != nil {
				h.logger.Debug("stream closed", zap.String("topic", ev.Topic), zap.Error(err))
				return
			}
		}
	}
}
