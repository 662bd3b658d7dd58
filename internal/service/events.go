package service

import (
	"context"

	"github.com/automation-market/marketplace/internal/realtime"
	"github.com/google/uuid"
)

// Таблицы, об изменениях которых сообщает change feed
const (
	tableOrders            = "orders"
	tableOrderTransactions = "order_transactions"
	tableTransactions      = "transactions"
)

// publish отправляет событие изменения. Ошибка брокера не отменяет
// уже зафиксированную операцию: клиент перечитает данные при следующем запросе.
func publish(ctx context.Context, broker realtime.Broker, topic, table string, eventType realtime.EventType, recordID uuid.UUID) {
	if broker == nil {
		return
	}
	_ = broker.Publish(ctx, realtime.NewEvent(topic, table, eventType, recordID))
}
