package realtime

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType тип изменения строки
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event уведомление об изменении строки таблицы.
// Клиент получает его и перечитывает данные.
type Event struct {
	Topic     string    `json:"topic"`
	Table     string    `json:"table"`
	Type      EventType `json:"type"`
	RecordID  uuid.UUID `json:"record_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Broker публикует события и раздает их подписчикам топиков
type Broker interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe возвращает канал событий и функцию отписки.
	// Канал закрывается после отписки или отмены контекста.
	Subscribe(ctx context.Context, topics ...string) (<-chan Event, func(), error)
	Close() error
}

// OrderTransactionsTopic топик изменений леджера заказа
func OrderTransactionsTopic(orderID uuid.UUID) string {
	return "order_transactions:order_id=eq." + orderID.String()
}

// WalletTransactionsTopic топик изменений операций кошелька пользователя
func WalletTransactionsTopic(userID uuid.UUID) string {
	return "transactions:user_id=eq." + userID.String()
}

// OrdersTopic топик изменений заказов пользователя
func OrdersTopic(userID uuid.UUID) string {
	return "orders:user_id=eq." + userID.String()
}

// NewEvent создает событие с текущим временем
func NewEvent(topic, table string, eventType EventType, recordID uuid.UUID) Event {
	return Event{
		Topic:     topic,
		Table:     table,
		Type:      eventType,
		RecordID:  recordID,
		Timestamp: time.Now().UTC(),
	}
}
