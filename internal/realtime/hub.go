package realtime

import (
	"context"
	"errors"
	"sync"
)

// subscriberBuffer размер буфера канала подписчика
const subscriberBuffer = 16

// ErrClosed брокер закрыт
var ErrClosed = errors.New("realtime: broker closed")

type subscriber struct {
	ch     chan Event
	done   chan struct{}
	topics []string
	once   sync.Once
}

// Hub брокер в памяти процесса. Медленный подписчик теряет события,
// но не блокирует публикацию.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*subscriber]struct{}
	closed bool
}

// NewHub создает пустой Hub
func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*subscriber]struct{})}
}

// Publish рассылает событие подписчикам топика
func (h *Hub) Publish(_ context.Context, ev Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrClosed
	}

	for sub := range h.topics[ev.Topic] {
		select {
		case sub.ch <- ev:
		default:
		}
	}
	return nil
}

// Subscribe подписывает на один или несколько топиков
func (h *Hub) Subscribe(ctx context.Context, topics ...string) (<-chan Event, func(), error) {
	sub := &subscriber{
		ch:     make(chan Event, subscriberBuffer),
		done:   make(chan struct{}),
		topics: topics,
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, nil, ErrClosed
	}
	for _, topic := range topics {
		if h.topics[topic] == nil {
			h.topics[topic] = make(map[*subscriber]struct{})
		}
		h.topics[topic][sub] = struct{}{}
	}
	h.mu.Unlock()

	cancel := func() { h.remove(sub) }

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-sub.done:
		}
	}()

	return sub.ch, cancel, nil
}

func (h *Hub) remove(sub *subscriber) {
	sub.once.Do(func() {
		h.mu.Lock()
		for _, topic := range sub.topics {
			delete(h.topics[topic], sub)
			if len(h.topics[topic]) == 0 {
				delete(h.topics, topic)
			}
		}
		h.mu.Unlock()
		close(sub.done)
		close(sub.ch)
	})
}

// Close отписывает всех подписчиков
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true

	subs := make(map[*subscriber]struct{})
	for _, set := range h.topics {
		for sub := range set {
			subs[sub] = struct{}{}
		}
	}
	h.mu.Unlock()

	for sub := range subs {
		h.remove(sub)
	}
	return nil
}

// Ping сообщает ErrClosed после Close
func (h *Hub) Ping(context.Context) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrClosed
	}
	return nil
}

func (h *Hub) subscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
