package events

import (
	"encoding/json"
	"sync"
	"time"

	"wishlist/internal/models"
)

const (
	EventItemCreated = "item_created"
	EventItemUpdated = "item_updated"
	EventItemRemoved = "item_removed"
)

// ItemEventPayload describes the item snapshot handed to event consumers.
type ItemEventPayload struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    models.Category `json:"category"`
	DesireLevel int             `json:"desire_level"`
	Status      models.Status   `json:"status"`
	Score       float64         `json:"score"`
}

// NewItemEventPayload projects a WishItem into its event form.
func NewItemEventPayload(item models.WishItem) ItemEventPayload {
	return ItemEventPayload{
		ID:          item.ID,
		Name:        item.Name,
		Category:    item.Category,
		DesireLevel: item.DesireLevel,
		Status:      item.Status,
		Score:       item.Score,
	}
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
