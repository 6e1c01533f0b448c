package events

import (
	"encoding/json"
	"testing"

	"wishlist/internal/models"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	var callCount int

	handler := func(event *Event) error {
		received = event
		callCount++
		return nil
	}

	bus.Subscribe(EventItemCreated, handler)

	item := models.WishItem{
		ID:          "id-1",
		Name:        "kettle",
		Category:    models.CategoryNecessity,
		DesireLevel: 2,
		Status:      models.StatusWanted,
		Score:       3,
	}
	if err := bus.PublishJSON(EventItemCreated, NewItemEventPayload(item)); err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}

	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
	if received.Type != EventItemCreated {
		t.Errorf("expected type %s, got %s", EventItemCreated, received.Type)
	}

	var decoded ItemEventPayload
	if err := json.Unmarshal(received.Payload, &decoded); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if decoded.ID != "id-1" || decoded.Name != "kettle" || decoded.Score != 3 {
		t.Errorf("unexpected payload: %+v", decoded)
	}
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()
	var count1, count2 int

	bus.Subscribe(EventItemRemoved, func(_ *Event) error { count1++; return nil })
	bus.Subscribe(EventItemRemoved, func(_ *Event) error { count2++; return nil })

	bus.Publish(&Event{Type: EventItemRemoved})

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both handlers to be called once, got %d and %d", count1, count2)
	}
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus()

	// publishing with no subscribers must not panic
	if err := bus.PublishJSON(EventItemUpdated, map[string]string{"x": "y"}); err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}
}

func TestEventBusNilReceiver(t *testing.T) {
	var bus *EventBus
	if err := bus.PublishJSON(EventItemCreated, nil); err != nil {
		t.Fatalf("nil bus should silently discard, got %v", err)
	}
}
