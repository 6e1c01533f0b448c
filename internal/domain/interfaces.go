package domain

import (
	"context"

	"wishlist/internal/models"
)

// ItemRepository stores the whole wish item collection behind one logical key.
// The backend offers only whole-value get/put, so every mutation is a
// read-modify-write guarded by the version token.
type ItemRepository interface {
	// ReadSnapshot returns the current collection and its version token.
	// An unwritten collection reads as empty with version 0.
	ReadSnapshot(ctx context.Context) ([]models.WishItem, int64, error)

	// WriteSnapshot replaces the collection, succeeding only while the stored
	// version still equals expectedVersion. Returns the new version token.
	WriteSnapshot(ctx context.Context, items []models.WishItem, expectedVersion int64) (int64, error)
}

type WishlistService interface {
	List(ctx context.Context) ([]models.WishItem, error)
	Create(ctx context.Context, draft models.WishItemDraft) (*models.WishItem, error)
	Update(ctx context.Context, id string, patch models.WishItemPatch) (*models.WishItem, error)
	Remove(ctx context.Context, id string) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
