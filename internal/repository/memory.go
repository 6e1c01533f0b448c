package repository

import (
	"context"
	"sync"

	"wishlist/internal/models"
)

// MemoryItemRepository keeps the collection in process memory. Used when Redis
// is not configured and as the storage for tests. The mutex is the in-process
// single-writer section: no two writes to the collection interleave, and the
// version check happens under the same lock as the swap.
type MemoryItemRepository struct {
	mu      sync.Mutex
	items   []models.WishItem
	version int64
}

func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{}
}

func (r *MemoryItemRepository) ReadSnapshot(ctx context.Context) ([]models.WishItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]models.WishItem, len(r.items))
	copy(items, r.items)
	return items, r.version, nil
}

func (r *MemoryItemRepository) WriteSnapshot(ctx context.Context, items []models.WishItem, expectedVersion int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.version != expectedVersion {
		return 0, ErrVersionConflict
	}

	stored := make([]models.WishItem, len(items))
	copy(stored, items)
	r.items = stored
	r.version++
	return r.version, nil
}
