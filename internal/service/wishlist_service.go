package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"wishlist/internal/domain"
	"wishlist/internal/events"
	"wishlist/internal/metrics"
	"wishlist/internal/models"
	"wishlist/internal/repository"
	"wishlist/internal/scoring"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrConcurrencyExhausted reports that the conflict-retry loop ran out of
// attempts under sustained contention. Callers may retry at a higher level.
var ErrConcurrencyExhausted = errors.New("write retries exhausted")

type WishlistService struct {
	repo     domain.ItemRepository
	eventBus domain.EventPublisher
	retry    RetryPolicy
	logger   *zerolog.Logger
}

func NewWishlistService(repo domain.ItemRepository, eventBus domain.EventPublisher, retry RetryPolicy, logger *zerolog.Logger) *WishlistService {
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryPolicy()
	}
	return &WishlistService{
		repo:     repo,
		eventBus: eventBus,
		retry:    retry,
		logger:   logger,
	}
}

// List returns the collection ordered by score descending. Equal scores keep
// their insertion order: the stored sequence is append-ordered and the sort
// is stable.
func (s *WishlistService) List(ctx context.Context) ([]models.WishItem, error) {
	items, _, err := s.repo.ReadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items, nil
}

// Create validates the draft, mints a random id and appends the item. A
// random id sidesteps the double-assignment race a counter would have under
// concurrent creates.
func (s *WishlistService) Create(ctx context.Context, draft models.WishItemDraft) (*models.WishItem, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	item := models.WishItem{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Category:    draft.Category,
		DesireLevel: draft.DesireLevel,
		Status:      draft.Status,
		Reason:      draft.Reason,
		Memo:        draft.Memo,
		Price:       draft.Price,
		Score:       scoring.Score(draft.Category, draft.DesireLevel, draft.Status),
	}

	err := s.writeWithRetry(ctx, "create", func(items []models.WishItem) ([]models.WishItem, error) {
		return append(items, item), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", item.ID).Str("name", item.Name).Float64("score", item.Score).Msg("item created")
	if err := s.eventBus.PublishJSON(events.EventItemCreated, events.NewItemEventPayload(item)); err != nil {
		s.logger.Warn().Err(err).Msg("publish item_created event")
	}
	return &item, nil
}

// Update merges the patch over the stored item and recomputes the score
// unconditionally, so the derived value can never drift from its inputs.
func (s *WishlistService) Update(ctx context.Context, id string, patch models.WishItemPatch) (*models.WishItem, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated models.WishItem
	err := s.writeWithRetry(ctx, "update", func(items []models.WishItem) ([]models.WishItem, error) {
		idx := indexByID(items, id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", models.ErrNotFound, id)
		}

		merged := patch.Apply(items[idx])
		merged.ID = id
		merged.Score = scoring.Score(merged.Category, merged.DesireLevel, merged.Status)
		items[idx] = merged
		updated = merged
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", id).Float64("score", updated.Score).Msg("item updated")
	if err := s.eventBus.PublishJSON(events.EventItemUpdated, events.NewItemEventPayload(updated)); err != nil {
		s.logger.Warn().Err(err).Msg("publish item_updated event")
	}
	return &updated, nil
}

// Remove deletes the item. Removing an id already gone (for example after a
// concurrent delete) reports ErrNotFound rather than silent success.
func (s *WishlistService) Remove(ctx context.Context, id string) error {
	var removed models.WishItem
	err := s.writeWithRetry(ctx, "remove", func(items []models.WishItem) ([]models.WishItem, error) {
		idx := indexByID(items, id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", models.ErrNotFound, id)
		}
		removed = items[idx]
		return append(items[:idx], items[idx+1:]...), nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("item_id", id).Msg("item removed")
	if err := s.eventBus.PublishJSON(events.EventItemRemoved, events.NewItemEventPayload(removed)); err != nil {
		s.logger.Warn().Err(err).Msg("publish item_removed event")
	}
	return nil
}

// writeWithRetry runs one read-modify-write cycle per attempt, re-reading the
// snapshot before every retry so the mutation is always applied to the version
// it is checked against.
func (s *WishlistService) writeWithRetry(ctx context.Context, operation string, mutate func([]models.WishItem) ([]models.WishItem, error)) error {
	for attempt := 1; attempt <= s.retry.MaxAttempts; attempt++ {
		items, version, err := s.repo.ReadSnapshot(ctx)
		if err != nil {
			return err
		}

		mutated, err := mutate(items)
		if err != nil {
			return err
		}

		_, err = s.repo.WriteSnapshot(ctx, mutated, version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}

		metrics.IncVersionConflict()
		if attempt == s.retry.MaxAttempts {
			break
		}

		metrics.IncWriteRetry(operation)
		s.logger.Debug().Str("operation", operation).Int("attempt", attempt).Msg("snapshot conflict, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retry.NextDelay(attempt)):
		}
	}

	s.logger.Error().Str("operation", operation).Int("attempts", s.retry.MaxAttempts).Msg("write retries exhausted")
	return fmt.Errorf("%w: %s after %d attempts", ErrConcurrencyExhausted, operation, s.retry.MaxAttempts)
}

func indexByID(items []models.WishItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
