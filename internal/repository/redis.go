package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wishlist/internal/config"
	"wishlist/internal/models"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrVersionConflict reports that the stored snapshot moved on since it
	// was read. Transient; callers retry the whole read-modify-write cycle.
	ErrVersionConflict = errors.New("snapshot version conflict")

	// ErrStoreUnavailable reports a backend I/O failure. Not transient from
	// the caller's point of view; surfaced as-is.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// snapshotEnvelope is the single value stored under the collection key.
// Keeping the version inside the blob means one atomic GET yields both the
// collection and the token it must be checked against on write.
type snapshotEnvelope struct {
	Version int64             `json:"version"`
	Items   []models.WishItem `json:"items"`
}

// RedisItemRepository persists the whole collection as one JSON blob under a
// single Redis key. Conditional writes use WATCH/MULTI/EXEC, so the version
// check and the SET are atomic at the backend.
type RedisItemRepository struct {
	client *redis.Client
	key    string
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	client := redis.NewClient(options)

	return client
}

func NewRedisItemRepository(client *redis.Client, key string) *RedisItemRepository {
	if key == "" {
		key = "wishlist:items"
	}
	return &RedisItemRepository{
		client: client,
		key:    key,
	}
}

func (r *RedisItemRepository) ReadSnapshot(ctx context.Context) ([]models.WishItem, int64, error) {
	if r.client == nil {
		return nil, 0, fmt.Errorf("%w: redis client is nil", ErrStoreUnavailable)
	}
	val, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		// Nothing written yet: empty collection, version 0.
		return []models.WishItem{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: get snapshot: %v", ErrStoreUnavailable, err)
	}

	var envelope snapshotEnvelope
	if err := json.Unmarshal([]byte(val), &envelope); err != nil {
		return nil, 0, fmt.Errorf("%w: unmarshal snapshot: %v", ErrStoreUnavailable, err)
	}
	if envelope.Items == nil {
		envelope.Items = []models.WishItem{}
	}

	return envelope.Items, envelope.Version, nil
}

func (r *RedisItemRepository) WriteSnapshot(ctx context.Context, items []models.WishItem, expectedVersion int64) (int64, error) {
	if r.client == nil {
		return 0, fmt.Errorf("%w: redis client is nil", ErrStoreUnavailable)
	}

	newVersion := expectedVersion + 1
	data, err := json.Marshal(snapshotEnvelope{Version: newVersion, Items: items})
	if err != nil {
		return 0, fmt.Errorf("marshal snapshot: %w", err)
	}

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, r.key).Result()
		switch {
		case err == redis.Nil:
			if expectedVersion != 0 {
				return ErrVersionConflict
			}
		case err != nil:
			return fmt.Errorf("%w: get snapshot: %v", ErrStoreUnavailable, err)
		default:
			var envelope snapshotEnvelope
			if err := json.Unmarshal([]byte(current), &envelope); err != nil {
				return fmt.Errorf("%w: unmarshal snapshot: %v", ErrStoreUnavailable, err)
			}
			if envelope.Version != expectedVersion {
				return ErrVersionConflict
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key, data, 0)
			return nil
		})
		return err
	}

	err = r.client.Watch(ctx, txf, r.key)
	if errors.Is(err, redis.TxFailedErr) {
		// The watched key changed between GET and EXEC.
		return 0, ErrVersionConflict
	}
	if errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrStoreUnavailable) {
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("%w: write snapshot: %v", ErrStoreUnavailable, err)
	}

	return newVersion, nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
