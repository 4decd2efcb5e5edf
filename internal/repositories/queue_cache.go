package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-token-queue/internal/logger"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
)

const queueListKey = "queues:all"

// QueueCacheRepository caches the queue list in Redis. Queues are
// immutable after creation, so a TTL plus invalidation on create keeps
// the cached list exact. Token state is never cached here.
type QueueCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration for the cached list
}

// NewQueueCacheRepository creates a new repository instance with the given TTL.
func NewQueueCacheRepository(client *redis.Client, expiration time.Duration) *QueueCacheRepository {
	return &QueueCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// Get returns the cached queue list, or nil on a cache miss.
func (r *QueueCacheRepository) Get(ctx context.Context) ([]models.QueueDB, error) {
	val, err := r.client.Get(ctx, queueListKey).Result()

	logger.Log.Infow(
		"key", queueListKey,
		"error", err,
	)

	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var queues []models.QueueDB
	if err := json.Unmarshal([]byte(val), &queues); err != nil {
		return nil, err
	}

	return queues, nil
}

// Set stores the queue list with the configured expiration.
func (r *QueueCacheRepository) Set(ctx context.Context, queues []models.QueueDB) error {
	data, err := json.Marshal(queues)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, queueListKey, data, r.exp).Err()

	logger.Log.Infow(
		"key", queueListKey,
		"result", len(queues),
		"error", err,
	)

	return err
}

// Invalidate drops the cached list after a queue is created.
func (r *QueueCacheRepository) Invalidate(ctx context.Context) error {
	err := r.client.Del(ctx, queueListKey).Err()

	logger.Log.Infow(
		"key", queueListKey,
		"result", "invalidated",
		"error", err,
	)

	return err
}
