package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestQueueCacheRepository(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	repo := NewQueueCacheRepository(rdb, 2*time.Second)

	queues := []models.QueueDB{
		{QueueID: uuid.New(), Name: "Clinic", CreatedAt: time.Now().UTC().Truncate(time.Second)},
		{QueueID: uuid.New(), Name: "Pharmacy", CreatedAt: time.Now().UTC().Truncate(time.Second)},
	}

	t.Run("miss returns nil", func(t *testing.T) {
		got, err := repo.Get(ctx)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set and get", func(t *testing.T) {
		err := repo.Set(ctx, queues)
		assert.NoError(t, err)

		got, err := repo.Get(ctx)
		assert.NoError(t, err)
		assert.Equal(t, queues, got)
	})

	t.Run("invalidate drops the list", func(t *testing.T) {
		assert.NoError(t, repo.Set(ctx, queues))
		assert.NoError(t, repo.Invalidate(ctx))

		got, err := repo.Get(ctx)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("cached list expires", func(t *testing.T) {
		assert.NoError(t, repo.Set(ctx, queues))

		time.Sleep(3 * time.Second)

		got, err := repo.Get(ctx)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
