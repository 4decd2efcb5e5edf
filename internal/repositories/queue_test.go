package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestQueueWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewQueueWriteRepository(db)
	ctx := context.Background()

	queue, err := repo.Save(ctx, "Clinic")
	assert.NoError(t, err)
	assert.NotNil(t, queue)
	assert.Equal(t, "Clinic", queue.Name)
	assert.False(t, queue.CreatedAt.IsZero())

	// names are not unique
	again, err := repo.Save(ctx, "Clinic")
	assert.NoError(t, err)
	assert.NotEqual(t, queue.QueueID, again.QueueID)
}

func TestQueueReadRepository_List(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewQueueWriteRepository(db)
	readRepo := NewQueueReadRepository(db, nil)
	ctx := context.Background()

	t.Run("empty store yields empty list", func(t *testing.T) {
		queues, err := readRepo.List(ctx)
		assert.NoError(t, err)
		assert.Empty(t, queues)
	})

	t.Run("returns queues in creation order", func(t *testing.T) {
		first, _ := writeRepo.Save(ctx, "Clinic")
		second, _ := writeRepo.Save(ctx, "Pharmacy")

		queues, err := readRepo.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, queues, 2)
		assert.Equal(t, first.QueueID, queues[0].QueueID)
		assert.Equal(t, second.QueueID, queues[1].QueueID)
	})
}

func TestQueueReadRepository_Exists(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewQueueWriteRepository(db)
	readRepo := NewQueueReadRepository(db, nil)
	ctx := context.Background()

	queue, err := writeRepo.Save(ctx, "Clinic")
	assert.NoError(t, err)

	exists, err := readRepo.Exists(ctx, queue.QueueID)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = readRepo.Exists(ctx, uuid.New())
	assert.NoError(t, err)
	assert.False(t, exists)
}
