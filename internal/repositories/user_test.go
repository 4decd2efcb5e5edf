package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db)
	ctx := context.Background()

	t.Run("inserts new user", func(t *testing.T) {
		user, err := repo.Save(ctx, "alice", "hashed-password")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "hashed-password", user.PasswordHash)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", user.UserID.String())
	})

	t.Run("duplicate username returns nil", func(t *testing.T) {
		user, err := repo.Save(ctx, "alice", "another-hash")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserReadRepository_GetByUsername(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	saved, err := writeRepo.Save(ctx, "charlie", "hash")
	assert.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "charlie")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, saved.UserID, user.UserID)
		assert.Equal(t, "hash", user.PasswordHash)
	})

	t.Run("missing returns nil", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "nonexistent")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}
