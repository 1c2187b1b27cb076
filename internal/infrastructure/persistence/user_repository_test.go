package persistence

import (
	"context"
	"testing"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/identity"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserRepository(t *testing.T) {
	repo := NewGormUserRepository(setupTestDB(t))
	ctx := context.Background()

	user, err := identity.NewUser("landlord", "Landlord@Example.com", "S3cure-pass!")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	t.Run("lookups ignore case", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "LANDLORD")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)

		found, err = repo.FindByEmail(ctx, "landlord@EXAMPLE.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, identity.UserStatusActive, found.Status)
	})

	t.Run("existence checks", func(t *testing.T) {
		exists, err := repo.ExistsByUsername(ctx, "Landlord")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("empty email never matches", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		found.DisplayName = "Main Landlord"
		found.FailedAttempts = 2
		require.NoError(t, repo.Update(ctx, found))

		reloaded, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Main Landlord", reloaded.DisplayName)
		assert.Equal(t, 2, reloaded.FailedAttempts)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		ghost, err := identity.NewUser("ghost", "ghost@example.com", "S3cure-pass!")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Update(ctx, ghost), shared.ErrNotFound)
	})
}
