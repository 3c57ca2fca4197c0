package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stored game is returned", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository(0)
		game := sampleGame()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, "123", game))

		// When: reading it back
		retrievedGame, err := gameRepo.GetByID(ctx, "123")

		// Then: it matches
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
	})

	t.Run("Stored game does not alias the caller's slices", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository(0)
		game := sampleGame()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, "123", game))

		// When: the caller mutates its copy and the returned one
		game.History[1][8] = entity.PlayerO
		retrievedGame, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		retrievedGame.Positions[0] = 7

		// Then: the stored game is untouched
		again, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, sampleGame(), again)
	})

	t.Run("Missing game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(0)

		_, err := gameRepo.GetByID(ctx, "nope")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)

		err = gameRepo.DeleteByID(ctx, "nope")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Deleted game is gone", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository(0)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, "123", sampleGame()))

		// When: deleting it
		require.NoError(t, gameRepo.DeleteByID(ctx, "123"))

		// Then: it cannot be read
		_, err := gameRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Expired game is not found", func(t *testing.T) {
		// Given: a game stored with a one hour ttl
		gameRepo := NewMemoryGameRepository(time.Hour).(*memoryGame)
		now := time.Now()
		gameRepo.now = func() time.Time { return now }
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, "123", sampleGame()))

		// When: the hour has passed
		now = now.Add(time.Hour)

		// Then: the game is gone
		_, err := gameRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Empty(t, gameRepo.games)
	})

	t.Run("Writing refreshes the expiration", func(t *testing.T) {
		// Given: a game stored with a one hour ttl
		gameRepo := NewMemoryGameRepository(time.Hour).(*memoryGame)
		now := time.Now()
		gameRepo.now = func() time.Time { return now }
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, "123", sampleGame()))

		// When: it is saved again after half an hour
		now = now.Add(30 * time.Minute)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, "123", sampleGame()))
		now = now.Add(45 * time.Minute)

		// Then: it is still there
		_, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
	})

	t.Run("Writes sweep games nobody reads again", func(t *testing.T) {
		// Given: an abandoned game
		gameRepo := NewMemoryGameRepository(time.Hour).(*memoryGame)
		now := time.Now()
		gameRepo.now = func() time.Time { return now }
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, "abandoned", sampleGame()))

		// When: another session saves after the ttl
		now = now.Add(2 * time.Hour)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, "active", sampleGame()))

		// Then: only the active game is kept
		assert.Len(t, gameRepo.games, 1)
		assert.Contains(t, gameRepo.games, "active")
	})

	t.Run("Zero ttl never expires", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(0).(*memoryGame)
		now := time.Now()
		gameRepo.now = func() time.Time { return now }
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, "123", sampleGame()))

		now = now.Add(24 * 365 * time.Hour)

		_, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
	})
}
