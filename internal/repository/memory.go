package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const sweepInterval = time.Minute

type memoryEntry struct {
	game      entity.Game
	expiresAt time.Time
}

type memoryGame struct {
	mu        sync.RWMutex
	games     map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

// NewMemoryGameRepository keeps games in process memory; they are lost when
// the server stops. Like the Redis repository, each write refreshes the
// game's expiration and a zero ttl keeps games forever. Expired games are
// dropped on read and by a sweep run from writes.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		games: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, id string, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	that.sweep(now)

	entry := memoryEntry{game: clone(game)}
	if that.ttl > 0 {
		entry.expiresAt = now.Add(that.ttl)
	}
	that.games[id] = entry

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	entry, ok := that.games[id]
	that.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	if entry.expired(that.now()) {
		that.mu.Lock()
		if current, ok := that.games[id]; ok && current.expired(that.now()) {
			delete(that.games, id)
		}
		that.mu.Unlock()

		return nil, apperror.ErrGameNotFound
	}

	stored := clone(&entry.game)

	return &stored, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.games[id]
	if !ok || entry.expired(that.now()) {
		delete(that.games, id)
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

// sweep drops expired games at most once per sweepInterval. Callers hold mu.
func (that *memoryGame) sweep(now time.Time) {
	if that.ttl <= 0 || now.Before(that.nextSweep) {
		return
	}

	for id, entry := range that.games {
		if entry.expired(now) {
			delete(that.games, id)
		}
	}

	that.nextSweep = now.Add(sweepInterval)
}

func (that memoryEntry) expired(now time.Time) bool {
	return !that.expiresAt.IsZero() && !now.Before(that.expiresAt)
}

// clone copies the slices so callers never share backing arrays with the
// stored game.
func clone(game *entity.Game) entity.Game {
	copied := *game
	copied.History = append([]entity.Board(nil), game.History...)
	copied.Positions = append([]int{}, game.Positions...)
	return copied
}
