package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type GameService interface {
	GetGame(ctx context.Context, sessionID string) (*tictactoe.GameController, error)

	Play(ctx context.Context, sessionID string, cell int) (*tictactoe.GameController, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*tictactoe.GameController, error)
	ToggleOrder(ctx context.Context, sessionID string) (*tictactoe.GameController, error)
	Restart(ctx context.Context, sessionID string) (*tictactoe.GameController, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, id string, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type gameService struct {
	logger   *slog.Logger
	gameRepo gameRepo

	// one event at a time: load, apply and save never interleave
	mu sync.Mutex
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo) GameService {
	return &gameService{
		logger:   logger.With("component", "game_service"),
		gameRepo: gameRepo,
	}
}

func (that *gameService) GetGame(ctx context.Context, sessionID string) (*tictactoe.GameController, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.load(ctx, sessionID)
}

func (that *gameService) Play(ctx context.Context, sessionID string, cell int) (*tictactoe.GameController, error) {
	return that.update(ctx, sessionID, func(controller *tictactoe.GameController) (bool, error) {
		played, err := controller.Play(cell)
		if err != nil {
			return false, err
		}

		if played {
			that.logger.Debug("move played", "session", sessionID, "cell", cell, "move", controller.CurrentMove())
		}

		return played, nil
	})
}

func (that *gameService) JumpTo(ctx context.Context, sessionID string, move int) (*tictactoe.GameController, error) {
	return that.update(ctx, sessionID, func(controller *tictactoe.GameController) (bool, error) {
		if err := controller.JumpTo(move); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (that *gameService) ToggleOrder(ctx context.Context, sessionID string) (*tictactoe.GameController, error) {
	return that.update(ctx, sessionID, func(controller *tictactoe.GameController) (bool, error) {
		controller.ToggleOrder()
		return true, nil
	})
}

func (that *gameService) Restart(ctx context.Context, sessionID string) (*tictactoe.GameController, error) {
	return that.update(ctx, sessionID, func(controller *tictactoe.GameController) (bool, error) {
		controller.Restart()
		return true, nil
	})
}

// update runs one transition against the session's game and saves the game
// if the transition changed it.
func (that *gameService) update(
	ctx context.Context,
	sessionID string,
	apply func(controller *tictactoe.GameController) (bool, error),
) (*tictactoe.GameController, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	changed, err := apply(controller)
	if err != nil {
		return controller, err
	}

	if !changed {
		return controller, nil
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, sessionID, controller.Game()); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	return controller, nil
}

// load returns the session's game, creating and saving a new one on the first
// visit. A stored game that fails validation is replaced as well.
func (that *gameService) load(ctx context.Context, sessionID string) (*tictactoe.GameController, error) {
	game, err := that.gameRepo.GetByID(ctx, sessionID)

	switch {
	case err == nil:
		return tictactoe.NewGameController(game), nil
	case errors.Is(err, apperror.ErrCorruptedGame):
		that.logger.Warn("replacing corrupted game", "session", sessionID, "error", err)
	case !errors.Is(err, apperror.ErrGameNotFound):
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	game = entity.NewGame()
	if err = that.gameRepo.CreateOrUpdate(ctx, sessionID, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("new game created", "session", sessionID)

	return tictactoe.NewGameController(game), nil
}
