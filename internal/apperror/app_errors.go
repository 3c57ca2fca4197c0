package apperror

import "errors"

var (
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrMoveOutOfRange = errors.New("move is out of history range")
	ErrGameNotFound   = errors.New("game not found")
	ErrCorruptedGame  = errors.New("game state is corrupted")
)
