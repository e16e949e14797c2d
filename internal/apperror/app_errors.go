package apperror

import "errors"

var (
	ErrGameEnded     = errors.New("game is already ended")
	ErrNoActiveGames = errors.New("no active games")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidCell   = errors.New("invalid cell index")

	ErrRateLimited = errors.New("rate limited by platform API")
	ErrNotFound    = errors.New("not found")
)
