package match3

import "errors"

var (
	// ErrInvalidSwap is returned for self swaps, non-adjacent pairs and
	// coordinates or tiles that are not part of the live grid.
	ErrInvalidSwap = errors.New("match3: invalid swap")

	// ErrLocked is returned when input arrives while a swap or cascade is in
	// progress. The input is dropped, not queued.
	ErrLocked = errors.New("match3: turn in progress")

	// ErrNoValidMoves reports that no adjacent swap can produce a match.
	ErrNoValidMoves = errors.New("match3: no valid moves")

	// ErrGameOver is returned for input after the session has ended.
	ErrGameOver = errors.New("match3: game over")
)
