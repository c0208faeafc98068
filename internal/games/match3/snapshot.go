package match3

import (
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateBusy        GameStateType = "busy"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick   uint64
	Mode   string // "classic" or "zen"
	Seed   int64
	Score  int
	Moves  int
	Board  engine.Matrix // Tile types as last reported by the engine
	Cursor engine.Coord
	State  GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.busy:
		state = StateBusy
	}

	st := g.State()
	return Snapshot{
		Tick:   g.tick,
		Mode:   string(g.mode),
		Seed:   g.seed,
		Score:  st.Score,
		Moves:  st.Moves,
		Board:  g.board.Types(),
		Cursor: g.cursor,
		State:  state,
	}
}
