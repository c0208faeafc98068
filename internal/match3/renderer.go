package match3

import "context"

// Phase names the visual transition a renderer is asked to settle.
type Phase int

const (
	PhaseSwap    Phase = iota // Two tiles exchanged positions
	PhaseRevert               // A swap without a match is undone
	PhaseFall                 // Matched tiles vanish, survivors drop
	PhaseEmerge               // Fresh tiles appear in the emptied cells
	PhaseShuffle              // The whole board was rearranged
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSwap:
		return "swap"
	case PhaseRevert:
		return "revert"
	case PhaseFall:
		return "fall"
	case PhaseEmerge:
		return "emerge"
	case PhaseShuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// Snapshot is a value copy of the grid at one moment.
type Snapshot struct {
	Width  int
	Height int
	Cells  [][]TileView // Cells[row][col]
}

// At returns the tile view at c.
func (s Snapshot) At(c Coord) (TileView, bool) {
	if c.Row < 0 || c.Row >= len(s.Cells) || c.Col < 0 || c.Col >= len(s.Cells[c.Row]) {
		return TileView{}, false
	}
	return s.Cells[c.Row][c.Col], true
}

// Types returns the tile types of the snapshot as a matrix.
func (s Snapshot) Types() Matrix {
	m := NewMatrix(s.Width, s.Height)
	for row := range s.Cells {
		for col := range s.Cells[row] {
			m[row][col] = s.Cells[row][col].Type
		}
	}
	return m
}

// Renderer is the presentation collaborator driven by the engine.
//
// All methods except Settle must return promptly. Settle blocks until the
// visual effect of everything reported since the previous Settle has
// finished, and is the only suspension point of the engine.
type Renderer interface {
	// Render shows a new grid state.
	Render(s Snapshot)

	// SetTileVisualOffset moves a tile's drawing position by delta cells along axis.
	SetTileVisualOffset(t TileView, axis Axis, delta int)

	// HighlightTile marks or unmarks the player's pending selection.
	HighlightTile(t TileView, on bool)

	// ScoreChanged pushes a new displayable score.
	ScoreChanged(score int)

	// GameOver reports that no valid moves remain.
	GameOver()

	// Settle waits for the given phase to finish animating.
	Settle(ctx context.Context, phase Phase) error
}

// NopRenderer discards all output and settles immediately.
type NopRenderer struct{}

var _ Renderer = NopRenderer{}

func (NopRenderer) Render(Snapshot)                           {}
func (NopRenderer) SetTileVisualOffset(TileView, Axis, int)   {}
func (NopRenderer) HighlightTile(TileView, bool)              {}
func (NopRenderer) ScoreChanged(int)                          {}
func (NopRenderer) GameOver()                                 {}
func (NopRenderer) Settle(ctx context.Context, _ Phase) error { return ctx.Err() }
