// Package match3 implements the match-resolution engine of a tile-matching
// puzzle: grid adjacency, run detection, cascades (collapse, downfall,
// refill, re-check), swap validation and turn sequencing.
//
// The engine has no terminal or drawing dependencies. Every visual phase is
// delegated to a Renderer, and the engine blocks in Renderer.Settle until the
// renderer acknowledges that the phase has finished animating.
package match3

import "fmt"

// TileType identifies one of the symbol kinds a tile can show.
type TileType int

// Empty marks a Matrix cell without a value.
const Empty TileType = -1

// Status is the lifecycle state of a tile.
type Status int

const (
	StatusNormal   Status = iota // Resting tile
	StatusMatched                // Part of a run, removed on the next rebuild
	StatusEmerging               // Freshly generated, not yet acknowledged by the renderer
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "Normal"
	case StatusMatched:
		return "Matched"
	case StatusEmerging:
		return "Emerging"
	default:
		return "Unknown"
	}
}

// TileID is unique among all tiles a grid has ever created.
type TileID uint64

// Coord is a grid position. Col grows to the right, Row grows downwards.
type Coord struct {
	Col int
	Row int
}

// Add returns the coordinate shifted by the given column and row deltas.
func (c Coord) Add(dc, dr int) Coord {
	return Coord{Col: c.Col + dc, Row: c.Row + dr}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Tile is a single live cell of the grid.
// Neighbours are not stored; they are looked up through the grid by coordinate.
type Tile struct {
	ID     TileID
	Type   TileType
	Coord  Coord
	Status Status
	Fall   int // Rows this tile drops during the current downfall phase
}

// View returns a value copy of the tile that is safe to hand to a renderer.
func (t *Tile) View() TileView {
	return TileView{
		ID:     t.ID,
		Type:   t.Type,
		Coord:  t.Coord,
		Status: t.Status,
		Fall:   t.Fall,
	}
}

// TileView is an immutable copy of a tile's state.
type TileView struct {
	ID     TileID
	Type   TileType
	Coord  Coord
	Status Status
	Fall   int
}
