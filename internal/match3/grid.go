package match3

// Matrix is a row-major table of tile types: m[row][col].
// Cells holding Empty (or missing entirely) are filled randomly by Initialize.
type Matrix [][]TileType

// NewMatrix creates a width x height matrix filled with Empty.
func NewMatrix(width, height int) Matrix {
	m := make(Matrix, height)
	for row := range m {
		m[row] = make([]TileType, width)
		for col := range m[row] {
			m[row][col] = Empty
		}
	}
	return m
}

// at returns the value stored at c, or Empty if the cell is absent.
func (m Matrix) at(c Coord) TileType {
	if c.Row < 0 || c.Row >= len(m) {
		return Empty
	}
	if c.Col < 0 || c.Col >= len(m[c.Row]) {
		return Empty
	}
	return m[c.Row][c.Col]
}

// Equal reports whether both matrices hold the same values.
func (m Matrix) Equal(other Matrix) bool {
	if len(m) != len(other) {
		return false
	}
	for row := range m {
		if len(m[row]) != len(other[row]) {
			return false
		}
		for col := range m[row] {
			if m[row][col] != other[row][col] {
				return false
			}
		}
	}
	return true
}

// Fall describes how far a surviving tile drops during a downfall phase.
type Fall struct {
	Tile TileView
	Rows int
}

// Grid is a fixed-size board of tiles.
//
// Tiles live in an arena; index maps every coordinate to the arena slot of
// the tile currently occupying it. Adjacency is always derived from index,
// so it reflects the current coordinate assignment after swaps and rebuilds.
type Grid struct {
	width  int
	height int
	types  int
	rng    Random

	tiles  []*Tile
	index  []int // row*width+col -> slot in tiles, -1 if unoccupied
	nextID TileID
}

// NewGrid creates an empty grid. Call Initialize before use.
// Non-positive dimensions are raised to 1.
func NewGrid(width, height, types int, rng Random) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if types < 1 {
		types = 1
	}
	if rng == nil {
		rng = NewRandom(0)
	}
	return &Grid{
		width:  width,
		height: height,
		types:  types,
		rng:    rng,
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// NumTypes returns how many symbol kinds the grid generates.
func (g *Grid) NumTypes() int {
	return g.types
}

// Initialize replaces every tile with a fresh one.
// Cells with a valid value in m keep that type and start Normal; all other
// cells get a uniformly random type and start Emerging. A nil matrix fills
// the whole grid randomly.
func (g *Grid) Initialize(m Matrix) {
	tiles := make([]*Tile, 0, g.width*g.height)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			c := Coord{Col: col, Row: row}
			g.nextID++
			t := &Tile{ID: g.nextID, Coord: c}

			if v := m.at(c); v >= 0 && int(v) < g.types {
				t.Type = v
				t.Status = StatusNormal
			} else {
				t.Type = TileType(g.rng.Intn(g.types))
				t.Status = StatusEmerging
			}
			tiles = append(tiles, t)
		}
	}
	g.tiles = tiles
	g.reindex()
}

// reindex rebuilds the coordinate lookup from the tiles' current coordinates.
func (g *Grid) reindex() {
	if len(g.index) != g.width*g.height {
		g.index = make([]int, g.width*g.height)
	}
	for i := range g.index {
		g.index[i] = -1
	}
	for slot, t := range g.tiles {
		if g.InBounds(t.Coord) {
			g.index[t.Coord.Row*g.width+t.Coord.Col] = slot
		}
	}
}

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < g.width && c.Row >= 0 && c.Row < g.height
}

// At returns the tile at c, or nil if c is outside the grid.
func (g *Grid) At(c Coord) *Tile {
	if !g.InBounds(c) {
		return nil
	}
	slot := g.index[c.Row*g.width+c.Col]
	if slot < 0 {
		return nil
	}
	return g.tiles[slot]
}

// Contains reports whether t is one of the grid's live tiles.
// Tiles replaced by a rebuild are no longer contained.
func (g *Grid) Contains(t *Tile) bool {
	return t != nil && g.At(t.Coord) == t
}

// Tiles returns the live tiles in arena order.
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

func (g *Grid) neighbor(t *Tile, dc, dr int) *Tile {
	if t == nil {
		return nil
	}
	return g.At(t.Coord.Add(dc, dr))
}

// Left returns the tile to the left of t, or nil.
func (g *Grid) Left(t *Tile) *Tile {
	return g.neighbor(t, -1, 0)
}

// Right returns the tile to the right of t, or nil.
func (g *Grid) Right(t *Tile) *Tile {
	return g.neighbor(t, 1, 0)
}

// Top returns the tile above t, or nil.
func (g *Grid) Top(t *Tile) *Tile {
	return g.neighbor(t, 0, -1)
}

// Bottom returns the tile below t, or nil.
func (g *Grid) Bottom(t *Tile) *Tile {
	return g.neighbor(t, 0, 1)
}

// Adjacent reports whether b is one of a's four direct neighbours.
func (g *Grid) Adjacent(a, b *Tile) bool {
	if a == nil || b == nil || a == b {
		return false
	}
	return g.Left(a) == b || g.Right(a) == b || g.Top(a) == b || g.Bottom(a) == b
}

// Exchange swaps the coordinates of two tiles. The tiles stay in their
// arena slots; only the coordinate lookup changes.
func (g *Grid) Exchange(a, b *Tile) {
	a.Coord, b.Coord = b.Coord, a.Coord
	g.reindex()
}

// CountStatus returns how many live tiles have the given status.
func (g *Grid) CountStatus(s Status) int {
	n := 0
	for _, t := range g.tiles {
		if t.Status == s {
			n++
		}
	}
	return n
}

// ApplyDownfall sets each surviving tile's Fall to the number of matched
// tiles below it in its column. Returns the tiles that move.
func (g *Grid) ApplyDownfall() []Fall {
	var falls []Fall
	for _, t := range g.tiles {
		t.Fall = 0
		if t.Status == StatusMatched {
			continue
		}
		for below := g.Bottom(t); below != nil; below = g.Bottom(below) {
			if below.Status == StatusMatched {
				t.Fall++
			}
		}
		if t.Fall > 0 {
			falls = append(falls, Fall{Tile: t.View(), Rows: t.Fall})
		}
	}
	return falls
}

// RebuildFromSurvivors drops matched tiles and reinitializes the grid from
// the survivors, each keyed by its coordinate shifted by its downfall
// offset. Cells left without a survivor receive fresh Emerging tiles.
func (g *Grid) RebuildFromSurvivors() {
	m := NewMatrix(g.width, g.height)
	for _, t := range g.tiles {
		if t.Status == StatusMatched {
			continue
		}
		c := t.Coord.Add(0, t.Fall)
		if g.InBounds(c) {
			m[c.Row][c.Col] = t.Type
		}
	}
	g.Initialize(m)
}

// Promote turns every Emerging tile into a Normal one.
func (g *Grid) Promote() {
	for _, t := range g.tiles {
		if t.Status == StatusEmerging {
			t.Status = StatusNormal
		}
	}
}

// Shuffle assigns the live tiles to a random permutation of coordinates.
func (g *Grid) Shuffle() {
	coords := make([]Coord, len(g.tiles))
	for i, t := range g.tiles {
		coords[i] = t.Coord
	}
	for i := len(coords) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		coords[i], coords[j] = coords[j], coords[i]
	}
	for i, t := range g.tiles {
		t.Coord = coords[i]
		t.Fall = 0
	}
	g.reindex()
}

// Types returns the current tile types as a matrix.
func (g *Grid) Types() Matrix {
	m := NewMatrix(g.width, g.height)
	for _, t := range g.tiles {
		if g.InBounds(t.Coord) {
			m[t.Coord.Row][t.Coord.Col] = t.Type
		}
	}
	return m
}

// Snapshot returns a value copy of the grid for renderers.
func (g *Grid) Snapshot() Snapshot {
	cells := make([][]TileView, g.height)
	for row := range cells {
		cells[row] = make([]TileView, g.width)
		for col := range cells[row] {
			if t := g.At(Coord{Col: col, Row: row}); t != nil {
				cells[row][col] = t.View()
			}
		}
	}
	return Snapshot{
		Width:  g.width,
		Height: g.height,
		Cells:  cells,
	}
}
