package match3

// Axis is the direction along which a run or an offset is measured.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// String returns a human-readable name for the axis.
func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Group is one satisfied triple: a tile and both of its neighbours on one
// axis sharing its type. Longer runs produce several overlapping groups.
type Group struct {
	Axis   Axis
	Center Coord
	Tiles  [3]*Tile
}

// Scan finds every match group on the grid without changing any tile.
// The horizontal and vertical triples around each tile are checked
// independently, so a tile can be the centre of two groups.
func Scan(g *Grid) []Group {
	var groups []Group
	for _, t := range g.tiles {
		left, right := g.Left(t), g.Right(t)
		if left != nil && right != nil && left.Type == t.Type && right.Type == t.Type {
			groups = append(groups, Group{
				Axis:   AxisHorizontal,
				Center: t.Coord,
				Tiles:  [3]*Tile{left, t, right},
			})
		}

		top, bottom := g.Top(t), g.Bottom(t)
		if top != nil && bottom != nil && top.Type == t.Type && bottom.Type == t.Type {
			groups = append(groups, Group{
				Axis:   AxisVertical,
				Center: t.Coord,
				Tiles:  [3]*Tile{top, t, bottom},
			})
		}
	}
	return groups
}

// Detect marks every tile taking part in a group as Matched and returns the
// number of groups found. Marking is idempotent; the count is not
// deduplicated across overlapping groups.
func Detect(g *Grid) int {
	groups := Scan(g)
	for _, grp := range groups {
		for _, t := range grp.Tiles {
			t.Status = StatusMatched
		}
	}
	return len(groups)
}
