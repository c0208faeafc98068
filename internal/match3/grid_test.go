package match3

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeFromMatrix(t *testing.T) {
	m := Matrix{
		{0, 1, 0},
		{1, 0, 1},
		{0, 1, 2},
	}
	g := gridFrom(m, 6, nil)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Len(t, g.Tiles(), 9)
	assert.True(t, g.Types().Equal(m))
	assert.Equal(t, 9, g.CountStatus(StatusNormal))
}

func TestInitializeFillsMissingCellsAsEmerging(t *testing.T) {
	m := Matrix{
		{0, 1, 0},
		{1, Empty, 1},
		{0, 1},
	}
	g := gridFrom(m, 6, newQueuedRandom(4, 5))

	center := at(g, 1, 1)
	require.NotNil(t, center)
	assert.Equal(t, TileType(4), center.Type)
	assert.Equal(t, StatusEmerging, center.Status)

	short := at(g, 2, 2)
	require.NotNil(t, short)
	assert.Equal(t, TileType(5), short.Type)
	assert.Equal(t, StatusEmerging, short.Status)

	assert.Equal(t, StatusNormal, at(g, 0, 0).Status)
	assert.Equal(t, 7, g.CountStatus(StatusNormal))
}

func TestInitializeNilMatrixIsRandom(t *testing.T) {
	g := NewGrid(6, 10, 6, NewRandom(42))
	g.Initialize(nil)

	require.Len(t, g.Tiles(), 60)
	for _, tile := range g.Tiles() {
		assert.Equal(t, StatusEmerging, tile.Status)
		assert.GreaterOrEqual(t, int(tile.Type), 0)
		assert.Less(t, int(tile.Type), 6)
	}
}

func TestInitializeAssignsFreshIDs(t *testing.T) {
	g := gridFrom(Matrix{{0, 1}, {1, 0}}, 3, nil)
	before := at(g, 0, 0).ID
	g.Initialize(g.Types())

	seen := map[TileID]bool{}
	for _, tile := range g.Tiles() {
		assert.NotEqual(t, before, tile.ID)
		assert.False(t, seen[tile.ID], "duplicate id %d", tile.ID)
		seen[tile.ID] = true
	}
}

func TestNeighbours(t *testing.T) {
	g := gridFrom(Matrix{
		{0, 1, 2},
		{3, 4, 5},
	}, 6, nil)

	center := at(g, 1, 0)
	assert.Equal(t, at(g, 0, 0), g.Left(center))
	assert.Equal(t, at(g, 2, 0), g.Right(center))
	assert.Nil(t, g.Top(center))
	assert.Equal(t, at(g, 1, 1), g.Bottom(center))

	corner := at(g, 2, 1)
	assert.Nil(t, g.Right(corner))
	assert.Nil(t, g.Bottom(corner))
	assert.Nil(t, g.Left(nil))
}

func TestAdjacent(t *testing.T) {
	g := gridFrom(Matrix{
		{0, 1, 2},
		{3, 4, 5},
		{0, 1, 2},
	}, 6, nil)

	tests := []struct {
		name     string
		a, b     Coord
		expected bool
	}{
		{"right neighbour", Coord{0, 0}, Coord{1, 0}, true},
		{"bottom neighbour", Coord{1, 1}, Coord{1, 2}, true},
		{"left neighbour", Coord{2, 2}, Coord{1, 2}, true},
		{"top neighbour", Coord{0, 1}, Coord{0, 0}, true},
		{"diagonal", Coord{0, 0}, Coord{1, 1}, false},
		{"two apart", Coord{0, 0}, Coord{2, 0}, false},
		{"same tile", Coord{1, 1}, Coord{1, 1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, g.Adjacent(g.At(tc.a), g.At(tc.b)))
		})
	}
}

func TestExchangeUpdatesAdjacency(t *testing.T) {
	g := gridFrom(Matrix{{0, 1, 2}}, 3, nil)
	a, b, c := at(g, 0, 0), at(g, 1, 0), at(g, 2, 0)

	g.Exchange(a, b)

	assert.Equal(t, Coord{1, 0}, a.Coord)
	assert.Equal(t, Coord{0, 0}, b.Coord)
	assert.Equal(t, a, at(g, 1, 0))
	assert.Equal(t, c, g.Right(a))
	assert.Equal(t, b, g.Left(a))
	assert.Nil(t, g.Left(b))
	assert.True(t, g.Types().Equal(Matrix{{1, 0, 2}}))
}

func TestInBoundsAndAt(t *testing.T) {
	g := gridFrom(Matrix{{0, 1}, {1, 0}}, 3, nil)

	assert.Nil(t, g.At(Coord{-1, 0}))
	assert.Nil(t, g.At(Coord{2, 0}))
	assert.Nil(t, g.At(Coord{0, 2}))
	assert.False(t, g.InBounds(Coord{0, -1}))
	assert.True(t, g.InBounds(Coord{1, 1}))
}

func TestContainsRejectsStaleTiles(t *testing.T) {
	g := gridFrom(Matrix{{0, 1}, {1, 0}}, 3, nil)
	stale := at(g, 0, 0)
	require.True(t, g.Contains(stale))

	g.Initialize(g.Types())

	assert.False(t, g.Contains(stale))
	assert.False(t, g.Contains(nil))
}

func TestApplyDownfallCountsMatchedBelow(t *testing.T) {
	g := gridFrom(Matrix{{0}, {1}, {2}, {3}}, 4, nil)
	at(g, 0, 2).Status = StatusMatched
	at(g, 0, 3).Status = StatusMatched

	falls := g.ApplyDownfall()

	require.Len(t, falls, 2)
	assert.Equal(t, 2, at(g, 0, 0).Fall)
	assert.Equal(t, 2, at(g, 0, 1).Fall)
	assert.Equal(t, 0, at(g, 0, 2).Fall)
	for _, f := range falls {
		assert.Equal(t, 2, f.Rows)
	}
}

func TestApplyDownfallSkipsGaps(t *testing.T) {
	g := gridFrom(Matrix{{0}, {1}, {2}, {3}, {4}}, 5, nil)
	at(g, 0, 1).Status = StatusMatched
	at(g, 0, 3).Status = StatusMatched

	g.ApplyDownfall()

	assert.Equal(t, 2, at(g, 0, 0).Fall)
	assert.Equal(t, 1, at(g, 0, 2).Fall)
	assert.Equal(t, 0, at(g, 0, 4).Fall)
}

func TestRebuildFromSurvivorsCollapsesColumn(t *testing.T) {
	g := gridFrom(Matrix{{0}, {1}, {2}, {3}}, 6, newQueuedRandom(5))
	at(g, 0, 2).Status = StatusMatched

	g.ApplyDownfall()
	g.RebuildFromSurvivors()

	assert.True(t, g.Types().Equal(Matrix{{5}, {0}, {1}, {3}}))
	assert.Equal(t, StatusEmerging, at(g, 0, 0).Status)
	assert.Equal(t, StatusNormal, at(g, 0, 1).Status)
	assert.Equal(t, StatusNormal, at(g, 0, 3).Status)
	assert.Equal(t, 0, g.CountStatus(StatusMatched))
}

func TestPromote(t *testing.T) {
	g := gridFrom(Matrix{{0, Empty}}, 3, newQueuedRandom(2))
	require.Equal(t, 1, g.CountStatus(StatusEmerging))

	g.Promote()

	assert.Equal(t, 0, g.CountStatus(StatusEmerging))
	assert.Equal(t, 2, g.CountStatus(StatusNormal))
}

func TestShuffleKeepsTiles(t *testing.T) {
	m := Matrix{
		{0, 1, 2, 3},
		{4, 5, 0, 1},
		{2, 3, 4, 5},
	}
	g := gridFrom(m, 6, NewRandom(3))
	ids := map[TileID]bool{}
	for _, tile := range g.Tiles() {
		ids[tile.ID] = true
	}

	g.Shuffle()

	assert.Equal(t, sortedTypes(m), sortedTypes(g.Types()))
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			tile := at(g, col, row)
			require.NotNil(t, tile)
			assert.True(t, ids[tile.ID])
			assert.Equal(t, Coord{col, row}, tile.Coord)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := gridFrom(Matrix{{0, 1}, {2, 0}}, 3, nil)
	snap := g.Snapshot()

	at(g, 0, 0).Type = 2

	view, ok := snap.At(Coord{0, 0})
	require.True(t, ok)
	assert.Equal(t, TileType(0), view.Type)
	assert.True(t, snap.Types().Equal(Matrix{{0, 1}, {2, 0}}))

	_, ok = snap.At(Coord{5, 5})
	assert.False(t, ok)
}

func sortedTypes(m Matrix) []int {
	var out []int
	for _, row := range m {
		for _, v := range row {
			out = append(out, int(v))
		}
	}
	sort.Ints(out)
	return out
}
