package match3

import (
	"context"
	"sync"
)

// queuedRandom returns queued values first and falls back to a seeded
// source once the queue is drained.
type queuedRandom struct {
	values   []int
	fallback Random
}

func newQueuedRandom(values ...int) *queuedRandom {
	return &queuedRandom{values: values, fallback: NewRandom(7)}
}

func (r *queuedRandom) Intn(n int) int {
	if len(r.values) == 0 {
		return r.fallback.Intn(n)
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

type highlight struct {
	coord Coord
	on    bool
}

// recordingRenderer captures every call. If gate is set, Settle waits for a
// value on it.
type recordingRenderer struct {
	mu         sync.Mutex
	frames     []Snapshot
	offsets    []Fall
	highlights []highlight
	scores     []int
	gameOvers  int
	phases     []Phase
	gate       chan struct{}
	entered    chan Phase
}

func (r *recordingRenderer) Render(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, s)
}

func (r *recordingRenderer) SetTileVisualOffset(t TileView, _ Axis, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offsets = append(r.offsets, Fall{Tile: t, Rows: delta})
}

func (r *recordingRenderer) HighlightTile(t TileView, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highlights = append(r.highlights, highlight{coord: t.Coord, on: on})
}

func (r *recordingRenderer) ScoreChanged(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = append(r.scores, score)
}

func (r *recordingRenderer) GameOver() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gameOvers++
}

func (r *recordingRenderer) Settle(ctx context.Context, phase Phase) error {
	r.mu.Lock()
	r.phases = append(r.phases, phase)
	gate, entered := r.gate, r.entered
	r.mu.Unlock()

	if entered != nil {
		entered <- phase
	}
	if gate == nil {
		return ctx.Err()
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *recordingRenderer) settledPhases() []Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Phase, len(r.phases))
	copy(out, r.phases)
	return out
}

func (r *recordingRenderer) resetPhases() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = nil
}

// gridFrom builds a grid whose tiles match m exactly.
func gridFrom(m Matrix, types int, rng Random) *Grid {
	g := NewGrid(len(m[0]), len(m), types, rng)
	g.Initialize(m)
	return g
}

func at(g *Grid, col, row int) *Tile {
	return g.At(Coord{Col: col, Row: row})
}
