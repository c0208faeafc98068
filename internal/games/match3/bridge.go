package match3

import (
	"context"

	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

// eventKind tags a renderer call forwarded from the engine goroutine.
type eventKind int

const (
	eventRender eventKind = iota
	eventOffset
	eventHighlight
	eventScore
	eventGameOver
	eventSettle
)

// event is one renderer call, queued for the tick loop.
type event struct {
	kind  eventKind
	snap  engine.Snapshot
	tile  engine.TileView
	axis  engine.Axis
	delta int
	on    bool
	score int
	phase engine.Phase
}

const eventBuffer = 256

// bridge implements engine.Renderer by queueing every call onto a channel
// that Game.Step drains. Settle blocks the engine goroutine until the tick
// loop finishes the phase animation and acknowledges it.
//
// A bridge belongs to one session. Once stop is closed, sends are dropped
// and Settle returns the context error.
type bridge struct {
	events chan event
	acks   chan struct{}
	stop   <-chan struct{}
}

var _ engine.Renderer = (*bridge)(nil)

func newBridge(stop <-chan struct{}) *bridge {
	return &bridge{
		events: make(chan event, eventBuffer),
		acks:   make(chan struct{}, 1),
		stop:   stop,
	}
}

func (b *bridge) send(ev event) {
	select {
	case b.events <- ev:
	case <-b.stop:
	}
}

func (b *bridge) Render(s engine.Snapshot) {
	b.send(event{kind: eventRender, snap: s})
}

func (b *bridge) SetTileVisualOffset(t engine.TileView, axis engine.Axis, delta int) {
	b.send(event{kind: eventOffset, tile: t, axis: axis, delta: delta})
}

func (b *bridge) HighlightTile(t engine.TileView, on bool) {
	b.send(event{kind: eventHighlight, tile: t, on: on})
}

func (b *bridge) ScoreChanged(score int) {
	b.send(event{kind: eventScore, score: score})
}

func (b *bridge) GameOver() {
	b.send(event{kind: eventGameOver})
}

// Settle queues the phase and waits for its acknowledgement.
func (b *bridge) Settle(ctx context.Context, phase engine.Phase) error {
	select {
	case b.events <- event{kind: eventSettle, phase: phase}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-b.acks:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ack releases the engine goroutine blocked in Settle.
func (b *bridge) ack() {
	select {
	case b.acks <- struct{}{}:
	default:
	}
}
