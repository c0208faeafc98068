// Package match3 adapts the match-3 engine to the platform's tick-driven
// Game interface. The engine runs each turn on a worker goroutine and
// reports through a channel renderer; Step drains those reports, animates
// the phase the engine is waiting on and acknowledges it when done.
package match3

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/logging"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic" // A board without moves ends the game
	ModeZen     Mode = "zen"     // A board without moves is reshuffled
)

const flashDuration = 90 // ~1.5s at 60fps

// Package-level variables for config
var (
	configPath string
	logger     = logging.Discard()
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger handed to every new session.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	logger = l
}

// turnResult is what a worker goroutine reports when an engine call returns.
type turnResult struct {
	click engine.ClickResult
	start bool // The call dealt a new board
	err   error
}

// Game implements the match-3 puzzle.
type Game struct {
	mode   Mode
	cfg    config.Match3Config
	glyphs []rune
	colors []core.Color
	logger *log.Logger
	tick   uint64
	seed   int64

	// Engine side
	session *engine.Session
	bridge  *bridge
	ctx     context.Context // Cancelled when the session is abandoned
	cancel  context.CancelFunc
	done    chan turnResult
	busy    bool // A worker owns the session

	// Engine state as last reported through the bridge
	board     engine.Snapshot
	prev      map[engine.TileID]engine.Coord // Positions before the last Render
	offsets   map[engine.TileID]int          // Pending downfall in rows
	selected  engine.TileID
	hasSelect bool
	score     int
	gameOver  bool
	anim      phaseAnimation

	cursor     engine.Coord
	flash      string
	flashTicks int

	// Screen dimensions
	screenW int
	screenH int
	layout  layout

	paused   bool
	tooSmall bool
}

// New creates a classic mode game.
func New() *Game {
	return &Game{mode: ModeClassic, logger: logging.Discard()}
}

// NewZen creates a zen mode game.
func NewZen() *Game {
	return &Game{mode: ModeZen, logger: logging.Discard()}
}

// Registry IDs of the two modes.
const (
	GameID    = "match3"
	ZenGameID = "match3_zen"
)

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(ZenGameID, func() registry.Game {
		return NewZen()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeZen {
		return ZenGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Match-3 (Zen)"
	}
	return "Match-3"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeZen {
		return "Dead boards are reshuffled, play as long as you like"
	}
	return "The game ends when no swap can make a match"
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/HJKL: Move | Enter/Space/Click: Select | P: Pause | R: Restart | Q: Quit"
}

// Reset abandons any running turn and deals a new board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.stop()

	gc, err := config.LoadMatch3(configPath)
	if err != nil {
		logger.Warn("using default match3 config", "error", err)
		gc = config.DefaultMatch3Config()
	}
	g.cfg = gc
	g.glyphs = gc.Glyphs()
	g.colors = gc.Colors()
	g.logger = logger.With("game", g.ID())

	g.tick = 0
	g.seed = cfg.Seed
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.board = engine.Snapshot{}
	g.prev = nil
	g.offsets = make(map[engine.TileID]int)
	g.hasSelect = false
	g.score = 0
	g.gameOver = false
	g.anim = phaseAnimation{}
	g.cursor = engine.Coord{}
	g.flash = ""
	g.flashTicks = 0
	g.paused = false

	rules := engine.Config{
		Width:               gc.Board.Width,
		Height:              gc.Board.Height,
		Types:               gc.Board.Types,
		ReshuffleOnDeadlock: gc.Rules.ReshuffleOnDeadlock || g.mode == ModeZen,
		MaxShuffles:         gc.Rules.MaxShuffles,
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.ctx = ctx
	g.cancel = cancel
	g.bridge = newBridge(ctx.Done())
	g.done = make(chan turnResult, 1)
	g.session = engine.NewSession(rules,
		engine.WithRandom(engine.NewRandom(cfg.Seed)),
		engine.WithRenderer(g.bridge),
		engine.WithLogger(g.logger),
	)

	g.checkScreenSize()
	g.logger.Info("new game", "width", rules.Width, "height", rules.Height, "types", rules.Types, "seed", cfg.Seed)

	g.run(ctx, func(ctx context.Context) turnResult {
		return turnResult{start: true, err: g.session.Start(ctx)}
	})
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Close cancels the running turn and waits for its worker to return.
func (g *Game) Close() {
	g.stop()
}

// stop cancels the session context and waits for the worker.
// Cancelled settles make the engine finish without waiting on animations.
func (g *Game) stop() {
	if g.cancel == nil {
		return
	}
	g.cancel()
	if g.busy {
		<-g.done
		g.busy = false
	}
	g.cancel = nil
	g.ctx = nil
}

// run starts an engine call on a worker goroutine.
func (g *Game) run(ctx context.Context, fn func(ctx context.Context) turnResult) {
	g.busy = true
	done := g.done
	go func() {
		done <- fn(ctx)
	}()
}

// checkScreenSize recomputes the board layout.
func (g *Game) checkScreenSize() {
	l, ok := computeLayout(g.screenW, g.screenH, g.cfg.Board.Width, g.cfg.Board.Height, g.cfg.Board.CellSize)
	g.layout = l
	g.tooSmall = !ok
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.pump()

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.updateAnimation()
	if g.flashTicks > 0 {
		g.flashTicks--
	}

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return core.StepResult{State: g.State()}
}

// pump applies everything the engine reported since the last tick.
func (g *Game) pump() {
	if g.session == nil {
		return
	}

	// Receiving done first guarantees every event the worker sent before
	// returning is already in the buffer.
	var (
		res      turnResult
		finished bool
	)
	if g.busy {
		select {
		case res = <-g.done:
			finished = true
		default:
		}
	}

	for drained := false; !drained; {
		select {
		case ev := <-g.bridge.events:
			g.apply(ev)
		default:
			drained = true
		}
	}

	if finished {
		g.busy = false
		g.finishTurn(res)
	}
}

// apply updates the view from one renderer call.
func (g *Game) apply(ev event) {
	switch ev.kind {
	case eventRender:
		g.prev = make(map[engine.TileID]engine.Coord, g.board.Width*g.board.Height)
		for _, row := range g.board.Cells {
			for _, t := range row {
				g.prev[t.ID] = t.Coord
			}
		}
		g.board = ev.snap
		clear(g.offsets)
		g.clampCursor()
	case eventOffset:
		if ev.axis == engine.AxisVertical {
			g.offsets[ev.tile.ID] = ev.delta
		}
	case eventHighlight:
		g.selected = ev.tile.ID
		g.hasSelect = ev.on
	case eventScore:
		g.score = ev.score
	case eventGameOver:
		g.gameOver = true
		g.hasSelect = false
	case eventSettle:
		g.startPhase(ev.phase)
	}
}

// finishTurn records the result of a worker's engine call.
func (g *Game) finishTurn(res turnResult) {
	err := res.err
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		return
	case errors.Is(err, engine.ErrNoValidMoves), errors.Is(err, engine.ErrGameOver):
		g.gameOver = true
	case errors.Is(err, engine.ErrLocked), errors.Is(err, engine.ErrInvalidSwap):
		g.logger.Debug("input dropped", "error", err)
	default:
		g.logger.Warn("turn failed", "error", err)
	}

	if res.start {
		return
	}
	if res.click.Action != engine.ClickSwapped {
		return
	}
	switch res.click.Outcome {
	case engine.SwapReverted:
		g.setFlash("No match")
	case engine.SwapApplied:
		if res.click.Report.Passes > 1 {
			g.setFlash(fmt.Sprintf("Chain x%d!", res.click.Report.Passes))
		}
	}
}

func (g *Game) setFlash(msg string) {
	g.flash = msg
	g.flashTicks = flashDuration
}

// handleInput moves the cursor and turns selections into engine clicks.
// Clicks are dropped while the session is not handleable.
func (g *Game) handleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.moveCursor(1, 0)
	}

	var target *engine.Coord
	if in.Has(core.ActionConfirm) {
		c := g.cursor
		target = &c
	}
	for _, p := range in.Clicks {
		if c, ok := g.cellAt(p.X, p.Y); ok {
			g.cursor = c
			target = &c
		}
	}
	if target == nil {
		return
	}

	if g.busy || !g.session.Handleable() {
		g.logger.Debug("click dropped, turn in progress", "at", *target)
		return
	}
	g.click(*target)
}

// click hands a grid click to the engine on a worker goroutine.
func (g *Game) click(c engine.Coord) {
	session := g.session
	g.run(g.ctx, func(ctx context.Context) turnResult {
		res, err := session.Click(ctx, c)
		return turnResult{click: res, err: err}
	})
}

func (g *Game) moveCursor(dc, dr int) {
	g.cursor = g.cursor.Add(dc, dr)
	g.clampCursor()
}

func (g *Game) clampCursor() {
	g.cursor.Col = core.Clamp(g.cursor.Col, 0, core.Max(g.cfg.Board.Width-1, 0))
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, core.Max(g.cfg.Board.Height-1, 0))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	moves := 0
	if g.session != nil {
		moves = g.session.Moves()
	}
	return core.GameState{
		Score:    g.score,
		Moves:    moves,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
		Busy:     g.busy,
	}
}
