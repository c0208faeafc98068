package match3

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// MinTypes is the smallest symbol count a session accepts. With fewer kinds
// refills keep producing runs and cascades would not settle.
const MinTypes = 3

// Config holds the rules of a session.
type Config struct {
	Width  int // Columns
	Height int // Rows
	Types  int // Symbol kinds

	// ReshuffleOnDeadlock shuffles a board without valid moves instead of
	// ending the game, at most MaxShuffles times in a row.
	ReshuffleOnDeadlock bool
	MaxShuffles         int
}

// DefaultConfig returns the classic 6x10 board with six symbols.
func DefaultConfig() Config {
	return Config{
		Width:       6,
		Height:      10,
		Types:       6,
		MaxShuffles: 3,
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.Width < 1 {
		c.Width = def.Width
	}
	if c.Height < 1 {
		c.Height = def.Height
	}
	if c.Types < MinTypes {
		c.Types = MinTypes
	}
	if c.MaxShuffles < 1 {
		c.MaxShuffles = def.MaxShuffles
	}
	return c
}

// ClickAction describes what a click did.
type ClickAction int

const (
	ClickSelected   ClickAction = iota // First tile picked
	ClickDeselected                    // Pending tile clicked again
	ClickReselected                    // Non-adjacent tile became the new selection
	ClickSwapped                       // Adjacent tile clicked, swap attempted
)

// ClickResult reports the effect of Session.Click.
type ClickResult struct {
	Action   ClickAction
	Outcome  SwapOutcome   // Set when Action is ClickSwapped
	Report   CascadeReport // Set when Outcome is SwapApplied
	GameOver bool          // The move left no valid moves
}

// Option configures a Session.
type Option func(*Session)

// WithRenderer sets the renderer the session reports to.
func WithRenderer(r Renderer) Option {
	return func(s *Session) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRandom sets the random source for fills and shuffles.
func WithRandom(r Random) Option {
	return func(s *Session) {
		if r != nil {
			s.rng = r
		}
	}
}

// Session sequences turns: it owns the grid, the turn lock, the score and
// game-over detection. Click, Swap and Start may be called from a worker
// goroutine while the accessors are read from another.
type Session struct {
	cfg      Config
	rng      Random
	renderer Renderer
	logger   *log.Logger

	grid     *Grid
	resolver *Resolver
	swaps    *SwapController

	// locked is the turn lock. Only its holder touches grid and selected.
	locked   atomic.Bool
	selected *Tile

	mu       sync.Mutex
	score    int
	moves    int
	gameOver bool
	scoring  bool // false while a reshuffle cascade runs
}

// NewSession creates a session. Call Start to deal the first board.
func NewSession(cfg Config, opts ...Option) *Session {
	s := &Session{
		cfg:      cfg.normalized(),
		renderer: NopRenderer{},
		logger:   log.New(io.Discard),
		scoring:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRandom(0)
	}

	s.grid = NewGrid(s.cfg.Width, s.cfg.Height, s.cfg.Types, s.rng)
	s.resolver = NewResolver(s.grid, s.renderer, s.logger, s.addGroups)
	s.swaps = NewSwapController(s.grid, s.resolver, s.renderer, s.logger)
	return s
}

// Config returns the normalized session rules.
func (s *Session) Config() Config {
	return s.cfg
}

// Start deals a fresh random board. See StartFrom.
func (s *Session) Start(ctx context.Context) error {
	return s.StartFrom(ctx, nil)
}

// Reset abandons the current game and deals a new random board.
func (s *Session) Reset(ctx context.Context) error {
	return s.StartFrom(ctx, nil)
}

// StartFrom resets score, moves, selection and game over, deals a board from
// m (Empty cells are filled randomly) and resolves the initial cascade,
// which never scores. Returns ErrNoValidMoves if the resulting board is dead
// and cannot be reshuffled.
func (s *Session) StartFrom(ctx context.Context, m Matrix) error {
	if !s.locked.CompareAndSwap(false, true) {
		return ErrLocked
	}
	defer s.locked.Store(false)

	s.mu.Lock()
	s.score = 0
	s.moves = 0
	s.gameOver = false
	s.scoring = true
	s.mu.Unlock()
	s.selected = nil

	var errs settleErrors
	s.grid.Initialize(m)
	s.renderer.ScoreChanged(0)
	s.renderer.Render(s.grid.Snapshot())
	errs.settle(ctx, s.renderer, PhaseEmerge)
	s.grid.Promote()

	report, err := s.resolver.Resolve(ctx)
	if errs.err == nil {
		errs.err = err
	}
	s.logger.Debug("board dealt",
		"width", s.grid.Width(),
		"height", s.grid.Height(),
		"initial_passes", report.Passes,
	)

	if !s.ensureMoves(ctx, &errs) {
		if errs.err != nil {
			return errs.err
		}
		return ErrNoValidMoves
	}
	return errs.err
}

// Click applies the selection protocol at c: the first click selects, a
// click on the selected tile deselects, a click on an adjacent tile swaps
// and a click on any other tile moves the selection.
//
// Clicks while a turn is in progress return ErrLocked and are dropped.
func (s *Session) Click(ctx context.Context, c Coord) (ClickResult, error) {
	if s.IsGameOver() {
		return ClickResult{}, ErrGameOver
	}
	if !s.locked.CompareAndSwap(false, true) {
		return ClickResult{}, ErrLocked
	}
	defer s.locked.Store(false)

	tile := s.grid.At(c)
	if tile == nil {
		return ClickResult{}, ErrInvalidSwap
	}

	switch {
	case s.selected == nil:
		s.selected = tile
		s.renderer.HighlightTile(tile.View(), true)
		return ClickResult{Action: ClickSelected}, nil

	case s.selected == tile:
		s.selected = nil
		s.renderer.HighlightTile(tile.View(), false)
		return ClickResult{Action: ClickDeselected}, nil

	case s.grid.Adjacent(s.selected, tile):
		first := s.selected
		s.selected = nil
		s.renderer.HighlightTile(first.View(), false)
		return s.swapLocked(ctx, first, tile)

	default:
		s.renderer.HighlightTile(s.selected.View(), false)
		s.selected = tile
		s.renderer.HighlightTile(tile.View(), true)
		return ClickResult{Action: ClickReselected}, nil
	}
}

// Swap attempts to swap the tiles at a and b directly, bypassing selection.
func (s *Session) Swap(ctx context.Context, a, b Coord) (ClickResult, error) {
	if s.IsGameOver() {
		return ClickResult{}, ErrGameOver
	}
	if !s.locked.CompareAndSwap(false, true) {
		return ClickResult{}, ErrLocked
	}
	defer s.locked.Store(false)

	if s.selected != nil {
		s.renderer.HighlightTile(s.selected.View(), false)
		s.selected = nil
	}
	return s.swapLocked(ctx, s.grid.At(a), s.grid.At(b))
}

func (s *Session) swapLocked(ctx context.Context, a, b *Tile) (ClickResult, error) {
	if err := s.swaps.Validate(a, b); err != nil {
		return ClickResult{Action: ClickSwapped, Outcome: SwapRejected}, err
	}

	s.mu.Lock()
	s.moves++
	s.mu.Unlock()

	outcome, report, err := s.swaps.AttemptSwap(ctx, a, b)
	result := ClickResult{Action: ClickSwapped, Outcome: outcome, Report: report}
	if outcome != SwapApplied {
		return result, err
	}

	errs := settleErrors{err: err}
	result.GameOver = !s.ensureMoves(ctx, &errs)
	return result, errs.err
}

// addGroups adds match groups to the score. Groups found before the first
// player move are not counted.
func (s *Session) addGroups(groups int) {
	s.mu.Lock()
	if s.moves == 0 || !s.scoring {
		s.mu.Unlock()
		return
	}
	s.score += groups
	score := s.score
	s.mu.Unlock()

	s.renderer.ScoreChanged(score)
}

// ensureMoves checks for a valid move, reshuffling dead boards when the
// rules allow it. Reports false once the session is over.
func (s *Session) ensureMoves(ctx context.Context, errs *settleErrors) bool {
	if s.HasValidMove() {
		return true
	}
	if s.cfg.ReshuffleOnDeadlock {
		for i := 0; i < s.cfg.MaxShuffles; i++ {
			s.shuffle(ctx, errs)
			if s.HasValidMove() {
				return true
			}
		}
	}
	return s.CheckValidMoves()
}

// shuffle rearranges the board and resolves any runs it created without
// scoring them.
func (s *Session) shuffle(ctx context.Context, errs *settleErrors) {
	s.logger.Info("no valid moves, reshuffling")

	s.grid.Shuffle()
	s.renderer.Render(s.grid.Snapshot())
	errs.settle(ctx, s.renderer, PhaseShuffle)

	s.mu.Lock()
	s.scoring = false
	s.mu.Unlock()

	_, err := s.resolver.Resolve(ctx)
	if errs.err == nil {
		errs.err = err
	}

	s.mu.Lock()
	s.scoring = true
	s.mu.Unlock()
}

// HasValidMove probes every adjacent pair and reports whether any swap
// would create a match. The grid is left unchanged.
// Only safe while no turn is running on another goroutine.
func (s *Session) HasValidMove() bool {
	for _, t := range s.grid.Tiles() {
		if s.swaps.Probe(t, s.grid.Right(t)) || s.swaps.Probe(t, s.grid.Bottom(t)) {
			return true
		}
	}
	return false
}

// CheckValidMoves reports whether any swap would create a match. If none
// would, the session ends and the renderer is notified.
func (s *Session) CheckValidMoves() bool {
	if s.HasValidMove() {
		return true
	}

	s.mu.Lock()
	already := s.gameOver
	s.gameOver = true
	score, moves := s.score, s.moves
	s.mu.Unlock()

	if !already {
		s.logger.Info("game over", "score", score, "moves", moves)
		s.renderer.GameOver()
	}
	return false
}

// Score returns the accumulated score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// DisplayScore returns the score to show the player: 0 until the first move.
func (s *Session) DisplayScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.moves == 0 {
		return 0
	}
	return s.score
}

// Moves returns the number of player swaps attempted.
func (s *Session) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}

// IsGameOver reports whether the session has ended.
func (s *Session) IsGameOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}

// Locked reports whether a turn is in progress.
func (s *Session) Locked() bool {
	return s.locked.Load()
}

// Handleable reports whether the session accepts input right now.
func (s *Session) Handleable() bool {
	return !s.Locked() && !s.IsGameOver()
}

// Grid returns the session's grid. It must not be read while a turn runs
// on another goroutine; renderers receive snapshots instead.
func (s *Session) Grid() *Grid {
	return s.grid
}
