package match3

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ResolverState is the state of the cascade state machine.
type ResolverState int

const (
	StateStable    ResolverState = iota // No matches left, grid is quiescent
	StateScanning                       // Running the match detector
	StateResolving                      // Collapsing, dropping and refilling
)

// String returns a human-readable name for the state.
func (s ResolverState) String() string {
	switch s {
	case StateStable:
		return "Stable"
	case StateScanning:
		return "Scanning"
	case StateResolving:
		return "Resolving"
	default:
		return "Unknown"
	}
}

// CascadeReport summarizes one run of the resolver.
type CascadeReport struct {
	Passes  int // Collapse/refill rounds performed
	Groups  int // Match groups found over all passes
	Cleared int // Tiles removed over all passes
}

// Resolver drives the collapse -> downfall -> refill -> re-check loop until
// the grid reaches a fixed point.
type Resolver struct {
	grid     *Grid
	renderer Renderer
	logger   *log.Logger
	onGroups func(groups int)
	state    ResolverState
}

// NewResolver creates a resolver for the grid. onGroups, if set, is called
// with the group count of every scanning pass that found matches.
func NewResolver(grid *Grid, renderer Renderer, logger *log.Logger, onGroups func(groups int)) *Resolver {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		grid:     grid,
		renderer: renderer,
		logger:   logger,
		onGroups: onGroups,
	}
}

// State returns the current state of the resolver.
func (r *Resolver) State() ResolverState {
	return r.state
}

// Resolve runs cascades until a detection pass finds no matches.
//
// Each phase waits for the renderer to settle before the next one starts.
// A failed settle (typically a cancelled context) does not abort the
// cascade: the remaining phases run without waiting so the grid still ends
// quiescent, and the first settle error is returned.
func (r *Resolver) Resolve(ctx context.Context) (CascadeReport, error) {
	var (
		report CascadeReport
		errs   settleErrors
	)

	for {
		r.state = StateScanning
		groups := Detect(r.grid)
		if groups > 0 && r.onGroups != nil {
			r.onGroups(groups)
		}

		matched := r.grid.CountStatus(StatusMatched)
		if matched == 0 {
			// A quiescent grid holds only Normal tiles.
			r.grid.Promote()
			r.state = StateStable
			r.renderer.Render(r.grid.Snapshot())
			return report, errs.err
		}

		r.state = StateResolving
		report.Passes++
		report.Groups += groups
		report.Cleared += matched

		r.renderer.Render(r.grid.Snapshot())
		for _, f := range r.grid.ApplyDownfall() {
			r.renderer.SetTileVisualOffset(f.Tile, AxisVertical, f.Rows)
		}
		errs.settle(ctx, r.renderer, PhaseFall)

		r.grid.RebuildFromSurvivors()
		r.renderer.Render(r.grid.Snapshot())
		errs.settle(ctx, r.renderer, PhaseEmerge)
		r.grid.Promote()

		r.logger.Debug("cascade pass",
			"pass", report.Passes,
			"groups", groups,
			"cleared", matched,
		)
	}
}

// settleErrors waits on renderer phases until the first failure and skips
// every later wait.
type settleErrors struct {
	err error
}

func (e *settleErrors) settle(ctx context.Context, r Renderer, phase Phase) {
	if e.err != nil {
		return
	}
	if err := r.Settle(ctx, phase); err != nil {
		e.err = fmt.Errorf("match3: settle %s: %w", phase, err)
	}
}
