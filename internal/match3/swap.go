package match3

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// SwapOutcome is the result of a swap attempt.
type SwapOutcome int

const (
	SwapRejected SwapOutcome = iota // Invalid pair, nothing changed
	SwapApplied                     // Swap kept and cascaded to a fixed point
	SwapReverted                    // Swap produced no match and was undone
)

// String returns a human-readable name for the outcome.
func (o SwapOutcome) String() string {
	switch o {
	case SwapRejected:
		return "Rejected"
	case SwapApplied:
		return "Applied"
	case SwapReverted:
		return "Reverted"
	default:
		return "Unknown"
	}
}

// SwapController validates and performs player swaps.
type SwapController struct {
	grid     *Grid
	resolver *Resolver
	renderer Renderer
	logger   *log.Logger
}

// NewSwapController creates a controller that cascades through resolver.
func NewSwapController(grid *Grid, resolver *Resolver, renderer Renderer, logger *log.Logger) *SwapController {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SwapController{
		grid:     grid,
		resolver: resolver,
		renderer: renderer,
		logger:   logger,
	}
}

// Validate checks that a and b form a legal swap: two distinct live tiles
// that are direct neighbours.
func (c *SwapController) Validate(a, b *Tile) error {
	if a == b {
		return ErrInvalidSwap
	}
	if !c.grid.Contains(a) || !c.grid.Contains(b) {
		return ErrInvalidSwap
	}
	if !c.grid.Adjacent(a, b) {
		return ErrInvalidSwap
	}
	return nil
}

// Probe reports whether swapping a and b would create at least one match.
// The grid is restored before returning and the renderer is not involved.
func (c *SwapController) Probe(a, b *Tile) bool {
	if c.Validate(a, b) != nil {
		return false
	}
	c.grid.Exchange(a, b)
	found := len(Scan(c.grid)) > 0
	c.grid.Exchange(a, b)
	return found
}

// AttemptSwap exchanges a and b, keeps the swap and cascades if it created a
// match, and reverts it otherwise. Invalid pairs return ErrInvalidSwap with
// SwapRejected and leave the grid untouched.
func (c *SwapController) AttemptSwap(ctx context.Context, a, b *Tile) (SwapOutcome, CascadeReport, error) {
	if err := c.Validate(a, b); err != nil {
		return SwapRejected, CascadeReport{}, err
	}

	var errs settleErrors
	from, to := a.Coord, b.Coord

	c.grid.Exchange(a, b)
	c.renderer.Render(c.grid.Snapshot())
	errs.settle(ctx, c.renderer, PhaseSwap)

	if len(Scan(c.grid)) == 0 {
		c.grid.Exchange(a, b)
		c.renderer.Render(c.grid.Snapshot())
		errs.settle(ctx, c.renderer, PhaseRevert)
		c.logger.Debug("swap reverted", "from", from, "to", to)
		return SwapReverted, CascadeReport{}, errs.err
	}

	report, err := c.resolver.Resolve(ctx)
	if errs.err == nil {
		errs.err = err
	}
	c.logger.Debug("swap applied",
		"from", from,
		"to", to,
		"passes", report.Passes,
		"groups", report.Groups,
	)
	return SwapApplied, report, errs.err
}
