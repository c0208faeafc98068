package match3

import (
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

// phaseAnimation is the visual transition the engine is waiting on.
// A finished animation stays in place at full progress until the next
// phase starts, so the last frame holds until the engine reports again.
type phaseAnimation struct {
	phase    engine.Phase
	ticks    int
	duration int
	active   bool // Engine is blocked in Settle for this phase
	started  bool // At least one phase has run since the last reset
}

// progress returns the linear completion of the phase in [0, 1].
func (a phaseAnimation) progress() float64 {
	if !a.active || a.duration <= 0 {
		return 1
	}
	p := float64(a.ticks) / float64(a.duration)
	if p > 1 {
		p = 1
	}
	return p
}

// is reports whether the current animation shows phase p.
func (a phaseAnimation) is(p engine.Phase) bool {
	return a.started && a.phase == p
}

// phaseDuration returns the configured length of a phase in ticks.
func (g *Game) phaseDuration(p engine.Phase) int {
	anim := g.cfg.Animation
	switch p {
	case engine.PhaseSwap:
		return anim.Swap
	case engine.PhaseRevert:
		return anim.Revert
	case engine.PhaseFall:
		return anim.Fall
	case engine.PhaseEmerge:
		return anim.Emerge
	case engine.PhaseShuffle:
		return anim.Shuffle
	default:
		return 0
	}
}

// startPhase begins animating p. Zero-length phases are acknowledged at once.
func (g *Game) startPhase(p engine.Phase) {
	g.anim = phaseAnimation{
		phase:    p,
		duration: g.phaseDuration(p),
		active:   true,
		started:  true,
	}
	if g.anim.duration <= 0 {
		g.finishPhase()
	}
}

// updateAnimation advances the current phase by one tick.
// Returns true if the phase is still in progress.
func (g *Game) updateAnimation() bool {
	if !g.anim.active {
		return false
	}

	g.anim.ticks++
	if g.anim.ticks >= g.anim.duration {
		g.finishPhase()
		return false
	}
	return true
}

// finishPhase marks the phase complete and releases the engine.
func (g *Game) finishPhase() {
	g.anim.active = false
	g.anim.ticks = g.anim.duration
	if g.bridge != nil {
		g.bridge.ack()
	}
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// lerp interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
