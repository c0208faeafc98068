package match3

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

const (
	hudHeight    = 3 // Title, score line, status line
	footerHeight = 1 // Control hints
	tileWidth    = 3 // Columns per tile at cell size 1
)

// layout places the board on screen.
type layout struct {
	cellW int
	cellH int
	board core.Rect // Tile area inside the frame
}

// computeLayout fits a cols x rows board into the screen. A cellSize of 0,
// or one that does not fit, picks the largest size that does.
// Reports false when even the smallest size does not fit.
func computeLayout(screenW, screenH, cols, rows, cellSize int) (layout, bool) {
	fit := func(size int) (layout, bool) {
		cw, ch := tileWidth*size, size
		w, h := cols*cw, rows*ch
		avail := screenH - hudHeight - footerHeight
		if w+2 > screenW || h+2 > avail {
			return layout{}, false
		}
		frameY := hudHeight + (avail-(h+2))/2
		return layout{
			cellW: cw,
			cellH: ch,
			board: core.NewRect((screenW-w)/2, frameY+1, w, h),
		}, true
	}

	if cellSize > 0 {
		if l, ok := fit(cellSize); ok {
			return l, true
		}
	}
	for size := config.MaxCellSize; size >= 1; size-- {
		if l, ok := fit(size); ok {
			return l, true
		}
	}
	return layout{}, false
}

// cellAt maps a screen position to the grid cell under it.
func (g *Game) cellAt(x, y int) (engine.Coord, bool) {
	if g.tooSmall || !g.layout.board.Contains(x, y) {
		return engine.Coord{}, false
	}
	c := engine.Coord{
		Col: (x - g.layout.board.X) / g.layout.cellW,
		Row: (y - g.layout.board.Y) / g.layout.cellH,
	}
	if c.Col >= g.cfg.Board.Width || c.Row >= g.cfg.Board.Height {
		return engine.Coord{}, false
	}
	return c, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	dst.DrawBoxColored(g.layout.board.Inset(-1), core.ColorGray)
	g.renderTiles(dst)
	if !g.gameOver && !g.paused {
		dst.AddAttr(g.cellRect(g.cursor), core.AttrReverse)
	}
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and status lines.
func (g *Game) renderHUD(dst *core.Screen) {
	frame := g.layout.board.Inset(-1)

	title := g.Title()
	dst.DrawTextColored(frame.X+(frame.W-len([]rune(title)))/2, 0, title, core.ColorBrightWhite)

	st := g.State()
	dst.DrawText(frame.X, 1, fmt.Sprintf("Score: %d", st.Score))
	moves := fmt.Sprintf("Moves: %d", st.Moves)
	dst.DrawText(core.Max(frame.Right()-len(moves), frame.X), 1, moves)

	status := ""
	switch {
	case g.anim.active && g.anim.phase == engine.PhaseShuffle:
		status = "No moves, shuffling..."
	case g.flashTicks > 0:
		status = g.flash
	}
	if status != "" {
		dst.DrawTextColored(frame.X+(frame.W-len([]rune(status)))/2, 2, status, core.ColorYellow)
	}
}

// renderFooter draws the control hints, clipped to the screen.
func (g *Game) renderFooter(dst *core.Screen) {
	hint := []rune(g.Controls())
	if len(hint) > g.screenW {
		hint = hint[:g.screenW]
	}
	dst.DrawTextColored((g.screenW-len(hint))/2, g.screenH-1, string(hint), core.ColorGray)
}

// cellRect returns the screen area of a grid cell.
func (g *Game) cellRect(c engine.Coord) core.Rect {
	return core.NewRect(
		g.layout.board.X+c.Col*g.layout.cellW,
		g.layout.board.Y+c.Row*g.layout.cellH,
		g.layout.cellW,
		g.layout.cellH,
	)
}

// renderTiles draws every tile at its animated position.
func (g *Game) renderTiles(dst *core.Screen) {
	p := g.anim.progress()
	eased := easeOutQuad(p)
	sliding := g.anim.is(engine.PhaseSwap) || g.anim.is(engine.PhaseRevert) || g.anim.is(engine.PhaseShuffle)
	falling := g.anim.is(engine.PhaseFall)
	emerging := g.anim.is(engine.PhaseEmerge)

	for _, row := range g.board.Cells {
		for _, t := range row {
			x, y := float64(t.Coord.Col), float64(t.Coord.Row)
			attr := core.Attr(0)
			glyph := g.glyph(t.Type)

			if from, ok := g.prev[t.ID]; sliding && ok && from != t.Coord {
				x = lerp(float64(from.Col), x, eased)
				y = lerp(float64(from.Row), y, eased)
			}

			switch t.Status {
			case engine.StatusMatched:
				if falling && p >= 0.5 {
					continue
				}
				attr |= core.AttrFaint
			case engine.StatusEmerging:
				if emerging && p < 0.5 {
					glyph = '·'
					attr |= core.AttrFaint
				}
			}
			if falling {
				y += eased * float64(g.offsets[t.ID])
			}

			g.drawTile(dst, t, x, y, glyph, attr)
		}
	}
}

// drawTile draws one tile with its top-left corner at fractional cell (x, y).
func (g *Game) drawTile(dst *core.Screen, t engine.TileView, x, y float64, glyph rune, attr core.Attr) {
	l := g.layout
	px := l.board.X + int(math.Round(x*float64(l.cellW))) + l.cellW/2
	py := l.board.Y + int(math.Round(y*float64(l.cellH))) + l.cellH/2
	color := g.color(t.Type)

	if g.hasSelect && t.ID == g.selected {
		attr |= core.AttrBold
		dst.SetCell(px-1, py, core.Cell{Rune: '[', Color: core.ColorBrightWhite, Attr: core.AttrBold})
		dst.SetCell(px+1, py, core.Cell{Rune: ']', Color: core.ColorBrightWhite, Attr: core.AttrBold})
	}
	dst.SetCell(px, py, core.Cell{Rune: glyph, Color: color, Attr: attr})
}

func (g *Game) glyph(t engine.TileType) rune {
	if int(t) < 0 || int(t) >= len(g.glyphs) {
		return '?'
	}
	return g.glyphs[t]
}

func (g *Game) color(t engine.TileType) core.Color {
	if int(t) < 0 || int(t) >= len(g.colors) {
		return core.ColorDefault
	}
	return g.colors[t]
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen) {
	centerX, centerY := g.layout.board.Center()

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		st := g.State()
		summary := fmt.Sprintf("Score: %d  Moves: %d", st.Score, st.Moves)
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", "No moves left", summary, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len([]rune(line)))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len([]rune(line))/2, box.Y+1+i, line)
	}
}
