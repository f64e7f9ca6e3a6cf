package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/linguaquest/internal/entity"
	"github.com/samdwyer/linguaquest/internal/geom"
	"github.com/samdwyer/linguaquest/internal/lasso"
	"github.com/samdwyer/linguaquest/internal/player"
	"github.com/samdwyer/linguaquest/internal/save"
	"github.com/samdwyer/linguaquest/internal/sword"
	"github.com/samdwyer/linguaquest/internal/world"
)

// Layout of the arena on screen. Each tile is two columns wide so the
// grid looks roughly square in a terminal.
const (
	arenaLeft = 1
	arenaTop  = 1
	cellWidth = 2
	barWidth  = 10
)

// Frame is everything the renderer draws for one tick. Nil pointers and
// empty strings skip their section.
type Frame struct {
	Arena      *world.Arena
	Player     *player.Player
	Party      *entity.Party
	Enemies    []*entity.Enemy
	EnemyColor string
	Footprints []geom.Vec

	Round    *sword.Round
	Blocks   []*sword.Block
	Waves    []*sword.Wave
	QueueLen int

	Puzzle *lasso.Puzzle

	Briefing string
	Notice   string
	EndTitle string
	EndHints string
	Records  save.Records
	Paused   bool
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws a frame and flushes it to the terminal.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	panelX := arenaLeft
	below := arenaTop
	if f.Arena != nil {
		r.drawArena(f.Arena)
		r.drawFootprints(f.Arena, f.Footprints)
		r.drawBlocks(f.Arena, f.Blocks)
		r.drawWaves(f.Arena, f.Waves)
		r.drawParty(f.Arena, f.Party)
		r.drawEnemies(f.Arena, f.Enemies, ColorOr(f.EnemyColor, tcell.ColorLightCyan))
		r.drawPlayer(f.Arena, f.Player)
		panelX = arenaLeft + f.Arena.Width*cellWidth + 2
		below = arenaTop + f.Arena.Height + 1
	}

	r.drawHUD(f, panelX)
	if f.Puzzle != nil {
		r.drawPuzzle(f.Puzzle, arenaLeft, below)
	}

	switch {
	case f.Briefing != "":
		r.drawBox([]string{f.Briefing, "", "[Enter] skip"})
	case f.EndTitle != "":
		r.drawBox([]string{f.EndTitle, "", f.EndHints})
	case f.Paused:
		r.drawBox([]string{"PAUSED", "", "[P] resume"})
	}

	r.screen.Show()
}

// toScreen maps a world position to a screen cell. World space is y-up,
// so rows are flipped.
func toScreen(a *world.Arena, pos geom.Vec) (int, int, bool) {
	x, y := a.CellAt(pos)
	if x < 0 || y < 0 || x >= a.Width || y >= a.Height {
		return 0, 0, false
	}
	return arenaLeft + x*cellWidth, arenaTop + (a.Height - 1 - y), true
}

func (r *Renderer) drawArena(a *world.Arena) {
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			tile := a.TileAt(x, y)
			style := getTileStyle(tile)
			sx, sy := arenaLeft+x*cellWidth, arenaTop+(a.Height-1-y)
			r.screen.SetContent(sx, sy, tile.Rune(), style)
			fill := ' '
			if tile == world.TileWall || tile == world.TileIce {
				fill = tile.Rune()
			}
			r.screen.SetContent(sx+1, sy, fill, style)
		}
	}
}

// getTileStyle returns the appropriate style for a tile type.
func getTileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileIce:
		return tcell.StyleDefault.Foreground(tcell.ColorAqua).Background(tcell.ColorNavy)
	case world.TileDrift:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

func (r *Renderer) drawFootprints(a *world.Arena, prints []geom.Vec) {
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for _, pos := range prints {
		if x, y, ok := toScreen(a, pos); ok {
			r.screen.SetContent(x+1, y, ',', style)
		}
	}
}

func (r *Renderer) drawBlocks(a *world.Arena, blocks []*sword.Block) {
	for _, b := range blocks {
		if b.Done() {
			continue
		}
		x, y, ok := toScreen(a, b.Position)
		if !ok {
			continue
		}
		color := tcell.ColorYellow
		switch {
		case b.Exploded() && b.Correct():
			color = tcell.ColorGreen
		case b.Exploded() || b.Missed():
			color = tcell.ColorRed
		}
		style := tcell.StyleDefault.Foreground(Dim(color, b.Alpha()))
		label := fmt.Sprintf("%s[%s]", b.Entry.Word, b.Entry.ShownLabel)
		r.screen.DrawText(x, y, label, style)
	}
}

func (r *Renderer) drawWaves(a *world.Arena, waves []*sword.Wave) {
	for _, w := range waves {
		if w.Done() {
			continue
		}
		x, y, ok := toScreen(a, w.Position)
		if !ok {
			continue
		}
		color, glyph := tcell.ColorLime, ')'
		if !w.Intent {
			color, glyph = tcell.ColorFuchsia, '*'
		}
		r.screen.SetContent(x, y, glyph, tcell.StyleDefault.Foreground(color).Bold(true))
	}
}

func (r *Renderer) drawParty(a *world.Arena, party *entity.Party) {
	if party == nil {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorOlive)
	for _, m := range party.Members {
		if x, y, ok := toScreen(a, m.Position); ok {
			r.screen.SetContent(x, y, m.Symbol, style)
		}
	}
}

func (r *Renderer) drawEnemies(a *world.Arena, enemies []*entity.Enemy, color tcell.Color) {
	for _, e := range enemies {
		x, y, ok := toScreen(a, e.Position)
		if !ok {
			continue
		}
		style := tcell.StyleDefault.Foreground(color)
		if e.Mode() == entity.ModeChase {
			style = style.Bold(true)
		}
		r.screen.SetContent(x, y, e.Symbol, style)
	}
}

func (r *Renderer) drawPlayer(a *world.Arena, p *player.Player) {
	if p == nil {
		return
	}
	if p.Effects().TrailEmitting {
		trail := tcell.StyleDefault.Foreground(tcell.ColorAqua)
		back := p.SlipDirection().Mul(-1)
		for i := 1; i <= 2; i++ {
			if x, y, ok := toScreen(a, p.Position().Add(back.Mul(float64(i)))); ok {
				r.screen.SetContent(x, y, '-', trail)
			}
		}
	}
	x, y, ok := toScreen(a, p.Position())
	if !ok {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	r.screen.SetContent(x, y, playerGlyph(p.Status()), style)
}

// playerGlyph returns the player symbol for a status.
func playerGlyph(s player.Status) rune {
	switch s {
	case player.StatusAttacking:
		return '/'
	case player.StatusInteracting:
		return '!'
	case player.StatusSlipping:
		return '&'
	case player.StatusFalling:
		return '_'
	default:
		return '@'
	}
}

func (r *Renderer) drawHUD(f Frame, x int) {
	y := arenaTop
	title := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	text := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	line := func(s string, style tcell.Style) {
		r.screen.DrawText(x, y, s, style)
		y++
	}

	line("LinguaQuest", title)
	y++

	if rd := f.Round; rd != nil {
		line(fmt.Sprintf("Score  %d / %d", rd.Score(), rd.WinScore()), text)
		line(fmt.Sprintf("Energy %s %d", bar(rd.Energy(), rd.MaxEnergy()), rd.Energy()), text)
		line("Health "+hearts(rd.Health(), rd.MaxHealth()), tcell.StyleDefault.Foreground(tcell.ColorRed))
		if rd.TimeLimit() > 0 {
			line(fmt.Sprintf("Time   %.0fs", rd.RemainingTime()), text)
		}
		line(fmt.Sprintf("Queue  %d", f.QueueLen), text)
		switch {
		case rd.Pending():
			line("Loading sentences...", text)
		case rd.Started():
			if sen, ok := rd.CurrentSentence(); ok {
				cleared, total := rd.SentenceProgress()
				idx, count := rd.SentenceIndex()
				y++
				line(fmt.Sprintf("Sentence %d/%d  %d/%d", idx+1, count, cleared, total), text)
				line(sen.Sentence, title)
			}
		}
		y++
	}

	if f.Player != nil {
		line(fmt.Sprintf("Status %s", f.Player.Status()), text)
		line(fmt.Sprintf("Magic  %d", f.Player.MagicLevel()), text)
	}
	line(fmt.Sprintf("Best   %d", f.Records.BestScore), text)
	if f.Party != nil && f.Party.Len() > 0 {
		y++
		for _, m := range f.Party.Members {
			line(partyLine(m), text)
		}
	}
	if f.Notice != "" {
		y++
		line(f.Notice, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
}

func partyLine(m *entity.Member) string {
	return fmt.Sprintf("%c %-8s spd %d hp %d", m.Symbol, m.Name, m.Stat(entity.StatSpeed), m.Stat(entity.StatHealth))
}

func (r *Renderer) drawPuzzle(p *lasso.Puzzle, x, y int) {
	text := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	idx, count := p.QuestionIndex()
	r.screen.DrawText(x, y, fmt.Sprintf("Word lasso %d/%d  %s", min(idx+1, count), count, p.Phase()), text)
	y++

	col := x
	for i, w := range p.Words() {
		style := text
		switch {
		case w.Collected:
			style = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		case i == p.Cursor():
			style = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
		}
		col = r.screen.DrawText(col, y, w.Text, style) + 1
	}
	y++

	r.screen.DrawText(x, y, "> "+p.Assembled(), tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	y++

	hints := "[Tab] next  [F] lasso"
	if p.UndoEnabled() {
		hints += "  [U] put back"
	}
	r.screen.DrawText(x, y, hints, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
}

// drawBox draws centered lines inside a bordered box.
func (r *Renderer) drawBox(lines []string) {
	w, h := r.screen.Size()
	inner := 0
	for _, l := range lines {
		inner = max(inner, len([]rune(l)))
	}
	boxW, boxH := inner+4, len(lines)+2
	left, top := max((w-boxW)/2, 0), max((h-boxH)/2, 0)

	border := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.screen.DrawText(left, top, "+"+strings.Repeat("-", boxW-2)+"+", border)
	for i, l := range lines {
		row := top + 1 + i
		r.screen.DrawText(left, row, "| "+l+strings.Repeat(" ", inner-len([]rune(l)))+" |", border)
	}
	r.screen.DrawText(left, top+boxH-1, "+"+strings.Repeat("-", boxW-2)+"+", border)
}

// bar renders v out of limit as a fixed-width gauge.
func bar(v, limit int) string {
	if limit <= 0 {
		return "[" + strings.Repeat("-", barWidth) + "]"
	}
	filled := min(max(v*barWidth/limit, 0), barWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

func hearts(v, limit int) string {
	v = min(max(v, 0), limit)
	return strings.Repeat("♥", v) + strings.Repeat("♡", limit-v)
}
