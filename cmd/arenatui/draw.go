package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"wavearena/internal/combat"
)

const hudRows = 2 + logLines

var (
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleShot     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBolt     = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleBoss     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleCorpse   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleParticle = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleAlert    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

var enemyGlyphs = [...]struct {
	r     rune
	style tcell.Style
}{
	combat.EnemyNormal: {'s', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	combat.EnemyArcher: {'a', tcell.StyleDefault.Foreground(tcell.ColorAqua)},
	combat.EnemyMage:   {'m', tcell.StyleDefault.Foreground(tcell.ColorBlue)},
	combat.EnemyTank:   {'T', tcell.StyleDefault.Foreground(tcell.ColorOlive)},
}

var bossGlyphs = [...]rune{
	combat.BossLord:        'L',
	combat.BossNecromancer: 'N',
	combat.BossGolem:       'G',
	combat.BossKnight:      'K',
	combat.BossEmperor:     'E',
}

// field is the screen rectangle inside the wall that the arena is scaled into.
type field struct {
	x0, y0, w, h int
}

func (g *Game) field() field {
	return field{x0: 1, y0: 1, w: g.width - 2, h: g.height - hudRows - 2}
}

// cell maps an arena position to a screen cell. ok is false when the field is too small.
func (f field) cell(p combat.Vec2, size float64) (x, y int, ok bool) {
	if f.w <= 0 || f.h <= 0 || size <= 0 {
		return 0, 0, false
	}
	x = f.x0 + int(p.X/size*float64(f.w-1)+0.5)
	y = f.y0 + int(p.Y/size*float64(f.h-1)+0.5)
	return x, y, true
}

func (g *Game) put(f field, p combat.Vec2, r rune, style tcell.Style) {
	if x, y, ok := f.cell(p, g.sim.ArenaSize()); ok {
		g.screen.SetContent(x, y, r, nil, style)
	}
}

func (g *Game) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		if x+i >= g.width {
			return
		}
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (g *Game) draw() {
	g.screen.Clear()
	f := g.field()
	g.drawWall(f)

	for _, pt := range g.sim.Particles() {
		g.put(f, pt.Pos, '*', styleParticle)
	}
	for _, e := range g.sim.Enemies() {
		if e.Dead {
			g.put(f, e.Pos, '%', styleCorpse)
			continue
		}
		gl := enemyGlyphs[e.Kind]
		g.put(f, e.Pos, gl.r, gl.style)
	}
	for _, b := range g.sim.Bosses() {
		if b.Dead {
			g.put(f, b.Pos, '%', styleCorpse)
			continue
		}
		g.put(f, b.Pos, bossGlyphs[b.BossKind], styleBoss)
	}
	for _, p := range g.sim.Projectiles() {
		if p.Owner == combat.OwnerEnemy {
			g.put(f, p.Pos, 'o', styleBolt)
		} else {
			g.put(f, p.Pos, '.', styleShot)
		}
	}
	g.put(f, g.sim.Player().Pos, '@', stylePlayer)

	g.drawHUD(f)
	g.screen.Show()
}

func (g *Game) drawWall(f field) {
	if f.w <= 0 || f.h <= 0 {
		return
	}
	right, bottom := f.x0+f.w, f.y0+f.h
	for x := f.x0 - 1; x <= right; x++ {
		g.screen.SetContent(x, f.y0-1, '─', nil, styleWall)
		g.screen.SetContent(x, bottom, '─', nil, styleWall)
	}
	for y := f.y0; y < bottom; y++ {
		g.screen.SetContent(f.x0-1, y, '│', nil, styleWall)
		g.screen.SetContent(right, y, '│', nil, styleWall)
	}
}

func (g *Game) drawHUD(f field) {
	y := f.y0 + f.h + 1
	if f.h <= 0 {
		y = 0
	}
	g.text(0, y, hudLine(g.sim), styleHUD)

	switch offer := g.sim.Offer(); {
	case g.sim.Terminal():
		g.text(0, y+1, fmt.Sprintf(" GAME OVER on round %d, score %d. r restarts, q quits ", g.sim.Round().Round, g.sim.Score()), styleAlert)
	case g.sim.Paused():
		g.text(0, y+1, " PAUSED, p resumes ", styleAlert)
	case len(offer) > 0:
		g.text(0, y+1, offerLine(g.sim.Arsenal(), offer), styleAlert)
	}
	for i, l := range g.logs {
		g.text(0, y+2+i, l, styleHUD)
	}
}

func hudLine(s *combat.Sim) string {
	p := s.Player()
	r := s.Round()
	return fmt.Sprintf("Round %d  Score %d  HP %.0f/%.0f  %s  Kills %d  Bosses %d",
		r.Round, r.Score, p.HP, p.MaxHP, s.EquippedWeapon().Name, r.SkeletonsKilled, r.BossesKilled)
}

func offerLine(a *combat.Arsenal, offer []string) string {
	parts := make([]string, len(offer))
	for i, id := range offer {
		parts[i] = fmt.Sprintf("%d) %s", i+1, a.ProfileOf(id).Name)
	}
	return " Choose a weapon: " + strings.Join(parts, "  ") + " "
}
