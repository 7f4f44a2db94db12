package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavearena/internal/combat"
	"wavearena/internal/config"
	"wavearena/internal/util"
)

func newTestGame(t *testing.T, cfg *config.TuningConfig) *Game {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	sim := combat.NewSim(cfg, nil, util.New(1), nil)
	return NewGame(screen, sim, &sounds{})
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func row(g *Game, y int) string {
	var b strings.Builder
	for x := 0; x < g.width; x++ {
		r, _, _, _ := g.screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestFieldCell(t *testing.T) {
	f := field{x0: 1, y0: 1, w: 50, h: 20}
	x, y, ok := f.cell(combat.Vec2{}, 1000)
	require.True(t, ok)
	assert.Equal(t, [2]int{1, 1}, [2]int{x, y})

	x, y, _ = f.cell(combat.Vec2{X: 1000, Y: 1000}, 1000)
	assert.Equal(t, [2]int{50, 20}, [2]int{x, y})

	_, _, ok = field{w: 0, h: 5}.cell(combat.Vec2{}, 1000)
	assert.False(t, ok)
}

func TestDrawShowsPlayerAndHUD(t *testing.T) {
	g := newTestGame(t, nil)
	g.draw()

	f := g.field()
	x, y, ok := f.cell(g.sim.Player().Pos, g.sim.ArenaSize())
	require.True(t, ok)
	r, _, _, _ := g.screen.GetContent(x, y)
	assert.Equal(t, '@', r)

	hud := row(g, f.y0+f.h+1)
	assert.Contains(t, hud, "Round 1")
	assert.Contains(t, hud, "HP 100/100")
	assert.Contains(t, hud, "Pistol")
}

func TestKeysSteerUntilHoldExpires(t *testing.T) {
	g := newTestGame(t, nil)
	now := time.Now()

	require.True(t, g.handleInput(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), now))
	g.update(1.0/60, now)
	x := g.sim.Player().Pos.X
	assert.Greater(t, x, 500.0)

	g.update(1.0/60, now.Add(time.Second))
	assert.Equal(t, x, g.sim.Player().Pos.X)

	require.True(t, g.handleInput(key('w'), now))
	assert.Equal(t, combat.Vec2{Y: -1}, g.intent)
	require.True(t, g.handleInput(key(' '), now))
	assert.Equal(t, combat.Vec2{}, g.intent)
}

func TestOfferKeysPickWeapon(t *testing.T) {
	cfg := config.Default()
	cfg.Round.StarterWave = 0
	cfg.Round.UpgradeEvery = 1
	g := newTestGame(t, cfg)

	g.update(1.0/60, time.Now())
	offer := g.sim.Offer()
	require.Len(t, offer, 3)

	g.draw()
	f := g.field()
	assert.Contains(t, row(g, f.y0+f.h+2), "Choose a weapon")

	g.handleInput(key('9'), time.Now())
	assert.Len(t, g.sim.Offer(), 3)

	g.handleInput(key('2'), time.Now())
	assert.Empty(t, g.sim.Offer())
	assert.Equal(t, offer[1], g.sim.Player().Weapon)
}

func TestPauseAndQuit(t *testing.T) {
	g := newTestGame(t, nil)
	now := time.Now()

	assert.True(t, g.handleInput(key('p'), now))
	assert.True(t, g.sim.Paused())
	assert.True(t, g.handleInput(key('p'), now))
	assert.False(t, g.sim.Paused())

	assert.False(t, g.handleInput(key('q'), now))
	assert.False(t, g.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), now))
}

func TestLogKeepsLastLines(t *testing.T) {
	g := newTestGame(t, nil)
	for i := 0; i < 5; i++ {
		g.onEvent(combat.Event{Type: "LogLine", Payload: map[string]any{"text": string(rune('a' + i))}})
	}
	assert.Equal(t, []string{"c", "d", "e"}, g.logs)
}
