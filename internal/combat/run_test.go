package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavearena/internal/config"
	"wavearena/internal/util"
)

func TestRunSingleIsDeterministic(t *testing.T) {
	run := func() SimResult {
		s := NewSim(nil, nil, util.New(42), nil)
		return RunSingle(s, &KitePolicy{}, 1.0/30, 60, false)
	}
	a, b := run(), run()
	assert.Equal(t, a, b)
	assert.Nil(t, a.Events)
	assert.Positive(t, a.ShotsByWeapon["pistol"])
	assert.Equal(t, 1.0/30, a.Meta.Delta)
}

func TestRunSingleRecordsAndRestoresEmit(t *testing.T) {
	n := 0
	s := NewSim(nil, nil, util.New(7), func(Event) { n++ })
	res := RunSingle(s, IdlePolicy{}, frame, 2, true)

	require.NotEmpty(t, res.Events)
	assert.Equal(t, len(res.Events), n-2, "outer emitter sees every recorded event plus Reset and WaveSpawn")
	fired := false
	for _, ev := range res.Events {
		if ev.Type == "Fire" {
			fired = true
		}
	}
	assert.True(t, fired)

	before := n
	s.SetPaused(true)
	assert.Equal(t, before+1, n)
	assert.Len(t, res.Events, before-2)
}

func TestRunSingleReportsDeath(t *testing.T) {
	s := newTestSim(t)
	s.player.HP = 1
	s.enemies = s.enemies[:1]
	s.enemies[0].Pos = s.player.Pos.Add(Vec2{X: 5})

	res := RunSingle(s, IdlePolicy{}, frame, 60, false)
	assert.False(t, res.Survived)
	assert.InDelta(t, frame, res.Duration, 1e-12)
	assert.Equal(t, 1.0, res.DamageTaken)
}

func TestRunSingleStopsOnBadDelta(t *testing.T) {
	s := newTestSim(t)
	res := RunSingle(s, IdlePolicy{}, 0, 60, false)
	assert.Equal(t, 0.0, res.Duration)
	assert.True(t, res.Survived)
}

func TestKitePolicyBacksAway(t *testing.T) {
	s := newTestSim(t)
	s.enemies = s.enemies[:1]
	s.enemies[0].Pos = s.player.Pos.Add(Vec2{X: 50})

	v := (&KitePolicy{}).Steer(s)
	assert.Less(t, v.X, 0.0)
	assert.InDelta(t, 0, v.Y, 1e-9)
	assert.LessOrEqual(t, v.Len(), 1.0)

	assert.Equal(t, "rifle", (&KitePolicy{}).Choose([]string{"rifle", "bow"}))
	assert.Equal(t, "", IdlePolicy{}.Choose(nil))
}

func TestRunSingleCarriesConfigNotes(t *testing.T) {
	cfg := config.Default()
	cfg.Arena.Note = "long arena"
	tank := cfg.Enemies["tank"]
	tank.Note = "slow"
	cfg.Enemies["tank"] = tank
	arsenal := NewArsenal(&config.WeaponsConfig{Weapons: []config.WeaponDef{
		{ID: "pistol", Damage: 40, Note: "buffed"},
	}})

	s := NewSim(cfg, arsenal, util.New(1), nil)
	res := RunSingle(s, IdlePolicy{}, frame, 0.5, false)
	assert.Equal(t, []string{"long arena", "Enemy tank: slow", "Weapon pistol: buffed"}, res.Meta.Notes)
}
