package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadTuningFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "tuning.yaml", `
arena:
  size: 800
player:
  max_health: 150
enemies:
  tank:
    max_health: 200
boss:
  specials:
    golem:
      damage: 35
round:
  offer_size: 2
`)

	tc, err := LoadTuning(p)
	require.NoError(t, err)
	d := Default()

	assert.Equal(t, 800.0, tc.Arena.Size)
	assert.Equal(t, d.Arena.MotionScale, tc.Arena.MotionScale)
	assert.Equal(t, 150.0, tc.Player.MaxHealth)
	assert.Equal(t, "pistol", tc.Player.StartWeapon)

	assert.Equal(t, 200.0, tc.Enemies["tank"].MaxHealth)
	assert.Equal(t, 0.7, tc.Enemies["tank"].Speed)
	assert.Equal(t, d.Enemies["normal"], tc.Enemies["normal"])

	assert.Equal(t, 35.0, tc.Boss.Specials["golem"].Damage)
	assert.Equal(t, 8.0, tc.Boss.Specials["golem"].Cooldown)
	assert.Equal(t, 3, tc.Boss.Specials["lord"].Count)

	assert.Equal(t, 2, tc.Round.OfferSize)
	assert.Equal(t, 10, tc.Round.BossEvery)
}

func TestLoadTuningMalformed(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "tuning.yaml", "arena: [1, 2\n")
	_, err := LoadTuning(p)
	assert.Error(t, err)

	_, err = LoadTuning(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadAllOptionalFiles(t *testing.T) {
	tc, wc, err := LoadAll(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), tc)
	assert.Empty(t, wc.Weapons)

	dir := t.TempDir()
	writeFile(t, dir, "weapons.yaml", `
weapons:
  - id: pistol
    damage: 40
  - id: railgun
    name: Railgun
    damage: 250
    range: 700
`)
	tc, wc, err = LoadAll(dir)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, tc.Arena.Size)
	require.Len(t, wc.Weapons, 2)
	assert.Equal(t, "railgun", wc.Weapons[1].ID)
	assert.Equal(t, 700.0, wc.Weapons[1].Range)
}

func TestLoadAllBadWeapons(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "weapons.yaml", "weapons: {id: [\n")
	_, _, err := LoadAll(dir)
	assert.ErrorContains(t, err, "load weapons")
}

func TestServerEnv(t *testing.T) {
	t.Setenv("ARENA_ADDR", ":9090")
	t.Setenv("ARENA_SEED", "1234")
	t.Setenv("ARENA_TICK_HZ", "thirty")
	t.Setenv("ARENA_CONFIG_DIR", "")

	env := LoadServerEnv()
	assert.Equal(t, ":9090", env.Addr)
	assert.Equal(t, int64(1234), env.Seed)
	assert.Equal(t, 60, env.TickHz)
	assert.Equal(t, "assets", env.ConfigDir)
}

func TestInitEnvFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, ".env", "ARENA_TEST_ONLY=from-file\n")
	t.Setenv("ARENA_TEST_ONLY", "")
	require.NoError(t, os.Unsetenv("ARENA_TEST_ONLY"))

	require.NoError(t, InitEnv(p))
	assert.Equal(t, "from-file", EnvOr("ARENA_TEST_ONLY", "x"))

	assert.NoError(t, InitEnv(filepath.Join(dir, "nope.env")))

	_, err := GetEnvVariable("")
	assert.Error(t, err)
}

func TestShippedAssetsMatchDefaults(t *testing.T) {
	tc, wc, err := LoadAll("../../assets")
	require.NoError(t, err)
	d := Default()

	assert.Equal(t, d.Arena, tc.Arena)
	assert.Equal(t, d.Player, tc.Player)
	assert.Equal(t, d.Round, tc.Round)
	assert.Equal(t, d.Boss.Stages, tc.Boss.Stages)
	for k, def := range d.Enemies {
		got := tc.Enemies[k]
		got.Note = ""
		assert.Equal(t, def, got, k)
	}
	for k, def := range d.Boss.Specials {
		got := tc.Boss.Specials[k]
		got.Note = ""
		assert.Equal(t, def, got, k)
	}
	require.NotEmpty(t, wc.Weapons)
	assert.Equal(t, "pistol", wc.Weapons[0].ID)
}

func TestShippedNotes(t *testing.T) {
	tc, _, err := LoadAll("../../assets")
	require.NoError(t, err)
	notes := tc.Notes()
	require.Len(t, notes, 8)
	assert.Equal(t, "Enemy archer: from round 10", notes[0])
	assert.Equal(t, "Boss emperor: teleport", notes[3])
	assert.Equal(t, "Boss necromancer: radial bolts", notes[7])
	assert.Empty(t, Default().Notes())
}
