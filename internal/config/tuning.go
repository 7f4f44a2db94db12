package config

import (
	"fmt"
	"sort"
)

type TuningConfig struct {
	Arena   ArenaConfig         `yaml:"arena"`
	Player  PlayerConfig        `yaml:"player"`
	Enemies map[string]EnemyDef `yaml:"enemies"`
	Boss    BossConfig          `yaml:"boss"`
	Round   RoundConfig         `yaml:"round"`
}

type ArenaConfig struct {
	Size                 float64 `yaml:"size"`
	MotionScale          float64 `yaml:"motion_scale"` // speed units are per reference frame; this converts to per second
	ProjectileSpeed      float64 `yaml:"projectile_speed"`
	EnemyProjectileSpeed float64 `yaml:"enemy_projectile_speed"`
	ContactRadius        float64 `yaml:"contact_radius"`
	ContactCooldown      float64 `yaml:"contact_cooldown"`
	EnemyHitRadius       float64 `yaml:"enemy_hit_radius"`
	BossHitRadius        float64 `yaml:"boss_hit_radius"`
	PlayerHitRadius      float64 `yaml:"player_hit_radius"`
	RoundSpeedStep       float64 `yaml:"round_speed_step"`
	DeathFadeRate        float64 `yaml:"death_fade_rate"`
	ParticleDecay        float64 `yaml:"particle_decay"`
	Note                 string  `yaml:"note"`
}

type PlayerConfig struct {
	MaxHealth   float64 `yaml:"max_health"`
	Speed       float64 `yaml:"speed"`
	StartWeapon string  `yaml:"start_weapon"`
}

type EnemyDef struct {
	MaxHealth     float64 `yaml:"max_health"`
	Speed         float64 `yaml:"speed"`
	ContactDamage float64 `yaml:"contact_damage"`
	Note          string  `yaml:"note"`
}

type BossConfig struct {
	BaseHealth    float64 `yaml:"base_health"`
	HealthPerTier float64 `yaml:"health_per_tier"`
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedPerTier  float64 `yaml:"speed_per_tier"`
	MeleeRadius   float64 `yaml:"melee_radius"`
	MeleeDamage   float64 `yaml:"melee_damage"`
	MeleeCooldown float64 `yaml:"melee_cooldown"`

	Specials map[string]SpecialDef `yaml:"specials"`
	Stages   []StageDef            `yaml:"stages"` // ordered by falling threshold
}

// StageDef announces a boss crossing a health fraction. Announce is a format string
// that receives the boss kind.
type StageDef struct {
	Threshold float64 `yaml:"threshold"`
	Announce  string  `yaml:"announce"`
}

type SpecialDef struct {
	Cooldown float64 `yaml:"cooldown"`
	Damage   float64 `yaml:"damage"`
	Count    int     `yaml:"count"`
	Duration float64 `yaml:"duration"`
	Factor   float64 `yaml:"factor"`
	Note     string  `yaml:"note"`
}

type RoundConfig struct {
	StarterWave      int `yaml:"starter_wave"`
	WaveBase         int `yaml:"wave_base"`
	BossEvery        int `yaml:"boss_every"`
	UpgradeEvery     int `yaml:"upgrade_every"`
	OfferSize        int `yaml:"offer_size"`
	ClearBonus       int `yaml:"clear_bonus"`
	RegularKillScore int `yaml:"regular_kill_score"`
	BossKillScore    int `yaml:"boss_kill_score"`
}

// Default returns the stock balance the game ships with.
func Default() *TuningConfig {
	return &TuningConfig{
		Arena: ArenaConfig{
			Size:                 1000,
			MotionScale:          60,
			ProjectileSpeed:      10,
			EnemyProjectileSpeed: 5,
			ContactRadius:        30,
			ContactCooldown:      1.0,
			EnemyHitRadius:       20,
			BossHitRadius:        40,
			PlayerHitRadius:      20,
			RoundSpeedStep:       0.05,
			DeathFadeRate:        2.0,
			ParticleDecay:        1.5,
		},
		Player: PlayerConfig{
			MaxHealth:   100,
			Speed:       5,
			StartWeapon: "pistol",
		},
		Enemies: map[string]EnemyDef{
			"normal": {MaxHealth: 30, Speed: 1.0, ContactDamage: 1},
			"archer": {MaxHealth: 50, Speed: 1.2, ContactDamage: 2},
			"mage":   {MaxHealth: 40, Speed: 1.1, ContactDamage: 3},
			"tank":   {MaxHealth: 120, Speed: 0.7, ContactDamage: 5},
		},
		Boss: BossConfig{
			BaseHealth:    500,
			HealthPerTier: 200,
			BaseSpeed:     2,
			SpeedPerTier:  0.5,
			MeleeRadius:   50,
			MeleeDamage:   15,
			MeleeCooldown: 2.0,
			Specials: map[string]SpecialDef{
				"lord":        {Cooldown: 5.0, Count: 3},
				"necromancer": {Cooldown: 3.0, Count: 8, Damage: 10},
				"golem":       {Cooldown: 8.0, Damage: 20},
				"knight":      {Cooldown: 4.0, Duration: 1.0, Factor: 3.0},
				"emperor":     {Cooldown: 6.0},
			},
			Stages: []StageDef{
				{Threshold: 0.5, Announce: "%s is enraged"},
				{Threshold: 0.25, Announce: "%s is staggering"},
			},
		},
		Round: RoundConfig{
			StarterWave:      3,
			WaveBase:         3,
			BossEvery:        10,
			UpgradeEvery:     5,
			OfferSize:        3,
			ClearBonus:       100,
			RegularKillScore: 50,
			BossKillScore:    500,
		},
	}
}

// fillDefaults copies stock values into every field the file left at zero.
// Notes collects the free-text notes of the tuning file for run metadata:
// the arena note first, then enemies and boss specials by name.
func (c *TuningConfig) Notes() []string {
	var notes []string
	if c.Arena.Note != "" {
		notes = append(notes, c.Arena.Note)
	}
	for _, k := range sortedKeys(c.Enemies) {
		if n := c.Enemies[k].Note; n != "" {
			notes = append(notes, fmt.Sprintf("Enemy %s: %s", k, n))
		}
	}
	for _, k := range sortedKeys(c.Boss.Specials) {
		if n := c.Boss.Specials[k].Note; n != "" {
			notes = append(notes, fmt.Sprintf("Boss %s: %s", k, n))
		}
	}
	return notes
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *TuningConfig) fillDefaults() {
	d := Default()

	setF := func(dst *float64, v float64) {
		if *dst == 0 {
			*dst = v
		}
	}
	setI := func(dst *int, v int) {
		if *dst == 0 {
			*dst = v
		}
	}

	a, da := &c.Arena, d.Arena
	setF(&a.Size, da.Size)
	setF(&a.MotionScale, da.MotionScale)
	setF(&a.ProjectileSpeed, da.ProjectileSpeed)
	setF(&a.EnemyProjectileSpeed, da.EnemyProjectileSpeed)
	setF(&a.ContactRadius, da.ContactRadius)
	setF(&a.ContactCooldown, da.ContactCooldown)
	setF(&a.EnemyHitRadius, da.EnemyHitRadius)
	setF(&a.BossHitRadius, da.BossHitRadius)
	setF(&a.PlayerHitRadius, da.PlayerHitRadius)
	setF(&a.RoundSpeedStep, da.RoundSpeedStep)
	setF(&a.DeathFadeRate, da.DeathFadeRate)
	setF(&a.ParticleDecay, da.ParticleDecay)

	setF(&c.Player.MaxHealth, d.Player.MaxHealth)
	setF(&c.Player.Speed, d.Player.Speed)
	if c.Player.StartWeapon == "" {
		c.Player.StartWeapon = d.Player.StartWeapon
	}

	if c.Enemies == nil {
		c.Enemies = map[string]EnemyDef{}
	}
	for k, def := range d.Enemies {
		cur := c.Enemies[k]
		setF(&cur.MaxHealth, def.MaxHealth)
		setF(&cur.Speed, def.Speed)
		setF(&cur.ContactDamage, def.ContactDamage)
		c.Enemies[k] = cur
	}

	b, db := &c.Boss, d.Boss
	setF(&b.BaseHealth, db.BaseHealth)
	setF(&b.HealthPerTier, db.HealthPerTier)
	setF(&b.BaseSpeed, db.BaseSpeed)
	setF(&b.SpeedPerTier, db.SpeedPerTier)
	setF(&b.MeleeRadius, db.MeleeRadius)
	setF(&b.MeleeDamage, db.MeleeDamage)
	setF(&b.MeleeCooldown, db.MeleeCooldown)
	if b.Specials == nil {
		b.Specials = map[string]SpecialDef{}
	}
	for k, def := range db.Specials {
		cur := b.Specials[k]
		setF(&cur.Cooldown, def.Cooldown)
		setF(&cur.Damage, def.Damage)
		setI(&cur.Count, def.Count)
		setF(&cur.Duration, def.Duration)
		setF(&cur.Factor, def.Factor)
		b.Specials[k] = cur
	}
	if b.Stages == nil {
		b.Stages = db.Stages
	}

	r, dr := &c.Round, d.Round
	setI(&r.StarterWave, dr.StarterWave)
	setI(&r.WaveBase, dr.WaveBase)
	setI(&r.BossEvery, dr.BossEvery)
	setI(&r.UpgradeEvery, dr.UpgradeEvery)
	setI(&r.OfferSize, dr.OfferSize)
	setI(&r.ClearBonus, dr.ClearBonus)
	setI(&r.RegularKillScore, dr.RegularKillScore)
	setI(&r.BossKillScore, dr.BossKillScore)
}
