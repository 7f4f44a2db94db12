package combat

import "math"

// enemyKindForRound picks the regular archetype for a round. Thresholds are fixed, not rolled.
func enemyKindForRound(round int) EnemyKind {
	switch {
	case round >= 20:
		return EnemyTank
	case round >= 15:
		return EnemyMage
	case round >= 10:
		return EnemyArcher
	default:
		return EnemyNormal
	}
}

// edgePosition samples a point on one of the four arena sides.
func (s *Sim) edgePosition() Vec2 {
	size := s.cfg.Arena.Size
	side := s.rng.Intn(4)
	t := s.rng.Float64() * size
	switch side {
	case 0:
		return Vec2{X: t, Y: 0}
	case 1:
		return Vec2{X: size, Y: t}
	case 2:
		return Vec2{X: t, Y: size}
	default:
		return Vec2{X: 0, Y: t}
	}
}

// SpawnWave adds count regular enemies on the arena edge, typed and scaled by round.
func (s *Sim) SpawnWave(round, count int) {
	kind := enemyKindForRound(round)
	for i := 0; i < count; i++ {
		s.spawnEnemy(kind, round, s.edgePosition())
	}
	s.Emit(Event{T: s.now, Type: "WaveSpawn", Payload: map[string]any{
		"round": round, "count": count, "kind": kind.String(),
	}})
}

func (s *Sim) spawnEnemy(kind EnemyKind, round int, pos Vec2) {
	def := s.cfg.Enemies[kind.String()]
	cd := s.cfg.Arena.ContactCooldown
	e := Enemy{
		ID:        s.newID(),
		Kind:      kind,
		Pos:       pos.Clamp(s.cfg.Arena.Size),
		HP:        def.MaxHealth,
		MaxHP:     def.MaxHealth,
		Speed:     def.Speed + float64(round)*s.cfg.Arena.RoundSpeedStep,
		LastAtkAt: s.now - cd,
		AtkCD:     cd,
	}
	s.enemies = append(s.enemies, e)
}

// SpawnBoss adds one boss. Tiers cycle through the five archetypes while stats keep growing.
func (s *Sim) SpawnBoss(tier int) {
	if tier < 1 {
		tier = 1
	}
	bc := s.cfg.Boss
	kind := BossKindForTier(tier)
	hp := bc.BaseHealth + float64(tier-1)*bc.HealthPerTier
	b := Boss{
		Enemy: Enemy{
			ID:        s.newID(),
			Pos:       s.edgePosition(),
			HP:        hp,
			MaxHP:     hp,
			Speed:     bc.BaseSpeed + float64(tier)*bc.SpeedPerTier,
			LastAtkAt: s.now - bc.MeleeCooldown,
			AtkCD:     bc.MeleeCooldown,
		},
		BossKind:  kind,
		Tier:      tier,
		SpecialCD: s.cfg.Boss.Specials[kind.String()].Cooldown,
		LastSpcAt: s.now,
	}
	s.bosses = append(s.bosses, b)
	s.Emit(Event{T: s.now, Type: "BossSpawn", Payload: map[string]any{
		"id": b.ID, "kind": kind.String(), "tier": tier, "hp": hp, "x": b.Pos.X, "y": b.Pos.Y,
	}})
	s.logLine("boss %s (tier %d) enters with %.0f HP", kind, tier, hp)
}

// spawnRing places n regular enemies evenly on a circle around center.
func (s *Sim) spawnRing(center Vec2, n int, radius float64) {
	kind := enemyKindForRound(s.round.Round)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		s.spawnEnemy(kind, s.round.Round, center.Add(FromAngle(a).Scale(radius)))
	}
}

func (s *Sim) spawnParticles(at Vec2, n int, kind ParticleKind) {
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		s.particles = append(s.particles, Particle{
			Pos:  at,
			Vel:  FromAngle(a).Scale(particleSpeed),
			Life: 1,
			Kind: kind,
		})
	}
}

const particleSpeed = 90.0
