package combat

import "math"

// bossBehavior pairs a movement mode with a special attack. Timers live on the Boss.
type bossBehavior struct {
	move    func(s *Sim, b *Boss, dt float64)
	special func(s *Sim, b *Boss)
}

var bossBehaviors = [...]bossBehavior{
	BossLord:        {move: seekAt(1.0), special: summonMinions},
	BossNecromancer: {move: weave, special: boltRing},
	BossGolem:       {move: seekAt(0.5), special: groundSlam},
	BossKnight:      {move: charge, special: startBurst},
	BossEmperor:     {move: hold, special: teleport},
}

const (
	weaveFreq       = 2.0 // rad/s
	weaveAmp        = 0.8
	knightCruise    = 1.5
	minionRingRange = 60.0
)

func (s *Sim) advanceBosses(dt float64) {
	bc := s.cfg.Boss
	for i := range s.bosses {
		b := &s.bosses[i]
		if b.Dead {
			s.fade(&b.Enemy, dt)
			continue
		}
		bh := bossBehaviors[b.BossKind]
		bh.move(s, b, dt)

		if b.Pos.Dist(s.player.Pos) <= bc.MeleeRadius && s.now-b.LastAtkAt >= b.AtkCD {
			b.LastAtkAt = s.now
			s.damagePlayer(bc.MeleeDamage, b.BossKind.String())
			if s.round.Terminal {
				return
			}
		}
		if s.now-b.LastSpcAt >= b.SpecialCD {
			b.LastSpcAt = s.now
			b.Specials++
			s.Emit(Event{T: s.now, Type: "BossSpecial", Payload: map[string]any{
				"id": b.ID, "kind": b.BossKind.String(), "n": b.Specials,
			}})
			bh.special(s, b)
			if s.round.Terminal {
				return
			}
		}
	}
}

func (s *Sim) special(k BossKind) specialParams {
	d := s.cfg.Boss.Specials[k.String()]
	return specialParams{damage: d.Damage, count: d.Count, duration: d.Duration, factor: d.Factor}
}

type specialParams struct {
	damage   float64
	count    int
	duration float64
	factor   float64
}

// ---- movement modes ----

func seekAt(mult float64) func(*Sim, *Boss, float64) {
	return func(s *Sim, b *Boss, dt float64) {
		s.seek(&b.Enemy, b.Speed*mult, dt)
	}
}

// weave approaches the player along a sinusoidal lateral offset.
func weave(s *Sim, b *Boss, dt float64) {
	b.Phase = math.Mod(b.Phase+weaveFreq*dt, 2*math.Pi)
	diff := s.player.Pos.Sub(b.Pos)
	dist := diff.Len()
	if dist == 0 {
		return
	}
	fwd := diff.Norm()
	dir := fwd.Add(fwd.Perp().Scale(weaveAmp * math.Sin(b.Phase))).Norm()
	step := b.Speed * s.cfg.Arena.MotionScale * dt
	if step > dist {
		step = dist
	}
	b.Pos = b.Pos.Add(dir.Scale(step)).Clamp(s.cfg.Arena.Size)
}

func charge(s *Sim, b *Boss, dt float64) {
	mult := knightCruise
	if s.now < b.BurstEnd {
		mult = s.special(BossKnight).factor
	}
	s.seek(&b.Enemy, b.Speed*mult, dt)
}

func hold(*Sim, *Boss, float64) {}

// ---- special attacks ----

func summonMinions(s *Sim, b *Boss) {
	n := s.special(BossLord).count
	s.spawnRing(b.Pos, n, minionRingRange)
	s.logLine("%s summons %d minions", b.BossKind, n)
}

func boltRing(s *Sim, b *Boss) {
	p := s.special(BossNecromancer)
	for i := 0; i < p.count; i++ {
		s.projectiles = append(s.projectiles, Projectile{
			ID:     s.newID(),
			Pos:    b.Pos,
			Angle:  2 * math.Pi * float64(i) / float64(p.count),
			Speed:  s.cfg.Arena.EnemyProjectileSpeed,
			Damage: p.damage,
			Owner:  OwnerEnemy,
		})
	}
}

func groundSlam(s *Sim, b *Boss) {
	s.damagePlayer(s.special(BossGolem).damage, "golem_slam")
}

func startBurst(s *Sim, b *Boss) {
	b.BurstEnd = s.now + s.special(BossKnight).duration
}

func teleport(s *Sim, b *Boss) {
	size := s.cfg.Arena.Size
	old := b.Pos
	b.Pos = Vec2{X: s.rng.Float64() * size, Y: s.rng.Float64() * size}
	s.Emit(Event{T: s.now, Type: "BossMove", Payload: map[string]any{
		"id": b.ID, "from": []float64{old.X, old.Y}, "to": []float64{b.Pos.X, b.Pos.Y},
	}})
}
