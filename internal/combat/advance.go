package combat

import "math"

// seek steps e toward the player without overshooting and keeps it inside the arena.
func (s *Sim) seek(e *Enemy, speed, dt float64) {
	diff := s.player.Pos.Sub(e.Pos)
	dist := diff.Len()
	step := speed * s.cfg.Arena.MotionScale * dt
	if step > dist {
		step = dist
	}
	if step <= 0 {
		return
	}
	e.Pos = e.Pos.Add(diff.Norm().Scale(step)).Clamp(s.cfg.Arena.Size)
}

func (s *Sim) fade(e *Enemy, dt float64) {
	e.Fade = math.Max(0, e.Fade-s.cfg.Arena.DeathFadeRate*dt)
}

func (s *Sim) advanceEnemies(dt float64) {
	radius := s.cfg.Arena.ContactRadius
	for i := range s.enemies {
		e := &s.enemies[i]
		if e.Dead {
			s.fade(e, dt)
			continue
		}
		s.seek(e, e.Speed, dt)
		if e.Pos.Dist(s.player.Pos) < radius && s.now-e.LastAtkAt >= e.AtkCD {
			e.LastAtkAt = s.now
			s.damagePlayer(s.cfg.Enemies[e.Kind.String()].ContactDamage, e.Kind.String())
			if s.round.Terminal {
				return
			}
		}
	}
}

func (s *Sim) advanceProjectiles(dt float64) {
	size := s.cfg.Arena.Size
	scale := s.cfg.Arena.MotionScale
	for i := range s.projectiles {
		p := &s.projectiles[i]
		if p.Speed == 0 {
			continue
		}
		from := p.Pos
		p.Pos = p.Pos.Add(FromAngle(p.Angle).Scale(p.Speed * scale * dt))

		switch p.Owner {
		case OwnerPlayer:
			s.resolvePlayerShot(p, from)
		case OwnerEnemy:
			if segmentDist(from, p.Pos, s.player.Pos) <= s.cfg.Arena.PlayerHitRadius {
				p.Speed = 0
				s.damagePlayer(p.Damage, "bolt")
				if s.round.Terminal {
					return
				}
			}
		}
		if p.Speed != 0 && !p.Pos.Inside(size) {
			p.Speed = 0
		}
	}
}

// resolvePlayerShot hits the target met first along the segment the projectile swept
// this tick. On equal progress enemies win over bosses, then slice order.
func (s *Sim) resolvePlayerShot(p *Projectile, from Vec2) {
	var enemy *Enemy
	var boss *Boss
	best := math.Inf(1)
	for i := range s.enemies {
		e := &s.enemies[i]
		if e.Dead {
			continue
		}
		t, d := segmentProject(from, p.Pos, e.Pos)
		if d <= s.cfg.Arena.EnemyHitRadius && t < best {
			enemy, best = e, t
		}
	}
	for i := range s.bosses {
		b := &s.bosses[i]
		if b.Dead {
			continue
		}
		t, d := segmentProject(from, p.Pos, b.Pos)
		if d <= s.cfg.Arena.BossHitRadius && t < best {
			enemy, boss, best = nil, b, t
		}
	}
	switch {
	case boss != nil:
		p.Speed = 0
		s.hitBoss(boss, p.Damage)
	case enemy != nil:
		p.Speed = 0
		s.hitEnemy(enemy, p.Damage)
	}
}

func (s *Sim) hitEnemy(e *Enemy, dmg float64) {
	if !e.damage(dmg) {
		s.Emit(Event{T: s.now, Type: "Hit", Payload: map[string]any{"target": e.ID, "dmg": dmg, "hp": e.HP}})
		return
	}
	s.round.SkeletonsKilled++
	s.round.Score += s.cfg.Round.RegularKillScore
	s.spawnParticles(e.Pos, 8, ParticleDeath)
	s.Emit(Event{T: s.now, Type: "Kill", Payload: map[string]any{
		"target": e.ID, "kind": e.Kind.String(), "score": s.round.Score,
	}})
}

func (s *Sim) hitBoss(b *Boss, dmg float64) {
	if !b.damage(dmg) {
		s.Emit(Event{T: s.now, Type: "Hit", Payload: map[string]any{"target": b.ID, "dmg": dmg, "hp": b.HP, "boss": true}})
		s.advanceStage(b)
		return
	}
	s.round.BossesKilled++
	s.round.Score += s.cfg.Round.BossKillScore
	s.spawnParticles(b.Pos, 15, ParticleBossDeath)
	s.Emit(Event{T: s.now, Type: "Kill", Payload: map[string]any{
		"target": b.ID, "kind": b.BossKind.String(), "boss": true, "score": s.round.Score,
	}})
	s.logLine("boss %s (tier %d) defeated", b.BossKind, b.Tier)
}

func (s *Sim) advanceParticles(dt float64) {
	decay := s.cfg.Arena.ParticleDecay
	for i := range s.particles {
		pt := &s.particles[i]
		pt.Pos = pt.Pos.Add(pt.Vel.Scale(dt))
		pt.Life -= decay * dt
	}
}

// sweep drops spent projectiles, dead particles and fully faded corpses, keeping order.
func (s *Sim) sweep() {
	size := s.cfg.Arena.Size
	s.projectiles = compact(s.projectiles, func(p *Projectile) bool {
		return p.Speed != 0 && p.Pos.Inside(size)
	})
	s.particles = compact(s.particles, func(p *Particle) bool { return p.Life > 0 })
	s.enemies = compact(s.enemies, func(e *Enemy) bool { return !e.faded() })
	s.bosses = compact(s.bosses, func(b *Boss) bool { return !b.faded() })
}

func compact[T any](xs []T, keep func(*T) bool) []T {
	n := 0
	for i := range xs {
		if keep(&xs[i]) {
			xs[n] = xs[i]
			n++
		}
	}
	clear(xs[n:])
	return xs[:n]
}

// segmentDist is the distance from c to the segment ab.
func segmentDist(a, b, c Vec2) float64 {
	_, d := segmentProject(a, b, c)
	return d
}

// segmentProject returns how far along ab (0..1) the point closest to c lies, and
// the distance from c to it.
func segmentProject(a, b, c Vec2) (t, dist float64) {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return 0, c.Dist(a)
	}
	t = ((c.X-a.X)*ab.X + (c.Y-a.Y)*ab.Y) / l2
	t = clampF(t, 0, 1)
	return t, c.Dist(a.Add(ab.Scale(t)))
}
