package combat

// autoFire discharges the equipped weapon once its interval has elapsed.
func (s *Sim) autoFire() {
	w := s.arsenal.ProfileOf(s.player.Weapon)
	if !w.AutoFire || s.now-s.player.LastFireAt < w.FireInterval {
		return
	}
	s.player.LastFireAt = s.now
	if w.Melee {
		s.meleeSweep(w)
		return
	}
	target, ok := s.nearestTarget()
	if !ok {
		return
	}
	base := target.Sub(s.player.Pos).Angle()
	for i := 0; i < w.Projectiles; i++ {
		angle := base
		if w.Spread > 0 {
			angle += (s.rng.Float64() - 0.5) * w.Spread
		}
		s.projectiles = append(s.projectiles, Projectile{
			ID:     s.newID(),
			Pos:    s.player.Pos,
			Angle:  angle,
			Speed:  s.cfg.Arena.ProjectileSpeed,
			Damage: w.Damage,
			Owner:  OwnerPlayer,
		})
	}
	s.Emit(Event{T: s.now, Type: "Fire", Payload: map[string]any{
		"weapon": w.ID, "count": w.Projectiles, "angle": base,
	}})
}

// meleeSweep hits every live enemy and boss inside the weapon range.
func (s *Sim) meleeSweep(w WeaponProfile) {
	hits := 0
	for i := range s.enemies {
		e := &s.enemies[i]
		if !e.Dead && e.Pos.Dist(s.player.Pos) <= w.Range {
			s.hitEnemy(e, w.Damage)
			hits++
		}
	}
	for i := range s.bosses {
		b := &s.bosses[i]
		if !b.Dead && b.Pos.Dist(s.player.Pos) <= w.Range {
			s.hitBoss(b, w.Damage)
			hits++
		}
	}
	s.Emit(Event{T: s.now, Type: "Swing", Payload: map[string]any{"weapon": w.ID, "hits": hits}})
}

// nearestTarget returns the closest live enemy or boss. Equal distances resolve to
// whichever is scanned first.
func (s *Sim) nearestTarget() (Vec2, bool) {
	var best Vec2
	bestDist := -1.0
	consider := func(e *Enemy) {
		if e.Dead {
			return
		}
		d := e.Pos.Dist(s.player.Pos)
		if bestDist < 0 || d < bestDist {
			best, bestDist = e.Pos, d
		}
	}
	for i := range s.enemies {
		consider(&s.enemies[i])
	}
	for i := range s.bosses {
		consider(&s.bosses[i].Enemy)
	}
	return best, bestDist >= 0
}
