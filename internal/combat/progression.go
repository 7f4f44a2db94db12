package combat

// waveCleared reports whether every enemy and boss is dead. Corpses that are still
// fading count as cleared.
func (s *Sim) waveCleared() bool {
	for i := range s.enemies {
		if !s.enemies[i].Dead {
			return false
		}
	}
	for i := range s.bosses {
		if !s.bosses[i].Dead {
			return false
		}
	}
	return true
}

// checkProgression advances the round once the field is clear. While a weapon offer
// is pending nothing new is spawned.
func (s *Sim) checkProgression() {
	if s.round.Terminal || len(s.round.Offer) > 0 || !s.waveCleared() {
		return
	}
	rc := s.cfg.Round
	s.round.Round++
	r := s.round.Round
	s.round.Score += r * rc.ClearBonus
	s.Emit(Event{T: s.now, Type: "RoundClear", Payload: map[string]any{"round": r, "score": s.round.Score}})

	switch {
	case r%rc.BossEvery == 0:
		s.SpawnBoss(r / rc.BossEvery)
	case r%rc.UpgradeEvery == 0:
		offer := s.rollOffer(rc.OfferSize)
		if len(offer) == 0 {
			s.SpawnWave(r, rc.WaveBase+r)
			return
		}
		s.round.Offer = offer
		s.Emit(Event{T: s.now, Type: "UpgradeOffer", Payload: map[string]any{"round": r, "weapons": offer}})
	default:
		s.SpawnWave(r, rc.WaveBase+r)
	}
}

// rollOffer draws up to n distinct weapons the player has not unlocked yet.
func (s *Sim) rollOffer(n int) []string {
	var locked []string
	for _, id := range s.arsenal.IDs() {
		if !s.player.HasUnlocked(id) {
			locked = append(locked, id)
		}
	}
	if n > len(locked) {
		n = len(locked)
	}
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(locked)-i)
		locked[i], locked[j] = locked[j], locked[i]
	}
	return locked[:n]
}

// SelectUpgrade resolves a pending offer: the weapon is unlocked, equipped, and the
// deferred wave spawns. It returns false when no offer is pending or id was not offered.
// An id outside the catalog panics.
func (s *Sim) SelectUpgrade(id string) bool {
	w := s.arsenal.ProfileOf(id)
	if s.round.Terminal || len(s.round.Offer) == 0 {
		return false
	}
	offered := false
	for _, o := range s.round.Offer {
		if o == id {
			offered = true
			break
		}
	}
	if !offered {
		return false
	}
	if !s.player.HasUnlocked(id) {
		s.player.Unlocked = append(s.player.Unlocked, id)
	}
	s.player.Weapon = id
	s.player.LastFireAt = s.now - w.FireInterval
	s.round.Offer = nil
	s.Emit(Event{T: s.now, Type: "UpgradeSelected", Payload: map[string]any{"weapon": id, "round": s.round.Round}})
	s.logLine("player equips %s", w.Name)
	r := s.round.Round
	s.SpawnWave(r, s.cfg.Round.WaveBase+r)
	return true
}
