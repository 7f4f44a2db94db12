package combat

// advanceStage announces every health threshold the boss has crossed since the last
// check. Stages are cosmetic: they never change stats or behavior.
func (s *Sim) advanceStage(b *Boss) {
	stages := s.cfg.Boss.Stages
	if b.MaxHP <= 0 {
		return
	}
	hpPct := b.HP / b.MaxHP
	for b.Stage < len(stages) && hpPct <= stages[b.Stage].Threshold {
		st := stages[b.Stage]
		b.Stage++
		s.Emit(Event{T: s.now, Type: "PhaseEnter", Payload: map[string]any{
			"id": b.ID, "kind": b.BossKind.String(), "phase": b.Stage, "threshold": st.Threshold,
		}})
		if st.Announce != "" {
			s.logLine(st.Announce, b.BossKind)
		}
	}
}
