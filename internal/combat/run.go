package combat

type SimResult struct {
	Survived        bool           `json:"survived"` // reached the time limit alive
	Duration        float64        `json:"duration"`
	Round           int            `json:"round"`
	Score           int            `json:"score"`
	SkeletonsKilled int            `json:"skeletons_killed"`
	BossesKilled    int            `json:"bosses_killed"`
	Weapon          string         `json:"weapon"`
	Unlocked        []string       `json:"unlocked"`
	DamageTaken     float64        `json:"damage_taken"`
	ShotsByWeapon   map[string]int `json:"shots_by_weapon"`
	Events          []Event        `json:"events,omitempty"`
	Meta            SimMeta        `json:"meta"`
}

type SimMeta struct {
	ArenaSize float64  `json:"arena_size"`
	Delta     float64  `json:"delta"`
	MaxTime   float64  `json:"max_time"`
	Note      string   `json:"note,omitempty"`
	Notes     []string `json:"notes,omitempty"`
}

// RunSingle plays a session headless with a fixed step until the player falls or
// maxTime of simulated time has passed.
func RunSingle(s *Sim, policy InputPolicy, dt, maxTime float64, record bool) SimResult {
	var events []Event
	damageTaken := 0.0
	shots := map[string]int{}

	prev := s.Emit
	s.Emit = func(ev Event) {
		prev(ev)
		switch ev.Type {
		case "PlayerHit":
			if v, ok := ev.Payload["dmg"].(float64); ok {
				damageTaken += v
			}
		case "Fire", "Swing":
			if w, ok := ev.Payload["weapon"].(string); ok {
				shots[w]++
			}
		}
		if record {
			events = append(events, ev)
		}
	}
	defer func() { s.Emit = prev }()

	for dt > 0 && s.Now() < maxTime && !s.Terminal() && !s.Paused() {
		if offer := s.Offer(); len(offer) > 0 {
			if pick := policy.Choose(offer); pick != "" {
				s.SelectUpgrade(pick)
			}
		}
		if err := s.SetInput(policy.Steer(s)); err != nil {
			_ = s.SetInput(Vec2{})
		}
		if err := s.Advance(dt); err != nil {
			break
		}
	}

	p := s.Player()
	r := s.Round()
	res := SimResult{
		Survived:        !r.Terminal,
		Duration:        s.Now(),
		Round:           r.Round,
		Score:           r.Score,
		SkeletonsKilled: r.SkeletonsKilled,
		BossesKilled:    r.BossesKilled,
		Weapon:          p.Weapon,
		Unlocked:        p.Unlocked,
		DamageTaken:     damageTaken,
		ShotsByWeapon:   shots,
		Meta: SimMeta{
			ArenaSize: s.ArenaSize(),
			Delta:     dt,
			MaxTime:   maxTime,
			Notes:     append(s.cfg.Notes(), s.arsenal.Notes()...),
		},
	}
	if record {
		res.Events = events
	}
	return res
}
