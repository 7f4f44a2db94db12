package combat

// InputPolicy drives a session without a human: it picks the movement intent each
// tick and answers weapon offers.
type InputPolicy interface {
	Steer(s *Sim) Vec2
	Choose(offer []string) string
}

// KitePolicy backs away from anything inside Comfort and otherwise drifts toward the
// arena center so it does not get pinned to a wall. Pick chooses among offered weapons;
// nil takes the first.
type KitePolicy struct {
	Comfort float64
	Pick    func(offer []string) string
}

func (k *KitePolicy) Steer(s *Sim) Vec2 {
	comfort := k.Comfort
	if comfort <= 0 {
		comfort = 150
	}
	me := s.player.Pos
	var push Vec2
	threat := func(at Vec2, weight float64) {
		d := me.Dist(at)
		if d >= comfort || d == 0 {
			return
		}
		push = push.Add(me.Sub(at).Norm().Scale(weight * (comfort - d) / comfort))
	}
	for i := range s.enemies {
		if !s.enemies[i].Dead {
			threat(s.enemies[i].Pos, 1)
		}
	}
	for i := range s.bosses {
		if !s.bosses[i].Dead {
			threat(s.bosses[i].Pos, 2)
		}
	}
	for i := range s.projectiles {
		if s.projectiles[i].Owner == OwnerEnemy {
			threat(s.projectiles[i].Pos, 0.5)
		}
	}
	size := s.cfg.Arena.Size
	center := Vec2{X: size / 2, Y: size / 2}
	push = push.Add(center.Sub(me).Scale(1 / size))
	if push.Len() > 1 {
		push = push.Norm()
	}
	return push
}

func (k *KitePolicy) Choose(offer []string) string {
	if len(offer) == 0 {
		return ""
	}
	if k.Pick != nil {
		if id := k.Pick(offer); id != "" {
			return id
		}
	}
	return offer[0]
}

// IdlePolicy stands still and takes the first offer; used by tests and benchmarks.
type IdlePolicy struct{}

func (IdlePolicy) Steer(*Sim) Vec2 { return Vec2{} }
func (IdlePolicy) Choose(offer []string) string {
	if len(offer) == 0 {
		return ""
	}
	return offer[0]
}
