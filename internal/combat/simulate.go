package combat

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"wavearena/internal/config"
	"wavearena/internal/util"
)

var (
	ErrInvalidDelta = errors.New("combat: dt must be finite and non-negative")
	ErrInvalidInput = errors.New("combat: movement intent must be finite")
)

// Sim is one survival session. It is not safe for concurrent use: hosts serialize
// every call (see internal/room).
type Sim struct {
	cfg     *config.TuningConfig
	arsenal *Arsenal
	rng     util.Rand
	Emit    func(Event)

	now    float64
	tick   int
	nextID int

	player      Player
	enemies     []Enemy
	bosses      []Boss
	projectiles []Projectile
	particles   []Particle
	round       RoundState
}

// NewSim builds a session and resets it. nil cfg, arsenal or emit fall back to defaults.
func NewSim(cfg *config.TuningConfig, arsenal *Arsenal, rng util.Rand, emit func(Event)) *Sim {
	s := newSim(cfg, arsenal, rng, emit)
	s.Reset()
	return s
}

func newSim(cfg *config.TuningConfig, arsenal *Arsenal, rng util.Rand, emit func(Event)) *Sim {
	if cfg == nil {
		cfg = config.Default()
	}
	if arsenal == nil {
		arsenal = defaultArsenal
	}
	if rng == nil {
		rng = util.New(1)
	}
	if emit == nil {
		emit = func(Event) {}
	}
	return &Sim{cfg: cfg, arsenal: arsenal, rng: rng, Emit: emit}
}

// Reset replaces the whole session: round 1, fresh player, one starter wave.
func (s *Sim) Reset() {
	start := s.cfg.Player.StartWeapon
	w := s.arsenal.ProfileOf(start)
	size := s.cfg.Arena.Size

	s.now = 0
	s.tick = 0
	s.nextID = 1
	s.player = Player{
		Pos:        Vec2{X: size / 2, Y: size / 2},
		HP:         s.cfg.Player.MaxHealth,
		MaxHP:      s.cfg.Player.MaxHealth,
		Speed:      s.cfg.Player.Speed,
		Weapon:     start,
		Unlocked:   []string{start},
		LastFireAt: -w.FireInterval,
	}
	s.enemies = []Enemy{}
	s.bosses = []Boss{}
	s.projectiles = []Projectile{}
	s.particles = []Particle{}
	s.round = RoundState{Round: 1}

	s.Emit(Event{T: s.now, Type: "Reset", Payload: map[string]any{"weapon": start}})
	s.SpawnWave(1, s.cfg.Round.StarterWave)
}

// SetInput stores the movement intent for the next Advance. Vectors longer than 1 are normalized.
func (s *Sim) SetInput(v Vec2) error {
	if !v.Finite() {
		return ErrInvalidInput
	}
	if v.Len() > 1 {
		v = v.Norm()
	}
	s.player.Intent = v
	return nil
}

func (s *Sim) SetPaused(on bool) {
	if s.round.Paused == on {
		return
	}
	s.round.Paused = on
	s.Emit(Event{T: s.now, Type: "Paused", Payload: map[string]any{"on": on}})
}

// Advance moves the simulation forward by dt seconds. Calls on a paused or finished
// session are no-ops.
func (s *Sim) Advance(dt float64) error {
	if !isFinite(dt) || dt < 0 || !isFinite(s.now+dt) || !isFinite(s.reach(dt)) {
		return ErrInvalidDelta
	}
	if s.round.Terminal || s.round.Paused || dt == 0 {
		return nil
	}
	s.now += dt
	s.tick++

	steps := []func(float64){
		s.movePlayer,
		s.fireStep,
		s.advanceEnemies,
		s.advanceBosses,
		s.advanceProjectiles,
		s.advanceParticles,
	}
	for _, step := range steps {
		step(dt)
		if s.round.Terminal {
			return nil
		}
	}
	s.sweep()
	s.checkProgression()
	return nil
}

// reach is the farthest any live entity or projectile can travel in dt.
func (s *Sim) reach(dt float64) float64 {
	fastest := s.player.Speed
	for i := range s.enemies {
		fastest = math.Max(fastest, s.enemies[i].Speed)
	}
	burst := math.Max(knightCruise, s.special(BossKnight).factor)
	for i := range s.bosses {
		fastest = math.Max(fastest, s.bosses[i].Speed*burst)
	}
	for i := range s.projectiles {
		fastest = math.Max(fastest, s.projectiles[i].Speed)
	}
	return fastest * s.cfg.Arena.MotionScale * dt
}

func (s *Sim) movePlayer(dt float64) {
	step := s.player.Speed * s.cfg.Arena.MotionScale * dt
	s.player.Pos = s.player.Pos.Add(s.player.Intent.Scale(step)).Clamp(s.cfg.Arena.Size)
}

func (s *Sim) fireStep(float64) {
	if !s.player.Alive() {
		return
	}
	s.autoFire()
}

func (s *Sim) damagePlayer(amount float64, source string) {
	if s.round.Terminal || amount <= 0 {
		return
	}
	s.player.HP -= amount
	if s.player.HP < 0 {
		s.player.HP = 0
	}
	s.Emit(Event{T: s.now, Type: "PlayerHit", Payload: map[string]any{
		"dmg": amount, "hp": s.player.HP, "source": source,
	}})
	if s.player.HP <= 0 {
		s.round.Terminal = true
		s.Emit(Event{T: s.now, Type: "GameOver", Payload: map[string]any{
			"round": s.round.Round, "score": s.round.Score,
		}})
		s.logLine("player falls on round %d with %d points", s.round.Round, s.round.Score)
	}
}

func (s *Sim) newID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Sim) logLine(format string, args ...any) {
	s.Emit(Event{T: s.now, Type: "LogLine", Payload: map[string]any{"text": fmt.Sprintf(format, args...)}})
}

// ---- read-only accessors ----

func (s *Sim) Now() float64                 { return s.now }
func (s *Sim) Tick() int                    { return s.tick }
func (s *Sim) ArenaSize() float64           { return s.cfg.Arena.Size }
func (s *Sim) Config() *config.TuningConfig { return s.cfg }
func (s *Sim) Arsenal() *Arsenal            { return s.arsenal }
func (s *Sim) Score() int                   { return s.round.Score }
func (s *Sim) Terminal() bool               { return s.round.Terminal }
func (s *Sim) Paused() bool                 { return s.round.Paused }
func (s *Sim) Offer() []string              { return append([]string(nil), s.round.Offer...) }

func (s *Sim) Player() Player {
	p := s.player
	p.Unlocked = append([]string(nil), s.player.Unlocked...)
	return p
}

func (s *Sim) Round() RoundState {
	r := s.round
	r.Offer = append([]string(nil), s.round.Offer...)
	return r
}

func (s *Sim) Enemies() []Enemy              { return append([]Enemy(nil), s.enemies...) }
func (s *Sim) Bosses() []Boss                { return append([]Boss(nil), s.bosses...) }
func (s *Sim) Projectiles() []Projectile     { return append([]Projectile(nil), s.projectiles...) }
func (s *Sim) Particles() []Particle         { return append([]Particle(nil), s.particles...) }
func (s *Sim) EquippedWeapon() WeaponProfile { return s.arsenal.ProfileOf(s.player.Weapon) }

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
