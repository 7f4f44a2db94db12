package combat

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"wavearena/internal/config"
	"wavearena/internal/util"
)

// Snapshot is a detached copy of the session, ordered as the simulation stores it.
type Snapshot struct {
	Version     int          `json:"version" msgpack:"version"`
	Time        float64      `json:"time" msgpack:"time"`
	Tick        int          `json:"tick" msgpack:"tick"`
	NextID      int          `json:"next_id" msgpack:"next_id"`
	ArenaSize   float64      `json:"arena_size" msgpack:"arena_size"`
	Player      Player       `json:"player" msgpack:"player"`
	Enemies     []Enemy      `json:"enemies" msgpack:"enemies"`
	Bosses      []Boss       `json:"bosses" msgpack:"bosses"`
	Projectiles []Projectile `json:"projectiles" msgpack:"projectiles"`
	Particles   []Particle   `json:"particles" msgpack:"particles"`
	Round       RoundState   `json:"round" msgpack:"round"`
}

const snapshotVersion = 1

func (s *Sim) Snapshot() Snapshot {
	return Snapshot{
		Version:     snapshotVersion,
		Time:        s.now,
		Tick:        s.tick,
		NextID:      s.nextID,
		ArenaSize:   s.cfg.Arena.Size,
		Player:      s.Player(),
		Enemies:     s.Enemies(),
		Bosses:      s.Bosses(),
		Projectiles: s.Projectiles(),
		Particles:   s.Particles(),
		Round:       s.Round(),
	}
}

// Save encodes the session with msgpack. The random source is not part of the save;
// a resumed session replays identically when given a source in the same state.
func (s *Sim) Save() ([]byte, error) {
	snap := s.Snapshot()
	b, err := msgpack.Marshal(&snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

func DecodeSnapshot(b []byte) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return Snapshot{}, fmt.Errorf("decode snapshot: unsupported version %d", snap.Version)
	}
	return snap, nil
}

// Load resumes a session from Save output.
func Load(b []byte, cfg *config.TuningConfig, arsenal *Arsenal, rng util.Rand, emit func(Event)) (*Sim, error) {
	snap, err := DecodeSnapshot(b)
	if err != nil {
		return nil, err
	}
	s := newSim(cfg, arsenal, rng, emit)
	if snap.ArenaSize != s.cfg.Arena.Size {
		return nil, fmt.Errorf("load snapshot: arena size %.0f does not match tuning %.0f", snap.ArenaSize, s.cfg.Arena.Size)
	}
	if !s.arsenal.Has(snap.Player.Weapon) {
		return nil, fmt.Errorf("load snapshot: unknown weapon %q", snap.Player.Weapon)
	}
	s.now = snap.Time
	s.tick = snap.Tick
	s.nextID = snap.NextID
	s.player = snap.Player
	s.enemies = append([]Enemy{}, snap.Enemies...)
	s.bosses = append([]Boss{}, snap.Bosses...)
	s.projectiles = append([]Projectile{}, snap.Projectiles...)
	s.particles = append([]Particle{}, snap.Particles...)
	s.round = snap.Round
	return s, nil
}
