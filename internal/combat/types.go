package combat

type Event struct {
	T       float64        `json:"t" msgpack:"t"`
	Type    string         `json:"type" msgpack:"type"`
	Payload map[string]any `json:"payload,omitempty" msgpack:"payload,omitempty"`
}

type EnemyKind uint8

const (
	EnemyNormal EnemyKind = iota
	EnemyArcher
	EnemyMage
	EnemyTank
)

var enemyKindNames = [...]string{"normal", "archer", "mage", "tank"}

func (k EnemyKind) String() string {
	if int(k) < len(enemyKindNames) {
		return enemyKindNames[k]
	}
	return "unknown"
}

type BossKind uint8

const (
	BossLord BossKind = iota
	BossNecromancer
	BossGolem
	BossKnight
	BossEmperor
)

var bossKindNames = [...]string{"lord", "necromancer", "golem", "knight", "emperor"}

func (k BossKind) String() string {
	if int(k) < len(bossKindNames) {
		return bossKindNames[k]
	}
	return "unknown"
}

// BossKindForTier cycles through the five archetypes; tier 1 is the Lord.
func BossKindForTier(tier int) BossKind {
	if tier < 1 {
		tier = 1
	}
	return BossKind((tier - 1) % len(bossKindNames))
}

type Enemy struct {
	ID        int       `msgpack:"id"`
	Kind      EnemyKind `msgpack:"kind"`
	Pos       Vec2      `msgpack:"pos"`
	HP        float64   `msgpack:"hp"`
	MaxHP     float64   `msgpack:"max_hp"`
	Speed     float64   `msgpack:"speed"`
	Dead      bool      `msgpack:"dead"`
	Fade      float64   `msgpack:"fade"` // death animation, 1 at death down to 0
	LastAtkAt float64   `msgpack:"last_atk_at"`
	AtkCD     float64   `msgpack:"atk_cd"`
}

// damage lowers HP (never below zero) and reports whether this hit killed the entity.
func (e *Enemy) damage(amount float64) bool {
	if e.Dead || amount <= 0 {
		return false
	}
	e.HP -= amount
	if e.HP > 0 {
		return false
	}
	e.HP = 0
	e.Dead = true
	e.Fade = 1
	return true
}

func (e *Enemy) faded() bool { return e.Dead && e.Fade <= 0 }

type Boss struct {
	Enemy
	BossKind  BossKind `msgpack:"boss_kind"`
	Tier      int      `msgpack:"tier"`
	SpecialCD float64  `msgpack:"special_cd"`
	LastSpcAt float64  `msgpack:"last_special_at"`
	Phase     float64  `msgpack:"phase"` // oscillation phase, radians
	Specials  int      `msgpack:"specials"`
	BurstEnd  float64  `msgpack:"burst_end"`
	Stage     int      `msgpack:"stage"` // health thresholds announced so far
}

type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

type Projectile struct {
	ID     int     `msgpack:"id"`
	Pos    Vec2    `msgpack:"pos"`
	Angle  float64 `msgpack:"angle"`
	Speed  float64 `msgpack:"speed"`
	Damage float64 `msgpack:"damage"`
	Owner  Owner   `msgpack:"owner"`
}

type ParticleKind uint8

const (
	ParticleDeath ParticleKind = iota
	ParticleBossDeath
	ParticleHit
)

type Particle struct {
	Pos  Vec2         `msgpack:"pos"`
	Vel  Vec2         `msgpack:"vel"`
	Life float64      `msgpack:"life"`
	Kind ParticleKind `msgpack:"kind"`
}

type Player struct {
	Pos        Vec2     `msgpack:"pos"`
	HP         float64  `msgpack:"hp"`
	MaxHP      float64  `msgpack:"max_hp"`
	Speed      float64  `msgpack:"speed"`
	Weapon     string   `msgpack:"weapon"`
	Unlocked   []string `msgpack:"unlocked"`
	LastFireAt float64  `msgpack:"last_fire_at"`
	Intent     Vec2     `msgpack:"intent"`
}

func (p *Player) Alive() bool { return p.HP > 0 }

func (p *Player) HasUnlocked(id string) bool {
	for _, u := range p.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

type RoundState struct {
	Round           int      `msgpack:"round"`
	Score           int      `msgpack:"score"`
	SkeletonsKilled int      `msgpack:"skeletons_killed"`
	BossesKilled    int      `msgpack:"bosses_killed"`
	Terminal        bool     `msgpack:"terminal"`
	Paused          bool     `msgpack:"paused"`
	Offer           []string `msgpack:"offer"`
}
