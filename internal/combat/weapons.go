package combat

import (
	"fmt"

	"wavearena/internal/config"
)

// WeaponProfile is immutable once the arsenal is built. Effect is a descriptive tag only.
type WeaponProfile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Damage       float64 `json:"damage"`
	Range        float64 `json:"range"`
	FireInterval float64 `json:"fire_interval"`
	Melee        bool    `json:"melee"`
	Projectiles  int     `json:"projectiles"`
	Spread       float64 `json:"spread"` // radians, full cone width
	AutoFire     bool    `json:"auto_fire"`
	Effect       string  `json:"effect,omitempty"`
}

var stockWeapons = []WeaponProfile{
	{ID: "pistol", Name: "Pistol", Damage: 35, Range: 200, FireInterval: 0.5, Projectiles: 1, Spread: 0.10, AutoFire: true},
	{ID: "dagger", Name: "Dagger", Damage: 25, Range: 60, FireInterval: 0.3, Melee: true, Projectiles: 1, AutoFire: true},
	{ID: "sword", Name: "Sword", Damage: 40, Range: 80, FireInterval: 0.6, Melee: true, Projectiles: 1, AutoFire: true},
	{ID: "axe", Name: "Battle Axe", Damage: 70, Range: 90, FireInterval: 1.0, Melee: true, Projectiles: 1, AutoFire: true},
	{ID: "spear", Name: "Spear", Damage: 45, Range: 120, FireInterval: 0.8, Melee: true, Projectiles: 1, AutoFire: true},
	{ID: "hammer", Name: "War Hammer", Damage: 100, Range: 100, FireInterval: 1.4, Melee: true, Projectiles: 1, AutoFire: true, Effect: "stun"},
	{ID: "shotgun", Name: "Shotgun", Damage: 15, Range: 180, FireInterval: 0.9, Projectiles: 6, Spread: 0.6, AutoFire: true},
	{ID: "rifle", Name: "Rifle", Damage: 30, Range: 350, FireInterval: 0.35, Projectiles: 1, Spread: 0.05, AutoFire: true},
	{ID: "smg", Name: "SMG", Damage: 12, Range: 250, FireInterval: 0.12, Projectiles: 1, Spread: 0.25, AutoFire: true},
	{ID: "sniper", Name: "Sniper", Damage: 120, Range: 600, FireInterval: 1.5, Projectiles: 1, AutoFire: true},
	{ID: "bow", Name: "Bow", Damage: 30, Range: 300, FireInterval: 0.7, Projectiles: 1, Spread: 0.05, AutoFire: true},
	{ID: "crossbow", Name: "Crossbow", Damage: 55, Range: 320, FireInterval: 1.0, Projectiles: 1, Spread: 0.02, AutoFire: true},
	{ID: "flamethrower", Name: "Flamethrower", Damage: 6, Range: 150, FireInterval: 0.08, Projectiles: 3, Spread: 0.5, AutoFire: true, Effect: "fire"},
	{ID: "freeze_ray", Name: "Freeze Ray", Damage: 18, Range: 260, FireInterval: 0.4, Projectiles: 1, Spread: 0.05, AutoFire: true, Effect: "freeze"},
	{ID: "poison_dart", Name: "Poison Darts", Damage: 20, Range: 280, FireInterval: 0.5, Projectiles: 2, Spread: 0.2, AutoFire: true, Effect: "poison"},
	{ID: "tesla", Name: "Tesla Coil", Damage: 25, Range: 220, FireInterval: 0.5, Projectiles: 3, Spread: 0.9, AutoFire: true, Effect: "electric"},
	{ID: "laser", Name: "Laser", Damage: 22, Range: 500, FireInterval: 0.2, Projectiles: 1, AutoFire: true, Effect: "laser"},
	{ID: "rocket", Name: "Rocket Launcher", Damage: 90, Range: 400, FireInterval: 1.6, Projectiles: 1, Spread: 0.1, AutoFire: true, Effect: "explosive"},
	{ID: "nuke", Name: "Nuke Launcher", Damage: 300, Range: 500, FireInterval: 4.0, Projectiles: 1, AutoFire: true, Effect: "nuclear"},
}

// Arsenal is the weapon catalog. It is read-only after NewArsenal returns.
type Arsenal struct {
	byID  map[string]WeaponProfile
	order []string
	notes []string
}

var defaultArsenal = NewArsenal(nil)

// NewArsenal builds the stock catalog and applies per-id overrides from cfg.
// Overrides for ids that are not stock weapons add new entries.
func NewArsenal(cfg *config.WeaponsConfig) *Arsenal {
	a := &Arsenal{byID: make(map[string]WeaponProfile, len(stockWeapons))}
	for _, w := range stockWeapons {
		a.byID[w.ID] = w
		a.order = append(a.order, w.ID)
	}
	if cfg == nil {
		return a
	}
	for _, d := range cfg.Weapons {
		if d.ID == "" {
			continue
		}
		w, ok := a.byID[d.ID]
		if !ok {
			w = WeaponProfile{ID: d.ID, Name: d.ID, Projectiles: 1, AutoFire: true, FireInterval: 1.0}
			a.order = append(a.order, d.ID)
		}
		if d.Name != "" {
			w.Name = d.Name
		}
		if d.Damage > 0 {
			w.Damage = d.Damage
		}
		if d.Range > 0 {
			w.Range = d.Range
		}
		if d.FireInterval > 0 {
			w.FireInterval = d.FireInterval
		}
		if d.Projectiles > 0 {
			w.Projectiles = d.Projectiles
		}
		if d.Spread > 0 {
			w.Spread = d.Spread
		}
		if d.Effect != "" {
			w.Effect = d.Effect
		}
		if d.Note != "" {
			a.notes = append(a.notes, fmt.Sprintf("Weapon %s: %s", d.ID, d.Note))
		}
		a.byID[d.ID] = w
	}
	return a
}

// ProfileOf panics on an unknown id: callers only ever hold ids taken from the catalog.
func (a *Arsenal) ProfileOf(id string) WeaponProfile {
	w, ok := a.byID[id]
	if !ok {
		panic(fmt.Sprintf("combat: unknown weapon %q", id))
	}
	return w
}

func (a *Arsenal) Has(id string) bool {
	_, ok := a.byID[id]
	return ok
}

// IDs lists weapons in catalog order.
func (a *Arsenal) IDs() []string {
	return append([]string(nil), a.order...)
}

// Notes returns the override notes in file order.
func (a *Arsenal) Notes() []string {
	return append([]string(nil), a.notes...)
}

func ProfileOf(id string) WeaponProfile { return defaultArsenal.ProfileOf(id) }
func HasWeapon(id string) bool          { return defaultArsenal.Has(id) }
func WeaponIDs() []string               { return defaultArsenal.IDs() }
