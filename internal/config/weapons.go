package config

type WeaponsConfig struct {
	Weapons []WeaponDef `yaml:"weapons"`
}

// WeaponDef overrides fields of a stock weapon profile. Zero fields keep the stock value.
type WeaponDef struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Damage       float64 `yaml:"damage"`
	Range        float64 `yaml:"range"`
	FireInterval float64 `yaml:"fire_interval"`
	Projectiles  int     `yaml:"projectiles"`
	Spread       float64 `yaml:"spread"`
	Effect       string  `yaml:"effect"`
	Note         string  `yaml:"note"`
}
