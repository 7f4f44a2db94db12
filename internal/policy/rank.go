package policy

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"wavearena/internal/combat"
)

// WeaponEnv is what a ranking expression sees for each offered weapon.
type WeaponEnv struct {
	ID          string  `expr:"id"`
	Damage      float64 `expr:"damage"`
	Range       float64 `expr:"range"`
	Interval    float64 `expr:"interval"`
	Projectiles int     `expr:"projectiles"`
	Spread      float64 `expr:"spread"`
	Melee       bool    `expr:"melee"`
	Effect      string  `expr:"effect"`
}

// Ranker scores weapons with a compiled expression; higher is better.
// Example: "damage * projectiles / interval".
type Ranker struct {
	Src     string
	program *vm.Program
	arsenal *combat.Arsenal
}

func Compile(src string, arsenal *combat.Arsenal) (*Ranker, error) {
	prog, err := expr.Compile(src, expr.Env(WeaponEnv{}), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compile rank %q: %w", src, err)
	}
	return &Ranker{Src: src, program: prog, arsenal: arsenal}, nil
}

func envOf(w combat.WeaponProfile) WeaponEnv {
	return WeaponEnv{
		ID:          w.ID,
		Damage:      w.Damage,
		Range:       w.Range,
		Interval:    w.FireInterval,
		Projectiles: w.Projectiles,
		Spread:      w.Spread,
		Melee:       w.Melee,
		Effect:      w.Effect,
	}
}

func (r *Ranker) Score(w combat.WeaponProfile) (float64, error) {
	out, err := vm.Run(r.program, envOf(w))
	if err != nil {
		return 0, err
	}
	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("rank %q returned %T", r.Src, out)
	}
	return v, nil
}

// Pick returns the best-scoring offered weapon. Ties keep offer order; weapons whose
// score fails to evaluate are skipped.
func (r *Ranker) Pick(offer []string) string {
	best := ""
	bestScore := 0.0
	for _, id := range offer {
		if !r.arsenal.Has(id) {
			continue
		}
		v, err := r.Score(r.arsenal.ProfileOf(id))
		if err != nil {
			continue
		}
		if best == "" || v > bestScore {
			best, bestScore = id, v
		}
	}
	return best
}
