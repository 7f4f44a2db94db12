package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"wavearena/internal/combat"
	"wavearena/internal/config"
	"wavearena/internal/policy"
	"wavearena/internal/util"
)

func main() {
	var cfgDir, out, pick string
	var seed int64
	var n, workers int
	var dt, maxTime, comfort float64
	var saveLog bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.Int64Var(&seed, "seed", 12345, "seed")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&workers, "workers", 8, "parallel runs in batch mode")
	flag.Float64Var(&dt, "dt", 1.0/60, "fixed step in seconds")
	flag.Float64Var(&maxTime, "time", 300, "simulated time limit in seconds")
	flag.Float64Var(&comfort, "comfort", 150, "autopilot keep-away distance")
	flag.StringVar(&pick, "pick", "", `weapon ranking rule, e.g. "damage * projectiles / interval" (empty takes the first offer)`)
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.Parse()

	tuning, weapons, err := config.LoadAll(cfgDir)
	if err != nil {
		panic(err)
	}
	arsenal := combat.NewArsenal(weapons)
	newPolicy := func() *combat.KitePolicy { return &combat.KitePolicy{Comfort: comfort} }
	if pick != "" {
		ranker, err := policy.Compile(pick, arsenal)
		if err != nil {
			panic(err)
		}
		newPolicy = func() *combat.KitePolicy { return &combat.KitePolicy{Comfort: comfort, Pick: ranker.Pick} }
	}

	if n <= 1 {
		s := combat.NewSim(tuning, arsenal, util.New(seed), nil)
		res := combat.RunSingle(s, newPolicy(), dt, maxTime, saveLog)
		res.Meta.Note = fmt.Sprintf("seed=%d pick=%q", seed, pick)

		if err := os.WriteFile(out, combat.MarshalPretty(res), 0644); err != nil {
			panic(err)
		}
		fmt.Printf("Single simsvc finished. Survived=%v, T=%.2fs, Round=%d, Score=%d -> %s\n",
			res.Survived, res.Duration, res.Round, res.Score, out)
		return
	}

	type stat struct {
		Survived  int
		SumT      float64
		SumRound  int
		SumScore  int
		BestScore int
		Kills     int
		Bosses    int
		Damage    float64
		ByWeapon  map[string]int
		Finals    map[string]int
	}
	var st = stat{
		ByWeapon: map[string]int{},
		Finals:   map[string]int{},
	}
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				s := combat.NewSim(tuning, arsenal, util.New(seed+int64(workerID)*7919+int64(i)), nil)
				res := combat.RunSingle(s, newPolicy(), dt, maxTime, false)

				mu.Lock()
				if res.Survived {
					st.Survived++
				}
				st.SumT += res.Duration
				st.SumRound += res.Round
				st.SumScore += res.Score
				if res.Score > st.BestScore {
					st.BestScore = res.Score
				}
				st.Kills += res.SkeletonsKilled
				st.Bosses += res.BossesKilled
				st.Damage += res.DamageTaken
				for k, v := range res.ShotsByWeapon {
					st.ByWeapon[k] += v
				}
				st.Finals[res.Weapon]++
				mu.Unlock()
			}
		}(w)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	totalShots := 0
	for _, v := range st.ByWeapon {
		totalShots += v
	}

	percent := func(m map[string]int, total int) map[string]any {
		out := map[string]any{}
		for k, v := range m {
			share := 0.0
			if total > 0 {
				share = float64(v) / float64(total)
			}
			out[k] = map[string]any{"total": v, "ratio": share}
		}
		return out
	}

	summary := map[string]any{
		"runs":          n,
		"survival_rate": float64(st.Survived) / float64(n),
		"avg_time":      st.SumT / float64(n),
		"avg_round":     float64(st.SumRound) / float64(n),
		"avg_score":     float64(st.SumScore) / float64(n),
		"best_score":    st.BestScore,
		"avg_kills":     float64(st.Kills) / float64(n),
		"avg_bosses":    float64(st.Bosses) / float64(n),
		"avg_damage":    st.Damage / float64(n),
		"shots":         percent(st.ByWeapon, totalShots),
		"final_weapons": percent(st.Finals, n),
	}
	if err := os.WriteFile(out, combat.MarshalPretty(summary), 0644); err != nil {
		panic(err)
	}
	fmt.Printf("Batch %d done -> %s\n", n, filepath.Base(out))
}
