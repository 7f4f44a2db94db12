package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"wavearena/internal/combat"
	"wavearena/internal/config"
	"wavearena/internal/util"
)

const (
	frameTime  = 16 * time.Millisecond // ~60 FPS
	maxDelta   = 0.1
	intentHold = 180 * time.Millisecond // terminals send no key-up; a press steers this long
	logLines   = 3
)

type Game struct {
	screen        tcell.Screen
	sim           *combat.Sim
	width, height int

	intent      combat.Vec2
	intentUntil time.Time

	logs   []string
	sounds *sounds
}

func NewGame(screen tcell.Screen, sim *combat.Sim, snd *sounds) *Game {
	g := &Game{screen: screen, sim: sim, sounds: snd}
	g.width, g.height = screen.Size()
	sim.Emit = g.onEvent
	return g
}

func (g *Game) onEvent(ev combat.Event) {
	switch ev.Type {
	case "LogLine":
		if text, ok := ev.Payload["text"].(string); ok {
			g.pushLog(text)
		}
	case "PlayerHit":
		g.sounds.hit()
	case "Kill":
		g.sounds.kill()
	case "UpgradeOffer":
		g.pushLog("new weapons on offer, press 1-3")
	}
}

func (g *Game) pushLog(s string) {
	g.logs = append(g.logs, s)
	if len(g.logs) > logLines {
		g.logs = g.logs[len(g.logs)-logLines:]
	}
}

// handleInput applies one terminal event at wall time now. It returns false to quit.
func (g *Game) handleInput(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if dir, ok := keyDirection(ev); ok {
			g.intent = dir
			g.intentUntil = now.Add(intentHold)
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch r := ev.Rune(); r {
		case 'q':
			return false
		case ' ':
			g.intent = combat.Vec2{}
		case 'p':
			g.sim.SetPaused(!g.sim.Paused())
		case 'r':
			g.sim.Reset()
			g.logs = g.logs[:0]
		case '1', '2', '3':
			offer := g.sim.Offer()
			if i := int(r - '1'); i < len(offer) {
				g.sim.SelectUpgrade(offer[i])
			}
		}
	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()
	}
	return true
}

func keyDirection(ev *tcell.EventKey) (combat.Vec2, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return combat.Vec2{Y: -1}, true
	case tcell.KeyDown:
		return combat.Vec2{Y: 1}, true
	case tcell.KeyLeft:
		return combat.Vec2{X: -1}, true
	case tcell.KeyRight:
		return combat.Vec2{X: 1}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w':
			return combat.Vec2{Y: -1}, true
		case 's':
			return combat.Vec2{Y: 1}, true
		case 'a':
			return combat.Vec2{X: -1}, true
		case 'd':
			return combat.Vec2{X: 1}, true
		}
	}
	return combat.Vec2{}, false
}

// update advances the simulation by dt seconds of wall time.
func (g *Game) update(dt float64, now time.Time) {
	if dt > maxDelta {
		dt = maxDelta
	}
	in := g.intent
	if now.After(g.intentUntil) {
		in = combat.Vec2{}
	}
	if err := g.sim.SetInput(in); err != nil {
		log.Printf("input: %v", err)
	}
	if err := g.sim.Advance(dt); err != nil {
		log.Printf("advance: %v", err)
	}
}

func (g *Game) run() {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return
			}
			if !g.handleInput(ev, time.Now()) {
				return
			}
		case now := <-ticker.C:
			g.update(now.Sub(last).Seconds(), now)
			last = now
			g.draw()
		}
	}
}

func main() {
	var cfgDir, logPath, loadPath, savePath string
	var seed int64
	var mute bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.Int64Var(&seed, "seed", 0, "seed (0 seeds from the clock)")
	flag.StringVar(&logPath, "log", "", "write diagnostics to this file")
	flag.StringVar(&loadPath, "load", "", "resume from a save file")
	flag.StringVar(&savePath, "save", "", "write a save file on quit")
	flag.BoolVar(&mute, "mute", false, "disable sound")
	flag.Parse()

	// the screen owns the terminal; stray log output would corrupt it
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	tuning, weapons, err := config.LoadAll(cfgDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	var rng util.Rand = util.NewTimeSeeded()
	if seed != 0 {
		rng = util.New(seed)
	}
	arsenal := combat.NewArsenal(weapons)

	var sim *combat.Sim
	if loadPath != "" {
		b, err := os.ReadFile(loadPath)
		if err == nil {
			sim, err = combat.Load(b, tuning, arsenal, rng, nil)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "resume %s: %v\n", loadPath, err)
			os.Exit(1)
		}
	} else {
		sim = combat.NewSim(tuning, arsenal, rng, nil)
	}

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	snd := newSounds(!mute)
	game := NewGame(screen, sim, snd)
	game.run()

	snd.close()
	screen.Fini()

	if savePath != "" {
		b, err := sim.Save()
		if err == nil {
			err = os.WriteFile(savePath, b, 0644)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "save %s: %v\n", savePath, err)
			os.Exit(1)
		}
		fmt.Printf("saved round %d (score %d) -> %s\n", sim.Round().Round, sim.Score(), savePath)
	}
}
