package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// sounds plays short synthesized tones. A zero value is silent.
type sounds struct {
	ok   bool
	rate beep.SampleRate
}

func newSounds(enabled bool) *sounds {
	if !enabled {
		return &sounds{}
	}
	rate := beep.SampleRate(44100)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		// Non-fatal, game can run without sound
		log.Printf("audio initialization failed: %v", err)
		return &sounds{}
	}
	return &sounds{ok: true, rate: rate}
}

func (s *sounds) tone(freq float64, d time.Duration) {
	if s == nil || !s.ok {
		return
	}
	sine, err := generators.SineTone(s.rate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(s.rate.N(d), sine))
}

func (s *sounds) hit()  { s.tone(220, 60*time.Millisecond) }
func (s *sounds) kill() { s.tone(880, 40*time.Millisecond) }

func (s *sounds) close() {
	if s != nil && s.ok {
		speaker.Close()
	}
}
