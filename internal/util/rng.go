package util

import (
	"math/rand"
	"time"
)

// Rand is the random source the simulation draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// NewTimeSeeded is used by interactive hosts that do not need replays.
func NewTimeSeeded() *rand.Rand {
	return New(time.Now().UnixNano())
}

// Fixed replays a fixed sequence of Float64 values, cycling when exhausted.
// Intn maps the same value into [0, n).
type Fixed struct {
	Values []float64
	i      int
}

func (f *Fixed) Float64() float64 {
	if len(f.Values) == 0 {
		return 0.5
	}
	v := f.Values[f.i%len(f.Values)]
	f.i++
	return v
}

func (f *Fixed) Intn(n int) int {
	if n <= 0 {
		panic("util: Intn called with n <= 0")
	}
	k := int(f.Float64() * float64(n))
	if k >= n {
		k = n - 1
	}
	if k < 0 {
		k = 0
	}
	return k
}
