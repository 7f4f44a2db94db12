package combat

import "math"

type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Len() float64    { return math.Hypot(a.X, a.Y) }
func (a Vec2) Norm() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}
func (a Vec2) Scale(s float64) Vec2     { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dist(b Vec2) float64      { return a.Sub(b).Len() }
func (a Vec2) Angle() float64           { return math.Atan2(a.Y, a.X) }
func (a Vec2) Perp() Vec2               { return Vec2{-a.Y, a.X} }
func (a Vec2) Finite() bool             { return isFinite(a.X) && isFinite(a.Y) }
func FromAngle(rad float64) Vec2        { return Vec2{math.Cos(rad), math.Sin(rad)} }
func isFinite(f float64) bool           { return !math.IsNaN(f) && !math.IsInf(f, 0) }
func (a Vec2) Clamp(size float64) Vec2  { return Vec2{clampF(a.X, 0, size), clampF(a.Y, 0, size)} }
func (a Vec2) Inside(size float64) bool { return a.X >= 0 && a.X <= size && a.Y >= 0 && a.Y <= size }

// clampF never returns NaN: NaN lands on lo.
func clampF(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v) || v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
