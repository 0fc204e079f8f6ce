package celebrate

import (
	"image/color"
	"math"
	"math/rand/v2"
)

type Shape uint8

const (
	Square Shape = iota
	Circle
	Rectangle
)

var shapes = [...]Shape{Square, Circle, Rectangle}

func (s Shape) String() string {
	switch s {
	case Square:
		return "square"
	case Circle:
		return "circle"
	case Rectangle:
		return "rectangle"
	}
	return "unknown"
}

// Particle is one piece of confetti. It only lives for the duration of a run.
type Particle struct {
	X, Y     float64
	W, H     float64
	Color    color.RGBA
	Shape    Shape
	Rotation float64 // degrees
	Spin     float64 // degrees per frame
	VX, VY   float64
	Gravity  float64
}

// Point is a surface-relative coordinate.
type Point struct {
	X, Y float64
}

// newParticle places a particle somewhere in the band of height h directly
// above a w-wide surface.
func newParticle(rng *rand.Rand, palette []color.RGBA, gravity, w, h float64) Particle {
	p := Particle{
		X:        rng.Float64() * w,
		Y:        rng.Float64()*h - h,
		W:        rng.Float64()*8 + 4,
		H:        rng.Float64()*6 + 3,
		Color:    palette[rng.IntN(len(palette))],
		Shape:    shapes[rng.IntN(len(shapes))],
		Rotation: rng.Float64() * 360,
		Spin:     rng.Float64()*10 - 5,
		VX:       rng.Float64()*4 - 2,
		VY:       rng.Float64()*3 + 2,
		Gravity:  gravity,
	}
	return p
}

// respawn re-enters a fallen particle just above the top edge.
func respawn(rng *rand.Rand, palette []color.RGBA, gravity, w float64) Particle {
	p := newParticle(rng, palette, gravity, w, 0)
	p.Y = -(rng.Float64()*20 + 10)
	return p
}

// step advances the particle by one frame of explicit Euler integration.
func (p *Particle) step() {
	p.VY += p.Gravity
	p.X += p.VX + math.Sin(p.Y*0.01)*0.5
	p.Y += p.VY
	p.Rotation += p.Spin
}

// corners returns the rotated outline of a square or rectangle particle.
func (p *Particle) corners() [4]Point {
	w, h := p.W, p.H
	if p.Shape == Square {
		h = w
	}
	rad := p.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	hw, hh := w/2, h/2

	local := [4]Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4]Point
	for i, c := range local {
		out[i] = Point{
			X: p.X + c.X*cos - c.Y*sin,
			Y: p.Y + c.X*sin + c.Y*cos,
		}
	}
	return out
}

func (p *Particle) draw(s Surface) {
	if p.Shape == Circle {
		s.FillCircle(p.X, p.Y, p.W/2, p.Color)
		return
	}
	pts := p.corners()
	s.FillPolygon(pts[:], p.Color)
}
