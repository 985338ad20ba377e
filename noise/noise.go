// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package noise provides a small deterministic 2D simplex noise source.
//
// The constellation uses it to give every node a slow, coherent drift:
// nearby inputs produce nearby outputs, so velocities change smoothly from
// frame to frame instead of jittering.
//
//	n := noise.New(42)
//	v := n.Noise2D(x, t*0.0001) // approximately in [-1, 1]
//
// A Simplex is not safe for concurrent mutation, but Noise2D only reads the
// permutation table and may be called from any goroutine once constructed.
package noise

import (
	"math"
	"math/rand/v2"
)

// Skew and unskew factors for the 2D simplex grid.
var (
	f2 = 0.5 * (math.Sqrt(3) - 1)
	g2 = (3 - math.Sqrt(3)) / 6
)

// grad2 holds the eight 2D gradient directions as (x, y) pairs.
var grad2 = [16]float64{
	1, 1, -1, 1, 1, -1, -1, -1,
	1, 0, -1, 0, 0, 1, 0, -1,
}

// Simplex is a seeded 2D simplex noise generator.
type Simplex struct {
	perm [512]uint8
}

// New returns a generator whose permutation table is shuffled from seed.
// The same seed always yields the same noise field.
func New(seed int64) *Simplex {
	s := &Simplex{}
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}

	// xorshift32; a zero state would stay zero forever.
	state := uint32(seed) ^ uint32(seed>>32)
	if state == 0 {
		state = 0x9e3779b9
	}
	next := func() float64 {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		return float64(state) / 4294967296
	}

	for i := 255; i > 0; i-- {
		r := int(next() * float64(i+1))
		p[i], p[r] = p[r], p[i]
	}
	for i := range s.perm {
		s.perm[i] = p[i&255]
	}
	return s
}

// NewRandom returns a generator with a random seed. Output is purely
// cosmetic, so a different field per instance is fine.
func NewRandom() *Simplex {
	return New(rand.Int64())
}

// Noise2D returns coherent noise at (x, y), scaled to roughly [-1, 1].
func (s *Simplex) Noise2D(x, y float64) float64 {
	sk := (x + y) * f2
	i := math.Floor(x + sk)
	j := math.Floor(y + sk)

	t := (i + j) * g2
	x0 := x - (i - t)
	y0 := y - (j - t)

	// Which triangle of the rhombus we are in.
	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1 + 2*g2
	y2 := y0 - 1 + 2*g2

	ii := int(i) & 255
	jj := int(j) & 255

	gi0 := int(s.perm[ii+int(s.perm[jj])]%8) * 2
	gi1 := int(s.perm[ii+i1+int(s.perm[jj+j1])]%8) * 2
	gi2 := int(s.perm[ii+1+int(s.perm[jj+1])]%8) * 2

	return 70 * (corner(gi0, x0, y0) + corner(gi1, x1, y1) + corner(gi2, x2, y2))
}

// corner is the quartic-falloff contribution of one simplex corner.
func corner(gi int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t <= 0 {
		return 0
	}
	t *= t
	return t * t * (grad2[gi]*x + grad2[gi+1]*y)
}
