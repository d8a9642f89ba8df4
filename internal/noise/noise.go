// Package noise supplies the coherent noise field sampled by the strip field.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	DefaultOctaves = 4
	// falloff 0.5 per octave, frequency doubling
	alpha = 2.0
	beta  = 2.0
)

// Perlin maps multi-octave Perlin noise into [0, 1].
type Perlin struct {
	p   *perlin.Perlin
	amp float64
}

func NewPerlin(seed int64, octaves int) *Perlin {
	if octaves < 1 {
		octaves = DefaultOctaves
	}
	amp := 0.0
	for i := 0; i < octaves; i++ {
		amp += math.Pow(alpha, -float64(i))
	}
	return &Perlin{
		p:   perlin.NewPerlin(alpha, beta, int32(octaves), seed),
		amp: amp,
	}
}

func (n *Perlin) Noise3(x, y, z float64) float64 {
	v := (n.p.Noise3D(x, y, z)/n.amp + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
