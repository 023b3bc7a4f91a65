package terrain

import (
	"github.com/aquilax/go-perlin"
)

// Fractal parameters are fixed configuration, not varied at call time.
const (
	noiseAlpha      = 2.0 // amplitude falloff between octaves
	noiseBeta       = 2.0 // frequency gain between octaves
	noiseOctaves    = 8
	noiseSmoothness = 150.0 // divisor applied to sample coordinates
)

// HeightField produces deterministic fractal height samples for an infinite
// grid. Sampling is pure once constructed, so a single instance is shared
// freely across concurrent chunk builders.
type HeightField struct {
	noise *perlin.Perlin
}

// NewHeightField creates a height field for the given seed. Identical seeds
// always yield identical fields.
func NewHeightField(seed int64) *HeightField {
	return &HeightField{
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
	}
}

// At returns the normalized height in [0,1] at an absolute sample position.
func (h *HeightField) At(row, col int) float32 {
	v := h.noise.Noise2D(float64(row)/noiseSmoothness, float64(col)/noiseSmoothness)
	// Noise2D stays within [-1,1]; remap to [0,1] and clamp the tails.
	v = 0.5 + 0.5*v
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return float32(v)
}

// Generate samples a rows x cols window whose top-left corner sits at
// (originRow, originCol) on the infinite sample grid.
func (h *HeightField) Generate(originRow, originCol, rows, cols int) [][]float32 {
	out := make([][]float32, rows)
	for r := range out {
		line := make([]float32, cols)
		for c := range line {
			line[c] = h.At(originRow+r, originCol+c)
		}
		out[r] = line
	}
	return out
}
