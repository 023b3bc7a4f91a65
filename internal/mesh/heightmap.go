// Package mesh builds renderable geometry from height samples. It carries no
// GPU state; uploading buffers is the graphics layer's concern, which keeps
// mesh construction usable from background goroutines and headless tests.
package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture is a handle to an already uploaded GPU texture, shared by every
// chunk mesh.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// Mesh is heightmap geometry in chunk-local coordinates: X and Z span [0,1],
// Y is in world units.
type Mesh struct {
	Positions []float32 // x,y,z per vertex
	Normals   []float32 // x,y,z per vertex, unit length
	UVs       []float32 // u,v per vertex
	Indices   []uint32  // CCW triangles
	Texture   *Texture
	MinPoint  mgl32.Vec3 // lowest vertex, chunk-local
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// BuildHeightmap triangulates a bordered sample grid. samples must be
// (size+2)x(size+2); the outer ring only feeds normal computation so chunk
// edges shade correctly without neighbor lookups. Sample values in [0,1] map
// linearly to [minY, maxY]. textInc sets how often the texture repeats
// across the grid.
func BuildHeightmap(minY, maxY float32, samples [][]float32, size, textInc int, tex *Texture) (*Mesh, error) {
	if size < 2 {
		return nil, fmt.Errorf("heightmap size %d: need at least 2 samples per side", size)
	}
	if textInc < 1 {
		return nil, fmt.Errorf("texture increment %d: must be positive", textInc)
	}
	if len(samples) != size+2 {
		return nil, fmt.Errorf("heightmap has %d rows: want %d", len(samples), size+2)
	}
	for r, row := range samples {
		if len(row) != size+2 {
			return nil, fmt.Errorf("heightmap row %d has %d samples: want %d", r, len(row), size+2)
		}
	}

	step := 1 / float32(size-1)
	span := maxY - minY

	m := &Mesh{
		Positions: make([]float32, 0, size*size*3),
		Normals:   make([]float32, 0, size*size*3),
		UVs:       make([]float32, 0, size*size*2),
		Indices:   make([]uint32, 0, (size-1)*(size-1)*6),
		Texture:   tex,
		MinPoint:  mgl32.Vec3{0, maxY, 0},
	}

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			gr, gc := row+1, col+1 // index into the bordered grid

			x := float32(col) * step
			z := float32(row) * step
			y := minY + samples[gr][gc]*span
			m.Positions = append(m.Positions, x, y, z)

			n := vertexNormal(samples, gr, gc, step, span)
			m.Normals = append(m.Normals, n.X(), n.Y(), n.Z())

			m.UVs = append(m.UVs,
				float32(textInc)*float32(col)/float32(size-1),
				float32(textInc)*float32(row)/float32(size-1),
			)

			if y < m.MinPoint.Y() {
				m.MinPoint = mgl32.Vec3{x, y, z}
			}

			if row < size-1 && col < size-1 {
				i := uint32(row*size + col)
				m.Indices = append(m.Indices,
					i, i+uint32(size), i+1,
					i+1, i+uint32(size), i+uint32(size)+1,
				)
			}
		}
	}
	return m, nil
}

// vertexNormal computes a central-difference normal. The bordered grid
// guarantees all four neighbors exist, including at chunk edges.
func vertexNormal(samples [][]float32, gr, gc int, step, span float32) mgl32.Vec3 {
	dx := (samples[gr][gc+1] - samples[gr][gc-1]) * span
	dz := (samples[gr+1][gc] - samples[gr-1][gc]) * span
	return mgl32.Vec3{-dx, 2 * step, -dz}.Normalize()
}
