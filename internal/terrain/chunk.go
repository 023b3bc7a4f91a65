package terrain

import (
	"math"

	"chime-hunt/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkSize is the number of height samples along each side of a chunk. The
// generated sample window is ChunkSize+2 per axis: a one-sample border so
// edge normals and height lookups never need a neighboring chunk.
const ChunkSize = 256

// Chunk is a single terrain tile. Every field is set once at construction
// and never mutated, so chunks are shared across goroutines without locking.
type Chunk struct {
	coord   ChunkCoord
	scale   float32
	minY    float32
	maxY    float32
	samples [][]float32 // (ChunkSize+2) x (ChunkSize+2), border included
	mesh    *mesh.Mesh
	origin  mgl32.Vec3 // world-space origin; Y is always 0
}

func (c *Chunk) Coord() ChunkCoord  { return c.coord }
func (c *Chunk) Mesh() *mesh.Mesh   { return c.mesh }
func (c *Chunk) Origin() mgl32.Vec3 { return c.origin }

// Transform returns the model matrix placing the chunk's mesh in the world.
// Mesh X/Z are normalized to [0,1]; Y is already in world units.
func (c *Chunk) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(c.origin.X(), 0, c.origin.Z()).
		Mul4(mgl32.Scale3D(c.scale, 1, c.scale))
}

// MinimumPoint returns the chunk's lowest vertex in world coordinates. Used
// for prop placement, e.g. hiding the music box in a valley.
func (c *Chunk) MinimumPoint() mgl32.Vec3 {
	m := c.mesh.MinPoint
	return mgl32.Vec3{
		c.origin.X() + m.X()*c.scale,
		m.Y(),
		c.origin.Z() + m.Z()*c.scale,
	}
}

// HeightAt returns the terrain height at a world-space position, bilinearly
// interpolated between the four surrounding samples. Positions outside the
// chunk clamp to its edge.
func (c *Chunk) HeightAt(worldX, worldZ float32) float32 {
	fx := clamp01((worldX - c.origin.X()) / c.scale)
	fz := clamp01((worldZ - c.origin.Z()) / c.scale)

	// Continuous coordinates inside the bordered sample grid; the inner
	// samples start at index 1.
	sx := 1 + float64(fx)*float64(ChunkSize-1)
	sz := 1 + float64(fz)*float64(ChunkSize-1)

	col := int(math.Floor(sx))
	row := int(math.Floor(sz))
	tx := float32(sx - float64(col))
	tz := float32(sz - float64(row))

	h00 := c.samples[row][col]
	h10 := c.samples[row][col+1]
	h01 := c.samples[row+1][col]
	h11 := c.samples[row+1][col+1]

	top := h00 + (h10-h00)*tx
	bottom := h01 + (h11-h01)*tx
	v := top + (bottom-top)*tz
	return c.minY + v*(c.maxY-c.minY)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
