package terrain

import "math"

// ChunkCoord identifies a terrain tile on the infinite XZ grid. Coordinates
// are value types and compare with ==, so they serve directly as map keys.
type ChunkCoord struct {
	X, Z int
}

// Adjacent returns the 8 neighboring coordinates of c.
func (c ChunkCoord) Adjacent() []ChunkCoord {
	out := make([]ChunkCoord, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			out = append(out, ChunkCoord{X: c.X + dx, Z: c.Z + dz})
		}
	}
	return out
}

// CoordFromWorld returns the coordinate of the chunk containing the
// world-space point (x, z) for a given chunk scale.
func CoordFromWorld(x, z, scale float32) ChunkCoord {
	return ChunkCoord{
		X: int(math.Floor(float64(x / scale))),
		Z: int(math.Floor(float64(z / scale))),
	}
}
