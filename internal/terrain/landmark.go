package terrain

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PlaceLandmark picks a pseudo-random chunk at a distance the observer could
// plausibly cover within durationMs, creates that chunk if needed, and
// returns the world position of its lowest point. The landmark never lands
// in the origin chunk.
//
// stepSize is the observer's distance per move and the traversal budget
// assumes roughly five moves per second, matching the landmark distance
// factor's calibration.
func (t *Terrain) PlaceLandmark(terrainScale, stepSize, durationMs float32) (mgl32.Vec3, error) {
	coord := t.landmarkCoord(terrainScale, stepSize, durationMs)
	ch, err := t.store.GetOrCreate(coord)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return ch.MinimumPoint(), nil
}

// landmarkCoord draws a coordinate on the diamond |x|+|z| == 2*maxChunk: two
// random non-negative magnitudes with a fixed sum, each independently
// signed. Draws use the terrain's own seeded source, so placement is
// reproducible for a given seed.
func (t *Terrain) landmarkCoord(terrainScale, stepSize, durationMs float32) ChunkCoord {
	seconds := durationMs / 1000
	maxDistance := terrainScale * stepSize * seconds
	maxChunk := int(t.cfg.LandmarkDistanceFactor * maxDistance / terrainScale)
	if maxChunk < 1 {
		maxChunk = 1
	}

	t.rngMu.Lock()
	signX := 1
	if t.rng.Intn(2) == 0 {
		signX = -1
	}
	signZ := 1
	if t.rng.Intn(2) == 0 {
		signZ = -1
	}
	xMag := t.rng.Intn(2 * maxChunk)
	t.rngMu.Unlock()

	zMag := 2*maxChunk - xMag
	x := xMag * signX
	z := zMag * signZ

	// A degenerate draw on the origin remaps to a fixed neighbor instead of
	// retrying, trading a slight bias for a bounded draw.
	if x == 0 && z == 0 {
		x, z = 1, -1
	}
	return ChunkCoord{X: x, Z: z}
}
