// Package terrain streams an effectively infinite heightmap terrain around a
// moving observer. Only the observer's current chunk and its 8 neighbors are
// renderable at a time; chunks are generated on background workers and the
// renderable set is swapped atomically between frames.
package terrain

import (
	"fmt"
	"log"
	"math/rand"
	"sync"

	"chime-hunt/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// Config carries the fixed parameters of a terrain.
type Config struct {
	// Scale is the world-space side length of one chunk.
	Scale float32
	// MinY and MaxY bound the generated terrain height.
	MinY, MaxY float32
	// Texture is the shared surface texture; nil is allowed for headless use.
	Texture *mesh.Texture
	// TextureInc is the number of texture repeats across a chunk.
	TextureInc int
	// LandmarkDistanceFactor scales how far out the music box is placed.
	// Smaller values place it closer and make the hunt easier.
	LandmarkDistanceFactor float32
	// Seed drives both the height field and landmark placement.
	Seed int64
	// EvictRadius drops chunks farther than this many chunks from the
	// observer after each pass. 0 keeps every generated chunk forever.
	EvictRadius int
}

func (c Config) validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("terrain scale %v: must be positive", c.Scale)
	}
	if c.MaxY <= c.MinY {
		return fmt.Errorf("terrain height bounds [%v, %v]: max must exceed min", c.MinY, c.MaxY)
	}
	if c.TextureInc < 1 {
		return fmt.Errorf("texture increment %d: must be positive", c.TextureInc)
	}
	if c.LandmarkDistanceFactor <= 0 {
		return fmt.Errorf("landmark distance factor %v: must be positive", c.LandmarkDistanceFactor)
	}
	return nil
}

// Terrain is the facade over the height field, chunk store, streamer and
// render set. Safe for concurrent use.
type Terrain struct {
	cfg       Config
	field     *HeightField
	store     *Store
	renderSet *RenderSet
	streamer  *Streamer

	obsMu   sync.Mutex
	current ChunkCoord

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a terrain, synchronously builds the origin chunk so the
// observer always starts inside valid ground, and kicks off a background
// pass for the origin's neighbors.
func New(cfg Config) (*Terrain, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	t := &Terrain{
		cfg:       cfg,
		field:     NewHeightField(cfg.Seed),
		renderSet: NewRenderSet(),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}
	t.store = NewStore(t.buildChunk)

	origin, err := t.store.GetOrCreate(ChunkCoord{})
	if err != nil {
		return nil, fmt.Errorf("creating origin chunk: %w", err)
	}
	t.renderSet.Replace([]*Chunk{origin})

	t.streamer = NewStreamer(t.store, t.renderSet, cfg.EvictRadius)
	t.streamer.Trigger(ChunkCoord{})
	return t, nil
}

// buildChunk is the store's ChunkBuilder. Adjacent chunks advance the sample
// window by ChunkSize-1 so they share their edge samples, and the extra -1
// offset makes room for the one-sample normal border.
func (t *Terrain) buildChunk(coord ChunkCoord) (*Chunk, error) {
	samples := t.field.Generate(
		coord.Z*(ChunkSize-1)-1,
		coord.X*(ChunkSize-1)-1,
		ChunkSize+2,
		ChunkSize+2,
	)
	m, err := mesh.BuildHeightmap(t.cfg.MinY, t.cfg.MaxY, samples, ChunkSize, t.cfg.TextureInc, t.cfg.Texture)
	if err != nil {
		return nil, fmt.Errorf("chunk (%d,%d): %w", coord.X, coord.Z, err)
	}
	return &Chunk{
		coord:   coord,
		scale:   t.cfg.Scale,
		minY:    t.cfg.MinY,
		maxY:    t.cfg.MaxY,
		samples: samples,
		mesh:    m,
		origin:  mgl32.Vec3{float32(coord.X) * t.cfg.Scale, 0, float32(coord.Z) * t.cfg.Scale},
	}, nil
}

// SetObserverChunk records the chunk the observer is standing in. Call it
// whenever the observer moves; it is a no-op when the coordinate is
// unchanged and never blocks, otherwise it triggers a background pass.
func (t *Terrain) SetObserverChunk(coord ChunkCoord) {
	t.obsMu.Lock()
	if coord == t.current {
		t.obsMu.Unlock()
		return
	}
	t.current = coord
	t.obsMu.Unlock()
	t.streamer.Trigger(coord)
}

// ObserverChunk returns the chunk coordinate the observer currently occupies.
func (t *Terrain) ObserverChunk() ChunkCoord {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	return t.current
}

// RenderItems returns the chunks eligible for drawing this frame.
func (t *Terrain) RenderItems() []*Chunk {
	return t.renderSet.Items()
}

// SampleHeight returns the terrain height under a world position, delegating
// to the observer's current chunk. If streaming has not caught up with the
// observer yet, the chunk is built in place rather than guessing a height.
func (t *Terrain) SampleHeight(worldX, worldZ float32) float32 {
	coord := t.ObserverChunk()
	ch := t.store.Get(coord)
	if ch == nil {
		var err error
		ch, err = t.store.GetOrCreate(coord)
		if err != nil {
			log.Printf("terrain: height query in missing chunk (%d,%d): %v", coord.X, coord.Z, err)
			return t.cfg.MinY
		}
	}
	return ch.HeightAt(worldX, worldZ)
}

// Close stops background streaming. Chunks already published stay readable.
func (t *Terrain) Close() {
	t.streamer.Close()
}
