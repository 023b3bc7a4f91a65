package terrain

import "sync"

// ChunkBuilder constructs the chunk for a coordinate. Builders must be pure:
// the same coordinate always yields an equivalent chunk.
type ChunkBuilder func(ChunkCoord) (*Chunk, error)

// Store is the single source of truth for chunks that exist. A coordinate,
// once present, keeps the same *Chunk for as long as it stays in the store.
type Store struct {
	build ChunkBuilder

	mu       sync.RWMutex
	chunks   map[ChunkCoord]*Chunk
	modCount uint64 // increases on any add/remove
}

// NewStore creates an empty store using build for absent coordinates.
func NewStore(build ChunkBuilder) *Store {
	return &Store{
		build:  build,
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// Get returns the chunk at coord, or nil if it has not been generated yet.
func (s *Store) Get(coord ChunkCoord) *Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunks[coord]
}

// GetOrCreate returns the chunk at coord, building it when absent.
//
// The build runs outside the lock, so callers racing on the same absent
// coordinate may each build a chunk; the first insert wins and the losers
// discard their copy and return the winner. Builds are deterministic, so the
// duplicate work is wasted but never observable. A failed build inserts
// nothing and the coordinate is retried on the next reference.
func (s *Store) GetOrCreate(coord ChunkCoord) (*Chunk, error) {
	if ch := s.Get(coord); ch != nil {
		return ch, nil
	}

	built, err := s.build(coord)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.chunks[coord]; ok {
		return existing, nil
	}
	s.chunks[coord] = built
	s.modCount++
	return built, nil
}

// Len returns the number of chunks currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// ModCount returns the current modification count of the chunk map.
func (s *Store) ModCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modCount
}

// Coords returns the coordinates of all stored chunks, in map order.
func (s *Store) Coords() []ChunkCoord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChunkCoord, 0, len(s.chunks))
	for coord := range s.chunks {
		out = append(out, coord)
	}
	return out
}

// EvictFar removes chunks whose Chebyshev distance from center exceeds
// radius. Radius is clamped to 1 so the active 3x3 neighborhood always
// survives. Returns the number of chunks removed.
func (s *Store) EvictFar(center ChunkCoord, radius int) int {
	if radius < 1 {
		radius = 1
	}
	removed := 0
	s.mu.Lock()
	defer s.mu.Unlock()
	for coord := range s.chunks {
		dx := coord.X - center.X
		if dx < 0 {
			dx = -dx
		}
		dz := coord.Z - center.Z
		if dz < 0 {
			dz = -dz
		}
		if dx > radius || dz > radius {
			delete(s.chunks, coord)
			s.modCount++
			removed++
		}
	}
	return removed
}
