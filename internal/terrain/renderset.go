package terrain

import "sync"

// RenderSet is the published snapshot of chunks eligible for drawing. The
// streamer replaces it once per pass; the render loop reads it once per
// frame. Replacement happens under one critical section, so a reader never
// observes a torn or partially swapped set.
type RenderSet struct {
	mu    sync.RWMutex
	items map[ChunkCoord]*Chunk
}

// NewRenderSet creates an empty render set.
func NewRenderSet() *RenderSet {
	return &RenderSet{items: make(map[ChunkCoord]*Chunk)}
}

// Replace swaps the published set: entries not in next are removed, all of
// next is added.
func (rs *RenderSet) Replace(next []*Chunk) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	keep := make(map[ChunkCoord]struct{}, len(next))
	for _, ch := range next {
		keep[ch.Coord()] = struct{}{}
	}
	for coord := range rs.items {
		if _, ok := keep[coord]; !ok {
			delete(rs.items, coord)
		}
	}
	for _, ch := range next {
		rs.items[ch.Coord()] = ch
	}
}

// Items returns a copy of the current set, safe to hold across a frame.
func (rs *RenderSet) Items() []*Chunk {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	out := make([]*Chunk, 0, len(rs.items))
	for _, ch := range rs.items {
		out = append(out, ch)
	}
	return out
}

// Contains reports whether the chunk at coord is currently renderable.
func (rs *RenderSet) Contains(coord ChunkCoord) bool {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	_, ok := rs.items[coord]
	return ok
}

// Len returns the number of renderable chunks.
func (rs *RenderSet) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.items)
}
