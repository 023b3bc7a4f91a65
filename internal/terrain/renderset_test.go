package terrain

import (
	"sync"
	"testing"
)

func chunksFor(coords ...ChunkCoord) []*Chunk {
	out := make([]*Chunk, len(coords))
	for i, c := range coords {
		out[i] = &Chunk{coord: c}
	}
	return out
}

func TestRenderSetReplace(t *testing.T) {
	rs := NewRenderSet()

	rs.Replace(chunksFor(ChunkCoord{0, 0}, ChunkCoord{1, 0}))
	if rs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", rs.Len())
	}

	// Replacing keeps only the new membership.
	rs.Replace(chunksFor(ChunkCoord{1, 0}, ChunkCoord{2, 0}, ChunkCoord{2, 1}))
	if rs.Len() != 3 {
		t.Fatalf("Len after replace = %d, want 3", rs.Len())
	}
	if rs.Contains(ChunkCoord{0, 0}) {
		t.Error("chunk (0,0) should have been removed")
	}
	for _, c := range []ChunkCoord{{1, 0}, {2, 0}, {2, 1}} {
		if !rs.Contains(c) {
			t.Errorf("chunk %v missing from render set", c)
		}
	}
}

func TestRenderSetItemsSnapshot(t *testing.T) {
	rs := NewRenderSet()
	rs.Replace(chunksFor(ChunkCoord{0, 0}, ChunkCoord{0, 1}))

	snapshot := rs.Items()
	rs.Replace(chunksFor(ChunkCoord{9, 9}))

	if len(snapshot) != 2 {
		t.Errorf("snapshot mutated by later Replace: len = %d, want 2", len(snapshot))
	}
}

// TestRenderSetReadersNeverSeeTornSets hammers Replace from one goroutine
// while readers assert every observed set is one of the two valid
// memberships, never a mix.
func TestRenderSetReadersNeverSeeTornSets(t *testing.T) {
	rs := NewRenderSet()
	setA := chunksFor(ChunkCoord{0, 0}, ChunkCoord{1, 0}, ChunkCoord{2, 0})
	setB := chunksFor(ChunkCoord{5, 5}, ChunkCoord{6, 5})
	rs.Replace(setA)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			rs.Replace(setA)
			rs.Replace(setB)
		}
		close(done)
	}()

	for {
		select {
		case <-done:
			wg.Wait()
			return
		default:
		}
		items := rs.Items()
		switch len(items) {
		case len(setA), len(setB):
		default:
			t.Fatalf("observed torn render set of size %d", len(items))
		}
		want := setA
		if len(items) == len(setB) {
			want = setB
		}
		for _, ch := range items {
			found := false
			for _, w := range want {
				if ch.Coord() == w.Coord() {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("observed chunk %v from the wrong set", ch.Coord())
			}
		}
	}
}
