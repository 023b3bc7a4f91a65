package terrain

import (
	"testing"
	"time"
)

func testConfig(seed int64) Config {
	return Config{
		Scale:                  1,
		MinY:                   0,
		MaxY:                   100,
		TextureInc:             1,
		LandmarkDistanceFactor: 0.25,
		Seed:                   seed,
	}
}

func newTestTerrain(t *testing.T, seed int64) *Terrain {
	t.Helper()
	tr, err := New(testConfig(seed))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(tr.Close)
	return tr
}

func TestNewValidatesConfig(t *testing.T) {
	bad := []Config{
		{Scale: 0, MinY: 0, MaxY: 1, TextureInc: 1, LandmarkDistanceFactor: 1},
		{Scale: 1, MinY: 5, MaxY: 5, TextureInc: 1, LandmarkDistanceFactor: 1},
		{Scale: 1, MinY: 0, MaxY: 1, TextureInc: 0, LandmarkDistanceFactor: 1},
		{Scale: 1, MinY: 0, MaxY: 1, TextureInc: 1, LandmarkDistanceFactor: 0},
	}
	for i, cfg := range bad {
		if _, err := New(cfg); err == nil {
			t.Errorf("config %d accepted, want error", i)
		}
	}
}

func TestNewBuildsOriginSynchronously(t *testing.T) {
	tr := newTestTerrain(t, 42)

	// Before any background pass finishes, the origin chunk is already
	// renderable and standable.
	items := tr.RenderItems()
	if len(items) == 0 {
		t.Fatal("render set empty right after New")
	}
	hasOrigin := false
	for _, ch := range items {
		if ch.Coord() == (ChunkCoord{}) {
			hasOrigin = true
		}
	}
	if !hasOrigin {
		t.Error("origin chunk missing from initial render set")
	}

	h := tr.SampleHeight(0.5, 0.5)
	if h < 0 || h > 100 {
		t.Errorf("SampleHeight(0.5, 0.5) = %v, want within [0, 100]", h)
	}
}

func TestObserverMoveStreamsNeighborhood(t *testing.T) {
	tr := newTestTerrain(t, 42)

	center := ChunkCoord{1, 0}
	tr.SetObserverChunk(center)
	if got := tr.ObserverChunk(); got != center {
		t.Fatalf("ObserverChunk = %v, want %v", got, center)
	}

	want := neighborhoodOf(center)
	waitFor(t, "render set to match the new neighborhood", func() bool {
		items := tr.RenderItems()
		if len(items) != len(want) {
			return false
		}
		for _, ch := range items {
			if !want[ch.Coord()] {
				return false
			}
		}
		return true
	})

	// The previous center stays renderable because it borders the new one,
	// and the far edge of the new neighborhood is in.
	if !tr.renderSet.Contains(ChunkCoord{0, 0}) {
		t.Error("chunk (0,0) dropped although adjacent to (1,0)")
	}
	if !tr.renderSet.Contains(ChunkCoord{2, 0}) {
		t.Error("chunk (2,0) missing from the neighborhood of (1,0)")
	}
}

func TestSetObserverChunkIdempotent(t *testing.T) {
	tr := newTestTerrain(t, 42)

	// Let the initial pass finish and the store go quiet.
	waitFor(t, "initial neighborhood", func() bool {
		return tr.renderSet.Len() == 9
	})
	waitFor(t, "store to go quiet", func() bool {
		before := tr.store.ModCount()
		time.Sleep(20 * time.Millisecond)
		return tr.store.ModCount() == before
	})

	mod := tr.store.ModCount()
	n := tr.renderSet.Len()

	// Re-entering the current chunk must not trigger new work.
	tr.SetObserverChunk(tr.ObserverChunk())
	time.Sleep(50 * time.Millisecond)

	if got := tr.store.ModCount(); got != mod {
		t.Errorf("ModCount changed on re-entry: %d -> %d", mod, got)
	}
	if got := tr.renderSet.Len(); got != n {
		t.Errorf("render set size changed on re-entry: %d -> %d", n, got)
	}
}

func TestTerrainDeterministicAcrossInstances(t *testing.T) {
	a := newTestTerrain(t, 7)
	b := newTestTerrain(t, 7)

	ca := a.store.Get(ChunkCoord{})
	cb := b.store.Get(ChunkCoord{})
	if ca == nil || cb == nil {
		t.Fatal("origin chunk missing")
	}
	for r := range ca.samples {
		for c := range ca.samples[r] {
			if ca.samples[r][c] != cb.samples[r][c] {
				t.Fatalf("origin samples diverge at (%d,%d)", r, c)
			}
		}
	}
	if ca.MinimumPoint() != cb.MinimumPoint() {
		t.Errorf("minimum points diverge: %v != %v", ca.MinimumPoint(), cb.MinimumPoint())
	}
	for _, p := range [][2]float32{{0.1, 0.1}, {0.5, 0.9}, {0.99, 0.01}} {
		if ha, hb := a.SampleHeight(p[0], p[1]), b.SampleHeight(p[0], p[1]); ha != hb {
			t.Errorf("SampleHeight(%v, %v) diverges: %v != %v", p[0], p[1], ha, hb)
		}
	}
}

func TestSampleHeightBuildsMissingChunk(t *testing.T) {
	tr := newTestTerrain(t, 3)

	// Teleport well outside anything streamed so far; the height query must
	// still answer from real ground.
	far := ChunkCoord{50, 50}
	tr.SetObserverChunk(far)
	h := tr.SampleHeight(50.5, 50.5)
	if h < 0 || h > 100 {
		t.Errorf("SampleHeight in fresh chunk = %v, want within [0, 100]", h)
	}
	if tr.store.Get(far) == nil {
		t.Error("height query did not materialize the observer's chunk")
	}
}

func TestCloseKeepsPublishedChunksReadable(t *testing.T) {
	tr, err := New(testConfig(11))
	if err != nil {
		t.Fatal(err)
	}
	tr.Close()

	if len(tr.RenderItems()) == 0 {
		t.Error("render set unreadable after Close")
	}
	if h := tr.SampleHeight(0.5, 0.5); h < 0 || h > 100 {
		t.Errorf("SampleHeight after Close = %v, want within [0, 100]", h)
	}
}

func BenchmarkBuildChunk(b *testing.B) {
	tr, err := New(testConfig(42))
	if err != nil {
		b.Fatal(err)
	}
	defer tr.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tr.buildChunk(ChunkCoord{X: i + 100, Z: -i - 100}); err != nil {
			b.Fatal(err)
		}
	}
}
