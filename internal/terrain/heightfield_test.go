package terrain

import (
	"sync"
	"testing"
)

// TestHeightFieldDeterministic verifies repeated sampling produces identical
// results, including across concurrent callers.
func TestHeightFieldDeterministic(t *testing.T) {
	h := NewHeightField(42)

	var results [100]float32
	for i := range results {
		results[i] = h.At(12, -34)
	}
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatalf("At not deterministic: results[0]=%v, results[%d]=%v", results[0], i, results[i])
		}
	}

	// Concurrent callers must see the same values.
	const goroutines = 16
	sampled := make([]float32, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			sampled[g] = h.At(12, -34)
		}(g)
	}
	wg.Wait()
	for g, v := range sampled {
		if v != results[0] {
			t.Errorf("concurrent At diverged: goroutine %d got %v, want %v", g, v, results[0])
		}
	}
}

// TestHeightFieldSameSeedSameField verifies two fields with one seed agree
// everywhere sampled.
func TestHeightFieldSameSeedSameField(t *testing.T) {
	a := NewHeightField(7)
	b := NewHeightField(7)

	wa := a.Generate(-10, -10, 20, 20)
	wb := b.Generate(-10, -10, 20, 20)
	for r := range wa {
		for c := range wa[r] {
			if wa[r][c] != wb[r][c] {
				t.Fatalf("fields diverge at (%d,%d): %v != %v", r, c, wa[r][c], wb[r][c])
			}
		}
	}
}

// TestHeightFieldSeedSensitivity verifies different seeds change the field.
func TestHeightFieldSeedSensitivity(t *testing.T) {
	a := NewHeightField(1)
	b := NewHeightField(2)

	differs := false
	for r := 0; r < 32 && !differs; r++ {
		for c := 0; c < 32; c++ {
			if a.At(r, c) != b.At(r, c) {
				differs = true
				break
			}
		}
	}
	if !differs {
		t.Error("different seeds produced identical 32x32 windows")
	}
}

// TestHeightFieldRange verifies all samples land in [0,1].
func TestHeightFieldRange(t *testing.T) {
	h := NewHeightField(99)
	w := h.Generate(-500, -500, 64, 64)
	for r := range w {
		for c := range w[r] {
			if v := w[r][c]; v < 0 || v > 1 {
				t.Errorf("sample (%d,%d) = %v, expected in [0,1]", r, c, v)
			}
		}
	}
}

// TestGenerateWindowMatchesAt verifies windowed generation is just batched
// point sampling.
func TestGenerateWindowMatchesAt(t *testing.T) {
	h := NewHeightField(5)
	const originRow, originCol = -3, 17
	w := h.Generate(originRow, originCol, 8, 8)
	for r := range w {
		for c := range w[r] {
			want := h.At(originRow+r, originCol+c)
			if w[r][c] != want {
				t.Fatalf("window (%d,%d) = %v, At = %v", r, c, w[r][c], want)
			}
		}
	}
}

// TestAdjacentWindowsShareEdgeSamples verifies the chunk sampling layout:
// windows for neighboring chunks overlap on their shared edge, so meshes
// built from them cannot show seams.
func TestAdjacentWindowsShareEdgeSamples(t *testing.T) {
	h := NewHeightField(42)

	// Windows for chunk (0,0) and chunk (1,0), as buildChunk requests them.
	w0 := h.Generate(-1, 0*(ChunkSize-1)-1, ChunkSize+2, ChunkSize+2)
	w1 := h.Generate(-1, 1*(ChunkSize-1)-1, ChunkSize+2, ChunkSize+2)

	// The last inner column of chunk 0 and the first inner column of chunk 1
	// are the same absolute samples.
	for r := 0; r < ChunkSize+2; r++ {
		if w0[r][ChunkSize] != w1[r][1] {
			t.Fatalf("edge samples differ at row %d: %v != %v", r, w0[r][ChunkSize], w1[r][1])
		}
	}
}

func BenchmarkGenerateChunkWindow(b *testing.B) {
	h := NewHeightField(42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Generate(-1, -1, ChunkSize+2, ChunkSize+2)
	}
}
