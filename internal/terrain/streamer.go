package terrain

import (
	"log"
	"runtime"
	"sync"

	"chime-hunt/internal/profiling"
)

// Streamer generates the chunks around the observer on background workers
// and maintains the render set. One streaming pass ensures the observer's
// 3x3 neighborhood exists, then publishes it.
//
// Passes are serialized through a single run loop fed by a capacity-1
// latest-wins trigger, so rapid movement coalesces into at most one queued
// pass instead of one goroutine per move. Chunk builds inside a pass fan out
// over a semaphore sized to the CPU count.
type Streamer struct {
	store       *Store
	renderSet   *RenderSet
	evictRadius int // chunks; 0 disables eviction

	trigger chan ChunkCoord
	quit    chan struct{}
	done    chan struct{}
	sem     chan struct{}
}

// NewStreamer creates a streamer and starts its run loop.
func NewStreamer(store *Store, renderSet *RenderSet, evictRadius int) *Streamer {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	s := &Streamer{
		store:       store,
		renderSet:   renderSet,
		evictRadius: evictRadius,
		trigger:     make(chan ChunkCoord, 1),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
		sem:         make(chan struct{}, workers),
	}
	go s.run()
	return s
}

// Trigger requests a streaming pass around center. Never blocks: when a
// request is already queued it is replaced by the newer coordinate, so the
// render set lags the observer by at most one pending pass.
func (s *Streamer) Trigger(center ChunkCoord) {
	for {
		select {
		case s.trigger <- center:
			return
		default:
		}
		select {
		case <-s.trigger:
		default:
		}
	}
}

// Close stops the run loop after any in-flight pass completes.
func (s *Streamer) Close() {
	close(s.quit)
	<-s.done
}

func (s *Streamer) run() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case center := <-s.trigger:
			s.streamPass(center)
		}
	}
}

// streamPass ensures the neighborhood of center exists and publishes it as
// the new render set. Coordinates whose build fails are skipped; they stay
// absent from the store and are retried by a later pass.
func (s *Streamer) streamPass(center ChunkCoord) {
	defer profiling.Track("terrain.streamPass")()

	coords := append(center.Adjacent(), center)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		next = make([]*Chunk, 0, len(coords))
	)
	for _, coord := range coords {
		wg.Add(1)
		s.sem <- struct{}{}
		go func(coord ChunkCoord) {
			defer wg.Done()
			defer func() { <-s.sem }()

			ch, err := s.store.GetOrCreate(coord)
			if err != nil {
				log.Printf("terrain: generating chunk (%d,%d): %v", coord.X, coord.Z, err)
				return
			}
			mu.Lock()
			next = append(next, ch)
			mu.Unlock()
		}(coord)
	}
	wg.Wait()

	// Keep the previous set rather than publishing an empty one when every
	// build in the pass failed.
	if len(next) == 0 {
		return
	}
	s.renderSet.Replace(next)

	if s.evictRadius > 0 {
		s.store.EvictFar(center, s.evictRadius)
	}
}
