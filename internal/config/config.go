package config

import "sync"

// Settings holds runtime-adjustable configuration.
type Settings struct {
	mu               sync.RWMutex
	fpsLimit         int
	mouseSensitivity float64
	evictRadius      int // chunks; 0 keeps every generated chunk
}

var globalSettings = &Settings{
	fpsLimit:         120,
	mouseSensitivity: 0.1,
	evictRadius:      0, // never evict unless asked to
}

// GetFPSLimit returns the frame rate cap. 0 means uncapped.
func GetFPSLimit() int {
	globalSettings.mu.RLock()
	defer globalSettings.mu.RUnlock()
	return globalSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap.
func SetFPSLimit(limit int) {
	globalSettings.mu.Lock()
	defer globalSettings.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	globalSettings.fpsLimit = limit
}

// GetMouseSensitivity returns the look sensitivity in degrees per pixel.
func GetMouseSensitivity() float64 {
	globalSettings.mu.RLock()
	defer globalSettings.mu.RUnlock()
	return globalSettings.mouseSensitivity
}

// SetMouseSensitivity sets the look sensitivity.
func SetMouseSensitivity(s float64) {
	globalSettings.mu.Lock()
	defer globalSettings.mu.Unlock()

	// Clamp to usable values
	if s < 0.01 {
		s = 0.01
	}
	if s > 1.0 {
		s = 1.0
	}
	globalSettings.mouseSensitivity = s
}

// GetChunkEvictRadius returns the eviction radius in chunks. 0 disables
// eviction entirely.
func GetChunkEvictRadius() int {
	globalSettings.mu.RLock()
	defer globalSettings.mu.RUnlock()
	return globalSettings.evictRadius
}

// SetChunkEvictRadius sets the eviction radius in chunks. Values below 2 are
// raised to 2 so the renderable neighborhood is never evicted.
func SetChunkEvictRadius(radius int) {
	globalSettings.mu.Lock()
	defer globalSettings.mu.Unlock()
	if radius != 0 && radius < 2 {
		radius = 2
	}
	globalSettings.evictRadius = radius
}
