package game

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"chime-hunt/internal/config"
	"chime-hunt/internal/graphics"
	"chime-hunt/internal/input"
	"chime-hunt/internal/profiling"
	"chime-hunt/internal/terrain"
)

const (
	// WorldScale is the world-space side length of one terrain chunk.
	WorldScale = 64

	MinWorldHeight = 0
	MaxWorldHeight = 40

	TerrainTexturePath = "assets/textures/grass.png"
	TextureTiling      = 32

	EyeHeight = 1.8

	// CameraStepSize is the distance of a single movement step; the landmark
	// placement budget assumes about five steps per second of walking.
	CameraStepSize   = 0.8
	StepsPerSecond   = 5
	SprintFactor     = 1.6
	LandmarkFactor   = 0.25
	SongLengthMillis = 213_000

	// FoundRadius is how close the observer must get to win the hunt.
	FoundRadius = 3.0
)

// Session owns one run of the music box hunt: the streamed terrain, the
// walking camera and the hidden music box.
type Session struct {
	Terrain  *terrain.Terrain
	Camera   *graphics.Camera
	Renderer *graphics.TerrainRenderer

	musicBox mgl32.Vec3
	found    bool
}

// NewSession builds the terrain (origin chunk synchronously), hides the
// music box and spawns the observer at the center of the origin chunk.
// Must run on the GL thread.
func NewSession(width, height int, seed int64) (*Session, error) {
	texture, err := graphics.LoadTexture(TerrainTexturePath)
	if err != nil {
		// A missing texture degrades to height-based shading; the hunt
		// itself does not depend on it.
		log.Printf("game: terrain texture unavailable, using flat shading: %v", err)
		texture = nil
	}

	terr, err := terrain.New(terrain.Config{
		Scale:                  WorldScale,
		MinY:                   MinWorldHeight,
		MaxY:                   MaxWorldHeight,
		Texture:                texture,
		TextureInc:             TextureTiling,
		LandmarkDistanceFactor: LandmarkFactor,
		Seed:                   seed,
		EvictRadius:            config.GetChunkEvictRadius(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating terrain: %w", err)
	}

	musicBox, err := terr.PlaceLandmark(WorldScale, CameraStepSize, SongLengthMillis)
	if err != nil {
		terr.Close()
		return nil, fmt.Errorf("placing music box: %w", err)
	}
	log.Printf("game: music box hidden %.0f units from spawn",
		mgl32.Vec2{musicBox.X(), musicBox.Z()}.Len())

	renderer := graphics.NewTerrainRenderer()
	if err := renderer.Init(); err != nil {
		terr.Close()
		return nil, fmt.Errorf("initializing terrain renderer: %w", err)
	}

	camera := graphics.NewCamera(width, height)
	spawnX, spawnZ := float32(WorldScale)/2, float32(WorldScale)/2
	camera.Position = mgl32.Vec3{spawnX, terr.SampleHeight(spawnX, spawnZ) + EyeHeight, spawnZ}

	return &Session{
		Terrain:  terr,
		Camera:   camera,
		Renderer: renderer,
		musicBox: musicBox,
	}, nil
}

// Update advances one frame: mouse look, walking constrained to the terrain
// surface, and observer chunk tracking.
func (s *Session) Update(dt float64, im *input.Manager) {
	defer profiling.Track("game.Update")()

	delta := im.PollMouseDelta()
	sens := config.GetMouseSensitivity()
	s.Camera.Rotate(float64(delta.X())*sens, -float64(delta.Y())*sens)

	var move mgl32.Vec3
	forward := s.Camera.Forward()
	forward[1] = 0
	if forward.Len() > 0 {
		forward = forward.Normalize()
	}
	right := s.Camera.Right()

	if im.IsActive(input.ActionMoveForward) {
		move = move.Add(forward)
	}
	if im.IsActive(input.ActionMoveBackward) {
		move = move.Sub(forward)
	}
	if im.IsActive(input.ActionMoveRight) {
		move = move.Add(right)
	}
	if im.IsActive(input.ActionMoveLeft) {
		move = move.Sub(right)
	}

	pos := s.Camera.Position
	if move.Len() > 0 {
		speed := float32(CameraStepSize * StepsPerSecond)
		if im.IsActive(input.ActionSprint) {
			speed *= SprintFactor
		}
		pos = pos.Add(move.Normalize().Mul(speed * float32(dt)))
	}

	// The observer walks on the surface: Y always follows the terrain.
	pos[1] = s.Terrain.SampleHeight(pos.X(), pos.Z()) + EyeHeight
	s.Camera.Position = pos

	s.Terrain.SetObserverChunk(terrain.CoordFromWorld(pos.X(), pos.Z(), WorldScale))

	if !s.found && s.distanceToMusicBox() < FoundRadius {
		s.found = true
		log.Printf("game: music box found at (%.1f, %.1f, %.1f)",
			s.musicBox.X(), s.musicBox.Y(), s.musicBox.Z())
	}
}

// Render draws the current render set.
func (s *Session) Render() {
	s.Renderer.Render(s.Terrain.RenderItems(), s.Camera)
}

// Found reports whether the music box has been reached.
func (s *Session) Found() bool {
	return s.found
}

// MusicBoxPosition returns the music box's world position.
func (s *Session) MusicBoxPosition() mgl32.Vec3 {
	return s.musicBox
}

func (s *Session) distanceToMusicBox() float32 {
	d := s.Camera.Position.Sub(s.musicBox)
	// Height differences don't count; hearing the box means standing over it.
	d[1] = 0
	return d.Len()
}

// Cleanup stops streaming and frees GPU state.
func (s *Session) Cleanup() {
	s.Terrain.Close()
	s.Renderer.Dispose()
}
