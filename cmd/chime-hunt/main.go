package main

import (
	"flag"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"chime-hunt/internal/config"
	"chime-hunt/internal/game"
	"chime-hunt/internal/input"
	"chime-hunt/internal/profiling"
)

const (
	winW = 900
	winH = 600
)

func init() {
	runtime.LockOSThread()
}

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "terrain seed")
	evict := flag.Int("evict-radius", 0, "drop chunks farther than this many chunks from the observer (0 keeps all)")
	flag.Parse()

	config.SetChunkEvictRadius(*evict)

	if err := glfw.Init(); err != nil {
		log.Fatalf("initializing glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		log.Fatalf("creating window: %v", err)
	}

	im := input.NewManager()
	im.Install(window)

	session, err := game.NewSession(winW, winH, *seed)
	if err != nil {
		log.Fatalf("starting session: %v", err)
	}
	defer session.Cleanup()

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		session.Camera.SetViewport(width, height)
	})

	runGameLoop(window, session, im)
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winW, winH, "chime-hunt", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	// Own FPS limiter instead of V-Sync
	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}

func runGameLoop(window *glfw.Window, session *game.Session, im *input.Manager) {
	limiter := game.NewFPSLimiter()
	lastTime := time.Now()
	paused := false

	for !window.ShouldClose() {
		profiling.ResetFrame()
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		glfw.PollEvents()

		if im.JustPressed(input.ActionPause) {
			paused = !paused
			if paused {
				window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
			} else {
				window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
				im.ResetCursor()
			}
		}
		if im.JustPressed(input.ActionToggleWireframe) {
			session.Renderer.ToggleWireframe()
		}

		if !paused {
			session.Update(dt, im)
		}

		gl.ClearColor(0.53, 0.81, 0.92, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		session.Render()
		window.SwapBuffers()

		if frameDur := time.Since(now); frameDur > 16*time.Millisecond {
			log.Printf("slow frame: %v, top tasks: %s", frameDur, profiling.TopN(5))
		}

		im.PostUpdate()
		limiter.Wait()
	}
}
