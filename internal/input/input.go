package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-gl/mathgl/mgl32"
)

// Action represents a logical game action, not a physical key.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionSprint
	ActionPause
	ActionToggleWireframe
	ActionCount // sentinel for array sizing
)

// Manager maps physical keys and mouse buttons to logical actions and tracks
// pointer state. Mouse movement is exposed as a displacement value per poll,
// so callers never share a mutable vector with the callbacks.
type Manager struct {
	mu sync.RWMutex

	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	cursorX, cursorY float64
	prevX, prevY     float64
	firstCursor      bool

	leftPressed  bool
	rightPressed bool
}

// NewManager creates a Manager with the default key bindings.
func NewManager() *Manager {
	m := &Manager{
		keyToActions: make(map[glfw.Key][]Action),
		firstCursor:  true,
	}

	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyUp, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyDown, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionMoveLeft)
	m.BindKey(glfw.KeyLeft, ActionMoveLeft)
	m.BindKey(glfw.KeyD, ActionMoveRight)
	m.BindKey(glfw.KeyRight, ActionMoveRight)
	m.BindKey(glfw.KeyLeftControl, ActionSprint)
	m.BindKey(glfw.KeyEscape, ActionPause)
	m.BindKey(glfw.KeyF, ActionToggleWireframe)

	return m
}

// BindKey binds a physical key to a logical action. Multiple keys may map to
// the same action.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if action < 0 || action >= ActionCount {
		return
	}
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// Install registers the GLFW callbacks. Call once after window creation.
func (m *Manager) Install(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.handleKeyEvent(key, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		m.mu.Lock()
		m.cursorX = xpos
		m.cursorY = ypos
		m.mu.Unlock()
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		pressed := action == glfw.Press
		m.mu.Lock()
		switch button {
		case glfw.MouseButtonLeft:
			m.leftPressed = pressed
		case glfw.MouseButtonRight:
			m.rightPressed = pressed
		}
		m.mu.Unlock()
	})
}

func (m *Manager) handleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.RLock()
	actions, exists := m.keyToActions[key]
	m.mu.RUnlock()
	if !exists {
		return
	}

	isPressed := action == glfw.Press || action == glfw.Repeat

	m.mu.Lock()
	for _, act := range actions {
		if isPressed && !m.currentState[act] {
			m.justPressed[act] = true
		}
		if !isPressed && m.currentState[act] {
			m.justReleased[act] = true
		}
		m.currentState[act] = isPressed
	}
	m.mu.Unlock()
}

// PollMouseDelta returns the cursor displacement since the previous poll.
// The first poll after startup (or after ResetCursor) returns zero so a
// jump to the initial cursor position never spins the camera.
func (m *Manager) PollMouseDelta() mgl32.Vec2 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var delta mgl32.Vec2
	if !m.firstCursor {
		delta = mgl32.Vec2{
			float32(m.cursorX - m.prevX),
			float32(m.cursorY - m.prevY),
		}
	}
	m.prevX = m.cursorX
	m.prevY = m.cursorY
	m.firstCursor = false
	return delta
}

// ResetCursor discards accumulated cursor movement, e.g. when the cursor is
// recaptured after unpausing.
func (m *Manager) ResetCursor() {
	m.mu.Lock()
	m.firstCursor = true
	m.mu.Unlock()
}

// LeftPressed reports whether the left mouse button is held.
func (m *Manager) LeftPressed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.leftPressed
}

// RightPressed reports whether the right mouse button is held.
func (m *Manager) RightPressed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rightPressed
}

// IsActive returns true while the action's key is held down.
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState[action]
}

// JustPressed returns true only on the frame the action was pressed.
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// PostUpdate clears the per-frame edge flags. Call at the end of each frame
// after all input checks are done.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range ActionCount {
		m.justPressed[i] = false
		m.justReleased[i] = false
	}
}
