package main

import "sync"

// Key names accepted from the input collaborator
const (
	KeyLeft     = "left"
	KeyRight    = "right"
	KeyForward  = "up"
	KeyBackward = "down"
	KeyFire     = "fire"
	KeyRespawn  = "enter"
	KeyReload   = "reload"
)

// InputSnapshot is the key state sampled once per tick. Movement keys are
// level-triggered; Fire, Respawn and Reload are true only on the tick after a press.
type InputSnapshot struct {
	Left, Right       bool
	Forward, Backward bool
	Fire              bool
	Respawn           bool
	Reload            bool
}

// InputSource is polled by the game loop once per tick
type InputSource interface {
	Poll() InputSnapshot
}

// KeyState collects key events from any goroutine and turns them into snapshots
type KeyState struct {
	mu      sync.Mutex
	down    map[string]bool
	pressed map[string]bool // pressed since last poll
}

// NewKeyState creates an empty key state
func NewKeyState() *KeyState {
	return &KeyState{
		down:    make(map[string]bool),
		pressed: make(map[string]bool),
	}
}

// Set records a key going down or up. Returns false for unknown keys.
func (k *KeyState) Set(key string, down bool) bool {
	switch key {
	case KeyLeft, KeyRight, KeyForward, KeyBackward, KeyFire, KeyRespawn, KeyReload:
	default:
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if down && !k.down[key] {
		k.pressed[key] = true
	}
	k.down[key] = down
	return true
}

// Release lifts every key, e.g. when the controller disconnects
func (k *KeyState) Release() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for key := range k.down {
		k.down[key] = false
	}
}

// Poll returns the current snapshot and clears the edge latches
func (k *KeyState) Poll() InputSnapshot {
	k.mu.Lock()
	defer k.mu.Unlock()
	in := InputSnapshot{
		Left:     k.down[KeyLeft],
		Right:    k.down[KeyRight],
		Forward:  k.down[KeyForward],
		Backward: k.down[KeyBackward],
		Fire:     k.pressed[KeyFire],
		Respawn:  k.pressed[KeyRespawn],
		Reload:   k.pressed[KeyReload],
	}
	clear(k.pressed)
	return in
}
