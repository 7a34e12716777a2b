package main

import (
	"context"
	"time"
)

// FramePublisher receives one frame per tick (the render collaborator)
type FramePublisher interface {
	PublishFrame(f *Frame)
}

// WelcomeSetter receives the static scene whenever the world is (re)started
type WelcomeSetter interface {
	SetWelcome(w WelcomeMsg)
}

// Game drives the world from a single goroutine. Inbound datagrams are
// applied at the start of a tick, before simulation and rendering.
type Game struct {
	world  *World
	router *Router
	inbox  <-chan string
	input  InputSource
	frames FramePublisher
	tick   uint64
	gen    uint64 // world generation last announced
}

// NewGame wires a world to its collaborators. inbox and frames may be nil.
func NewGame(w *World, inbox <-chan string, input InputSource, frames FramePublisher) *Game {
	return &Game{
		world:  w,
		router: NewRouter(w),
		inbox:  inbox,
		input:  input,
		frames: frames,
	}
}

// Run ticks at the tuned frame rate until ctx is cancelled
func (g *Game) Run(ctx context.Context) error {
	g.world.Start()
	g.announce()

	ticker := time.NewTicker(time.Second / time.Duration(g.world.tuning.FrameRate))
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now
			g.Step(dt)
		}
	}
}

// Step runs one tick of dt ms
func (g *Game) Step(dt float64) {
	g.drainInbox()
	g.world.Tick(dt, g.input.Poll())
	g.tick++
	g.announce()
	if g.frames != nil {
		g.frames.PublishFrame(g.world.Frame(g.tick))
	}
}

// drainInbox applies every datagram that has already arrived
func (g *Game) drainInbox() {
	if g.inbox == nil {
		return
	}
	for {
		select {
		case msg := <-g.inbox:
			g.router.Route(msg)
		default:
			return
		}
	}
}

// announce pushes the static scene once per world generation (start or reload)
func (g *Game) announce() {
	ws, ok := g.frames.(WelcomeSetter)
	if !ok {
		return
	}
	gen := g.world.Generation()
	if gen == g.gen {
		return
	}
	g.gen = gen
	stars := g.world.Stars()
	t := g.world.tuning
	ws.SetWelcome(WelcomeMsg{
		MapSize:   t.MapSize,
		MapPad:    t.MapPad,
		MaxEnergy: t.MaxEnergy,
		FrameRate: t.FrameRate,
		Stars:     stars,
	})
}
