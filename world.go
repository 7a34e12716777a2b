package main

import (
	"fmt"
	"log"
	"math/rand"
)

// Sender delivers an outbound datagram. Delivery is best-effort.
type Sender interface {
	Send(msg string)
}

// Recorder receives gameplay events for the flight recorder
type Recorder interface {
	Record(kind string, shipID int, value int)
}

type discardSender struct{}

func (discardSender) Send(string) {}

type discardRecorder struct{}

func (discardRecorder) Record(string, int, int) {}

// LogEntry is one line of the captain's log
type LogEntry struct {
	Text string  `msgpack:"t"`
	At   float64 `msgpack:"at"` // ms since world start
}

// World is the simulation context. It owns every entity collection and must
// only be touched from the game loop goroutine.
type World struct {
	tuning   Tuning
	mode     Mode
	rng      *rand.Rand
	sender   Sender
	recorder Recorder

	ship    *Ship   // local ship, nil until joined
	ships   []*Ship // remote ships
	rocks   *AsteroidField
	bullets []*Bullet
	pellets []*Pellet
	stars   []Star
	grid    *SpatialGrid

	logs           []LogEntry
	gameOver       bool
	gameOverReason string
	pelletAngle    float64
	shake          ScreenShake
	clock          float64 // ms since start
	lastGarbage    float64
	nextRockID     int
	generation     uint64 // bumped by every Start
}

// NewWorld creates an empty world. Call Start to spawn or request content.
func NewWorld(t Tuning, mode Mode, sender Sender, rng *rand.Rand) *World {
	if sender == nil {
		sender = discardSender{}
	}
	return &World{
		tuning:   t,
		mode:     mode,
		rng:      rng,
		sender:   sender,
		recorder: discardRecorder{},
		rocks:    NewAsteroidField(),
		grid:     NewSpatialGrid(t),
	}
}

// SetRecorder attaches a flight recorder
func (w *World) SetRecorder(r Recorder) {
	if r == nil {
		r = discardRecorder{}
	}
	w.recorder = r
}

// Start populates the world. In server mode it asks for a snapshot and a
// ship; in local mode it spawns both itself.
func (w *World) Start() {
	w.generation++
	w.stars = RandomStars(w.rng, w.tuning.StarCount, w.tuning)
	if w.mode == ModeServer {
		w.sender.Send(MsgRock)
		w.sender.Send(MsgJoin)
		return
	}
	for i := 0; i < w.tuning.LocalRockCount; i++ {
		w.rocks.Insert(RandomAsteroid(w.rng, w.nextRockID, w.tuning))
		w.nextRockID++
	}
	w.Join(JoinOKMsg{
		X:        w.tuning.MapSize / 2,
		Y:        w.tuning.MapSize / 2,
		Energy:   w.tuning.MaxEnergy,
		ShieldOn: true,
	})
}

// Reload throws the world away and starts over
func (w *World) Reload() {
	*w = World{
		tuning:     w.tuning,
		mode:       w.mode,
		rng:        w.rng,
		sender:     w.sender,
		recorder:   w.recorder,
		rocks:      NewAsteroidField(),
		grid:       w.grid,
		generation: w.generation,
	}
	w.logf("reloaded [system]")
	w.Start()
}

// Join initializes the local ship. Only the first join is honoured.
func (w *World) Join(m JoinOKMsg) bool {
	if w.ship != nil {
		return false
	}
	w.ship = NewLocalShip(m)
	w.logf("%d entered the arena [system]", w.ship.ID)
	w.joinGame()
	w.recorder.Record(EvtJoin, w.ship.ID, w.ship.Energy)
	return true
}

// joinGame clears game over and arms the spawn shield
func (w *World) joinGame() {
	w.gameOver = false
	w.gameOverReason = ""
	w.ship.EnableShield(ShieldJoinDecay)
}

// Respawn leaves the game-over screen with a full tank
func (w *World) Respawn() bool {
	if w.ship == nil || !w.gameOver {
		return false
	}
	w.ship.Energy = w.tuning.MaxEnergy
	w.joinGame()
	w.logf("%d respawned [system]", w.ship.ID)
	w.recorder.Record(EvtRespawn, w.ship.ID, w.ship.Energy)
	return true
}

// Fire spawns a bullet from the local ship and announces it
func (w *World) Fire() *Bullet {
	if w.ship == nil || w.gameOver {
		return nil
	}
	b := NewBullet(w.ship)
	w.bullets = append(w.bullets, b)
	w.sender.Send(FormatBullet(b))
	return b
}

func (w *World) endGame(reason string) {
	w.gameOver = true
	w.gameOverReason = reason
	w.logf("game over: %s", reason)
	w.recorder.Record(EvtGameOver, w.shipID(), w.ship.Spice)
}

// Tick advances the simulation by dt ms
func (w *World) Tick(dt float64, in InputSnapshot) {
	w.clock += dt
	if in.Reload {
		w.Reload()
		return
	}
	if in.Respawn {
		w.Respawn()
	}
	if in.Fire {
		w.Fire()
	}

	if !w.gameOver && w.ship != nil {
		w.ship.Steer(dt, in, w.tuning)
		w.sender.Send(FormatPos(w.ship))
	}

	w.rocks.Each(func(a *Asteroid) {
		if !a.Active {
			return
		}
		a.Update(dt, w.tuning)
		w.collideRock(a)
	})

	for _, b := range w.bullets {
		b.Update(dt, w.tuning)
	}
	w.collideBullets()

	w.pelletAngle = WrapAngle(w.pelletAngle + dt*w.tuning.PelletAngleSpeed)
	for _, p := range w.pellets {
		if p.Active {
			w.collidePellet(p)
		}
	}

	if w.ship != nil {
		w.ship.UpdateShield(dt)
	}
	for _, s := range w.ships {
		s.UpdateShield(dt)
	}
	w.shake.Update(dt, w.tuning.ShakeDecay)

	w.collectGarbage()
}

// collectGarbage compacts the entity lists at most once per interval and
// refreshes the asteroid snapshot in server mode
func (w *World) collectGarbage() {
	if w.clock-w.lastGarbage < w.tuning.GarbageInterval {
		return
	}
	w.lastGarbage = w.clock
	w.bullets = compact(w.bullets, func(b *Bullet) bool { return b.Active })
	w.pellets = compact(w.pellets, func(p *Pellet) bool { return p.Active })
	w.rocks.Compact()
	if w.mode == ModeServer {
		w.sender.Send(MsgRock)
	}
}

func compact[T any](items []*T, keep func(*T) bool) []*T {
	out := items[:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	for i := len(out); i < len(items); i++ {
		items[i] = nil
	}
	return out
}

func (w *World) logf(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	log.Printf("captain's log: %s", text)
	w.logs = append(w.logs, LogEntry{Text: text, At: w.clock})
	if len(w.logs) > maxLogEntries {
		w.logs = w.logs[len(w.logs)-maxLogEntries:]
	}
}

func (w *World) shipID() int {
	if w.ship == nil {
		return 0
	}
	return w.ship.ID
}

// Ship returns the local ship, nil before join
func (w *World) Ship() *Ship { return w.ship }

// GameOver reports whether the local ship is out, and why
func (w *World) GameOver() (bool, string) { return w.gameOver, w.gameOverReason }

// Rocks exposes the asteroid field
func (w *World) Rocks() *AsteroidField { return w.rocks }

// Bullets returns the live bullet list
func (w *World) Bullets() []*Bullet { return w.bullets }

// Pellets returns the live pellet list
func (w *World) Pellets() []*Pellet { return w.pellets }

// Stars returns the background
func (w *World) Stars() []Star { return w.stars }

// Generation counts how many times the world was started
func (w *World) Generation() uint64 { return w.generation }

// Logs returns the captain's log, oldest first
func (w *World) Logs() []LogEntry { return w.logs }
