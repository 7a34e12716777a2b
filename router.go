package main

import (
	"errors"
	"log"
	"strings"
)

// EffectKind describes what applying one inbound record did
type EffectKind int

const (
	EffectJoined EffectKind = iota
	EffectJoinIgnored
	EffectRockInserted
	EffectRockMoved
	EffectRockIgnored
	EffectPlayerArrived
	EffectBulletAdded
	EffectUnknown
	EffectMalformed
)

func (k EffectKind) String() string {
	switch k {
	case EffectJoined:
		return "joined"
	case EffectJoinIgnored:
		return "join-ignored"
	case EffectRockInserted:
		return "rock-inserted"
	case EffectRockMoved:
		return "rock-moved"
	case EffectRockIgnored:
		return "rock-ignored"
	case EffectPlayerArrived:
		return "player-arrived"
	case EffectBulletAdded:
		return "bullet-added"
	case EffectUnknown:
		return "unknown"
	}
	return "malformed"
}

// Effect is the outcome of one record
type Effect struct {
	Kind EffectKind
	Tag  string
	ID   int
	Err  error
}

// Router decodes datagrams and applies them to the world
type Router struct {
	world *World
}

// NewRouter creates a router bound to a world
func NewRouter(w *World) *Router {
	return &Router{world: w}
}

// Route applies every record in the datagram. A bad record is logged and
// skipped; it never stops the rest of the batch.
func (r *Router) Route(datagram string) []Effect {
	records := SplitBatch(datagram)
	effects := make([]Effect, 0, len(records))
	for _, fields := range records {
		effects = append(effects, r.apply(fields))
	}
	return effects
}

func (r *Router) apply(fields []string) Effect {
	w := r.world
	tag := strings.TrimSpace(fields[0])
	msg, err := ParseRecord(fields)
	if err != nil {
		raw := strings.Join(fields, fieldSep)
		if errors.Is(err, ErrUnknownTag) {
			w.logf("unknown message %s", raw)
			return Effect{Kind: EffectUnknown, Tag: tag, Err: err}
		}
		log.Printf("router: skipping record %q: %v", raw, err)
		w.logf("bad message %s", raw)
		return Effect{Kind: EffectMalformed, Tag: tag, Err: err}
	}

	switch m := msg.(type) {
	case JoinOKMsg:
		if !w.Join(m) {
			return Effect{Kind: EffectJoinIgnored, Tag: tag, ID: m.ID}
		}
		return Effect{Kind: EffectJoined, Tag: tag, ID: m.ID}
	case RockOKMsg:
		a, inserted := w.rocks.Upsert(m.ID, m.X, m.Y, func() *Asteroid {
			return NewAsteroidFromWire(w.rng, m)
		})
		if a == nil {
			return Effect{Kind: EffectRockIgnored, Tag: tag, ID: m.ID}
		}
		if inserted {
			return Effect{Kind: EffectRockInserted, Tag: tag, ID: m.ID}
		}
		return Effect{Kind: EffectRockMoved, Tag: tag, ID: m.ID}
	case NewPlayerMsg:
		w.logf("%d entered the arena [system]", m.ID)
		return Effect{Kind: EffectPlayerArrived, Tag: tag, ID: m.ID}
	case BulletMsg:
		w.bullets = append(w.bullets, NewBulletFromWire(m))
		return Effect{Kind: EffectBulletAdded, Tag: tag, ID: m.ID}
	}
	return Effect{Kind: EffectUnknown, Tag: tag}
}
