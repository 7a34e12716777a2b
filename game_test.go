package main

import (
	"context"
	"math/rand"
	"testing"
	"time"
)

type fakePublisher struct {
	frames   []*Frame
	welcomes []WelcomeMsg
}

func (p *fakePublisher) PublishFrame(f *Frame)   { p.frames = append(p.frames, f) }
func (p *fakePublisher) SetWelcome(w WelcomeMsg) { p.welcomes = append(p.welcomes, w) }

func TestGameStepAppliesInboxBeforeTick(t *testing.T) {
	w, s := newTestWorld(ModeServer)
	inbox := make(chan string, 4)
	keys := NewKeyState()
	pub := &fakePublisher{}
	g := NewGame(w, inbox, keys, pub)
	w.Start()

	inbox <- "join-ok,7,1000,2000,0,0,5,1"
	inbox <- "rock-ok,3,500000,500000,0,5,60,30"
	keys.Set(KeyForward, true)
	g.Step(16)

	if w.Ship() == nil || w.Rocks().Len() != 1 {
		t.Fatal("queued datagrams should be applied in the same tick")
	}
	// Joined before the tick, so the ship already moved and reported
	if s.count(MsgPos) != 1 {
		t.Errorf("expected one pos after join, sent %v", s.sent)
	}
	if len(pub.frames) != 1 || pub.frames[0].Tick != 1 || len(pub.frames[0].Ships) != 1 {
		t.Errorf("frames = %+v", pub.frames)
	}
	if len(inbox) != 0 {
		t.Error("inbox should be drained")
	}
}

func TestGameAnnouncesWelcomeOnStartAndReload(t *testing.T) {
	w, _ := newTestWorld(ModeLocal)
	keys := NewKeyState()
	pub := &fakePublisher{}
	g := NewGame(w, nil, keys, pub)
	w.Start()

	g.Step(16)
	g.Step(16)
	if len(pub.welcomes) != 1 {
		t.Fatalf("expected one welcome, got %d", len(pub.welcomes))
	}
	wel := pub.welcomes[0]
	if wel.MapSize != w.tuning.MapSize || len(wel.Stars) != w.tuning.StarCount || wel.FrameRate != w.tuning.FrameRate {
		t.Errorf("unexpected welcome %+v", wel)
	}

	keys.Set(KeyReload, true)
	g.Step(16)
	if len(pub.welcomes) != 2 {
		t.Errorf("reload should refresh the welcome, got %d", len(pub.welcomes))
	}
}

func TestGameWithoutPublisher(t *testing.T) {
	w, _ := newTestWorld(ModeLocal)
	g := NewGame(w, nil, NewKeyState(), nil)
	w.Start()
	g.Step(16)
	if g.tick != 1 {
		t.Errorf("tick = %d", g.tick)
	}
}

func TestGameRunStopsOnCancel(t *testing.T) {
	tn := testTuning()
	w := NewWorld(tn, ModeLocal, nil, rand.New(rand.NewSource(1)))
	pub := &fakePublisher{}
	g := NewGame(w, nil, NewKeyState(), pub)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := g.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(pub.frames) == 0 {
		t.Error("expected frames while running")
	}
	if w.Ship() == nil {
		t.Error("Run should start the world")
	}
}

func TestGameAnnouncesOnceWithoutStars(t *testing.T) {
	tn := testTuning()
	tn.StarCount = 0
	w := NewWorld(tn, ModeLocal, nil, rand.New(rand.NewSource(1)))
	keys := NewKeyState()
	pub := &fakePublisher{}
	g := NewGame(w, nil, keys, pub)
	w.Start()

	for i := 0; i < 10; i++ {
		g.Step(16)
	}
	if len(pub.welcomes) != 1 {
		t.Errorf("expected one welcome for an empty sky, got %d", len(pub.welcomes))
	}

	keys.Set(KeyReload, true)
	g.Step(16)
	if len(pub.welcomes) != 2 {
		t.Errorf("reload should announce again, got %d", len(pub.welcomes))
	}
}
