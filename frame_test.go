package main

import (
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestFrameCullsDistantEntities(t *testing.T) {
	w, _ := joinedWorld(1000, 1000)
	addRock(w, 1, 1100, 1000, 60, 30)
	addRock(w, 2, 2000, 2000, 60, 30)
	w.bullets = append(w.bullets, &Bullet{X: 1000, Y: 1200, Active: true}, &Bullet{X: 100, Y: 100, Active: true})
	w.pellets = append(w.pellets, &Pellet{X: 1001, Y: 1001, Fuel: true, Active: true})

	f := w.Frame(1)

	if len(f.Rocks) != 1 || f.Rocks[0].ID != 1 {
		t.Errorf("rocks = %+v, want only rock 1", f.Rocks)
	}
	if len(f.Bullets) != 1 {
		t.Errorf("expected 1 visible bullet, got %d", len(f.Bullets))
	}
	if len(f.Pellets) != 1 || !f.Pellets[0].Fuel {
		t.Errorf("pellets = %+v", f.Pellets)
	}
	if len(f.Ships) != 1 || !f.Ships[0].IsLocal || f.Ships[0].ID != 7 {
		t.Errorf("ships = %+v", f.Ships)
	}
}

func TestFrameHUD(t *testing.T) {
	w, _ := joinedWorld(1000, 1000)
	w.ship.Spice = 30
	w.logf("hello")
	w.clock = 1000

	hud := w.Frame(5).HUD
	if hud.Title != gameTitle || hud.Spice != 30 || hud.Energy != 5 {
		t.Errorf("unexpected hud %+v", hud)
	}
	if hud.RemainingMs != w.tuning.GameTime-1000 {
		t.Errorf("remaining = %f", hud.RemainingMs)
	}
	if len(hud.Log) == 0 || hud.Log[len(hud.Log)-1] != "hello" {
		t.Errorf("log = %v", hud.Log)
	}

	w.clock = w.tuning.GameTime + 5000
	if rem := w.Frame(6).HUD.RemainingMs; rem != 0 {
		t.Errorf("countdown should stop at zero, got %f", rem)
	}
}

func TestFrameHidesShipOnGameOver(t *testing.T) {
	w, _ := joinedWorld(1000, 1000)
	w.endGame(ReasonAsteroid)

	f := w.Frame(1)
	if len(f.Ships) != 0 {
		t.Error("local ship should not be drawn during game over")
	}
	if !f.HUD.GameOver || f.HUD.Reason != ReasonAsteroid {
		t.Errorf("hud = %+v", f.HUD)
	}
}

func TestFrameShake(t *testing.T) {
	w, _ := joinedWorld(1000, 1000)
	if w.Frame(1).Shake != 0 {
		t.Error("no shake when idle")
	}
	w.shake.Enable()
	w.shake.Update(250, w.tuning.ShakeDecay)
	if s := w.Frame(2).Shake; s != 0.5 {
		t.Errorf("shake = %f, want 0.5", s)
	}
}

func TestFrameEncode(t *testing.T) {
	w, _ := joinedWorld(1000, 1000)
	addRock(w, 1, 1100, 1000, 60, 30).Health = 15

	data, err := w.Frame(42).Encode()
	if err != nil {
		t.Fatal(err)
	}
	var got Frame
	if err := msgpack.Unmarshal(data, &got); err != nil {
		t.Fatalf("msgpack unmarshal: %v", err)
	}
	if got.Tick != 42 || len(got.Rocks) != 1 || got.Rocks[0].Health != 0.5 {
		t.Errorf("decoded frame = %+v", got)
	}
	if len(got.Rocks[0].Vertices) == 0 {
		t.Error("outline should survive encoding")
	}
}
