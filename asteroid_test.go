package main

import (
	"math"
	"math/rand"
	"testing"
)

func TestAsteroidStraightLine(t *testing.T) {
	tn := DefaultTuning()
	a := &Asteroid{X: 500, Y: 500, DX: 0.6, DY: 0.8, Speed: 5, Active: true}

	a.Update(100, tn)

	// 100ms at speed 5 is half a world unit
	if math.Abs(a.X-500.3) > 1e-9 || math.Abs(a.Y-500.4) > 1e-9 {
		t.Errorf("asteroid at (%f,%f), want (500.3,500.4)", a.X, a.Y)
	}
}

func TestInactiveAsteroidDoesNotMove(t *testing.T) {
	a := &Asteroid{X: 500, Y: 500, DX: 1, Speed: 5}
	a.Update(100, DefaultTuning())
	if a.X != 500 {
		t.Error("inactive asteroid should not move")
	}
}

func TestAsteroidSpins(t *testing.T) {
	a := &Asteroid{AngleSpeed: 0.001, Active: true}
	a.Update(100, DefaultTuning())
	if math.Abs(a.Angle-0.1) > 1e-9 {
		t.Errorf("angle = %f, want 0.1", a.Angle)
	}
}

func TestAsteroidDamage(t *testing.T) {
	a := &Asteroid{Health: 25, MaxHealth: 25, Active: true}
	if a.Damage(10) || a.Damage(10) {
		t.Fatal("asteroid destroyed too early")
	}
	if !a.Damage(10) || a.Active {
		t.Error("asteroid should be destroyed below zero health")
	}
}

func TestRandomAsteroid(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tn := DefaultTuning()
	for i := 0; i < 100; i++ {
		a := RandomAsteroid(rng, i, tn)
		if a.ID != i || !a.Active {
			t.Fatalf("unexpected asteroid %+v", a)
		}
		if a.X < 0 || a.X > tn.MapSize || a.Y < 0 || a.Y > tn.MapSize {
			t.Fatalf("asteroid outside map: (%f,%f)", a.X, a.Y)
		}
		if a.Health != a.MaxHealth || a.Health != a.Size/2 {
			t.Fatalf("health %f, max %f, size %f", a.Health, a.MaxHealth, a.Size)
		}
		if math.Abs(math.Hypot(a.DX, a.DY)-1) > 1e-9 {
			t.Fatalf("direction not a unit vector: (%f,%f)", a.DX, a.DY)
		}
	}
}

func TestGenerateOutline(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		v := GenerateOutline(rng, 60)
		if len(v) < 2 || len(v) > int(TAU/outlineMinStep)+1 {
			t.Fatalf("outline has %d vertices", len(v))
		}
		if v[0].Y != 0 || v[0].X == 0 {
			t.Fatalf("outline should start on the x axis, got %+v", v[0])
		}
	}
}

func TestAsteroidFieldUpsert(t *testing.T) {
	f := NewAsteroidField()
	calls := 0
	create := func() *Asteroid {
		calls++
		return &Asteroid{ID: 9, X: 1, Y: 2, Size: 60, Active: true}
	}

	a, inserted := f.Upsert(9, 1, 2, create)
	if !inserted || a.ID != 9 {
		t.Fatal("first upsert should insert")
	}
	b, inserted := f.Upsert(9, 3, 4, create)
	if inserted || b != a || calls != 1 {
		t.Fatal("second upsert should update in place")
	}
	if a.X != 3 || a.Y != 4 || a.Size != 60 {
		t.Errorf("unexpected asteroid %+v", a)
	}
}

func TestAsteroidFieldCompactKeepsOrder(t *testing.T) {
	f := NewAsteroidField()
	for i := 0; i < 5; i++ {
		f.Insert(&Asteroid{ID: i, Active: i%2 == 0})
	}
	if removed := f.Compact(); removed != 2 {
		t.Errorf("removed %d, want 2", removed)
	}
	var ids []int
	f.Each(func(a *Asteroid) { ids = append(ids, a.ID) })
	if len(ids) != 3 || ids[0] != 0 || ids[1] != 2 || ids[2] != 4 {
		t.Errorf("ids after compact = %v", ids)
	}
	if _, ok := f.Get(1); ok {
		t.Error("compacted asteroid still reachable")
	}

	f.Insert(&Asteroid{ID: 1, Active: true})
	if f.Len() != 4 {
		t.Errorf("len = %d, want 4", f.Len())
	}
}

func TestAsteroidFieldInsertReplaces(t *testing.T) {
	f := NewAsteroidField()
	f.Insert(&Asteroid{ID: 1, Size: 10})
	f.Insert(&Asteroid{ID: 1, Size: 20})
	a, _ := f.Get(1)
	if f.Len() != 1 || a.Size != 20 {
		t.Errorf("len=%d size=%f", f.Len(), a.Size)
	}
}

func TestAsteroidFieldIgnoresCompactedIDs(t *testing.T) {
	f := NewAsteroidField()
	f.Insert(&Asteroid{ID: 4, Active: false})
	f.Compact()

	a, inserted := f.Upsert(4, 1, 1, func() *Asteroid {
		t.Fatal("create must not be called for a compacted id")
		return nil
	})
	if a != nil || inserted {
		t.Error("compacted id should be ignored")
	}
	if f.Len() != 0 || !f.Destroyed(4) {
		t.Errorf("len=%d destroyed=%v", f.Len(), f.Destroyed(4))
	}
}
