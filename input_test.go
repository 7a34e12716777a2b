package main

import "testing"

func TestKeyStateMovementIsLevelTriggered(t *testing.T) {
	k := NewKeyState()
	k.Set(KeyForward, true)
	k.Set(KeyLeft, true)

	for i := 0; i < 3; i++ {
		in := k.Poll()
		if !in.Forward || !in.Left || in.Right || in.Backward {
			t.Fatalf("poll %d: %+v", i, in)
		}
	}

	k.Set(KeyForward, false)
	if k.Poll().Forward {
		t.Error("released key should read up")
	}
}

func TestKeyStateFireIsEdgeTriggered(t *testing.T) {
	k := NewKeyState()
	k.Set(KeyFire, true)

	if !k.Poll().Fire {
		t.Fatal("first poll after press should fire")
	}
	if k.Poll().Fire {
		t.Error("holding fire should not repeat")
	}

	// Auto-repeat downs without an up do not count as new presses
	k.Set(KeyFire, true)
	if k.Poll().Fire {
		t.Error("repeat down should not fire")
	}

	k.Set(KeyFire, false)
	k.Set(KeyFire, true)
	if !k.Poll().Fire {
		t.Error("a new press should fire")
	}
}

func TestKeyStateQuickTapIsNotLost(t *testing.T) {
	k := NewKeyState()
	k.Set(KeyRespawn, true)
	k.Set(KeyRespawn, false)

	in := k.Poll()
	if !in.Respawn {
		t.Error("press and release between polls should still register")
	}
}

func TestKeyStateUnknownKey(t *testing.T) {
	k := NewKeyState()
	if k.Set("jump", true) {
		t.Error("unknown key should be rejected")
	}
}

func TestKeyStateRelease(t *testing.T) {
	k := NewKeyState()
	k.Set(KeyLeft, true)
	k.Set(KeyBackward, true)
	k.Release()

	in := k.Poll()
	if in.Left || in.Backward {
		t.Errorf("keys still down after release: %+v", in)
	}
}
