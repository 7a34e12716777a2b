package main

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)
	if v := db.GetSetting("missing"); v != "" {
		t.Errorf("missing setting = %q", v)
	}
	if err := db.SetSetting("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetSetting("k", "v2"); err != nil {
		t.Fatal(err)
	}
	if v := db.GetSetting("k"); v != "v2" {
		t.Errorf("setting = %q, want v2", v)
	}
}

func TestRunLifecycle(t *testing.T) {
	db := openTestDB(t)
	if err := db.StartRun("run-1", ModeLocal, ""); err != nil {
		t.Fatal(err)
	}

	r, err := db.GetRun("run-1")
	if err != nil || r == nil {
		t.Fatalf("GetRun: %v, %v", r, err)
	}
	if r.Mode != "local" || r.EndedAt.Valid {
		t.Errorf("unexpected run %+v", r)
	}

	if err := db.EndRun("run-1"); err != nil {
		t.Fatal(err)
	}
	r, _ = db.GetRun("run-1")
	if !r.EndedAt.Valid {
		t.Error("run should be ended")
	}

	missing, err := db.GetRun("nope")
	if err != nil || missing != nil {
		t.Errorf("GetRun(nope) = %v, %v", missing, err)
	}
}

func TestSummarizeEmptyRun(t *testing.T) {
	db := openTestDB(t)
	db.StartRun("run-1", ModeServer, "127.0.0.1:8080")
	s, err := db.Summarize("run-1")
	if err != nil {
		t.Fatal(err)
	}
	if s != (RunSummary{}) {
		t.Errorf("summary = %+v, want zero", s)
	}
}
