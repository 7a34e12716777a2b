package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefaultTuningIsValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoadTuningOverlaysDefaults(t *testing.T) {
	p := writeFile(t, "tuning.yaml", "map_size: 2000\nframe_rate: 60\n")
	tn, err := LoadTuning(p)
	if err != nil {
		t.Fatal(err)
	}
	if tn.MapSize != 2000 || tn.FrameRate != 60 {
		t.Errorf("overrides not applied: %+v", tn)
	}
	if tn.MoveSpeed != DefaultTuning().MoveSpeed || tn.MaxEnergy != 5 {
		t.Errorf("defaults lost: %+v", tn)
	}
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	for _, body := range []string{"frame_rate: 0\n", "map_size: -1\n", "max_energy: 0\n", "map_size: [\n"} {
		if _, err := LoadTuning(writeFile(t, "tuning.yaml", body)); err == nil {
			t.Errorf("LoadTuning(%q) should fail", body)
		}
	}
}

func TestLoadTuningEmptyPath(t *testing.T) {
	tn, err := LoadTuning("")
	if err != nil || tn != DefaultTuning() {
		t.Errorf("LoadTuning(\"\") = %+v, %v", tn, err)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("local"); err != nil || m != ModeLocal {
		t.Errorf("ParseMode(local) = %v, %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeServer {
		t.Errorf("ParseMode(\"\") = %v, %v", m, err)
	}
	if _, err := ParseMode("peer"); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestLoadConfigFlags(t *testing.T) {
	cfg, err := LoadConfig([]string{"-host", "10.0.0.2", "-port", "9999", "-mode", "local", "-db", "", "-bridge", ""})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Host != "10.0.0.2" || cfg.Port != 9999 || cfg.Mode != ModeLocal {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.DBPath != "" || cfg.BridgeAddr != "" {
		t.Error("empty flags should disable the db and bridge")
	}
}

func TestLoadConfigEnvDefaults(t *testing.T) {
	t.Setenv("GALACTICA_HOST", "192.168.1.5")
	t.Setenv("GALACTICA_PORT", "7000")
	t.Setenv("GALACTICA_BRIDGE_SECRET", "hunter2")
	t.Setenv("GALACTICA_TUNING", writeFile(t, "t.yaml", "star_count: 3\n"))

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Host != "192.168.1.5" || cfg.Port != 7000 || cfg.BridgeSecret != "hunter2" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Tuning.StarCount != 3 {
		t.Errorf("tuning file not loaded: star_count = %d", cfg.Tuning.StarCount)
	}

	// Flags win over env
	cfg, err = LoadConfig([]string{"-port", "7001"})
	if err != nil || cfg.Port != 7001 {
		t.Errorf("flag override failed: %v, %v", cfg.Port, err)
	}
}

func TestLoadConfigBadMode(t *testing.T) {
	if _, err := LoadConfig([]string{"-mode", "peer"}); err == nil {
		t.Error("bad mode should fail")
	}
}
