package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Shield decay durations in ms, per trigger
const (
	ShieldJoinDecay = 4000.0
	ShieldRockDecay = 2000.0
	ShieldShotDecay = 500.0
)

// Collision economy
const (
	BulletDamage     = 10.0
	RockHitPenalty   = 5
	ShotHitPenalty   = 1
	RockHitBuffer    = 2.0 // ship must be this far inside the rock radius
	FuelPelletEnergy = 5
	SpicePelletValue = 10
	FuelChance       = 5.0 / 1000.0
	maxLogEntries    = 50
)

// Limits on server-supplied asteroids
const (
	MaxRockSize    = 1000.0
	MaxRockHealth  = 100000.0
	maxPelletBurst = 64
)

// Tuning holds the simulation constants. Times are in ms, speeds in world units per ms.
type Tuning struct {
	MapSize          float64 `yaml:"map_size"`
	MapPad           float64 `yaml:"map_pad"`
	AngleSpeed       float64 `yaml:"angle_speed"`
	MoveSpeed        float64 `yaml:"move_speed"`
	BulletSpeed      float64 `yaml:"bullet_speed"`
	BulletDecay      float64 `yaml:"bullet_decay_ms"`
	MaxEnergy        int     `yaml:"max_energy"`
	PickupRadius     float64 `yaml:"pickup_radius"`
	StarCount        int     `yaml:"star_count"`
	PelletAngleSpeed float64 `yaml:"pellet_angle_speed"`
	GarbageInterval  float64 `yaml:"garbage_interval_ms"`
	GameTime         float64 `yaml:"game_time_ms"`
	FrameRate        int     `yaml:"frame_rate"`
	ShakeDecay       float64 `yaml:"shake_decay_ms"`
	RockSpeedScale   float64 `yaml:"rock_speed_scale"`
	LocalRockCount   int     `yaml:"local_rock_count"`
	ViewRadius       float64 `yaml:"view_radius"`
}

// DefaultTuning returns the stock game constants
func DefaultTuning() Tuning {
	return Tuning{
		MapSize:          3000,
		MapPad:           100,
		AngleSpeed:       0.005,
		MoveSpeed:        0.2,
		BulletSpeed:      0.3,
		BulletDecay:      1000,
		MaxEnergy:        5,
		PickupRadius:     8,
		StarCount:        1000,
		PelletAngleSpeed: 0.002,
		GarbageInterval:  1000,
		GameTime:         5 * 60 * 1000,
		FrameRate:        50,
		ShakeDecay:       500,
		RockSpeedScale:   1.0 / FixedScale,
		LocalRockCount:   100,
		ViewRadius:       400,
	}
}

// LoadTuning overlays a YAML file on the defaults
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, t.Validate()
}

// Validate rejects tunings the simulation cannot run with
func (t Tuning) Validate() error {
	switch {
	case t.MapSize <= 0:
		return fmt.Errorf("map_size must be positive")
	case t.MapPad < 0:
		return fmt.Errorf("map_pad must not be negative")
	case t.FrameRate <= 0:
		return fmt.Errorf("frame_rate must be positive")
	case t.MoveSpeed <= 0 || t.AngleSpeed <= 0 || t.BulletSpeed <= 0:
		return fmt.Errorf("speeds must be positive")
	case t.MaxEnergy <= 0:
		return fmt.Errorf("max_energy must be positive")
	case t.GarbageInterval <= 0:
		return fmt.Errorf("garbage_interval_ms must be positive")
	}
	return nil
}

// Mode selects who owns the asteroid field
type Mode int

const (
	ModeServer Mode = iota // asteroids come from rock-ok snapshots
	ModeLocal              // asteroids are spawned and owned locally
)

func (m Mode) String() string {
	if m == ModeLocal {
		return "local"
	}
	return "server"
}

// ParseMode accepts "server" or "local"
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "server":
		return ModeServer, nil
	case "local":
		return ModeLocal, nil
	}
	return ModeServer, fmt.Errorf("unknown mode %q", s)
}

// Config is the process configuration
type Config struct {
	Host         string
	Port         int
	Mode         Mode
	BridgeAddr   string
	BridgeSecret string
	DBPath       string
	JournalDir   string
	Tuning       Tuning
}

// LoadConfig reads .env (if present), then flags. Env values become flag defaults.
func LoadConfig(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf(".env: %w", err)
	}

	fs := flag.NewFlagSet("galactica", flag.ContinueOnError)
	host := fs.String("host", envOr("GALACTICA_HOST", "127.0.0.1"), "server host")
	port := fs.Int("port", envInt("GALACTICA_PORT", 8080), "server UDP port")
	mode := fs.String("mode", envOr("GALACTICA_MODE", "server"), "asteroid ownership: server or local")
	bridge := fs.String("bridge", envOr("GALACTICA_BRIDGE", ":8081"), "render bridge HTTP listen address (empty disables)")
	dbPath := fs.String("db", envOr("GALACTICA_DB", "galactica.db"), "flight recorder sqlite path (empty disables)")
	journal := fs.String("journal", envOr("GALACTICA_JOURNAL", ""), "datagram journal directory (empty disables)")
	tuningPath := fs.String("tuning", envOr("GALACTICA_TUNING", ""), "tuning YAML file")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	m, err := ParseMode(*mode)
	if err != nil {
		return Config{}, err
	}
	t, err := LoadTuning(*tuningPath)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Host:         *host,
		Port:         *port,
		Mode:         m,
		BridgeAddr:   *bridge,
		BridgeSecret: os.Getenv("GALACTICA_BRIDGE_SECRET"),
		DBPath:       *dbPath,
		JournalDir:   *journal,
		Tuning:       t,
	}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
