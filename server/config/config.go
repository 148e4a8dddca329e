// Package config assembles the dedicated server's configuration from a .env
// file, NETPLAYER_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/automoto/netplayer/shared/motion"
	"github.com/automoto/netplayer/shared/netconfig"
)

// ErrInvalid is wrapped by every configuration validation failure.
var ErrInvalid = errors.New("invalid server config")

// Config is the complete server configuration.
type Config struct {
	Port        uint
	HTTPAddr    string // empty disables the status API
	TickRate    int    // snapshots per second
	PhysicsRate int    // fixed simulation steps per second
	Name        string
	Version     string // required client version, empty accepts any
	MaxPlayers  int

	LevelsDir string // directory holding levels/*.tmx; empty uses a flat level
	Level     string // level stem, empty picks the first

	MaxHealth    uint32
	Gravity      float64 // units/s^2, scaled per player by GravityScale
	MaxFallSpeed float64
	Movement     netconfig.MovementConfig
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Port:         7373,
		HTTPAddr:     ":7374",
		TickRate:     20,
		PhysicsRate:  60,
		Name:         "netplayer",
		MaxPlayers:   8,
		MaxHealth:    netconfig.DefaultMaxHealth,
		Gravity:      20,
		MaxFallSpeed: 25,
		Movement:     netconfig.DefaultMovement(netconfig.ModelDirectVelocity),
	}
}

// Load reads an optional .env file, then parses args (without the program
// name) on top of the environment.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse(args, os.LookupEnv)
}

// Parse builds a Config from args with lookup supplying environment defaults.
func Parse(args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	env := envReader{lookup: lookup}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	port := fs.Uint("port", env.asUint("NETPLAYER_PORT", cfg.Port), "Server port")
	httpAddr := fs.String("http", env.asString("NETPLAYER_HTTP", cfg.HTTPAddr), "Status API listen address (empty disables)")
	tickRate := fs.Int("tickrate", env.asInt("NETPLAYER_TICKRATE", cfg.TickRate), "Snapshot rate (updates per second)")
	physicsRate := fs.Int("physicsrate", env.asInt("NETPLAYER_PHYSICSRATE", cfg.PhysicsRate), "Fixed physics steps per second")
	name := fs.String("name", env.asString("NETPLAYER_NAME", cfg.Name), "Server display name")
	version := fs.String("version", env.asString("NETPLAYER_VERSION", cfg.Version), "Required client version (empty = accept any)")
	maxPlayers := fs.Int("maxplayers", env.asInt("NETPLAYER_MAXPLAYERS", cfg.MaxPlayers), "Maximum connected players")
	levelsDir := fs.String("levels", env.asString("NETPLAYER_LEVELS", cfg.LevelsDir), "Assets directory containing levels/*.tmx")
	level := fs.String("level", env.asString("NETPLAYER_LEVEL", cfg.Level), "Level name to load")
	maxHealth := fs.Uint("maxhealth", env.asUint("NETPLAYER_MAXHEALTH", uint(cfg.MaxHealth)), "Player max health")
	gravity := fs.Float64("gravity", env.asFloat("NETPLAYER_GRAVITY", cfg.Gravity), "Gravity in units/s^2")
	model := fs.String("model", env.asString("NETPLAYER_MODEL", cfg.Movement.Model.String()), "Movement model: direct, force or kinematic")
	tunables := fs.String("tunables", env.asString("NETPLAYER_TUNABLES", ""), "JSON movement tunables file")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if err := env.err; err != nil {
		return Config{}, err
	}

	modelID, ok := netconfig.ParseModelID(*model)
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown movement model %q", ErrInvalid, *model)
	}

	cfg.Port = *port
	cfg.HTTPAddr = *httpAddr
	cfg.TickRate = *tickRate
	cfg.PhysicsRate = *physicsRate
	cfg.Name = *name
	cfg.Version = *version
	cfg.MaxPlayers = *maxPlayers
	cfg.LevelsDir = *levelsDir
	cfg.Level = *level
	if *maxHealth > math.MaxUint32 {
		return Config{}, fmt.Errorf("%w: max health %d overflows uint32", ErrInvalid, *maxHealth)
	}
	cfg.MaxHealth = uint32(*maxHealth)
	cfg.Gravity = *gravity
	cfg.Movement = netconfig.DefaultMovement(modelID)

	if *tunables != "" {
		mc, err := LoadTunables(*tunables, cfg.Movement)
		if err != nil {
			return Config{}, err
		}
		cfg.Movement = mc
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadTunables reads a JSON movement file on top of base. Fields missing from
// the file keep base's values.
func LoadTunables(path string, base netconfig.MovementConfig) (netconfig.MovementConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return netconfig.MovementConfig{}, fmt.Errorf("read tunables: %w", err)
	}
	mc := base
	if err := json.Unmarshal(raw, &mc); err != nil {
		return netconfig.MovementConfig{}, fmt.Errorf("decode tunables %s: %w", path, err)
	}
	return mc, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.TickRate < 1 {
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalid, c.TickRate)
	}
	if c.PhysicsRate < c.TickRate {
		return fmt.Errorf("%w: physics rate %d below tick rate %d", ErrInvalid, c.PhysicsRate, c.TickRate)
	}
	if c.MaxPlayers < 1 {
		return fmt.Errorf("%w: max players must be positive, got %d", ErrInvalid, c.MaxPlayers)
	}
	if c.MaxHealth == 0 {
		return fmt.Errorf("%w: max health must be positive", ErrInvalid)
	}
	if c.Gravity < 0 {
		return fmt.Errorf("%w: gravity %v is negative", ErrInvalid, c.Gravity)
	}
	if err := motion.Validate(c.Movement); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// FixedStep returns the simulation step duration.
func (c Config) FixedStep() time.Duration {
	return time.Second / time.Duration(c.PhysicsRate)
}

// envReader turns environment values into flag defaults, keeping the first
// parse failure.
type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *envReader) asString(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e *envReader) asInt(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return n
}

func (e *envReader) asUint(key string, def uint) uint {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return uint(n)
}

func (e *envReader) asFloat(key string, def float64) float64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return f
}

func (e *envReader) fail(key string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("%w: %s: %w", ErrInvalid, key, err)
	}
}
