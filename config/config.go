package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/vmath"
)

// ErrInvalid reports a configuration value outside its allowed range
var ErrInvalid = errors.New("config: invalid value")

const (
	fileName  = "vi-lander"
	envPrefix = "VILANDER"
)

// Vec3 is a vector in config files, written as [x, y, z]
type Vec3 [3]float64

func (v Vec3) V() vmath.Vec3F {
	return vmath.Vec3F{X: v[0], Y: v[1], Z: v[2]}
}

func vec(v vmath.Vec3F) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// LogConfig holds logger settings
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Dir     string `mapstructure:"dir"`
	Console bool   `mapstructure:"console"`
	Graylog string `mapstructure:"graylog"` // host:port, empty disables
}

// SimConfig holds the flight model
type SimConfig struct {
	TickRate          int     `mapstructure:"tick_rate"`
	Gravity           Vec3    `mapstructure:"gravity"`
	Thrust            float64 `mapstructure:"thrust"`
	Damping           float64 `mapstructure:"damping"`
	Fuel              float64 `mapstructure:"fuel"`
	FuelBurnPerSecond float64 `mapstructure:"fuel_burn"`
	Spawn             Vec3    `mapstructure:"spawn"`
	Stiffness         float64 `mapstructure:"stiffness"`
	LandingMax        float64 `mapstructure:"landing_max"`
	ExplosionMin      float64 `mapstructure:"explosion_min"`
	LanderMin         Vec3    `mapstructure:"lander_min"`
	LanderMax         Vec3    `mapstructure:"lander_max"`
	ZoneMin           Vec3    `mapstructure:"zone_min"`
	ZoneMax           Vec3    `mapstructure:"zone_max"`
}

// TickDt returns the fixed step in seconds
func (s SimConfig) TickDt() float64 {
	return 1 / float64(s.TickRate)
}

// FuelPerTick returns fuel burned by one tick of thrust
func (s SimConfig) FuelPerTick() float64 {
	return s.FuelBurnPerSecond / float64(s.TickRate)
}

// OctreeConfig holds spatial index settings
type OctreeConfig struct {
	LeafCapacity int    `mapstructure:"leaf_capacity"`
	MaxDepth     int    `mapstructure:"max_depth"`
	PickPolicy   string `mapstructure:"pick_policy"`
	DebugLevels  int    `mapstructure:"debug_levels"`
}

// TerrainConfig holds heightfield generation settings
type TerrainConfig struct {
	GridSize  int     `mapstructure:"grid_size"`
	Spacing   float64 `mapstructure:"spacing"`
	Amplitude float64 `mapstructure:"amplitude"`
	Seed      uint64  `mapstructure:"seed"`
	Craters   int     `mapstructure:"craters"`
	PadHeight float64 `mapstructure:"pad_height"`
}

type InputConfig struct {
	HoldWindow time.Duration `mapstructure:"hold_window"`
}

type CameraConfig struct {
	Mode string `mapstructure:"mode"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// RecorderConfig selects the flight recorder backend, empty driver disables it
type RecorderConfig struct {
	Driver         string `mapstructure:"driver"` // "", "sqlite", "postgres"
	Path           string `mapstructure:"path"`   // sqlite file, ":memory:" for in-memory
	DSN            string `mapstructure:"dsn"`    // postgres
	SampleInterval int    `mapstructure:"sample_interval"`
	BatchSize      int    `mapstructure:"batch_size"`
}

type InfluxConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Token   string `mapstructure:"token"`
	Org     string `mapstructure:"org"`
	Bucket  string `mapstructure:"bucket"`
}

type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config is the complete runtime configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Sim       SimConfig       `mapstructure:"sim"`
	Octree    OctreeConfig    `mapstructure:"octree"`
	Terrain   TerrainConfig   `mapstructure:"terrain"`
	Input     InputConfig     `mapstructure:"input"`
	Camera    CameraConfig    `mapstructure:"camera"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Recorder  RecorderConfig  `mapstructure:"recorder"`
	Influx    InfluxConfig    `mapstructure:"influx"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.console", false)
	v.SetDefault("log.graylog", "")

	v.SetDefault("sim.tick_rate", parameter.TickRate)
	v.SetDefault("sim.gravity", vec(parameter.ShipGravity))
	v.SetDefault("sim.thrust", parameter.ShipThrust)
	v.SetDefault("sim.damping", parameter.ShipDamping)
	v.SetDefault("sim.fuel", parameter.ShipFuel)
	v.SetDefault("sim.fuel_burn", parameter.FuelBurnPerSecond)
	v.SetDefault("sim.spawn", vec(parameter.SpawnPosition))
	v.SetDefault("sim.stiffness", parameter.ImpulseStiffness)
	v.SetDefault("sim.landing_max", parameter.LandingImpulseMax)
	v.SetDefault("sim.explosion_min", parameter.ExplosionImpulseMin)
	v.SetDefault("sim.lander_min", vec(parameter.LanderExtentMin))
	v.SetDefault("sim.lander_max", vec(parameter.LanderExtentMax))
	v.SetDefault("sim.zone_min", vec(parameter.LandingZoneMin))
	v.SetDefault("sim.zone_max", vec(parameter.LandingZoneMax))

	v.SetDefault("octree.leaf_capacity", parameter.OctreeLeafCapacity)
	v.SetDefault("octree.max_depth", parameter.OctreeMaxDepth)
	v.SetDefault("octree.pick_policy", parameter.OctreePickPolicy)
	v.SetDefault("octree.debug_levels", parameter.DebugLevelsDefault)

	v.SetDefault("terrain.grid_size", parameter.TerrainGridSize)
	v.SetDefault("terrain.spacing", parameter.TerrainSpacing)
	v.SetDefault("terrain.amplitude", parameter.TerrainAmplitude)
	v.SetDefault("terrain.seed", parameter.TerrainSeed)
	v.SetDefault("terrain.craters", parameter.TerrainCraters)
	v.SetDefault("terrain.pad_height", parameter.TerrainPadHeight)

	v.SetDefault("input.hold_window", parameter.KeyHoldWindow)
	v.SetDefault("camera.mode", "orbit")
	v.SetDefault("audio.enabled", true)

	v.SetDefault("recorder.driver", "")
	v.SetDefault("recorder.path", "flights.db")
	v.SetDefault("recorder.dsn", "")
	v.SetDefault("recorder.sample_interval", parameter.RecorderSampleInterval)
	v.SetDefault("recorder.batch_size", parameter.RecorderBatchSize)

	v.SetDefault("influx.enabled", false)
	v.SetDefault("influx.url", "http://localhost:8086")
	v.SetDefault("influx.token", "")
	v.SetDefault("influx.org", "vi-lander")
	v.SetDefault("influx.bucket", "telemetry")

	v.SetDefault("telemetry.enabled", true)
}

// Default returns the configuration with no file or environment applied
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads configuration from path, or from vi-lander.toml in the working directory
// and $HOME/.config/vi-lander when path is empty. A missing default file is not an error.
// VILANDER_* environment variables override file values (e.g. VILANDER_SIM_THRUST).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", fileName))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and cross-field ordering
func (c *Config) Validate() error {
	switch {
	case c.Sim.TickRate <= 0:
		return fmt.Errorf("%w: sim.tick_rate %d must be positive", ErrInvalid, c.Sim.TickRate)
	case c.Sim.Damping <= 0 || c.Sim.Damping > 1:
		return fmt.Errorf("%w: sim.damping %v must be in (0,1]", ErrInvalid, c.Sim.Damping)
	case c.Sim.Fuel < 0 || c.Sim.FuelBurnPerSecond < 0:
		return fmt.Errorf("%w: sim fuel values must not be negative", ErrInvalid)
	case c.Sim.LandingMax <= 0 || c.Sim.LandingMax > c.Sim.ExplosionMin:
		return fmt.Errorf("%w: sim.landing_max %v must be positive and not above sim.explosion_min %v",
			ErrInvalid, c.Sim.LandingMax, c.Sim.ExplosionMin)
	case c.Octree.LeafCapacity <= 0:
		return fmt.Errorf("%w: octree.leaf_capacity %d must be positive", ErrInvalid, c.Octree.LeafCapacity)
	case c.Octree.MaxDepth < 0:
		return fmt.Errorf("%w: octree.max_depth %d must not be negative", ErrInvalid, c.Octree.MaxDepth)
	case c.Octree.DebugLevels < parameter.DebugLevelsMin || c.Octree.DebugLevels > parameter.DebugLevelsMax:
		return fmt.Errorf("%w: octree.debug_levels %d must be in [%d,%d]",
			ErrInvalid, c.Octree.DebugLevels, parameter.DebugLevelsMin, parameter.DebugLevelsMax)
	case c.Octree.PickPolicy != "closest" && c.Octree.PickPolicy != "first":
		return fmt.Errorf("%w: octree.pick_policy %q must be closest or first", ErrInvalid, c.Octree.PickPolicy)
	case c.Input.HoldWindow <= 0:
		return fmt.Errorf("%w: input.hold_window must be positive", ErrInvalid)
	}

	switch c.Recorder.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: recorder.driver %q must be sqlite, postgres or empty", ErrInvalid, c.Recorder.Driver)
	}
	if c.Recorder.Driver == "postgres" && c.Recorder.DSN == "" {
		return fmt.Errorf("%w: recorder.dsn is required for postgres", ErrInvalid)
	}
	if c.Recorder.Driver != "" && (c.Recorder.SampleInterval <= 0 || c.Recorder.BatchSize <= 0) {
		return fmt.Errorf("%w: recorder sample interval and batch size must be positive", ErrInvalid)
	}
	return nil
}
