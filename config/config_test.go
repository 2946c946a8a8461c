package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/vmath"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := `
[log]
level = "debug"

[sim]
thrust = 40
spawn = [0, 50, 0]

[octree]
leaf_capacity = 8
pick_policy = "first"

[input]
hold_window = "400ms"

[recorder]
driver = "sqlite"
path = ":memory:"
`
	path := filepath.Join(dir, "vi-lander.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 40.0, c.Sim.Thrust)
	assert.Equal(t, vmath.Vec3F{Y: 50}, c.Sim.Spawn.V())
	assert.Equal(t, 8, c.Octree.LeafCapacity)
	assert.Equal(t, "first", c.Octree.PickPolicy)
	assert.Equal(t, 400*time.Millisecond, c.Input.HoldWindow)
	assert.Equal(t, "sqlite", c.Recorder.Driver)

	// Untouched keys keep defaults
	assert.Equal(t, parameter.ShipDamping, c.Sim.Damping)
	assert.Equal(t, parameter.ShipGravity, c.Sim.Gravity.V())
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, parameter.TickRate, c.Sim.TickRate)
	assert.Equal(t, parameter.ShipThrust, c.Sim.Thrust)
	assert.Equal(t, parameter.ShipFuel, c.Sim.Fuel)
	assert.Equal(t, parameter.SpawnPosition, c.Sim.Spawn.V())
	assert.Equal(t, parameter.LandingZoneMin, c.Sim.ZoneMin.V())
	assert.InDelta(t, 111.0, c.Sim.Stiffness, 1e-9)
	assert.Equal(t, parameter.OctreeLeafCapacity, c.Octree.LeafCapacity)
	assert.Equal(t, "closest", c.Octree.PickPolicy)
	assert.Equal(t, parameter.KeyHoldWindow, c.Input.HoldWindow)
	assert.Equal(t, "", c.Recorder.Driver)
	assert.False(t, c.Influx.Enabled)
	assert.InDelta(t, parameter.TickDt, c.Sim.TickDt(), 1e-15)
	assert.InDelta(t, parameter.FuelBurnPerSecond/parameter.TickRate, c.Sim.FuelPerTick(), 1e-15)

	assert.Equal(t, Default(), c)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VILANDER_SIM_THRUST", "12.5")
	t.Setenv("VILANDER_LOG_LEVEL", "warn")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12.5, c.Sim.Thrust)
	assert.Equal(t, "warn", c.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[octree]\nleaf_capacity = 0\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick rate", func(c *Config) { c.Sim.TickRate = 0 }},
		{"damping above one", func(c *Config) { c.Sim.Damping = 1.5 }},
		{"zero damping", func(c *Config) { c.Sim.Damping = 0 }},
		{"thresholds reversed", func(c *Config) { c.Sim.LandingMax = 900 }},
		{"debug levels out of range", func(c *Config) { c.Octree.DebugLevels = 11 }},
		{"unknown pick policy", func(c *Config) { c.Octree.PickPolicy = "random" }},
		{"unknown driver", func(c *Config) { c.Recorder.Driver = "mysql" }},
		{"postgres without dsn", func(c *Config) { c.Recorder.Driver = "postgres" }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}
