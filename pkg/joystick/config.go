package joystick

import (
	"flag"
	"math"
)

// Config defines the configurations for the teleoperation.
type Config struct {
	DeviceIndex int
	Verbose     bool
	// MaxSpeed in m/s at full deflection.
	MaxSpeed float64
	// MaxTurn in rad/s at full deflection.
	MaxTurn float64
	// KickSpeed in m/s.
	KickSpeed float64
}

var defaultConfig = Config{
	DeviceIndex: -1,
	MaxSpeed:    1.5,
	MaxTurn:     math.Pi,
	KickSpeed:   4,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.DeviceIndex, "joystick", defaultConfig.DeviceIndex, "Joystick device index, -1 for auto detection.")
	flag.BoolVar(&defaultConfig.Verbose, "joystick-verbose", defaultConfig.Verbose, "Print Joystick events.")
	flag.Float64Var(&defaultConfig.MaxSpeed, "joystick-speed", defaultConfig.MaxSpeed, "Speed (m/s) at full stick deflection.")
	flag.Float64Var(&defaultConfig.MaxTurn, "joystick-turn", defaultConfig.MaxTurn, "Turn rate (rad/s) at full stick deflection.")
	flag.Float64Var(&defaultConfig.KickSpeed, "joystick-kick", defaultConfig.KickSpeed, "Kick speed (m/s).")
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewTeleop creates a Teleop driving robot id through driver.
func (c *Config) NewTeleop(driver Driver, id uint32) *Teleop {
	t := NewTeleop(driver, id)
	t.Config = *c
	return t
}
