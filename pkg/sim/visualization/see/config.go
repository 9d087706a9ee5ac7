package see

import "flag"

// Config represents configuration for see.
type Config struct {
	W float64
	H float64
}

// The division B field including the boundary area.
var defaultConfig = Config{
	W: 10400,
	H: 7400,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Float64Var(&defaultConfig.W, "see-w", defaultConfig.W, "Width (mm) of visualization area")
	flag.Float64Var(&defaultConfig.H, "see-h", defaultConfig.H, "Height (mm) of visualization area")
}

// NewConfig creates a default config.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
