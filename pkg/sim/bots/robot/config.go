package robot

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/robotalks/soccer.go/pkg/sim"
	"github.com/robotalks/soccer.go/pkg/sim/air"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// Config defines the simulated fleet.
type Config struct {
	Robots   int
	Team     string
	Diameter float64
	Spacing  float64
	Rssi     int
	LossRate float64
}

// Defaults
const (
	DefaultDiameter float64 = 180
	DefaultSpacing  float64 = 400
)

var defaultConfig = Config{
	Team:     "blue",
	Diameter: DefaultDiameter,
	Spacing:  DefaultSpacing,
	Rssi:     air.DefaultRssi,
}

func init() {
	if n, err := strconv.Atoi(os.Getenv("SIM_ROBOTS")); err == nil {
		defaultConfig.Robots = n
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.Robots, "sim-robots", defaultConfig.Robots, "Number of simulated robots, 0 uses the radio hardware.")
	flag.StringVar(&defaultConfig.Team, "sim-team", defaultConfig.Team, "Team of the simulated robots: blue or yellow.")
	flag.Float64Var(&defaultConfig.Diameter, "sim-diameter", defaultConfig.Diameter, "Diameter (mm) of a simulated robot.")
	flag.Float64Var(&defaultConfig.Spacing, "sim-spacing", defaultConfig.Spacing, "Distance (mm) between simulated robots at start.")
	flag.IntVar(&defaultConfig.Rssi, "sim-rssi", defaultConfig.Rssi, "RSSI (dBm) of simulated packets.")
	flag.Float64Var(&defaultConfig.LossRate, "sim-loss", defaultConfig.LossRate, "Probability of a simulated packet being lost.")
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Enabled tells whether robots are simulated.
func (c *Config) Enabled() bool {
	return c.Robots > 0
}

// NewMedium creates the radio medium of the simulation.
func (c *Config) NewMedium() *air.Medium {
	m := air.NewMedium()
	m.Rssi = int32(c.Rssi)
	m.LossRate = c.LossRate
	return m
}

// NewFleet creates the robots with ids from 0 lined up on the own half,
// facing the opponent.
func (c *Config) NewFleet(medium *air.Medium) (*Fleet, error) {
	var team wire.Team
	switch c.Team {
	case "blue":
		team = wire.TeamBlue
	case "yellow":
		team = wire.TeamYellow
	default:
		return nil, fmt.Errorf("invalid team %q", c.Team)
	}
	if c.Robots > wire.MaxRobots {
		return nil, fmt.Errorf("at most %d robots can be simulated", wire.MaxRobots)
	}
	f := &Fleet{}
	top := float64(c.Robots-1) * c.Spacing / 2
	for id := 0; id < c.Robots; id++ {
		pose := sim.Pose2D{Pos2D: sim.Pos2D{X: -1000, Y: top - float64(id)*c.Spacing}}
		f.Robots = append(f.Robots, New(medium, team, uint8(id), c.Diameter, pose))
	}
	return f, nil
}
