// Package basestation assembles the basestation daemon from configuration.
package basestation

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/golang/glog"

	bs "github.com/robotalks/soccer.go/pkg/basestation"
	"github.com/robotalks/soccer.go/pkg/comm"
	"github.com/robotalks/soccer.go/pkg/comm/mqtt"
	"github.com/robotalks/soccer.go/pkg/comm/udp"
	"github.com/robotalks/soccer.go/pkg/comm/websocket"
	fx "github.com/robotalks/soccer.go/pkg/framework"
	"github.com/robotalks/soccer.go/pkg/radio"
	"github.com/robotalks/soccer.go/pkg/sim/air"
	simrobot "github.com/robotalks/soccer.go/pkg/sim/bots/robot"
	"github.com/robotalks/soccer.go/pkg/sim/visualization/see"
	"github.com/robotalks/soccer.go/pkg/telemetry"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// Defaults
const (
	DefaultVisionAddr = "224.5.23.2:10006"
	DefaultTick       = 16 * time.Millisecond
	// DefaultFrequency of the radio in MHz.
	DefaultFrequency = 2400
)

// DefaultServerURL is the UDP endpoint the game server talks to.
var DefaultServerURL = "udp://:" + strconv.Itoa(udp.DefaultServerPort)

// Config provides the options of the basestation daemon.
type Config struct {
	ID string
	// ServerURL is the transport of the game server:
	// udp://[host]:port or mqtt://host:port/topic-prefix.
	ServerURL string
	// VisionAddr is the SSL vision multicast group, empty disables vision.
	VisionAddr string
	// VisionPosition attaches the vision pose to every command.
	VisionPosition bool
	// MQTTURL publishes presence and feedback, optional.
	MQTTURL string
	// TelemetryDB is the sqlite file recording feedback, optional.
	TelemetryDB string
	// HTTPAddr serves the /feedback and /see websocket streams, optional.
	HTTPAddr  string
	Tick      time.Duration
	Frequency uint
	Sim       *simrobot.Config
}

var defaultConfig = Config{
	ServerURL:  DefaultServerURL,
	VisionAddr: DefaultVisionAddr,
	Tick:       DefaultTick,
	Frequency:  DefaultFrequency,
}

func init() {
	if val := os.Getenv("BS_SERVER_URL"); val != "" {
		defaultConfig.ServerURL = val
	}
	if val, ok := os.LookupEnv("BS_VISION_ADDR"); ok {
		defaultConfig.VisionAddr = val
	}
	if val := os.Getenv("BS_MQTT_URL"); val != "" {
		defaultConfig.MQTTURL = val
	}
	if val := os.Getenv("BS_TELEMETRY_DB"); val != "" {
		defaultConfig.TelemetryDB = val
	}
	if val := os.Getenv("BS_HTTP_ADDR"); val != "" {
		defaultConfig.HTTPAddr = val
	}
	if val := os.Getenv("BS_TICK"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			defaultConfig.Tick = d
		} else {
			glog.Warningf("ignoring BS_TICK: %v", err)
		}
	}
}

// SetupFlags sets command line flags, including the simulation flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Basestation ID, defaults to the machine identity.")
	flag.StringVar(&defaultConfig.ServerURL, "server", defaultConfig.ServerURL, "Game server transport URL (udp:// or mqtt://).")
	flag.StringVar(&defaultConfig.VisionAddr, "vision", defaultConfig.VisionAddr, "SSL vision multicast address, empty to disable.")
	flag.BoolVar(&defaultConfig.VisionPosition, "vision-position", defaultConfig.VisionPosition, "Send the vision pose to the robots.")
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL publishing presence and feedback.")
	flag.StringVar(&defaultConfig.TelemetryDB, "telemetry", defaultConfig.TelemetryDB, "sqlite file recording the feedback.")
	flag.StringVar(&defaultConfig.HTTPAddr, "http", defaultConfig.HTTPAddr, "Listen address of the websocket streams.")
	flag.DurationVar(&defaultConfig.Tick, "tick", defaultConfig.Tick, "Interval of the radio cycles.")
	flag.UintVar(&defaultConfig.Frequency, "freq", defaultConfig.Frequency, "Radio frequency (MHz).")
	simrobot.SetupFlags()
	see.SetupFlags()
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	if conf.ID == "" {
		conf.ID = Identity()
	}
	conf.Sim = simrobot.NewConfig()
	return &conf
}

// Env is the assembled basestation.
type Env struct {
	Config      *Config
	Server      comm.PacketReadWriter
	Basestation *bs.Basestation
	Vision      *bs.Vision
	Medium      *air.Medium
	Fleet       *simrobot.Fleet
	Presence    *mqtt.Presence
	Recorder    *telemetry.Recorder
	Feedback    *websocket.Hub
	See         *websocket.Hub

	runnables []fx.Runnable
	closers   []func() error
}

// NewEnv creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	e := &Env{Config: c, Vision: bs.NewVision()}
	if err := e.setup(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	env, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return env
}

func (e *Env) setup() error {
	c := e.Config
	if c.MQTTURL != "" {
		presence, err := mqtt.NewPresence(c.MQTTURL, mqtt.Info{
			ID:       c.ID,
			Hostname: c.ID,
			Firmware: wire.FirmwareVersion.String(),
			Started:  time.Now(),
		})
		if err != nil {
			return fmt.Errorf("MQTT: %w", err)
		}
		e.Presence = presence
		e.runnables = append(e.runnables, presence)
	}

	server, err := e.newServer(c.ServerURL)
	if err != nil {
		return err
	}
	e.Server = server

	tr, err := e.newTransceiver()
	if err != nil {
		return err
	}
	sched, err := bs.NewScheduler(tr, radio.NewFrontEnd(&radio.PinLevels{}), bs.NewStateTable())
	if err != nil {
		return err
	}
	if c.VisionPosition {
		sched.Prepare = e.Vision.Prepare
	}
	e.Basestation = bs.New(server, sched)

	if c.VisionAddr != "" && e.Fleet == nil {
		conn, err := udp.ListenMulticast(c.VisionAddr)
		if err != nil {
			return fmt.Errorf("vision %s: %w", c.VisionAddr, err)
		}
		e.closers = append(e.closers, conn.Close)
		e.runnables = append(e.runnables, comm.NewPipe(conn, e.Vision))
	}
	if e.Presence != nil {
		e.Basestation.AddFeedbackWriter(mqtt.NewPacketReadWriter(e.Presence.Queue).WithTopics("", mqtt.FeedbackTopic))
	}
	if c.TelemetryDB != "" {
		rec, err := telemetry.Open(c.TelemetryDB)
		if err != nil {
			return err
		}
		e.Recorder = rec
		e.closers = append(e.closers, rec.Close)
		e.Basestation.AddFeedbackSink(rec)
	}
	if c.HTTPAddr != "" {
		e.setupHTTP()
	}
	return nil
}

func (e *Env) newServer(serverURL string) (comm.PacketReadWriter, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "udp":
		srv, err := udp.Listen(u.Host)
		if err != nil {
			return nil, err
		}
		glog.Infof("Listening for the server on %s", srv.LocalAddr())
		return srv, nil
	case "mqtt", "tcp", "ssl", "ws", "wss":
		q, err := mqtt.NewQueueFromURL(serverURL)
		if err != nil {
			return nil, err
		}
		e.runnables = append(e.runnables, fx.RunFunc(func(ctx context.Context) error {
			if err := q.ConnectWait(); err != nil {
				return fmt.Errorf("MQTT server %s: %w", u.Host, err)
			}
			<-ctx.Done()
			q.Close()
			return ctx.Err()
		}))
		return mqtt.NewPacketReadWriter(q).ForServer(), nil
	default:
		return nil, fmt.Errorf("unknown server URL scheme: %q", u.Scheme)
	}
}

// newTransceiver sets up the radio. No transceiver driver is built in,
// the radio is always the simulated medium, with or without robots.
func (e *Env) newTransceiver() (radio.Transceiver, error) {
	simConf := e.Config.Sim
	if simConf == nil {
		simConf = simrobot.NewConfig()
	}
	e.Medium = simConf.NewMedium()
	if simConf.Enabled() {
		fleet, err := simConf.NewFleet(e.Medium)
		if err != nil {
			return nil, err
		}
		fleet.Vision = e.Vision
		e.Fleet = fleet
	} else {
		glog.Warning("No robots simulated, the radio medium is empty")
	}
	tr := e.Medium.NewTransceiver(e.Config.ID)
	if err := tr.SetFrequency(uint32(e.Config.Frequency)); err != nil {
		return nil, err
	}
	for _, r := range e.fleetRobots() {
		r.Main.Signals.Config.RFFrequency.Set(uint32(e.Config.Frequency))
	}
	return tr, nil
}

func (e *Env) fleetRobots() []*simrobot.Robot {
	if e.Fleet == nil {
		return nil
	}
	return e.Fleet.Robots
}

func (e *Env) setupHTTP() {
	e.Feedback = websocket.NewHub()
	e.Basestation.AddFeedbackWriter(e.Feedback)
	mux := http.NewServeMux()
	mux.Handle("/feedback", e.Feedback.Handler())
	if e.Fleet != nil {
		e.See = websocket.NewHub()
		mux.Handle("/see", e.See.Handler())
	}
	srv := &http.Server{Addr: e.Config.HTTPAddr, Handler: mux}
	e.runnables = append(e.runnables, fx.RunFunc(func(ctx context.Context) error {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			return err
		}
		glog.Infof("Serving websocket streams on %s", ln.Addr())
		return fx.RunWithContextCancel(ctx, func() { srv.Close() }, func() error {
			if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return ctx.Err()
		})
	}))
	e.closers = append(e.closers, e.Feedback.Close)
}

// AddToLoop implements LoopAdder.
func (e *Env) AddToLoop(loop *fx.Loop) {
	loop.Interval = e.Config.Tick
	loop.Add(e.Basestation)
	loop.AddRunnable(e.runnables...)
	if e.Fleet != nil {
		loop.Add(e.Fleet)
		if e.See != nil {
			loop.Add(see.NewAdapter(see.NewConfig(), e.See).Subscribe(e.Fleet))
		}
	}
}

// Close releases the resources which don't stop with the loop.
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	e.closers = nil
	return errors.Join(errs...)
}
