package intra

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/soccer.go/pkg/cli/sh"
	"github.com/robotalks/soccer.go/pkg/comm/serial"
	"github.com/robotalks/soccer.go/pkg/robot/motorcontroller"
	"github.com/robotalks/soccer.go/pkg/wire"
)

const consoleKey = "$intra"

// ConsoleFrom gets the Console from ishell context.
func ConsoleFrom(c *ishell.Context) *Console {
	return c.Get(consoleKey).(*Console)
}

// Setup makes console available to the commands.
func Setup(s *sh.Shell, console *Console) {
	s.Set(consoleKey, console)
}

func send(build func(c *ishell.Context) (wire.Main2Motor, error)) func(*ishell.Context) {
	return func(c *ishell.Context) {
		msg, err := build(c)
		if err == nil {
			err = ConsoleFrom(c).Send(msg)
		}
		if err != nil {
			c.Err(err)
		}
	}
}

func speedArg(c *ishell.Context) (uint16, error) {
	speed, err := sh.UintArg(c, 0, "SPEED", 16)
	return uint16(speed), err
}

var (
	// PortsCmd lists the serial ports.
	PortsCmd = ishell.Cmd{
		Name: "ports",
		Help: "",
		Func: func(c *ishell.Context) {
			ports, err := serial.Ports()
			if err != nil {
				c.Err(err)
				return
			}
			for _, port := range ports {
				c.Println(port)
			}
		},
	}

	// OpenCmd opens the link on a serial port.
	OpenCmd = ishell.Cmd{
		Name: "open",
		Help: "DEVICE [BAUD]",
		Func: func(c *ishell.Context) {
			if !sh.RequireArgs(c, 1) {
				return
			}
			conf := serial.DefaultConfig(c.Args[0])
			if len(c.Args) > 1 {
				baud, err := strconv.Atoi(c.Args[1])
				if err != nil {
					c.Err(fmt.Errorf("invalid BAUD: %w", err))
					return
				}
				conf.BaudRate = baud
			}
			port, err := conf.Open()
			if err != nil {
				c.Err(err)
				return
			}
			ConsoleFrom(c).Open(port)
		},
	}

	// CloseCmd closes the link.
	CloseCmd = ishell.Cmd{
		Name: "close",
		Help: "",
		Func: func(c *ishell.Context) {
			if err := ConsoleFrom(c).Close(); err != nil {
				c.Err(err)
			}
		},
	}

	// DriveCmd sends a Drive message.
	DriveCmd = ishell.Cmd{
		Name:    "drive",
		Aliases: []string{"d"},
		Help:    "FORWARD(m/s) [LEFT(m/s)] [CCW(rad/s)]",
		Func: send(func(c *ishell.Context) (wire.Main2Motor, error) {
			if len(c.Args) == 0 {
				return wire.Main2Motor{}, fmt.Errorf("FORWARD required")
			}
			var v [3]float64
			for i, name := range []string{"FORWARD", "LEFT", "CCW"} {
				val, err := sh.FloatArg(c, i, name, 0)
				if err != nil {
					return wire.Main2Motor{}, err
				}
				v[i] = val
			}
			m := motorcontroller.Movement{Forward: v[0], Left: v[1], CounterClockwise: v[2]}
			return wire.Drive(m.Wire()), nil
		}),
	}

	// KickCmd sends a Kick message.
	KickCmd = ishell.Cmd{
		Name: "kick",
		Help: "SPEED(mm/s)",
		Func: send(func(c *ishell.Context) (wire.Main2Motor, error) {
			speed, err := speedArg(c)
			return wire.Kick(speed), err
		}),
	}

	// ChipCmd sends a Chip message.
	ChipCmd = ishell.Cmd{
		Name: "chip",
		Help: "SPEED(mm/s)",
		Func: send(func(c *ishell.Context) (wire.Main2Motor, error) {
			speed, err := speedArg(c)
			return wire.Chip(speed), err
		}),
	}

	// KickRawCmd sends a KickRaw message.
	KickRawCmd = ishell.Cmd{
		Name: "kickraw",
		Help: "DURATION(us)",
		Func: send(func(c *ishell.Context) (wire.Main2Motor, error) {
			us, err := sh.UintArg(c, 0, "DURATION", 16)
			return wire.KickRaw(uint16(us)), err
		}),
	}

	// BallCmd reports the ball presence.
	BallCmd = ishell.Cmd{
		Name: "ball",
		Help: "in|out",
		Func: send(func(c *ishell.Context) (wire.Main2Motor, error) {
			if len(c.Args) > 0 {
				switch c.Args[0] {
				case "in":
					return wire.BallPresence(true), nil
				case "out":
					return wire.BallPresence(false), nil
				}
			}
			return wire.Main2Motor{}, fmt.Errorf("in or out expected")
		}),
	}

	// ChargeCmd sends a ChargeHint message.
	ChargeCmd = ishell.Cmd{
		Name: "charge",
		Help: "charge|discharge|dontcare",
		Func: send(func(c *ishell.Context) (wire.Main2Motor, error) {
			if len(c.Args) > 0 {
				switch c.Args[0] {
				case "charge":
					return wire.ChargeHint(wire.ChargeHintCharge), nil
				case "discharge":
					return wire.ChargeHint(wire.ChargeHintDischarge), nil
				case "dontcare", "dont-care":
					return wire.ChargeHint(wire.ChargeHintDontCare), nil
				}
			}
			return wire.Main2Motor{}, fmt.Errorf("charge, discharge or dontcare expected")
		}),
	}

	// CalibrateCmd sends the measured capacitor voltage.
	CalibrateCmd = ishell.Cmd{
		Name: "calibrate",
		Help: "MEASURED(V)",
		Func: send(func(c *ishell.Context) (wire.Main2Motor, error) {
			volts, err := sh.UintArg(c, 0, "MEASURED", 8)
			return wire.CalibrateCapVoltage(uint8(volts)), err
		}),
	}

	// StatusCmd shows the latest reports.
	StatusCmd = ishell.Cmd{
		Name: "status",
		Help: "",
		Func: func(c *ishell.Context) {
			c.Println(ConsoleFrom(c).Status())
		},
	}

	// ListenCmd prints the messages received for a while.
	ListenCmd = ishell.Cmd{
		Name: "listen",
		Help: "[SECONDS]",
		Func: func(c *ishell.Context) {
			secs, err := sh.FloatArg(c, 0, "SECONDS", 1)
			if err != nil {
				c.Err(err)
				return
			}
			ch, stop := ConsoleFrom(c).Listen()
			defer stop()
			timeout := time.After(time.Duration(secs * float64(time.Second)))
			for {
				select {
				case msg := <-ch:
					c.Println(msg.String())
				case <-timeout:
					return
				}
			}
		},
	}
)

// Commands lists the intra link commands.
func Commands() []*ishell.Cmd {
	return []*ishell.Cmd{
		&PortsCmd,
		&OpenCmd,
		&CloseCmd,
		&DriveCmd,
		&KickCmd,
		&ChipCmd,
		&KickRawCmd,
		&BallCmd,
		&ChargeCmd,
		&CalibrateCmd,
		&StatusCmd,
		&ListenCmd,
	}
}
