package bs

import (
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/soccer.go/pkg/cli/sh"
	"github.com/robotalks/soccer.go/pkg/comm/udp"
	"github.com/robotalks/soccer.go/pkg/proto/luhsoccer"
)

const clientKey = "$bs"

// ClientFrom gets the Client from ishell context.
func ClientFrom(c *ishell.Context) *Client {
	return c.Get(clientKey).(*Client)
}

// Setup makes client available to the commands.
func Setup(s *sh.Shell, client *Client) {
	s.Set(clientKey, client)
}

func mustBeConnected(fn func(*ishell.Context, *Client) error) func(*ishell.Context) {
	return func(c *ishell.Context) {
		client := ClientFrom(c)
		if !client.Connected() {
			c.Err(ErrNotConnected)
			return
		}
		if err := fn(c, client); err != nil {
			c.Err(err)
		}
	}
}

// robotCmd parses ID and up to len(names) float arguments.
func robotCmd(names []string, fn func(*Client, uint32, []float32) error) func(*ishell.Context) {
	return mustBeConnected(func(c *ishell.Context, client *Client) error {
		if !sh.RequireArgs(c, 1) {
			return nil
		}
		id, err := sh.UintArg(c, 0, "ID", 8)
		if err != nil {
			return err
		}
		vals := make([]float32, len(names))
		for i, name := range names {
			val, err := sh.FloatArg(c, i+1, name, 0)
			if err != nil {
				return err
			}
			vals[i] = float32(val)
		}
		return fn(client, uint32(id), vals)
	})
}

var (
	// ConnectCmd connects to a basestation.
	ConnectCmd = ishell.Cmd{
		Name: "connect",
		Help: "[HOST:PORT]",
		Func: func(c *ishell.Context) {
			addr := fmt.Sprintf("127.0.0.1:%d", udp.DefaultServerPort)
			if len(c.Args) > 0 {
				addr = c.Args[0]
			}
			conn, err := udp.Dial(addr)
			if err != nil {
				c.Err(err)
				return
			}
			ClientFrom(c).Connect(conn)
		},
	}

	// DisconnectCmd closes the connection.
	DisconnectCmd = ishell.Cmd{
		Name: "disconnect",
		Help: "",
		Func: func(c *ishell.Context) {
			ClientFrom(c).Disconnect()
		},
	}

	// TeamCmd selects the team of the commanded robots.
	TeamCmd = ishell.Cmd{
		Name: "team",
		Help: "blue|yellow",
		Func: func(c *ishell.Context) {
			client := ClientFrom(c)
			if len(c.Args) == 0 {
				sh.ShellFrom(c).Print(c, client.Team.String())
				return
			}
			switch strings.ToLower(c.Args[0]) {
			case "blue":
				client.Team = luhsoccer.TeamColor_BLUE
			case "yellow":
				client.Team = luhsoccer.TeamColor_YELLOW
			default:
				c.Err(fmt.Errorf("unknown team %q", c.Args[0]))
			}
		},
	}

	// DriveCmd drives a robot in its own frame.
	DriveCmd = ishell.Cmd{
		Name:    "drive",
		Aliases: []string{"d"},
		Help:    "ID FORWARD(m/s) [LEFT(m/s)] [CCW(rad/s)]",
		Func: robotCmd([]string{"FORWARD", "LEFT", "CCW"}, func(client *Client, id uint32, v []float32) error {
			return client.Drive(id, v[0], v[1], v[2])
		}),
	}

	// GlobalCmd drives a robot in the field frame.
	GlobalCmd = ishell.Cmd{
		Name:    "global",
		Aliases: []string{"g"},
		Help:    "ID X(m/s) [Y(m/s)] [CCW(rad/s)]",
		Func: robotCmd([]string{"X", "Y", "CCW"}, func(client *Client, id uint32, v []float32) error {
			return client.Global(id, v[0], v[1], v[2])
		}),
	}

	// PositionCmd moves a robot to a pose on the field.
	PositionCmd = ishell.Cmd{
		Name:    "position",
		Aliases: []string{"pos"},
		Help:    "ID X(m) Y(m) [THETA(rad)]",
		Func: robotCmd([]string{"X", "Y", "THETA"}, func(client *Client, id uint32, v []float32) error {
			return client.Position(id, v[0], v[1], v[2])
		}),
	}

	// KickCmd arms the kicker.
	KickCmd = ishell.Cmd{
		Name:    "kick",
		Aliases: []string{"k"},
		Help:    "ID SPEED(m/s) [chip]",
		Func: mustBeConnected(func(c *ishell.Context, client *Client) error {
			if !sh.RequireArgs(c, 2) {
				return nil
			}
			id, err := sh.UintArg(c, 0, "ID", 8)
			if err != nil {
				return err
			}
			speed, err := sh.FloatArg(c, 1, "SPEED", 0)
			if err != nil {
				return err
			}
			mode := luhsoccer.KickerMode_KICK
			if len(c.Args) > 2 && c.Args[2] == "chip" {
				mode = luhsoccer.KickerMode_CHIP
			}
			return client.Kick(uint32(id), float32(speed), mode)
		}),
	}

	// DribbleCmd sets the dribbler.
	DribbleCmd = ishell.Cmd{
		Name: "dribble",
		Help: "ID off|half|full|PERCENT",
		Func: mustBeConnected(func(c *ishell.Context, client *Client) error {
			if !sh.RequireArgs(c, 2) {
				return nil
			}
			id, err := sh.UintArg(c, 0, "ID", 8)
			if err != nil {
				return err
			}
			return client.Dribble(uint32(id), c.Args[1])
		}),
	}

	// ChargeCmd sets the charge hint of the kicker.
	ChargeCmd = ishell.Cmd{
		Name: "charge",
		Help: "ID charge|discharge|dontcare",
		Func: mustBeConnected(func(c *ishell.Context, client *Client) error {
			if !sh.RequireArgs(c, 2) {
				return nil
			}
			id, err := sh.UintArg(c, 0, "ID", 8)
			if err != nil {
				return err
			}
			hint, err := ParseChargeHint(c.Args[1])
			if err != nil {
				return err
			}
			return client.Update(uint32(id), func(p *luhsoccer.ToBasestationPacket) {
				p.KickerInfo.ChargeHint = hint
			})
		}),
	}

	// StopCmd halts a robot.
	StopCmd = ishell.Cmd{
		Name:    "stop",
		Aliases: []string{"s"},
		Help:    "ID",
		Func: robotCmd(nil, func(client *Client, id uint32, _ []float32) error {
			return client.Stop(id)
		}),
	}

	// StatusCmd shows the connection state.
	StatusCmd = ishell.Cmd{
		Name: "status",
		Help: "",
		Func: func(c *ishell.Context) {
			c.Println(ClientFrom(c).Status())
		},
	}

	// FeedbackCmd shows the latest feedback of the robots.
	FeedbackCmd = ishell.Cmd{
		Name:    "feedback",
		Aliases: []string{"fb"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			for _, fb := range ClientFrom(c).Feedback() {
				if s.OutputJSON {
					s.Print(c, fb.FromBasestationPacket)
				} else {
					s.Print(c, fb.String())
				}
			}
		},
	}
)

// Commands lists the basestation commands.
func Commands() []*ishell.Cmd {
	return []*ishell.Cmd{
		&ConnectCmd,
		&DisconnectCmd,
		&TeamCmd,
		&DriveCmd,
		&GlobalCmd,
		&PositionCmd,
		&KickCmd,
		&DribbleCmd,
		&ChargeCmd,
		&StopCmd,
		&StatusCmd,
		&FeedbackCmd,
		&JoystickCmd,
	}
}

// ParseChargeHint parses a charge hint name.
func ParseChargeHint(s string) (luhsoccer.ChargeHint, error) {
	switch strings.ToLower(s) {
	case "charge":
		return luhsoccer.ChargeHint_CHARGE, nil
	case "discharge":
		return luhsoccer.ChargeHint_DISCHARGE, nil
	case "dontcare", "dont-care":
		return luhsoccer.ChargeHint_DONT_CARE, nil
	}
	return 0, fmt.Errorf("unknown charge hint %q", s)
}
