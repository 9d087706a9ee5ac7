package bs

import (
	"context"
	"errors"
	"sync"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/cli/sh"
	"github.com/robotalks/soccer.go/pkg/joystick"
	"github.com/robotalks/soccer.go/pkg/proto/luhsoccer"
)

type joystickDriver struct {
	*Client
}

func (d joystickDriver) Kick(id uint32, speed float32, chip bool) error {
	mode := luhsoccer.KickerMode_KICK
	if chip {
		mode = luhsoccer.KickerMode_CHIP
	}
	return d.Client.Kick(id, speed, mode)
}

var teleop struct {
	lock   sync.Mutex
	cancel func()
	done   chan struct{}
}

// StartJoystick drives robot id by the joystick in background, replacing
// a previous teleoperation.
func StartJoystick(client *Client, conf *joystick.Config, id uint32) {
	StopJoystick()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	t := conf.NewTeleop(joystickDriver{Client: client}, id)
	go func() {
		defer close(done)
		if err := t.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			glog.Errorf("joystick: %v", err)
		}
	}()
	teleop.lock.Lock()
	teleop.cancel, teleop.done = cancel, done
	teleop.lock.Unlock()
}

// StopJoystick ends the teleoperation.
func StopJoystick() {
	teleop.lock.Lock()
	cancel, done := teleop.cancel, teleop.done
	teleop.cancel, teleop.done = nil, nil
	teleop.lock.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}

// JoystickCmd drives a robot by the joystick.
var JoystickCmd = ishell.Cmd{
	Name:    "joystick",
	Aliases: []string{"js"},
	Help:    "ID [DEVICE] | off",
	Func: mustBeConnected(func(c *ishell.Context, client *Client) error {
		if !sh.RequireArgs(c, 1) {
			return nil
		}
		if c.Args[0] == "off" {
			StopJoystick()
			return nil
		}
		id, err := sh.UintArg(c, 0, "ID", 8)
		if err != nil {
			return err
		}
		conf := joystick.NewConfig()
		if len(c.Args) > 1 {
			index, err := sh.UintArg(c, 1, "DEVICE", 8)
			if err != nil {
				return err
			}
			conf.DeviceIndex = int(index)
		}
		StartJoystick(client, conf, uint32(id))
		return nil
	}),
}
