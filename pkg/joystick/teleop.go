// Package joystick drives a robot by a game pad.
package joystick

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/joystick/device"
)

// Driver sends the commands of one robot.
type Driver interface {
	Drive(id uint32, forward, left, ccw float32) error
	Kick(id uint32, speed float32, chip bool) error
	Dribble(id uint32, setting string) error
	Stop(id uint32) error
}

// Axis and button layout of the common game pads.
const (
	AxisLeftX     = 0
	AxisLeftY     = 1
	AxisRightX    = 3
	AxisDPadX     = 6
	AxisDPadY     = 7
	ButtonKick    = 0
	ButtonChip    = 1
	ButtonDribble = 4
	ButtonStop    = 5
)

// Teleop maps the joystick events to the commands of a robot.
type Teleop struct {
	Config
	Driver Driver
	Robot  uint32

	forward, left, ccw float64
	dribbling          bool
	openRetry          time.Duration
}

// NewTeleop creates a Teleop with the default config.
func NewTeleop(driver Driver, id uint32) *Teleop {
	return &Teleop{Config: defaultConfig, Driver: driver, Robot: id, openRetry: time.Second}
}

// Run implements Runnable. It opens the device, reopening it when lost,
// and stops the robot on exit.
func (t *Teleop) Run(ctx context.Context) error {
	defer t.stop()
	for {
		dev := t.open()
		if dev != nil {
			err := t.Serve(ctx, dev)
			dev.Close()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			glog.Warningf("Joystick %s lost: %v", dev.Info(), err)
			t.stop()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(t.openRetry):
		}
	}
}

func (t *Teleop) open() device.Device {
	var (
		dev device.Device
		err error
	)
	if t.DeviceIndex >= 0 {
		dev, err = device.Open(t.DeviceIndex)
	} else {
		dev, err = device.DetectAndOpen(0)
	}
	switch {
	case err != nil:
		glog.Errorf("Open joystick: %v", err)
		return nil
	case dev == nil:
		glog.V(1).Info("No joystick detected")
		return nil
	}
	glog.Infof("Joystick %s opened, driving robot %d", dev.Info(), t.Robot)
	return dev
}

// Serve handles the events of dev until reading fails or ctx is done.
func (t *Teleop) Serve(ctx context.Context, dev device.Device) error {
	evCh := make(chan device.Event)
	errCh := make(chan error, 1)
	go func() {
		for {
			ev, err := dev.ReadEvent()
			if err != nil {
				errCh <- err
				return
			}
			select {
			case evCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return err
		case ev := <-evCh:
			if err := t.HandleEvent(ev); err != nil {
				glog.Errorf("Robot %d: %v", t.Robot, err)
			}
		}
	}
}

// HandleEvent sends the command for one event.
func (t *Teleop) HandleEvent(ev device.Event) error {
	if t.Verbose {
		glog.Infof("Joystick %s", ev)
	}
	switch ev.Kind {
	case device.KindAxis:
		val := ev.Deflection()
		switch ev.Index {
		case AxisLeftY, AxisDPadY:
			t.forward = val * t.MaxSpeed
		case AxisLeftX:
			t.left = val * t.MaxSpeed
		case AxisRightX, AxisDPadX:
			t.ccw = val * t.MaxTurn
		default:
			return nil
		}
		return t.Driver.Drive(t.Robot, float32(t.forward), float32(t.left), float32(t.ccw))
	case device.KindButton:
		if !ev.Pressed() || ev.Initial {
			return nil
		}
		switch ev.Index {
		case ButtonKick:
			return t.Driver.Kick(t.Robot, float32(t.KickSpeed), false)
		case ButtonChip:
			return t.Driver.Kick(t.Robot, float32(t.KickSpeed), true)
		case ButtonDribble:
			t.dribbling = !t.dribbling
			if t.dribbling {
				return t.Driver.Dribble(t.Robot, "full")
			}
			return t.Driver.Dribble(t.Robot, "off")
		case ButtonStop:
			t.forward, t.left, t.ccw, t.dribbling = 0, 0, 0, false
			return t.Driver.Stop(t.Robot)
		}
	}
	return nil
}

func (t *Teleop) stop() {
	t.forward, t.left, t.ccw, t.dribbling = 0, 0, 0, false
	if err := t.Driver.Stop(t.Robot); err != nil {
		glog.Errorf("Stop robot %d: %v", t.Robot, err)
	}
}
