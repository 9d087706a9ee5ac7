// Package intra provides the shell commands talking to a motor controller
// over the intra-board link.
package intra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/intra/link"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// ErrNotOpen is returned when no link is open.
var ErrNotOpen = errors.New("link not open")

// Console plays the main controller on a link.
type Console struct {
	lock      sync.Mutex
	port      io.ReadWriteCloser
	main      *link.Main
	cancel    func()
	done      chan struct{}
	velocity  wire.LocalVelocity
	voltage   uint8
	updated   time.Time
	received  uint64
	frameErrs uint64
	listeners []chan wire.Motor2Main
	now       func() time.Time
}

// NewConsole creates a Console without link.
func NewConsole() *Console {
	return &Console{now: time.Now}
}

// Open starts talking over port, a previous link is closed.
func (c *Console) Open(port io.ReadWriteCloser) {
	c.Close()
	ctx, cancel := context.WithCancel(context.Background())
	main := link.NewMain(port)
	done := make(chan struct{})
	c.lock.Lock()
	c.port, c.main, c.cancel, c.done = port, main, cancel, done
	c.lock.Unlock()
	go func() {
		defer close(done)
		err := main.Serve(ctx, c.handle, func(err error) {
			glog.V(1).Infof("intra frame error: %v", err)
			c.lock.Lock()
			c.frameErrs++
			c.lock.Unlock()
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			glog.Errorf("intra link: %v", err)
		}
	}()
}

// Close closes the link.
func (c *Console) Close() error {
	c.lock.Lock()
	port, cancel, done := c.port, c.cancel, c.done
	c.port, c.main, c.cancel, c.done = nil, nil, nil, nil
	c.lock.Unlock()
	if port == nil {
		return nil
	}
	cancel()
	err := port.Close()
	<-done
	return err
}

func (c *Console) handle(msg wire.Motor2Main) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.received++
	c.updated = c.now()
	switch msg.Kind {
	case wire.Motor2MainMotorVelocity:
		c.velocity = msg.Velocity
	case wire.Motor2MainCapVoltage:
		c.voltage = msg.Voltage
	}
	for _, ch := range c.listeners {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Send sends msg to the motor controller.
func (c *Console) Send(msg wire.Main2Motor) error {
	c.lock.Lock()
	main := c.main
	c.lock.Unlock()
	if main == nil {
		return ErrNotOpen
	}
	return main.Send(&msg)
}

// Listen returns a channel receiving the messages from the motor
// controller until stop is called.
func (c *Console) Listen() (<-chan wire.Motor2Main, func()) {
	ch := make(chan wire.Motor2Main, 64)
	c.lock.Lock()
	c.listeners = append(c.listeners, ch)
	c.lock.Unlock()
	return ch, func() {
		c.lock.Lock()
		defer c.lock.Unlock()
		for i, l := range c.listeners {
			if l == ch {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				break
			}
		}
	}
}

// Status summarizes the link and the latest reports.
func (c *Console) Status() string {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.port == nil {
		return "closed"
	}
	age := "never"
	if !c.updated.IsZero() {
		age = humanize.Time(c.updated)
	}
	return fmt.Sprintf("open, velocity %+v, capacitor %dV, %s messages (%d frame errors), updated %s",
		c.velocity, c.voltage, humanize.Comma(int64(c.received)), c.frameErrs, age)
}
