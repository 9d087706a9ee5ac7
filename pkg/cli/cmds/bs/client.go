// Package bs provides the shell commands talking to a basestation the way
// the game server does.
package bs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/soccer.go/pkg/comm"
	"github.com/robotalks/soccer.go/pkg/proto/luhsoccer"
)

// ErrNotConnected is returned when no basestation is connected.
var ErrNotConnected = errors.New("not connected")

// Client keeps the last command of every robot, so each command sent is
// complete, and the latest feedback of every robot.
type Client struct {
	Team luhsoccer.TeamColor

	lock     sync.Mutex
	conn     comm.PacketReadWriter
	cancel   func()
	robots   map[uint32]*luhsoccer.ToBasestationPacket
	feedback map[uint32]Feedback
	seq      uint32
	received uint64
	now      func() time.Time
}

// Feedback is the latest feedback of a robot.
type Feedback struct {
	*luhsoccer.FromBasestationPacket
	Received time.Time
}

// Age formats the age of the feedback.
func (f Feedback) Age() string {
	return humanize.Time(f.Received)
}

func (f Feedback) String() string {
	ball := "no"
	if f.HasBall {
		ball = "yes"
	}
	return fmt.Sprintf("robot %d %s: battery %.1fV kicker %.0fV ball %s rssi %d/%ddBm rtt %s, %s",
		f.Id, f.TeamColor, f.BatteryVoltage, f.KickerVoltage, ball, f.RssiRobot, f.RssiBasestation,
		time.Duration(f.MeasuredRtt)*time.Microsecond, f.Age())
}

// NewClient creates a disconnected Client of the blue team.
func NewClient() *Client {
	return &Client{
		robots:   make(map[uint32]*luhsoccer.ToBasestationPacket),
		feedback: make(map[uint32]Feedback),
		now:      time.Now,
	}
}

// Connect starts receiving feedback from conn, a previous connection is
// closed.
func (c *Client) Connect(conn comm.PacketReadWriter) {
	c.Disconnect()
	ctx, cancel := context.WithCancel(context.Background())
	c.lock.Lock()
	c.conn, c.cancel = conn, cancel
	c.lock.Unlock()
	pipe := comm.NewPipe(conn, comm.HandlePacketFunc(c.handleFeedback))
	go func() {
		if err := pipe.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			glog.Errorf("basestation connection: %v", err)
		}
	}()
}

// Disconnect closes the connection.
func (c *Client) Disconnect() {
	c.lock.Lock()
	cancel := c.cancel
	c.conn, c.cancel = nil, nil
	c.lock.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Connected tells whether a basestation is connected.
func (c *Client) Connected() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.conn != nil
}

func (c *Client) handleFeedback(ctx context.Context, pkt []byte) error {
	var w luhsoccer.FromBasestationWrapper
	if err := proto.Unmarshal(pkt, &w); err != nil {
		glog.Errorf("bad feedback: %v", err)
		return nil
	}
	now := c.now()
	c.lock.Lock()
	defer c.lock.Unlock()
	c.seq = w.SeqId
	c.received++
	for _, p := range w.Packets {
		c.feedback[p.Id] = Feedback{FromBasestationPacket: p, Received: now}
	}
	return nil
}

// robotLocked returns the command template of a robot. It drives nowhere, does
// not kick and keeps the dribbler off.
func (c *Client) robotLocked(id uint32) *luhsoccer.ToBasestationPacket {
	pkt, ok := c.robots[id]
	if !ok {
		pkt = &luhsoccer.ToBasestationPacket{
			Id:            id,
			LocalVelocity: &luhsoccer.LocalVelocity{},
			KickerInfo:    &luhsoccer.KickerInfo{Relative: proto.Float32(0)},
			DribblerInfo:  &luhsoccer.DribblerInfo{TristateMode: luhsoccer.TristateDribblerMode_OFF.Enum()},
		}
		c.robots[id] = pkt
	}
	pkt.TeamColor = c.Team
	return pkt
}

// Update changes the command of robot id and sends it.
func (c *Client) Update(id uint32, change func(*luhsoccer.ToBasestationPacket)) error {
	c.lock.Lock()
	conn := c.conn
	if conn == nil {
		c.lock.Unlock()
		return ErrNotConnected
	}
	pkt := c.robotLocked(id)
	change(pkt)
	data, err := proto.Marshal(&luhsoccer.ToBasestationWrapper{Packets: []*luhsoccer.ToBasestationPacket{pkt}})
	c.lock.Unlock()
	if err != nil {
		return err
	}
	return conn.WritePacket(data)
}

// Drive sets the movement in the robot frame.
func (c *Client) Drive(id uint32, forward, left, ccw float32) error {
	return c.Update(id, func(p *luhsoccer.ToBasestationPacket) {
		p.LocalVelocity = &luhsoccer.LocalVelocity{Forward: forward, Left: left, CounterClockwise: ccw}
		p.GlobalVelocity, p.GlobalPosition = nil, nil
	})
}

// Global sets the movement in the field frame.
func (c *Client) Global(id uint32, x, y, ccw float32) error {
	return c.Update(id, func(p *luhsoccer.ToBasestationPacket) {
		p.GlobalVelocity = &luhsoccer.GlobalVelocity{X: x, Y: y, CounterClockwise: ccw}
		p.LocalVelocity, p.GlobalPosition = nil, nil
	})
}

// Position sets the target pose on the field.
func (c *Client) Position(id uint32, x, y, theta float32) error {
	return c.Update(id, func(p *luhsoccer.ToBasestationPacket) {
		p.GlobalPosition = &luhsoccer.GlobalPosition{X: x, Y: y, Theta: theta}
		p.LocalVelocity, p.GlobalVelocity = nil, nil
	})
}

// Kick arms the kicker with a speed in m/s.
func (c *Client) Kick(id uint32, speed float32, mode luhsoccer.KickerMode) error {
	return c.Update(id, func(p *luhsoccer.ToBasestationPacket) {
		p.KickerInfo = &luhsoccer.KickerInfo{ChargeHint: p.KickerInfo.ChargeHint, Relative: proto.Float32(speed), Mode: mode}
	})
}

// Dribble sets the dribbler to a tristate mode name or a percentage.
func (c *Client) Dribble(id uint32, setting string) error {
	info := &luhsoccer.DribblerInfo{}
	switch strings.ToLower(setting) {
	case "off":
		info.TristateMode = luhsoccer.TristateDribblerMode_OFF.Enum()
	case "half":
		info.TristateMode = luhsoccer.TristateDribblerMode_HALF.Enum()
	case "full":
		info.TristateMode = luhsoccer.TristateDribblerMode_FULL.Enum()
	default:
		percent, err := strconv.ParseFloat(strings.TrimSuffix(setting, "%"), 32)
		if err != nil || percent < 0 || percent > 100 {
			return fmt.Errorf("invalid dribbler setting %q", setting)
		}
		info.Percent = proto.Float32(float32(percent))
	}
	return c.Update(id, func(p *luhsoccer.ToBasestationPacket) { p.DribblerInfo = info })
}

// Stop halts the robot and turns the dribbler off.
func (c *Client) Stop(id uint32) error {
	return c.Update(id, func(p *luhsoccer.ToBasestationPacket) {
		p.LocalVelocity = &luhsoccer.LocalVelocity{}
		p.GlobalVelocity, p.GlobalPosition = nil, nil
		p.KickerInfo = &luhsoccer.KickerInfo{ChargeHint: p.KickerInfo.ChargeHint, Relative: proto.Float32(0)}
		p.DribblerInfo = &luhsoccer.DribblerInfo{TristateMode: luhsoccer.TristateDribblerMode_OFF.Enum()}
	})
}

// Feedback returns the latest feedback of every robot ordered by id.
func (c *Client) Feedback() []Feedback {
	c.lock.Lock()
	defer c.lock.Unlock()
	res := make([]Feedback, 0, len(c.feedback))
	for _, fb := range c.feedback {
		res = append(res, fb)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	return res
}

// Status summarizes the connection.
func (c *Client) Status() string {
	c.lock.Lock()
	defer c.lock.Unlock()
	state := "disconnected"
	if c.conn != nil {
		state = "connected"
	}
	return fmt.Sprintf("%s, team %s, %d robots commanded, %s feedback datagrams, seq %d",
		state, c.Team, len(c.robots), humanize.Comma(int64(c.received)), c.seq)
}
