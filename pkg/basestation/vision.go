package basestation

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/soccer.go/pkg/proto/sslvision"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// DefaultPoseExpiry is how long a detected pose stays usable.
const DefaultPoseExpiry = 200 * time.Millisecond

type visionKey struct {
	team wire.Team
	id   uint8
}

type detectedPose struct {
	pos  wire.Position
	seen time.Time
}

// Vision keeps the latest robot poses seen by the vision system.
type Vision struct {
	Expiry time.Duration

	lock     sync.Mutex
	frames   uint64
	failures uint64
	poses    map[visionKey]detectedPose
	now      func() time.Time
}

// NewVision creates a Vision.
func NewVision() *Vision {
	return &Vision{
		Expiry: DefaultPoseExpiry,
		poses:  make(map[visionKey]detectedPose),
		now:    time.Now,
	}
}

// HandlePacket implements comm.PacketHandler.
// Undecodable datagrams are logged and dropped.
func (v *Vision) HandlePacket(ctx context.Context, pkt []byte) error {
	var w sslvision.SSL_WrapperPacket
	if err := proto.Unmarshal(pkt, &w); err != nil {
		glog.Errorf("Failed to decode vision packet: %v", err)
		v.lock.Lock()
		v.failures++
		v.lock.Unlock()
		return nil
	}
	v.Update(&w)
	return nil
}

// Update records the robots of a detection frame.
func (v *Vision) Update(w *sslvision.SSL_WrapperPacket) {
	if w.Detection == nil {
		return
	}
	now := v.now()
	v.lock.Lock()
	defer v.lock.Unlock()
	v.frames++
	v.record(wire.TeamBlue, w.Detection.RobotsBlue, now)
	v.record(wire.TeamYellow, w.Detection.RobotsYellow, now)
}

func (v *Vision) record(team wire.Team, robots []*sslvision.SSL_DetectionRobot, now time.Time) {
	for _, r := range robots {
		id, ok := r.GetRobotId()
		if !ok || id >= wire.MaxRobots {
			continue
		}
		v.poses[visionKey{team: team, id: uint8(id)}] = detectedPose{
			pos: wire.Position{
				X:     int16(int64(r.GetX())),
				Y:     int16(int64(r.GetY())),
				Theta: convertRad(normalizeAngle(r.GetOrientation())),
			},
			seen: now,
		}
	}
}

// Pose returns the latest pose of a robot which isn't expired.
func (v *Vision) Pose(team wire.Team, id uint8) (wire.Position, bool) {
	v.lock.Lock()
	defer v.lock.Unlock()
	p, ok := v.poses[visionKey{team: team, id: id}]
	if !ok || (v.Expiry > 0 && v.now().Sub(p.seen) > v.Expiry) {
		return wire.Position{}, false
	}
	return p.pos, true
}

// Frames returns the number of detection frames and undecodable datagrams.
func (v *Vision) Frames() (frames, failures uint64) {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.frames, v.failures
}

// Prepare attaches the vision pose as robot_position, it is used as
// Scheduler.Prepare.
func (v *Vision) Prepare(cmd *wire.BasestationToRobot) {
	if pos, ok := v.Pose(cmd.Team, cmd.ID); ok {
		cmd.RobotPosition = &pos
	}
}

func normalizeAngle(rad float32) float32 {
	r := math.Mod(float64(rad), 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return float32(r)
}
