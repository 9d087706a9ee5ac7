package basestation

import (
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/proto/luhsoccer"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// Feedback is a reply received from a robot.
type Feedback struct {
	Packet wire.RobotToBasestation
	// Rssi is the signal strength measured by the basestation in dBm.
	Rssi int32
	// RTT is the time from the start of the transmission to the reply in us.
	RTT uint32
}

// StateTable keeps one pending command and one feedback per robot slot.
// Updates overwrite, nothing is queued.
type StateTable struct {
	lock     sync.Mutex
	seqID    uint32
	commands [wire.MaxRobots]*wire.BasestationToRobot
	feedback [wire.MaxRobots]*Feedback
}

// NewStateTable creates an empty StateTable.
func NewStateTable() *StateTable {
	return &StateTable{}
}

// UpdateFromNetwork stores every valid command of w into the slot of its
// robot id and returns the number of stored commands.
func (t *StateTable) UpdateFromNetwork(w *luhsoccer.ToBasestationWrapper) int {
	if w == nil {
		return 0
	}
	var stored int
	for _, pkt := range w.Packets {
		if pkt != nil && pkt.Id >= wire.MaxRobots {
			glog.Warningf("Invalid robot id %d", pkt.Id)
			continue
		}
		cmd, ok := DecodeCommand(pkt)
		if !ok {
			glog.Warningf("Failed to parse packet: %v", pkt)
			continue
		}
		t.Store(cmd)
		stored++
	}
	return stored
}

// Store overwrites the slot of cmd.ID. Commands for ids out of range are
// dropped and false is returned.
func (t *StateTable) Store(cmd wire.BasestationToRobot) bool {
	if cmd.ID >= wire.MaxRobots {
		return false
	}
	t.lock.Lock()
	t.commands[cmd.ID] = &cmd
	t.lock.Unlock()
	return true
}

// TakeCommand removes and returns the pending command of slot id.
func (t *StateTable) TakeCommand(id uint8) (wire.BasestationToRobot, bool) {
	if id >= wire.MaxRobots {
		return wire.BasestationToRobot{}, false
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	cmd := t.commands[id]
	if cmd == nil {
		return wire.BasestationToRobot{}, false
	}
	t.commands[id] = nil
	return *cmd, true
}

// HasPending tells whether any slot holds a command.
func (t *StateTable) HasPending() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	for _, cmd := range t.commands {
		if cmd != nil {
			return true
		}
	}
	return false
}

// Pending returns a copy of the pending commands indexed by slot.
func (t *StateTable) Pending() map[uint8]wire.BasestationToRobot {
	t.lock.Lock()
	defer t.lock.Unlock()
	pending := make(map[uint8]wire.BasestationToRobot)
	for id, cmd := range t.commands {
		if cmd != nil {
			pending[uint8(id)] = *cmd
		}
	}
	return pending
}

// RecordFeedback stores fb into the slot of the sender id.
func (t *StateTable) RecordFeedback(fb wire.RobotToBasestation, rssi int32, rtt uint32) bool {
	if fb.ID >= wire.MaxRobots {
		return false
	}
	t.lock.Lock()
	t.feedback[fb.ID] = &Feedback{Packet: fb, Rssi: rssi, RTT: rtt}
	t.lock.Unlock()
	return true
}

// TakeAllFeedback drains all feedback into one aggregate.
// The sequence id is incremented on every call, the returned flag tells
// whether the aggregate carries any feedback.
func (t *StateTable) TakeAllFeedback() (bool, *luhsoccer.FromBasestationWrapper) {
	w := &luhsoccer.FromBasestationWrapper{
		FirmwareVersion: &luhsoccer.FirmwareVersion{},
	}
	t.lock.Lock()
	for id, fb := range t.feedback {
		if fb == nil {
			continue
		}
		t.feedback[id] = nil
		w.Packets = append(w.Packets, EncodeFeedback(&fb.Packet, fb.Rssi, fb.RTT))
	}
	t.seqID++
	w.SeqId = t.seqID
	t.lock.Unlock()
	return len(w.Packets) > 0, w
}

// SeqID returns the sequence id of the last aggregate.
func (t *StateTable) SeqID() uint32 {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.seqID
}
