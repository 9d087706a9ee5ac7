package basestation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/radio"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// Default radio timing of one slot.
var (
	DefaultSendTimeout    = radio.Milliseconds(10)
	DefaultReceiveTimeout = radio.Milliseconds(4)
)

// DefaultPollGuard bounds a busy poll when the transceiver never raises
// the expected interrupt.
const DefaultPollGuard = 50 * time.Millisecond

var errPollGuard = errors.New("transceiver did not respond")

// CycleStats counts the outcomes of one scheduling cycle.
type CycleStats struct {
	Sent            int
	SendTimeouts    int
	Replies         int
	CorruptReplies  int
	DecodeFailures  int
	InvalidIDs      int
	ReceiveTimeouts int
	EncodeFailures  int
	RadioErrors     int
}

// Add accumulates s2 into s.
func (s *CycleStats) Add(s2 CycleStats) {
	s.Sent += s2.Sent
	s.SendTimeouts += s2.SendTimeouts
	s.Replies += s2.Replies
	s.CorruptReplies += s2.CorruptReplies
	s.DecodeFailures += s2.DecodeFailures
	s.InvalidIDs += s2.InvalidIDs
	s.ReceiveTimeouts += s2.ReceiveTimeouts
	s.EncodeFailures += s2.EncodeFailures
	s.RadioErrors += s2.RadioErrors
}

func (s CycleStats) String() string {
	return fmt.Sprintf("sent=%d tx-timeout=%d replies=%d corrupt=%d undecodable=%d invalid-id=%d rx-timeout=%d",
		s.Sent, s.SendTimeouts, s.Replies, s.CorruptReplies, s.DecodeFailures, s.InvalidIDs, s.ReceiveTimeouts)
}

// Scheduler performs the radio transactions of the pending commands.
// A transaction transmits one command and waits for one reply. Slots are
// served in id order and every command is transmitted exactly once.
type Scheduler struct {
	Radio          radio.Transceiver
	Table          *StateTable
	SendTimeout    radio.Timeout
	ReceiveTimeout radio.Timeout
	PollGuard      time.Duration
	// Prepare is called with every command before it is encoded.
	Prepare func(*wire.BasestationToRobot)

	frontEnd *radio.FrontEnd
	amp      radio.SleepAmp
}

// NewScheduler creates a Scheduler and puts the amplifier to sleep.
func NewScheduler(tr radio.Transceiver, fe *radio.FrontEnd, table *StateTable) (*Scheduler, error) {
	amp, err := fe.Init()
	if err != nil {
		return nil, fmt.Errorf("init front-end: %w", err)
	}
	return &Scheduler{
		Radio:          tr,
		Table:          table,
		SendTimeout:    DefaultSendTimeout,
		ReceiveTimeout: DefaultReceiveTimeout,
		PollGuard:      DefaultPollGuard,
		frontEnd:       fe,
		amp:            amp,
	}, nil
}

// RunCycle serves all slots once.
func (s *Scheduler) RunCycle(ctx context.Context) (stats CycleStats) {
	for id := uint8(0); id < wire.MaxRobots; id++ {
		if ctx.Err() != nil {
			break
		}
		cmd, ok := s.Table.TakeCommand(id)
		if !ok {
			continue
		}
		s.transact(ctx, &cmd, &stats)
	}
	if stats != (CycleStats{}) {
		glog.V(1).Infof("radio cycle: %s", stats)
	}
	return
}

func (s *Scheduler) transact(ctx context.Context, cmd *wire.BasestationToRobot, stats *CycleStats) {
	start := time.Now()
	if s.Prepare != nil {
		s.Prepare(cmd)
	}
	payload, err := wire.EncodeCommand(cmd)
	if err != nil {
		glog.Warningf("Failed to serialize command for robot %d: %v", cmd.ID, err)
		stats.EncodeFailures++
		return
	}
	syncWord, ok := wire.SyncWord(cmd.Team, cmd.ID)
	if !ok {
		stats.EncodeFailures++
		return
	}
	if err := s.Radio.SetSyncWord1(syncWord); err != nil {
		s.radioError("set sync word", err, stats)
		return
	}

	tx, err := s.amp.TransmitHighPower()
	if err != nil {
		s.ampError(err, stats)
		return
	}
	if err := s.send(ctx, payload, stats); err != nil {
		s.radioError("send", err, stats)
		if s.amp, err = tx.Sleep(); err != nil {
			s.ampError(err, stats)
		}
		return
	}

	rx, err := tx.ReceiveLNA()
	if err != nil {
		s.ampError(err, stats)
		return
	}
	if err := s.receive(ctx, start, stats); err != nil {
		s.radioError("receive", err, stats)
	}

	if s.amp, err = rx.Sleep(); err != nil {
		s.ampError(err, stats)
	}
}

func (s *Scheduler) send(ctx context.Context, payload []byte, stats *CycleStats) error {
	if err := s.Radio.ClearIrqStatus(); err != nil {
		return err
	}
	if err := s.Radio.SendPacket(payload, s.SendTimeout); err != nil {
		return err
	}
	irq, err := s.poll(ctx, s.SendTimeout, radio.IrqTxDone, radio.IrqRxTxTimeout)
	if err != nil {
		return err
	}
	if irq.IsSet(radio.IrqTxDone) {
		stats.Sent++
		return nil
	}
	glog.Warning("Packet sending timed out")
	stats.SendTimeouts++
	return nil
}

func (s *Scheduler) receive(ctx context.Context, start time.Time, stats *CycleStats) error {
	if err := s.Radio.ClearIrqStatus(); err != nil {
		return err
	}
	if err := s.Radio.StartReceivePacket(radio.MaxPacketSize, s.ReceiveTimeout); err != nil {
		return err
	}
	irq, err := s.poll(ctx, s.ReceiveTimeout, radio.IrqRxDone, radio.IrqRxTxTimeout)
	if err != nil {
		return err
	}
	if !irq.IsSet(radio.IrqRxDone) {
		glog.V(2).Info("Timeout while waiting for packet")
		stats.ReceiveTimeouts++
		return nil
	}
	status, err := s.Radio.PacketStatus()
	if err != nil {
		return err
	}
	if status.Errors.Corrupted() {
		glog.Warningf("CRC error: %s", status.Errors)
		stats.CorruptReplies++
		return nil
	}
	data, err := s.Radio.ReadPacket()
	if err != nil {
		return err
	}
	fb, err := wire.DecodeFeedback(data)
	if err != nil {
		glog.Warningf("Failed to deserialize packet: %v", err)
		stats.DecodeFailures++
		return nil
	}
	rtt := uint32(time.Since(start) / time.Microsecond)
	if !s.Table.RecordFeedback(fb, status.Rssi, rtt) {
		glog.Warningf("Got invalid robot id %d", fb.ID)
		stats.InvalidIDs++
		return nil
	}
	stats.Replies++
	return nil
}

// poll busy-polls the interrupt status until any of bits is raised.
// The transceiver enforces timeout; the software guard only covers a
// transceiver which stopped responding.
func (s *Scheduler) poll(ctx context.Context, timeout radio.Timeout, bits ...radio.IrqBit) (radio.IrqStatus, error) {
	guard := s.PollGuard
	if guard <= 0 {
		guard = DefaultPollGuard
	}
	deadline := time.Now().Add(timeout.Duration() + guard)
	for {
		irq, err := s.Radio.IrqStatus()
		if err != nil {
			return 0, err
		}
		if irq.Any(bits...) {
			return irq, nil
		}
		if err := ctx.Err(); err != nil {
			return irq, err
		}
		if time.Now().After(deadline) {
			return irq, errPollGuard
		}
		runtime.Gosched()
	}
}

func (s *Scheduler) radioError(op string, err error, stats *CycleStats) {
	glog.Errorf("radio %s: %v", op, err)
	stats.RadioErrors++
}

// ampError re-initializes the front-end so the next slot starts asleep.
func (s *Scheduler) ampError(err error, stats *CycleStats) {
	glog.Errorf("front-end: %v", err)
	stats.RadioErrors++
	amp, initErr := s.frontEnd.Init()
	if initErr != nil {
		glog.Errorf("front-end init: %v", initErr)
		return
	}
	s.amp = amp
}
