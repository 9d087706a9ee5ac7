package basestation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/soccer.go/pkg/proto/luhsoccer"
	"github.com/robotalks/soccer.go/pkg/radio"
	"github.com/robotalks/soccer.go/pkg/wire"
)

type fakeReply struct {
	data      []byte
	rssiSync  byte
	errors    byte
	txTimeout bool
}

type fakeRadio struct {
	t        *testing.T
	pins     *radio.PinLevels
	fe       *radio.FrontEnd
	syncWord uint32
	irq      radio.IrqStatus
	current  *fakeReply
	replies  map[uint32]*fakeReply
	sent     [][]byte
	words    []uint32
	sendErr  error
	silent   bool
}

func newFakeRadio(t *testing.T) *fakeRadio {
	pins := &radio.PinLevels{}
	return &fakeRadio{
		t:       t,
		pins:    pins,
		fe:      radio.NewFrontEnd(pins),
		replies: make(map[uint32]*fakeReply),
	}
}

func (r *fakeRadio) reply(team wire.Team, slot uint8, fb wire.RobotToBasestation) *fakeReply {
	data, err := wire.EncodeFeedback(&fb)
	require.NoError(r.t, err)
	word, _ := wire.SyncWord(team, slot)
	rep := &fakeReply{data: data, rssiSync: 144}
	r.replies[word] = rep
	return rep
}

func (r *fakeRadio) SetSyncWord1(word uint32) error {
	r.syncWord = word
	r.words = append(r.words, word)
	return nil
}

func (r *fakeRadio) SetFrequency(mhz uint32) error { return nil }

func (r *fakeRadio) SendPacket(data []byte, timeout radio.Timeout) error {
	if r.sendErr != nil {
		return r.sendErr
	}
	require.Equal(r.t, radio.ModeTransmitHighPower, r.fe.Mode())
	r.sent = append(r.sent, append([]byte{}, data...))
	if rep := r.replies[r.syncWord]; rep != nil && rep.txTimeout {
		r.irq = radio.IrqMask(radio.IrqRxTxTimeout)
	} else if !r.silent {
		r.irq = radio.IrqMask(radio.IrqTxDone)
	}
	return nil
}

func (r *fakeRadio) StartReceivePacket(maxLen uint8, timeout radio.Timeout) error {
	require.Equal(r.t, radio.ModeReceiveLNA, r.fe.Mode())
	r.current = r.replies[r.syncWord]
	if r.current == nil {
		r.irq = radio.IrqMask(radio.IrqRxTxTimeout)
	} else {
		r.irq = radio.IrqMask(radio.IrqRxDone)
	}
	return nil
}

func (r *fakeRadio) IrqStatus() (radio.IrqStatus, error) { return r.irq, nil }

func (r *fakeRadio) ClearIrqStatus() error {
	r.irq = 0
	return nil
}

func (r *fakeRadio) PacketStatus() (radio.PacketStatus, error) {
	return radio.ParsePacketStatus(r.current.rssiSync, r.current.errors), nil
}

func (r *fakeRadio) ReadPacket() ([]byte, error) {
	return r.current.data, nil
}

func newTestScheduler(t *testing.T) (*Scheduler, *fakeRadio) {
	r := newFakeRadio(t)
	s, err := NewScheduler(r, r.fe, NewStateTable())
	require.NoError(t, err)
	s.PollGuard = 1
	return s, r
}

func (s *Scheduler) update(pkts ...*luhsoccer.ToBasestationPacket) {
	s.Table.UpdateFromNetwork(&luhsoccer.ToBasestationWrapper{Packets: pkts})
}

func feedback(id uint8, forward int16) wire.RobotToBasestation {
	return wire.RobotToBasestation{
		ID:              id,
		BatteryVoltage:  120,
		Rssi:            58,
		Velocity:        &wire.VelocitySelection{Kind: wire.VelocityRobot, RobotVelocity: wire.LocalVelocity{Forward: forward}},
		FirmwareVersion: wire.FirmwareVersion,
	}
}

func TestDriveRoundTrip(t *testing.T) {
	s, r := newTestScheduler(t)
	r.reply(wire.TeamBlue, 3, feedback(3, 1500))
	s.update(drivePacket(3, 1.5))

	stats := s.RunCycle(context.Background())
	require.Equal(t, CycleStats{Sent: 1, Replies: 1}, stats)
	require.Len(t, r.sent, 1)
	cmd, err := wire.DecodeCommand(r.sent[0])
	require.NoError(t, err)
	require.Equal(t, int16(1500), cmd.Movement.RobotVelocity.Forward)
	require.Equal(t, []uint32{wire.RobotBlueSyncWords[3]}, r.words)
	require.Equal(t, radio.ModeSleep, r.fe.Mode())
	require.False(t, s.Table.HasPending())

	has, w := s.Table.TakeAllFeedback()
	require.True(t, has)
	require.Len(t, w.Packets, 1)
	pkt := w.Packets[0]
	require.Equal(t, uint32(3), pkt.Id)
	require.Equal(t, float32(1.5), pkt.LocalVelocity.Forward)
	require.Equal(t, int32(-72), pkt.RssiBasestation)
	require.Equal(t, int32(-58), pkt.RssiRobot)
	require.Equal(t, float32(15), pkt.BatteryVoltage)
}

func TestInvalidSenderID(t *testing.T) {
	s, r := newTestScheduler(t)
	r.reply(wire.TeamBlue, 3, feedback(20, 0))
	s.update(drivePacket(3, 1))
	stats := s.RunCycle(context.Background())
	require.Equal(t, CycleStats{Sent: 1, InvalidIDs: 1}, stats)
	has, _ := s.Table.TakeAllFeedback()
	require.False(t, has)
}

func TestFeedbackKeyedBySender(t *testing.T) {
	s, r := newTestScheduler(t)
	r.reply(wire.TeamBlue, 2, feedback(7, 100))
	s.update(drivePacket(2, 1))
	s.RunCycle(context.Background())
	has, w := s.Table.TakeAllFeedback()
	require.True(t, has)
	require.Len(t, w.Packets, 1)
	require.Equal(t, uint32(7), w.Packets[0].Id)
}

func TestLastWriteWins(t *testing.T) {
	s, r := newTestScheduler(t)
	s.update(drivePacket(4, 1))
	s.update(drivePacket(4, 2))
	stats := s.RunCycle(context.Background())
	require.Equal(t, CycleStats{Sent: 1, ReceiveTimeouts: 1}, stats)
	require.Len(t, r.sent, 1)
	cmd, err := wire.DecodeCommand(r.sent[0])
	require.NoError(t, err)
	require.Equal(t, int16(2000), cmd.Movement.RobotVelocity.Forward)

	stats = s.RunCycle(context.Background())
	require.Equal(t, CycleStats{}, stats)
	require.Len(t, r.sent, 1)
}

func TestSlotOrderAndTeams(t *testing.T) {
	s, r := newTestScheduler(t)
	yellow := drivePacket(1, 1)
	yellow.TeamColor = luhsoccer.TeamColor_YELLOW
	s.update(drivePacket(9, 1), yellow, drivePacket(0, 1))
	stats := s.RunCycle(context.Background())
	require.Equal(t, 3, stats.Sent)
	require.Equal(t, []uint32{
		wire.RobotBlueSyncWords[0],
		wire.RobotYellowSyncWords[1],
		wire.RobotBlueSyncWords[9],
	}, r.words)
}

func TestSendTimeout(t *testing.T) {
	s, r := newTestScheduler(t)
	r.reply(wire.TeamBlue, 1, feedback(1, 0)).txTimeout = true
	r.reply(wire.TeamBlue, 2, feedback(2, 0))
	s.update(drivePacket(1, 1), drivePacket(2, 1))
	stats := s.RunCycle(context.Background())
	require.Equal(t, 1, stats.SendTimeouts)
	require.Equal(t, 1, stats.Sent)
	require.Len(t, r.sent, 2)
	require.False(t, s.Table.HasPending())
	require.Equal(t, radio.ModeSleep, r.fe.Mode())
}

func TestCorruptReply(t *testing.T) {
	s, r := newTestScheduler(t)
	r.reply(wire.TeamBlue, 1, feedback(1, 0)).errors = 0x10
	r.replies[wire.RobotBlueSyncWords[2]] = &fakeReply{data: []byte{0x02, 0x05}}
	s.update(drivePacket(1, 1), drivePacket(2, 1))
	stats := s.RunCycle(context.Background())
	require.Equal(t, CycleStats{Sent: 2, CorruptReplies: 1, DecodeFailures: 1}, stats)
	has, _ := s.Table.TakeAllFeedback()
	require.False(t, has)
}

func TestRadioFailure(t *testing.T) {
	s, r := newTestScheduler(t)
	r.sendErr = errors.New("spi fault")
	s.update(drivePacket(1, 1))
	stats := s.RunCycle(context.Background())
	require.Equal(t, CycleStats{RadioErrors: 1}, stats)
	require.Equal(t, radio.ModeSleep, r.fe.Mode())

	r.sendErr = nil
	s.update(drivePacket(1, 1))
	stats = s.RunCycle(context.Background())
	require.Equal(t, CycleStats{Sent: 1, ReceiveTimeouts: 1}, stats)
}

func TestPollGuard(t *testing.T) {
	s, r := newTestScheduler(t)
	r.silent = true
	s.SendTimeout = radio.Timeout{}
	s.update(drivePacket(1, 1))
	stats := s.RunCycle(context.Background())
	require.Equal(t, 1, stats.RadioErrors)
	require.Equal(t, radio.ModeSleep, r.fe.Mode())
}

func TestPrepareHook(t *testing.T) {
	s, r := newTestScheduler(t)
	s.Prepare = func(cmd *wire.BasestationToRobot) {
		cmd.RobotPosition = &wire.Position{X: 100, Y: -200, Theta: 512}
	}
	s.update(drivePacket(6, 0))
	s.RunCycle(context.Background())
	require.Len(t, r.sent, 1)
	cmd, err := wire.DecodeCommand(r.sent[0])
	require.NoError(t, err)
	require.Equal(t, &wire.Position{X: 100, Y: -200, Theta: 512}, cmd.RobotPosition)
}
