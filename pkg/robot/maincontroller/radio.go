package maincontroller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/observable"
	"github.com/robotalks/soccer.go/pkg/radio"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// Radio defaults.
var (
	DefaultReceiveWindow = radio.Milliseconds(50)
	DefaultReplyTimeout  = radio.Milliseconds(5)
)

const (
	// DefaultPollInterval is the interval of interrupt status polls.
	DefaultPollInterval = 100 * time.Microsecond
	// MaxReplySize is the size of the reply buffer.
	MaxReplySize = 24
	// maxReceiveSize is the size of the receive buffer.
	maxReceiveSize = 32
)

var errReceiveTimeout = errors.New("receive timeout")

// Radio answers the basestation.
//
// Every received command is answered before it is applied. When no command
// arrives within ReceiveWindow all actuators are stopped and the receiver
// waits without timeout until the next command.
type Radio struct {
	Transceiver   radio.Transceiver
	Signals       *Signals
	Team          wire.Team
	ReceiveWindow radio.Timeout
	ReplyTimeout  radio.Timeout
	PollInterval  time.Duration

	frontEnd *radio.FrontEnd
	amp      radio.SleepAmp
	timedOut bool
}

// NewRadio creates a Radio of the blue team.
func NewRadio(tr radio.Transceiver, fe *radio.FrontEnd, signals *Signals) *Radio {
	return &Radio{
		Transceiver:   tr,
		Signals:       signals,
		Team:          wire.TeamBlue,
		ReceiveWindow: DefaultReceiveWindow,
		ReplyTimeout:  DefaultReplyTimeout,
		PollInterval:  DefaultPollInterval,
		frontEnd:      fe,
	}
}

// Run implements Runnable.
// Only transceiver and front-end failures stop the loop.
func (r *Radio) Run(ctx context.Context) error {
	amp, err := r.frontEnd.Init()
	if err != nil {
		return fmt.Errorf("init front-end: %w", err)
	}
	r.amp = amp
	idSub, err := r.Signals.Config.ID.Subscribe()
	if err != nil {
		return fmt.Errorf("id subscriber: %w", err)
	}
	defer idSub.Close()
	freqSub, err := r.Signals.Config.RFFrequency.Subscribe()
	if err != nil {
		return fmt.Errorf("frequency subscriber: %w", err)
	}
	defer freqSub.Close()

	glog.Info("Starting radio loop")
	for {
		r.configure(idSub, freqSub)
		if err := r.serve(ctx); err != nil {
			return err
		}
	}
}

// configure applies id and frequency changes before the next receive.
func (r *Radio) configure(idSub *observable.Subscriber[uint8], freqSub *observable.Subscriber[uint32]) {
	if mhz, ok := freqSub.TryNext(); ok {
		glog.V(1).Infof("setting frequency %dMHz", mhz)
		if err := r.Transceiver.SetFrequency(mhz); err != nil {
			glog.Errorf("couldn't set new frequency: %v", err)
		}
	}
	if id, ok := idSub.TryNext(); ok {
		word, valid := wire.SyncWord(r.Team, id)
		if !valid {
			glog.Errorf("invalid robot id %d", id)
			return
		}
		glog.V(1).Infof("setting sync word of robot %d", id)
		if err := r.Transceiver.SetSyncWord1(word); err != nil {
			glog.Errorf("couldn't set new sync word: %v", err)
		}
	}
}

// serve waits for one command, replies and applies it.
func (r *Radio) serve(ctx context.Context) error {
	rx, err := r.amp.ReceiveLNA()
	if err != nil {
		return err
	}
	window := r.ReceiveWindow
	if r.timedOut {
		window = radio.Timeout{}
	}
	status, err := r.receive(ctx, window)
	if err != nil {
		if r.amp, err = r.sleep(rx, err); err != nil {
			return err
		}
		return nil
	}
	r.timedOut = false

	reply := r.Signals.Feedback(r.Team, status.Rssi)
	data, err := wire.EncodeFeedback(&reply)
	if err == nil && len(data) > MaxReplySize {
		err = fmt.Errorf("reply of %d bytes exceeds %d", len(data), MaxReplySize)
	}
	if err != nil {
		glog.Errorf("couldn't encode feedback: %v", err)
		r.amp, err = rx.Sleep()
		return err
	}

	tx, err := rx.TransmitHighPower()
	if err != nil {
		return err
	}
	if err := r.reply(ctx, data); err != nil {
		return err
	}
	if r.amp, err = tx.Sleep(); err != nil {
		return err
	}

	pkt, err := r.Transceiver.ReadPacket()
	if err != nil {
		return fmt.Errorf("read packet: %w", err)
	}
	cmd, err := wire.DecodeCommand(pkt)
	if err != nil {
		glog.Errorf("couldn't decode packet from basestation: %v", err)
		return nil
	}
	r.Signals.Apply(&cmd)
	return nil
}

// sleep puts the amplifier to sleep after a failed receive. Timeouts and
// corrupted packets are not fatal.
func (r *Radio) sleep(rx radio.ReceiveAmp, cause error) (radio.SleepAmp, error) {
	var pktErr *packetError
	switch {
	case errors.Is(cause, errReceiveTimeout):
		glog.Warning("timeout while receiving packet")
		r.Signals.Stop()
		r.timedOut = true
	case errors.As(cause, &pktErr):
		glog.Errorf("rf packet error: %s", pktErr.errors)
	default:
		amp, _ := rx.Sleep()
		return amp, cause
	}
	return rx.Sleep()
}

type packetError struct {
	errors radio.PacketErrors
}

func (e *packetError) Error() string {
	return "packet error: " + e.errors.String()
}

func (r *Radio) receive(ctx context.Context, window radio.Timeout) (radio.PacketStatus, error) {
	if err := r.Transceiver.ClearIrqStatus(); err != nil {
		return radio.PacketStatus{}, err
	}
	if err := r.Transceiver.StartReceivePacket(maxReceiveSize, window); err != nil {
		return radio.PacketStatus{}, fmt.Errorf("start receive: %w", err)
	}
	irq, err := r.wait(ctx, radio.IrqRxDone, radio.IrqRxTxTimeout)
	if err != nil {
		return radio.PacketStatus{}, err
	}
	if irq.IsSet(radio.IrqRxTxTimeout) {
		return radio.PacketStatus{}, errReceiveTimeout
	}
	status, err := r.Transceiver.PacketStatus()
	if err != nil {
		return status, fmt.Errorf("packet status: %w", err)
	}
	if status.Errors.Sync || status.Errors.Corrupted() {
		return status, &packetError{errors: status.Errors}
	}
	return status, nil
}

func (r *Radio) reply(ctx context.Context, data []byte) error {
	if err := r.Transceiver.ClearIrqStatus(); err != nil {
		return err
	}
	if err := r.Transceiver.SendPacket(data, r.ReplyTimeout); err != nil {
		return fmt.Errorf("send packet: %w", err)
	}
	irq, err := r.wait(ctx, radio.IrqTxDone, radio.IrqRxTxTimeout)
	if err != nil {
		return err
	}
	if !irq.IsSet(radio.IrqTxDone) {
		glog.Warning("reply timed out")
	}
	return r.Transceiver.ClearIrqStatus()
}

// wait polls the interrupt status until any of bits is raised.
func (r *Radio) wait(ctx context.Context, bits ...radio.IrqBit) (radio.IrqStatus, error) {
	interval := r.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		irq, err := r.Transceiver.IrqStatus()
		if err != nil {
			return 0, fmt.Errorf("irq status: %w", err)
		}
		if irq.Any(bits...) {
			return irq, nil
		}
		select {
		case <-ctx.Done():
			return irq, ctx.Err()
		case <-ticker.C:
		}
	}
}

func logUnsupported(what string) {
	glog.Errorf("%s not implemented yet", what)
}
