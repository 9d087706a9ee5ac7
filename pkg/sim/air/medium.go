// Package air simulates the 2.4 GHz radio channel shared by the
// basestation and the robots.
package air

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/radio"
)

// Medium defaults.
const (
	// DefaultAirtime is how long a packet stays receivable after it was
	// sent, so a receiver starting shortly after the sender still gets it.
	DefaultAirtime = 2 * time.Millisecond
	// DefaultRssi in dBm.
	DefaultRssi = -60
)

type packet struct {
	freq      uint32
	syncWord  uint32
	data      []byte
	sender    *Transceiver
	sent      time.Time
	delivered map[*Transceiver]bool
}

// Medium delivers packets between the transceivers created from it. A
// packet reaches every other transceiver which is receiving on the same
// frequency with the same sync word.
type Medium struct {
	Airtime time.Duration
	Rssi    int32
	// LossRate is the probability a packet is lost.
	LossRate float64

	lock         sync.Mutex
	transceivers []*Transceiver
	onAir        []*packet
	now          func() time.Time
}

// NewMedium creates a lossless Medium.
func NewMedium() *Medium {
	return &Medium{
		Airtime: DefaultAirtime,
		Rssi:    DefaultRssi,
		now:     time.Now,
	}
}

// NewTransceiver attaches a transceiver to the medium.
func (m *Medium) NewTransceiver(name string) *Transceiver {
	t := &Transceiver{medium: m, name: name}
	m.lock.Lock()
	m.transceivers = append(m.transceivers, t)
	m.lock.Unlock()
	return t
}

func (m *Medium) transmitLocked(p *packet) {
	m.expireLocked(p.sent)
	if m.LossRate > 0 && rand.Float64() < m.LossRate {
		glog.V(2).Infof("air: packet from %s lost", p.sender.name)
		return
	}
	for _, t := range m.transceivers {
		if t != p.sender {
			t.offerLocked(p)
		}
	}
	m.onAir = append(m.onAir, p)
}

// expireLocked removes the packets whose airtime passed.
func (m *Medium) expireLocked(now time.Time) {
	n := 0
	for _, p := range m.onAir {
		if now.Sub(p.sent) <= m.Airtime {
			m.onAir[n] = p
			n++
		}
	}
	for i := n; i < len(m.onAir); i++ {
		m.onAir[i] = nil
	}
	m.onAir = m.onAir[:n]
}

// Transceiver is a simulated radio.Transceiver with the timeout semantics
// of the hardware: a receive with a timeout raises RxTxTimeout when no
// packet arrived within the window, a receive without timeout waits for
// one packet.
type Transceiver struct {
	medium *Medium
	name   string

	// guarded by medium.lock
	syncWord  uint32
	freq      uint32
	receiving bool
	maxLen    uint8
	deadline  time.Time
	irq       radio.IrqStatus
	status    radio.PacketStatus
	packet    []byte
}

// SetSyncWord1 implements radio.Transceiver.
func (t *Transceiver) SetSyncWord1(word uint32) error {
	t.medium.lock.Lock()
	t.syncWord = word
	t.medium.lock.Unlock()
	return nil
}

// SetFrequency implements radio.Transceiver.
func (t *Transceiver) SetFrequency(mhz uint32) error {
	t.medium.lock.Lock()
	t.freq = mhz
	t.medium.lock.Unlock()
	return nil
}

// SendPacket implements radio.Transceiver. Transmission completes at once.
func (t *Transceiver) SendPacket(data []byte, timeout radio.Timeout) error {
	if len(data) > radio.MaxPacketSize {
		return fmt.Errorf("packet of %d bytes exceeds %d", len(data), radio.MaxPacketSize)
	}
	m := t.medium
	m.lock.Lock()
	defer m.lock.Unlock()
	t.receiving = false
	m.transmitLocked(&packet{
		freq:      t.freq,
		syncWord:  t.syncWord,
		data:      append([]byte(nil), data...),
		sender:    t,
		sent:      m.now(),
		delivered: make(map[*Transceiver]bool),
	})
	t.irq |= radio.IrqMask(radio.IrqTxDone)
	return nil
}

// StartReceivePacket implements radio.Transceiver. A matching packet still
// on air is received at once.
func (t *Transceiver) StartReceivePacket(maxLen uint8, timeout radio.Timeout) error {
	m := t.medium
	m.lock.Lock()
	defer m.lock.Unlock()
	now := m.now()
	t.receiving, t.maxLen, t.deadline = true, maxLen, time.Time{}
	if d := timeout.Duration(); d > 0 {
		t.deadline = now.Add(d)
	}
	m.expireLocked(now)
	for _, p := range m.onAir {
		if p.sender != t && t.offerLocked(p) {
			break
		}
	}
	return nil
}

// offerLocked receives p if t is listening for it.
func (t *Transceiver) offerLocked(p *packet) bool {
	if !t.receiving || p.delivered[t] || p.freq != t.freq || p.syncWord != t.syncWord {
		return false
	}
	if !t.deadline.IsZero() && p.sent.After(t.deadline) {
		return false
	}
	p.delivered[t] = true
	t.receiving = false
	t.status = radio.PacketStatus{Rssi: t.medium.Rssi}
	if len(p.data) > int(t.maxLen) {
		t.status.Errors.Length = true
		t.packet = nil
	} else {
		t.packet = p.data
	}
	t.status.Errors.PacketReceived = true
	t.irq |= radio.IrqMask(radio.IrqSyncWordValid, radio.IrqRxDone)
	return true
}

// IrqStatus implements radio.Transceiver.
func (t *Transceiver) IrqStatus() (radio.IrqStatus, error) {
	m := t.medium
	m.lock.Lock()
	defer m.lock.Unlock()
	if t.receiving && !t.deadline.IsZero() && m.now().After(t.deadline) {
		t.receiving = false
		t.irq |= radio.IrqMask(radio.IrqRxTxTimeout)
	}
	return t.irq, nil
}

// ClearIrqStatus implements radio.Transceiver.
func (t *Transceiver) ClearIrqStatus() error {
	t.medium.lock.Lock()
	t.irq = 0
	t.medium.lock.Unlock()
	return nil
}

// PacketStatus implements radio.Transceiver.
func (t *Transceiver) PacketStatus() (radio.PacketStatus, error) {
	t.medium.lock.Lock()
	defer t.medium.lock.Unlock()
	return t.status, nil
}

// ReadPacket implements radio.Transceiver.
func (t *Transceiver) ReadPacket() ([]byte, error) {
	t.medium.lock.Lock()
	defer t.medium.lock.Unlock()
	return append([]byte(nil), t.packet...), nil
}

// Receiving tells whether the transceiver is listening.
func (t *Transceiver) Receiving() bool {
	t.medium.lock.Lock()
	defer t.medium.lock.Unlock()
	return t.receiving
}

func (t *Transceiver) String() string {
	return t.name
}
