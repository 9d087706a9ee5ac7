package comm

import (
	"context"
	"errors"
	"sync"
)

// PacketReader reads packets in bytes.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter writes packets in bytes.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketReadWriter reads/writes packets in bytes.
type PacketReadWriter interface {
	PacketReader
	PacketWriter
}

// PacketHandler handles a received packet.
// Returning an error stops the Pipe reading the packets.
type PacketHandler interface {
	HandlePacket(ctx context.Context, pkt []byte) error
}

// HandlePacketFunc is func form of PacketHandler.
type HandlePacketFunc func(ctx context.Context, pkt []byte) error

// HandlePacket implements PacketHandler.
func (f HandlePacketFunc) HandlePacket(ctx context.Context, pkt []byte) error {
	return f(ctx, pkt)
}

// WriterMux writes every packet to all Writers.
type WriterMux struct {
	writers []PacketWriter
	lock    sync.RWMutex
}

// Add adds more writers.
func (m *WriterMux) Add(writers ...PacketWriter) {
	m.lock.Lock()
	m.writers = append(m.writers, writers...)
	m.lock.Unlock()
}

// Len returns the number of writers.
func (m *WriterMux) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.writers)
}

// WritePacket implements PacketWriter.
// A failed writer doesn't prevent the packet from going to the others.
func (m *WriterMux) WritePacket(pkt []byte) error {
	m.lock.RLock()
	writers := m.writers
	m.lock.RUnlock()
	var errs []error
	for _, w := range writers {
		if err := w.WritePacket(pkt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
