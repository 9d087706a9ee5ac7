package udp

import (
	"errors"
	"net"
)

// ErrReadOnly is returned when writing to a Multicast listener.
var ErrReadOnly = errors.New("multicast listener is read-only")

// DefaultVisionAddr is the multicast group of the vision system.
const DefaultVisionAddr = "224.5.23.2:10006"

// Multicast receives datagrams sent to a multicast group.
// It is read-only, WritePacket is not supported.
type Multicast struct {
	conn *net.UDPConn
	buf  []byte
}

// ListenMulticast joins the multicast group on the default interface.
func ListenMulticast(addr string) (*Multicast, error) {
	gaddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenMulticastUDP("udp", nil, gaddr)
	if err != nil {
		return nil, err
	}
	conn.SetReadBuffer(1 << 20)
	return &Multicast{conn: conn, buf: make([]byte, 1<<16)}, nil
}

// ReadPacket implements PacketReader.
func (m *Multicast) ReadPacket() ([]byte, error) {
	n, _, err := m.conn.ReadFromUDP(m.buf)
	if err != nil {
		return nil, err
	}
	pkt := make([]byte, n)
	copy(pkt, m.buf[:n])
	return pkt, nil
}

// WritePacket implements PacketWriter.
func (m *Multicast) WritePacket([]byte) error {
	return ErrReadOnly
}

// Close implements io.Closer.
func (m *Multicast) Close() error {
	return m.conn.Close()
}
