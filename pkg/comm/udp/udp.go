// Package udp carries packets over UDP datagrams.
package udp

import (
	"errors"
	"net"
	"sync"

	"github.com/golang/glog"
)

// DefaultServerPort is the port the basestation listens on for the server.
const DefaultServerPort = 46174

// MaxDatagramSize is the largest datagram read.
const MaxDatagramSize = 2048

// ErrNoPeer indicates nothing has been received yet, so there is nowhere
// to reply to.
var ErrNoPeer = errors.New("no peer")

// Server receives datagrams from any sender and replies to the sender of
// the most recent datagram.
type Server struct {
	conn net.PacketConn
	buf  []byte
	peer net.Addr
	lock sync.Mutex
}

// Listen creates a Server bound to addr, e.g. ":46174".
func Listen(addr string) (*Server, error) {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, err
	}
	return NewServer(conn), nil
}

// NewServer wraps a PacketConn.
func NewServer(conn net.PacketConn) *Server {
	return &Server{conn: conn, buf: make([]byte, MaxDatagramSize)}
}

// LocalAddr returns the bound address.
func (s *Server) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// Peer returns the sender of the most recent datagram, or nil.
func (s *Server) Peer() net.Addr {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.peer
}

// ReadPacket implements PacketReader.
func (s *Server) ReadPacket() ([]byte, error) {
	n, addr, err := s.conn.ReadFrom(s.buf)
	if err != nil {
		return nil, err
	}
	s.lock.Lock()
	if s.peer == nil || s.peer.String() != addr.String() {
		glog.V(1).Infof("UDP peer %s", addr)
	}
	s.peer = addr
	s.lock.Unlock()
	pkt := make([]byte, n)
	copy(pkt, s.buf[:n])
	return pkt, nil
}

// WritePacket implements PacketWriter.
func (s *Server) WritePacket(pkt []byte) error {
	peer := s.Peer()
	if peer == nil {
		return ErrNoPeer
	}
	_, err := s.conn.WriteTo(pkt, peer)
	return err
}

// Close implements io.Closer.
func (s *Server) Close() error {
	return s.conn.Close()
}

// Conn is a PacketReadWriter on a connected UDP socket.
type Conn struct {
	net.Conn
	buf []byte
}

// Dial connects to a UDP address.
func Dial(addr string) (*Conn, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}
	return &Conn{Conn: conn, buf: make([]byte, MaxDatagramSize)}, nil
}

// ReadPacket implements PacketReader.
func (c *Conn) ReadPacket() ([]byte, error) {
	n, err := c.Read(c.buf)
	if err != nil {
		return nil, err
	}
	pkt := make([]byte, n)
	copy(pkt, c.buf[:n])
	return pkt, nil
}

// WritePacket implements PacketWriter.
func (c *Conn) WritePacket(pkt []byte) error {
	_, err := c.Write(pkt)
	return err
}
