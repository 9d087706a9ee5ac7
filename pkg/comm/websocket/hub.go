package websocket

import (
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"
)

// Hub accepts websocket clients and broadcasts every written packet to
// all of them. Clients failing a write are dropped.
type Hub struct {
	conns map[*ReadWriter]chan struct{}
	lock  sync.Mutex
}

// NewHub creates a Hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*ReadWriter]chan struct{})}
}

// Handler returns the http.Handler accepting clients.
func (h *Hub) Handler() http.Handler {
	return websocket.Handler(h.serve)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.conns)
}

// WritePacket implements PacketWriter.
func (h *Hub) WritePacket(pkt []byte) error {
	h.lock.Lock()
	conns := make([]*ReadWriter, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.lock.Unlock()
	for _, conn := range conns {
		if err := conn.WritePacket(pkt); err != nil {
			glog.V(1).Infof("websocket client %s dropped: %v", (*websocket.Conn)(conn).Request().RemoteAddr, err)
			h.remove(conn)
		}
	}
	return nil
}

// Close disconnects all clients.
func (h *Hub) Close() error {
	h.lock.Lock()
	conns := h.conns
	h.conns = make(map[*ReadWriter]chan struct{})
	h.lock.Unlock()
	for conn, done := range conns {
		conn.Close()
		close(done)
	}
	return nil
}

func (h *Hub) remove(conn *ReadWriter) {
	h.lock.Lock()
	done, ok := h.conns[conn]
	delete(h.conns, conn)
	h.lock.Unlock()
	if ok {
		conn.Close()
		close(done)
	}
}

func (h *Hub) serve(ws *websocket.Conn) {
	ws.PayloadType = websocket.BinaryFrame
	conn, done := New(ws), make(chan struct{})
	h.lock.Lock()
	h.conns[conn] = done
	h.lock.Unlock()
	glog.V(1).Infof("websocket client %s connected", ws.Request().RemoteAddr)
	go func() {
		// drain until the client goes away
		for {
			if _, err := conn.ReadPacket(); err != nil {
				h.remove(conn)
				return
			}
		}
	}()
	<-done
}
