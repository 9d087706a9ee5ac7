package udp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerRepliesToLastPeer(t *testing.T) {
	s, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, ErrNoPeer, s.WritePacket([]byte{1}))

	c1, err := Dial(s.LocalAddr().String())
	require.NoError(t, err)
	defer c1.Close()
	c2, err := Dial(s.LocalAddr().String())
	require.NoError(t, err)
	defer c2.Close()

	require.NoError(t, c1.WritePacket([]byte{1, 2}))
	pkt, err := s.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, pkt)
	require.Equal(t, c1.LocalAddr().String(), s.Peer().String())

	require.NoError(t, c2.WritePacket([]byte{3}))
	pkt, err = s.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{3}, pkt)

	require.NoError(t, s.WritePacket([]byte{4, 5, 6}))
	pkt, err = c2.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{4, 5, 6}, pkt)
}
