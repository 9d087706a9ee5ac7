package telemetry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/soccer.go/pkg/proto/luhsoccer"
)

func feedback(seq uint32, ids ...uint32) *luhsoccer.FromBasestationWrapper {
	w := &luhsoccer.FromBasestationWrapper{SeqId: seq}
	for _, id := range ids {
		w.Packets = append(w.Packets, &luhsoccer.FromBasestationPacket{
			Id:              id,
			TeamColor:       luhsoccer.TeamColor_YELLOW,
			BatteryVoltage:  16.4,
			HasBall:         id == 3,
			RssiRobot:       -40,
			RssiBasestation: -60,
			MeasuredRtt:     1200,
		})
	}
	return w
}

func TestRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.db")
	r, err := Open(path)
	require.NoError(t, err)
	now := time.Unix(1700000000, 0)
	r.now = func() time.Time { return now }

	require.NoError(t, r.Record(feedback(1, 3, 5)))
	now = now.Add(time.Second)
	require.NoError(t, r.Record(feedback(2, 3)))
	require.NoError(t, r.Record(feedback(3)))
	require.EqualValues(t, 3, r.Rows())

	summary, err := r.Summary()
	require.NoError(t, err)
	require.Len(t, summary, 2)
	require.Equal(t, "YELLOW", summary[0].Team)
	require.EqualValues(t, 3, summary[0].Robot)
	require.EqualValues(t, 2, summary[0].Packets)
	require.Equal(t, now, summary[0].LastSeenTime())
	require.InDelta(t, -40, summary[0].RssiRobot, 1e-9)
	require.InDelta(t, 1200, summary[0].Rtt, 1e-9)
	require.EqualValues(t, 1, summary[1].Packets)
	require.Contains(t, summary[0].String(), "2 packets")

	rows, err := r.Feedback("YELLOW", 3)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.EqualValues(t, 1, rows[0].Seq)
	require.True(t, rows[1].HasBall)
	require.Equal(t, r.Session, rows[1].Session)
	require.NoError(t, r.Close())

	// a new session starts empty on the same database
	r2, err := Open(path)
	require.NoError(t, err)
	defer r2.Close()
	require.NotEqual(t, r.Session, r2.Session)
	summary, err = r2.Summary()
	require.NoError(t, err)
	require.Empty(t, summary)
	summary, err = r2.SessionSummary(r.Session)
	require.NoError(t, err)
	require.Len(t, summary, 2)
}
