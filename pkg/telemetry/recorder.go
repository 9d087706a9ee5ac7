// Package telemetry records robot feedback into a sqlite database, one
// session per basestation run.
package telemetry

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // database/sql driver "sqlite"

	"github.com/robotalks/soccer.go/pkg/proto/luhsoccer"
)

const schema = `CREATE TABLE IF NOT EXISTS sessions (id TEXT NOT NULL PRIMARY KEY, started INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS feedback (session TEXT NOT NULL, seq INTEGER NOT NULL,
 robot INTEGER NOT NULL, team TEXT NOT NULL, battery REAL, kicker REAL, has_ball INTEGER,
 rssi_robot INTEGER, rssi_bs INTEGER, rtt INTEGER, stamp INTEGER NOT NULL);
CREATE INDEX IF NOT EXISTS feedback_robot ON feedback (session, team, robot)`

const insertFeedback = `INSERT INTO feedback (session, seq, robot, team, battery, kicker, has_ball, rssi_robot, rssi_bs, rtt, stamp)
 VALUES (:session, :seq, :robot, :team, :battery, :kicker, :has_ball, :rssi_robot, :rssi_bs, :rtt, :stamp)`

const selectSummary = `SELECT team, robot, COUNT(*) AS packets, MAX(stamp) AS last_seen,
 AVG(rssi_robot) AS rssi_robot, AVG(rtt) AS rtt
 FROM feedback WHERE session = ? GROUP BY team, robot ORDER BY team, robot`

// Row is one recorded feedback packet.
type Row struct {
	Session   string  `db:"session"`
	Seq       uint32  `db:"seq"`
	Robot     uint32  `db:"robot"`
	Team      string  `db:"team"`
	Battery   float32 `db:"battery"`
	Kicker    float32 `db:"kicker"`
	HasBall   bool    `db:"has_ball"`
	RssiRobot int32   `db:"rssi_robot"`
	RssiBS    int32   `db:"rssi_bs"`
	Rtt       uint32  `db:"rtt"`
	Stamp     int64   `db:"stamp"`
}

// RobotSummary aggregates the feedback of one robot in a session.
type RobotSummary struct {
	Team      string  `db:"team"`
	Robot     uint32  `db:"robot"`
	Packets   int64   `db:"packets"`
	LastSeen  int64   `db:"last_seen"`
	RssiRobot float64 `db:"rssi_robot"`
	Rtt       float64 `db:"rtt"`
}

// LastSeenTime converts LastSeen.
func (s RobotSummary) LastSeenTime() time.Time {
	return time.Unix(0, s.LastSeen)
}

func (s RobotSummary) String() string {
	return fmt.Sprintf("%s %2d: %s packets, last %s, rssi %.0fdBm, rtt %.0fus",
		s.Team, s.Robot, humanize.Comma(s.Packets), humanize.Time(s.LastSeenTime()), s.RssiRobot, s.Rtt)
}

// Recorder writes feedback aggregates of one session.
type Recorder struct {
	Session string
	Started time.Time

	lock sync.Mutex
	db   *sqlx.DB
	rows uint64
	now  func() time.Time
}

// Open opens or creates the database at path and starts a new session.
func Open(path string) (*Recorder, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// sqlite serializes writers
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	r := &Recorder{
		Session: uuid.NewString(),
		Started: time.Now(),
		db:      db,
		now:     time.Now,
	}
	if _, err := db.Exec(`INSERT INTO sessions (id, started) VALUES (?, ?)`, r.Session, r.Started.UnixNano()); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session: %w", err)
	}
	glog.Infof("Recording feedback to %s, session %s", path, r.Session)
	return r, nil
}

// Record inserts one row per packet of w in a transaction.
func (r *Recorder) Record(w *luhsoccer.FromBasestationWrapper) error {
	if len(w.Packets) == 0 {
		return nil
	}
	stamp := r.now().UnixNano()
	r.lock.Lock()
	defer r.lock.Unlock()
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, pkt := range w.Packets {
		row := Row{
			Session:   r.Session,
			Seq:       w.SeqId,
			Robot:     pkt.Id,
			Team:      pkt.TeamColor.String(),
			Battery:   pkt.BatteryVoltage,
			Kicker:    pkt.KickerVoltage,
			HasBall:   pkt.HasBall,
			RssiRobot: pkt.RssiRobot,
			RssiBS:    pkt.RssiBasestation,
			Rtt:       pkt.MeasuredRtt,
			Stamp:     stamp,
		}
		if _, err := tx.NamedExec(insertFeedback, &row); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert feedback of robot %d: %w", pkt.Id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.rows += uint64(len(w.Packets))
	return nil
}

// HandleFeedback implements basestation.FeedbackSink.
func (r *Recorder) HandleFeedback(w *luhsoccer.FromBasestationWrapper) {
	if err := r.Record(w); err != nil {
		glog.Errorf("telemetry: %v", err)
	}
}

// Rows returns the number of rows written by this Recorder.
func (r *Recorder) Rows() uint64 {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.rows
}

// Summary returns the per robot aggregates of the session.
func (r *Recorder) Summary() ([]RobotSummary, error) {
	return r.SessionSummary(r.Session)
}

// SessionSummary returns the per robot aggregates of any session.
func (r *Recorder) SessionSummary(session string) ([]RobotSummary, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	var res []RobotSummary
	if err := r.db.Select(&res, selectSummary, session); err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return res, nil
}

// Feedback returns the rows of a robot in the session, oldest first.
func (r *Recorder) Feedback(team string, robot uint32) ([]Row, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	var rows []Row
	err := r.db.Select(&rows, `SELECT * FROM feedback WHERE session = ? AND team = ? AND robot = ? ORDER BY stamp, seq`,
		r.Session, team, robot)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	return rows, nil
}

// Close logs the summary and closes the database.
func (r *Recorder) Close() error {
	if summary, err := r.Summary(); err == nil {
		for _, s := range summary {
			glog.Infof("session %s: %s", r.Session, s)
		}
	}
	glog.Infof("session %s: %s rows in %s", r.Session,
		humanize.Comma(int64(r.Rows())), time.Since(r.Started).Round(time.Second))
	return r.db.Close()
}
