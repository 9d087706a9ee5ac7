package mqtt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang/glog"
)

// Info describes a running basestation.
type Info struct {
	ID       string    `json:"id"`
	Hostname string    `json:"hostname"`
	Firmware string    `json:"firmware"`
	Started  time.Time `json:"started"`
}

// Presence owns a Queue and keeps a retained Info on MetaTopic while
// connected. The broker clears it when the connection is lost.
type Presence struct {
	Queue *Queue
	Info  Info

	metaJSON []byte
}

// NewPresence creates a Presence connecting to brokerURL.
// The Info.ID is used as client id unless the URL specifies one.
func NewPresence(brokerURL string, info Info) (*Presence, error) {
	meta, err := json.Marshal(&info)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+MetaTopic, nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID(info.ID)
	}
	p := &Presence{
		Queue:    NewQueue(opts, topicPrefix),
		Info:     info,
		metaJSON: meta,
	}
	p.Queue.OnConnect = func(*Queue) { p.onConnected() }
	return p, nil
}

// Run implements Runnable.
func (p *Presence) Run(ctx context.Context) error {
	// auto reconnect takes over after the first attempt.
	if token := p.Queue.Connect(); token.Wait() && token.Error() != nil {
		glog.Errorf("MQTT connect: %v", token.Error())
	}
	<-ctx.Done()
	p.Queue.PubWith(MetaTopic, nil, 1, true).WaitTimeout(time.Second)
	p.Queue.Close()
	return ctx.Err()
}

func (p *Presence) onConnected() {
	p.Queue.PubWith(MetaTopic, p.metaJSON, 1, true)
}

// ParseInfo decodes a retained Info. An empty payload means absent.
func ParseInfo(payload []byte) (*Info, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var info Info
	if err := json.Unmarshal(payload, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
