package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"os"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/soccer.go/pkg/comm/mqtt"
	"github.com/robotalks/soccer.go/pkg/comm/websocket"
	"github.com/robotalks/soccer.go/pkg/proto/luhsoccer"
)

var (
	mqttURL = "mqtt://localhost:1883/luhbots/"
	wsURL   string
)

func init() {
	if val := os.Getenv("BS_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&wsURL, "ws", wsURL, "Feedback websocket URL, e.g. ws://localhost:8080/feedback, instead of MQTT.")
}

func printFeedback(source string, payload []byte) {
	var w luhsoccer.FromBasestationWrapper
	if err := proto.Unmarshal(payload, &w); err != nil {
		log.Printf("%s: bad feedback: %v", source, err)
		return
	}
	log.Printf("%s: seq %d error %d, %d robots", source, w.SeqId, w.ErrorCode, len(w.Packets))
	for _, p := range w.Packets {
		log.Printf("%s:   %s", source, p.String())
	}
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	if wsURL != "" {
		rw, err := websocket.Dial(wsURL)
		if err != nil {
			log.Fatalln(err)
		}
		for {
			pkt, err := rw.ReadPacket()
			if err != nil {
				log.Fatalln(err)
			}
			printFeedback(wsURL, pkt)
		}
	}

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if err := q.ConnectWait(); err != nil {
		log.Fatalln(err)
	}
	q.Sub(mqtt.MetaTopic, mqtt.Handler(func(topic string, payload []byte) {
		if len(payload) == 0 {
			log.Printf("%s: offline", topic)
			return
		}
		info, err := mqtt.ParseInfo(payload)
		if err != nil {
			log.Printf("%s: bad presence: %v", topic, err)
			return
		}
		log.Printf("%s: %+v", topic, *info)
	}))
	q.Sub(mqtt.FeedbackTopic, mqtt.Handler(printFeedback))
	<-(chan struct{})(nil)
}
