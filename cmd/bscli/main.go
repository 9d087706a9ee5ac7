package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/robotalks/soccer.go/pkg/cli/cmds/bs"
	"github.com/robotalks/soccer.go/pkg/cli/sh"
	"github.com/robotalks/soccer.go/pkg/comm/udp"
	"github.com/robotalks/soccer.go/pkg/joystick"
)

var connectAddr string

func init() {
	joystick.SetupFlags()
	flag.StringVar(&connectAddr, "connect", connectAddr, "Basestation address (HOST:PORT) to connect at start.")
}

func main() {
	flag.Parse()
	s := sh.New("bs> ", bs.Commands()...)
	client := bs.NewClient()
	defer client.Disconnect()
	defer bs.StopJoystick()
	if connectAddr != "" {
		conn, err := udp.Dial(connectAddr)
		if err != nil {
			log.Fatalln(err)
		}
		client.Connect(conn)
	}
	bs.Setup(s, client)
	s.Run(flag.Args()...)
}
