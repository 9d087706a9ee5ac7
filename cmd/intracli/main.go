package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/robotalks/soccer.go/pkg/cli/cmds/intra"
	"github.com/robotalks/soccer.go/pkg/cli/sh"
	"github.com/robotalks/soccer.go/pkg/comm/serial"
)

var (
	device   string
	baudRate = serial.DefaultBaudRate
)

func init() {
	flag.StringVar(&device, "port", device, "Serial port to open at start.")
	flag.IntVar(&baudRate, "baud", baudRate, "Baud rate of the serial port.")
}

func main() {
	flag.Parse()
	s := sh.New("intra> ", intra.Commands()...)
	console := intra.NewConsole()
	defer console.Close()
	if device != "" {
		conf := serial.DefaultConfig(device)
		conf.BaudRate = baudRate
		port, err := conf.Open()
		if err != nil {
			log.Fatalln(err)
		}
		console.Open(port)
	}
	intra.Setup(s, console)
	s.Run(flag.Args()...)
}
