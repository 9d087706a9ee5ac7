package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"

	env "github.com/robotalks/soccer.go/pkg/env/basestation"
	fx "github.com/robotalks/soccer.go/pkg/framework"
)

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	e := env.NewConfig().MustNewEnv()
	defer e.Close()
	glog.Infof("Basestation %s serving %s", e.Config.ID, e.Config.ServerURL)

	loop := fx.NewLoop().Add(e)
	if err := fx.NewRunner().HandleSignals().Go(loop).Wait(); err != nil {
		glog.Errorf("basestation stopped: %v", err)
	}
}
