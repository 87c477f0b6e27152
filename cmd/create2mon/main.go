package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/create2/pkg/create2"
	"github.com/robotalks/create2/pkg/env"
	fx "github.com/robotalks/create2/pkg/framework"
	"github.com/robotalks/create2/pkg/oi/comm"
	"github.com/robotalks/create2/pkg/oi/sensors"
)

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		glog.Exit(err)
	}
}

func run() error {
	conf, err := env.Load()
	if err != nil {
		return err
	}

	robot, _, err := create2.Dial(conf.Port, conf.Baud, conf.Options())
	if err != nil {
		return err
	}
	defer robot.Close()
	if err := robot.Start(); err != nil {
		return err
	}
	if err := robot.Safe(); err != nil {
		return err
	}

	loop := fx.NewLoop()
	loop.Interval = conf.SampleInterval
	loop.AddPoller(fx.PollFunc(func(ctx context.Context, now time.Time) error {
		readings, err := robot.SensorBlock(sensors.BlockAll)
		if errors.Is(err, comm.ErrReadTimeout) {
			glog.Warning("robot asleep")
			return nil
		}
		if err != nil {
			return err
		}
		dashboard(os.Stdout, readings)
		return nil
	}))

	return fx.NewRunner().HandleSignals().Go(loop).Wait()
}
