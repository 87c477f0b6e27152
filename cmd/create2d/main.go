package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/create2/pkg/create2"
	"github.com/robotalks/create2/pkg/env"
	fx "github.com/robotalks/create2/pkg/framework"
	"github.com/robotalks/create2/pkg/oi/sensors"
	"github.com/robotalks/create2/pkg/telemetry"
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

	robot, banner, err := create2.Dial(conf.Port, conf.Baud, conf.Options())
	if err != nil {
		return err
	}
	defer robot.Close()
	if len(banner) > 0 {
		glog.Infof("robot banner: %q", banner)
	}
	if err := robot.Start(); err != nil {
		return err
	}

	queue, err := telemetry.NewQueueFromURL(conf.MQTTBrokerURL)
	if err != nil {
		return err
	}
	if err := queue.Connect(); err != nil {
		return fmt.Errorf("connect %s: %w", conf.MQTTBrokerURL, err)
	}

	pub := telemetry.NewPublisher(conf.ID, robot, queue)
	pub.Block = sensors.BlockID(conf.Block)
	pub.Format = telemetry.Format(conf.Format)
	glog.Infof("publishing block %d to %s%s, session %s",
		pub.Block, queue.TopicPrefix, pub.Topic(telemetry.SensorsTopic), pub.Session)

	loop := fx.NewLoop()
	loop.Interval = conf.SampleInterval
	if err := pub.AddToLoop(loop); err != nil {
		queue.Close()
		return err
	}

	// the queue closes on stop, before the last poll returns.
	runner := fx.NewRunner().HandleSignals()
	err = fx.RunWithContextCloser(runner.Context, queue, func() error {
		return runner.Go(fx.NamedRun("telemetry", loop)).Wait()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
