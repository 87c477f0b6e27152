package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"

	fx "github.com/robotalks/create2/pkg/framework"
	"github.com/robotalks/create2/pkg/oi"
	"github.com/robotalks/create2/pkg/oi/comm"
	"github.com/robotalks/create2/pkg/oi/sensors"
)

// Robot is what the Publisher samples and commands. *create2.Robot
// implements it.
type Robot interface {
	SensorBlock(sensors.BlockID) (sensors.Readings, error)
	Send(oi.Command) error
}

// Topic names under <id>/.
const (
	SensorsTopic = "sensors"
	CommandTopic = "cmd"
)

// Publisher samples a query block on every poll and publishes the snapshot
// to <id>/sensors. Commands received on <id>/cmd are posted to the loop and
// executed between polls, so the serial link is used by one goroutine only.
type Publisher struct {
	ID      string
	Session string
	Block   sensors.BlockID
	Format  Format

	robot  Robot
	broker Broker
	seq    uint64
}

// NewPublisher creates a Publisher with a new session id.
func NewPublisher(id string, robot Robot, broker Broker) *Publisher {
	return &Publisher{
		ID:      id,
		Session: uuid.New().String(),
		Block:   sensors.BlockAll,
		Format:  FormatJSON,
		robot:   robot,
		broker:  broker,
	}
}

// Topic returns the full topic name of a sub topic.
func (p *Publisher) Topic(name string) string {
	return p.ID + "/" + name
}

// AddToLoop registers the publisher as the loop's poller and handler, and
// routes remote commands into the loop.
func (p *Publisher) AddToLoop(loop *fx.Loop) error {
	loop.AddPoller(p).AddHandler(p)
	return p.broker.Subscribe(p.Topic(CommandTopic), func(topic string, payload []byte) {
		cmd, err := ParseCommand(p.Format, payload)
		if err != nil {
			glog.Warningf("drop command on %s: %v", topic, err)
			return
		}
		loop.PostMessage(cmd)
	})
}

// Poll implements framework.Poller. A read timeout skips the sample,
// other errors stop the loop.
func (p *Publisher) Poll(ctx context.Context, now time.Time) error {
	readings, err := p.robot.SensorBlock(p.Block)
	if errors.Is(err, comm.ErrReadTimeout) {
		glog.Warningf("sample block %d: %v", p.Block, err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("sample block %d: %w", p.Block, err)
	}
	p.seq++
	snapshot := &Snapshot{
		ID:       p.ID,
		Session:  p.Session,
		Seq:      p.seq,
		Time:     now,
		Block:    p.Block,
		Readings: readings,
	}
	payload, err := snapshot.Encode(p.Format)
	if err != nil {
		return err
	}
	if err := p.broker.Publish(p.Topic(SensorsTopic), payload); err != nil {
		glog.Warningf("publish snapshot %d: %v", p.seq, err)
	}
	return nil
}

// HandleMessage implements framework.MessageHandler.
func (p *Publisher) HandleMessage(ctx context.Context, msg fx.Message) error {
	cmd, ok := msg.(oi.Command)
	if !ok {
		return nil
	}
	glog.Infof("remote command %s", cmd)
	return p.robot.Send(cmd)
}
