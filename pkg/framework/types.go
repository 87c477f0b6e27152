package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Message is anything posted to a Loop from outside.
type Message interface{}

// MessageHandler processes a message on the loop goroutine.
type MessageHandler interface {
	HandleMessage(context.Context, Message) error
}

// HandleMessageFunc is the func form of MessageHandler.
type HandleMessageFunc func(context.Context, Message) error

// HandleMessage implements MessageHandler.
func (f HandleMessageFunc) HandleMessage(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// Poller is invoked by a Loop on every iteration.
type Poller interface {
	Poll(ctx context.Context, now time.Time) error
}

// PollFunc is the func form of Poller.
type PollFunc func(context.Context, time.Time) error

// Poll implements Poller.
func (f PollFunc) Poll(ctx context.Context, now time.Time) error {
	return f(ctx, now)
}

// LoopControl exposes access to a running loop.
type LoopControl interface {
	// PostMessage enqueues the message.
	PostMessage(Message)
	// TriggerNext schedules the next iteration to be executed
	// immediately after the current iteration.
	TriggerNext()
}
