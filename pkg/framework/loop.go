package framework

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultLoopInterval is used when Loop.Interval is not set.
const DefaultLoopInterval = 100 * time.Millisecond

// Loop runs pollers periodically on a single goroutine. Messages posted
// from other goroutines are handled on the same goroutine at the start of
// the next iteration, so handlers and pollers never run concurrently.
type Loop struct {
	Interval time.Duration

	pollers  []Poller
	handlers []MessageHandler
	runners  []Runnable

	messages messageList
	lock     sync.Mutex

	wakeUpCh chan struct{}
}

type messageList struct {
	head *messageItem
	tail *messageItem
}

type messageItem struct {
	msg  Message
	next *messageItem
}

func (l *messageList) append(item *messageItem) {
	if l.head == nil {
		l.head = item
	} else {
		l.tail.next = item
	}
	l.tail = item
}

func (l *messageList) splice(src *messageList) {
	l.head, l.tail, src.head, src.tail = src.head, src.tail, nil, nil
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultLoopInterval, wakeUpCh: make(chan struct{}, 1)}
}

// AddPoller registers pollers, invoked in order on every iteration.
// Pollers implementing Runnable are also started with the loop.
func (l *Loop) AddPoller(pollers ...Poller) *Loop {
	l.pollers = append(l.pollers, pollers...)
	for _, p := range pollers {
		if runner, ok := p.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddHandler registers message handlers. Every message is given to every
// handler.
func (l *Loop) AddHandler(handlers ...MessageHandler) *Loop {
	l.handlers = append(l.handlers, handlers...)
	return l
}

// AddRunnable adds Runnable implementions started and stopped with the loop.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable. It returns when ctx is done or a poller fails.
func (l *Loop) Run(ctx context.Context) error {
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}
	ctx, cancel := context.WithCancel(ctx)
	runner := NewRunnerWith(ctx)
	runner.Go(l.runners...)
	defer func() {
		cancel()
		runner.Wait()
	}()

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultLoopInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		var now time.Time
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now = <-ticker.C:
		case <-l.wakeUpCh:
			now = time.Now()
		}
		if err := l.runIteration(ctx, now); err != nil {
			return err
		}
	}
}

// PostMessage implements LoopControl.
func (l *Loop) PostMessage(msg Message) {
	l.lock.Lock()
	l.messages.append(&messageItem{msg: msg})
	l.lock.Unlock()
	l.TriggerNext()
}

// TriggerNext implements LoopControl.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

func (l *Loop) runIteration(ctx context.Context, now time.Time) error {
	var msgs messageList
	l.lock.Lock()
	msgs.splice(&l.messages)
	l.lock.Unlock()
	for item := msgs.head; item != nil; item = item.next {
		for _, h := range l.handlers {
			if err := h.HandleMessage(ctx, item.msg); err != nil {
				glog.Errorf("message handler error: %v", err)
			}
		}
	}
	for _, p := range l.pollers {
		if err := p.Poll(ctx, now); err != nil {
			return err
		}
	}
	return nil
}
