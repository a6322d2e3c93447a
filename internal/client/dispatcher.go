package client

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Task is one background network call.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher runs tasks one at a time on a single goroutine. Submit never
// blocks the caller: a full queue drops the task. Failures are logged and
// never retried.
type Dispatcher struct {
	logger  *logrus.Logger
	timeout time.Duration
	queue   chan Task
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(size int, timeout time.Duration, logger *logrus.Logger) *Dispatcher {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	d := &Dispatcher{
		logger:  logger,
		timeout: timeout,
		queue:   make(chan Task, size),
		done:    make(chan struct{}),
	}
	go d.loop()
	return d
}

// Submit enqueues t and reports whether it was accepted.
func (d *Dispatcher) Submit(t Task) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	select {
	case d.queue <- t:
		return true
	default:
		d.logger.WithField("task", t.Name).Warn("dispatcher queue full; dropping task")
		return false
	}
}

// Close stops accepting work and waits for queued tasks to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) loop() {
	defer close(d.done)
	for t := range d.queue {
		d.run(t)
	}
}

func (d *Dispatcher) run(t Task) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	if err := t.Run(ctx); err != nil {
		d.logger.WithError(err).WithField("task", t.Name).Warn("background task failed")
	}
}
