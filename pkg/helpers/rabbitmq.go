package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPublisherClosed is returned once the broker connection has gone away.
var ErrPublisherClosed = errors.New("rabbitmq: publisher closed")

// DeadLetterQueue is where rejected messages from queue end up.
func DeadLetterQueue(queue string) string { return queue + ".dead" }

// DeclareQueue declares a durable queue whose rejected messages are routed
// to DeadLetterQueue(name). Publisher and consumer must both use it so the
// arguments match.
func DeclareQueue(ch *amqp.Channel, name string) error {
	if _, err := ch.QueueDeclare(DeadLetterQueue(name), true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", DeadLetterQueue(name), err)
	}
	_, err := ch.QueueDeclare(name, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": DeadLetterQueue(name),
	})
	if err != nil {
		return fmt.Errorf("declare %s: %w", name, err)
	}
	return nil
}

// RabbitPublisher publishes persistent JSON messages to one queue and waits
// for the broker to confirm each. Publishes are serialized.
type RabbitPublisher struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed chan *amqp.Error
	Queue  string
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	fail := func(err error) (*RabbitPublisher, error) {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	if err := DeclareQueue(ch, queue); err != nil {
		return fail(err)
	}
	if err := ch.Confirm(false); err != nil {
		return fail(fmt.Errorf("enable confirms: %w", err))
	}
	p := &RabbitPublisher{conn: conn, ch: ch, Queue: queue}
	p.closed = conn.NotifyClose(make(chan *amqp.Error, 1))
	return p, nil
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	_ = p.ch.Close()
	_ = p.conn.Close()
}

func (p *RabbitPublisher) isClosed() bool {
	select {
	case <-p.closed:
		return true
	default:
		return p.conn.IsClosed()
	}
}

// PublishJSON returns once the broker has acknowledged the message or ctx ends.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isClosed() {
		return ErrPublisherClosed
	}
	conf, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, "", p.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
	if err != nil {
		return err
	}
	acked, err := conf.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return fmt.Errorf("rabbitmq: broker nacked message for %s", p.Queue)
	}
	return nil
}
