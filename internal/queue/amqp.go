package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/streadway/amqp"

	"github.com/jonathan/talentsphere/internal/config"
)

// Broker holds the RabbitMQ connection shared by the publisher and the consumers.
type Broker struct {
	conn *amqp.Connection
	cfg  *config.QueueConfig
}

// Dial connects to RabbitMQ and declares the job queue and the updates exchange.
func Dial(cfg *config.QueueConfig) (*Broker, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}

	b := &Broker{conn: conn, cfg: cfg}
	if err := b.declare(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return b, nil
}

func (b *Broker) declare() error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		b.cfg.Queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", b.cfg.Queue, err)
	}

	if err := ch.ExchangeDeclare(
		b.cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", b.cfg.Exchange, err)
	}
	return nil
}

// Close closes the connection.
func (b *Broker) Close() error {
	return b.conn.Close()
}

// Publish sends an update to the exchange under the job's routing key.
func (b *Broker) Publish(_ context.Context, update RankUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}
	return b.send(b.cfg.Exchange, update.RoutingKey(), body)
}

// Submit enqueues a rank job.
func (b *Broker) Submit(_ context.Context, job *RankJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("invalid rank job: %w", err)
	}
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	// The default exchange routes by queue name.
	return b.send("", b.cfg.Queue, body)
}

func (b *Broker) send(exchange, key string, body []byte) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.Publish(exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Consume runs cfg.Workers consumers, each on its own channel, until ctx is
// cancelled or the broker closes the deliveries. Every delivery is acked once
// handled; failures are reported through the updates exchange.
func (b *Broker) Consume(ctx context.Context, h *Handler) error {
	var wg sync.WaitGroup
	errs := make(chan error, b.cfg.Workers)

	for i := 0; i < b.cfg.Workers; i++ {
		ch, err := b.conn.Channel()
		if err != nil {
			return fmt.Errorf("error opening channel: %w", err)
		}
		if err := ch.Qos(1, 0, false); err != nil {
			_ = ch.Close()
			return fmt.Errorf("failed to set prefetch: %w", err)
		}
		msgs, err := ch.Consume(b.cfg.Queue, fmt.Sprintf("talentsphere-%d", i+1), false, false, false, false, nil)
		if err != nil {
			_ = ch.Close()
			return fmt.Errorf("error consuming %s: %w", b.cfg.Queue, err)
		}

		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			defer ch.Close()
			log.Printf("[worker] worker %d started", id)
			if err := work(ctx, id, msgs, h); err != nil {
				errs <- err
			}
		}(i + 1)
	}

	wg.Wait()
	close(errs)
	return <-errs
}

// delivery is the part of amqp.Delivery a worker needs.
type delivery interface {
	Body() []byte
	Ack() error
}

type amqpDelivery struct{ d amqp.Delivery }

func (a amqpDelivery) Body() []byte { return a.d.Body }
func (a amqpDelivery) Ack() error   { return a.d.Ack(false) }

func work(ctx context.Context, id int, msgs <-chan amqp.Delivery, h *Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("worker %d: delivery channel closed", id)
			}
			handleDelivery(ctx, id, amqpDelivery{msg}, h)
		}
	}
}

func handleDelivery(ctx context.Context, id int, d delivery, h *Handler) {
	if err := h.Handle(ctx, d.Body()); err != nil {
		log.Printf("[worker] worker %d: %v", id, err)
	}
	if err := d.Ack(); err != nil {
		log.Printf("[worker] worker %d: ack failed: %v", id, err)
	}
}
