package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"
)

// DefaultQueue is the AMQP queue carrying deferred analyses.
const DefaultQueue = "optimization_analysis"

type analysisJob struct {
	OptimizationID string `json:"optimization_id"`
}

// channel is the subset of *amqp.Channel used here.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// AMQP publishes and consumes analysis jobs on a durable queue.
type AMQP struct {
	conn   *amqp.Connection
	ch     channel
	queue  string
	logger *slog.Logger
}

// DialAMQP connects to url and declares the queue.
func DialAMQP(url, queue string, logger *slog.Logger) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	q, err := newAMQP(ch, queue, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	q.conn = conn
	return q, nil
}

func newAMQP(ch channel, queue string, logger *slog.Logger) (*AMQP, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &AMQP{ch: ch, queue: queue, logger: logger}, nil
}

// Enqueue publishes a persistent job message.
func (q *AMQP) Enqueue(_ context.Context, optimizationID string) error {
	body, err := json.Marshal(analysisJob{OptimizationID: optimizationID})
	if err != nil {
		return err
	}
	return q.ch.Publish("", q.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Consume handles deliveries one at a time until ctx is done or the
// delivery channel closes. Malformed messages and analysis outcomes are
// acknowledged; a job interrupted by shutdown is requeued.
func (q *AMQP) Consume(ctx context.Context, h Handler) error {
	if err := q.ch.Qos(1, 0, false); err != nil {
		return err
	}
	msgs, err := q.ch.Consume(q.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			q.handle(ctx, d, h)
		}
	}
}

func (q *AMQP) handle(ctx context.Context, d amqp.Delivery, h Handler) {
	var job analysisJob
	if err := json.Unmarshal(d.Body, &job); err != nil || job.OptimizationID == "" {
		q.logger.Warn("dropping invalid analysis job", slog.String("body", string(d.Body)))
		_ = d.Ack(false)
		return
	}
	err := h(ctx, job.OptimizationID)
	if err != nil && ctx.Err() != nil {
		_ = d.Nack(false, true)
		return
	}
	if err != nil {
		q.logger.Error("deferred analysis failed",
			slog.String("optimization_id", job.OptimizationID), slog.Any("error", err))
	}
	_ = d.Ack(false)
}

func (q *AMQP) Close() error {
	err := q.ch.Close()
	if q.conn != nil {
		err = errors.Join(err, q.conn.Close())
	}
	return err
}
