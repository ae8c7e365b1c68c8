package queue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestInProcess_DrainsOnClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewInProcess(3, 16, discard())
	var (
		mu   sync.Mutex
		seen []string
	)
	q.Start(func(_ context.Context, id string) error {
		time.Sleep(time.Millisecond)
		mu.Lock()
		seen = append(seen, id)
		mu.Unlock()
		if id == "bad" {
			return errors.New("boom")
		}
		return nil
	})

	ids := []string{"a", "b", "c", "d", "e", "bad", "f", "g"}
	for _, id := range ids {
		require.NoError(t, q.Enqueue(context.Background(), id))
	}
	require.NoError(t, q.Close(context.Background()))

	assert.ElementsMatch(t, ids, seen)
	assert.ErrorIs(t, q.Enqueue(context.Background(), "late"), ErrClosed)
	assert.NoError(t, q.Close(context.Background()))
}

func TestInProcess_EnqueueRespectsContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewInProcess(1, 0, discard())
	release := make(chan struct{})
	var started atomic.Int32
	q.Start(func(context.Context, string) error {
		started.Add(1)
		<-release
		return nil
	})

	require.NoError(t, q.Enqueue(context.Background(), "busy"))
	require.Eventually(t, func() bool { return started.Load() == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Enqueue(ctx, "blocked"), context.DeadlineExceeded)

	close(release)
	require.NoError(t, q.Close(context.Background()))
}

type fakeAck struct {
	mu      sync.Mutex
	acked   []uint64
	requeue []uint64
}

func (a *fakeAck) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *fakeAck) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if requeue {
		a.requeue = append(a.requeue, tag)
	}
	return nil
}

func (a *fakeAck) Reject(tag uint64, requeue bool) error { return a.Nack(tag, false, requeue) }

type fakeChannel struct {
	declared  string
	published []amqp.Publishing
	key       string
	deliver   chan amqp.Delivery
	closed    bool
}

func (c *fakeChannel) QueueDeclare(name string, durable, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	if !durable {
		return amqp.Queue{}, errors.New("expected durable queue")
	}
	c.declared = name
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) Qos(int, int, bool) error { return nil }

func (c *fakeChannel) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	c.key = key
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return c.deliver, nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestAMQP_Enqueue(t *testing.T) {
	ch := &fakeChannel{}
	q, err := newAMQP(ch, "", discard())
	require.NoError(t, err)

	require.NoError(t, q.Enqueue(context.Background(), "opt-1"))
	assert.Equal(t, DefaultQueue, ch.declared)
	assert.Equal(t, DefaultQueue, ch.key)
	require.Len(t, ch.published, 1)
	assert.JSONEq(t, `{"optimization_id":"opt-1"}`, string(ch.published[0].Body))
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	require.NoError(t, q.Close())
	assert.True(t, ch.closed)
}

func TestAMQP_Consume(t *testing.T) {
	ack := &fakeAck{}
	ch := &fakeChannel{deliver: make(chan amqp.Delivery, 3)}
	ch.deliver <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: []byte(`{"optimization_id":"opt-1"}`)}
	ch.deliver <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte(`not json`)}
	ch.deliver <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: []byte(`{"optimization_id":"opt-2"}`)}
	close(ch.deliver)

	q, err := newAMQP(ch, "jobs", discard())
	require.NoError(t, err)

	var handled []string
	err = q.Consume(context.Background(), func(_ context.Context, id string) error {
		handled = append(handled, id)
		if id == "opt-2" {
			return errors.New("analysis: upstream exploded")
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, []string{"opt-1", "opt-2"}, handled)
	assert.Equal(t, []uint64{1, 2, 3}, ack.acked)
	assert.Empty(t, ack.requeue)
}

func TestAMQP_RequeuesOnShutdown(t *testing.T) {
	ack := &fakeAck{}
	ch := &fakeChannel{deliver: make(chan amqp.Delivery, 1)}
	ch.deliver <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 7, Body: []byte(`{"optimization_id":"opt-1"}`)}

	q, err := newAMQP(ch, "jobs", discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	err = q.Consume(ctx, func(ctx context.Context, _ string) error {
		cancel()
		return ctx.Err()
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{7}, ack.requeue)
	assert.Empty(t, ack.acked)
}
