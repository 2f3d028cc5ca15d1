package revalidation

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/streetwear-admin-api/pkg/config"
	"github.com/jhoicas/streetwear-admin-api/pkg/logger"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange, key, msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type fakeConn struct {
	closed     bool
	closeCalls int
}

func (f *fakeConn) IsClosed() bool { return f.closed }

func (f *fakeConn) Close() error {
	f.closeCalls++
	f.closed = true
	return nil
}

func newTestPublisher(ch *fakeChannel, dials *int) *AMQPPublisher {
	return &AMQPPublisher{
		cfg:        config.RabbitMQConfig{Host: "localhost", Exchange: "storefront.revalidate"},
		log:        logger.Nop(),
		now:        func() time.Time { return time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC) },
		retryDelay: time.Millisecond,
		dial: func(config.RabbitMQConfig) (connection, channel, error) {
			*dials++
			return &fakeConn{}, ch, nil
		},
	}
}

func TestRevalidate_UnMensajePorTag(t *testing.T) {
	ch := &fakeChannel{}
	dials := 0
	p := newTestPublisher(ch, &dials)

	require.NoError(t, p.Revalidate(context.Background(), "admin-orders", "admin-order-42"))
	assert.Equal(t, 1, dials, "conecta en el primer uso")
	require.Len(t, ch.sent, 2)

	first := ch.sent[0]
	assert.Equal(t, "storefront.revalidate", first.exchange)
	assert.Equal(t, "revalidate.admin-orders", first.key)
	assert.Equal(t, "application/json", first.msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), first.msg.DeliveryMode)

	var body Message
	require.NoError(t, json.Unmarshal(first.msg.Body, &body))
	assert.Equal(t, "admin-orders", body.Tag)
	assert.Equal(t, []string{"admin-orders", "admin-order-42"}, body.Tags)
	assert.True(t, body.EmittedAt.Equal(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)))

	require.NoError(t, p.Revalidate(context.Background(), "admin-dashboard"))
	assert.Equal(t, 1, dials, "reutiliza el canal")
}

func TestRevalidate_ErrorDePublicacion(t *testing.T) {
	ch := &fakeChannel{err: errors.New("canal cerrado")}
	dials := 0
	p := newTestPublisher(ch, &dials)

	err := p.Revalidate(context.Background(), "admin-orders")
	assert.Error(t, err)
	assert.NoError(t, p.Revalidate(context.Background()), "sin tags no publica")
}

func TestClose(t *testing.T) {
	ch := &fakeChannel{}
	dials := 0
	p := newTestPublisher(ch, &dials)
	require.NoError(t, p.Revalidate(context.Background(), "x"))

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestRevalidate_ReconexionRespetaElContexto(t *testing.T) {
	dials := 0
	p := newTestPublisher(&fakeChannel{}, &dials)
	p.retryDelay = time.Minute
	p.dial = func(config.RabbitMQConfig) (connection, channel, error) {
		dials++
		return nil, nil, errors.New("connection refused")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := p.Revalidate(ctx, "admin-orders")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second, "no espera el retardo completo")
	assert.Equal(t, 1, dials)
}

func TestRevalidate_ReconexionConcurrenteCierraLoAnterior(t *testing.T) {
	fresh := &fakeChannel{}
	dials := 0
	p := newTestPublisher(fresh, &dials)
	staleConn := &fakeConn{closed: true}
	staleCh := &fakeChannel{}
	p.conn, p.ch = staleConn, staleCh

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Revalidate(context.Background(), "admin-dashboard"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, dials, "una sola reconexión")
	assert.True(t, staleCh.closed)
	assert.Equal(t, 1, staleConn.closeCalls)
	assert.Len(t, fresh.sent, 8)
	assert.Empty(t, staleCh.sent)
}

func TestNewAMQPPublisher_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewAMQPPublisher(ctx, config.RabbitMQConfig{Host: "127.0.0.1", Port: 1, Exchange: "x"}, logger.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogRevalidator(t *testing.T) {
	assert.NoError(t, NewLogRevalidator(logger.Nop()).Revalidate(context.Background(), "a", "b"))
	assert.Equal(t, "revalidate.storefront-active-products", RoutingKey("storefront-active-products"))
}
