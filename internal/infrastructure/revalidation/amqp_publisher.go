package revalidation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/jhoicas/streetwear-admin-api/internal/application/ports"
	"github.com/jhoicas/streetwear-admin-api/pkg/config"
	"github.com/jhoicas/streetwear-admin-api/pkg/logger"
)

var _ ports.Revalidator = (*AMQPPublisher)(nil)

const (
	connectRetries    = 3
	defaultRetryDelay = 2 * time.Second
)

// Message cuerpo publicado por cada tag.
type Message struct {
	Tag       string    `json:"tag"`
	Tags      []string  `json:"tags"`
	EmittedAt time.Time `json:"emittedAt"`
}

// connection subconjunto de *amqp.Connection que usa el publisher.
type connection interface {
	IsClosed() bool
	Close() error
}

// channel subconjunto de *amqp.Channel que usa el publisher.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publica en un exchange topic con routing key revalidate.<tag>.
// mu protege conn/ch y serializa reconexión y publicación.
type AMQPPublisher struct {
	cfg        config.RabbitMQConfig
	log        *logger.Logger
	now        func() time.Time
	dial       func(cfg config.RabbitMQConfig) (connection, channel, error)
	retryDelay time.Duration

	mu   sync.Mutex
	conn connection
	ch   channel
}

// NewAMQPPublisher conecta al broker y declara el exchange (durable, topic).
// ctx acota los reintentos de la conexión inicial.
func NewAMQPPublisher(ctx context.Context, cfg config.RabbitMQConfig, log *logger.Logger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{
		cfg:        cfg,
		log:        log.Named("revalidation"),
		now:        time.Now,
		dial:       dialExchange,
		retryDelay: defaultRetryDelay,
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func dialExchange(cfg config.RabbitMQConfig) (connection, channel, error) {
	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		return nil, nil, fmt.Errorf("conectar RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("abrir canal RabbitMQ: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declarar exchange %s: %w", cfg.Exchange, err)
	}
	return conn, ch, nil
}

// connectLocked reemplaza canal y conexión. Requiere p.mu.
func (p *AMQPPublisher) connectLocked(ctx context.Context) error {
	p.releaseLocked()
	var err error
	for i := 0; i < connectRetries; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var (
			conn connection
			ch   channel
		)
		conn, ch, err = p.dial(p.cfg)
		if err == nil {
			p.conn, p.ch = conn, ch
			p.log.Info().Str("host", p.cfg.Host).Str("exchange", p.cfg.Exchange).Msg("conectado a RabbitMQ")
			return nil
		}
		p.log.Warn().Err(err).Int("intento", i+1).Msg("RabbitMQ no disponible")
		if i == connectRetries-1 {
			break
		}
		timer := time.NewTimer(p.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

// releaseLocked cierra lo que quede de la conexión anterior. Requiere p.mu.
func (p *AMQPPublisher) releaseLocked() error {
	var firstErr error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			firstErr = err
		}
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.conn = nil
	}
	return firstErr
}

func (p *AMQPPublisher) closedLocked() bool {
	return p.ch == nil || (p.conn != nil && p.conn.IsClosed())
}

// Revalidate publica un mensaje por tag. Si la conexión se cayó, reconecta antes de publicar.
func (p *AMQPPublisher) Revalidate(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closedLocked() {
		if err := p.connectLocked(ctx); err != nil {
			return err
		}
	}

	emitted := p.now().UTC()
	for _, tag := range tags {
		if err := ctx.Err(); err != nil {
			return err
		}
		body, err := json.Marshal(Message{Tag: tag, Tags: tags, EmittedAt: emitted})
		if err != nil {
			return fmt.Errorf("serializar revalidación: %w", err)
		}
		err = p.ch.Publish(p.cfg.Exchange, RoutingKey(tag), false, false, amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.New().String(),
			Timestamp:    emitted,
		})
		if err != nil {
			return fmt.Errorf("publicar %s: %w", tag, err)
		}
	}
	p.log.Debug().Strs("tags", tags).Msg("revalidación publicada")
	return nil
}

// Close cierra canal y conexión.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.releaseLocked()
}

// RoutingKey routing key de un tag.
func RoutingKey(tag string) string {
	return "revalidate." + tag
}
