package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"main/internal/config"
	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"
)

const defaultQueueSize = 1024

// Publisher bridges the in-process candle stream to a RabbitMQ fanout
// exchange. Engine callbacks only enqueue into a bounded buffer; the
// actual AMQP I/O happens on the Run goroutine, so a slow or dead broker
// can never stall tick ingestion. A full buffer drops updates instead of
// blocking.
type Publisher struct {
	cfg    config.RabbitMQConfig
	logger *logrus.Entry

	conn    *amqp.Connection
	channel *amqp.Channel

	queue        chan marketdata.Candle
	unsubscribes []func()
}

// NewPublisher connects to RabbitMQ and declares the candles exchange.
func NewPublisher(cfg config.RabbitMQConfig, logger *logrus.Logger) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq url is required")
	}
	if cfg.CandlesExchange == "" {
		return nil, errors.New("candles exchange name is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.CandlesExchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.CandlesExchange, err)
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	return &Publisher{
		cfg:     cfg,
		logger:  logger.WithField("component", "broker_publisher"),
		conn:    conn,
		channel: ch,
		queue:   make(chan marketdata.Candle, queueSize),
	}, nil
}

// Attach subscribes the publisher to every (symbol, timeframe) pair so
// each engine emission ends up on the exchange.
func (p *Publisher) Attach(stream interfaces.CandleStream, symbols []string, timeframes []marketdata.Timeframe) error {
	for _, symbol := range symbols {
		for _, tf := range timeframes {
			unsubscribe, err := stream.Subscribe(symbol, tf, p.enqueue)
			if err != nil {
				p.detach()
				return fmt.Errorf("subscribe %s/%s: %w", symbol, tf, err)
			}
			p.unsubscribes = append(p.unsubscribes, unsubscribe)
		}
	}
	return nil
}

// Run drains the buffer and publishes until the context is cancelled.
func (p *Publisher) Run(ctx context.Context) error {
	p.logger.WithField("exchange", p.cfg.CandlesExchange).Info("broker publisher started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("broker publisher stopped")
			return ctx.Err()
		case candle := <-p.queue:
			if err := p.publish(ctx, candle); err != nil {
				p.logger.WithError(err).WithFields(logrus.Fields{
					"symbol":    candle.Symbol,
					"timeframe": candle.Timeframe,
				}).Warn("failed to publish candle")
			}
		}
	}
}

// Close unsubscribes from the engine and releases AMQP resources.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.detach()
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) enqueue(candle marketdata.Candle) {
	select {
	case p.queue <- candle:
	default:
		p.logger.WithFields(logrus.Fields{
			"symbol":    candle.Symbol,
			"timeframe": candle.Timeframe,
		}).Warn("publish buffer full, dropping candle update")
	}
}

func (p *Publisher) publish(ctx context.Context, candle marketdata.Candle) error {
	body, err := json.Marshal(newCandleMessage(candle))
	if err != nil {
		return fmt.Errorf("marshal candle: %w", err)
	}
	return p.channel.PublishWithContext(ctx, p.cfg.CandlesExchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

func (p *Publisher) detach() {
	for _, unsubscribe := range p.unsubscribes {
		unsubscribe()
	}
	p.unsubscribes = nil
}
