package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"VidTube.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

// channel is the subset of *amqp091.Channel the producer needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type Producer struct {
	conn    *amqp091.Connection
	channel channel
	timeout time.Duration
}

func NewProducer(rabbitmqURL string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return &Producer{conn: conn, channel: ch, timeout: 5 * time.Second}, nil
}

func setupTopology(ch *amqp091.Channel) error {
	err := ch.ExchangeDeclare(
		constants.EngagementExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare engagement exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		constants.EngagementQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		amqp091.Table{
			"x-message-ttl": int32(24 * 60 * 60 * 1000),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to declare engagement queue: %w", err)
	}

	if err = ch.QueueBind(constants.EngagementQueue, "engagement.*", constants.EngagementExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind engagement queue: %w", err)
	}
	return nil
}

// PublishEngagementEvent sends the event with its type as the routing key.
func (p *Producer) PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal engagement event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err = p.channel.PublishWithContext(
		ctx,
		constants.EngagementExchange,
		event.Type,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.EventID,
			Timestamp:    time.UnixMilli(event.Timestamp),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish engagement event: %w", err)
	}

	hlog.CtxDebugf(ctx, "Published engagement event: %s %s", event.Type, event.EventID)
	return nil
}

func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
