package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher публикует события в topic exchange RabbitMQ
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
	log      Logger
}

// NewAMQPPublisher подключается к брокеру и объявляет durable topic exchange
func NewAMQPPublisher(uri, exchange string, log Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrBrokerUnavailable, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrBrokerUnavailable, err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrBrokerUnavailable, exchange, err)
	}

	log.Info("AMQP publisher connected, exchange=%s", exchange)
	return &AMQPPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		log:      log,
	}, nil
}

// PublishAppointmentCompleted публикует событие завершения записи
func (p *AMQPPublisher) PublishAppointmentCompleted(ctx context.Context, event *AppointmentCompleted) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrInternal, err)
	}

	// amqp.Channel нельзя использовать из нескольких горутин одновременно
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		EventAppointmentCompleted,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Type:         EventAppointmentCompleted,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: publish %s: %v", ErrBrokerUnavailable, event.EventID, err)
	}

	p.log.Info("Published %s event id=%s appointment id=%s", EventAppointmentCompleted, event.EventID, event.AppointmentID)
	return nil
}

// Close закрывает канал и соединение
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
