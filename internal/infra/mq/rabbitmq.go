// File: internal/infra/mq/rabbitmq.go
package mq

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/config"
)

// JobMessage is the payload dispatched for one assessment job.
type JobMessage struct {
	AssessmentID string `json:"assessment_id"`
}

// Broker holds the RabbitMQ connection plus the declared job queue.
type Broker struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	log     *zerolog.Logger
}

func NewBroker(cfg *config.RabbitMQConfig, logger *zerolog.Logger) (*Broker, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	// Durable queue: dispatched jobs survive a broker restart.
	q, err := ch.QueueDeclare(
		cfg.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	logger.Info().Str("queue", q.Name).Msg("connected to RabbitMQ")
	return &Broker{conn: conn, channel: ch, queue: q, log: logger}, nil
}

// NotifyClose reports when the underlying connection dies so the process
// can decide to exit instead of idling with no consumer.
func (b *Broker) NotifyClose() <-chan *amqp.Error {
	return b.conn.NotifyClose(make(chan *amqp.Error, 1))
}

func (b *Broker) Close() error {
	if err := b.channel.Close(); err != nil {
		b.conn.Close()
		return err
	}
	return b.conn.Close()
}
