// File: internal/infra/mq/publisher.go
package mq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher enqueues assessment jobs on the broker's job queue.
type Publisher struct {
	broker *Broker
}

func NewPublisher(broker *Broker) *Publisher {
	return &Publisher{broker: broker}
}

// PublishAssessment dispatches one job. Messages are persistent so a broker
// restart cannot silently drop accepted work.
func (p *Publisher) PublishAssessment(ctx context.Context, assessmentID string) error {
	body, err := json.Marshal(JobMessage{AssessmentID: assessmentID})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.broker.channel.PublishWithContext(
		ctx,
		"",                   // exchange
		p.broker.queue.Name,  // routing key
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
