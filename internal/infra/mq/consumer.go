// File: internal/infra/mq/consumer.go
package mq

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/ports/repository"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/logging"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/metrics"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/redis"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/worker"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/usecase"
)

// Consumer pulls assessment jobs off the queue and runs them on the worker
// pool. Deliveries are auto-acked, so a job is consumed at most once; the
// Redis lock and the pending-only claim in the repository keep duplicate
// deliveries from running the pipeline twice.
type Consumer struct {
	broker  *Broker
	queue   string
	pool    *worker.Pool
	uc      usecase.AssessmentUseCase
	locker  redis.Locker
	results repository.ResultStore
	lockTTL time.Duration
	log     *zerolog.Logger
}

func NewConsumer(
	broker *Broker,
	pool *worker.Pool,
	uc usecase.AssessmentUseCase,
	locker redis.Locker,
	results repository.ResultStore,
	lockTTL time.Duration,
	logger *zerolog.Logger,
) *Consumer {
	if lockTTL <= 0 {
		lockTTL = 30 * time.Minute
	}
	return &Consumer{
		broker:  broker,
		queue:   broker.queue.Name,
		pool:    pool,
		uc:      uc,
		locker:  locker,
		results: results,
		lockTTL: lockTTL,
		log:     logger,
	}
}

// Start registers the consumer and spawns the dispatch loop.
func (c *Consumer) Start(ctx context.Context) error {
	msgs, err := c.broker.channel.Consume(
		c.queue,
		"",    // consumer tag
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}
	c.log.Info().Str("queue", c.queue).Msg("queue consumer started")

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.log.Info().Msg("queue consumer stopping")
				return
			case d, ok := <-msgs:
				if !ok {
					c.log.Warn().Msg("delivery channel closed")
					return
				}
				c.handleDelivery(ctx, d)
			}
		}
	}()
	return nil
}

func (c *Consumer) handleDelivery(ctx context.Context, d amqp.Delivery) {
	queue := c.queue

	var msg JobMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		metrics.IncQueueMessage(queue, "invalid")
		c.log.Error().Err(err).Msg("invalid job message")
		return
	}
	if msg.AssessmentID == "" {
		metrics.IncQueueMessage(queue, "invalid")
		c.log.Error().Msg("job message missing assessment_id")
		return
	}
	metrics.IncQueueMessage(queue, "received")

	// SubmitWait throttles the dispatch loop to the pool's capacity.
	err := c.pool.SubmitWait(ctx, func(context.Context) error {
		return c.runJob(msg.AssessmentID)
	})
	if err != nil {
		metrics.IncQueueMessage(queue, "dropped")
		c.log.Error().Err(err).Str("assessment_id", msg.AssessmentID).Msg("could not submit job")
	}
}

// runJob executes one assessment end to end. It deliberately runs on a
// fresh background context: a job that has started is never cancelled
// mid-pipeline, shutdown waits for it instead.
func (c *Consumer) runJob(assessmentID string) error {
	ctx := logging.WithJobID(context.Background(), uuid.NewString())
	ctx = logging.WithAssessmentID(ctx, assessmentID)
	log := logging.With(ctx, c.log)

	lockKey := "assessment_lock:" + assessmentID
	token, err := c.locker.TryLock(ctx, lockKey, c.lockTTL)
	if err != nil {
		if errors.Is(err, domain.ErrJobInFlight) {
			metrics.IncQueueMessage(c.queue, "duplicate")
			log.Warn().Msg("duplicate delivery, job already in flight")
			return nil
		}
		return err
	}
	defer func() {
		if uerr := c.locker.Unlock(ctx, lockKey, token); uerr != nil {
			log.Warn().Err(uerr).Msg("failed to release job lock")
		}
	}()

	start := time.Now()
	res := c.uc.Process(ctx, assessmentID)
	elapsed := time.Since(start)
	metrics.ObserveAssessmentJob(res.Status, elapsed.Seconds())

	if serr := c.results.Save(ctx, &res); serr != nil {
		log.Error().Err(serr).Msg("failed to store job result")
	}
	log.Info().
		Str("status", res.Status).
		Float64("score", res.Score).
		Dur("duration", elapsed).
		Msg("job finished")
	return nil
}
