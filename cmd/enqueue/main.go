package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/config"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/logging"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/mq"
)

// Publishes assessment jobs straight onto the queue, bypassing the API.
// Usage: enqueue <assessment-id> [assessment-id...]
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	ids := flag.Args()
	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "usage: enqueue <assessment-id> [assessment-id...]")
		os.Exit(2)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	broker, err := mq.NewBroker(&cfg.RabbitMQ, logger)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer broker.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	publisher := mq.NewPublisher(broker)
	for _, id := range ids {
		if err := publisher.PublishAssessment(ctx, id); err != nil {
			log.Fatalf("publish %s: %v", id, err)
		}
		fmt.Printf("enqueued: %s\n", id)
	}
}
