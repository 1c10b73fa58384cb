package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/model"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/ports/repository"
)

var _ repository.ResultStore = (*ResultStore)(nil)

// ResultStore keeps job outcomes in Redis for later pickup.
type ResultStore struct {
	client *redClient
	ttl    time.Duration
}

func NewResultStore(client *redClient, ttl time.Duration) *ResultStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour // Results are transient; a day is plenty to poll them.
	}
	return &ResultStore{client: client, ttl: ttl}
}

func (s *ResultStore) resultKey(assessmentID string) string {
	return fmt.Sprintf("assessment_result:%s", assessmentID)
}

func (s *ResultStore) Save(ctx context.Context, res *model.JobResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.resultKey(res.AssessmentID), data, s.ttl)
}

func (s *ResultStore) Find(ctx context.Context, assessmentID string) (*model.JobResult, error) {
	data, err := s.client.Get(ctx, s.resultKey(assessmentID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var res model.JobResult
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		return nil, err
	}
	return &res, nil
}
