package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"nnx1/internal/model"
)

// AnalyticsCache keeps running per-question Yes counts over completed
// sessions, one hash per tool
type AnalyticsCache interface {
	RecordCompletion(ctx context.Context, tool model.ToolID, answers []model.Answer) error
	QuestionCounts(ctx context.Context, tool model.ToolID, questions int) (*QuestionCounts, error)
}

// QuestionCounts is the number of completed sessions and, per question
// position, how many of them answered Yes
type QuestionCounts struct {
	Completed int64
	Yes       []int64
}

type analyticsCache struct {
	client *redis.Client
}

// NewAnalyticsCache creates a new analytics cache
func NewAnalyticsCache(client *redis.Client) AnalyticsCache {
	return &analyticsCache{
		client: client,
	}
}

func (c *analyticsCache) key(tool model.ToolID) string {
	return fmt.Sprintf("diag:tool:%s:stats", tool)
}

func yesField(i int) string {
	return fmt.Sprintf("q%d:yes", i+1)
}

func (c *analyticsCache) RecordCompletion(ctx context.Context, tool model.ToolID, answers []model.Answer) error {
	key := c.key(tool)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, "completed", 1)
		for i, a := range answers {
			if a.IsYes() {
				pipe.HIncrBy(ctx, key, yesField(i), 1)
			}
		}
		return nil
	})
	return err
}

func (c *analyticsCache) QuestionCounts(ctx context.Context, tool model.ToolID, questions int) (*QuestionCounts, error) {
	fields, err := c.client.HGetAll(ctx, c.key(tool)).Result()
	if err != nil {
		return nil, err
	}

	counts := &QuestionCounts{Yes: make([]int64, questions)}
	if v, ok := fields["completed"]; ok {
		if counts.Completed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("parse completed count: %w", err)
		}
	}
	for i := range counts.Yes {
		v, ok := fields[yesField(i)]
		if !ok {
			continue
		}
		if counts.Yes[i], err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("parse %s: %w", yesField(i), err)
		}
	}
	return counts, nil
}
