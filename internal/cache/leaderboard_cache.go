package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"nnx1/internal/model"
)

// LeaderboardCache is the per-tool peer board: a ZSET of completed session
// scores keyed by session id
type LeaderboardCache interface {
	UpdateScore(ctx context.Context, tool model.ToolID, sessionID string, score int) error
	GetRank(ctx context.Context, tool model.ToolID, sessionID string) (int64, error)
	Summary(ctx context.Context, tool model.ToolID) (*PeerSummary, error)
}

// PeerSummary aggregates the scores on a tool's board
type PeerSummary struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new peer board cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
	}
}

func (c *leaderboardCache) key(tool model.ToolID) string {
	return fmt.Sprintf("diag:tool:%s:scores", tool)
}

func (c *leaderboardCache) UpdateScore(ctx context.Context, tool model.ToolID, sessionID string, score int) error {
	return c.client.ZAdd(ctx, c.key(tool), redis.Z{
		Score:  float64(score),
		Member: sessionID,
	}).Err()
}

// GetRank returns the 1-indexed rank, highest score first, or -1 if the
// session is not on the board
func (c *leaderboardCache) GetRank(ctx context.Context, tool model.ToolID, sessionID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(tool), sessionID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return rank + 1, nil
}

func (c *leaderboardCache) Summary(ctx context.Context, tool model.ToolID) (*PeerSummary, error) {
	results, err := c.client.ZRangeWithScores(ctx, c.key(tool), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	summary := &PeerSummary{Count: int64(len(results))}
	if len(results) == 0 {
		return summary, nil
	}
	var total float64
	for _, z := range results {
		total += z.Score
	}
	summary.Average = total / float64(len(results))
	return summary, nil
}
