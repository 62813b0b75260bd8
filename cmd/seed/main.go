package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nnx1/internal/cache"
	"nnx1/internal/catalog"
	"nnx1/internal/config"
	"nnx1/internal/diagnostic"
	"nnx1/internal/model"
	"nnx1/internal/repository"
	"nnx1/pkg/logger"
)

// Sample answer patterns, one completed session each, so peer comparison and
// the admin analytics have data on a fresh install.
var samplePatterns = []string{
	"YYYYYYYYYY",
	"YYYYYYYNNN",
	"YYYYYNYNNN",
	"YYNYNNYNNN",
	"YNNNYNNNNN",
	"NNNNNNNNNN",
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := logger.Init(); err != nil {
		panic(err)
	}
	log := logger.Named("seed")

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(ctx, "load config", logger.Error(err))
	}

	var responses repository.ResponseRepo
	if cfg.ResponseStore == config.StoreSQLite {
		store, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatal(ctx, "open sqlite store", logger.Error(err))
		}
		defer store.Close()
		responses = store.Responses()
	} else {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal(ctx, "connect mongodb", logger.Error(err))
		}
		defer client.Disconnect(ctx)
		responses = repository.NewResponseRepo(client.Database(cfg.MongoDatabase))
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
	defer rdb.Close()
	board := cache.NewLeaderboardCache(rdb)
	stats := cache.NewAnalyticsCache(rdb)

	seeded := 0
	for _, def := range catalog.Tools() {
		for i, pattern := range samplePatterns {
			if err := seedSession(ctx, responses, board, stats, def, fmt.Sprintf("Sample Business %d", i+1), pattern); err != nil {
				log.Fatal(ctx, "seed session", logger.String("tool", string(def.ID)), logger.Error(err))
			}
			seeded++
		}
	}

	log.Info(ctx, "seeded sample sessions", logger.Int("sessions", seeded), logger.String("store", cfg.ResponseStore))
}

func seedSession(ctx context.Context, responses repository.ResponseRepo, board cache.LeaderboardCache, stats cache.AnalyticsCache, def *model.Tool, name, pattern string) error {
	sessionID := uuid.NewString()
	now := time.Now().UTC()

	answers := make([]model.Answer, len(def.Questions))
	for i, q := range def.Questions {
		value := model.AnswerNo
		if pattern[i] == 'Y' {
			value = model.AnswerYes
		}
		answers[i] = model.Answer{QuestionID: q.ID, QuestionText: q.Text, Answer: value}

		err := responses.Save(ctx, &model.QuestionnaireResponse{
			SessionID:    sessionID,
			UserName:     name,
			Tool:         def.ID,
			ToolName:     def.Name,
			QuestionCode: q.Code,
			QuestionText: q.Text,
			Answer:       value,
			CreatedAt:    now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			return fmt.Errorf("save response %s: %w", q.Code, err)
		}
	}

	score, err := diagnostic.ComputeScore(answers)
	if err != nil {
		return err
	}
	if err := board.UpdateScore(ctx, def.ID, sessionID, score); err != nil {
		return fmt.Errorf("update peer board: %w", err)
	}
	return stats.RecordCompletion(ctx, def.ID, answers)
}
