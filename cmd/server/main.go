package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nnx1/internal/cache"
	"nnx1/internal/config"
	"nnx1/internal/llm"
	"nnx1/internal/repository"
	"nnx1/internal/service"
	"nnx1/internal/transport/rest"
	"nnx1/internal/transport/ws"
	"nnx1/pkg/logger"
)

func main() {
	ctx := context.Background()
	if err := logger.Init(); err != nil {
		panic(err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Get().Fatal(ctx, "load config", logger.Error(err))
	}
	if err := logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		logger.Get().Fatal(ctx, "init logger", logger.Error(err))
	}
	log := logger.Named("server")

	// Response store
	var (
		responses  repository.ResponseRepo
		deliveries repository.DeliveryRepo
	)
	switch cfg.ResponseStore {
	case config.StoreSQLite:
		store, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatal(ctx, "open sqlite store", logger.String("path", cfg.SQLitePath), logger.Error(err))
		}
		defer store.Close()
		responses, deliveries = store.Responses(), store.Deliveries()
		log.Info(ctx, "using sqlite response store", logger.String("path", cfg.SQLitePath))
	default:
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal(ctx, "connect mongodb", logger.Error(err))
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			cancel()
			log.Fatal(ctx, "ping mongodb", logger.Error(err))
		}
		cancel()

		db := mongoClient.Database(cfg.MongoDatabase)
		responses, deliveries = repository.NewResponseRepo(db), repository.NewDeliveryRepo(db)
		log.Info(ctx, "connected to mongodb", logger.String("database", cfg.MongoDatabase))
	}

	// Redis connection
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
	defer rdb.Close()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal(ctx, "ping redis", logger.String("addr", cfg.RedisAddr()), logger.Error(err))
	}
	log.Info(ctx, "connected to redis", logger.String("addr", cfg.RedisAddr()))

	// Narrative provider; nil keeps every report on the fallback narrative
	provider, err := llm.NewProvider(ctx, cfg.Narrative)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.Warn(ctx, "narrative provider not configured, using fallback insights")
		provider = nil
	case err != nil:
		log.Fatal(ctx, "init narrative provider", logger.Error(err))
	default:
		log.Info(ctx, "narrative provider ready",
			logger.String("provider", provider.Name()),
			logger.String("model", cfg.Narrative.ResolvedModel()))
	}

	// Delivery
	var (
		mailer service.Mailer
		pdf    service.PDFRenderer
	)
	if cfg.Delivery.IsSimulated() {
		log.Warn(ctx, "SENDGRID_API_KEY not set, report emails are simulated")
	} else {
		mailer = service.NewSendGridMailer(cfg.Delivery.ResolvedAPIKey(), cfg.Delivery.SendGridURL, cfg.Delivery.FromEmail, cfg.Delivery.FromName)
	}
	if cfg.Delivery.PDFEnabled {
		pdf = service.NewChromePDFRenderer(cfg.Delivery.ChromePath)
	}

	// Caches
	sessionCache := cache.NewSessionCache(rdb, cfg.SessionTTL)
	leaderboard := cache.NewLeaderboardCache(rdb)
	analyticsCache := cache.NewAnalyticsCache(rdb)

	// Services
	authSvc := service.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret, cfg.SessionTTL)
	analyticsSvc := service.NewAnalyticsService(responses, leaderboard, analyticsCache, logger.Get())
	sessionSvc := service.NewSessionService(sessionCache, responses, leaderboard, analyticsCache, analyticsSvc, authSvc,
		logger.Get(), cfg.StoreTimeout, cfg.ResponseStore)
	narrativeSvc, err := service.NewNarrativeService(provider, cfg.Narrative, logger.Get())
	if err != nil {
		log.Fatal(ctx, "init narrative service", logger.Error(err))
	}
	reportSvc := service.NewReportService(narrativeSvc, logger.Get())
	deliverySvc := service.NewDeliveryService(mailer, pdf, deliveries, analyticsSvc, sessionSvc, cfg.Delivery, logger.Get())
	insightSvc := service.NewInsightService(logger.Get())

	// WebSocket hub (implements service.Broadcaster)
	wsHub := ws.NewHub(logger.Get())
	defer wsHub.Close()
	sessionSvc.SetBroadcaster(wsHub)
	deliverySvc.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AuthService:      authSvc,
		SessionService:   sessionSvc,
		ReportService:    reportSvc,
		DeliveryService:  deliverySvc,
		InsightService:   insightSvc,
		AnalyticsService: analyticsSvc,
		WSHub:            wsHub,
		CORSOrigin:       cfg.CORSOrigin,
		Log:              logger.Get(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info(ctx, "server starting",
			logger.String("addr", cfg.Addr),
			logger.String("responseStore", cfg.ResponseStore),
			logger.Bool("pdf", pdf != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(ctx, "listen and serve", logger.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info(ctx, "shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server forced to shutdown", logger.Error(err))
	}
	log.Info(ctx, "server exited")
}
