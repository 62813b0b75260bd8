package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nnx1/internal/service"
	"nnx1/internal/transport/rest/handler"
	"nnx1/internal/transport/rest/middleware"
	"nnx1/internal/transport/ws"
	"nnx1/pkg/logger"
	"nnx1/pkg/metrics"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	SessionService   *service.SessionService
	ReportService    *service.ReportService
	DeliveryService  *service.DeliveryService
	InsightService   *service.InsightService
	AnalyticsService *service.AnalyticsService
	WSHub            *ws.Hub
	CORSOrigin       string
	Log              logger.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()
	log := c.Log.Named("http")

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, log)
	toolHandler := handler.NewToolHandler(log)
	sessionHandler := handler.NewSessionHandler(c.SessionService, log)
	reportHandler := handler.NewReportHandler(c.ReportService, c.DeliveryService, log)
	evaluateHandler := handler.NewEvaluateHandler(c.InsightService, log)
	analyticsHandler := handler.NewAnalyticsHandler(c.AnalyticsService, log)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.CORSOrigin, log)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(middleware.CORS(c.CORSOrigin))
	r.Use(middleware.Metrics)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/tools", toolHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/tools/{toolId}", toolHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/reports/generate", reportHandler.Generate).Methods("POST", "OPTIONS")
	v1.Handle("/reports/send", authMW.OptionalSession(http.HandlerFunc(reportHandler.Send))).Methods("POST", "OPTIONS")
	v1.HandleFunc("/evaluate", evaluateHandler.Evaluate).Methods("POST", "OPTIONS")
	v1.HandleFunc("/phase/questions", evaluateHandler.PhaseQuestions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/phase", evaluateHandler.Phase).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/sessions/{sessionId}", wsHandler.SessionWS).Methods("GET")

	// Session routes (require the session's own token)
	sessionRoutes := v1.PathPrefix("/sessions/{sessionId}").Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("", sessionHandler.Get).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/answers", sessionHandler.RecordAnswer).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/answers/last", sessionHandler.GoBack).Methods("DELETE", "OPTIONS")
	sessionRoutes.HandleFunc("/complete", sessionHandler.Complete).Methods("POST", "OPTIONS")

	// Admin routes
	adminRoutes := v1.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/tools/{toolId}/analytics", analyticsHandler.Tool).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/sessions/{sessionId}/summary", analyticsHandler.Session).Methods("GET", "OPTIONS")

	return r
}
