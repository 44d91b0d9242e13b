package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/moatlabs/sage/internal/api/handlers"
	mw "github.com/moatlabs/sage/internal/api/middleware"
	"github.com/moatlabs/sage/internal/belief"
	"github.com/moatlabs/sage/internal/buildconfig"
	"github.com/moatlabs/sage/internal/config"
	"github.com/moatlabs/sage/internal/domain"
	"github.com/moatlabs/sage/internal/llm"
	"github.com/moatlabs/sage/internal/marketdata"
	"github.com/moatlabs/sage/internal/service"
	"github.com/moatlabs/sage/internal/store"
)

// App holds the router and request counters for lifecycle management.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	// Stores
	conversationStore := store.NewConversationStore(db)
	snapshotStore := store.NewBeliefSnapshotStore(db)
	recommendationStore := store.NewRecommendationStore(db)

	// External clients via provider factory
	llmProvider := config.LLMProvider()
	llmClient, err := llm.NewClient(llmProvider, config.LLMAPIKey())
	if err != nil {
		logger.Warn("LLM client initialization failed, using mock", zap.String("provider", llmProvider), zap.Error(err))
		llmClient = llm.NewMockClient()
	} else {
		logger.Info("LLM client initialized", zap.String("provider", llmProvider))
	}

	marketProvider := config.MarketDataProvider()
	marketClient, err := marketdata.NewClient(marketProvider, config.MarketDataAPIKey())
	if err != nil {
		logger.Warn("market data client initialization failed, using mock", zap.String("provider", marketProvider), zap.Error(err))
		marketClient = marketdata.NewMockClient()
	} else {
		logger.Info("market data client initialized", zap.String("provider", marketProvider))
	}

	// Belief core, seeded with the default worldview
	tracker := belief.NewTracker()
	belief.Seed(tracker)

	// Services
	advisorSvc := service.NewAdvisorService(conversationStore, snapshotStore, recommendationStore, llmClient, marketClient, tracker, logger)

	// Handlers
	chatHandler := handlers.NewChatHandler(advisorSvc, conversationStore)
	beliefHandler := handlers.NewBeliefHandler(advisorSvc, tracker)
	toolsHandler := handlers.NewToolsHandler()
	portfolioHandler := handlers.NewPortfolioHandler(advisorSvc, recommendationStore)
	corpusHandler := handlers.NewCorpusHandler()

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)
		r.Get("/conversations/{sessionID}", chatHandler.History)

		r.Route("/beliefs", func(r chi.Router) {
			r.Get("/", beliefHandler.Summary)
			r.Get("/all", beliefHandler.All)
			r.Post("/update", beliefHandler.UpdateFromNews)
			r.Route("/{key}", func(r chi.Router) {
				r.Get("/", beliefHandler.Get)
				r.Get("/influenced", beliefHandler.Influenced)
			})
		})

		r.Route("/tools", func(r chi.Router) {
			r.Post("/dcf", toolsHandler.DCF)
			r.Post("/pe", toolsHandler.PE)
			r.Post("/margin", toolsHandler.Margin)
			r.Post("/vwap", toolsHandler.VWAP)
			r.Post("/score", toolsHandler.Score)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Post("/analyze", portfolioHandler.Analyze)
			r.Get("/recommendations/{symbol}", portfolioHandler.Recommendations)
		})

		r.Post("/corpus/search", corpusHandler.Search)
	})

	return app
}

// NewRouter returns just the chi.Mux for callers that manage no lifecycle.
func NewRouter(db *pgxpool.Pool, logger *zap.Logger) *chi.Mux {
	return NewApp(db, logger).Router
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": buildconfig.Version()})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"build":      buildconfig.VersionInfo(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.ConversationStore   = (*store.ConversationStore)(nil)
	_ domain.BeliefSnapshotStore = (*store.BeliefSnapshotStore)(nil)
	_ domain.RecommendationStore = (*store.RecommendationStore)(nil)
	_ domain.LLMClient           = (*llm.OpenAIClient)(nil)
	_ domain.LLMClient           = (*llm.AnthropicClient)(nil)
	_ domain.LLMClient           = (*llm.MockClient)(nil)
	_ domain.MarketDataClient    = (*marketdata.FinnhubClient)(nil)
	_ domain.MarketDataClient    = (*marketdata.MockClient)(nil)
)
