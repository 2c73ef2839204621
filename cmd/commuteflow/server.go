package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/api/handlers"
	"github.com/BaSui01/commuteflow/assistant"
	"github.com/BaSui01/commuteflow/config"
	"github.com/BaSui01/commuteflow/dataset"
	"github.com/BaSui01/commuteflow/internal/database"
	"github.com/BaSui01/commuteflow/internal/metrics"
	"github.com/BaSui01/commuteflow/internal/server"
	"github.com/BaSui01/commuteflow/internal/telemetry"
	"github.com/BaSui01/commuteflow/llm"
	"github.com/BaSui01/commuteflow/providers/gemini"
	"github.com/BaSui01/commuteflow/sim"
)

// Server wires the dataset, simulation, recommendation, and assistant
// components behind the HTTP and metrics listeners.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	otel   *telemetry.Providers

	httpManager    *server.Manager
	metricsManager *server.Manager

	collector *metrics.Collector
	pool      *database.PoolManager
	store     dataset.Store
	provider  llm.Provider
	sessions  assistant.SessionStore
	redis     *assistant.RedisStore

	healthHandler    *handlers.HealthHandler
	profileHandler   *handlers.ProfileHandler
	simulateHandler  *handlers.SimulationHandler
	recommendHandler *handlers.RecommendHandler
	chatHandler      *handlers.ChatHandler

	rateLimiterCancel context.CancelFunc
}

// NewServer creates a Server; components are wired on Start.
func NewServer(cfg *config.Config, logger *zap.Logger, otel *telemetry.Providers) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		otel:   otel,
	}
}

// Start builds every component and starts both listeners.
func (s *Server) Start() error {
	s.collector = metrics.NewCollector("commuteflow", prometheus.DefaultRegisterer, s.logger)

	if err := s.initDataset(); err != nil {
		return fmt.Errorf("failed to init dataset: %w", err)
	}
	s.initProvider()
	if err := s.initSessions(); err != nil {
		return fmt.Errorf("failed to init session store: %w", err)
	}
	s.initHandlers()

	if err := s.startHTTPServer(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	if err := s.startMetricsServer(); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}

	s.logger.Info("All servers started",
		zap.Int("http_port", s.cfg.Server.HTTPPort),
		zap.Int("metrics_port", s.cfg.Server.MetricsPort),
	)
	return nil
}

// initDataset imports the survey CSV and picks the backing store. With
// UseDatabase set, records are upserted into the database so restarts
// keep previously imported data.
func (s *Server) initDataset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	loader := dataset.NewCSVLoader(dataset.CSVLoaderConfig{}, s.logger)
	records, err := loader.Load(ctx, s.cfg.Dataset.CSVPath)
	if err != nil {
		return err
	}

	if s.cfg.Dataset.UseDatabase {
		db, err := openDatabase(s.cfg.Database, s.logger)
		if err != nil {
			return err
		}

		pool, err := database.NewPoolManager(db, database.PoolConfig{
			MaxOpenConns:        s.cfg.Database.MaxOpenConns,
			MaxIdleConns:        s.cfg.Database.MaxIdleConns,
			ConnMaxLifetime:     s.cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime:     10 * time.Minute,
			HealthCheckInterval: 30 * time.Second,
		}, s.logger)
		if err != nil {
			return err
		}
		s.pool = pool

		store, err := dataset.NewDBStore(pool.DB(), s.logger)
		if err != nil {
			return err
		}
		if len(records) > 0 {
			if err := store.Import(ctx, records); err != nil {
				return err
			}
		}
		s.store = store
	} else {
		s.store = dataset.NewMemoryStore(records)
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	s.collector.SetDatasetRecords(count)
	s.logger.Info("dataset ready",
		zap.Int("records", count),
		zap.Bool("database_backed", s.cfg.Dataset.UseDatabase),
	)
	return nil
}

// initProvider builds the LLM provider when an API key is configured.
// Without one the chat endpoints answer with recommendations only.
func (s *Server) initProvider() {
	if s.cfg.LLM.APIKey == "" {
		s.logger.Info("LLM API key not configured, chat endpoints disabled")
		return
	}

	provider := gemini.New(gemini.Config{
		BaseURL: s.cfg.LLM.BaseURL,
		APIKey:  s.cfg.LLM.APIKey,
		Model:   s.cfg.LLM.Model,
		Timeout: s.cfg.LLM.Timeout,
	}, s.logger)

	s.provider = &instrumentedProvider{
		Provider:  provider,
		collector: s.collector,
		model:     s.cfg.LLM.Model,
	}
	s.logger.Info("LLM provider initialized",
		zap.String("provider", provider.Name()),
		zap.String("model", s.cfg.LLM.Model),
	)
}

func (s *Server) initSessions() error {
	if !s.cfg.Redis.Enabled {
		s.sessions = assistant.NewMemoryStore()
		return nil
	}

	redisStore, err := assistant.NewRedisStore(assistant.RedisStoreConfig{
		Addr:     s.cfg.Redis.Addr,
		Password: s.cfg.Redis.Password,
		DB:       s.cfg.Redis.DB,
		TTL:      s.cfg.Redis.SessionTTL,
	}, s.logger)
	if err != nil {
		return err
	}
	s.redis = redisStore
	s.sessions = redisStore
	return nil
}

func (s *Server) initHandlers() {
	simCfg := sim.Config{
		Capacity: s.cfg.Simulation.Capacity,
		Cycles:   s.cfg.Simulation.Cycles,
		Seed:     s.cfg.Simulation.Seed,
	}

	s.healthHandler = handlers.NewHealthHandler(s.logger)
	s.profileHandler = handlers.NewProfileHandler(s.store, s.logger)
	s.simulateHandler = handlers.NewSimulationHandler(s.store, simCfg, s.collector, s.logger)
	s.recommendHandler = handlers.NewRecommendHandler(s.store, simCfg, s.collector, s.logger)

	if s.provider != nil {
		a := assistant.New(s.store, s.sessions, s.provider, simCfg, assistant.Config{
			Model:         s.cfg.LLM.Model,
			Temperature:   float32(s.cfg.LLM.Temperature),
			MaxTokens:     s.cfg.LLM.MaxTokens,
			HistoryBudget: s.cfg.LLM.HistoryBudget,
		}, assistant.NewTokenCounter(s.logger), s.logger)
		s.chatHandler = handlers.NewChatHandler(a, s.collector, s.logger)
	}

	s.registerHealthChecks()
}

func (s *Server) registerHealthChecks() {
	s.healthHandler.RegisterCheck("dataset", func(ctx context.Context) error {
		_, err := s.store.Count(ctx)
		return err
	})
	if s.pool != nil {
		s.healthHandler.RegisterCheck("database", s.pool.Ping)
	}
	if s.redis != nil {
		s.healthHandler.RegisterCheck("redis", s.redis.Ping)
	}
	if s.provider != nil {
		s.healthHandler.RegisterCheck("provider", func(ctx context.Context) error {
			status, err := s.provider.HealthCheck(ctx)
			if err != nil {
				return err
			}
			if !status.Healthy {
				return fmt.Errorf("provider %s reported unhealthy", s.provider.Name())
			}
			return nil
		})
	}
}

func (s *Server) startHTTPServer() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.healthHandler.HandleHealthz)
	mux.HandleFunc("GET /readyz", s.healthHandler.HandleReadyz)
	mux.HandleFunc("GET /version", s.healthHandler.HandleVersion(Version, BuildTime, GitCommit))

	mux.HandleFunc("GET /api/v1/profiles", s.profileHandler.HandleList)
	mux.HandleFunc("GET /api/v1/profiles/{id}", s.profileHandler.HandleGet)
	mux.HandleFunc("POST /api/v1/simulate", s.simulateHandler.HandleSimulate)
	mux.HandleFunc("POST /api/v1/recommendations", s.recommendHandler.HandleRecommend)

	if s.chatHandler != nil {
		mux.HandleFunc("POST /api/v1/sessions", s.chatHandler.HandleStartSession)
		mux.HandleFunc("GET /api/v1/sessions/{id}", s.chatHandler.HandleGetSession)
		mux.HandleFunc("DELETE /api/v1/sessions/{id}", s.chatHandler.HandleEndSession)
		mux.HandleFunc("POST /api/v1/sessions/{id}/profile", s.chatHandler.HandleSelectProfile)
		mux.HandleFunc("POST /api/v1/sessions/{id}/messages", s.chatHandler.HandleMessage)
		s.logger.Info("Chat API routes registered")
	}

	skipAuthPaths := []string{"/healthz", "/readyz", "/version", "/metrics"}
	rateLimiterCtx, rateLimiterCancel := context.WithCancel(context.Background())
	s.rateLimiterCancel = rateLimiterCancel

	middlewares := []Middleware{
		Recovery(s.logger),
		RequestID(),
		SecurityHeaders(),
		RequestLogger(s.logger),
		MetricsMiddleware(s.collector),
		CORS(s.cfg.Server.CORSAllowedOrigins),
	}
	if s.cfg.Telemetry.Enabled {
		middlewares = append(middlewares, OTelTracing())
	}
	if s.cfg.Server.RateLimitRPS > 0 {
		middlewares = append(middlewares,
			RateLimiter(rateLimiterCtx, s.cfg.Server.RateLimitRPS, s.cfg.Server.RateLimitBurst, s.logger))
	}
	if s.cfg.Auth.APIKey != "" {
		middlewares = append(middlewares, APIKeyAuth(s.cfg.Auth.APIKey, skipAuthPaths, s.logger))
	}
	if s.cfg.Auth.JWTSecret != "" {
		middlewares = append(middlewares, JWTAuth(s.cfg.Auth.JWTSecret, skipAuthPaths, s.logger))
	}
	handler := Chain(mux, middlewares...)

	s.httpManager = server.NewManager(handler, server.Config{
		Addr:            fmt.Sprintf(":%d", s.cfg.Server.HTTPPort),
		ReadTimeout:     s.cfg.Server.ReadTimeout,
		WriteTimeout:    s.cfg.Server.WriteTimeout,
		IdleTimeout:     2 * s.cfg.Server.ReadTimeout,
		MaxHeaderBytes:  1 << 20,
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
	}, s.logger)

	if err := s.httpManager.Start(); err != nil {
		return err
	}

	s.logger.Info("HTTP server started", zap.Int("port", s.cfg.Server.HTTPPort))
	return nil
}

func (s *Server) startMetricsServer() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s.metricsManager = server.NewManager(mux, server.Config{
		Addr:            fmt.Sprintf(":%d", s.cfg.Server.MetricsPort),
		ReadTimeout:     s.cfg.Server.ReadTimeout,
		WriteTimeout:    s.cfg.Server.WriteTimeout,
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
	}, s.logger)

	if err := s.metricsManager.Start(); err != nil {
		return err
	}

	s.logger.Info("Metrics server started", zap.Int("port", s.cfg.Server.MetricsPort))
	return nil
}

// WaitForShutdown blocks until a termination signal, then shuts down.
func (s *Server) WaitForShutdown() {
	if s.httpManager != nil {
		s.httpManager.WaitForShutdown()
	}
	s.Shutdown()
}

// Shutdown closes the listeners and backing stores in order.
func (s *Server) Shutdown() {
	s.logger.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if s.rateLimiterCancel != nil {
		s.rateLimiterCancel()
	}

	if s.httpManager != nil {
		if err := s.httpManager.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP server shutdown error", zap.Error(err))
		}
	}
	if s.metricsManager != nil {
		if err := s.metricsManager.Shutdown(ctx); err != nil {
			s.logger.Error("Metrics server shutdown error", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Redis close error", zap.Error(err))
		}
	}
	if s.pool != nil {
		s.collector.RecordDBConnections(s.cfg.Database.Name,
			s.pool.Stats().OpenConnections, s.pool.Stats().Idle)
		if err := s.pool.Close(); err != nil {
			s.logger.Error("Database pool close error", zap.Error(err))
		}
	}

	if err := s.otel.Shutdown(ctx); err != nil {
		s.logger.Error("Telemetry shutdown error", zap.Error(err))
	}

	s.logger.Info("Graceful shutdown completed")
}

// instrumentedProvider records request metrics around the wrapped
// provider's completions.
type instrumentedProvider struct {
	llm.Provider
	collector *metrics.Collector
	model     string
}

func (p *instrumentedProvider) Completion(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	start := time.Now()
	resp, err := p.Provider.Completion(ctx, req)
	elapsed := time.Since(start)

	model := req.Model
	if model == "" {
		model = p.model
	}
	if err != nil {
		p.collector.RecordLLMRequest(p.Name(), model, "error", elapsed, 0, 0)
		return nil, err
	}
	p.collector.RecordLLMRequest(p.Name(), model, "success", elapsed,
		resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	return resp, nil
}
