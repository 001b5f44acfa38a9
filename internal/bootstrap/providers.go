package bootstrap

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"sentinel/internal/adapters/config"
	errnoop "sentinel/internal/adapters/errors/noop"
	"sentinel/internal/adapters/errors/sentry"
	"sentinel/internal/adapters/kafka"
	pgclient "sentinel/internal/adapters/postgres"
	redisclient "sentinel/internal/adapters/redis"
	"sentinel/internal/api"
	dashboardapi "sentinel/internal/api/dashboard"
	"sentinel/internal/api/health"
	"sentinel/internal/consumers"
	"sentinel/internal/events"
	"sentinel/internal/metrics"
	pgrepo "sentinel/internal/repository/postgres"
	redisrepo "sentinel/internal/repository/redis"
	catalogsvc "sentinel/internal/services/catalog"
	dashboardsvc "sentinel/internal/services/dashboard"
	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
	"sentinel/pkg/reconnect"
)

const (
	connectTimeout  = 10 * time.Second
	connectAttempts = 6
)

// ========================================
// Phase 1: Configuration & Logging
// ========================================

// MustInitConfig loads configuration and initializes logger
func (c *Container) MustInitConfig() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	c.Config = cfg

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env, cfg.App.Name); err != nil {
		panic("failed to init logger: " + err.Error())
	}

	c.Log = logger.Get()
	c.Log.Infof("Starting %s %s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Env)

	c.ErrorTracker = provideErrorTracker(cfg, c.Log)
	logger.SetErrorTracker(c.ErrorTracker)
}

// ========================================
// Phase 2: Infrastructure Layer
// ========================================

// MustInitInfrastructure connects the record store and the session store
func (c *Container) MustInitInfrastructure() {
	c.Log.Info("Connecting to PostgreSQL...")
	err := connect(c.Context, c.Log.With("store", "postgres"), func(ctx context.Context) error {
		pg, err := pgclient.NewClient(ctx, c.Config.Postgres)
		c.PG = pg
		return err
	})
	if err != nil {
		c.Log.Fatalf("failed to connect postgres: %v", err)
	}
	c.Log.Info("✓ PostgreSQL connected")

	c.Log.Info("Connecting to Redis...")
	err = connect(c.Context, c.Log.With("store", "redis"), func(ctx context.Context) error {
		rdb, err := redisclient.NewClient(ctx, c.Config.Redis)
		c.Redis = rdb
		return err
	})
	if err != nil {
		c.Log.Fatalf("failed to connect redis: %v", err)
	}
	c.Log.Info("✓ Redis connected")
}

// connect retries a store connection with backoff so the service can start
// alongside its dependencies
func connect(ctx context.Context, log *logger.Logger, dial func(context.Context) error) error {
	backoff := reconnect.NewManager(reconnect.Config{
		MinBackoff: 500 * time.Millisecond,
		MaxBackoff: 5 * time.Second,
		MaxRetries: connectAttempts,
	}, log)

	return backoff.Retry(ctx, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return dial(attemptCtx)
	})
}

// ========================================
// Phase 3: Repositories
// ========================================

// MustInitRepositories initializes all domain repositories
func (c *Container) MustInitRepositories() {
	c.Repos.Company = pgrepo.NewCompanyRepository(c.PG.DB())
	c.Repos.Sessions = redisrepo.NewDashboardSessionRepository(c.Redis)

	c.Log.Info("✓ Repositories initialized")
}

// ========================================
// Phase 4: External Adapters
// ========================================

// MustInitAdapters creates the optional Kafka producer and invalidation reader
func (c *Container) MustInitAdapters() {
	if !c.Config.Kafka.Enabled() {
		c.Log.Info("Kafka brokers not configured, catalog events disabled")
		return
	}

	c.Adapters.KafkaProducer = provideKafkaProducer(c.Config, c.Log)
	c.Adapters.Publisher = events.NewPublisher(
		c.Adapters.KafkaProducer,
		c.Config.Kafka.Topic,
		c.Config.App.Name,
		c.Log,
	)
	c.Adapters.InvalidationConsumer = provideKafkaConsumer(c.Config, c.Config.Kafka.InvalidationTopic, c.Log)
}

// ========================================
// Phase 5: Services
// ========================================

// MustInitServices initializes the catalog and the dashboard session service
func (c *Container) MustInitServices() {
	c.Services.Catalog = catalogsvc.NewService(c.Repos.Company, c.Log)
	c.Services.Catalog.SetFetchTimeout(c.Config.Dashboard.FetchTimeout)
	if c.Adapters.Publisher != nil {
		c.Services.Catalog.SetPublisher(c.Adapters.Publisher)
	}

	c.Services.Renderer = dashboardsvc.NewRenderer(c.Config.Dashboard.NarrationBaseURL)
	c.Services.Dashboard = dashboardsvc.NewService(
		c.Repos.Sessions,
		c.Services.Catalog,
		c.Services.Renderer,
		c.Config.Dashboard.SessionTTL,
		c.Log,
	)
	c.Services.Dashboard.SetTracker(c.ErrorTracker)

	c.Log.Info("✓ Services initialized")
}

// ========================================
// Phase 6: Application Layer
// ========================================

// MustInitApplication wires health checks, metrics and the HTTP API
func (c *Container) MustInitApplication() {
	c.Application.HealthHandler = health.New(c.Log, c.Config.App.Name, c.Config.App.Version).
		Register("postgres", c.PG).
		Register("redis", c.Redis)

	metrics.Init()
	prometheus.MustRegister(metrics.NewStoreCollector(c.Log, c.PG.DB(), c.Redis.Client()))
	c.Log.Info("✓ Metrics initialized")

	c.Application.RefreshLimiter = rate.NewLimiter(
		rate.Limit(c.Config.Dashboard.RefreshRate),
		c.Config.Dashboard.RefreshBurst,
	)
	c.Application.DashboardAPI = dashboardapi.NewHandler(
		c.Services.Catalog,
		c.Services.Dashboard,
		c.Services.Renderer,
		c.Application.RefreshLimiter,
		c.Log,
	)

	c.Application.HTTPServer = provideHTTPServer(c.Config, c.Application.HealthHandler, c.Log, c.Application.DashboardAPI)

	c.Log.Info("✓ Application layer initialized")
}

// ========================================
// Phase 7: Background Processing
// ========================================

// MustInitBackground initializes background workers and consumers
func (c *Container) MustInitBackground() {
	c.Background.WorkerScheduler = provideWorkers(c.Services.Catalog, c.Config, c.Log)

	if c.Adapters.InvalidationConsumer != nil {
		c.Background.InvalidationSvc = consumers.NewCatalogInvalidationConsumer(
			c.Adapters.InvalidationConsumer,
			c.Services.Catalog,
			c.Config.Kafka.InvalidationTopic,
			c.Log,
		)
	}

	c.Log.Info("✓ Background processing initialized")
}

// ========================================
// Helper Provider Functions
// ========================================

func provideErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return errnoop.New()
	}

	tracker, err := sentry.New(sentry.Options{
		DSN:         cfg.ErrorTracking.SentryDSN,
		Environment: cfg.ErrorTracking.Environment,
		Release:     cfg.App.Name + "@" + cfg.App.Version,
		ServerName:  cfg.App.Name,
	})
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return errnoop.New()
	}

	log.Info("✓ Error tracking initialized (Sentry)")
	return tracker
}

func provideKafkaProducer(cfg *config.Config, log *logger.Logger) *kafka.Producer {
	producer := kafka.NewProducer(kafka.ProducerConfig{
		Brokers: cfg.Kafka.Brokers,
	})
	log.Infow("✓ Kafka producer initialized", "topic", cfg.Kafka.Topic)
	return producer
}

func provideKafkaConsumer(cfg *config.Config, topic string, log *logger.Logger) *kafka.Consumer {
	consumer := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID,
		Topic:   topic,
	})
	log.Infow("✓ Kafka consumer initialized", "topic", topic)
	return consumer
}

func provideHTTPServer(cfg *config.Config, healthHandler *health.Handler, log *logger.Logger, providers ...api.RouteProvider) *api.Server {
	return api.NewServer(api.ServerConfig{
		Port:          cfg.HTTP.Port,
		ServiceName:   cfg.App.Name,
		Version:       cfg.App.Version,
		ReadTimeout:   cfg.HTTP.ReadTimeout,
		WriteTimeout:  cfg.HTTP.WriteTimeout,
		AllowedOrigin: cfg.HTTP.AllowedOrigin,
	}, healthHandler, log, providers...)
}
