package bootstrap

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"sentinel/internal/adapters/config"
	"sentinel/internal/adapters/kafka"
	pgclient "sentinel/internal/adapters/postgres"
	redisclient "sentinel/internal/adapters/redis"
	"sentinel/internal/api"
	dashboardapi "sentinel/internal/api/dashboard"
	"sentinel/internal/api/health"
	"sentinel/internal/consumers"
	"sentinel/internal/domain/company"
	"sentinel/internal/domain/dashboard"
	"sentinel/internal/events"
	catalogsvc "sentinel/internal/services/catalog"
	dashboardsvc "sentinel/internal/services/dashboard"
	"sentinel/internal/workers"
	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

// Container holds all application dependencies and their lifecycle
// Components are organized in initialization order
type Container struct {
	// Core configuration & logging
	Config       *config.Config
	Log          *logger.Logger
	ErrorTracker errors.Tracker

	// Infrastructure Layer (Data stores)
	PG    *pgclient.Client
	Redis *redisclient.Client

	Repos       *Repositories
	Services    *Services
	Adapters    *Adapters
	Application *Application
	Background  *Background

	// Lifecycle management
	Lifecycle *Lifecycle
	WG        *sync.WaitGroup
	Context   context.Context
	Cancel    context.CancelFunc
}

// Repositories groups all domain repositories
type Repositories struct {
	Company  company.Repository
	Sessions dashboard.Repository
}

// Services groups all domain services
type Services struct {
	Catalog   *catalogsvc.Service
	Renderer  *dashboardsvc.Renderer
	Dashboard *dashboardsvc.Service
}

// Adapters groups external adapters. Kafka members stay nil when no brokers are configured.
type Adapters struct {
	KafkaProducer        *kafka.Producer
	InvalidationConsumer *kafka.Consumer
	Publisher            *events.Publisher
}

// Application groups application layer components
type Application struct {
	HTTPServer     *api.Server
	HealthHandler  *health.Handler
	DashboardAPI   *dashboardapi.Handler
	RefreshLimiter *rate.Limiter
}

// Background groups all background processing components
type Background struct {
	WorkerScheduler *workers.Scheduler
	InvalidationSvc *consumers.CatalogInvalidationConsumer
}

// NewContainer creates a new dependency container
func NewContainer() *Container {
	ctx, cancel := context.WithCancel(context.Background())

	return &Container{
		Repos:       &Repositories{},
		Services:    &Services{},
		Adapters:    &Adapters{},
		Application: &Application{},
		Background:  &Background{},
		Lifecycle:   NewLifecycle(),
		WG:          &sync.WaitGroup{},
		Context:     ctx,
		Cancel:      cancel,
	}
}

// MustInit initializes all components in the correct order
// Panics on any initialization error (fail-fast at startup)
func (c *Container) MustInit() {
	c.MustInitConfig()
	c.MustInitInfrastructure()
	c.MustInitRepositories()
	c.MustInitAdapters()
	c.MustInitServices()
	c.MustInitApplication()
	c.MustInitBackground()
}

// Start starts the HTTP server and background components
func (c *Container) Start() error {
	c.Log.Info("Starting all systems...")

	c.loadInitialCatalog()

	if c.Background.InvalidationSvc != nil {
		c.WG.Add(1)
		go func() {
			defer c.WG.Done()
			if err := c.Background.InvalidationSvc.Start(c.Context); err != nil && c.Context.Err() == nil {
				c.Log.Errorw("Catalog invalidation consumer failed", "error", err)
			}
		}()
		c.Log.Info("✓ Catalog invalidation consumer started")
	}

	c.WG.Add(1)
	go func() {
		defer c.WG.Done()
		if err := c.Application.HTTPServer.Start(); err != nil {
			c.Log.Errorf("HTTP server failed: %v", err)
			c.Cancel() // Trigger shutdown on fatal HTTP error
		}
	}()

	if err := c.Background.WorkerScheduler.Start(c.Context); err != nil {
		return errors.Wrap(err, "failed to start workers")
	}

	c.Log.Info("✓ All systems operational")
	return nil
}

// loadInitialCatalog performs the startup fetch. The refresh worker runs immediately
// when enabled, so the load only happens here when it is not.
func (c *Container) loadInitialCatalog() {
	if !c.Config.Dashboard.LoadOnStart || c.Config.Workers.CatalogRefreshEnabled {
		return
	}

	c.WG.Add(1)
	go func() {
		defer c.WG.Done()
		if err := c.Services.Catalog.Refresh(c.Context); err != nil {
			c.Log.Warnw("Initial catalog load failed", "error", err)
			return
		}
		c.Log.Infow("✓ Initial catalog loaded", "companies", c.Services.Catalog.Status().Count)
	}()
}

// Shutdown performs graceful shutdown in the correct order
func (c *Container) Shutdown() {
	c.Log.Info("Initiating graceful shutdown...")

	// Cancel application context to signal all other components to stop
	c.Cancel()

	c.Lifecycle.Shutdown(c.shutdownTargets(), c.Log)
}

// shutdownTargets collects the started components, leaving out the optional ones
// that were never created
func (c *Container) shutdownTargets() ShutdownTargets {
	t := ShutdownTargets{
		WG:           c.WG,
		ErrorTracker: c.ErrorTracker,
	}
	if c.Application.HTTPServer != nil {
		t.HTTPServer = c.Application.HTTPServer
	}
	if c.Background.WorkerScheduler != nil {
		t.WorkerScheduler = c.Background.WorkerScheduler
	}
	if c.Background.InvalidationSvc != nil {
		t.Consumers = append(t.Consumers, NamedCloser{Name: "catalog_invalidation", Closer: c.Background.InvalidationSvc})
	}
	if c.Adapters.KafkaProducer != nil {
		t.KafkaProducer = c.Adapters.KafkaProducer
	}
	if c.PG != nil {
		t.Databases = append(t.Databases, NamedCloser{Name: "postgres", Closer: c.PG})
	}
	if c.Redis != nil {
		t.Databases = append(t.Databases, NamedCloser{Name: "redis", Closer: c.Redis})
	}
	return t
}
