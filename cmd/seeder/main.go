package main

import (
	"context"
	"flag"
	"os"
	"time"

	"sentinel/internal/adapters/config"
	"sentinel/internal/adapters/kafka"
	pgclient "sentinel/internal/adapters/postgres"
	"sentinel/internal/events"
	"sentinel/internal/seeds"
	devseeds "sentinel/internal/seeds/dev"
	testseeds "sentinel/internal/seeds/test"
	tseeds "sentinel/internal/testsupport/seeds"
	"sentinel/pkg/logger"
)

type seedFunc func(context.Context, *tseeds.Seeder) error

func main() {
	env := flag.String("env", "dev", "Dataset: dev, test")
	file := flag.String("file", "", "YAML fixture file; overrides -env")
	dryRun := flag.Bool("dry-run", false, "Validate the dataset without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env, "seeder"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infow("Starting seeder",
		"environment", *env,
		"file", *file,
		"dry_run", *dryRun,
		"database", cfg.Postgres.Database,
	)

	seed, err := selectSeed(*env, *file)
	if err != nil {
		log.Errorw("Invalid dataset", "error", err)
		os.Exit(1)
	}
	if seed == nil {
		log.Warnw("No seeds available for environment", "environment", *env)
		return
	}

	if *dryRun {
		log.Info("✅ Dry-run mode: dataset validated")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := pgclient.NewClient(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()

	seeder := tseeds.New(pg.DB()).WithContext(ctx)
	if err := seeder.EnsureSchema(); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	if err := seed(ctx, seeder); err != nil {
		log.Errorw("Failed to execute seed", "error", err)
		os.Exit(1)
	}
	log.Info("✅ All seeds applied successfully")

	announce(ctx, cfg, log)
}

// selectSeed resolves the flags to a seed function. A fixture file is parsed up front
// so -dry-run reports validation errors.
func selectSeed(env, file string) (seedFunc, error) {
	if file != "" {
		companies, err := seeds.LoadFile(file)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, s *tseeds.Seeder) error {
			return seeds.Apply(ctx, s, companies)
		}, nil
	}

	switch env {
	case "dev":
		if _, err := devseeds.Dataset(); err != nil {
			return nil, err
		}
		return devseeds.SeedCompanies, nil
	case "test":
		return testseeds.SeedCompanies, nil
	default:
		return nil, nil
	}
}

// announce tells running dashboards to reload; skipped without Kafka
func announce(ctx context.Context, cfg *config.Config, log *logger.Logger) {
	if !cfg.Kafka.Enabled() {
		return
	}

	producer := kafka.NewProducer(kafka.ProducerConfig{Brokers: cfg.Kafka.Brokers})
	defer producer.Close()

	publisher := events.NewPublisher(producer, cfg.Kafka.InvalidationTopic, "seeder", log)
	if err := publisher.PublishCatalogInvalidated(ctx, "seed data applied"); err != nil {
		log.Warnw("Failed to announce catalog invalidation", "error", err)
		return
	}
	log.Infow("✓ Catalog invalidation announced", "topic", cfg.Kafka.InvalidationTopic)
}
