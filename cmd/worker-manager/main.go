// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	"volunteer-matching/internal/catalog"
	"volunteer-matching/internal/common/aws"
	"volunteer-matching/internal/common/camunda"
	"volunteer-matching/internal/common/config"
	"volunteer-matching/internal/common/database"
	"volunteer-matching/internal/common/logger"
	"volunteer-matching/internal/common/observability"
	"volunteer-matching/internal/common/validation"
	"volunteer-matching/internal/feedback"
	"volunteer-matching/internal/profile"
	"volunteer-matching/pkg/registry"

	cms "volunteer-matching/internal/workers/matching/calculate-match-score"
	fv "volunteer-matching/internal/workers/matching/find-volunteers"
	nr "volunteer-matching/internal/workers/matching/notify-recommendations"
	ro "volunteer-matching/internal/workers/matching/rank-opportunities"
	rmf "volunteer-matching/internal/workers/matching/record-match-feedback"
	sr "volunteer-matching/internal/workers/matching/select-recommendations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("catalogSource", cfg.Matching.CatalogSource),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Zeebe ---
	zeebe, err := camunda.NewClient(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres init failed", zap.Error(err))
	}
	defer pg.Close()
	if err := camunda.Retry(ctx, camunda.DefaultRetryConfig, "postgres connection", pg.Ping); err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Redis profile cache ---
	rdb := database.NewRedis(cfg.Database.Redis)
	defer rdb.Close()
	if err := camunda.Retry(ctx, camunda.DefaultRetryConfig, "redis connection", rdb.Ping); err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	zapLog.Info("Redis connected successfully")

	// --- Elasticsearch, only as a catalog source ---
	deps := catalog.Deps{DB: pg.DB, Logger: log}
	if cfg.Matching.CatalogSource == config.CatalogElasticsearch {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Fatal("elasticsearch init failed", zap.Error(err))
		}
		if err := camunda.Retry(ctx, camunda.DefaultRetryConfig, "elasticsearch connection", es.Ping); err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		deps.ES = es.Client
		zapLog.Info("Elasticsearch connected successfully")
	}

	cat, err := catalog.New(cfg.Matching, deps)
	if err != nil {
		zapLog.Fatal("catalog init failed", zap.Error(err))
	}
	zapLog.Info("Opportunity catalog ready", catalogFields(cat)...)

	profiles := profile.NewStore(pg.DB, rdb.Client, cfg.Matching.CacheTTL(), log)
	feedbackStore := feedback.NewStore(pg.DB)

	reg, err := registry.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	validator, err := validation.NewSchemaValidator(reg)
	if err != nil {
		zapLog.Fatal("schema compilation failed", zap.Error(err))
	}

	// --- Notification channels ---
	var emailSender nr.EmailSender
	if cfg.Notifications.Email.Enabled {
		ses, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.Email.FromEmail)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
		emailSender = ses
	}
	var smsSender nr.SMSSender
	if cfg.Notifications.SMS.Enabled {
		sns, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.SMS.SenderID)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		smsSender = sns
	}

	// --- Workers ---
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	var workers []worker.JobWorker
	start := func(taskType string, handler camunda.HandlerFunc) {
		jw := camunda.StartWorker(zeebe.Zeebe(), taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, log)
		if jw != nil {
			workers = append(workers, jw)
		}
	}

	{
		c := cms.LoadConfig()
		c.Timeout = timeout(cms.TaskType)
		h := cms.NewHandler(c, cms.Dependencies{
			Profiles:      profiles,
			Catalog:       cat,
			Validator:     validator,
			Observability: obs,
		}, log)
		start(cms.TaskType, h.Handle)
	}

	{
		c := ro.LoadConfig()
		c.Timeout = timeout(ro.TaskType)
		c.TopMatches = cfg.Matching.TopMatches
		h := ro.NewHandler(c, ro.Dependencies{
			Profiles:      profiles,
			Catalog:       cat,
			Ratings:       feedbackStore,
			Validator:     validator,
			Observability: obs,
		}, log)
		start(ro.TaskType, h.Handle)
	}

	{
		c := sr.LoadConfig()
		c.Timeout = timeout(sr.TaskType)
		c.TopMatches = cfg.Matching.TopMatches
		c.Recommendations = cfg.Matching.Recommendations
		h := sr.NewHandler(c, validator, log)
		start(sr.TaskType, h.Handle)
	}

	{
		c := fv.LoadConfig()
		c.Timeout = timeout(fv.TaskType)
		h := fv.NewHandler(c, fv.Dependencies{
			Volunteers:    profiles,
			Catalog:       cat,
			Validator:     validator,
			Observability: obs,
		}, log)
		start(fv.TaskType, h.Handle)
	}

	{
		c := rmf.LoadConfig()
		c.Timeout = timeout(rmf.TaskType)
		h := rmf.NewHandler(c, feedbackStore, validator, log)
		start(rmf.TaskType, h.Handle)
	}

	{
		c := nr.LoadConfig()
		c.Timeout = timeout(nr.TaskType)
		c.EmailEnabled = cfg.Notifications.Email.Enabled
		c.SMSEnabled = cfg.Notifications.SMS.Enabled
		h := nr.NewHandler(c, emailSender, smsSender, validator, log)
		start(nr.TaskType, h.Handle)
	}

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: newServeMux(map[string]readinessCheck{
			"zeebe":    zeebe.HealthCheck,
			"postgres": pg.Ping,
			"redis":    rdb.Ping,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, jw := range workers {
		jw.Close()
		jw.AwaitClose()
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping meter provider", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func catalogFields(cat catalog.Catalog) []zap.Field {
	fields := []zap.Field{zap.String("source", cat.Source())}
	if fc, ok := cat.(*catalog.FileCatalog); ok {
		fields = append(fields, zap.String("path", fc.Path()))
	}
	return fields
}
