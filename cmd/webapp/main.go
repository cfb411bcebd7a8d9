package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/sentiview/config"
	"github.com/spacesedan/sentiview/internal/analysis"
	"github.com/spacesedan/sentiview/internal/clients"
	"github.com/spacesedan/sentiview/internal/clients/kafka_client"
	"github.com/spacesedan/sentiview/internal/db"
	"github.com/spacesedan/sentiview/internal/logging"
	"github.com/spacesedan/sentiview/internal/monitoring"
	"github.com/spacesedan/sentiview/internal/sentiment"
	"github.com/spacesedan/sentiview/internal/server"
)

func main() {
	config.LoadEnv(config.AppEnv())
	cfg, err := config.Load()
	if err != nil {
		logging.InitLogger(slog.LevelInfo)
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	classifier, err := sentiment.New(cfg)
	if err != nil {
		slog.Error("[Main] Failed to load classifier",
			slog.String("backend", cfg.ClassifierBackend),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Main] Classifier ready", slog.String("backend", classifier.Name()))

	var opts []analysis.Option

	if cfg.CacheEnabled() {
		valkeyClient, err := clients.NewValkeyClient(ctx, cfg.ValkeyAddress, cfg.ValkeyPassword, cfg.ValkeyTLS)
		if err != nil {
			slog.Warn("[Main] Report cache unavailable, continuing without it",
				slog.String("error", err.Error()))
		} else {
			defer valkeyClient.Close()
			cacheHealthy := &atomic.Bool{}
			cacheHealthy.Store(true)
			go monitoring.MonitorCacheHealth(ctx, valkeyClient, cacheHealthy, monitoring.HEALTHCHECK_TIMER)
			opts = append(opts, analysis.WithCache(analysis.NewReportCache(valkeyClient, cfg.CacheTTL), cacheHealthy))
		}
	}

	if cfg.HistoryEnabled() {
		awsCfg, err := clients.NewAWSConfig(ctx, cfg.AWSRegion)
		if err != nil {
			slog.Warn("[Main] Analysis history unavailable, continuing without it",
				slog.String("error", err.Error()))
		} else {
			dynamo := clients.NewDynamoDBClient(awsCfg, cfg.AWSEndpoint)
			opts = append(opts, analysis.WithHistory(db.NewHistoryStore(dynamo, cfg.HistoryTableName)))
		}
	}

	if cfg.EventsEnabled() {
		producer, err := kafka_client.NewProducer(kafka_client.KafkaConfig{
			Broker: cfg.KafkaBroker,
			Topic:  cfg.KafkaTopicAnalysis,
		})
		if err != nil {
			slog.Warn("[Main] Analysis events unavailable, continuing without them",
				slog.String("error", err.Error()))
		} else {
			defer producer.Close()
			opts = append(opts, analysis.WithEvents(producer))
		}
	}

	svc := analysis.NewService(classifier, cfg.TextColumn, cfg.WordCloudMaxWords, opts...)

	if cfg.Env == "dev" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := server.New(svc, cfg.MaxUploadBytes)
	if err != nil {
		slog.Error("[Main] Failed to build router", slog.String("error", err.Error()))
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("[Main] Server starting", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("[Main] Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Forced shutdown", slog.String("error", err.Error()))
	}
	slog.Info("[Main] Server exited")
}
