package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/formdeck/formdeck/internal/ai"
	"github.com/formdeck/formdeck/internal/config"
	"github.com/formdeck/formdeck/internal/docstore"
	"github.com/formdeck/formdeck/internal/embedcache"
	"github.com/formdeck/formdeck/internal/handler"
	"github.com/formdeck/formdeck/internal/job"
	"github.com/formdeck/formdeck/internal/middleware"
	"github.com/formdeck/formdeck/internal/model"
	"github.com/formdeck/formdeck/internal/schedule"
	"github.com/formdeck/formdeck/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "formdeck",
		Short: "formdeck backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run formdeck server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

// newEmbeddingService builds the process-wide embedding capability. A
// provider that fails to initialize disables the capability instead of
// refusing to start: FAQ writes then persist without vectors and the
// backfill job repairs them once the provider is back.
func newEmbeddingService(cfg *config.Config) *service.EmbeddingService {
	if !cfg.AI.Enabled() {
		logutil.GetLogger(context.Background()).Warn("no embedding provider configured, capability disabled")
		return service.NewDisabledEmbeddingService()
	}
	provider, err := ai.NewEmbedProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		logutil.GetLogger(context.Background()).Warn("init embedding provider failed, capability disabled", zap.Error(err))
		return service.NewDisabledEmbeddingService()
	}
	embedder := ai.NewEmbedder(provider, cfg.AI.Model)
	embedder = embedcache.WrapLruCacheToEmbedder(
		embedder,
		cfg.AI.CacheSize,
		time.Duration(cfg.AI.CacheTTLMinutes)*time.Minute,
	)
	return service.NewEmbeddingService(embedder, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("data_dir", cfg.DataDir),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	schemaCollection := docstore.NewCollection[model.AppSchema](cfg.DataDir, "app_schemas")
	faqCollection := docstore.NewCollection[model.FAQ](cfg.DataDir, "faqs")

	embeddings := newEmbeddingService(cfg)
	schemaService := service.NewSchemaService(schemaCollection)
	faqService := service.NewFAQService(faqCollection, embeddings)

	deps := handler.RouterDeps{
		Schemas: handler.NewSchemaHandler(schemaService),
		FAQs:    handler.NewFAQHandler(faqService),
	}

	engine, err := webapi.NewEngine(
		"/api",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if cfg.BackfillCron != "" {
		if err := scheduler.AddJob(job.NewEmbeddingBackfillJob(faqService), cfg.BackfillCron); err != nil {
			return fmt.Errorf("schedule backfill job: %w", err)
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
