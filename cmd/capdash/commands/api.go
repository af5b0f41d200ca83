package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kumul-digital/capdash/backend/internal/api"
	"github.com/kumul-digital/capdash/backend/internal/api/handlers"
	"github.com/kumul-digital/capdash/backend/internal/contracts"
	"github.com/kumul-digital/capdash/backend/internal/external/gemini"
	"github.com/kumul-digital/capdash/backend/internal/ingest"
	"github.com/kumul-digital/capdash/backend/internal/reports"
	"github.com/kumul-digital/capdash/backend/internal/scheduler"
	"github.com/kumul-digital/capdash/backend/internal/scheduler/jobs"
	"github.com/kumul-digital/capdash/backend/internal/store"
	"github.com/kumul-digital/capdash/backend/pkg/config"
	"github.com/kumul-digital/capdash/backend/pkg/database"
	"github.com/kumul-digital/capdash/backend/pkg/httputil"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
	"github.com/kumul-digital/capdash/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the dashboard API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                    - Health check
  POST /api/import/paste          - Import pasted questionnaire rows
  POST /api/import/spreadsheet    - Import an uploaded spreadsheet
  POST /api/import/document       - Import a scanned document
  GET  /api/officers              - Stored officer records
  GET  /api/establishment         - Establishment register
  GET  /api/reports/summary       - Dashboard aggregate
  GET  /api/reports/gaps          - Gap analysis
  GET  /api/reports/misalignment  - Appraisal misalignment
  GET  /api/reports/training      - Training needs
  GET  /api/reports/coverage      - Questionnaire coverage
  POST /api/reports/narrative     - Generated report prose

Example:
  go run ./cmd/capdash api
  go run ./cmd/capdash api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// Database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := store.EnsureSchema(cmd.Context(), db.Pool); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	log.Info("Connected to database")

	// Redis (optional)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	cache := redis.NewCache(redisClient, "capdash")

	// Gemini (optional; import and narrative endpoints degrade without it)
	var extractor contracts.TableExtractor
	var narrator contracts.NarrativeGenerator
	if cfg.Gemini.APIKey != "" {
		httpClient := httputil.NewWithTimeout(cfg, log, cfg.Gemini.Timeout).
			WithRateLimit(cfg.Gemini.RequestsPerMinute)
		geminiClient, err := gemini.NewClient(cmd.Context(), cfg, httpClient, log)
		if err != nil {
			return fmt.Errorf("create gemini client: %w", err)
		}
		extractor = geminiClient
		narrator = geminiClient
	} else {
		log.Warn("GEMINI_API_KEY not set; document import and narratives disabled")
	}

	// Repositories
	officerRepo := store.NewOfficerRepository(db.Pool)
	establishmentRepo := store.NewEstablishmentRepository(db.Pool)
	snapshotRepo := store.NewSnapshotRepository(db.Pool)

	// Services
	normalizer := ingest.NewNormalizer(ingest.NormalizerConfig{
		AgencyType:  cfg.Import.AgencyType,
		PreviewRows: cfg.Import.PreviewRows,
	}, log)
	importService := ingest.NewService(normalizer, extractor, officerRepo, establishmentRepo, log)
	reportService := reports.NewService(officerRepo, establishmentRepo, cache, log)

	// Nightly snapshot
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewSnapshotJob(reportService, snapshotRepo, log)); err != nil {
		return fmt.Errorf("register snapshot job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	// HTTP
	importHandler := handlers.NewImportHandler(importService, log)
	recordsHandler := handlers.NewRecordsHandler(officerRepo, establishmentRepo, log)
	reportsHandler := handlers.NewReportsHandler(reportService, narrator, log)

	router := api.NewRouter(importHandler, recordsHandler, reportsHandler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
