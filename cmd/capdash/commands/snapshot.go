package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kumul-digital/capdash/backend/internal/reports"
	"github.com/kumul-digital/capdash/backend/internal/scheduler/jobs"
	"github.com/kumul-digital/capdash/backend/internal/store"
	"github.com/kumul-digital/capdash/backend/pkg/config"
	"github.com/kumul-digital/capdash/backend/pkg/database"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Run the capability snapshot job once",
	Long: `Builds the capability aggregate and saves today's snapshot.

The API server runs this nightly; the command exists for backfills and
for verifying the job after an import.`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := store.EnsureSchema(cmd.Context(), db.Pool); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	reportService := reports.NewService(
		store.NewOfficerRepository(db.Pool),
		store.NewEstablishmentRepository(db.Pool),
		nil, // no cache for a one-shot run
		log,
	)
	job := jobs.NewSnapshotJob(reportService, store.NewSnapshotRepository(db.Pool), log)

	if err := job.Run(cmd.Context()); err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}

	fmt.Println("Capability snapshot saved")
	return nil
}
