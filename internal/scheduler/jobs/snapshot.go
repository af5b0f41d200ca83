package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kumul-digital/capdash/backend/internal/reports"
	"github.com/kumul-digital/capdash/backend/internal/store"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

// SnapshotJob persists the nightly capability aggregate so the dashboard can
// show trends across imports.
type SnapshotJob struct {
	reports   *reports.Service
	snapshots *store.SnapshotRepository
	logger    *logger.Logger
}

func NewSnapshotJob(reportsService *reports.Service, snapshots *store.SnapshotRepository, log *logger.Logger) *SnapshotJob {
	return &SnapshotJob{
		reports:   reportsService,
		snapshots: snapshots,
		logger:    log,
	}
}

func (j *SnapshotJob) Name() string {
	return "capability_snapshot"
}

// Schedule runs nightly at 02:00, after any working-day imports have settled.
func (j *SnapshotJob) Schedule() string {
	return "0 0 2 * * *"
}

func (j *SnapshotJob) Run(ctx context.Context) error {
	summary, err := j.reports.Summary(ctx)
	if err != nil {
		return fmt.Errorf("failed to build summary for snapshot: %w", err)
	}

	gaps, err := j.reports.Gaps(ctx)
	if err != nil {
		return fmt.Errorf("failed to build gap report for snapshot: %w", err)
	}

	stats, err := json.Marshal(map[string]interface{}{
		"summary": summary,
		"gaps":    gaps,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot stats: %w", err)
	}

	snapshot := &store.CapabilitySnapshot{
		Date:          time.Now().UTC().Truncate(24 * time.Hour),
		TotalOfficers: summary.TotalOfficers,
		Stats:         stats,
	}

	if err := j.snapshots.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save capability snapshot: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"date":     snapshot.Date.Format("2006-01-02"),
		"officers": snapshot.TotalOfficers,
	}).Info("Capability snapshot saved")

	return nil
}
