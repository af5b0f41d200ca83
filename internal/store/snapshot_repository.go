package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CapabilitySnapshot is one day's aggregate view of the workforce,
// persisted by the nightly snapshot job so trend reports survive
// re-imports.
type CapabilitySnapshot struct {
	Date          time.Time       `json:"date"`
	TotalOfficers int             `json:"total_officers"`
	Stats         json.RawMessage `json:"stats"`
}

// SnapshotRepository persists capability snapshots
type SnapshotRepository struct {
	db *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository instance
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save upserts the snapshot for its date.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot *CapabilitySnapshot) error {
	query := `
		INSERT INTO capability_snapshots (snapshot_date, total_officers, stats, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (snapshot_date) DO UPDATE SET
			total_officers = EXCLUDED.total_officers,
			stats = EXCLUDED.stats,
			created_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, snapshot.Date, snapshot.TotalOfficers, snapshot.Stats)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// GetLatest retrieves the most recent snapshot.
func (r *SnapshotRepository) GetLatest(ctx context.Context) (*CapabilitySnapshot, error) {
	query := `
		SELECT snapshot_date, total_officers, stats
		FROM capability_snapshots
		ORDER BY snapshot_date DESC
		LIMIT 1
	`

	snapshot := &CapabilitySnapshot{}
	err := r.db.QueryRow(ctx, query).Scan(&snapshot.Date, &snapshot.TotalOfficers, &snapshot.Stats)
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return snapshot, nil
}
