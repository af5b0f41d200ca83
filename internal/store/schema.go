package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the DDL for all capdash tables. EnsureSchema is idempotent
// and is run by the CLI before serving or importing.
const schema = `
CREATE TABLE IF NOT EXISTS officers (
	id                  BIGSERIAL PRIMARY KEY,
	email               TEXT NOT NULL DEFAULT '',
	name                TEXT NOT NULL,
	position            TEXT NOT NULL,
	division            TEXT NOT NULL,
	grade               TEXT NOT NULL,
	grading_group       TEXT NOT NULL,
	age                 INT,
	years_experience    INT,
	spa_rating          TEXT NOT NULL DEFAULT '',
	performance_level   TEXT NOT NULL DEFAULT '',
	misalignment_flag   TEXT NOT NULL DEFAULT '',
	capability_ratings  JSONB NOT NULL DEFAULT '[]',
	technical_gaps      JSONB NOT NULL DEFAULT '[]',
	leadership_gaps     JSONB NOT NULL DEFAULT '[]',
	ict_skills          JSONB NOT NULL DEFAULT '[]',
	training_prefs      JSONB NOT NULL DEFAULT '[]',
	training_history    JSONB NOT NULL DEFAULT '[]',
	secondment          BOOLEAN,
	imported_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS establishment (
	id              BIGSERIAL PRIMARY KEY,
	position_number TEXT NOT NULL,
	division        TEXT NOT NULL,
	grade           TEXT NOT NULL,
	designation     TEXT NOT NULL,
	occupant        TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	imported_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS capability_snapshots (
	snapshot_date  DATE PRIMARY KEY,
	total_officers INT NOT NULL,
	stats          JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
