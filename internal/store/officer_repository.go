package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
)

// OfficerRepository persists officer records in PostgreSQL
type OfficerRepository struct {
	db *pgxpool.Pool
}

// NewOfficerRepository creates a new OfficerRepository instance
func NewOfficerRepository(db *pgxpool.Pool) *OfficerRepository {
	return &OfficerRepository{db: db}
}

// ReplaceAll swaps the stored officer set for the given one in a single
// transaction. Imports always write the full merged set, so a replace is
// the only mutation the table sees.
func (r *OfficerRepository) ReplaceAll(ctx context.Context, officers []contracts.OfficerRecord) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM officers`); err != nil {
		return fmt.Errorf("clear officers: %w", err)
	}

	query := `
		INSERT INTO officers (
			email, name, position, division, grade, grading_group,
			age, years_experience, spa_rating, performance_level,
			misalignment_flag, capability_ratings, technical_gaps,
			leadership_gaps, ict_skills, training_prefs, training_history,
			secondment
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	for i := range officers {
		o := &officers[i]

		ratings, err := json.Marshal(o.CapabilityRatings)
		if err != nil {
			return fmt.Errorf("marshal ratings: %w", err)
		}
		history, err := json.Marshal(o.TrainingHistory)
		if err != nil {
			return fmt.Errorf("marshal training history: %w", err)
		}
		technical, _ := json.Marshal(o.TechnicalCapabilityGaps)
		leadership, _ := json.Marshal(o.LeadershipCapabilityGaps)
		ict, _ := json.Marshal(o.ICTSkills)
		prefs, _ := json.Marshal(o.TrainingPreferences)

		_, err = tx.Exec(ctx, query,
			o.Email, o.Name, o.Position, o.Division, o.Grade, string(o.GradingGroup),
			o.Age, o.YearsOfExperience, o.SPARating, o.PerformanceLevel,
			o.MisalignmentFlag, ratings, technical,
			leadership, ict, prefs, history,
			o.InterestedInSecondment,
		)
		if err != nil {
			return fmt.Errorf("insert officer %q: %w", o.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// List returns all officer records in insertion order.
func (r *OfficerRepository) List(ctx context.Context) ([]contracts.OfficerRecord, error) {
	query := `
		SELECT
			email, name, position, division, grade, grading_group,
			age, years_experience, spa_rating, performance_level,
			misalignment_flag, capability_ratings, technical_gaps,
			leadership_gaps, ict_skills, training_prefs, training_history,
			secondment
		FROM officers
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query officers: %w", err)
	}
	defer rows.Close()

	var officers []contracts.OfficerRecord
	for rows.Next() {
		var o contracts.OfficerRecord
		var group string
		var ratings, technical, leadership, ict, prefs, history []byte

		err := rows.Scan(
			&o.Email, &o.Name, &o.Position, &o.Division, &o.Grade, &group,
			&o.Age, &o.YearsOfExperience, &o.SPARating, &o.PerformanceLevel,
			&o.MisalignmentFlag, &ratings, &technical,
			&leadership, &ict, &prefs, &history,
			&o.InterestedInSecondment,
		)
		if err != nil {
			return nil, fmt.Errorf("scan officer: %w", err)
		}

		o.GradingGroup = contracts.GradingGroup(group)
		if err := json.Unmarshal(ratings, &o.CapabilityRatings); err != nil {
			return nil, fmt.Errorf("unmarshal ratings: %w", err)
		}
		if err := json.Unmarshal(history, &o.TrainingHistory); err != nil {
			return nil, fmt.Errorf("unmarshal training history: %w", err)
		}
		_ = json.Unmarshal(technical, &o.TechnicalCapabilityGaps)
		_ = json.Unmarshal(leadership, &o.LeadershipCapabilityGaps)
		_ = json.Unmarshal(ict, &o.ICTSkills)
		_ = json.Unmarshal(prefs, &o.TrainingPreferences)

		officers = append(officers, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate officers: %w", err)
	}
	return officers, nil
}

// Count returns the number of stored officer records.
func (r *OfficerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM officers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count officers: %w", err)
	}
	return count, nil
}
