package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
)

// EstablishmentRepository persists the establishment register
type EstablishmentRepository struct {
	db *pgxpool.Pool
}

// NewEstablishmentRepository creates a new EstablishmentRepository instance
func NewEstablishmentRepository(db *pgxpool.Pool) *EstablishmentRepository {
	return &EstablishmentRepository{db: db}
}

// ReplaceAll swaps the stored register for the imported one. The register
// is always uploaded whole, so partial updates are never needed.
func (r *EstablishmentRepository) ReplaceAll(ctx context.Context, positions []contracts.EstablishmentRecord) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM establishment`); err != nil {
		return fmt.Errorf("clear establishment: %w", err)
	}

	query := `
		INSERT INTO establishment (position_number, division, grade, designation, occupant, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i := range positions {
		p := &positions[i]
		_, err := tx.Exec(ctx, query,
			p.PositionNumber, p.Division, p.Grade, p.Designation, p.Occupant, string(p.Status),
		)
		if err != nil {
			return fmt.Errorf("insert position %q: %w", p.PositionNumber, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// List returns the full establishment register in insertion order.
func (r *EstablishmentRepository) List(ctx context.Context) ([]contracts.EstablishmentRecord, error) {
	query := `
		SELECT position_number, division, grade, designation, occupant, status
		FROM establishment
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query establishment: %w", err)
	}
	defer rows.Close()

	var positions []contracts.EstablishmentRecord
	for rows.Next() {
		var p contracts.EstablishmentRecord
		var status string
		if err := rows.Scan(&p.PositionNumber, &p.Division, &p.Grade, &p.Designation, &p.Occupant, &status); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		p.Status = contracts.PositionStatus(status)
		positions = append(positions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate establishment: %w", err)
	}
	return positions, nil
}
