package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutortrack-api/internal/models"
)

// StateRepository persists whole account documents as jsonb rows, one per
// owner. Every save replaces the document; last write wins.
type StateRepository struct {
	db *sqlx.DB
}

// NewStateRepository constructs the repository.
func NewStateRepository(db *sqlx.DB) *StateRepository {
	return &StateRepository{db: db}
}

type stateRow struct {
	OwnerID   string    `db:"owner_id"`
	Document  []byte    `db:"document"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Save upserts the full document for an owner.
func (r *StateRepository) Save(ctx context.Context, ownerID string, state *models.AppState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state document: %w", err)
	}
	const query = `INSERT INTO account_states (owner_id, document, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (owner_id)
DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, ownerID, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("save state document: %w", err)
	}
	return nil
}

// GetOnce fetches the document for an owner. A missing row yields
// (nil, sql.ErrNoRows) so callers can distinguish "no account yet".
func (r *StateRepository) GetOnce(ctx context.Context, ownerID string) (*models.AppState, error) {
	const query = `SELECT owner_id, document, updated_at FROM account_states WHERE owner_id = $1`
	var row stateRow
	if err := r.db.GetContext(ctx, &row, query, ownerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("fetch state document: %w", err)
	}
	state := &models.AppState{}
	if err := json.Unmarshal(row.Document, state); err != nil {
		return nil, fmt.Errorf("decode state document: %w", err)
	}
	state.Normalize()
	return state, nil
}
