package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moatlabs/sage/internal/domain"
)

type BeliefSnapshotStore struct {
	db *pgxpool.Pool
}

func NewBeliefSnapshotStore(db *pgxpool.Pool) *BeliefSnapshotStore {
	return &BeliefSnapshotStore{db: db}
}

// Upsert writes the latest state of a belief, replacing any prior snapshot
// for the same key.
func (s *BeliefSnapshotStore) Upsert(ctx context.Context, snap *domain.BeliefSnapshot) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO belief_snapshots (belief_key, belief_value, confidence, decay_factor, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (belief_key) DO UPDATE SET
		   belief_value = EXCLUDED.belief_value,
		   confidence = EXCLUDED.confidence,
		   decay_factor = EXCLUDED.decay_factor,
		   updated_at = now()`,
		snap.Key, snap.Value, snap.Confidence, snap.DecayFactor,
	)
	if err != nil {
		return fmt.Errorf("upsert belief snapshot: %w", err)
	}
	return nil
}

func (s *BeliefSnapshotStore) ListAll(ctx context.Context) ([]domain.BeliefSnapshot, error) {
	rows, err := s.db.Query(ctx,
		`SELECT belief_key, belief_value, confidence, decay_factor
		 FROM belief_snapshots
		 ORDER BY belief_key`,
	)
	if err != nil {
		return nil, fmt.Errorf("list belief snapshots: %w", err)
	}
	defer rows.Close()

	var out []domain.BeliefSnapshot
	for rows.Next() {
		var snap domain.BeliefSnapshot
		if err := rows.Scan(&snap.Key, &snap.Value, &snap.Confidence, &snap.DecayFactor); err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
