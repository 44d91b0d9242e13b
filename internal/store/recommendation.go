package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moatlabs/sage/internal/domain"
)

type RecommendationStore struct {
	db *pgxpool.Pool
}

func NewRecommendationStore(db *pgxpool.Pool) *RecommendationStore {
	return &RecommendationStore{db: db}
}

func (s *RecommendationStore) Create(ctx context.Context, r *domain.Recommendation) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO recommendations (symbol, company_name, recommendation, target_price, current_price, reasoning)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		r.Symbol, r.CompanyName, r.Recommendation, r.TargetPrice, r.CurrentPrice, r.Reasoning,
	).Scan(&r.ID, &r.CreatedAt)
}

func (s *RecommendationStore) ListBySymbol(ctx context.Context, symbol string, limit int) ([]domain.Recommendation, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, symbol, company_name, recommendation, target_price, current_price, reasoning, created_at
		 FROM recommendations
		 WHERE symbol = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		symbol, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	defer rows.Close()

	var out []domain.Recommendation
	for rows.Next() {
		var r domain.Recommendation
		if err := rows.Scan(&r.ID, &r.Symbol, &r.CompanyName, &r.Recommendation, &r.TargetPrice, &r.CurrentPrice, &r.Reasoning, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
