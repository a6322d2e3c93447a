package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
)

type SwipeRepository struct {
	pool *pgxpool.Pool
}

func NewSwipeRepository(pool *pgxpool.Pool) *SwipeRepository {
	return &SwipeRepository{pool: pool}
}

func (r *SwipeRepository) Create(ctx context.Context, s *entity.Swipe) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO swipes (user_id, house_id, direction, dwell_ms)
		VALUES ($1, $2, $3::swipe_direction, $4)
		RETURNING id, created_at
	`, s.UserID, s.HouseID, string(s.Direction), s.DwellMs).Scan(&s.ID, &s.CreatedAt)
	return translate("insert swipe", err)
}

var _ repository.SwipeRepository = (*SwipeRepository)(nil)
