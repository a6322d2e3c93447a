package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) ProfileForUser(ctx context.Context, userID string, role entity.Role) (entity.Profile, error) {
	switch role {
	case entity.RoleAgent:
		var p entity.AgentProfile
		err := r.pool.QueryRow(ctx, `
			SELECT id, user_id, license_no, bio, website, brokerage, rating::float8, created_at, updated_at
			FROM agent_profiles WHERE user_id = $1
		`, userID).Scan(&p.ID, &p.UserID, &p.LicenseNo, &p.Bio, &p.Website, &p.Brokerage, &p.Rating, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, translate("get agent profile", err)
		}
		return p, nil
	case entity.RoleSeller:
		var p entity.SellerProfile
		err := r.pool.QueryRow(ctx, `
			SELECT id, user_id, created_at, updated_at FROM seller_profiles WHERE user_id = $1
		`, userID).Scan(&p.ID, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, translate("get seller profile", err)
		}
		return p, nil
	case entity.RoleBuyer:
		var p entity.BuyerProfile
		err := r.pool.QueryRow(ctx, `
			SELECT id, user_id, created_at, updated_at FROM buyer_profiles WHERE user_id = $1
		`, userID).Scan(&p.ID, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, translate("get buyer profile", err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("postgres: profile for user: invalid role %q", role)
}

func (r *ProfileRepository) AgentDetail(ctx context.Context, agentID string) (*entity.AgentDetail, error) {
	d := &entity.AgentDetail{}
	var role string
	err := r.pool.QueryRow(ctx, `
		SELECT a.id, a.user_id, a.license_no, a.bio, a.website, a.brokerage, a.rating::float8,
			a.created_at, a.updated_at,
			u.id, u.email, u.display_name, u.role::text, u.phone, u.avatar_url, u.created_at, u.updated_at
		FROM agent_profiles a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`, agentID).Scan(
		&d.Profile.ID, &d.Profile.UserID, &d.Profile.LicenseNo, &d.Profile.Bio, &d.Profile.Website,
		&d.Profile.Brokerage, &d.Profile.Rating, &d.Profile.CreatedAt, &d.Profile.UpdatedAt,
		&d.User.ID, &d.User.Email, &d.User.DisplayName, &role, &d.User.Phone, &d.User.AvatarURL,
		&d.User.CreatedAt, &d.User.UpdatedAt,
	)
	if err != nil {
		return nil, translate("get agent", err)
	}
	d.User.Role = entity.Role(role)

	listings, err := queryHouses(ctx, r.pool, "list agent houses",
		houseSelect+` WHERE h.agent_id = $1 ORDER BY h.created_at DESC, h.id DESC`, agentID)
	if err != nil {
		return nil, err
	}
	d.Listings = listings
	return d, nil
}

// UpdateAgent overwrites the public metadata of an agent profile.
func (r *ProfileRepository) UpdateAgent(ctx context.Context, p entity.AgentProfile) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE agent_profiles
		SET license_no = $2, bio = $3, website = $4, brokerage = $5, rating = $6, updated_at = now()
		WHERE id = $1
	`, p.ID, p.LicenseNo, p.Bio, p.Website, p.Brokerage, p.Rating)
	if err != nil {
		return translate("update agent", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
