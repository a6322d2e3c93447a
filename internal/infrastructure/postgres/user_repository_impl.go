package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
)

const userColumns = `id, email, password_hash, display_name, role::text, phone, avatar_url, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) CreateAccount(ctx context.Context, u *entity.User) (entity.Profile, error) {
	if !u.Role.Valid() {
		return nil, fmt.Errorf("postgres: create account: invalid role %q", u.Role)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, translate("begin signup tx", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, display_name, role, phone, avatar_url)
		VALUES ($1, $2, $3, $4::user_role, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Email, u.PasswordHash, u.DisplayName, string(u.Role), u.Phone, u.AvatarURL)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate("insert user", err)
	}

	profile, err := insertProfile(ctx, tx, u)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, translate("commit signup tx", err)
	}
	return profile, nil
}

func insertProfile(ctx context.Context, tx pgx.Tx, u *entity.User) (entity.Profile, error) {
	switch u.Role {
	case entity.RoleAgent:
		p := entity.AgentProfile{UserID: u.ID}
		err := tx.QueryRow(ctx, `
			INSERT INTO agent_profiles (user_id) VALUES ($1)
			RETURNING id, created_at, updated_at
		`, u.ID).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, translate("insert agent profile", err)
		}
		return p, nil
	case entity.RoleSeller:
		p := entity.SellerProfile{UserID: u.ID}
		err := tx.QueryRow(ctx, `
			INSERT INTO seller_profiles (user_id) VALUES ($1)
			RETURNING id, created_at, updated_at
		`, u.ID).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, translate("insert seller profile", err)
		}
		return p, nil
	default:
		p := entity.BuyerProfile{UserID: u.ID}
		err := tx.QueryRow(ctx, `
			INSERT INTO buyer_profiles (user_id) VALUES ($1)
			RETURNING id, created_at, updated_at
		`, u.ID).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, translate("insert buyer profile", err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO buyer_preferences (buyer_id) VALUES ($1)`, p.ID); err != nil {
			return nil, translate("insert buyer preferences", err)
		}
		return p, nil
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate("get user by id", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, translate("get user by email", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &role,
		&u.Phone, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
