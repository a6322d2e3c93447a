package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
)

const preferenceColumns = `id, buyer_id, min_price, max_price, min_beds, max_beds,
	min_baths::float8, max_baths::float8, property_types, neighborhoods, min_sqft, max_sqft,
	min_lot_sqft, max_lot_sqft, year_built_min, year_built_max, hoa_max_monthly,
	has_garage, has_pool, allow_fixer_upper, created_at, updated_at`

type PreferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}

func (r *PreferenceRepository) BuyerIDForUser(ctx context.Context, userID string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `SELECT id FROM buyer_profiles WHERE user_id = $1`, userID).Scan(&id)
	if err != nil {
		return "", translate("get buyer id", err)
	}
	return id, nil
}

func (r *PreferenceRepository) GetByBuyerID(ctx context.Context, buyerID string) (*entity.Preference, error) {
	p, err := scanPreference(r.pool.QueryRow(ctx,
		`SELECT `+preferenceColumns+` FROM buyer_preferences WHERE buyer_id = $1`, buyerID))
	if err != nil {
		return nil, translate("get preferences", err)
	}
	return p, nil
}

func (r *PreferenceRepository) Upsert(ctx context.Context, buyerID string, patch entity.PreferencePatch) (*entity.Preference, error) {
	cols := []string{"buyer_id"}
	args := []any{buyerID}
	put := func(col string, v any) {
		cols = append(cols, col)
		args = append(args, v)
	}
	if patch.MinPrice != nil {
		put("min_price", *patch.MinPrice)
	}
	if patch.MaxPrice != nil {
		put("max_price", *patch.MaxPrice)
	}
	if patch.MinBeds != nil {
		put("min_beds", *patch.MinBeds)
	}
	if patch.MaxBeds != nil {
		put("max_beds", *patch.MaxBeds)
	}
	if patch.MinBaths != nil {
		put("min_baths", *patch.MinBaths)
	}
	if patch.MaxBaths != nil {
		put("max_baths", *patch.MaxBaths)
	}
	if patch.PropertyTypes != nil {
		put("property_types", nonNil(*patch.PropertyTypes))
	}
	if patch.Neighborhoods != nil {
		put("neighborhoods", nonNil(*patch.Neighborhoods))
	}
	if patch.MinSqft != nil {
		put("min_sqft", *patch.MinSqft)
	}
	if patch.MaxSqft != nil {
		put("max_sqft", *patch.MaxSqft)
	}
	if patch.MinLotSqft != nil {
		put("min_lot_sqft", *patch.MinLotSqft)
	}
	if patch.MaxLotSqft != nil {
		put("max_lot_sqft", *patch.MaxLotSqft)
	}
	if patch.YearBuiltMin != nil {
		put("year_built_min", *patch.YearBuiltMin)
	}
	if patch.YearBuiltMax != nil {
		put("year_built_max", *patch.YearBuiltMax)
	}
	if patch.HOAMaxMonthly != nil {
		put("hoa_max_monthly", *patch.HOAMaxMonthly)
	}
	if patch.HasGarage != nil {
		put("has_garage", *patch.HasGarage)
	}
	if patch.HasPool != nil {
		put("has_pool", *patch.HasPool)
	}
	if patch.AllowFixerUpper != nil {
		put("allow_fixer_upper", *patch.AllowFixerUpper)
	}

	placeholders := make([]string, len(cols))
	updates := make([]string, 0, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if c != "buyer_id" {
			updates = append(updates, c+" = EXCLUDED."+c)
		}
	}
	updates = append(updates, "updated_at = now()")

	query := fmt.Sprintf(`
		INSERT INTO buyer_preferences (%s) VALUES (%s)
		ON CONFLICT (buyer_id) DO UPDATE SET %s
		RETURNING `+preferenceColumns,
		strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(updates, ", "))

	p, err := scanPreference(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate("upsert preferences", err)
	}
	return p, nil
}

func scanPreference(row pgx.Row) (*entity.Preference, error) {
	p := &entity.Preference{}
	c := &p.PreferenceCriteria
	if err := row.Scan(&p.ID, &p.BuyerID, &c.MinPrice, &c.MaxPrice, &c.MinBeds, &c.MaxBeds,
		&c.MinBaths, &c.MaxBaths, &c.PropertyTypes, &c.Neighborhoods, &c.MinSqft, &c.MaxSqft,
		&c.MinLotSqft, &c.MaxLotSqft, &c.YearBuiltMin, &c.YearBuiltMax, &c.HOAMaxMonthly,
		&c.HasGarage, &c.HasPool, &c.AllowFixerUpper, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// nonNil keeps an explicit empty set from being written as NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ repository.PreferenceRepository = (*PreferenceRepository)(nil)
