package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
)

const houseSelect = `
	SELECT h.id, h.title, h.description, h.price, h.bedrooms, h.bathrooms::float8, h.sqft,
		h.lot_sqft, h.year_built, h.property_type::text, h.address_line1, h.city, h.state,
		h.postal_code, h.country, h.latitude, h.longitude, h.hoa_monthly, h.has_garage,
		h.has_pool, h.is_active, h.agent_id, h.seller_id, h.created_at, h.updated_at,
		a.id, a.user_id, a.license_no, a.bio, a.website, a.brokerage, a.rating::float8,
		a.created_at, a.updated_at,
		au.id, au.email, au.display_name, au.role::text, au.phone, au.avatar_url,
		au.created_at, au.updated_at,
		s.id, s.user_id, s.created_at, s.updated_at,
		su.id, su.email, su.display_name, su.role::text, su.phone, su.avatar_url,
		su.created_at, su.updated_at
	FROM houses h
	LEFT JOIN agent_profiles a ON a.id = h.agent_id
	LEFT JOIN users au ON au.id = a.user_id
	LEFT JOIN seller_profiles s ON s.id = h.seller_id
	LEFT JOIN users su ON su.id = s.user_id`

type HouseRepository struct {
	pool *pgxpool.Pool
}

func NewHouseRepository(pool *pgxpool.Pool) *HouseRepository {
	return &HouseRepository{pool: pool}
}

func (r *HouseRepository) List(ctx context.Context, f repository.HouseFilter) ([]entity.House, error) {
	where := []string{"h.is_active = TRUE"}
	args := make([]any, 0, 8)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.MinPrice != nil {
		add("h.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("h.price <= $%d", *f.MaxPrice)
	}
	if f.MinBeds != nil {
		add("h.bedrooms >= $%d", *f.MinBeds)
	}
	if f.MaxBeds != nil {
		add("h.bedrooms <= $%d", *f.MaxBeds)
	}
	if f.PropertyType != nil {
		add("h.property_type = $%d::property_type", string(*f.PropertyType))
	}
	args = append(args, f.Take, f.Skip)
	query := houseSelect + `
	WHERE ` + strings.Join(where, " AND ") + fmt.Sprintf(`
	ORDER BY h.created_at DESC, h.id DESC
	LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return queryHouses(ctx, r.pool, "list houses", query, args...)
}

func (r *HouseRepository) GetByID(ctx context.Context, id string) (*entity.House, error) {
	houses, err := queryHouses(ctx, r.pool, "get house", houseSelect+` WHERE h.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(houses) == 0 {
		return nil, repository.ErrNotFound
	}
	return &houses[0], nil
}

func (r *HouseRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.House, error) {
	if len(ids) == 0 {
		return []entity.House{}, nil
	}
	houses, err := queryHouses(ctx, r.pool, "get houses", houseSelect+` WHERE h.id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.House, len(houses))
	for _, h := range houses {
		byID[h.ID] = h
	}
	out := make([]entity.House, 0, len(houses))
	for _, id := range ids {
		if h, ok := byID[id]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *HouseRepository) Create(ctx context.Context, h *entity.House) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate("begin house tx", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	country := h.Country
	if country == "" {
		country = "US"
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO houses (title, description, price, bedrooms, bathrooms, sqft, lot_sqft, year_built,
			property_type, address_line1, city, state, postal_code, country, latitude, longitude,
			hoa_monthly, has_garage, has_pool, is_active, agent_id, seller_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::property_type, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22)
		RETURNING id, country, created_at, updated_at
	`, h.Title, h.Description, h.Price, h.Bedrooms, h.Bathrooms, h.Sqft, h.LotSqft, h.YearBuilt,
		string(h.PropertyType), h.AddressLine1, h.City, h.State, h.PostalCode, country, h.Latitude,
		h.Longitude, h.HOAMonthly, h.HasGarage, h.HasPool, h.IsActive, h.AgentID, h.SellerID,
	).Scan(&h.ID, &h.Country, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return translate("insert house", err)
	}

	for i := range h.Images {
		img := &h.Images[i]
		img.HouseID = h.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO house_images (house_id, url, caption, sort_order)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, h.ID, img.URL, img.Caption, img.Order).Scan(&img.ID)
		if err != nil {
			return translate("insert house image", err)
		}
	}
	return translate("commit house tx", tx.Commit(ctx))
}

func (r *HouseRepository) Update(ctx context.Context, id string, patch entity.HousePatch) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 5)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	res, err := r.pool.Exec(ctx, fmt.Sprintf(`UPDATE houses SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)), args...)
	if err != nil {
		return translate("update house", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *HouseRepository) AddImage(ctx context.Context, img *entity.Image) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO house_images (house_id, url, caption, sort_order)
		SELECT $1::uuid, $2, $3, COALESCE(MAX(sort_order) + 1, 0)
		FROM house_images
		WHERE house_id = $1::uuid
		RETURNING id, sort_order
	`, img.HouseID, img.URL, img.Caption).Scan(&img.ID, &img.Order)
	return translate("add house image", err)
}

// queryHouses runs a houseSelect query and attaches images in one extra round trip.
func queryHouses(ctx context.Context, pool *pgxpool.Pool, op, query string, args ...any) ([]entity.House, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(op, err)
	}
	defer rows.Close()

	houses := make([]entity.House, 0, 20)
	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			return nil, translate(op, err)
		}
		houses = append(houses, h)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(op, err)
	}
	if err := attachImages(ctx, pool, houses); err != nil {
		return nil, err
	}
	return houses, nil
}

func attachImages(ctx context.Context, pool *pgxpool.Pool, houses []entity.House) error {
	if len(houses) == 0 {
		return nil
	}
	ids := make([]string, len(houses))
	index := make(map[string]int, len(houses))
	for i, h := range houses {
		ids[i] = h.ID
		index[h.ID] = i
		houses[i].Images = []entity.Image{}
	}

	rows, err := pool.Query(ctx, `
		SELECT id, house_id, url, caption, sort_order
		FROM house_images
		WHERE house_id = ANY($1::uuid[])
		ORDER BY house_id, sort_order, id
	`, ids)
	if err != nil {
		return translate("list house images", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img entity.Image
		if err := rows.Scan(&img.ID, &img.HouseID, &img.URL, &img.Caption, &img.Order); err != nil {
			return translate("scan house image", err)
		}
		if i, ok := index[img.HouseID]; ok {
			houses[i].Images = append(houses[i].Images, img)
		}
	}
	return translate("iterate house images", rows.Err())
}

// nullableUser holds a LEFT JOINed users row.
type nullableUser struct {
	ID          *string
	Email       *string
	DisplayName *string
	Role        *string
	Phone       *string
	AvatarURL   *string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

func (n *nullableUser) ptrs() []any {
	return []any{&n.ID, &n.Email, &n.DisplayName, &n.Role, &n.Phone, &n.AvatarURL, &n.CreatedAt, &n.UpdatedAt}
}

func (n nullableUser) user() entity.User {
	return entity.User{
		ID:          deref(n.ID),
		Email:       deref(n.Email),
		DisplayName: deref(n.DisplayName),
		Role:        entity.Role(deref(n.Role)),
		Phone:       n.Phone,
		AvatarURL:   n.AvatarURL,
		CreatedAt:   derefTime(n.CreatedAt),
		UpdatedAt:   derefTime(n.UpdatedAt),
	}
}

func scanHouse(row pgx.Row) (entity.House, error) {
	var (
		h            entity.House
		propertyType string

		agentID, agentUserID                         *string
		licenseNo, bio, website, brokerage           *string
		rating                                       *float64
		agentCreated, agentUpdated                   *time.Time
		sellerID, sellerUserID                       *string
		sellerCreated, sellerUpdated                 *time.Time
		agentUser, sellerUser                        nullableUser
	)

	dest := []any{
		&h.ID, &h.Title, &h.Description, &h.Price, &h.Bedrooms, &h.Bathrooms, &h.Sqft,
		&h.LotSqft, &h.YearBuilt, &propertyType, &h.AddressLine1, &h.City, &h.State,
		&h.PostalCode, &h.Country, &h.Latitude, &h.Longitude, &h.HOAMonthly, &h.HasGarage,
		&h.HasPool, &h.IsActive, &h.AgentID, &h.SellerID, &h.CreatedAt, &h.UpdatedAt,
		&agentID, &agentUserID, &licenseNo, &bio, &website, &brokerage, &rating,
		&agentCreated, &agentUpdated,
	}
	dest = append(dest, agentUser.ptrs()...)
	dest = append(dest, &sellerID, &sellerUserID, &sellerCreated, &sellerUpdated)
	dest = append(dest, sellerUser.ptrs()...)

	if err := row.Scan(dest...); err != nil {
		return entity.House{}, err
	}
	h.PropertyType = entity.PropertyType(propertyType)

	if agentID != nil {
		h.Agent = &entity.Agent{
			Profile: entity.AgentProfile{
				ID:        *agentID,
				UserID:    deref(agentUserID),
				LicenseNo: licenseNo,
				Bio:       bio,
				Website:   website,
				Brokerage: brokerage,
				Rating:    rating,
				CreatedAt: derefTime(agentCreated),
				UpdatedAt: derefTime(agentUpdated),
			},
			User: agentUser.user(),
		}
	}
	if sellerID != nil {
		h.Seller = &entity.Seller{
			Profile: entity.SellerProfile{
				ID:        *sellerID,
				UserID:    deref(sellerUserID),
				CreatedAt: derefTime(sellerCreated),
				UpdatedAt: derefTime(sellerUpdated),
			},
			User: sellerUser.user(),
		}
	}
	return h, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

var _ repository.HouseRepository = (*HouseRepository)(nil)
