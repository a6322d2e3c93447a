package postgres

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
)

const migrationsDir = "../../../db/migrations"

// startPostgres returns a migrated pool. TIMBR_PG_DSN reuses an existing
// database instead of starting a container.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("TIMBR_PG_TESTS") != "1" {
		t.Skip("set TIMBR_PG_TESTS=1 to run postgres integration tests")
	}
	ctx := context.Background()

	dsn := os.Getenv("TIMBR_PG_DSN")
	if dsn == "" {
		c, err := tcpostgres.Run(ctx, "postgres:16",
			tcpostgres.WithDatabase("timbr"),
			tcpostgres.WithUsername("timbr"),
			tcpostgres.WithPassword("timbr"),
			tcpostgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Terminate(context.Background()) })
		dsn, err = c.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	require.NoError(t, Reset(dsn, migrationsDir, logger))

	pool, err := NewPool(ctx, dsn, PoolOptions{MaxConns: 4, MinConns: 1, AppName: "timbr-test"})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func account(t *testing.T, users *UserRepository, email string, role entity.Role) (*entity.User, entity.Profile) {
	t.Helper()
	u := &entity.User{Email: email, PasswordHash: "x", DisplayName: email, Role: role}
	p, err := users.CreateAccount(context.Background(), u)
	require.NoError(t, err)
	return u, p
}

func TestPostgresRepositories(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	users := NewUserRepository(pool)
	profiles := NewProfileRepository(pool)
	houses := NewHouseRepository(pool)
	swipes := NewSwipeRepository(pool)
	prefs := NewPreferenceRepository(pool)

	agentUser, agentProfile := account(t, users, "agent@timbr.test", entity.RoleAgent)
	buyer, buyerProfile := account(t, users, "buyer@timbr.test", entity.RoleBuyer)
	require.Equal(t, entity.RoleAgent, agentProfile.Role())

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := users.CreateAccount(ctx, &entity.User{Email: "buyer@timbr.test", PasswordHash: "x", DisplayName: "b", Role: entity.RoleBuyer})
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("lookup by email", func(t *testing.T) {
		got, err := users.GetByEmail(ctx, "agent@timbr.test")
		require.NoError(t, err)
		assert.Equal(t, agentUser.ID, got.ID)
		_, err = users.GetByEmail(ctx, "nobody@timbr.test")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	agentID := agentProfile.ProfileID()
	mk := func(title string, price int, active bool) *entity.House {
		h := &entity.House{
			Title: title, Description: "d", Price: price, Bedrooms: 3, Bathrooms: 2, Sqft: 1500,
			PropertyType: entity.PropertyHouse, AddressLine1: "1 Main St", City: "Austin", State: "TX",
			PostalCode: "78701", IsActive: active, AgentID: &agentID,
			Images: []entity.Image{{URL: "https://img/1.jpg", Order: 0}, {URL: "https://img/2.jpg", Order: 5}},
		}
		require.NoError(t, houses.Create(ctx, h))
		return h
	}
	cheap := mk("Cheap", 200_000, true)
	pricey := mk("Pricey", 900_000, true)
	hidden := mk("Hidden", 300_000, false)

	t.Run("list filters and hides inactive", func(t *testing.T) {
		all, err := houses.List(ctx, repository.HouseFilter{Take: 10})
		require.NoError(t, err)
		ids := make([]string, 0, len(all))
		for _, h := range all {
			ids = append(ids, h.ID)
		}
		assert.ElementsMatch(t, []string{cheap.ID, pricey.ID}, ids)

		ceiling := 500_000
		some, err := houses.List(ctx, repository.HouseFilter{Take: 10, MaxPrice: &ceiling})
		require.NoError(t, err)
		require.Len(t, some, 1)
		assert.Equal(t, cheap.ID, some[0].ID)
		require.NotNil(t, some[0].Agent)
		assert.Equal(t, agentUser.DisplayName, some[0].Agent.User.DisplayName)
		assert.Len(t, some[0].Images, 2)
	})

	t.Run("inactive visible by id", func(t *testing.T) {
		got, err := houses.GetByID(ctx, hidden.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("image order appends after max", func(t *testing.T) {
		img := &entity.Image{HouseID: cheap.ID, URL: "https://img/3.jpg"}
		require.NoError(t, houses.AddImage(ctx, img))
		assert.Equal(t, 6, img.Order)
	})

	t.Run("update and missing house", func(t *testing.T) {
		price := 250_000
		require.NoError(t, houses.Update(ctx, cheap.ID, entity.HousePatch{Price: &price}))
		got, err := houses.GetByID(ctx, cheap.ID)
		require.NoError(t, err)
		assert.Equal(t, price, got.Price)

		err = houses.Update(ctx, "00000000-0000-0000-0000-000000000000", entity.HousePatch{Price: &price})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("swipe uniqueness", func(t *testing.T) {
		dwell := 1200
		s := &entity.Swipe{UserID: buyer.ID, HouseID: pricey.ID, Direction: entity.DirectionRight, DwellMs: &dwell}
		require.NoError(t, swipes.Create(ctx, s))
		assert.NotEmpty(t, s.ID)

		again := &entity.Swipe{UserID: buyer.ID, HouseID: pricey.ID, Direction: entity.DirectionLeft}
		assert.ErrorIs(t, swipes.Create(ctx, again), repository.ErrConflict)

		ghost := &entity.Swipe{UserID: buyer.ID, HouseID: "00000000-0000-0000-0000-000000000000", Direction: entity.DirectionLeft}
		assert.ErrorIs(t, swipes.Create(ctx, ghost), repository.ErrReference)
	})

	t.Run("preferences upsert merges", func(t *testing.T) {
		buyerID, err := prefs.BuyerIDForUser(ctx, buyer.ID)
		require.NoError(t, err)
		assert.Equal(t, buyerProfile.ProfileID(), buyerID)

		minBeds, hasPool := 2, true
		_, err = prefs.Upsert(ctx, buyerID, entity.PreferencePatch{MinBeds: &minBeds})
		require.NoError(t, err)
		types := []string{"CONDO"}
		got, err := prefs.Upsert(ctx, buyerID, entity.PreferencePatch{HasPool: &hasPool, PropertyTypes: &types})
		require.NoError(t, err)

		require.NotNil(t, got.MinBeds)
		assert.Equal(t, 2, *got.MinBeds)
		require.NotNil(t, got.HasPool)
		assert.True(t, *got.HasPool)
		assert.Equal(t, []string{"CONDO"}, got.PropertyTypes)
	})

	t.Run("agent detail lists houses", func(t *testing.T) {
		d, err := profiles.AgentDetail(ctx, agentID)
		require.NoError(t, err)
		assert.Len(t, d.Listings, 3)
	})
}
