package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/timbr/config"
	"github.com/oksasatya/timbr/internal/domain/repository"
	pginfra "github.com/oksasatya/timbr/internal/infrastructure/postgres"
	"github.com/oksasatya/timbr/internal/infrastructure/search"
	"github.com/oksasatya/timbr/internal/seed"
	"github.com/oksasatya/timbr/pkg/helpers"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opt := seed.DefaultOptions()
	var reset, index bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with synthetic timbr data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			cfg, err := config.Load()
			logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
			if err != nil {
				logger.WithError(err).Warn("configuration problems, using defaults")
			}
			if opt.Seed == 0 {
				opt.Seed = uint64(time.Now().UnixNano())
			}
			return run(cmd.Context(), cfg, logger, opt, reset, index)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opt.Agents, "agents", opt.Agents, "number of agent accounts")
	f.IntVar(&opt.Sellers, "sellers", opt.Sellers, "number of seller accounts")
	f.IntVar(&opt.Buyers, "buyers", opt.Buyers, "number of buyer accounts")
	f.IntVar(&opt.Houses, "houses", opt.Houses, "number of listings")
	f.IntVar(&opt.MaxSwipes, "max-swipes", opt.MaxSwipes, "upper bound of random swipes per listing")
	f.IntVar(&opt.Concurrency, "concurrency", opt.Concurrency, "listings inserted in parallel")
	f.Uint64Var(&opt.Seed, "seed", 0, "random seed (0 picks one from the clock)")
	f.BoolVar(&reset, "reset", false, "drop and recreate the schema first")
	f.BoolVar(&index, "index", false, "push every listing into Elasticsearch afterwards")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, opt seed.Options, reset, index bool) error {
	if reset {
		if err := pginfra.Reset(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return fmt.Errorf("reset schema: %w", err)
		}
	} else if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:    max(cfg.DBMaxConns, int32(opt.Concurrency)+1),
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
		AppName:     cfg.AppName + "-seed",
		SlowQuery:   cfg.DBSlowQuery,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	houses := pginfra.NewHouseRepository(pool)
	s := &seed.Seeder{
		Store: seed.Store{
			Users:       pginfra.NewUserRepository(pool),
			Agents:      pginfra.NewProfileRepository(pool),
			Preferences: pginfra.NewPreferenceRepository(pool),
			Houses:      houses,
			Swipes:      pginfra.NewSwipeRepository(pool),
		},
		Logger: logger,
	}

	start := time.Now()
	rep, err := s.Run(ctx, opt)
	fields := logrus.Fields{
		"agents": rep.Agents, "sellers": rep.Sellers, "buyers": rep.Buyers,
		"houses": rep.Houses, "swipes": rep.Swipes, "duplicate_swipes": rep.DuplicateSwipes,
		"seed": opt.Seed, "took": time.Since(start).String(),
	}
	if err != nil {
		logger.WithFields(fields).WithError(err).Error("seed failed")
		return err
	}
	logger.WithFields(fields).Info("seed complete")

	if index {
		return reindex(ctx, cfg, logger, houses)
	}
	return nil
}

// reindex pages through active listings and writes each into the search index.
func reindex(ctx context.Context, cfg *config.Config, logger *logrus.Logger, houses repository.HouseRepository) error {
	if len(cfg.ESAddrs()) == 0 {
		logger.Warn("ELASTICSEARCH_ADDRS not set; skipping index")
		return nil
	}
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		return fmt.Errorf("elasticsearch: %w", err)
	}
	if err := helpers.PingES(ctx, es); err != nil {
		return fmt.Errorf("elasticsearch: %w", err)
	}
	idx := search.NewHouseIndex(es, cfg.ESHousesIndex)

	const page = 100
	n := 0
	for skip := 0; ; skip += page {
		batch, err := houses.List(ctx, repository.HouseFilter{Take: page, Skip: skip})
		if err != nil {
			return err
		}
		for i := range batch {
			if err := idx.Index(ctx, &batch[i]); err != nil {
				return fmt.Errorf("index house %s: %w", batch[i].ID, err)
			}
			n++
		}
		if len(batch) < page {
			break
		}
	}
	logger.WithField("houses", n).Info("search index rebuilt")
	return nil
}
