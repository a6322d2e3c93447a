package router

import (
	"github.com/oksasatya/timbr/internal/application"
	"github.com/oksasatya/timbr/internal/container"
	"github.com/oksasatya/timbr/internal/infrastructure/cache"
	"github.com/oksasatya/timbr/internal/infrastructure/objectstore"
	pginfra "github.com/oksasatya/timbr/internal/infrastructure/postgres"
	"github.com/oksasatya/timbr/internal/infrastructure/search"
	handlers "github.com/oksasatya/timbr/internal/interface/http"
	"github.com/oksasatya/timbr/internal/interface/middleware"
	"github.com/oksasatya/timbr/internal/router/modules"
)

// Deps is everything the HTTP modules need.
type Deps struct {
	Auth        *application.AuthService
	AuthH       *handlers.AuthHandler
	HouseH      *handlers.HouseHandler
	SwipeH      *handlers.SwipeHandler
	PreferenceH *handlers.PreferenceHandler
	AgentH      *handlers.AgentHandler
}

// optional adapters; each stays a nil interface when its client is absent
func houseCache() application.HouseCache {
	if container.GetRedis() == nil || container.GetConfig().HouseCacheTTL <= 0 {
		return nil
	}
	return cache.NewHouseCache(container.GetRedis(), container.GetConfig().HouseCacheTTL)
}

func houseIndex() application.HouseIndex {
	if container.GetES() == nil {
		return nil
	}
	return search.NewHouseIndex(container.GetES(), container.GetConfig().ESHousesIndex)
}

func imageStore() application.ImageStore {
	if container.GetGCS() == nil || container.GetConfig().GCSBucket == "" {
		return nil
	}
	return objectstore.NewGCSImageStore(container.GetGCS(), container.GetConfig().GCSBucket)
}

func mailPublisher() application.JobPublisher {
	if container.GetRabbitPub() == nil || !container.GetConfig().MailSendEnabled {
		return nil
	}
	return container.GetRabbitPub()
}

func buildDeps() Deps {
	pool := container.GetPGPool()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	houses := pginfra.NewHouseRepository(pool)

	auth := application.NewAuthService(users, container.GetJWT(), mailPublisher(), container.GetConfig(), logger)
	houseSvc := application.NewHouseService(houses, profiles, houseCache(), houseIndex(), imageStore(), logger)
	swipeSvc := application.NewSwipeService(pginfra.NewSwipeRepository(pool), logger)
	prefSvc := application.NewPreferenceService(pginfra.NewPreferenceRepository(pool), logger)
	agentSvc := application.NewAgentService(profiles)

	return Deps{
		Auth:        auth,
		AuthH:       handlers.NewAuthHandler(auth, logger),
		HouseH:      handlers.NewHouseHandler(houseSvc, logger),
		SwipeH:      handlers.NewSwipeHandler(swipeSvc, logger),
		PreferenceH: handlers.NewPreferenceHandler(prefSvc, logger),
		AgentH:      handlers.NewAgentHandler(agentSvc, logger),
	}
}

// InitModules builds every module from the container. Call it once at startup.
func InitModules(r *Registry) {
	Mount(r, buildDeps())
}

// limiter meters requests in Redis; without Redis every limit passes through.
func limiter() *middleware.Limiter {
	logger := container.GetLogger()
	var skip middleware.AllowFunc
	if cfg := container.GetConfig(); cfg != nil {
		nets, err := middleware.ParseCIDRs(cfg.RateLimitTrusted())
		if err != nil && logger != nil {
			logger.WithError(err).Warn("ignoring RATE_LIMIT_TRUSTED_CIDRS")
		}
		skip = middleware.SkipTrusted(nets)
	}
	return middleware.NewLimiter(container.GetRedis(), skip, logger)
}

// Mount adds the feature modules built from d.
func Mount(r *Registry, d Deps) {
	rl := limiter()
	r.Add(modules.NewAuthModule(d.AuthH, rl))
	r.Add(modules.NewHouseModule(d.HouseH, d.Auth))
	r.Add(modules.NewSwipeModule(d.SwipeH, d.Auth, rl))
	r.Add(modules.NewPreferenceModule(d.PreferenceH, d.Auth))
	r.Add(modules.NewAgentModule(d.AgentH))
	if cfg := container.GetConfig(); cfg != nil && cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rl))
	}
}
