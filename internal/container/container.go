// Package container holds the process-wide clients built in main so the
// router can wire modules without threading every client through. Optional
// clients stay nil when their backend is not configured.
package container

import (
	"sync"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/timbr/config"
	"github.com/oksasatya/timbr/pkg/helpers"
)

var (
	mu      sync.RWMutex
	closers []func()

	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client
	esClient    *elasticsearch.Client
	rabbitPub   *helpers.RabbitPublisher
	jwtManager  *helpers.JWTManager
)

// own registers fn to run on Close. Later registrations close first.
func own(fn func()) {
	closers = append(closers, fn)
}

// Close releases every owned client in reverse order of registration.
func Close() {
	mu.Lock()
	fns := closers
	closers = nil
	mu.Unlock()
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

func SetConfig(c *config.Config) { mu.Lock(); cfg = c; mu.Unlock() }
func SetLogger(l *logrus.Logger) { mu.Lock(); logger = l; mu.Unlock() }

// The setters below take ownership: Close shuts the client down.

func SetPGPool(p *pgxpool.Pool) {
	mu.Lock()
	defer mu.Unlock()
	pgPool = p
	own(p.Close)
}

func SetRedis(r *redis.Client) {
	mu.Lock()
	defer mu.Unlock()
	redisClient = r
	own(func() { _ = r.Close() })
}

func SetGCS(s *storage.Client) {
	mu.Lock()
	defer mu.Unlock()
	gcsClient = s
	own(func() { _ = s.Close() })
}

func SetRabbitPub(p *helpers.RabbitPublisher) {
	mu.Lock()
	defer mu.Unlock()
	rabbitPub = p
	own(p.Close)
}

// SetES does not take ownership; the client holds no connection to release.
func SetES(c *elasticsearch.Client) { mu.Lock(); esClient = c; mu.Unlock() }

func SetJWT(m *helpers.JWTManager) { mu.Lock(); jwtManager = m; mu.Unlock() }

func GetConfig() *config.Config { mu.RLock(); defer mu.RUnlock(); return cfg }
func GetLogger() *logrus.Logger { mu.RLock(); defer mu.RUnlock(); return logger }
func GetPGPool() *pgxpool.Pool { mu.RLock(); defer mu.RUnlock(); return pgPool }
func GetRedis() *redis.Client { mu.RLock(); defer mu.RUnlock(); return redisClient }
func GetGCS() *storage.Client { mu.RLock(); defer mu.RUnlock(); return gcsClient }
func GetES() *elasticsearch.Client { mu.RLock(); defer mu.RUnlock(); return esClient }
func GetRabbitPub() *helpers.RabbitPublisher { mu.RLock(); defer mu.RUnlock(); return rabbitPub }

// GetJWT builds the manager from the config on first use.
func GetJWT() *helpers.JWTManager {
	mu.Lock()
	defer mu.Unlock()
	if jwtManager == nil && cfg != nil {
		jwtManager = helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	}
	return jwtManager
}
