package middleware

import (
	"expvar"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/timbr/pkg/response"
)

var rateLimited = expvar.NewMap("timbr_rate_limited")

func routePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc picks the bucket a request counts against.
type KeyFunc func(c *gin.Context) string

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "ip:" + ClientIP(c)
	}
}

// KeyByIPAndPath gives every route its own per-IP bucket.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "path:" + routePath(c) + ":ip:" + ClientIP(c)
	}
}

// KeyByUserID needs Auth in front of it; anonymous requests fall back to IP.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			return "user:anon:ip:" + ClientIP(c)
		}
		return "user:" + uid
	}
}

// Fixed window: INCR, arm the expiry on the first hit, report the remaining ttl.
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// Limiter builds fixed-window rate limits backed by Redis. A Limiter
// without Redis hands out pass-through middleware.
type Limiter struct {
	rdb    redis.Scripter
	skip   AllowFunc
	logger *logrus.Logger
}

func NewLimiter(rdb *redis.Client, skip AllowFunc, logger *logrus.Logger) *Limiter {
	l := &Limiter{skip: skip, logger: logger}
	if rdb != nil {
		l.rdb = rdb
	}
	return l
}

// Limit allows limit requests per window for every key; name tags the
// bucket in Redis and in the timbr_rate_limited counters.
func (l *Limiter) Limit(name string, limit int, window time.Duration, key KeyFunc) gin.HandlerFunc {
	if l == nil || l.rdb == nil || limit <= 0 || window <= 0 || key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (l.skip != nil && l.skip(c)) {
			c.Next()
			return
		}

		k := "timbr:rl:" + name + ":" + key(c)
		res, err := fixedWindowScript.Run(c.Request.Context(), l.rdb, []string{k}, window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			if l.logger != nil {
				l.logger.WithError(err).WithField("limit", name).Warn("rate limit unavailable, letting request through")
			}
			c.Next()
			return
		}
		count, resetSec := int(res[0]), int((res[1]+999)/1000)

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(limit-count, 0)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(max(resetSec, 0)))

		if count > limit {
			rateLimited.Add(name, 1)
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Error(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
