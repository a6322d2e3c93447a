package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/timbr/internal/application"
	"github.com/oksasatya/timbr/internal/domain/entity"
)

type stubResolver map[string]error

func (s stubResolver) ResolveToken(_ context.Context, token string) (*entity.User, error) {
	if err, ok := s[token]; ok {
		return nil, err
	}
	return &entity.User{ID: "u-" + token, Role: entity.RoleBuyer}, nil
}

func authEngine(r TokenResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.GET("/me", Auth(r), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "ctx": c.GetString(CtxUserIDKey)})
	})
	return e
}

func TestAuth(t *testing.T) {
	r := stubResolver{
		"forged": application.ErrTokenInvalid,
		"ghost":  application.ErrUserNotFound,
		"boom":   errors.New("db down"),
	}
	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"empty token", "Bearer ", http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"bad signature", "Bearer forged", http.StatusForbidden, `{"error":"Forbidden"}`},
		{"deleted user", "Bearer ghost", http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"store failure", "Bearer boom", http.StatusInternalServerError, `{"error":"Internal server error"}`},
		{"ok", "Bearer good", http.StatusOK, `{"id":"u-good","ctx":"u-good"}`},
		{"scheme is case-insensitive", "bearer good", http.StatusOK, `{"id":"u-good","ctx":"u-good"}`},
	}
	e := authEngine(r)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(RequestIDMiddleware())
	e.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(HeaderRequestID)
	require.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())

	const given = "0b7e2f36-8c57-4a3e-9a0e-2f4d1f9f5c11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, given)
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(HeaderRequestID))
}

func TestRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(RealIP())
	e.GET("/", func(c *gin.Context) { c.String(http.StatusOK, ClientIP(c)) })

	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"left-most forwarded", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "203.0.113.9"},
		{"cloudflare first", map[string]string{"CF-Connecting-IP": "198.51.100.7", "X-Forwarded-For": "203.0.113.9"}, "198.51.100.7"},
		{"garbage skipped", map[string]string{"CF-Connecting-IP": "nope", "X-Real-IP": "198.51.100.8"}, "198.51.100.8"},
		{"socket peer", nil, "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Body.String())
		})
	}
}

func TestLimiterWithoutRedisIsPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	l := NewLimiter(nil, nil, logrus.New())
	e.GET("/", l.Limit("test", 1, time.Minute, KeyByIP()), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestKeyFuncs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/swipes", nil)
	c.Set(CtxClientIPKey, "203.0.113.9")

	assert.Equal(t, "ip:203.0.113.9", KeyByIP()(c))
	assert.Equal(t, "path:/api/swipes:ip:203.0.113.9", KeyByIPAndPath()(c))
	assert.Equal(t, "user:anon:ip:203.0.113.9", KeyByUserID()(c))
	c.Set(CtxUserIDKey, "u1")
	assert.Equal(t, "user:u1", KeyByUserID()(c))
}

func TestSkipTrusted(t *testing.T) {
	assert.Nil(t, SkipTrusted(nil))

	nets, err := ParseCIDRs([]string{"10.0.0.0/8", "192.0.2.10"})
	require.NoError(t, err)
	skip := SkipTrusted(nets)

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	for ip, want := range map[string]bool{"10.1.2.3": true, "192.0.2.10": true, "192.0.2.11": false, "203.0.113.9": false} {
		c.Set(CtxClientIPKey, ip)
		assert.Equal(t, want, skip(c), ip)
	}

	_, err = ParseCIDRs([]string{"10.0.0.0/33"})
	assert.Error(t, err)
	_, err = ParseCIDRs([]string{"not-an-ip"})
	assert.Error(t, err)
}

func TestAccessLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	e := gin.New()
	e.Use(RequestIDMiddleware(), AccessLog(logger))
	e.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	e.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("kaput"))
		c.Status(http.StatusInternalServerError)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Contains(t, buf.String(), `"path":"/ok"`)
	assert.Contains(t, buf.String(), `"request_id"`)

	buf.Reset()
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "kaput")
}
