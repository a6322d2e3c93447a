package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/timbr/config"
	"github.com/oksasatya/timbr/internal/application"
	"github.com/oksasatya/timbr/internal/infrastructure/memory"
	"github.com/oksasatya/timbr/internal/interface/middleware"
	"github.com/oksasatya/timbr/pkg/helpers"
	"github.com/oksasatya/timbr/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

type stubImages struct{}

func (stubImages) Put(_ context.Context, houseID, filename, _ string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	return "https://storage.googleapis.com/test/" + helpers.HouseImageObject(houseID, filename), nil
}

type testServer struct {
	store  *memory.Store
	engine *gin.Engine
}

// newServer mounts every handler over an in-memory store. withImages toggles
// the object store so the 503 path can be exercised.
func newServer(t *testing.T, withImages bool) *testServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	st := memory.NewStore()
	cfg := &config.Config{AppName: "timbr-backend"}
	var images application.ImageStore
	if withImages {
		images = stubImages{}
	}
	authSvc := application.NewAuthService(st.Users(), helpers.NewJWTManager("test-secret", 0), nil, cfg, logger)
	houseSvc := application.NewHouseService(st.Houses(), st.Profiles(), nil, nil, images, logger)

	auth := NewAuthHandler(authSvc, logger)
	houses := NewHouseHandler(houseSvc, logger)
	swipes := NewSwipeHandler(application.NewSwipeService(st.Swipes(), logger), logger)
	prefs := NewPreferenceHandler(application.NewPreferenceService(st.Preferences(), logger), logger)
	agents := NewAgentHandler(application.NewAgentService(st.Profiles()), logger)

	e := gin.New()
	e.GET("/health", Health("timbr-backend"))
	api := e.Group("/api")
	api.POST("/auth/signup", auth.Signup)
	api.POST("/auth/login", auth.Login)
	api.GET("/houses", houses.List)
	api.GET("/houses/search", houses.Search)
	api.GET("/houses/:id", houses.Get)
	api.GET("/agents/:id", agents.Get)

	private := api.Group("", middleware.Auth(authSvc))
	private.POST("/houses", houses.Create)
	private.PATCH("/houses/:id", houses.Update)
	private.POST("/houses/:id/images", houses.UploadImage)
	private.POST("/swipes", swipes.Create)
	private.GET("/preferences", prefs.Get)
	private.PUT("/preferences", prefs.Put)

	return &testServer{store: st, engine: e}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) upload(t *testing.T, path, token, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type account struct {
	Token string `json:"token"`
	User  struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		Role        string `json:"role"`
	} `json:"user"`
}

func (s *testServer) signup(t *testing.T, email, role string) account {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email": email, "password": "secret1", "displayName": "Test " + role, "role": role,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var a account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	return a
}

func (s *testServer) createHouse(t *testing.T, token, title string, price, beds int) map[string]any {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/houses", token, map[string]any{
		"title": title, "description": "Bright and quiet", "price": price,
		"bedrooms": beds, "bathrooms": 2, "sqft": 1800, "propertyType": "HOUSE",
		"addressLine1": "12 Oak St", "city": "Austin", "state": "TX", "postalCode": "78701",
		"images": []map[string]any{{"url": "https://img.test/a.jpg"}, {"url": "https://img.test/b.jpg", "caption": "Kitchen"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["house"].(map[string]any)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
