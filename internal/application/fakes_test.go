package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/timbr/config"
	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/infrastructure/memory"
	"github.com/oksasatya/timbr/pkg/helpers"
)

type fakeCache struct {
	mu      sync.Mutex
	items   map[string]entity.House
	evicted []string
	failGet bool
}

func newFakeCache() *fakeCache { return &fakeCache{items: map[string]entity.House{}} }

func (c *fakeCache) Get(_ context.Context, id string) (*entity.House, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, false, errors.New("redis down")
	}
	h, ok := c.items[id]
	if !ok {
		return nil, false, nil
	}
	return &h, true, nil
}

func (c *fakeCache) Set(_ context.Context, h *entity.House) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[h.ID] = *h
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.evicted = append(c.evicted, id)
	return nil
}

type fakeIndex struct {
	indexed map[string]entity.House
	hits    []string
}

func newFakeIndex() *fakeIndex { return &fakeIndex{indexed: map[string]entity.House{}} }

func (x *fakeIndex) Index(_ context.Context, h *entity.House) error {
	x.indexed[h.ID] = *h
	return nil
}

func (x *fakeIndex) Search(_ context.Context, _ string, size int) ([]string, error) {
	return x.hits[:min(size, len(x.hits))], nil
}

type fakeImages struct{ puts int }

func (f *fakeImages) Put(_ context.Context, houseID, filename, _ string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.puts++
	return "https://storage.googleapis.com/test/" + helpers.HouseImageObject(houseID, filename), nil
}

type fakePublisher struct {
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

// env wires every service over one in-memory store.
type env struct {
	store  *memory.Store
	auth   *AuthService
	houses *HouseService
	swipes *SwipeService
	prefs  *PreferenceService
	agents *AgentService
	cache  *fakeCache
	index  *fakeIndex
	images *fakeImages
	mail   *fakePublisher
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := memory.NewStore()
	e := &env{
		store:  st,
		cache:  newFakeCache(),
		index:  newFakeIndex(),
		images: &fakeImages{},
		mail:   &fakePublisher{},
	}
	cfg := &config.Config{AppName: "timbr-backend", CompanyName: "timbr", MailSendEnabled: true}
	e.auth = NewAuthService(st.Users(), helpers.NewJWTManager("test-secret", 0), e.mail, cfg, nil)
	e.houses = NewHouseService(st.Houses(), st.Profiles(), e.cache, e.index, e.images, nil)
	e.swipes = NewSwipeService(st.Swipes(), nil)
	e.prefs = NewPreferenceService(st.Preferences(), nil)
	e.agents = NewAgentService(st.Profiles())
	return e
}

func (e *env) signup(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()
	res, err := e.auth.Signup(context.Background(), SignupInput{
		Email: email, Password: "secret1", DisplayName: "User " + email, Role: role,
	})
	require.NoError(t, err)
	return res.User
}

func (e *env) listing(t *testing.T, owner *entity.User, title string, price, beds int) *entity.House {
	t.Helper()
	h, err := e.houses.Create(context.Background(), owner, CreateHouseInput{
		Title: title, Price: price, Bedrooms: beds, Bathrooms: 2, Sqft: 1500,
		PropertyType: entity.PropertyHouse, AddressLine1: "1 Main St", City: "Austin",
		State: "TX", PostalCode: "78701",
		Images: []ImageInput{{URL: "https://img.test/1.jpg"}, {URL: "https://img.test/2.jpg"}},
	})
	require.NoError(t, err)
	return h
}

func ptr[T any](v T) *T { return &v }
