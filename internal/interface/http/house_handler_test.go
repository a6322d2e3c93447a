package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(t *testing.T, body map[string]any) []string {
	t.Helper()
	raw := body["houses"].([]any)
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = h.(map[string]any)["title"].(string)
	}
	return out
}

func TestListHouses(t *testing.T) {
	s := newServer(t, false)
	agent := s.signup(t, "agent@example.com", "AGENT")
	s.createHouse(t, agent.Token, "first", 300000, 2)
	s.createHouse(t, agent.Token, "second", 450000, 3)
	s.createHouse(t, agent.Token, "third", 600000, 4)

	w := s.do(t, http.MethodGet, "/api/houses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"third", "second", "first"}, titles(t, decode(t, w)))

	w = s.do(t, http.MethodGet, "/api/houses?take=1&skip=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"second"}, titles(t, decode(t, w)))

	w = s.do(t, http.MethodGet, "/api/houses?minPrice=400000&maxBeds=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"second"}, titles(t, decode(t, w)))

	w = s.do(t, http.MethodGet, "/api/houses?take=0", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"houses":[]}`, w.Body.String())

	first := decode(t, s.do(t, http.MethodGet, "/api/houses?take=1", "", nil))["houses"].([]any)[0].(map[string]any)
	assert.Len(t, first["images"], 2)
	assert.NotNil(t, first["agent"])
	assert.NotContains(t, s.do(t, http.MethodGet, "/api/houses", "", nil).Body.String(), "password")
}

func TestListHousesRejectsBadQuery(t *testing.T) {
	s := newServer(t, false)
	for _, q := range []string{"take=abc", "skip=-1", "minPrice=cheap", "propertyType=CASTLE"} {
		w := s.do(t, http.MethodGet, "/api/houses?"+q, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.JSONEq(t, `{"error":"Invalid input"}`, w.Body.String(), q)
	}
}

func TestGetHouse(t *testing.T) {
	s := newServer(t, false)
	agent := s.signup(t, "agent@example.com", "AGENT")
	created := s.createHouse(t, agent.Token, "loft", 250000, 1)

	w := s.do(t, http.MethodGet, "/api/houses/"+created["id"].(string), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	house := decode(t, w)["house"].(map[string]any)
	assert.Equal(t, "loft", house["title"])
	assert.Equal(t, "US", house["country"])
	imgs := house["images"].([]any)
	require.Len(t, imgs, 2)
	assert.Equal(t, "Kitchen", imgs[1].(map[string]any)["caption"])
	assert.Equal(t, agent.User.ID, house["agent"].(map[string]any)["user"].(map[string]any)["id"])
	assert.Nil(t, house["seller"])

	for _, id := range []string{"00000000-0000-0000-0000-000000000000", "not-a-uuid"} {
		w = s.do(t, http.MethodGet, "/api/houses/"+id, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
	}
}

func TestCreateHouseRequiresListerRole(t *testing.T) {
	s := newServer(t, false)
	buyer := s.signup(t, "buyer@example.com", "BUYER")
	seller := s.signup(t, "seller@example.com", "SELLER")

	body := map[string]any{
		"title": "x", "price": 1, "propertyType": "CONDO",
		"addressLine1": "1 A St", "city": "Reno", "state": "NV", "postalCode": "89501",
	}
	w := s.do(t, http.MethodPost, "/api/houses", buyer.Token, body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Forbidden"}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/houses", seller.Token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	house := decode(t, w)["house"].(map[string]any)
	assert.NotNil(t, house["sellerId"])
	assert.Nil(t, house["agentId"])

	body["propertyType"] = "CASTLE"
	w = s.do(t, http.MethodPost, "/api/houses", seller.Token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateHouse(t *testing.T) {
	s := newServer(t, false)
	owner := s.signup(t, "owner@example.com", "AGENT")
	other := s.signup(t, "other@example.com", "AGENT")
	id := s.createHouse(t, owner.Token, "before", 100, 1)["id"].(string)

	w := s.do(t, http.MethodPatch, "/api/houses/"+id, other.Token, map[string]any{"price": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, "/api/houses/"+id, owner.Token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/houses/"+id, owner.Token, map[string]any{"title": "after", "isActive": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	house := decode(t, w)["house"].(map[string]any)
	assert.Equal(t, "after", house["title"])
	assert.Equal(t, false, house["isActive"])
	assert.EqualValues(t, 100, house["price"])

	// inactive listings leave the feed but stay reachable by id
	assert.JSONEq(t, `{"houses":[]}`, s.do(t, http.MethodGet, "/api/houses", "", nil).Body.String())
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/houses/"+id, "", nil).Code)

	w = s.do(t, http.MethodPatch, "/api/houses/00000000-0000-0000-0000-000000000000", owner.Token, map[string]any{"price": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadImage(t *testing.T) {
	s := newServer(t, true)
	owner := s.signup(t, "owner@example.com", "SELLER")
	id := s.createHouse(t, owner.Token, "photo", 100, 1)["id"].(string)

	w := s.upload(t, "/api/houses/"+id+"/images", owner.Token, "porch.jpg", []byte("jpeg-bytes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	img := decode(t, w)["image"].(map[string]any)
	assert.EqualValues(t, 2, img["order"])
	assert.Contains(t, img["url"], "houses/"+id+"/")

	house := decode(t, s.do(t, http.MethodGet, "/api/houses/"+id, "", nil))["house"].(map[string]any)
	assert.Len(t, house["images"], 3)
}

func TestUploadImageWithoutStorage(t *testing.T) {
	s := newServer(t, false)
	owner := s.signup(t, "owner@example.com", "SELLER")
	id := s.createHouse(t, owner.Token, "photo", 100, 1)["id"].(string)

	w := s.upload(t, "/api/houses/"+id+"/images", owner.Token, "porch.jpg", []byte("x"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"Image storage not configured"}`, w.Body.String())
}

func TestSearchWithoutIndexIsEmpty(t *testing.T) {
	s := newServer(t, false)
	w := s.do(t, http.MethodGet, "/api/houses/search?q=loft", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"houses":[]}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/houses/search?q=loft&size=many", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
