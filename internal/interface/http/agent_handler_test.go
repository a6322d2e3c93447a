package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

func TestGetAgent(t *testing.T) {
	s := newServer(t, false)
	agent := s.signup(t, "agent@example.com", "AGENT")
	created := s.createHouse(t, agent.Token, "bungalow", 320000, 2)
	agentID := created["agentId"].(string)

	p, err := s.store.Profiles().ProfileForUser(context.Background(), agent.User.ID, entity.RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, agentID, p.ProfileID())

	w := s.do(t, http.MethodGet, "/api/agents/"+agentID, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)["agent"].(map[string]any)
	assert.Equal(t, agentID, body["id"])
	assert.Equal(t, "agent@example.com", body["user"].(map[string]any)["email"])
	listings := body["listings"].([]any)
	require.Len(t, listings, 1)
	assert.Len(t, listings[0].(map[string]any)["images"], 2)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestGetAgentMissing(t *testing.T) {
	s := newServer(t, false)
	for _, id := range []string{"00000000-0000-0000-0000-000000000000", "nope"} {
		w := s.do(t, http.MethodGet, "/api/agents/"+id, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Agent not found"}`, w.Body.String())
	}
}
