package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/timbr/config"
)

func TestRenderWelcome(t *testing.T) {
	cfg := &config.Config{AppName: "timbr-backend", CompanyName: "timbr", AppURL: "http://app.test"}
	data := NewWelcomeData(cfg, "Ada", "ada@example.com", "BUYER")

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to timbr, Ada", subject)
	assert.Contains(t, text, "Start swiping")
	assert.Contains(t, text, "http://app.test")
	assert.NotContains(t, text, "Need help?")
	assert.Contains(t, html, "ada@example.com")
}

func TestRenderWelcome_AgentCopy(t *testing.T) {
	cfg := &config.Config{CompanyName: "timbr", SupportURL: "http://help.test"}
	_, text, _, err := Render(Welcome, NewWelcomeData(cfg, "Bo", "bo@example.com", "AGENT"))
	require.NoError(t, err)
	assert.Contains(t, text, "agent profile")
	assert.Contains(t, text, "http://help.test")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "x", defaultFn("x", "  "))
	assert.Equal(t, "x", defaultFn("x", nil))
	assert.Equal(t, "x", defaultFn("x", 0))
	assert.Equal(t, 3, defaultFn("x", 3))
	assert.Equal(t, "timbr", defaultFn("x", "timbr"))
}
