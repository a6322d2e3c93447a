package tui

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/oksasatya/timbr/internal/client"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubAPI struct {
	mu     sync.Mutex
	feed   []client.House
	err    error
	swipes []string
}

func (s *stubAPI) Houses(context.Context, client.ListParams) ([]client.House, error) {
	return s.feed, s.err
}

func (s *stubAPI) RecordSwipe(_ context.Context, id string, dir client.Direction, _ time.Duration) (*client.Swipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swipes = append(s.swipes, id+":"+string(dir))
	return &client.Swipe{HouseID: id, Direction: dir}, nil
}

func setup(t *testing.T, api *stubAPI) (Model, *client.Dispatcher) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	d := client.NewDispatcher(8, time.Second, logger)
	ctrl := client.NewController(api, d, 10)
	m := New(ctrl, api)
	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(Model), d
}

func press(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestKeysSwipeThroughFeed(t *testing.T) {
	api := &stubAPI{feed: []client.House{{ID: "a", Title: "Loft", Price: 1250000}, {ID: "b", Title: "Barn"}}}
	m, d := setup(t, api)

	assert.Contains(t, m.View(), "Loft")
	assert.Contains(t, m.View(), "$1,250,000")

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Contains(t, m.View(), "Barn")
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	assert.Contains(t, m.View(), "all caught up")

	d.Close()
	assert.Equal(t, []string{"a:RIGHT", "b:LEFT"}, api.swipes)
}

func TestMouseDragPastThreshold(t *testing.T) {
	api := &stubAPI{feed: []client.House{{ID: "a"}, {ID: "b"}}}
	m, d := setup(t, api)

	m = press(m, tea.MouseMsg{X: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = press(m, tea.MouseMsg{X: 14, Action: tea.MouseActionRelease})
	pos, _ := m.ctrl.Position()
	assert.Equal(t, 0, pos, "short drag snaps back")

	m = press(m, tea.MouseMsg{X: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = press(m, tea.MouseMsg{X: 0, Action: tea.MouseActionRelease})
	pos, _ = m.ctrl.Position()
	assert.Equal(t, 1, pos)

	d.Close()
	assert.Equal(t, []string{"a:LEFT"}, api.swipes)
}

func TestRefetchWhenExhausted(t *testing.T) {
	api := &stubAPI{feed: []client.House{{ID: "a", Title: "Loft"}}}
	m, d := setup(t, api)
	defer d.Close()

	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	require.True(t, m.ctrl.Exhausted())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	m = press(next.(Model), cmd())
	assert.Contains(t, m.View(), "Loft")
}

func TestFeedErrorIsShown(t *testing.T) {
	api := &stubAPI{err: errors.New("connection refused")}
	m, d := setup(t, api)
	defer d.Close()
	assert.Contains(t, m.View(), "connection refused")
}
