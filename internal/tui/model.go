// Package tui is the terminal swipe client.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oksasatya/timbr/internal/client"
)

// Feed fetches a page of listings.
type Feed interface {
	Houses(ctx context.Context, p client.ListParams) ([]client.House, error)
}

type feedMsg struct {
	houses []client.House
	err    error
}

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2).
			Width(56)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	priceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	likeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// Model drives a client.Controller from keyboard and mouse input.
type Model struct {
	ctrl      *client.Controller
	feed      Feed
	threshold int

	loading bool
	err     error
	last    client.Direction

	dragging bool
	dragX    int
	offset   int
}

func New(ctrl *client.Controller, feed Feed) Model {
	return Model{ctrl: ctrl, feed: feed, threshold: client.DefaultSwipeThreshold, loading: true}
}

func (m Model) Init() tea.Cmd { return m.fetch() }

func (m Model) fetch() tea.Cmd {
	feed, params := m.feed, m.ctrl.FirstPage()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		hs, err := feed.Houses(ctx, params)
		return feedMsg{houses: hs, err: err}
	}
}

func (m Model) swipe(dir client.Direction) Model {
	if m.ctrl.Swipe(dir) {
		m.last = dir
	}
	m.offset = 0
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case feedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.ctrl.Load(msg.houses)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r":
			if m.ctrl.Exhausted() && !m.loading {
				m.loading = true
				return m, m.fetch()
			}
			return m, nil
		}
		if dir, ok := client.DirectionForKey(msg.String()); ok {
			return m.swipe(dir), nil
		}

	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.dragging, m.dragX, m.offset = true, msg.X, 0
			}
		case tea.MouseActionMotion:
			if m.dragging {
				m.offset = msg.X - m.dragX
			}
		case tea.MouseActionRelease:
			if !m.dragging {
				return m, nil
			}
			m.dragging = false
			if dir, ok := client.DirectionForRelease(msg.X-m.dragX, m.threshold); ok {
				return m.swipe(dir), nil
			}
			m.offset = 0
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("timbr") + "\n\n")

	switch {
	case m.loading:
		b.WriteString(dimStyle.Render("Loading listings...") + "\n")
	case m.err != nil:
		b.WriteString(errStyle.Render("Could not load listings: "+m.err.Error()) + "\n")
		b.WriteString(dimStyle.Render("q quit") + "\n")
	case m.ctrl.Exhausted():
		b.WriteString("You're all caught up.\n\n")
		b.WriteString(dimStyle.Render("r load more • q quit") + "\n")
	default:
		h, _ := m.ctrl.Current()
		card := cardStyle.Render(renderHouse(h))
		if m.offset != 0 {
			card = lipgloss.NewStyle().MarginLeft(max(m.offset, 0)).Render(card)
		}
		b.WriteString(card + "\n")
		pos, total := m.ctrl.Position()
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d / %d", pos+1, total)) + "\n")
		b.WriteString(passStyle.Render("← pass") + "   " + likeStyle.Render("like →") + "   " + dimStyle.Render("q quit") + "\n")
	}

	switch m.last {
	case client.Right:
		b.WriteString("\n" + likeStyle.Render("Liked") + "\n")
	case client.Left:
		b.WriteString("\n" + passStyle.Render("Passed") + "\n")
	}
	return b.String()
}

func renderHouse(h client.House) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(h.Title) + "\n")
	b.WriteString(priceStyle.Render(formatPrice(h.Price)) + "\n")
	b.WriteString(fmt.Sprintf("%d bd • %g ba • %d sqft • %s\n", h.Bedrooms, h.Bathrooms, h.Sqft, strings.ToLower(h.PropertyType)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s, %s, %s %s", h.AddressLine1, h.City, h.State, h.PostalCode)) + "\n")
	var extras []string
	if h.HasGarage {
		extras = append(extras, "garage")
	}
	if h.HasPool {
		extras = append(extras, "pool")
	}
	if len(extras) > 0 {
		b.WriteString(strings.Join(extras, " • ") + "\n")
	}
	if len(h.Images) > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d photos", len(h.Images))) + "\n")
	}
	if h.Agent != nil {
		b.WriteString(dimStyle.Render("Listed by "+h.Agent.User.DisplayName) + "\n")
	}
	if h.Description != "" {
		b.WriteString("\n" + h.Description)
	}
	return b.String()
}

// formatPrice renders whole dollars with thousands separators.
func formatPrice(p int) string {
	s := fmt.Sprintf("%d", p)
	var out []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return "$" + string(out)
}
