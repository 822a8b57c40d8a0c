package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/folio/internal/config"
	"github.com/robby/folio/internal/domain"
	"github.com/robby/folio/internal/slideshow"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// createTestProjects creates n projects with distinct background urls
func createTestProjects(n int) []domain.Project {
	projects := make([]domain.Project, n)
	for i := range projects {
		projects[i] = domain.Project{
			ID:            fmt.Sprintf("proj_%d", i),
			Name:          fmt.Sprintf("Project %d", i),
			Description:   fmt.Sprintf("Description of project %d", i),
			Date:          "2024",
			ImageURL:      fmt.Sprintf("http://localhost:3000/images/project-%d.jpg", i),
			BackgroundURL: fmt.Sprintf("http://localhost:3000/backgrounds/bg-%d.jpg", i),
		}
	}
	return projects
}

// testConfig shortens the animation so tests can step past it
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Timing.Duration = 100 * time.Millisecond
	cfg.Timing.Frame = time.Millisecond
	cfg.Timing.FadeDelay = 10 * time.Millisecond
	return cfg
}

// createTestSlideshow creates a sized slideshow with a frozen clock
func createTestSlideshow(t *testing.T, n int) SlideshowModel {
	t.Helper()
	m, err := NewSlideshowModel(context.Background(), createTestProjects(n), testConfig(), nil)
	require.NoError(t, err)
	m.now = func() time.Time { return testEpoch }

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(SlideshowModel)
	require.True(t, m.ctrl.Layout().Ready())
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sendKey(m SlideshowModel, s string) (SlideshowModel, tea.Cmd) {
	updated, cmd := m.Update(keyMsg(s))
	return updated.(SlideshowModel), cmd
}

// finishAnimation steps every card far past the end of its motion
func finishAnimation(m *SlideshowModel) {
	m.step(m.clock.now.Add(10 * time.Second))
}

// settledMsg runs cmd and returns the transitionSettledMsg it produces
func settledMsg(t *testing.T, cmd tea.Cmd) transitionSettledMsg {
	t.Helper()
	require.NotNil(t, cmd)

	var find func(tea.Cmd) (transitionSettledMsg, bool)
	find = func(c tea.Cmd) (transitionSettledMsg, bool) {
		if c == nil {
			return transitionSettledMsg{}, false
		}
		switch msg := c().(type) {
		case transitionSettledMsg:
			return msg, true
		case tea.BatchMsg:
			for _, inner := range msg {
				if found, ok := find(inner); ok {
					return found, true
				}
			}
		}
		return transitionSettledMsg{}, false
	}

	msg, ok := find(cmd)
	require.True(t, ok, "command should produce a settled message")
	return msg
}

// cardAt returns the index of the card holding position p
func cardAt(m SlideshowModel, p slideshow.Position) int {
	for i, c := range m.cards {
		if c.Position() == p {
			return i
		}
	}
	return -1
}
