package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robby/folio/internal/catalog"
	"github.com/robby/folio/internal/config"
	"github.com/robby/folio/internal/domain"
	"github.com/robby/folio/internal/store"
)

// AppScreen represents the different screens in the application flow.
type AppScreen int

const (
	ScreenLoading AppScreen = iota
	ScreenSlideshow
	ScreenDetail
	ScreenShare
)

// AppModel is the root Bubble Tea model that manages screen transitions.
// It loads the catalogue, then shows the slideshow with detail and share
// overlays on top of it.
type AppModel struct {
	// Dependencies
	store   *store.Store
	sources []catalog.Source
	cfg     config.Config
	logger  *slog.Logger
	ctx     context.Context

	// Current state
	currentScreen AppScreen
	currentModel  tea.Model
	spinner       spinner.Model
	err           error
	loadingMsg    string

	// Cached slideshow to preserve animation state across overlays
	slideshowModel *SlideshowModel
}

// NewAppModel creates a new app model that loads projects from sources.
func NewAppModel(ctx context.Context, s *store.Store, sources []catalog.Source, cfg config.Config, logger *slog.Logger) AppModel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return AppModel{
		store:         s,
		sources:       sources,
		cfg:           cfg,
		logger:        logger,
		ctx:           ctx,
		currentScreen: ScreenLoading,
		spinner:       sp,
		loadingMsg:    "Loading projects...",
	}
}

// Init initializes the app model.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadProjects())
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.err != nil && msg.String() == "q" {
			return m, tea.Quit
		}

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case QuitMsg:
		m.logger.Info("quit requested")
		return m, tea.Quit

	case spinner.TickMsg:
		if m.currentScreen != ScreenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case projectsLoadedMsg:
		if err := m.store.SetProjects(msg.projects); err != nil {
			m.err = err
			return m, nil
		}
		sm, err := NewSlideshowModel(m.ctx, m.store.All(), m.cfg, m.logger)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.logger.Info("slideshow ready", "projects", m.store.Len())
		m.currentScreen = ScreenSlideshow
		m.slideshowModel = &sm
		m.currentModel = sm
		return m, sm.Init()

	case frameMsg, transitionSettledMsg:
		// Animation keeps running underneath overlays
		return m.updateSlideshow(msg)

	case tea.WindowSizeMsg:
		if m.currentScreen == ScreenSlideshow || m.slideshowModel == nil {
			break
		}
		model, cmd := m.updateSlideshow(msg)
		m = model.(AppModel)
		var overlayCmd tea.Cmd
		m.currentModel, overlayCmd = m.currentModel.Update(msg)
		return m, tea.Batch(cmd, overlayCmd)

	case openDetailMsg:
		m.currentScreen = ScreenDetail
		detailModel := NewDetailModel(msg.project)
		m.currentModel = detailModel
		return m, detailModel.Init()

	case openShareMsg:
		m.currentScreen = ScreenShare
		shareModel := NewShareModel(msg.project)
		m.currentModel = shareModel
		return m, shareModel.Init()

	case closeOverlayMsg:
		if m.slideshowModel == nil {
			return m, nil
		}
		m.currentScreen = ScreenSlideshow
		m.currentModel = *m.slideshowModel
		// Request window size to ensure proper rendering
		return m, tea.WindowSize()
	}

	// Delegate to current screen's model
	if m.currentModel != nil {
		var cmd tea.Cmd
		m.currentModel, cmd = m.currentModel.Update(msg)
		// Keep slideshowModel in sync when on slideshow screen
		if m.currentScreen == ScreenSlideshow {
			if sm, ok := m.currentModel.(SlideshowModel); ok {
				m.slideshowModel = &sm
			}
		}
		return m, cmd
	}

	return m, nil
}

// updateSlideshow sends msg to the cached slideshow whatever screen is shown.
func (m AppModel) updateSlideshow(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.slideshowModel == nil {
		return m, nil
	}
	model, cmd := m.slideshowModel.Update(msg)
	sm := model.(SlideshowModel)
	m.slideshowModel = &sm
	if m.currentScreen == ScreenSlideshow {
		m.currentModel = sm
	}
	return m, cmd
}

// View renders the current screen.
func (m AppModel) View() string {
	// Show error if present
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	// Delegate to current screen
	if m.currentModel != nil {
		return m.currentModel.View()
	}

	// Show loading state
	return m.spinner.View() + " " + m.loadingMsg + "\n\nPress Ctrl+C to quit"
}

// loadProjects creates a command to read the catalogue from the sources.
func (m AppModel) loadProjects() tea.Cmd {
	sources := m.sources
	return func() tea.Msg {
		projects, err := catalog.Load(sources...)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load projects: %w", err)}
		}
		return projectsLoadedMsg{projects: projects}
	}
}

// Custom messages for app transitions.
type projectsLoadedMsg struct {
	projects []domain.Project
}
