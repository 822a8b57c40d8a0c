package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pkg/browser"
	"github.com/robby/folio/internal/domain"
)

// Detail view styles
var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("205"))
)

// DetailModel shows everything known about one project in a scrollable panel.
type DetailModel struct {
	project domain.Project

	keymap   KeyMap
	viewport viewport.Model

	statusMsg string

	// View dimensions
	width  int
	height int
}

// NewDetailModel creates a new detail view model
func NewDetailModel(project domain.Project) DetailModel {
	vp := viewport.New(40, 10) // Will be resized in WindowSizeMsg
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := DetailModel{
		project:  project,
		keymap:   DefaultKeyMap(),
		viewport: vp,
	}
	m.updateViewportContent()
	return m
}

// Init initializes the detail model
func (m DetailModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// resizeComponents fits the viewport between header and footer.
func (m *DetailModel) resizeComponents() {
	contentHeight := m.height - headerHeight - footerHeight - borderSize
	if contentHeight < 3 {
		contentHeight = 3
	}
	contentWidth := m.width - borderSize - 2 // -2 for padding
	if contentWidth < 20 {
		contentWidth = 20
	}
	m.viewport.Width = contentWidth
	m.viewport.Height = contentHeight
	m.updateViewportContent()
}

// handleKeyPress processes keyboard input
func (m DetailModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	m.statusMsg = ""
	switch {
	case key.Matches(msg, m.keymap.Close), key.Matches(msg, m.keymap.Detail), msg.String() == "q":
		return m, func() tea.Msg { return closeOverlayMsg{} }
	case key.Matches(msg, m.keymap.Open):
		if m.project.ImageURL != "" {
			if err := browser.OpenURL(m.project.ImageURL); err != nil {
				m.statusMsg = fmt.Sprintf("open failed: %v", err)
			}
		}
	case key.Matches(msg, m.keymap.Share):
		project := m.project
		return m, func() tea.Msg { return openShareMsg{project: project} }
	case msg.String() == "j", msg.String() == "down":
		m.viewport.LineDown(1)
	case msg.String() == "k", msg.String() == "up":
		m.viewport.LineUp(1)
	case msg.String() == "g":
		m.viewport.GotoTop()
	case msg.String() == "G":
		m.viewport.GotoBottom()
	}

	return m, nil
}

// View renders the detail view
func (m DetailModel) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	header := m.renderHeader()
	panel := panelBorderStyle.
		Padding(0, 1).
		Width(width - borderSize).
		Render(m.viewport.View())
	footer := m.renderFooter(width)

	return lipgloss.JoinVertical(lipgloss.Left, header, panel, footer)
}

func (m DetailModel) renderHeader() string {
	return dimStyle.Render("[esc]back [o]open [s]share [j/k]scroll [g/G]top/bottom")
}

func (m DetailModel) renderFooter(width int) string {
	left := ""
	if m.statusMsg != "" {
		left = ErrorStyle.Render("✗ " + m.statusMsg)
	}

	right := ""
	switch {
	case m.viewport.AtTop() && m.viewport.AtBottom():
	case m.viewport.AtTop():
		right = "TOP"
	case m.viewport.AtBottom():
		right = "END"
	default:
		right = fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + dimStyle.Render(right)
}

// updateViewportContent formats the project for viewport display
func (m *DetailModel) updateViewportContent() {
	var b strings.Builder
	wrapWidth := m.viewport.Width - 2
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	b.WriteString(detailTitleStyle.Render(m.project.Name))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(detailValueStyle.Render(wordwrap.String(value, wrapWidth)))
		b.WriteString("\n\n")
	}
	field("Date", m.project.Date)
	field("Description", m.project.Description)
	field("Image", m.project.ImageURL)
	field("Background", m.project.BackgroundURL)
	field("ID", m.project.ID)

	m.viewport.SetContent(strings.TrimRight(b.String(), "\n"))
}
