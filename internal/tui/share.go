package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robby/folio/internal/domain"
	qrcode "github.com/skip2/go-qrcode"
)

var qrStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(lipgloss.Color("255"))

// ShareModel shows a QR code for the project's image URL.
type ShareModel struct {
	project domain.Project
	keymap  KeyMap

	code      string
	err       error
	statusMsg string

	width  int
	height int
}

// NewShareModel encodes the project's image URL as a QR code.
func NewShareModel(project domain.Project) ShareModel {
	m := ShareModel{
		project: project,
		keymap:  DefaultKeyMap(),
	}
	if project.ImageURL == "" {
		m.err = fmt.Errorf("project %q has no image url", project.Name)
		return m
	}
	m.code, m.err = renderQR(project.ImageURL)
	return m
}

// Init initializes the share model
func (m ShareModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m ShareModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case key.Matches(msg, m.keymap.Close), key.Matches(msg, m.keymap.Share), msg.String() == "q":
			return m, func() tea.Msg { return closeOverlayMsg{} }
		case key.Matches(msg, m.keymap.Copy):
			if err := clipboard.WriteAll(m.project.ImageURL); err != nil {
				m.statusMsg = fmt.Sprintf("copy failed: %v", err)
			} else {
				m.statusMsg = "copied"
			}
		}
	}
	return m, nil
}

// View renders the QR code centred with the URL beneath it.
func (m ShareModel) View() string {
	width, height := m.width, m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	var body string
	if m.err != nil {
		body = ErrorStyle.Render(m.err.Error())
	} else {
		parts := []string{
			detailTitleStyle.Render(m.project.Name),
			"",
			m.code,
			"",
			dimStyle.Render(m.project.ImageURL),
		}
		if m.statusMsg != "" {
			parts = append(parts, m.statusMsg)
		}
		body = lipgloss.JoinVertical(lipgloss.Center, parts...)
	}

	content := lipgloss.Place(width, height-footerHeight, lipgloss.Center, lipgloss.Center, body)
	footer := dimStyle.Render("[esc]back [y]copy url")
	return lipgloss.JoinVertical(lipgloss.Left, content, footer)
}

// renderQR draws a QR code with half-block characters, two modules per cell.
func renderQR(content string) (string, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}
	bitmap := q.Bitmap()

	var b strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		var row strings.Builder
		for x := range bitmap[y] {
			top := bitmap[y][x]
			bottom := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bottom:
				row.WriteRune('█')
			case top:
				row.WriteRune('▀')
			case bottom:
				row.WriteRune('▄')
			default:
				row.WriteRune(' ')
			}
		}
		b.WriteString(qrStyle.Render(row.String()))
		if y+2 < len(bitmap) {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
