package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/pkg/browser"
	"github.com/robby/folio/internal/config"
	"github.com/robby/folio/internal/domain"
	"github.com/robby/folio/internal/slideshow"
)

// Layout constants
const (
	headerHeight = 1
	footerHeight = 1
	borderSize   = 2 // Top + bottom border
)

// Cursor glyphs
const (
	cursorIdle  = '◎'
	cursorHover = '◉'
)

// SlideshowModel is the main view: the current project centred with its
// neighbours on either side, animated by the slideshow controller.
type SlideshowModel struct {
	// Dependencies
	ctrl   *slideshow.Controller
	cfg    config.Config
	logger *slog.Logger
	ctx    context.Context

	// Actors and animation state, shared across model copies
	cards    []*SlideCard
	backdrop *Backdrop
	clock    *frameClock
	now      func() time.Time

	// UI components
	keymap KeyMap
	help   HelpModel

	// View state
	width     int
	height    int
	showHelp  bool
	ticking   bool
	mouseSeen bool
	mouseX    int
	mouseY    int
	hover     int // Card index under the mouse, -1 if none
	toast     string
}

// NewSlideshowModel builds the cards and the controller for projects.
func NewSlideshowModel(ctx context.Context, projects []domain.Project, cfg config.Config, logger *slog.Logger) (SlideshowModel, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	clock := &frameClock{now: time.Now()}
	layout := slideshow.NewLayout(cfg.Layout.Scale, cfg.Layout.Margin)

	cards := make([]*SlideCard, len(projects))
	actors := make([]slideshow.Actor, len(projects))
	for i, p := range projects {
		cards[i] = NewSlideCard(p, layout, clock, cfg.Timing.Duration)
		actors[i] = cards[i]
	}

	if len(projects) < domain.MinProjects {
		return SlideshowModel{}, fmt.Errorf("failed to create slideshow: %w", slideshow.ErrTooFewSlides)
	}
	if cfg.Start < 0 || cfg.Start >= len(projects) {
		return SlideshowModel{}, fmt.Errorf("failed to create slideshow: %w: %d not in [0,%d)",
			slideshow.ErrStartIndex, cfg.Start, len(projects))
	}
	backdrop := NewBackdrop(clock, cfg.Timing.FadeDelay, cfg.Timing.Duration, projects[cfg.Start])

	ctrl, err := slideshow.New(projects, actors,
		slideshow.WithLayout(layout),
		slideshow.WithBackdrop(backdrop),
		slideshow.WithLogger(logger),
		slideshow.WithTiming(slideshow.Timing{
			Lead:   cfg.Timing.Lead,
			Trail:  cfg.Timing.Trail,
			Arrive: cfg.Timing.Arrive,
		}),
		slideshow.WithStart(cfg.Start),
	)
	if err != nil {
		return SlideshowModel{}, fmt.Errorf("failed to create slideshow: %w", err)
	}

	return SlideshowModel{
		ctrl:     ctrl,
		cfg:      cfg,
		logger:   logger,
		ctx:      ctx,
		cards:    cards,
		backdrop: backdrop,
		clock:    clock,
		now:      time.Now,
		keymap:   DefaultKeyMap(),
		help:     NewHelpModel(DefaultKeyMap()),
		hover:    -1,
	}, nil
}

// Init requests the terminal size; slides are placed once it arrives.
func (m SlideshowModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m SlideshowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		(&m).resize()
		return m, (&m).startFrames()

	case frameMsg:
		m.ticking = false
		if !(&m).step(time.Time(msg)) {
			return m, nil
		}
		return m, (&m).startFrames()

	case transitionSettledMsg:
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				return m, nil
			}
			return m, func() tea.Msg { return ErrorMsg{Err: msg.err} }
		}
		m.clock.now = m.now()
		if err := m.ctrl.Settle(msg.transition); err != nil {
			m.logger.Warn("settle failed", "error", err)
			return m, nil
		}
		(&m).updateHover()
		return m, (&m).startFrames()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m SlideshowModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.toast = ""

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, quit
		case key.Matches(msg, m.keymap.Help), key.Matches(msg, m.keymap.Close):
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true

	case key.Matches(msg, m.keymap.Next):
		return m, (&m).navigate(slideshow.DirectionNext)

	case key.Matches(msg, m.keymap.Prev):
		return m, (&m).navigate(slideshow.DirectionPrev)

	case key.Matches(msg, m.keymap.Detail):
		project := m.ctrl.Current()
		return m, func() tea.Msg { return openDetailMsg{project: project} }

	case key.Matches(msg, m.keymap.Share):
		project := m.ctrl.Current()
		return m, func() tea.Msg { return openShareMsg{project: project} }

	case key.Matches(msg, m.keymap.Open):
		url := m.ctrl.Current().ImageURL
		if url == "" {
			m.toast = "no image url"
			return m, nil
		}
		if err := browser.OpenURL(url); err != nil {
			m.logger.Warn("open url failed", "url", url, "error", err)
			m.toast = "open failed"
			return m, nil
		}
		m.toast = "opened " + url

	case key.Matches(msg, m.keymap.Copy):
		url := m.ctrl.Current().BackgroundURL
		if url == "" {
			m.toast = "no background url"
			return m, nil
		}
		if err := clipboard.WriteAll(url); err != nil {
			m.logger.Warn("copy failed", "error", err)
			m.toast = "copy failed"
			return m, nil
		}
		m.toast = "copied " + url
	}

	return m, nil
}

// handleMouse tracks hover and maps clicks on neighbours to navigation.
func (m SlideshowModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.mouseSeen = true
	m.mouseX = msg.X
	m.mouseY = msg.Y - headerHeight
	(&m).updateHover()

	if m.showHelp || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.hover < 0 {
		return m, nil
	}

	m.clock.now = m.now()
	t, ok := m.ctrl.Click(m.hover)
	if !ok {
		return m, nil
	}
	return m, tea.Batch(m.waitFor(t), (&m).startFrames())
}

// quit asks the app to shut down.
func quit() tea.Msg {
	return QuitMsg{}
}

// navigate starts a transition and the frame loop that drives it.
func (m *SlideshowModel) navigate(dir slideshow.Direction) tea.Cmd {
	m.clock.now = m.now()
	t, ok := m.ctrl.Advance(dir)
	if !ok {
		return nil
	}
	return tea.Batch(m.waitFor(t), m.startFrames())
}

// waitFor blocks off the update loop until every motion of t has finished.
func (m SlideshowModel) waitFor(t *slideshow.Transition) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return transitionSettledMsg{transition: t, err: t.Wait(ctx)}
	}
}

// startFrames schedules the next frame unless one is already pending.
func (m *SlideshowModel) startFrames() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.cfg.Timing.Frame, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// step advances every card and the backdrop to now. It reports whether any
// of them still needs frames.
func (m *SlideshowModel) step(now time.Time) bool {
	m.clock.now = now
	busy := false
	for _, c := range m.cards {
		if c.Step(now) {
			busy = true
		}
	}
	if m.backdrop.Step(now) {
		busy = true
	}
	m.updateHover()
	return busy
}

// resize measures the slide area and re-lays out the controller.
func (m *SlideshowModel) resize() {
	viewport, slide := m.measure()
	layout := m.ctrl.Layout()
	idle := m.ctrl.State() == slideshow.StateIdle
	if idle && layout.Ready() && viewport == layout.Viewport() && slide == layout.SlideSize() {
		return
	}
	m.clock.now = m.now()
	if !m.ctrl.Resize(viewport, slide) {
		m.logger.Debug("resize deferred until transition settles")
	}
}

// measure returns the viewport and slide size in cells.
func (m SlideshowModel) measure() (domain.Size, domain.Size) {
	viewport := domain.Size{
		Width:  float64(m.width),
		Height: float64(m.height - headerHeight - footerHeight),
	}
	slide := domain.Size{
		Width:  math.Round(viewport.Width * m.cfg.Layout.SlideWidth),
		Height: math.Round(viewport.Height * m.cfg.Layout.SlideHeight),
	}
	return viewport, slide
}

// drawOrder returns visible card indices back to front: smaller slides first,
// the current slide last.
func (m SlideshowModel) drawOrder() []int {
	order := make([]int, 0, len(m.cards))
	for i, c := range m.cards {
		if c.Visible() {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := m.cards[order[a]], m.cards[order[b]]
		aCur := ca.Position() == slideshow.PositionCenter
		bCur := cb.Position() == slideshow.PositionCenter
		if aCur != bCur {
			return bCur
		}
		return ca.Scale() < cb.Scale()
	})
	return order
}

// hitTest returns the topmost card under (x, y), or -1.
func (m SlideshowModel) hitTest(x, y int) int {
	order := m.drawOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if m.cards[order[i]].Bounds().contains(x, y) {
			return order[i]
		}
	}
	return -1
}

func (m *SlideshowModel) updateHover() {
	if !m.mouseSeen {
		m.hover = -1
		return
	}
	m.hover = m.hitTest(m.mouseX, m.mouseY)
}

// hoveringNeighbour reports whether the mouse is over a clickable slide.
func (m SlideshowModel) hoveringNeighbour() bool {
	if m.hover < 0 {
		return false
	}
	p := m.cards[m.hover].Position()
	return p == slideshow.PositionLeft || p == slideshow.PositionRight
}

// View renders header, slide canvas and footer, filling the terminal.
func (m SlideshowModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}
	contentHeight := height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	header := m.renderHeader(width)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.Place(width, contentHeight, lipgloss.Center, lipgloss.Center, m.help.View(width))
	case !m.ctrl.Layout().Ready():
		content = lipgloss.Place(width, contentHeight, lipgloss.Center, lipgloss.Center,
			dimStyle.Render("Terminal too small"))
	default:
		content = m.renderCanvas(width, contentHeight)
	}

	footer := m.renderFooter(width)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// renderCanvas composites the visible cards and the mouse cursor.
func (m SlideshowModel) renderCanvas(width, height int) string {
	cv := newCanvas(width, height, m.backdrop.Style())
	for _, i := range m.drawOrder() {
		m.cards[i].Draw(cv, i == m.hover)
	}
	if m.mouseSeen {
		glyph := cursorIdle
		if m.hoveringNeighbour() {
			glyph = cursorHover
		}
		cv.set(m.mouseX, m.mouseY, glyph, &cursorStyle)
	}
	return cv.String()
}

// renderHeader renders title and position on the left, backdrop on the right.
func (m SlideshowModel) renderHeader(width int) string {
	current := m.ctrl.Current()
	pos := fmt.Sprintf("%d/%d", m.ctrl.Indices().Current+1, m.ctrl.Len())

	left := headerStyle.Render("folio") + " " + dimStyle.Render(pos) + " " + current.Name
	right := ""
	if label := m.backdrop.Label(); label != "" {
		right = dimStyle.Render(label)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
		left = truncate.StringWithTail(left, uint(max(width-lipgloss.Width(right)-1, 0)), "…")
	}
	return left + strings.Repeat(" ", padding) + right
}

// renderFooter shows the toast if any, otherwise the short help.
func (m SlideshowModel) renderFooter(width int) string {
	if m.toast != "" {
		return toastStyle.Render(truncate.StringWithTail(m.toast, uint(max(width-2, 1)), "…"))
	}
	return m.help.ShortView(width)
}
