package tui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/robby/folio/internal/domain"
	"github.com/robby/folio/internal/slideshow"
)

// Title reveal timing, one letter after another
const (
	revealDelay   = 100 * time.Millisecond
	letterStagger = 60 * time.Millisecond
)

// Card styles
var (
	cardFillStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")) // Near black

	cardBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")). // Gray
			Background(lipgloss.Color("235"))

	currentBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")). // Pink
				Background(lipgloss.Color("235"))

	hoverBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")). // Light pink
				Background(lipgloss.Color("235"))

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("235")).
			Bold(true)

	cardTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("235"))

	cardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("235"))
)

// frameClock is the animation time shared by every card. The slideshow model
// advances it on each frame.
type frameClock struct {
	now time.Time
}

// motion is an in-flight MoveToPosition.
type motion struct {
	target   int
	fromSlot *int
	start    time.Time
	started  bool
	from     slideshow.Transform
	done     chan struct{}
}

// SlideCard is the terminal implementation of slideshow.Actor: a bordered
// card placed on the canvas by its current transform.
type SlideCard struct {
	project  domain.Project
	layout   *slideshow.Layout
	clock    *frameClock
	duration time.Duration

	position  slideshow.Position
	visible   bool
	transform slideshow.Transform
	motion    *motion

	revealing   bool
	revealStart time.Time
}

// NewSlideCard creates a hidden card for project.
func NewSlideCard(project domain.Project, layout *slideshow.Layout, clock *frameClock, duration time.Duration) *SlideCard {
	return &SlideCard{
		project:   project,
		layout:    layout,
		clock:     clock,
		duration:  duration,
		transform: slideshow.Identity,
	}
}

// SetCurrent places the card in the centre and starts the title reveal.
func (c *SlideCard) SetCurrent() {
	c.position = slideshow.PositionCenter
	c.place(0)
	c.revealing = true
	c.revealStart = c.clock.now
}

// SetLeft places the card at the left neighbour slot.
func (c *SlideCard) SetLeft() {
	c.position = slideshow.PositionLeft
	c.place(-1)
	c.revealing = false
}

// SetRight places the card at the right neighbour slot.
func (c *SlideCard) SetRight() {
	c.position = slideshow.PositionRight
	c.place(1)
	c.revealing = false
}

func (c *SlideCard) place(offset int) {
	c.transform = c.layout.Slot(offset)
	c.visible = true
}

// Position reports the role tag.
func (c *SlideCard) Position() slideshow.Position {
	return c.position
}

// MoveToPosition schedules a motion. A motion still running on this card is
// superseded and its channel closed immediately.
func (c *SlideCard) MoveToPosition(m slideshow.Move) <-chan struct{} {
	if c.motion != nil {
		close(c.motion.done)
	}
	c.motion = &motion{
		target:   m.Position,
		fromSlot: m.From,
		start:    c.clock.now.Add(m.Delay),
		done:     make(chan struct{}),
	}
	// Title fades out while the card travels
	c.revealing = false
	return c.motion.done
}

// Hide makes the card invisible and clears its reveal.
func (c *SlideCard) Hide() {
	c.visible = false
	c.transform = slideshow.Identity
	c.revealing = false
}

// Reset clears the role tag.
func (c *SlideCard) Reset() {
	c.position = slideshow.PositionUnset
}

// Step advances the card to now and reports whether it still needs frames.
func (c *SlideCard) Step(now time.Time) bool {
	busy := false

	if mo := c.motion; mo != nil {
		busy = true
		if !now.Before(mo.start) {
			if !mo.started {
				mo.started = true
				if mo.fromSlot != nil {
					c.transform = c.layout.Slot(*mo.fromSlot)
					c.visible = true
				}
				mo.from = c.transform
			}

			p := 1.0
			if c.duration > 0 {
				p = math.Min(1, float64(now.Sub(mo.start))/float64(c.duration))
			}
			c.transform = lerp(mo.from, c.layout.Slot(mo.target), easeInOutQuart(p))

			if p >= 1 {
				c.transform = c.layout.Slot(mo.target)
				close(mo.done)
				c.motion = nil
				busy = false
			}
		}
	}

	if c.revealing && c.revealedLetters(now) < len([]rune(c.project.Name)) {
		busy = true
	}
	return busy
}

// revealedLetters is how many title letters are visible at now.
func (c *SlideCard) revealedLetters(now time.Time) int {
	if !c.revealing {
		return 0
	}
	elapsed := now.Sub(c.revealStart) - revealDelay
	if elapsed < 0 {
		return 0
	}
	n := int(elapsed/letterStagger) + 1
	if total := len([]rune(c.project.Name)); n > total {
		n = total
	}
	return n
}

// Bounds returns the card rectangle in viewport cells.
func (c *SlideCard) Bounds() rect {
	vp := c.layout.Viewport()
	slide := c.layout.SlideSize()

	w := int(math.Round(slide.Width * c.transform.Scale))
	h := int(math.Round(slide.Height * c.transform.Scale))
	cx := vp.Width/2 + c.transform.X
	cy := vp.Height/2 + c.transform.Y

	return rect{
		x: int(math.Round(cx - float64(w)/2)),
		y: int(math.Round(cy - float64(h)/2)),
		w: w,
		h: h,
	}
}

// Visible reports whether the card is drawn.
func (c *SlideCard) Visible() bool {
	return c.visible
}

// Scale is the card's current scale, used for draw order.
func (c *SlideCard) Scale() float64 {
	return c.transform.Scale
}

// Project returns the card's project.
func (c *SlideCard) Project() domain.Project {
	return c.project
}

// Draw composites the card onto cv.
func (c *SlideCard) Draw(cv *canvas, hovered bool) {
	if !c.visible {
		return
	}
	r := c.Bounds()

	border := &cardBorderStyle
	switch {
	case c.position == slideshow.PositionCenter:
		border = &currentBorderStyle
	case hovered:
		border = &hoverBorderStyle
	}
	cv.box(r, lipgloss.RoundedBorder(), border, &cardFillStyle)

	inner := r.w - 4
	if inner < 1 || r.h < 3 {
		return
	}
	x, y := r.x+2, r.y+1
	bottom := r.y + r.h - 1

	// Title: letter-by-letter on the current card, truncated on neighbours
	title := c.project.Name
	if c.position == slideshow.PositionCenter {
		title = string([]rune(title)[:c.revealedLetters(c.clock.now)])
	} else if c.motion != nil {
		title = ""
	}
	cv.text(x, y, truncate.StringWithTail(title, uint(inner), "…"), &cardTitleStyle)
	y++

	if y < bottom && c.project.Date != "" {
		cv.text(x, y, truncate.StringWithTail(c.project.Date, uint(inner), "…"), &cardDimStyle)
		y++
	}

	if c.position != slideshow.PositionCenter {
		return
	}

	y++
	for _, line := range splitLines(wordwrap.String(c.project.Description, inner)) {
		if y >= bottom-1 {
			break
		}
		cv.text(x, y, truncate.StringWithTail(line, uint(inner), "…"), &cardTextStyle)
		y++
	}

	if c.project.ImageURL != "" && bottom-1 > y {
		cv.text(x, bottom-1, truncate.StringWithTail(c.project.ImageURL, uint(inner), "…"), &cardDimStyle)
	}
}

func lerp(a, b slideshow.Transform, t float64) slideshow.Transform {
	return slideshow.Transform{
		X:     a.X + (b.X-a.X)*t,
		Y:     a.Y + (b.Y-a.Y)*t,
		Scale: a.Scale + (b.Scale-a.Scale)*t,
	}
}

// easeInOutQuart is the power4.inOut curve.
func easeInOutQuart(t float64) float64 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 4)/2
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
