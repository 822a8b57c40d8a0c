package tui

import (
	"hash/fnv"
	"math"
	"path"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/robby/folio/internal/domain"
)

// Backdrop tints the whole viewport with a colour derived from the current
// project's background image and cross-fades between projects.
type Backdrop struct {
	clock    *frameClock
	delay    time.Duration
	duration time.Duration

	from, to           colorful.Color
	fromLabel, toLabel string
	start              time.Time
	fading             bool
}

// NewBackdrop creates a backdrop showing initial.
func NewBackdrop(clock *frameClock, delay, duration time.Duration, initial domain.Project) *Backdrop {
	c := backdropColor(initial)
	label := backdropLabel(initial)
	return &Backdrop{
		clock:     clock,
		delay:     delay,
		duration:  duration,
		from:      c,
		to:        c,
		fromLabel: label,
		toLabel:   label,
	}
}

// CrossFade keeps from underneath and fades to in over it.
func (b *Backdrop) CrossFade(from, to domain.Project) {
	b.from = backdropColor(from)
	b.fromLabel = backdropLabel(from)
	b.to = backdropColor(to)
	b.toLabel = backdropLabel(to)
	b.start = b.clock.now.Add(b.delay)
	b.fading = true
}

// Step advances the fade and reports whether it still needs frames.
func (b *Backdrop) Step(now time.Time) bool {
	if !b.fading {
		return false
	}
	if b.progress(now) >= 1 {
		b.fading = false
		b.from, b.fromLabel = b.to, b.toLabel
		return false
	}
	return true
}

func (b *Backdrop) progress(now time.Time) float64 {
	if !b.fading {
		return 1
	}
	if now.Before(b.start) {
		return 0
	}
	if b.duration <= 0 {
		return 1
	}
	return math.Min(1, float64(now.Sub(b.start))/float64(b.duration))
}

// Color returns the blended tint at the clock's current time.
func (b *Backdrop) Color() colorful.Color {
	return b.from.BlendLab(b.to, easeInOutQuart(b.progress(b.clock.now))).Clamped()
}

// Style is the canvas base style for the current tint.
func (b *Backdrop) Style() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(b.Color().Hex())).
		Foreground(lipgloss.Color("250"))
}

// Label names the background image that dominates the blend.
func (b *Backdrop) Label() string {
	if b.progress(b.clock.now) < 0.5 {
		return b.fromLabel
	}
	return b.toLabel
}

// backdropColor maps a background URL to a stable dark tint.
func backdropColor(p domain.Project) colorful.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(p.BackgroundURL))
	hue := float64(h.Sum32() % 360)
	return colorful.Hsl(hue, 0.35, 0.16)
}

func backdropLabel(p domain.Project) string {
	if p.BackgroundURL == "" {
		return ""
	}
	return path.Base(p.BackgroundURL)
}
