package slideshow

import (
	"time"

	"github.com/robby/folio/internal/domain"
)

// Position is the logical role a slide currently plays.
type Position int

const (
	PositionUnset Position = iota
	PositionLeft
	PositionCenter
	PositionRight
)

func (p Position) String() string {
	switch p {
	case PositionLeft:
		return "left"
	case PositionCenter:
		return "center"
	case PositionRight:
		return "right"
	default:
		return "unset"
	}
}

// Move asks an actor to animate to a slot.
type Move struct {
	Position int           // Target slot offset, -2..+2
	Delay    time.Duration // Wait before the motion starts
	From     *int          // Optional staging slot to jump to before moving
}

// From returns a pointer to a staging offset for Move.From.
func From(offset int) *int {
	return &offset
}

// Actor is a renderable slide that accepts position and visibility commands.
// The controller never touches pixels; it only calls these methods.
type Actor interface {
	// SetCurrent makes the slide focal, places it at slot 0 and starts its reveal.
	SetCurrent()
	// SetLeft places the slide at slot -1 as a clickable neighbour.
	SetLeft()
	// SetRight places the slide at slot +1 as a clickable neighbour.
	SetRight()
	// Position reports the current role tag.
	Position() Position
	// MoveToPosition animates the slide and returns a channel that is closed
	// once, after the motion has visually finished. When m.From is set the
	// slide is made visible before the motion starts.
	MoveToPosition(m Move) <-chan struct{}
	// Hide makes the slide invisible, resets its transform and clears any reveal.
	Hide()
	// Reset clears the role tag without changing visibility.
	Reset()
}

// IsPositionedLeft reports whether a is the left neighbour.
func IsPositionedLeft(a Actor) bool { return a.Position() == PositionLeft }

// IsPositionedRight reports whether a is the right neighbour.
func IsPositionedRight(a Actor) bool { return a.Position() == PositionRight }

// IsPositionedCenter reports whether a is the current slide.
func IsPositionedCenter(a Actor) bool { return a.Position() == PositionCenter }

// Backdrop cross-fades the page background when the current project changes.
type Backdrop interface {
	CrossFade(from, to domain.Project)
}

// Timing holds the stagger delays of a transition. Durations and easing
// belong to the actor implementation.
type Timing struct {
	Lead   time.Duration // Delay of the slide leaving the centre
	Trail  time.Duration // Delay of the neighbour that moves towards the centre
	Arrive time.Duration // Delay of the upcoming slide entering from off-screen
}

// DefaultTiming mirrors the stagger of the portfolio site.
func DefaultTiming() Timing {
	return Timing{
		Lead:   70 * time.Millisecond,
		Trail:  300 * time.Millisecond,
		Arrive: 210 * time.Millisecond,
	}
}
