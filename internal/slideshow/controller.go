// Package slideshow implements the slide positioning and navigation state machine.
// It tracks which project is current among a circular list, computes the five-slot
// layout geometry, and choreographs the four-slide transition when navigating.
// Rendering is delegated to Actor implementations.
package slideshow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/robby/folio/internal/domain"
)

var (
	// ErrTooFewSlides indicates a catalogue too small to keep three distinct roles.
	ErrTooFewSlides = errors.New("slideshow needs at least three projects")
	// ErrActorCount indicates the actor slice does not match the project list.
	ErrActorCount = errors.New("actor count does not match project count")
	// ErrStartIndex indicates the requested start slide does not exist.
	ErrStartIndex = errors.New("start index out of range")
	// ErrStaleTransition indicates Settle was called with a transition that is not in flight.
	ErrStaleTransition = errors.New("transition is not in flight")
	// ErrUnsettled indicates Settle was called before every motion finished.
	ErrUnsettled = errors.New("transition motions have not finished")
)

// State is the navigation state of the controller.
type State int

const (
	StateIdle State = iota
	StateTransitioning
)

func (s State) String() string {
	if s == StateTransitioning {
		return "transitioning"
	}
	return "idle"
}

// Controller owns the index state and the actors. External code may only
// navigate through Advance, Click, Navigate and Resize.
type Controller struct {
	projects []domain.Project
	actors   []Actor
	layout   *Layout
	backdrop Backdrop
	timing   Timing
	logger   *slog.Logger

	indices Indices
	state   State
	active  *Transition

	// Re-layout requested while transitioning; applied on settle.
	pendingResize *resizeRequest
}

type resizeRequest struct {
	viewport domain.Size
	slide    domain.Size
}

// Option configures a Controller.
type Option func(*Controller) error

// WithLogger sets the logger used for debug traces of ignored input.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithBackdrop sets the collaborator that cross-fades the background.
func WithBackdrop(b Backdrop) Option {
	return func(c *Controller) error {
		c.backdrop = b
		return nil
	}
}

// WithTiming overrides the transition stagger delays.
func WithTiming(t Timing) Option {
	return func(c *Controller) error {
		c.timing = t
		return nil
	}
}

// WithLayout shares a layout with the actors. Actors that read slot
// transforms must be given the same *Layout.
func WithLayout(l *Layout) Option {
	return func(c *Controller) error {
		if l != nil {
			c.layout = l
		}
		return nil
	}
}

// WithStart sets the initially current slide.
func WithStart(index int) Option {
	return func(c *Controller) error {
		if index < 0 || index >= len(c.projects) {
			return fmt.Errorf("%w: %d not in [0,%d)", ErrStartIndex, index, len(c.projects))
		}
		c.indices = IndicesAt(index, len(c.projects))
		return nil
	}
}

// New creates a controller for projects, one actor per project in the same order.
// Call Resize once the viewport is known; navigation is ignored until then.
func New(projects []domain.Project, actors []Actor, opts ...Option) (*Controller, error) {
	if len(projects) < domain.MinProjects {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSlides, len(projects))
	}
	if len(actors) != len(projects) {
		return nil, fmt.Errorf("%w: %d actors for %d projects", ErrActorCount, len(actors), len(projects))
	}

	c := &Controller{
		projects: projects,
		actors:   actors,
		layout:   NewLayout(DefaultScale, DefaultMargin),
		timing:   DefaultTiming(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		indices:  IndicesAt(0, len(projects)),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Indices returns the settled index triple.
func (c *Controller) Indices() Indices {
	return c.indices
}

// State returns Idle or Transitioning.
func (c *Controller) State() State {
	return c.state
}

// Len returns the number of slides.
func (c *Controller) Len() int {
	return len(c.projects)
}

// Current returns the settled current project.
func (c *Controller) Current() domain.Project {
	return c.projects[c.indices.Current]
}

// Project returns the project shown by slide i.
func (c *Controller) Project(i int) domain.Project {
	return c.projects[i]
}

// Layout returns the geometry cache shared with the actors.
func (c *Controller) Layout() *Layout {
	return c.layout
}

// Advance starts a transition in dir. It returns false without side effects
// when a transition is already running or the geometry has not been measured;
// both cases are deliberate no-ops, not failures.
func (c *Controller) Advance(dir Direction) (*Transition, bool) {
	if c.state == StateTransitioning {
		c.logger.Debug("navigation ignored", "reason", "transitioning", "direction", dir)
		return nil, false
	}
	if !c.layout.Ready() {
		c.logger.Debug("navigation ignored", "reason", "geometry not measured", "direction", dir)
		return nil, false
	}
	c.state = StateTransitioning

	n := len(c.actors)
	from := c.indices
	upcoming := from.Upcoming(dir, n)
	newCurrent := from.Step(dir, n)

	if c.backdrop != nil {
		c.backdrop.CrossFade(c.projects[from.Current], c.projects[newCurrent])
	}

	t := &Transition{
		Direction: dir,
		From:      from,
		To:        IndicesAt(newCurrent, n),
		Upcoming:  upcoming,
	}

	plan := planMoves(dir, c.timing)
	t.done[rolePrev] = c.actors[from.Prev].MoveToPosition(plan[rolePrev])
	t.done[roleCurrent] = c.actors[from.Current].MoveToPosition(plan[roleCurrent])
	t.done[roleNext] = c.actors[from.Next].MoveToPosition(plan[roleNext])
	t.done[roleUpcoming] = c.actors[upcoming].MoveToPosition(plan[roleUpcoming])

	c.active = t
	c.logger.Debug("transition started",
		"direction", dir,
		"from", from.Current,
		"to", newCurrent,
		"upcoming", upcoming,
	)
	return t, true
}

// Click maps a click on slide index to navigation: the right neighbour
// advances, the left neighbour goes back, anything else is ignored.
func (c *Controller) Click(index int) (*Transition, bool) {
	if index < 0 || index >= len(c.actors) {
		return nil, false
	}
	a := c.actors[index]
	switch {
	case IsPositionedRight(a):
		return c.Advance(DirectionNext)
	case IsPositionedLeft(a):
		return c.Advance(DirectionPrev)
	}
	c.logger.Debug("click ignored", "index", index, "position", a.Position())
	return nil, false
}

// Settle completes t once all four motions have finished: the exiting slide is
// hidden, the old roles are cleared, the new indices are installed and roles
// re-applied. A re-layout requested during the transition runs afterwards.
func (c *Controller) Settle(t *Transition) error {
	if t == nil || t != c.active {
		return ErrStaleTransition
	}
	if !t.Finished() {
		return ErrUnsettled
	}

	exiting := t.From.Prev
	if t.Direction == DirectionPrev {
		exiting = t.From.Next
	}
	c.actors[exiting].Hide()
	for _, i := range []int{t.From.Prev, t.From.Current, t.From.Next} {
		c.actors[i].Reset()
	}

	c.indices = t.To
	Assign(c.indices, c.actors)
	c.state = StateIdle
	c.active = nil
	c.logger.Debug("transition settled", "current", c.indices.Current)

	if r := c.pendingResize; r != nil {
		c.pendingResize = nil
		c.relayout(r.viewport, r.slide)
	}
	return nil
}

// Navigate runs a whole transition synchronously. It reports false when the
// request was ignored.
func (c *Controller) Navigate(ctx context.Context, dir Direction) (bool, error) {
	t, ok := c.Advance(dir)
	if !ok {
		return false, nil
	}
	if err := t.Wait(ctx); err != nil {
		return true, fmt.Errorf("wait for transition: %w", err)
	}
	return true, c.Settle(t)
}

// Resize re-lays out every slide for new dimensions without changing indices.
// While transitioning the request is deferred until the transition settles;
// Resize then returns false.
func (c *Controller) Resize(viewport, slide domain.Size) bool {
	if c.state == StateTransitioning {
		if c.layout.Ready() && viewport == c.layout.Viewport() && slide == c.layout.SlideSize() {
			// Back to the current layout: nothing left to apply on settle
			c.pendingResize = nil
			return false
		}
		c.pendingResize = &resizeRequest{viewport: viewport, slide: slide}
		c.logger.Debug("resize deferred", "width", viewport.Width, "height", viewport.Height)
		return false
	}
	c.relayout(viewport, slide)
	return true
}

func (c *Controller) relayout(viewport, slide domain.Size) {
	for _, a := range c.actors {
		a.Hide()
		a.Reset()
	}
	c.layout.Update(viewport, slide)
	if c.layout.Ready() {
		Assign(c.indices, c.actors)
	}
}
