package slideshow

import "github.com/robby/folio/internal/domain"

// Layout constants shared by every renderer.
const (
	DefaultScale  = 0.484375 // Neighbour slides are drawn at this fraction of full size
	DefaultMargin = 16.0     // Gap kept between a neighbour slide and the viewport edge (px)
	SlotCount     = 5
	MinOffset     = -2
	MaxOffset     = 2
)

// Transform places a slide relative to the centred (current) position.
type Transform struct {
	X     float64
	Y     float64
	Scale float64
}

// Identity is the transform of the current slide.
var Identity = Transform{X: 0, Y: 0, Scale: 1}

// Slots holds the five canonical transforms ordered by offset -2..+2.
type Slots [SlotCount]Transform

// At returns the transform for a slot offset in -2..+2.
func (s Slots) At(offset int) Transform {
	return s[offset-MinOffset]
}

// ValidOffset reports whether offset names one of the five slots.
func ValidOffset(offset int) bool {
	return offset >= MinOffset && offset <= MaxOffset
}

// ComputeSlots derives the five slot transforms from the slide and viewport sizes.
// Positive offsets sit to the right and above centre, negative offsets to the left
// and below. It returns false while the slide has not been measured yet.
func ComputeSlots(slide, viewport domain.Size, scale, margin float64) (Slots, bool) {
	if slide.IsZero() {
		return Slots{}, false
	}

	halfX := viewport.Width/2 - (slide.Width/2)*scale - margin
	halfY := viewport.Height/2 - (slide.Height/2)*scale - margin
	fullX := viewport.Width - slide.Width*scale - margin
	fullY := viewport.Height - slide.Height*scale - margin

	return Slots{
		{X: -fullX, Y: fullY, Scale: scale},
		{X: -halfX, Y: halfY, Scale: scale},
		Identity,
		{X: halfX, Y: -halfY, Scale: scale},
		{X: fullX, Y: -fullY, Scale: scale},
	}, true
}

// Layout caches the slot set for the last measured viewport and slide size.
type Layout struct {
	scale  float64
	margin float64

	viewport domain.Size
	slide    domain.Size
	slots    Slots
	ready    bool
}

// NewLayout creates an unmeasured layout.
func NewLayout(scale, margin float64) *Layout {
	return &Layout{scale: scale, margin: margin}
}

// Update recomputes the slots when either size changed.
// Returns true if the slot set was recomputed.
func (l *Layout) Update(viewport, slide domain.Size) bool {
	if l.ready && viewport == l.viewport && slide == l.slide {
		return false
	}
	l.viewport = viewport
	l.slide = slide
	l.slots, l.ready = ComputeSlots(slide, viewport, l.scale, l.margin)
	return true
}

// Ready reports whether a non-empty slot set exists.
func (l *Layout) Ready() bool {
	return l.ready
}

// Slots returns the cached slot set and whether it is usable.
func (l *Layout) Slots() (Slots, bool) {
	return l.slots, l.ready
}

// Slot returns the transform for offset, or Identity before the first measurement.
func (l *Layout) Slot(offset int) Transform {
	if !l.ready || !ValidOffset(offset) {
		return Identity
	}
	return l.slots.At(offset)
}

// Viewport returns the last measured viewport size.
func (l *Layout) Viewport() domain.Size {
	return l.viewport
}

// SlideSize returns the last measured full-scale slide size.
func (l *Layout) SlideSize() domain.Size {
	return l.slide
}

// Scale returns the neighbour scale factor.
func (l *Layout) Scale() float64 {
	return l.scale
}
