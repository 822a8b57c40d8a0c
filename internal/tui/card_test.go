package tui

import (
	"testing"
	"time"

	"github.com/robby/folio/internal/domain"
	"github.com/robby/folio/internal/slideshow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCard(t *testing.T) (*SlideCard, *slideshow.Layout, *frameClock) {
	t.Helper()
	layout := slideshow.NewLayout(slideshow.DefaultScale, 1)
	require.True(t, layout.Update(domain.Size{Width: 120, Height: 40}, domain.Size{Width: 40, Height: 24}))

	clock := &frameClock{now: testEpoch}
	card := NewSlideCard(createTestProjects(1)[0], layout, clock, 100*time.Millisecond)
	return card, layout, clock
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestSlideCard_Roles(t *testing.T) {
	card, layout, _ := newTestCard(t)
	assert.False(t, card.Visible(), "new cards are hidden")

	card.SetCurrent()
	assert.Equal(t, slideshow.PositionCenter, card.Position())
	assert.True(t, card.Visible())
	assert.Equal(t, rect{x: 40, y: 8, w: 40, h: 24}, card.Bounds())

	card.SetLeft()
	assert.Equal(t, slideshow.PositionLeft, card.Position())
	assert.Equal(t, layout.Slot(-1), card.transform)

	card.SetRight()
	assert.Equal(t, slideshow.PositionRight, card.Position())
	assert.Equal(t, layout.Scale(), card.Scale())

	card.Reset()
	assert.Equal(t, slideshow.PositionUnset, card.Position())
	assert.True(t, card.Visible(), "reset keeps the card on screen")

	card.Hide()
	assert.False(t, card.Visible())
}

func TestSlideCard_MoveToPosition(t *testing.T) {
	card, layout, clock := newTestCard(t)
	card.SetCurrent()

	done := card.MoveToPosition(slideshow.Move{Position: -1, Delay: 50 * time.Millisecond})

	// Before the delay nothing moves
	assert.True(t, card.Step(testEpoch.Add(20*time.Millisecond)))
	assert.Equal(t, slideshow.Identity, card.transform)
	assert.False(t, isClosed(done))

	// Half way the card is between both slots
	clock.now = testEpoch.Add(100 * time.Millisecond)
	assert.True(t, card.Step(clock.now))
	target := layout.Slot(-1)
	assert.Less(t, card.transform.X, 0.0)
	assert.Greater(t, card.transform.X, target.X)
	assert.False(t, isClosed(done))

	// Finished
	assert.False(t, card.Step(testEpoch.Add(200*time.Millisecond)))
	assert.Equal(t, target, card.transform)
	assert.True(t, isClosed(done))
}

func TestSlideCard_MoveFromStagingSlot(t *testing.T) {
	card, layout, _ := newTestCard(t)
	require.False(t, card.Visible())

	done := card.MoveToPosition(slideshow.Move{Position: 1, From: slideshow.From(2)})

	card.Step(testEpoch)
	assert.True(t, card.Visible(), "entering card becomes visible at its start slot")
	assert.Equal(t, layout.Slot(2), card.transform)

	card.Step(testEpoch.Add(time.Second))
	assert.Equal(t, layout.Slot(1), card.transform)
	assert.True(t, isClosed(done))
}

func TestSlideCard_SupersededMoveCompletes(t *testing.T) {
	card, _, _ := newTestCard(t)
	card.SetRight()

	first := card.MoveToPosition(slideshow.Move{Position: 0})
	second := card.MoveToPosition(slideshow.Move{Position: -1})

	assert.True(t, isClosed(first), "superseded motion must not block waiters")
	assert.False(t, isClosed(second))
}

func TestSlideCard_TitleReveal(t *testing.T) {
	card, _, _ := newTestCard(t)
	card.SetCurrent()

	name := card.Project().Name
	require.Equal(t, "Project 0", name)

	assert.Equal(t, 0, card.revealedLetters(testEpoch))
	assert.Equal(t, 0, card.revealedLetters(testEpoch.Add(revealDelay-time.Millisecond)))
	assert.Equal(t, 1, card.revealedLetters(testEpoch.Add(revealDelay)))
	assert.Equal(t, 3, card.revealedLetters(testEpoch.Add(revealDelay+2*letterStagger)))
	assert.Equal(t, len(name), card.revealedLetters(testEpoch.Add(time.Minute)))

	assert.True(t, card.Step(testEpoch.Add(revealDelay)), "reveal still running")
	assert.False(t, card.Step(testEpoch.Add(time.Minute)))

	// Moving away hides the title again
	card.MoveToPosition(slideshow.Move{Position: -1})
	assert.Equal(t, 0, card.revealedLetters(testEpoch.Add(time.Minute)))
}

func TestEaseInOutQuart(t *testing.T) {
	assert.Equal(t, 0.0, easeInOutQuart(0))
	assert.InDelta(t, 0.5, easeInOutQuart(0.5), 1e-9)
	assert.Equal(t, 1.0, easeInOutQuart(1))
	assert.Less(t, easeInOutQuart(0.25), 0.25, "slow start")
	assert.Greater(t, easeInOutQuart(0.75), 0.75, "slow end")
}
