package slideshow

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/robby/folio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestController builds a measured controller over n fake actors.
func createTestController(t *testing.T, n int, instant bool, opts ...Option) (*Controller, []*fakeActor) {
	t.Helper()
	fakes, actors := createTestActors(n, instant)
	c, err := New(createTestProjects(n), actors, opts...)
	require.NoError(t, err)
	require.True(t, c.Resize(testViewport, testSlide))
	return c, fakes
}

func finishAll(fakes []*fakeActor) {
	for _, f := range fakes {
		f.finish()
	}
}

func assertRoles(t *testing.T, c *Controller, fakes []*fakeActor) {
	t.Helper()
	var left, center, right int
	for i, f := range fakes {
		switch f.Position() {
		case PositionLeft:
			left++
			assert.Equal(t, c.Indices().Prev, i)
		case PositionCenter:
			center++
			assert.Equal(t, c.Indices().Current, i)
		case PositionRight:
			right++
			assert.Equal(t, c.Indices().Next, i)
		}
	}
	assert.Equal(t, 1, left, "exactly one left neighbour")
	assert.Equal(t, 1, center, "exactly one current slide")
	assert.Equal(t, 1, right, "exactly one right neighbour")
}

func TestNew_Validation(t *testing.T) {
	t.Run("too few projects", func(t *testing.T) {
		_, actors := createTestActors(2, true)
		_, err := New(createTestProjects(2), actors)
		assert.ErrorIs(t, err, ErrTooFewSlides)
	})

	t.Run("actor mismatch", func(t *testing.T) {
		_, actors := createTestActors(4, true)
		_, err := New(createTestProjects(5), actors)
		assert.ErrorIs(t, err, ErrActorCount)
	})

	t.Run("start out of range", func(t *testing.T) {
		_, actors := createTestActors(3, true)
		_, err := New(createTestProjects(3), actors, WithStart(3))
		assert.ErrorIs(t, err, ErrStartIndex)
	})

	t.Run("start index", func(t *testing.T) {
		_, actors := createTestActors(5, true)
		c, err := New(createTestProjects(5), actors, WithStart(4))
		require.NoError(t, err)
		assert.Equal(t, Indices{Current: 4, Next: 0, Prev: 3}, c.Indices())
		assert.Equal(t, "proj_4", c.Current().ID)
	})
}

func TestController_ResizeAssignsRoles(t *testing.T) {
	c, fakes := createTestController(t, 5, false)

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, PositionCenter, fakes[0].Position())
	assert.Equal(t, PositionRight, fakes[1].Position())
	assert.Equal(t, PositionLeft, fakes[4].Position())
	assert.Equal(t, PositionUnset, fakes[2].Position())
	assertRoles(t, c, fakes)

	assert.True(t, IsPositionedCenter(fakes[0]))
	assert.True(t, IsPositionedRight(fakes[1]))
	assert.True(t, IsPositionedLeft(fakes[4]))
	assert.False(t, IsPositionedLeft(fakes[2]) || IsPositionedCenter(fakes[2]) || IsPositionedRight(fakes[2]))
}

func TestController_AdvanceBeforeMeasure(t *testing.T) {
	_, actors := createTestActors(5, true)
	c, err := New(createTestProjects(5), actors)
	require.NoError(t, err)

	tr, ok := c.Advance(DirectionNext)
	assert.False(t, ok)
	assert.Nil(t, tr)
	assert.Equal(t, StateIdle, c.State())
}

func TestController_AdvanceNext(t *testing.T) {
	backdrop := &recordingBackdrop{}
	c, fakes := createTestController(t, 5, false, WithBackdrop(backdrop))

	tr, ok := c.Advance(DirectionNext)
	require.True(t, ok)
	assert.Equal(t, StateTransitioning, c.State())
	assert.Equal(t, 2, tr.Upcoming)
	assert.Equal(t, Indices{Current: 1, Next: 2, Prev: 0}, tr.To)

	// Indices are untouched mid-transition
	assert.Equal(t, Indices{Current: 0, Next: 1, Prev: 4}, c.Indices())

	// Move plan
	assert.Equal(t, -2, fakes[4].lastMove().Position, "prev leaves to the staging slot")
	assert.Equal(t, -1, fakes[0].lastMove().Position, "current becomes left neighbour")
	assert.Equal(t, 0, fakes[1].lastMove().Position, "next becomes current")
	up := fakes[2].lastMove()
	assert.Equal(t, 1, up.Position)
	require.NotNil(t, up.From)
	assert.Equal(t, 2, *up.From)
	assert.True(t, fakes[2].visible, "upcoming slide is visible before it moves")
	assert.Nil(t, fakes[4].lastMove().From)
	assert.Greater(t, up.Delay, fakes[0].lastMove().Delay)

	assert.Equal(t, [][2]string{{"proj_0", "proj_1"}}, backdrop.fades)

	// Cannot settle until every motion finished
	assert.ErrorIs(t, c.Settle(tr), ErrUnsettled)
	fakes[4].finish()
	fakes[0].finish()
	fakes[1].finish()
	assert.False(t, tr.Finished())
	fakes[2].finish()
	assert.True(t, tr.Finished())

	require.NoError(t, c.Settle(tr))
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, Indices{Current: 1, Next: 2, Prev: 0}, c.Indices())
	assert.False(t, fakes[4].visible, "exiting slide is hidden")
	assert.Equal(t, PositionUnset, fakes[4].Position())
	assertRoles(t, c, fakes)
}

func TestController_AdvancePrev(t *testing.T) {
	c, fakes := createTestController(t, 5, false)

	tr, ok := c.Advance(DirectionPrev)
	require.True(t, ok)
	assert.Equal(t, 3, tr.Upcoming)

	assert.Equal(t, 0, fakes[4].lastMove().Position, "prev becomes current")
	assert.Equal(t, 1, fakes[0].lastMove().Position, "current becomes right neighbour")
	assert.Equal(t, 2, fakes[1].lastMove().Position, "next leaves to the staging slot")
	up := fakes[3].lastMove()
	assert.Equal(t, -1, up.Position)
	require.NotNil(t, up.From)
	assert.Equal(t, -2, *up.From)

	finishAll(fakes)
	require.NoError(t, tr.Wait(context.Background()))
	require.NoError(t, c.Settle(tr))

	assert.Equal(t, Indices{Current: 4, Next: 0, Prev: 3}, c.Indices())
	assert.False(t, fakes[1].visible)
	assertRoles(t, c, fakes)
}

func TestController_WrapAroundFromLast(t *testing.T) {
	c, fakes := createTestController(t, 5, false, WithStart(4))

	tr, ok := c.Advance(DirectionNext)
	require.True(t, ok)
	assert.Equal(t, 1, tr.Upcoming)
	assert.Equal(t, 0, tr.To.Current)

	finishAll(fakes)
	require.NoError(t, c.Settle(tr))
	assert.Equal(t, Indices{Current: 0, Next: 1, Prev: 4}, c.Indices())
	assertRoles(t, c, fakes)
}

func TestController_MinimumSize(t *testing.T) {
	t.Run("prev from start", func(t *testing.T) {
		c, fakes := createTestController(t, 3, true)
		ok, err := c.Navigate(context.Background(), DirectionPrev)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, Indices{Current: 2, Next: 0, Prev: 1}, c.Indices())
		assertRoles(t, c, fakes)
	})

	t.Run("next from start", func(t *testing.T) {
		c, fakes := createTestController(t, 3, true)
		ok, err := c.Navigate(context.Background(), DirectionNext)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, Indices{Current: 1, Next: 2, Prev: 0}, c.Indices())
		// The old prev is also the upcoming slide; it must end up visible on the right.
		assert.True(t, fakes[2].visible)
		assertRoles(t, c, fakes)
	})
}

func TestController_Debounce(t *testing.T) {
	c, fakes := createTestController(t, 5, false)

	first, ok := c.Advance(DirectionNext)
	require.True(t, ok)

	second, ok := c.Advance(DirectionNext)
	assert.False(t, ok)
	assert.Nil(t, second)
	_, ok = c.Advance(DirectionPrev)
	assert.False(t, ok)

	finishAll(fakes)
	require.NoError(t, c.Settle(first))
	assert.Equal(t, 1, c.Indices().Current, "exactly one index change")

	assert.ErrorIs(t, c.Settle(first), ErrStaleTransition, "a transition settles once")
}

func TestController_RoundTrip(t *testing.T) {
	for n := 3; n <= 7; n++ {
		c, _ := createTestController(t, n, true, WithStart(n-1))
		start := c.Indices()

		ok, err := c.Navigate(context.Background(), DirectionNext)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = c.Navigate(context.Background(), DirectionPrev)
		require.NoError(t, err)
		require.True(t, ok)

		assert.Equal(t, start, c.Indices(), "n=%d", n)
	}
}

func TestController_Circularity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 3; n <= 8; n++ {
		c, fakes := createTestController(t, n, true)
		for step := 0; step < 50; step++ {
			dir := DirectionNext
			if rng.Intn(2) == 0 {
				dir = DirectionPrev
			}
			ok, err := c.Navigate(context.Background(), dir)
			require.NoError(t, err)
			require.True(t, ok)

			idx := c.Indices()
			require.True(t, idx.Valid(n), "n=%d step=%d indices=%+v", n, step, idx)
			assert.NotEqual(t, idx.Current, idx.Next)
			assert.NotEqual(t, idx.Current, idx.Prev)
			assert.NotEqual(t, idx.Next, idx.Prev)
			assertRoles(t, c, fakes)
		}
	}
}

func TestController_Click(t *testing.T) {
	c, fakes := createTestController(t, 5, false)

	t.Run("current is ignored", func(t *testing.T) {
		_, ok := c.Click(0)
		assert.False(t, ok)
	})

	t.Run("unpositioned is ignored", func(t *testing.T) {
		_, ok := c.Click(2)
		assert.False(t, ok)
	})

	t.Run("out of range is ignored", func(t *testing.T) {
		_, ok := c.Click(9)
		assert.False(t, ok)
		_, ok = c.Click(-1)
		assert.False(t, ok)
	})

	t.Run("left goes back", func(t *testing.T) {
		tr, ok := c.Click(4)
		require.True(t, ok)
		assert.Equal(t, DirectionPrev, tr.Direction)
		finishAll(fakes)
		require.NoError(t, c.Settle(tr))
		assert.Equal(t, 4, c.Indices().Current)
	})

	t.Run("right advances", func(t *testing.T) {
		tr, ok := c.Click(0)
		require.True(t, ok)
		assert.Equal(t, DirectionNext, tr.Direction)
		finishAll(fakes)
		require.NoError(t, c.Settle(tr))
		assert.Equal(t, 0, c.Indices().Current)
	})
}

func TestController_ResizeDuringTransition(t *testing.T) {
	c, fakes := createTestController(t, 5, false)

	tr, ok := c.Advance(DirectionNext)
	require.True(t, ok)

	bigger := domain.Size{Width: 1920, Height: 1080}
	assert.False(t, c.Resize(bigger, testSlide), "resize is deferred while transitioning")
	assert.Equal(t, testViewport, c.Layout().Viewport())

	finishAll(fakes)
	require.NoError(t, c.Settle(tr))

	assert.Equal(t, bigger, c.Layout().Viewport(), "deferred resize applied on settle")
	assert.Equal(t, Indices{Current: 1, Next: 2, Prev: 0}, c.Indices())
	assertRoles(t, c, fakes)
}

func TestController_ResizeBackDuringTransition(t *testing.T) {
	c, fakes := createTestController(t, 5, false)

	tr, ok := c.Advance(DirectionNext)
	require.True(t, ok)

	assert.False(t, c.Resize(domain.Size{Width: 1920, Height: 1080}, testSlide))
	assert.False(t, c.Resize(testViewport, testSlide), "back to the current size")

	finishAll(fakes)
	require.NoError(t, c.Settle(tr))

	assert.Equal(t, testViewport, c.Layout().Viewport(), "intermediate size is dropped")
	assertRoles(t, c, fakes)
}

func TestController_ResizeKeepsIndices(t *testing.T) {
	c, fakes := createTestController(t, 5, true)
	_, err := c.Navigate(context.Background(), DirectionNext)
	require.NoError(t, err)

	require.True(t, c.Resize(domain.Size{Width: 640, Height: 480}, testSlide))
	assert.Equal(t, 1, c.Indices().Current)
	for _, f := range fakes {
		assert.Contains(t, f.calls, "hide")
	}
	assertRoles(t, c, fakes)
}

func TestController_NavigateContextCancel(t *testing.T) {
	c, _ := createTestController(t, 5, false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	ok, err := c.Navigate(ctx, DirectionNext)
	assert.True(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StateTransitioning, c.State())
}

func TestAssign(t *testing.T) {
	fakes, actors := createTestActors(4, true)
	Assign(Indices{Current: 3, Next: 0, Prev: 2}, actors)

	assert.Equal(t, PositionCenter, fakes[3].Position())
	assert.Equal(t, PositionRight, fakes[0].Position())
	assert.Equal(t, PositionLeft, fakes[2].Position())
	assert.Equal(t, PositionUnset, fakes[1].Position())
	assert.Empty(t, fakes[1].calls)
}
