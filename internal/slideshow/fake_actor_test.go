package slideshow

import (
	"fmt"

	"github.com/robby/folio/internal/domain"
)

// fakeActor records commands and hands out completion channels that the
// test closes explicitly.
type fakeActor struct {
	position Position
	visible  bool
	calls    []string
	moves    []Move
	pending  []chan struct{}
	instant  bool
}

func (a *fakeActor) SetCurrent() {
	a.position = PositionCenter
	a.visible = true
	a.calls = append(a.calls, "current")
}

func (a *fakeActor) SetLeft() {
	a.position = PositionLeft
	a.visible = true
	a.calls = append(a.calls, "left")
}

func (a *fakeActor) SetRight() {
	a.position = PositionRight
	a.visible = true
	a.calls = append(a.calls, "right")
}

func (a *fakeActor) Position() Position { return a.position }

func (a *fakeActor) MoveToPosition(m Move) <-chan struct{} {
	if m.From != nil {
		a.visible = true
	}
	a.moves = append(a.moves, m)
	a.calls = append(a.calls, fmt.Sprintf("move %d", m.Position))
	ch := make(chan struct{})
	if a.instant {
		close(ch)
	} else {
		a.pending = append(a.pending, ch)
	}
	return ch
}

func (a *fakeActor) Hide() {
	a.visible = false
	a.calls = append(a.calls, "hide")
}

func (a *fakeActor) Reset() {
	a.position = PositionUnset
	a.calls = append(a.calls, "reset")
}

// finish closes every outstanding completion channel.
func (a *fakeActor) finish() {
	for _, ch := range a.pending {
		close(ch)
	}
	a.pending = nil
}

func (a *fakeActor) lastMove() Move {
	return a.moves[len(a.moves)-1]
}

// Test fixtures
func createTestProjects(n int) []domain.Project {
	projects := make([]domain.Project, n)
	for i := range projects {
		projects[i] = domain.Project{
			ID:            fmt.Sprintf("proj_%d", i),
			Name:          fmt.Sprintf("Project %d", i),
			BackgroundURL: fmt.Sprintf("images/bg%02d.jpg", i),
		}
	}
	return projects
}

func createTestActors(n int, instant bool) ([]*fakeActor, []Actor) {
	fakes := make([]*fakeActor, n)
	actors := make([]Actor, n)
	for i := range fakes {
		fakes[i] = &fakeActor{instant: instant}
		actors[i] = fakes[i]
	}
	return fakes, actors
}

var (
	testViewport = domain.Size{Width: 1280, Height: 800}
	testSlide    = domain.Size{Width: 426, Height: 566}
)

type recordingBackdrop struct {
	fades [][2]string
}

func (b *recordingBackdrop) CrossFade(from, to domain.Project) {
	b.fades = append(b.fades, [2]string{from.ID, to.ID})
}
