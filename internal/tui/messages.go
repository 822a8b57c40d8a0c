// Package tui provides Bubble Tea models for the interactive slideshow.
package tui

import (
	"time"

	"github.com/robby/folio/internal/domain"
	"github.com/robby/folio/internal/slideshow"
)

// ErrorMsg is emitted when an error occurs.
type ErrorMsg struct {
	Err error
}

// QuitMsg is emitted when the user requests to quit.
type QuitMsg struct{}

// frameMsg advances every running animation.
type frameMsg time.Time

// transitionSettledMsg is emitted once all motions of a transition finished.
type transitionSettledMsg struct {
	transition *slideshow.Transition
	err        error
}

// Overlay navigation
type (
	openDetailMsg struct {
		project domain.Project
	}

	openShareMsg struct {
		project domain.Project
	}

	closeOverlayMsg struct{}
)
