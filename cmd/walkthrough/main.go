// Command walkthrough drives the slideshow controller without a terminal UI
// and prints the index triple after every navigation step.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/robby/folio/internal/catalog"
	"github.com/robby/folio/internal/config"
	"github.com/robby/folio/internal/domain"
	"github.com/robby/folio/internal/slideshow"
)

// instantActor completes every move immediately and remembers its role.
type instantActor struct {
	name     string
	position slideshow.Position
	visible  bool
}

func (a *instantActor) SetCurrent() { a.position, a.visible = slideshow.PositionCenter, true }
func (a *instantActor) SetLeft()    { a.position, a.visible = slideshow.PositionLeft, true }
func (a *instantActor) SetRight()   { a.position, a.visible = slideshow.PositionRight, true }
func (a *instantActor) Hide()       { a.visible = false }
func (a *instantActor) Reset()      { a.position = slideshow.PositionUnset }

func (a *instantActor) Position() slideshow.Position { return a.position }

func (a *instantActor) MoveToPosition(m slideshow.Move) <-chan struct{} {
	if m.From != nil {
		a.visible = true
	}
	ch := make(chan struct{})
	close(ch)
	return ch
}

// printBackdrop logs every cross-fade.
type printBackdrop struct{}

func (printBackdrop) CrossFade(from, to domain.Project) {
	fmt.Printf("    backdrop %s -> %s\n", from.Name, to.Name)
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	projects, err := catalog.Load(catalog.Sources(cfg.Projects.Path)...)
	if err != nil {
		log.Fatal(err)
	}

	actors := make([]slideshow.Actor, len(projects))
	for i, p := range projects {
		actors[i] = &instantActor{name: p.Name}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.ParseLogLevel(cfg.Log.Level)}))
	ctrl, err := slideshow.New(projects, actors,
		slideshow.WithLogger(logger),
		slideshow.WithBackdrop(printBackdrop{}),
		slideshow.WithStart(cfg.Start),
	)
	if err != nil {
		log.Fatal(err)
	}
	ctrl.Resize(domain.Size{Width: 1280, Height: 800}, domain.Size{Width: 426, Height: 566})

	ctx := context.Background()
	report := func(label string) {
		ix := ctrl.Indices()
		fmt.Printf("%-6s prev=%d current=%d next=%d  %s\n", label, ix.Prev, ix.Current, ix.Next, ctrl.Project(ix.Current).Name)
		for i, a := range actors {
			ia := a.(*instantActor)
			if ia.visible {
				fmt.Printf("    [%d] %-6s %s\n", i, ia.position, ia.name)
			}
		}
	}

	report("start")

	// Full lap forwards, then back
	for i := 0; i < len(projects); i++ {
		if _, err := ctrl.Navigate(ctx, slideshow.DirectionNext); err != nil {
			log.Fatal(err)
		}
		report("next")
	}
	for i := 0; i < len(projects); i++ {
		if _, err := ctrl.Navigate(ctx, slideshow.DirectionPrev); err != nil {
			log.Fatal(err)
		}
		report("prev")
	}

	// Clicking the right neighbour advances
	ix := ctrl.Indices()
	if t, ok := ctrl.Click(ix.Next); ok {
		if err := t.Wait(ctx); err != nil {
			log.Fatal(err)
		}
		if err := ctrl.Settle(t); err != nil {
			log.Fatal(err)
		}
	}
	report("click")
}
