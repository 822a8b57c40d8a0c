package slideshow

import "context"

// Roles of the four slides that move during a transition.
const (
	rolePrev = iota
	roleCurrent
	roleNext
	roleUpcoming
	roleCount
)

// Transition is an in-flight navigation. It is created by Advance and
// handed back to Settle once Wait returns.
type Transition struct {
	Direction Direction
	From      Indices // Indices before the transition
	To        Indices // Indices installed on settle
	Upcoming  int     // Slide entering from the staging slot

	done [roleCount]<-chan struct{}
}

// Wait blocks until all four motions have finished or ctx is done.
func (t *Transition) Wait(ctx context.Context) error {
	for _, ch := range t.done {
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Finished reports, without blocking, whether every motion has finished.
func (t *Transition) Finished() bool {
	for _, ch := range t.done {
		select {
		case <-ch:
		default:
			return false
		}
	}
	return true
}

// planMoves returns the move issued to each role for dir.
//
//	role      next             prev
//	prev      -> -2            -> 0
//	current   -> -1            -> +1
//	next      -> 0             -> +2
//	upcoming  +2 -> +1         -2 -> -1
func planMoves(dir Direction, timing Timing) [roleCount]Move {
	if dir == DirectionNext {
		return [roleCount]Move{
			rolePrev:     {Position: -2},
			roleCurrent:  {Position: -1, Delay: timing.Lead},
			roleNext:     {Position: 0, Delay: timing.Trail},
			roleUpcoming: {Position: 1, Delay: timing.Arrive, From: From(2)},
		}
	}
	return [roleCount]Move{
		rolePrev:     {Position: 0, Delay: timing.Trail},
		roleCurrent:  {Position: 1, Delay: timing.Lead},
		roleNext:     {Position: 2},
		roleUpcoming: {Position: -1, Delay: timing.Arrive, From: From(-2)},
	}
}
