package slideshow

// Direction is the way the slideshow travels.
type Direction int

const (
	DirectionNext Direction = iota
	DirectionPrev
)

func (d Direction) String() string {
	if d == DirectionPrev {
		return "prev"
	}
	return "next"
}

// Indices identifies the current slide and its two visible neighbours
// in a circular list of n slides.
type Indices struct {
	Current int
	Next    int
	Prev    int
}

// IndicesAt builds the triple centred on current. Out-of-range input wraps.
func IndicesAt(current, n int) Indices {
	c := wrap(current, n)
	return Indices{
		Current: c,
		Next:    wrap(c+1, n),
		Prev:    wrap(c-1, n),
	}
}

// Step returns the index that becomes current after one move in dir.
func (i Indices) Step(dir Direction, n int) int {
	if dir == DirectionNext {
		return wrap(i.Current+1, n)
	}
	return wrap(i.Current-1, n)
}

// Upcoming returns the slide two steps away in dir: the one that enters
// the visible set from off-screen during a transition.
func (i Indices) Upcoming(dir Direction, n int) int {
	if dir == DirectionNext {
		return wrap(i.Current+2, n)
	}
	return wrap(i.Current-2, n)
}

// Valid reports whether the triple satisfies the circular adjacency rules for n slides.
func (i Indices) Valid(n int) bool {
	if n <= 0 || i.Current < 0 || i.Current >= n {
		return false
	}
	return i.Next == wrap(i.Current+1, n) && i.Prev == wrap(i.Current-1, n)
}

func wrap(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}
