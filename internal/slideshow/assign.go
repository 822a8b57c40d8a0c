package slideshow

// Assign maps the index triple onto the actors. Actors outside the triple are
// left untouched; the controller resets or hides them before calling Assign.
func Assign(indices Indices, actors []Actor) {
	actors[indices.Current].SetCurrent()
	actors[indices.Next].SetRight()
	actors[indices.Prev].SetLeft()
}
