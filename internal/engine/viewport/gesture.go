package viewport

import "github.com/Faultbox/orbitview/pkg/math"

// Gesture tracks one rotate drag: where it was pressed and where the pointer
// is now. The rotation delta is always measured from the press origin, since
// the camera replaces its pending modifier on every rotate call.
type Gesture struct {
	active  bool
	aborted bool

	origin     math.Vec2
	pointer    math.Vec2
	hasPointer bool
}

// Press starts a drag at p.
func (g *Gesture) Press(p math.Vec2) {
	g.active = true
	g.aborted = false
	g.origin = p
	g.pointer = p
	g.hasPointer = true
}

// Move records the pointer position.
func (g *Gesture) Move(p math.Vec2) {
	g.pointer = p
	g.hasPointer = true
}

// Release ends the drag normally.
func (g *Gesture) Release() {
	g.active = false
}

// Abort ends the drag without a release, e.g. on focus loss. The pointer
// position is no longer known.
func (g *Gesture) Abort() {
	if g.active {
		g.aborted = true
	}
	g.active = false
	g.hasPointer = false
}

// Active reports whether a drag is in progress.
func (g *Gesture) Active() bool {
	return g.active
}

// Delta returns the pointer offset from the press origin, and false when the
// pointer position is unknown.
func (g *Gesture) Delta() (math.Vec2, bool) {
	if !g.hasPointer {
		return math.Vec2{}, false
	}
	return g.pointer.Sub(g.origin), true
}

// Frame builds the controller input for a viewport of the given size and
// clears the one-shot abort flag.
func (g *Gesture) Frame(size math.Vec2) FrameInput {
	delta, ok := g.Delta()
	in := FrameInput{
		Size:         size,
		Active:       g.active,
		Delta:        delta,
		PointerValid: ok,
		Aborted:      g.aborted,
	}
	g.aborted = false
	return in
}
