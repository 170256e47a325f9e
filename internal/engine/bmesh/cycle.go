package bmesh

// Cycle is a fixed-size circular sequence, used to walk around a face
// boundary. It is a value type: Advance returns a new Cycle and leaves the
// receiver unchanged. Create cycles with NewCycle; the zero Cycle is empty
// and Current or PeekNext on it return the zero value of T.
type Cycle[T any] struct {
	data    []T
	current int
}

// NewCycle creates a cycle positioned at the first element.
func NewCycle[T any](data []T) (Cycle[T], error) {
	if len(data) == 0 {
		return Cycle[T]{}, ErrEmptyCycle
	}
	items := make([]T, len(data))
	copy(items, data)
	return Cycle[T]{data: items}, nil
}

// Current returns the element the cycle is positioned at.
func (c Cycle[T]) Current() T {
	var zero T
	if len(c.data) == 0 {
		return zero
	}
	return c.data[c.current]
}

// PeekNext returns the following element, wrapping to the start, without
// moving the cycle.
func (c Cycle[T]) PeekNext() T {
	var zero T
	if len(c.data) == 0 {
		return zero
	}
	return c.data[c.nextIndex()]
}

// Advance returns the cycle moved one element forward.
func (c Cycle[T]) Advance() Cycle[T] {
	c.current = c.nextIndex()
	return c
}

// Len returns the number of elements.
func (c Cycle[T]) Len() int {
	return len(c.data)
}

func (c Cycle[T]) nextIndex() int {
	if len(c.data) == 0 {
		return 0
	}
	return (c.current + 1) % len(c.data)
}

// pairs returns each element with its successor, once around the cycle.
func (c Cycle[T]) pairs() [][2]T {
	out := make([][2]T, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		out = append(out, [2]T{c.Current(), c.PeekNext()})
		c = c.Advance()
	}
	return out
}
