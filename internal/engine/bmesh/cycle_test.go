package bmesh

import (
	"errors"
	"testing"
)

func TestCycle(t *testing.T) {
	c, err := NewCycle([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("NewCycle() error = %v", err)
	}

	if c.Current() != "a" || c.PeekNext() != "b" {
		t.Errorf("start = (%s, %s), want (a, b)", c.Current(), c.PeekNext())
	}
	// PeekNext does not move.
	if c.Current() != "a" {
		t.Error("PeekNext moved the cycle")
	}

	next := c.Advance()
	if c.Current() != "a" {
		t.Error("Advance mutated the receiver")
	}
	if next.Current() != "b" {
		t.Errorf("Advance().Current() = %s, want b", next.Current())
	}

	last := next.Advance()
	if last.Current() != "c" || last.PeekNext() != "a" {
		t.Errorf("wrap = (%s, %s), want (c, a)", last.Current(), last.PeekNext())
	}
	if last.Advance().Current() != "a" {
		t.Error("Advance should wrap to the start")
	}
}

func TestCycleSingle(t *testing.T) {
	c, err := NewCycle([]int{7})
	if err != nil {
		t.Fatalf("NewCycle() error = %v", err)
	}
	if c.PeekNext() != 7 || c.Advance().Current() != 7 {
		t.Error("single element cycle should point to itself")
	}
}

func TestCycleEmpty(t *testing.T) {
	if _, err := NewCycle([]int{}); !errors.Is(err, ErrEmptyCycle) {
		t.Errorf("NewCycle(empty) error = %v, want ErrEmptyCycle", err)
	}

	var zero Cycle[int]
	if zero.Current() != 0 || zero.PeekNext() != 0 || zero.Advance().Current() != 0 {
		t.Error("zero cycle should yield zero values")
	}
	if zero.Len() != 0 || len(zero.pairs()) != 0 {
		t.Error("zero cycle should be empty")
	}
}

func TestCycleCopiesInput(t *testing.T) {
	data := []int{1, 2}
	c, _ := NewCycle(data)
	data[0] = 99
	if c.Current() != 1 {
		t.Error("cycle should not alias its input")
	}
}

func TestCyclePairs(t *testing.T) {
	c, _ := NewCycle([]int{1, 2, 3, 4})
	pairs := c.pairs()
	want := [][2]int{{1, 2}, {2, 3}, {3, 4}, {4, 1}}
	if len(pairs) != len(want) {
		t.Fatalf("pairs() = %v, want %v", pairs, want)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pairs()[%d] = %v, want %v", i, pairs[i], want[i])
		}
	}
}
