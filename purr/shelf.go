package purr

import "iter"

// Shelf is an immutable persistent stack. The nil *Shelf is the bottom of
// every shelf, so the zero value is ready to push onto. Nodes are never
// mutated after construction and tails are shared freely.
type Shelf struct {
	head Value
	tail *Shelf
}

// NewShelf builds a shelf from values; the last value is the head.
func NewShelf(values ...Value) *Shelf {
	return FromSlice(values)
}

// Push returns a new shelf with value on top of s.
func Push(value Value, s *Shelf) *Shelf {
	return &Shelf{head: value, tail: s}
}

// Pop returns the shelf below the head. Popping the bottom is an InvalidOp.
func Pop(s *Shelf) (*Shelf, error) {
	if s == nil {
		return nil, invalidOp("pop from an empty shelf")
	}
	return s.tail, nil
}

// Peek returns the head of s, or nothing for the bottom.
func Peek(s *Shelf) Value {
	if s == nil {
		return Nothing
	}
	return s.head
}

func IsEmpty(s *Shelf) bool { return s == nil }

// Len walks s.
func Len(s *Shelf) int {
	n := 0
	for ; s != nil; s = s.tail {
		n++
	}
	return n
}

// FromSlice folds values left, so the last element becomes the head.
func FromSlice(values []Value) *Shelf {
	var s *Shelf
	for _, v := range values {
		s = Push(v, s)
	}
	return s
}

// ToSlice recovers array order: bottom first, head last.
func ToSlice(s *Shelf) []Value {
	n := Len(s)
	out := make([]Value, n)
	for i := n - 1; s != nil; i-- {
		out[i] = s.head
		s = s.tail
	}
	return out
}

// Values iterates s in array order.
func Values(s *Shelf) iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, v := range ToSlice(s) {
			if !yield(v) {
				return
			}
		}
	}
}

// Positions iterates s from the head toward the bottom, yielding positions.
func Positions(s *Shelf) iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i := 0; s != nil; i++ {
			if !yield(i, s.head) {
				return
			}
			s = s.tail
		}
	}
}
