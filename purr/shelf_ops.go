package purr

import "slices"

// Positional operations count from the head: position 0 is the most recently
// pushed value. Negative positions count from the bottom. Whole-shelf
// operations walk array order, bottom first.

// splitAt pops up to n values, returning them head first along with the
// untouched rest of the shelf.
func splitAt(s *Shelf, n int) ([]Value, *Shelf) {
	above := make([]Value, 0, max(n, 0))
	for ; n > 0 && s != nil; n-- {
		above = append(above, s.head)
		s = s.tail
	}
	return above, s
}

// restack pushes values given head first back onto base.
func restack(above []Value, base *Shelf) *Shelf {
	for i := len(above) - 1; i >= 0; i-- {
		base = Push(above[i], base)
	}
	return base
}

// At returns the value at position pos, or nothing when out of range.
func At(s *Shelf, pos int) Value {
	n := Len(s)
	if pos < 0 {
		pos += n
	}
	if pos < 0 || pos >= n {
		return Nothing
	}
	_, rest := splitAt(s, pos)
	return rest.head
}

// Insert places value at position pos. -1 is below the bottom-most value.
// Out-of-range positions clamp to the nearest end.
func Insert(s *Shelf, value Value, pos int) *Shelf {
	n := Len(s)
	if pos < 0 {
		pos += n + 1
	}
	pos = min(max(pos, 0), n)
	above, rest := splitAt(s, pos)
	return restack(above, Push(value, rest))
}

// Remove drops the value at position pos. -1 is the bottom-most value.
// Out-of-range positions clamp; removing from the bottom shelf is a no-op.
func Remove(s *Shelf, pos int) *Shelf {
	n := Len(s)
	if n == 0 {
		return s
	}
	if pos < 0 {
		pos += n
	}
	pos = min(max(pos, 0), n-1)
	above, rest := splitAt(s, pos)
	return restack(above, rest.tail)
}

// Take keeps the top n values.
func Take(s *Shelf, n int) *Shelf {
	above, _ := splitAt(s, n)
	return restack(above, nil)
}

// Drop pops n values.
func Drop(s *Shelf, n int) *Shelf {
	_, rest := splitAt(s, n)
	return rest
}

// Find returns the value nearest the head that satisfies pred.
func Find(s *Shelf, pred func(Value) (bool, error)) (Value, error) {
	idx, err := FindIndex(s, pred)
	if err != nil || idx < 0 {
		return Nothing, err
	}
	return At(s, idx), nil
}

// FindIndex returns the position of the first match from the head, or -1.
func FindIndex(s *Shelf, pred func(Value) (bool, error)) (int, error) {
	for i, v := range Positions(s) {
		ok, err := pred(v)
		if err != nil {
			return -1, err
		}
		if ok {
			return i, nil
		}
	}
	return -1, nil
}

// Zip pairs values position by position from the head. Each pair is a
// two-value shelf; the result is as long as the shorter input.
func Zip(a, b *Shelf) *Shelf {
	var pairs []Value
	for a != nil && b != nil {
		pairs = append(pairs, ShelfOf(a.head, b.head))
		a, b = a.tail, b.tail
	}
	return restack(pairs, nil)
}

// Each calls fn on every value in array order, stopping at the first error.
func Each(s *Shelf, fn func(Value) error) error {
	for v := range Values(s) {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

func Map(s *Shelf, fn func(Value) (Value, error)) (*Shelf, error) {
	values := ToSlice(s)
	for i, v := range values {
		mapped, err := fn(v)
		if err != nil {
			return nil, err
		}
		values[i] = mapped
	}
	return FromSlice(values), nil
}

func Filter(s *Shelf, pred func(Value) (bool, error)) (*Shelf, error) {
	var kept []Value
	for v := range Values(s) {
		ok, err := pred(v)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, v)
		}
	}
	return FromSlice(kept), nil
}

// Fold reduces s in array order, bottom value first.
func Fold(s *Shelf, initial Value, fn func(acc, v Value) (Value, error)) (Value, error) {
	acc := initial
	for v := range Values(s) {
		next, err := fn(acc, v)
		if err != nil {
			return Nothing, err
		}
		acc = next
	}
	return acc, nil
}

func Reverse(s *Shelf) *Shelf {
	var out *Shelf
	for ; s != nil; s = s.tail {
		out = Push(s.head, out)
	}
	return out
}

// Join stacks b on top of a. The result shares a.
func Join(a, b *Shelf) *Shelf {
	for v := range Values(b) {
		a = Push(v, a)
	}
	return a
}

func All(s *Shelf, pred func(Value) (bool, error)) (bool, error) {
	for v := range Values(s) {
		ok, err := pred(v)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func Any(s *Shelf, pred func(Value) (bool, error)) (bool, error) {
	for v := range Values(s) {
		ok, err := pred(v)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func Contains(s *Shelf, value Value) bool {
	for ; s != nil; s = s.tail {
		if Equal(s.head, value) {
			return true
		}
	}
	return false
}

// Sort orders s ascending in array order, so the greatest value ends up on
// top. Values without a mutual ordering fail with TypeMismatch.
func Sort(s *Shelf) (*Shelf, error) {
	values := ToSlice(s)
	var sortErr error
	slices.SortStableFunc(values, func(a, b Value) int {
		order, err := Compare(a, b)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return int(order)
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return FromSlice(values), nil
}
