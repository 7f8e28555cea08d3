package purr

import (
	"errors"
	"testing"
)

func shelfNums(values ...float64) *Shelf {
	return nums(values...).Shelf()
}

func compareShelf(t *testing.T, got *Shelf, want []Value) {
	t.Helper()
	arr := ToSlice(got)
	if len(arr) != len(want) {
		t.Fatalf("length mismatch: got %s want %s", NewShelfValue(got), ShelfOf(want...))
	}
	for i := range arr {
		if !Equal(arr[i], want[i]) {
			t.Fatalf("mismatch at %d: got %s want %s", i, NewShelfValue(got), ShelfOf(want...))
		}
	}
}

func numValues(values ...float64) []Value {
	return ToSlice(shelfNums(values...))
}

func TestShelfRoundTrip(t *testing.T) {
	cases := [][]Value{
		{},
		numValues(1, 2, 3),
		{NewString("a"), NewString("b")},
		{Nothing},
	}
	for _, arr := range cases {
		compareShelf(t, FromSlice(arr), arr)
	}
}

func TestShelfHeadIsLastElement(t *testing.T) {
	s := shelfNums(1, 2, 3)
	if got := Peek(s); !Equal(got, NewNumber(3)) {
		t.Fatalf("expected head 3, got %s", got)
	}
	if Len(s) != 3 {
		t.Fatalf("expected length 3, got %d", Len(s))
	}
}

func TestShelfPushDoesNotMutate(t *testing.T) {
	base := shelfNums(1, 2)
	pushed := Push(NewNumber(3), base)
	compareShelf(t, base, numValues(1, 2))
	compareShelf(t, pushed, numValues(1, 2, 3))
	if rest, _ := Pop(pushed); rest != base {
		t.Fatalf("pop should return the shared tail")
	}
}

func TestShelfPopAndPeekOnEmpty(t *testing.T) {
	if got := Peek(nil); !got.IsNothing() {
		t.Fatalf("peek on empty shelf should be nothing, got %s", got)
	}
	if _, err := Pop(nil); !errors.Is(err, ErrInvalidOp) {
		t.Fatalf("pop on empty shelf should be InvalidOp, got %v", err)
	}
	if !IsEmpty(NewShelf()) {
		t.Fatalf("NewShelf() should be empty")
	}
}

func TestShelfInsertBoundaries(t *testing.T) {
	seq := shelfNums(1, 2, 3)
	four := NewNumber(4)
	compareShelf(t, Insert(seq, four, 0), numValues(1, 2, 3, 4))
	compareShelf(t, Insert(seq, four, -1), numValues(4, 1, 2, 3))
	compareShelf(t, Insert(seq, four, 6), numValues(4, 1, 2, 3))
	compareShelf(t, Insert(seq, four, 1), numValues(1, 2, 4, 3))
	compareShelf(t, Insert(seq, four, -10), numValues(1, 2, 3, 4))
	compareShelf(t, seq, numValues(1, 2, 3))
}

func TestShelfRemoveBoundaries(t *testing.T) {
	seq := shelfNums(1, 2, 3)
	compareShelf(t, Remove(seq, 0), numValues(1, 2))
	compareShelf(t, Remove(seq, -1), numValues(2, 3))
	compareShelf(t, Remove(seq, 9), numValues(2, 3))
	compareShelf(t, Remove(seq, 1), numValues(1, 3))
	compareShelf(t, Remove(nil, 0), nil)
}

func TestShelfPositional(t *testing.T) {
	seq := shelfNums(1, 2, 3)
	if got := At(seq, 0); !Equal(got, NewNumber(3)) {
		t.Fatalf("At(0): got %s", got)
	}
	if got := At(seq, -1); !Equal(got, NewNumber(1)) {
		t.Fatalf("At(-1): got %s", got)
	}
	if got := At(seq, 3); !got.IsNothing() {
		t.Fatalf("At(3): got %s", got)
	}
	compareShelf(t, Take(seq, 2), numValues(2, 3))
	compareShelf(t, Drop(seq, 2), numValues(1))
	compareShelf(t, Take(seq, 10), numValues(1, 2, 3))
	compareShelf(t, Drop(seq, 10), nil)

	even := func(v Value) (bool, error) { return int(v.Number())%2 == 0, nil }
	idx, err := FindIndex(seq, even)
	if err != nil || idx != 1 {
		t.Fatalf("FindIndex: got %d %v", idx, err)
	}
	found, _ := Find(shelfNums(2, 3, 4), even)
	if !Equal(found, NewNumber(4)) {
		t.Fatalf("Find should start from the head, got %s", found)
	}
	missing, _ := Find(shelfNums(1, 3), even)
	if !missing.IsNothing() {
		t.Fatalf("Find without match should be nothing, got %s", missing)
	}
}

func TestShelfZip(t *testing.T) {
	zipped := Zip(shelfNums(1, 2, 3), NewShelf(NewString("a"), NewString("b")))
	want := []Value{
		ShelfOf(NewNumber(2), NewString("a")),
		ShelfOf(NewNumber(3), NewString("b")),
	}
	compareShelf(t, zipped, want)
}

func TestShelfWholeSequenceOps(t *testing.T) {
	seq := shelfNums(1, 2, 3)

	doubled, err := Map(seq, func(v Value) (Value, error) { return NewNumber(v.Number() * 2), nil })
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	compareShelf(t, doubled, numValues(2, 4, 6))

	odd, _ := Filter(seq, func(v Value) (bool, error) { return int(v.Number())%2 == 1, nil })
	compareShelf(t, odd, numValues(1, 3))

	digits, _ := Fold(seq, NewString(""), func(acc, v Value) (Value, error) {
		return NewString(acc.Text() + FormatNumber(v.Number())), nil
	})
	if digits.Text() != "123" {
		t.Fatalf("fold should run bottom first, got %q", digits.Text())
	}

	compareShelf(t, Reverse(seq), numValues(3, 2, 1))
	compareShelf(t, Join(seq, shelfNums(4, 5)), numValues(1, 2, 3, 4, 5))

	positive := func(v Value) (bool, error) { return v.Number() > 0, nil }
	big := func(v Value) (bool, error) { return v.Number() > 2, nil }
	if ok, _ := All(seq, positive); !ok {
		t.Fatalf("All positive should hold")
	}
	if ok, _ := All(seq, big); ok {
		t.Fatalf("All big should not hold")
	}
	if ok, _ := Any(seq, big); !ok {
		t.Fatalf("Any big should hold")
	}
	if ok, _ := All(nil, big); !ok {
		t.Fatalf("All on empty shelf should hold")
	}
	if !Contains(seq, NewNumber(2)) || Contains(seq, NewString("2")) {
		t.Fatalf("Contains should use relation equality")
	}
}

func TestShelfOpsPropagateErrors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Map(shelfNums(1), func(Value) (Value, error) { return Nothing, boom }); !errors.Is(err, boom) {
		t.Fatalf("map should propagate errors, got %v", err)
	}
	if _, err := Fold(shelfNums(1), Nothing, func(Value, Value) (Value, error) { return Nothing, boom }); !errors.Is(err, boom) {
		t.Fatalf("fold should propagate errors, got %v", err)
	}
}

func TestShelfEach(t *testing.T) {
	var seen []float64
	stop := errors.New("stop")
	err := Each(shelfNums(1, 2, 3), func(v Value) error {
		seen = append(seen, v.Number())
		if v.Number() == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected stop error, got %v", err)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("Each should walk bottom first and stop early, saw %v", seen)
	}
}

func TestShelfSort(t *testing.T) {
	sorted, err := Sort(shelfNums(3, 1, 2))
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	compareShelf(t, sorted, numValues(1, 2, 3))

	words, _ := Sort(NewShelf(NewString("princess"), NewString("jake")))
	compareShelf(t, words, []Value{NewString("jake"), NewString("princess")})

	if _, err := Sort(NewShelf(NewNumber(1), NewString("a"))); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("mixed sort should fail with TypeMismatch, got %v", err)
	}
}
